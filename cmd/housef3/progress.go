package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mazerunner70/housef3/internal/coverage"
)

func progressCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "progress",
		Short: "Show how much history has been checked for transfers",
		RunE:  runProgress,
	}
}

func runProgress(cmd *cobra.Command, _ []string) error {
	db, err := openStorage(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	store := coverage.NewStore(db, db)

	account, err := store.AccountRange(cmd.Context())
	if err != nil {
		return err
	}
	if account == nil {
		fmt.Println("No transactions imported yet")
		return nil
	}

	checked, err := store.CheckedRange(cmd.Context())
	if err != nil {
		return err
	}

	percent, err := store.ProgressPercent(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Printf("Transaction history: %s (%d days)\n", account, account.Days())
	if checked == nil {
		fmt.Println("Checked range:       none")
	} else {
		fmt.Printf("Checked range:       %s (%d days)\n", checked, checked.Days())
	}
	fmt.Printf("Progress:            %d%%\n", percent)

	return nil
}
