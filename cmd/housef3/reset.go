package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mazerunner70/housef3/internal/coverage"
)

func resetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Clear the checked range and recalculate from scratch",
		Long: `Reset clears the record of which date ranges have been scanned.
The next scan starts over from the oldest transaction. Confirmed transfer
pairs are kept; they will come up for review again, and confirming a pair
that is already saved is a no-op.`,
		RunE: runReset,
	}

	cmd.Flags().Bool("force", false, "skip confirmation")

	return cmd
}

func runReset(cmd *cobra.Command, _ []string) error {
	force, _ := cmd.Flags().GetBool("force")
	if !force {
		return fmt.Errorf("reset discards all scan progress; re-run with --force to confirm")
	}

	db, err := openStorage(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	store := coverage.NewStore(db, db)
	if err := store.Reset(cmd.Context()); err != nil {
		return fmt.Errorf("failed to reset checked range: %w", err)
	}

	fmt.Println("Checked range cleared; the next scan starts from the beginning")
	return nil
}
