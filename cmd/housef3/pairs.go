package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mazerunner70/housef3/internal/model"
)

func pairsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pairs",
		Short: "List confirmed transfer pairs",
		RunE:  runPairs,
	}

	cmd.Flags().String("from", "", "start date (YYYY-MM-DD, default: one year ago)")
	cmd.Flags().String("to", "", "end date (YYYY-MM-DD, default: today)")

	return cmd
}

func runPairs(cmd *cobra.Command, _ []string) error {
	window, err := dateRangeFromFlags(cmd)
	if err != nil {
		return err
	}

	db, err := openStorage(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	pairs, err := db.GetTransferPairs(cmd.Context(), window)
	if err != nil {
		return fmt.Errorf("failed to list transfer pairs: %w", err)
	}

	if len(pairs) == 0 {
		fmt.Printf("No confirmed transfers in %s\n", window)
		return nil
	}

	fmt.Printf("Confirmed transfers in %s:\n\n", window)
	for _, pair := range pairs {
		fmt.Printf("  %s -> %s  $%.2f  (%d days apart, confirmed %s)\n",
			pair.OutgoingID,
			pair.IncomingID,
			pair.Amount,
			pair.DateDifferenceDays,
			pair.ConfirmedAt.Format("2006-01-02"))
	}
	fmt.Printf("\n%d pairs\n", len(pairs))

	return nil
}

func dateRangeFromFlags(cmd *cobra.Command) (model.DateRange, error) {
	fromStr, _ := cmd.Flags().GetString("from")
	toStr, _ := cmd.Flags().GetString("to")

	end := time.Now()
	if toStr != "" {
		parsed, err := time.Parse("2006-01-02", toStr)
		if err != nil {
			return model.DateRange{}, fmt.Errorf("invalid --to date %q: %w", toStr, err)
		}
		end = parsed
	}

	start := end.AddDate(-1, 0, 0)
	if fromStr != "" {
		parsed, err := time.Parse("2006-01-02", fromStr)
		if err != nil {
			return model.DateRange{}, fmt.Errorf("invalid --from date %q: %w", fromStr, err)
		}
		start = parsed
	}

	r := model.NewDateRange(start, end)
	if !r.Valid() {
		return model.DateRange{}, fmt.Errorf("--from must not be after --to")
	}
	return r, nil
}
