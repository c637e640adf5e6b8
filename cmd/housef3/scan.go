package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mazerunner70/housef3/internal/cli"
	"github.com/mazerunner70/housef3/internal/engine"
)

func scanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Sweep unchecked history for transfer pairs",
		Long: `Scan walks the unchecked portion of your transaction history in
chunks, surfacing likely transfer pairs for review. Each chunk is only
marked checked after every candidate in it has been confirmed or ignored
and the confirmations have been saved, so an interrupted scan resumes
safely from the last committed chunk.`,
		RunE: runScan,
	}

	cmd.Flags().Bool("auto", false, "confirm every candidate without prompting")
	cmd.Flags().Int("chunk-days", 0, "days per scan window (default 30)")
	cmd.Flags().Int("overlap-days", -1, "days of overlap with checked history (default 3)")
	cmd.Flags().Int("max-drift-days", 0, "widest date gap between transfer legs (default 7)")

	_ = viper.BindPFlag("scan.chunk_days", cmd.Flags().Lookup("chunk-days"))
	_ = viper.BindPFlag("scan.overlap_days", cmd.Flags().Lookup("overlap-days"))
	_ = viper.BindPFlag("scan.max_drift_days", cmd.Flags().Lookup("max-drift-days"))

	return cmd
}

func runScan(cmd *cobra.Command, _ []string) error {
	db, err := openStorage(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	auto, _ := cmd.Flags().GetBool("auto")

	var prompter engine.Prompter
	if auto {
		prompter = cli.NewAutoPrompter(os.Stdout)
	} else {
		prompter = cli.NewPrompter(os.Stdin, os.Stdout)
	}

	cfg := engine.DefaultConfig()
	if days := viper.GetInt("scan.chunk_days"); days > 0 {
		cfg.ChunkDays = days
	}
	if days := viper.GetInt("scan.overlap_days"); days >= 0 {
		cfg.OverlapDays = days
	}
	if days := viper.GetInt("scan.max_drift_days"); days > 0 {
		cfg.MaxDriftDays = days
	}

	reviewEngine := engine.NewWithConfig(db, prompter, cfg)

	stats, err := reviewEngine.Run(cmd.Context())
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	fmt.Println()
	fmt.Println(cli.FormatSuccess(fmt.Sprintf(
		"Scanned %d windows: %d candidates, %d confirmed, %d ignored",
		stats.WindowsScanned, stats.CandidatesFound, stats.Confirmed, stats.Ignored)))
	if stats.CommitFailures > 0 {
		fmt.Println(cli.FormatWarning(fmt.Sprintf("%d pairs failed to save (details in the log above)", stats.CommitFailures)))
	}

	percent, err := reviewEngine.Coverage().ProgressPercent(cmd.Context())
	if err == nil {
		fmt.Printf("History checked: %d%%\n", percent)
	}

	return nil
}
