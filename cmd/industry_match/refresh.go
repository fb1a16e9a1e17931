package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonathan/industry-match/internal/observability"
	"github.com/jonathan/industry-match/internal/profile"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Recompute stored industry profiles from stored work history",
	Args:  cobra.NoArgs,
	RunE:  runRefresh,
}

var (
	refreshCandidateID string
	refreshAll         bool
)

func init() {
	refreshCmd.Flags().StringVar(&refreshCandidateID, "candidate-id", "", "Candidate to refresh")
	refreshCmd.Flags().BoolVar(&refreshAll, "all", false, "Refresh every candidate with stored work history")

	refreshCmd.MarkFlagsMutuallyExclusive("candidate-id", "all")
	refreshCmd.MarkFlagsOneRequired("candidate-id", "all")

	rootCmd.AddCommand(refreshCmd)
}

func runRefresh(cmd *cobra.Command, _ []string) error {
	cfg, err := loadSettings()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	database, err := openDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	refresher := profile.NewRefresher(database, profile.Config{
		Logger:      log,
		Concurrency: cfg.RefreshConcurrency,
	})

	if !refreshAll {
		refreshed, err := refresher.RefreshFromStore(ctx, refreshCandidateID)
		if err != nil {
			return err
		}
		if outputJSON {
			return writeJSON(cmd.OutOrStdout(), refreshed)
		}
		observability.NewPrinter(cmd.OutOrStdout()).PrintIndustryProfile(refreshed)
		return nil
	}

	result, err := refresher.RefreshAll(ctx, nil)
	if err != nil {
		return fmt.Errorf("bulk refresh aborted: %w", err)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Refreshed %d candidates\n", len(result.Refreshed))
	for _, failure := range result.Failed {
		log.Error("candidate refresh failed",
			zap.String("candidate_id", failure.CandidateID),
			zap.Error(failure.Err))
	}
	if len(result.Failed) > 0 {
		return fmt.Errorf("%d candidates failed to refresh", len(result.Failed))
	}
	return nil
}
