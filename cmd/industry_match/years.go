package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/industry-match/internal/experience"
	"github.com/jonathan/industry-match/internal/observability"
	"github.com/jonathan/industry-match/internal/schemas"
	rootschemas "github.com/jonathan/industry-match/schemas"
	"github.com/spf13/cobra"
)

var yearsCmd = &cobra.Command{
	Use:   "years",
	Short: "Derive years of experience per industry from a work history file",
	Long:  "Classifies each work history position, accumulates its years into every matched industry, and prints or writes the resulting industry profile.",
	Args:  cobra.NoArgs,
	RunE:  runYears,
}

var (
	yearsHistoryFile string
	yearsCandidateID string
	yearsOutputFile  string
)

func init() {
	yearsCmd.Flags().StringVar(&yearsHistoryFile, "history", "", "Path to work history JSON file (required)")
	yearsCmd.Flags().StringVar(&yearsCandidateID, "candidate-id", "", "Candidate ID recorded in the profile (default from the history file)")
	yearsCmd.Flags().StringVarP(&yearsOutputFile, "out", "o", "", "Path to write the industry profile JSON")

	if err := yearsCmd.MarkFlagRequired("history"); err != nil {
		panic(fmt.Sprintf("failed to mark history flag as required: %v", err))
	}

	rootCmd.AddCommand(yearsCmd)
}

func runYears(cmd *cobra.Command, _ []string) error {
	history, err := experience.LoadWorkHistory(yearsHistoryFile)
	if err != nil {
		return fmt.Errorf("failed to load work history: %w", err)
	}

	candidateID := yearsCandidateID
	if candidateID == "" {
		candidateID = history.CandidateID
	}
	profile := experience.NewAccumulator().Build(candidateID, history.Rows)

	if yearsOutputFile == "" {
		if outputJSON {
			return writeJSON(cmd.OutOrStdout(), profile)
		}
		observability.NewPrinter(cmd.OutOrStdout()).PrintIndustryProfile(profile)
		return nil
	}

	jsonBytes, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal industry profile: %w", err)
	}
	if err := schemas.ValidateDocument(rootschemas.IndustryProfile, jsonBytes); err != nil {
		return fmt.Errorf("industry profile failed validation: %w", err)
	}

	// Ensure output directory exists
	if err := os.MkdirAll(filepath.Dir(yearsOutputFile), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(yearsOutputFile, jsonBytes, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Derived %d industries from %d positions\n", profile.Tags(), len(history.Rows))
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Output: %s\n", yearsOutputFile)
	return nil
}
