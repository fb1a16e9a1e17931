package main

import (
	"encoding/json"
	"fmt"

	"github.com/jonathan/industry-match/internal/experience"
	"github.com/jonathan/industry-match/internal/industry"
	"github.com/jonathan/industry-match/internal/matching"
	"github.com/jonathan/industry-match/internal/observability"
	"github.com/jonathan/industry-match/internal/schemas"
	"github.com/jonathan/industry-match/internal/types"
	rootschemas "github.com/jonathan/industry-match/schemas"
	"github.com/spf13/cobra"
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Score a job's industries against a candidate",
	Long: `Score a job's comma-separated industry string against a candidate's experience.
The candidate is read either from a work history file (years are derived) or from an
industry years file. When the job has no industries, --company is looked up instead.`,
	Args: cobra.NoArgs,
	RunE: runMatch,
}

var (
	matchIndustries  string
	matchCompany     string
	matchHistoryFile string
	matchYearsFile   string
)

func init() {
	matchCmd.Flags().StringVar(&matchIndustries, "industries", "", "Job industries, comma-separated")
	matchCmd.Flags().StringVar(&matchCompany, "company", "", "Hiring company, used when --industries yields no tags")
	matchCmd.Flags().StringVar(&matchHistoryFile, "history", "", "Path to work history JSON file")
	matchCmd.Flags().StringVar(&matchYearsFile, "years", "", "Path to industry years or industry profile JSON file")

	matchCmd.MarkFlagsMutuallyExclusive("history", "years")
	matchCmd.MarkFlagsOneRequired("history", "years")

	rootCmd.AddCommand(matchCmd)
}

func runMatch(cmd *cobra.Command, _ []string) error {
	years, err := loadCandidateYears()
	if err != nil {
		return err
	}

	tags := industry.SeedJobTags(matchIndustries, matchCompany)
	result := matching.ComputeIndustryMatch(tags, years)

	if outputJSON {
		jsonBytes, err := json.MarshalIndent(struct {
			JobTags []string `json:"job_tags"`
			*types.MatchResult
		}{JobTags: tags, MatchResult: result}, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal match result: %w", err)
		}
		if err := schemas.ValidateDocument(rootschemas.MatchResult, jsonBytes); err != nil {
			return fmt.Errorf("match result failed validation: %w", err)
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(jsonBytes))
		return err
	}

	observability.NewPrinter(cmd.OutOrStdout()).PrintMatchResult(tags, result)
	return nil
}

func loadCandidateYears() (types.IndustryYears, error) {
	if matchHistoryFile != "" {
		history, err := experience.LoadWorkHistory(matchHistoryFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load work history: %w", err)
		}
		return experience.NewAccumulator().Build(history.CandidateID, history.Rows).IndustryYears, nil
	}

	years, err := experience.LoadIndustryYears(matchYearsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load industry years: %w", err)
	}
	return years, nil
}
