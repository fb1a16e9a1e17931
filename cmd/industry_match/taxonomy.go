package main

import (
	"strings"

	"github.com/jonathan/industry-match/internal/industry"
	"github.com/jonathan/industry-match/internal/observability"
	"github.com/spf13/cobra"
)

var classifyCmd = &cobra.Command{
	Use:   "classify <title>",
	Short: "Infer industry tags from a job title",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		title := strings.Join(args, " ")
		return printTags(cmd, "Position industries", "title", title, industry.IndustriesForPosition(title))
	},
}

var parseCmd = &cobra.Command{
	Use:   "parse <industries>",
	Short: "Normalize a comma-separated industry string into canonical tags",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw := strings.Join(args, " ")
		return printTags(cmd, "Industry tags", "input", raw, industry.ParseIndustryTags(raw))
	},
}

func init() {
	rootCmd.AddCommand(classifyCmd)
	rootCmd.AddCommand(parseCmd)
}

func printTags(cmd *cobra.Command, title, inputKey, input string, tags []string) error {
	if outputJSON {
		return writeJSON(cmd.OutOrStdout(), map[string]any{
			inputKey: input,
			"tags":   tags,
		})
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintTags(title, input, tags)
	return nil
}
