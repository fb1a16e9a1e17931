// Package observability provides metrics and formatted CLI output for industry matching.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jonathan/industry-match/internal/industry"
	"github.com/jonathan/industry-match/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 8
)

// Printer handles formatted output for the CLI
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines by rune so multi-byte text is never split
		if runes := []rune(line); len(runes) > boxWidth-4 {
			line = string(runes[:boxWidth-7]) + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintMatchResult outputs the score and explanation of one industry match.
// A not-applicable result is shown as N/A, never as 0%.
func (p *Printer) PrintMatchResult(jobTags []string, result *types.MatchResult) {
	if result == nil {
		return
	}

	var sb strings.Builder

	if len(jobTags) > 0 {
		sb.WriteString(fmt.Sprintf("Job industries: %s\n", strings.Join(displayTags(jobTags), ", ")))
	}
	if result.Scored() {
		sb.WriteString(fmt.Sprintf("Industry match: %d%%\n", *result.Percent))
	} else {
		sb.WriteString("Industry match: N/A\n")
	}

	if len(result.Reasons) > 0 {
		sb.WriteString("\n")
		for _, reason := range result.Reasons {
			sb.WriteString(fmt.Sprintf("  • %s\n", reason))
		}
	}

	p.printBox("INDUSTRY MATCH", strings.TrimRight(sb.String(), "\n"))
}

// PrintIndustryProfile outputs a candidate's years per industry, most experienced first.
func (p *Printer) PrintIndustryProfile(profile *types.IndustryProfile) {
	if profile == nil {
		return
	}

	var sb strings.Builder

	if profile.CandidateID != "" {
		sb.WriteString(fmt.Sprintf("Candidate: %s\n", profile.CandidateID))
	}
	sb.WriteString(fmt.Sprintf("Updated:   %s\n", profile.UpdatedAt.Format("2006-01-02 15:04:05 MST")))
	sb.WriteString("\n")

	if len(profile.IndustryYears) == 0 {
		sb.WriteString("No industry experience recognized")
		p.printBox("INDUSTRY PROFILE", sb.String())
		return
	}

	tags := sortedByYears(profile.IndustryYears)
	count := min(len(tags), maxItemsToShow)
	for i := 0; i < count; i++ {
		tag := tags[i]
		sb.WriteString(fmt.Sprintf("  %-20s %5.1f yrs\n", industry.CapitalizeIndustryTag(tag), profile.IndustryYears[tag]))
	}
	if len(tags) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(tags)-maxItemsToShow))
	}

	p.printBox("INDUSTRY PROFILE", strings.TrimRight(sb.String(), "\n"))
}

// PrintTags outputs a titled list of canonical tags, or a placeholder when there are none.
func (p *Printer) PrintTags(title, input string, tags []string) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Input: %s\n", input))
	if len(tags) == 0 {
		sb.WriteString("Tags:  (none)")
	} else {
		sb.WriteString(fmt.Sprintf("Tags:  %s", strings.Join(tags, ", ")))
	}
	p.printBox(title, sb.String())
}

func displayTags(tags []string) []string {
	out := make([]string, len(tags))
	for i, tag := range tags {
		out[i] = industry.CapitalizeIndustryTag(tag)
	}
	return out
}

// sortedByYears orders tags by years descending, then by name.
func sortedByYears(years types.IndustryYears) []string {
	tags := make([]string, 0, len(years))
	for tag := range years {
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool {
		if years[tags[i]] != years[tags[j]] {
			return years[tags[i]] > years[tags[j]]
		}
		return tags[i] < tags[j]
	})
	return tags
}
