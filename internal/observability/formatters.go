// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jonathan/assessment-engine/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// barWidth is the width of a 0..100 score bar
	barWidth = 20
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
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

	for _, line := range strings.Split(content, "\n") {
		// Truncate long lines
		if len([]rune(line)) > boxWidth-4 {
			line = string([]rune(line)[:boxWidth-7]) + "..."
		}
		fmt.Fprintf(p.out, "│ %s%s │\n", line, strings.Repeat(" ", max(boxWidth-4-len([]rune(line)), 0)))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// bar renders a percent as a fixed-width bar
func bar(percent int) string {
	filled := max(min(percent*barWidth/100, barWidth), 0)
	return strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
}

// PrintScoreResult outputs the dimension scores, or dichotomies for binary tests.
func (p *Printer) PrintScoreResult(result *types.ScoreResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Taxonomy: %s (%s)\n", result.Taxonomy, result.Type))
	sb.WriteString("\n")

	if result.Type == types.FormatBinary {
		for _, code := range sortedKeys(result.Dichotomies) {
			d := result.Dichotomies[code]
			sb.WriteString(fmt.Sprintf("%-4s %s %3d%%  → %s\n", code, bar(d.PercentageA), d.PercentageA, d.DominantPole))
		}
		sb.WriteString(fmt.Sprintf("\nType: %s", result.TypeCode))
		p.printBox("SCORE RESULT", sb.String())
		return
	}

	subscales := result.Subscales()
	for _, code := range sortedKeys(result.Dimensions) {
		score := result.Dimensions[code]
		sb.WriteString(fmt.Sprintf("%-4s %s %3d\n", code, bar(score), score))

		names := sortedKeys(subscales[code])
		count := min(len(names), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("       %-28s %3d\n", names[i], subscales[code][names[i]]))
		}
		if len(names) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("       ... and %d more\n", len(names)-maxItemsToShow))
		}
	}

	p.printBox("SCORE RESULT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintProfile outputs dimension levels and the tension pairs that fired.
func (p *Printer) PrintProfile(profile *types.ProfileOutput) {
	if profile == nil {
		return
	}
	if len(profile.Categories) == 0 {
		p.printBox("PROFILE", "No dimension profile for this taxonomy")
		return
	}

	var sb strings.Builder
	for _, code := range sortedKeys(profile.Categories) {
		sb.WriteString(fmt.Sprintf("%-4s %s\n", code, profile.Categories[code]))
	}
	sb.WriteString("\n")

	writePairs := func(label string, pairs []types.TensionPair) {
		if len(pairs) == 0 {
			sb.WriteString(fmt.Sprintf("%s: none\n", label))
			return
		}
		sb.WriteString(fmt.Sprintf("%s:\n", label))
		for _, pair := range pairs {
			sb.WriteString(fmt.Sprintf("  • %s (%s %s, %s %s)\n",
				pair.ContentKey, pair.DimA, pair.LevelA, pair.DimB, pair.LevelB))
		}
	}
	writePairs("Insights", profile.InsightPairs)
	writePairs("Risks", profile.RiskPairs)

	p.printBox("PROFILE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintAssignmentCounts outputs per-taxonomy participant counts against the core quota.
func (p *Printer) PrintAssignmentCounts(counts map[types.Taxonomy]int, quota int) {
	var sb strings.Builder
	total := 0
	for _, t := range types.AllTaxonomies() {
		n := counts[t]
		total += n
		kind := "exploratory"
		if t.IsCore() {
			kind = "core"
		}
		sb.WriteString(fmt.Sprintf("%-18s %-12s %5d\n", t, kind, n))
	}
	sb.WriteString(fmt.Sprintf("\nTotal: %d  Core quota: %d", total, quota))

	p.printBox("ASSIGNMENT COUNTS", sb.String())
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
