package report

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/aquascore/aquascore/pkg/scoring"
)

// TerminalRenderer renders ComplianceScore as colored terminal output.
type TerminalRenderer struct{}

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBold   = "\033[1m"
	colorDim    = "\033[2m"
)

func statusColor(s scoring.Status) string {
	if noColor() {
		return ""
	}
	switch s {
	case scoring.StatusExcellent, scoring.StatusGood:
		return colorGreen
	case scoring.StatusFair:
		return colorYellow
	case scoring.StatusPoor, scoring.StatusCritical:
		return colorRed
	default:
		return ""
	}
}

func noColor() bool {
	_, ok := os.LookupEnv("NO_COLOR")
	return ok
}

func bold(s string) string {
	if noColor() {
		return s
	}
	return colorBold + s + colorReset
}

func dim(s string) string {
	if noColor() {
		return s
	}
	return colorDim + s + colorReset
}

func colored(s, color string) string {
	if noColor() || color == "" {
		return s
	}
	return color + s + colorReset
}

// categoryOrder fixes the display order by descending weight.
var categoryOrder = []scoring.Category{
	scoring.CategoryDWSP,
	scoring.CategoryAssets,
	scoring.CategoryDocumentation,
	scoring.CategoryReporting,
	scoring.CategoryRisk,
	scoring.CategoryTimeliness,
}

func (r *TerminalRenderer) Render(w io.Writer, score *scoring.ComplianceScore) error {
	// Header
	fmt.Fprintf(w, "%s\n\n",
		bold(fmt.Sprintf("AquaScore: %d/100 (trend %s)", score.Overall, score.Trend)))

	// Breakdown
	fmt.Fprintln(w, "Breakdown:")
	for _, cat := range sortedCategories(score.Breakdown) {
		comp := score.Breakdown[cat]
		fmt.Fprintf(w, "  %5.1f/%.0f  %-28s %s\n",
			comp.Score, comp.MaxScore, bold(comp.Name),
			colored(string(comp.Status), statusColor(comp.Status)))
		if comp.Detail != "" {
			for _, line := range wrapText(comp.Detail, 70) {
				fmt.Fprintf(w, "           %s\n", dim(line))
			}
		}
	}
	fmt.Fprintln(w)

	// Recommendations
	if len(score.Recommendations) > 0 {
		fmt.Fprintln(w, "Recommendations:")
		for _, rec := range score.Recommendations {
			fmt.Fprintf(w, "  %s [%s] %s\n",
				colored("●", severityColor(rec.Severity)), rec.Severity, bold(rec.Issue))
			for _, line := range wrapText(rec.Action, 70) {
				fmt.Fprintf(w, "    %s\n", dim(line))
			}
			fmt.Fprintf(w, "    %s\n", dim(fmt.Sprintf("potential impact: %.0f points", rec.Impact)))
		}
		fmt.Fprintln(w)
	} else {
		fmt.Fprintln(w, "No recommendations.")
		fmt.Fprintln(w)
	}

	return nil
}

func severityColor(s scoring.Severity) string {
	if noColor() {
		return ""
	}
	switch s {
	case scoring.SeverityCritical, scoring.SeverityHigh:
		return colorRed
	case scoring.SeverityMedium:
		return colorYellow
	default:
		return ""
	}
}

// sortedCategories returns the breakdown keys in fixed display order, with
// any unknown categories appended alphabetically.
func sortedCategories(breakdown map[scoring.Category]scoring.Component) []scoring.Category {
	var out []scoring.Category
	seen := make(map[scoring.Category]bool)
	for _, cat := range categoryOrder {
		if _, ok := breakdown[cat]; ok {
			out = append(out, cat)
			seen[cat] = true
		}
	}
	var rest []scoring.Category
	for cat := range breakdown {
		if !seen[cat] {
			rest = append(rest, cat)
		}
	}
	sort.Slice(rest, func(i, j int) bool { return rest[i] < rest[j] })
	return append(out, rest...)
}

// wrapText wraps a string at the given width, returning lines.
func wrapText(s string, width int) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	current := words[0]

	for _, word := range words[1:] {
		if len(current)+1+len(word) > width {
			lines = append(lines, current)
			current = word
		} else {
			current += " " + word
		}
	}
	lines = append(lines, current)
	return lines
}
