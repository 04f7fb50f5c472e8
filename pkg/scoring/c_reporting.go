package scoring

import (
	"fmt"
	"time"

	"github.com/aquascore/aquascore/pkg/signals"
)

// ReportingScorer scores regulatory report cadence across annual, quarterly,
// and monthly obligations. The three sub-scores sum to at most 100 without
// normalization. Quarterly expectations are time-aware: an organization is
// expected to have filed one report per elapsed calendar quarter.
type ReportingScorer struct {
	CategoryWeight float64

	AnnualCurrent float64 // this year's annual report filed
	AnnualPrior   float64 // only last year's filed

	QuarterlyFull  float64 // count meets or exceeds expected-for-quarter
	QuarterlyShort float64 // one report short
	QuarterlyLow   float64

	MonthlyFull float64 // >= MonthlyFullCount in last 90 days
	MonthlyPart float64 // >= MonthlyPartCount
	MonthlyLow  float64

	MonthlyFullCount int
	MonthlyPartCount int
}

func (s *ReportingScorer) Category() Category { return CategoryReporting }
func (s *ReportingScorer) Name() string       { return "Reporting" }
func (s *ReportingScorer) Weight() float64    { return s.CategoryWeight }

func (s *ReportingScorer) Evaluate(snap *signals.Snapshot, now time.Time) (float64, string) {
	r := snap.Reports

	var score float64
	var annual string
	switch {
	case r.AnnualThisYear:
		score += s.AnnualCurrent
		annual = "annual report filed"
	case r.AnnualLastYear:
		score += s.AnnualPrior
		annual = "annual report missing for current year"
	default:
		annual = "no annual report on record"
	}

	expected := currentQuarter(now)
	switch {
	case r.QuarterlyCount >= expected:
		score += s.QuarterlyFull
	case r.QuarterlyCount == expected-1:
		score += s.QuarterlyShort
	default:
		score += s.QuarterlyLow
	}

	switch {
	case r.MonthlyLast90 >= s.MonthlyFullCount:
		score += s.MonthlyFull
	case r.MonthlyLast90 >= s.MonthlyPartCount:
		score += s.MonthlyPart
	default:
		score += s.MonthlyLow
	}

	detail := fmt.Sprintf("%s; %d of %d expected quarterly reports; %d monthly reports in last 90 days",
		annual, r.QuarterlyCount, expected, r.MonthlyLast90)
	if r.ExpectedAnnualSamples > 0 {
		detail += fmt.Sprintf("; ~%d samples expected this year", r.ExpectedAnnualSamples)
	}

	return score, detail
}

// currentQuarter returns the 1-based calendar quarter for t.
func currentQuarter(t time.Time) int {
	return (int(t.Month())-1)/3 + 1
}
