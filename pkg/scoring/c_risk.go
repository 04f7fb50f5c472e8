package scoring

import (
	"fmt"
	"time"

	"github.com/aquascore/aquascore/pkg/signals"
)

// RiskScorer scores risk management: assessment recency and recent incidents.
// Zero assessments ever performed scores zero.
type RiskScorer struct {
	CategoryWeight    float64
	Base              float64
	RecencyBonus      float64 // most recent assessment within RecencyWindowDays
	RecencyWindowDays int

	// Bonus tiers by incident count in the last 90 days (none, <= IncidentTolerance, more).
	IncidentNone      float64
	IncidentFew       float64
	IncidentTolerance int
}

func (s *RiskScorer) Category() Category { return CategoryRisk }
func (s *RiskScorer) Name() string       { return "Risk Management" }
func (s *RiskScorer) Weight() float64    { return s.CategoryWeight }

func (s *RiskScorer) Evaluate(snap *signals.Snapshot, now time.Time) (float64, string) {
	r := snap.Risk

	if r.TotalAssessments == 0 {
		return 0, "no risk assessments performed"
	}

	score := s.Base
	detail := fmt.Sprintf("%d risk assessment(s)", r.TotalAssessments)

	if r.DaysSinceAssessment <= s.RecencyWindowDays {
		score += s.RecencyBonus
		detail += fmt.Sprintf(", most recent %d days ago", r.DaysSinceAssessment)
	} else {
		detail += fmt.Sprintf(", most recent %d days ago (stale)", r.DaysSinceAssessment)
	}

	switch {
	case r.IncidentsLast90 == 0:
		score += s.IncidentNone
		detail += ", no incidents in last 90 days"
	case r.IncidentsLast90 <= s.IncidentTolerance:
		score += s.IncidentFew
		detail += fmt.Sprintf(", %d incident(s) in last 90 days", r.IncidentsLast90)
	default:
		detail += fmt.Sprintf(", %d incidents in last 90 days", r.IncidentsLast90)
	}

	return score, detail
}
