package scoring

import (
	"fmt"
	"time"

	"github.com/aquascore/aquascore/pkg/signals"
)

// DWSPScorer scores drinking water safety plan compliance. An organization
// with no approved plan scores zero: this is the only category with a hard
// floor that can zero out its full weight.
type DWSPScorer struct {
	CategoryWeight   float64
	Base             float64 // points for having an approved plan
	ReviewBonus      float64 // points for a recent review
	ReviewWindowDays int     // review counts as recent within this window
	CompletionBonus  float64 // max points scaled by mandatory element completion
}

func (s *DWSPScorer) Category() Category { return CategoryDWSP }
func (s *DWSPScorer) Name() string       { return "Drinking Water Safety Plan" }
func (s *DWSPScorer) Weight() float64    { return s.CategoryWeight }

func (s *DWSPScorer) Evaluate(snap *signals.Snapshot, now time.Time) (float64, string) {
	p := snap.Plans

	if p.ApprovedPlans == 0 {
		return 0, "no approved drinking water safety plan on record"
	}

	score := s.Base
	detail := fmt.Sprintf("%d approved plan(s)", p.ApprovedPlans)

	if p.DaysSinceReview <= s.ReviewWindowDays {
		score += s.ReviewBonus
		detail += fmt.Sprintf(", reviewed %d days ago", p.DaysSinceReview)
	} else {
		years := float64(p.DaysSinceReview) / 365
		detail += fmt.Sprintf(", review overdue: last reviewed %.1f years ago", years)
	}

	score += s.CompletionBonus * p.ElementCompletion
	detail += fmt.Sprintf(", %.0f%% of mandatory elements complete", p.ElementCompletion*100)

	return score, detail
}
