package scoring

import (
	"fmt"
	"math"
	"time"

	"github.com/aquascore/aquascore/pkg/signals"
)

// CategoryScorer is the interface all category scorers implement.
type CategoryScorer interface {
	// Category returns the machine-readable category identifier.
	Category() Category
	// Name returns the human-readable category name.
	Name() string
	// Weight returns the category's fraction of the overall score.
	Weight() float64
	// Evaluate computes the raw 0-100 score and a diagnostic string.
	Evaluate(snap *signals.Snapshot, now time.Time) (float64, string)
}

// Engine runs all configured category scorers against a signal snapshot
// and produces a complete ComplianceScore.
type Engine struct {
	scorers []CategoryScorer
	now     func() time.Time
}

// NewEngine creates a scoring engine with the given category scorers.
func NewEngine(scorers ...CategoryScorer) *Engine {
	return &Engine{scorers: scorers, now: time.Now}
}

// WithClock overrides the engine clock. Used by tests and replays.
func (e *Engine) WithClock(now func() time.Time) *Engine {
	e.now = now
	return e
}

// Score evaluates every category, combines the weighted contributions into
// an overall 0-100 score, generates recommendations, and classifies the
// trend against prior overall scores (newest first).
func (e *Engine) Score(snap *signals.Snapshot, history []float64) (*ComplianceScore, error) {
	if snap == nil {
		return nil, fmt.Errorf("snapshot is nil")
	}
	if len(e.scorers) == 0 {
		return nil, fmt.Errorf("no category scorers configured")
	}

	var weightSum float64
	for _, s := range e.scorers {
		weightSum += s.Weight()
	}
	if math.Abs(weightSum-1.0) > 1e-9 {
		return nil, fmt.Errorf("category weights sum to %v, want 1.0", weightSum)
	}

	now := e.now()
	breakdown := make(map[Category]Component, len(e.scorers))
	var total float64

	for _, s := range e.scorers {
		score, detail := s.Evaluate(snap, now)
		score = clamp(score, 0, 100)

		c := Component{
			Category: s.Category(),
			Name:     s.Name(),
			Score:    score,
			MaxScore: 100,
			Weight:   s.Weight(),
			Weighted: score / 100 * s.Weight() * 100,
			Status:   StatusFromPercent(score),
			Detail:   detail,
		}
		breakdown[c.Category] = c
		total += c.Weighted
	}

	overall := int(math.Round(total))

	return &ComplianceScore{
		OrgID:           snap.OrgID,
		Overall:         overall,
		Breakdown:       breakdown,
		Recommendations: GenerateRecommendations(snap, breakdown),
		Trend:           EstimateTrend(float64(overall), history),
		ComputedAt:      now,
	}, nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
