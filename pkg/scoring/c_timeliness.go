package scoring

import (
	"fmt"
	"time"

	"github.com/aquascore/aquascore/pkg/signals"
)

// TimelinessScorer scores deadline posture. Starts at the maximum and loses
// points per overdue item (capped) plus a flat penalty when too many items
// are due within the next week.
type TimelinessScorer struct {
	CategoryWeight float64

	OverduePenalty float64 // points lost per overdue item
	OverdueCap     float64 // max points lost to overdue items

	UpcomingPenalty   float64 // flat penalty for a crowded upcoming week
	UpcomingThreshold int     // items due within 7 days to trigger the penalty
}

func (s *TimelinessScorer) Category() Category { return CategoryTimeliness }
func (s *TimelinessScorer) Name() string       { return "Timeliness" }
func (s *TimelinessScorer) Weight() float64    { return s.CategoryWeight }

func (s *TimelinessScorer) Evaluate(snap *signals.Snapshot, now time.Time) (float64, string) {
	t := snap.Timeliness

	score := 100.0
	penalty := float64(t.OverdueItems) * s.OverduePenalty
	if penalty > s.OverdueCap {
		penalty = s.OverdueCap
	}
	score -= penalty

	detail := fmt.Sprintf("%d overdue item(s)", t.OverdueItems)

	if t.DueWithin7 > s.UpcomingThreshold {
		score -= s.UpcomingPenalty
		detail += fmt.Sprintf(", %d items due within 7 days", t.DueWithin7)
	}

	if score < 0 {
		score = 0
	}
	return score, detail
}
