package scoring

import "math"

// stableBand is the difference magnitude below which a score movement is
// classified as stable rather than improving/declining.
const stableBand = 3

// EstimateTrend classifies the direction of the current overall score
// against prior overall scores, newest first. Only the most recent prior
// score participates in classification; up to two are fetched by callers
// for future multi-point trend work.
func EstimateTrend(current float64, history []float64) Trend {
	if len(history) == 0 {
		return TrendUnknown
	}
	diff := current - history[0]
	if math.Abs(diff) < stableBand {
		return TrendStable
	}
	if diff > 0 {
		return TrendImproving
	}
	return TrendDeclining
}
