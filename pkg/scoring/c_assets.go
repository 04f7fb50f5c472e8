package scoring

import (
	"fmt"
	"time"

	"github.com/aquascore/aquascore/pkg/signals"
)

// AssetScorer scores asset management posture: critical-risk exposure,
// inspection coverage over the last 90 days, and asset condition.
type AssetScorer struct {
	CategoryWeight float64
	Base           float64

	// Bonus tiers by critical-risk ratio (0%, <=10%, <=20%, above).
	CriticalTiers [4]float64
	// Bonus tiers by 90-day inspection coverage (>=80%, >=50%, >=30%, below).
	InspectionTiers [4]float64

	ConditionPenalty   float64 // applied when very-poor ratio exceeds threshold
	ConditionThreshold float64
}

func (s *AssetScorer) Category() Category { return CategoryAssets }
func (s *AssetScorer) Name() string       { return "Asset Management" }
func (s *AssetScorer) Weight() float64    { return s.CategoryWeight }

func (s *AssetScorer) Evaluate(snap *signals.Snapshot, now time.Time) (float64, string) {
	a := snap.Assets

	if a.TotalAssets == 0 {
		return 0, "no assets registered"
	}

	score := s.Base

	critical := a.CriticalRatio()
	switch {
	case critical == 0:
		score += s.CriticalTiers[0]
	case critical <= 0.10:
		score += s.CriticalTiers[1]
	case critical <= 0.20:
		score += s.CriticalTiers[2]
	default:
		score += s.CriticalTiers[3]
	}

	inspected := a.InspectedRatio()
	switch {
	case inspected >= 0.80:
		score += s.InspectionTiers[0]
	case inspected >= 0.50:
		score += s.InspectionTiers[1]
	case inspected >= 0.30:
		score += s.InspectionTiers[2]
	default:
		score += s.InspectionTiers[3]
	}

	if a.VeryPoorRatio() > s.ConditionThreshold {
		score -= s.ConditionPenalty
	}
	if score < 0 {
		score = 0
	}

	detail := fmt.Sprintf("%d assets, %.0f%% critical-risk, %.0f%% inspected in last 90 days",
		a.TotalAssets, critical*100, inspected*100)
	if a.VeryPoorRatio() > s.ConditionThreshold {
		detail += fmt.Sprintf(", %.0f%% in very poor condition", a.VeryPoorRatio()*100)
	}

	return score, detail
}
