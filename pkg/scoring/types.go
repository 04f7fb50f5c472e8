// Package scoring implements the AquaScore compliance scoring engine.
// It converts per-domain regulatory signals into a weighted composite score
// with per-category diagnostics, prioritized recommendations, and a trend.
package scoring

import "time"

// Category identifies one of the six compliance dimensions.
type Category string

const (
	CategoryDWSP          Category = "dwsp"
	CategoryAssets        Category = "asset_management"
	CategoryDocumentation Category = "documentation"
	CategoryReporting     Category = "reporting"
	CategoryRisk          Category = "risk_management"
	CategoryTimeliness    Category = "timeliness"
)

// Status classifies a category score as a fraction of its maximum.
type Status string

const (
	StatusExcellent Status = "excellent"
	StatusGood      Status = "good"
	StatusFair      Status = "fair"
	StatusPoor      Status = "poor"
	StatusCritical  Status = "critical"
)

// Trend compares the current overall score to the most recent prior score.
type Trend string

const (
	TrendImproving Trend = "improving"
	TrendStable    Trend = "stable"
	TrendDeclining Trend = "declining"
	TrendUnknown   Trend = "unknown"
)

// Severity ranks how urgent a recommendation is.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

// severityRank orders severities for sorting: critical first.
func severityRank(s Severity) int {
	switch s {
	case SeverityCritical:
		return 0
	case SeverityHigh:
		return 1
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 3
	}
	return 4
}

// Component is the scored result for a single compliance category.
type Component struct {
	Category Category `json:"category"`
	Name     string   `json:"name"`
	Score    float64  `json:"score"`     // 0-100, may be fractional before rounding
	MaxScore float64  `json:"max_score"` // always 100
	Weight   float64  `json:"weight"`    // fraction of the overall score
	Weighted float64  `json:"weighted"`  // Score/MaxScore * Weight * 100
	Status   Status   `json:"status"`
	Detail   string   `json:"detail"`
}

// Recommendation is a prioritized remediation item.
type Recommendation struct {
	Category Category `json:"category"`
	Severity Severity `json:"severity"`
	Issue    string   `json:"issue"`
	Action   string   `json:"action"`
	Impact   float64  `json:"impact"` // overall-score points plausibly recoverable
}

// ComplianceScore is the complete output of one scoring run.
// Immutable once computed; persisted as an append-only history row.
type ComplianceScore struct {
	OrgID           string                 `json:"org_id"`
	Overall         int                    `json:"overall"` // 0-100
	Breakdown       map[Category]Component `json:"breakdown"`
	Recommendations []Recommendation       `json:"recommendations"`
	Trend           Trend                  `json:"trend"`
	ComputedAt      time.Time              `json:"computed_at"`
}

// StatusFromPercent maps a percentage-of-max to the shared five-bucket
// status ladder used by every category.
func StatusFromPercent(pct float64) Status {
	switch {
	case pct >= 90:
		return StatusExcellent
	case pct >= 75:
		return StatusGood
	case pct >= 60:
		return StatusFair
	case pct >= 40:
		return StatusPoor
	default:
		return StatusCritical
	}
}
