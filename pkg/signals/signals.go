// Package signals defines the typed aggregate inputs consumed by the
// compliance scoring engine. Each struct is a flat, read-only snapshot of
// one regulatory domain, computed fresh per scoring run.
package signals

import "time"

// NoReviewSentinel is the "days since" value used when no reviewed record
// exists at all. Large enough to fail every recency check.
const NoReviewSentinel = 9999

// PlanSignals summarizes an organization's drinking water safety plans.
type PlanSignals struct {
	ApprovedPlans     int     `json:"approved_plans"`
	DaysSinceReview   int     `json:"days_since_review"`  // NoReviewSentinel when never reviewed
	ElementCompletion float64 `json:"element_completion"` // 0.0-1.0 across mandatory DWSP elements
}

// AssetSignals summarizes the registered asset base.
type AssetSignals struct {
	TotalAssets       int `json:"total_assets"`
	CriticalRisk      int `json:"critical_risk"`       // assets flagged critical-risk
	InspectedLast90   int `json:"inspected_last_90"`   // assets inspected in the last 90 days
	VeryPoorCondition int `json:"very_poor_condition"` // assets in "very poor" condition
}

// CriticalRatio returns the fraction of assets flagged critical-risk.
func (a AssetSignals) CriticalRatio() float64 {
	if a.TotalAssets == 0 {
		return 0
	}
	return float64(a.CriticalRisk) / float64(a.TotalAssets)
}

// InspectedRatio returns the fraction of assets inspected in the last 90 days.
func (a AssetSignals) InspectedRatio() float64 {
	if a.TotalAssets == 0 {
		return 0
	}
	return float64(a.InspectedLast90) / float64(a.TotalAssets)
}

// VeryPoorRatio returns the fraction of assets in "very poor" condition.
func (a AssetSignals) VeryPoorRatio() float64 {
	if a.TotalAssets == 0 {
		return 0
	}
	return float64(a.VeryPoorCondition) / float64(a.TotalAssets)
}

// RequiredDocumentTypes is the number of document-type categories an
// organization is expected to maintain: plan, report, procedure, certificate.
const RequiredDocumentTypes = 4

// DocumentSignals summarizes documentation completeness.
type DocumentSignals struct {
	TotalDocuments int  `json:"total_documents"`
	HasPlan        bool `json:"has_plan"`
	HasReport      bool `json:"has_report"`
	HasProcedure   bool `json:"has_procedure"`
	HasCertificate bool `json:"has_certificate"`
	UploadedLast90 int  `json:"uploaded_last_90"`
}

// TypesPresent counts how many of the required document-type categories exist.
func (d DocumentSignals) TypesPresent() int {
	n := 0
	for _, ok := range []bool{d.HasPlan, d.HasReport, d.HasProcedure, d.HasCertificate} {
		if ok {
			n++
		}
	}
	return n
}

// ReportSignals summarizes regulatory report cadence.
type ReportSignals struct {
	AnnualThisYear bool `json:"annual_this_year"`
	AnnualLastYear bool `json:"annual_last_year"`
	QuarterlyCount int  `json:"quarterly_count"` // quarterly reports filed this calendar year
	MonthlyLast90  int  `json:"monthly_last_90"` // monthly reports filed in the last 90 days

	// ExpectedAnnualSamples is a planning heuristic (rule count x months),
	// not a cited regulatory requirement. Feeds diagnostics only.
	ExpectedAnnualSamples int `json:"expected_annual_samples,omitempty"`
}

// RiskSignals summarizes risk-assessment activity and incidents.
type RiskSignals struct {
	TotalAssessments    int `json:"total_assessments"`
	DaysSinceAssessment int `json:"days_since_assessment"` // NoReviewSentinel when none
	IncidentsLast90     int `json:"incidents_last_90"`
}

// TimelinessSignals summarizes deadline posture.
type TimelinessSignals struct {
	OverdueItems int `json:"overdue_items"`
	DueWithin7   int `json:"due_within_7"`
}

// Snapshot bundles all domain signals for one organization at one instant.
type Snapshot struct {
	OrgID       string            `json:"org_id"`
	Plans       PlanSignals       `json:"plans"`
	Assets      AssetSignals      `json:"assets"`
	Documents   DocumentSignals   `json:"documents"`
	Reports     ReportSignals     `json:"reports"`
	Risk        RiskSignals       `json:"risk"`
	Timeliness  TimelinessSignals `json:"timeliness"`
	CollectedAt time.Time         `json:"collected_at"`
}
