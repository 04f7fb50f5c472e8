package scoring

import (
	"fmt"
	"sort"

	"github.com/aquascore/aquascore/pkg/signals"
)

// GenerateRecommendations produces prioritized remediation items. Rules
// inspect both category scores and raw signal fields so the text can name
// the specific gap rather than restating the score.
func GenerateRecommendations(snap *signals.Snapshot, breakdown map[Category]Component) []Recommendation {
	var recs []Recommendation

	if dwsp, ok := breakdown[CategoryDWSP]; ok {
		if dwsp.Score < 60 {
			recs = append(recs, Recommendation{
				Category: CategoryDWSP,
				Severity: SeverityCritical,
				Issue:    "no approved drinking water safety plan, or plan is substantially incomplete",
				Action:   "create or complete a DWSP covering all mandatory elements and submit it for approval",
				Impact:   35,
			})
		} else if snap.Plans.DaysSinceReview > 365 {
			years := float64(snap.Plans.DaysSinceReview) / 365
			recs = append(recs, Recommendation{
				Category: CategoryDWSP,
				Severity: SeverityHigh,
				Issue:    fmt.Sprintf("safety plan last reviewed %.1f years ago", years),
				Action:   "schedule a plan review; reviews are expected at least annually",
				Impact:   7,
			})
		}
	}

	if assets, ok := breakdown[CategoryAssets]; ok && assets.Score < 60 {
		if snap.Assets.InspectedRatio() < 0.50 {
			recs = append(recs, Recommendation{
				Category: CategoryAssets,
				Severity: SeverityHigh,
				Issue: fmt.Sprintf("only %.0f%% of assets inspected in the last 90 days",
					snap.Assets.InspectedRatio()*100),
				Action: "catch up the inspection backlog, prioritizing critical-risk assets",
				Impact: 10,
			})
		}
		if snap.Assets.CriticalRatio() > 0.20 {
			recs = append(recs, Recommendation{
				Category: CategoryAssets,
				Severity: SeverityHigh,
				Issue: fmt.Sprintf("%.0f%% of assets are rated critical-risk",
					snap.Assets.CriticalRatio()*100),
				Action: "plan renewals or mitigations to bring critical-risk assets below 20%",
				Impact: 8,
			})
		}
	}

	if docs, ok := breakdown[CategoryDocumentation]; ok && docs.Score < 70 {
		recs = append(recs, Recommendation{
			Category: CategoryDocumentation,
			Severity: SeverityMedium,
			Issue: fmt.Sprintf("%d of %d required document types on file",
				snap.Documents.TypesPresent(), signals.RequiredDocumentTypes),
			Action: "upload current plans, reports, procedures, and certificates",
			Impact: 5,
		})
	}

	if reports, ok := breakdown[CategoryReporting]; ok && reports.Score < 70 {
		recs = append(recs, Recommendation{
			Category: CategoryReporting,
			Severity: SeverityHigh,
			Issue:    "regulatory reporting cadence is behind schedule",
			Action:   "file the outstanding annual, quarterly, or monthly reports",
			Impact:   12,
		})
	}

	if overdue := snap.Timeliness.OverdueItems; overdue > 0 {
		sev := SeverityHigh
		if overdue > 5 {
			sev = SeverityCritical
		}
		recs = append(recs, Recommendation{
			Category: CategoryTimeliness,
			Severity: sev,
			Issue:    fmt.Sprintf("%d compliance item(s) overdue", overdue),
			Action:   "clear overdue items, oldest deadlines first",
			Impact:   5,
		})
	}

	// Severity rank first, then descending potential impact. Stable so
	// generation order breaks remaining ties.
	sort.SliceStable(recs, func(i, j int) bool {
		ri, rj := severityRank(recs[i].Severity), severityRank(recs[j].Severity)
		if ri != rj {
			return ri < rj
		}
		return recs[i].Impact > recs[j].Impact
	})

	return recs
}
