package collect

import (
	"context"
	"fmt"

	"github.com/aquascore/aquascore/pkg/signals"
)

// monitoringRuleCount approximates the number of active monitoring rules a
// small supplier carries. Used only for the sampling diagnostic.
const monitoringRuleCount = 50

// Reports aggregates regulatory report filings across the three cadences.
// Annual and quarterly counts are scoped to the calendar year; monthly
// filings use a rolling 90-day window.
func (c *Collector) Reports(ctx context.Context, orgID string) (signals.ReportSignals, error) {
	var r signals.ReportSignals

	err := c.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FILTER (WHERE period = 'annual'
		           AND period_year = EXTRACT(YEAR FROM now())::int) > 0,
		        COUNT(*) FILTER (WHERE period = 'annual'
		           AND period_year = EXTRACT(YEAR FROM now())::int - 1) > 0,
		        COUNT(*) FILTER (WHERE period = 'quarterly'
		           AND period_year = EXTRACT(YEAR FROM now())::int),
		        COUNT(*) FILTER (WHERE period = 'monthly'
		           AND filed_at >= now() - interval '90 days')
		 FROM reports WHERE org_id = $1`,
		orgID,
	).Scan(&r.AnnualThisYear, &r.AnnualLastYear, &r.QuarterlyCount, &r.MonthlyLast90)
	if err != nil {
		return signals.ReportSignals{}, fmt.Errorf("collect report signals: %w", err)
	}

	r.ExpectedAnnualSamples = monitoringRuleCount * 12
	return r, nil
}
