package collect

import (
	"context"
	"fmt"

	"github.com/aquascore/aquascore/pkg/signals"
)

// Assets aggregates the registered asset base: totals, critical-risk count,
// 90-day inspection coverage, and condition.
func (c *Collector) Assets(ctx context.Context, orgID string) (signals.AssetSignals, error) {
	var a signals.AssetSignals

	err := c.db.QueryRowContext(ctx,
		`SELECT COUNT(*),
		        COUNT(*) FILTER (WHERE risk_rating = 'critical'),
		        COUNT(*) FILTER (WHERE last_inspected_at >= now() - interval '90 days'),
		        COUNT(*) FILTER (WHERE condition = 'very_poor')
		 FROM assets WHERE org_id = $1`,
		orgID,
	).Scan(&a.TotalAssets, &a.CriticalRisk, &a.InspectedLast90, &a.VeryPoorCondition)
	if err != nil {
		return signals.AssetSignals{}, fmt.Errorf("collect asset signals: %w", err)
	}
	return a, nil
}
