package collect

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/aquascore/aquascore/pkg/signals"
)

// Risk aggregates risk-assessment recency and recent incident volume.
// Assessments and incidents live in separate tables; a single round trip
// joins both aggregates.
func (c *Collector) Risk(ctx context.Context, orgID string) (signals.RiskSignals, error) {
	var (
		r      signals.RiskSignals
		latest sql.NullTime
	)

	err := c.db.QueryRowContext(ctx,
		`SELECT (SELECT COUNT(*) FROM risk_assessments WHERE org_id = $1),
		        (SELECT MAX(assessed_at) FROM risk_assessments WHERE org_id = $1),
		        (SELECT COUNT(*) FROM incidents
		          WHERE org_id = $1 AND occurred_at >= now() - interval '90 days')`,
		orgID,
	).Scan(&r.TotalAssessments, &latest, &r.IncidentsLast90)
	if err != nil {
		return signals.RiskSignals{}, fmt.Errorf("collect risk signals: %w", err)
	}

	r.DaysSinceAssessment = daysSince(latest, time.Now())
	return r, nil
}
