package collect

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/aquascore/aquascore/pkg/signals"
)

// Plans aggregates drinking water safety plan records. Completion is taken
// from the most recently reviewed approved plan.
func (c *Collector) Plans(ctx context.Context, orgID string) (signals.PlanSignals, error) {
	var (
		p          signals.PlanSignals
		lastReview sql.NullTime
		completion sql.NullFloat64
	)

	err := c.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FILTER (WHERE status = 'approved'),
		        MAX(last_reviewed_at) FILTER (WHERE status = 'approved'),
		        (SELECT element_completion FROM safety_plans
		          WHERE org_id = $1 AND status = 'approved'
		          ORDER BY last_reviewed_at DESC NULLS LAST LIMIT 1)
		 FROM safety_plans WHERE org_id = $1`,
		orgID,
	).Scan(&p.ApprovedPlans, &lastReview, &completion)
	if err != nil {
		return signals.PlanSignals{}, fmt.Errorf("collect plan signals: %w", err)
	}

	p.DaysSinceReview = daysSince(lastReview, time.Now())
	if completion.Valid {
		p.ElementCompletion = completion.Float64
	}
	return p, nil
}
