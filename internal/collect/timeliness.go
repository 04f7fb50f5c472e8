package collect

import (
	"context"
	"fmt"

	"github.com/aquascore/aquascore/pkg/signals"
)

// Timeliness aggregates open compliance items into overdue and
// due-this-week buckets. Completed items never count.
func (c *Collector) Timeliness(ctx context.Context, orgID string) (signals.TimelinessSignals, error) {
	var t signals.TimelinessSignals

	err := c.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FILTER (WHERE due_at < now()),
		        COUNT(*) FILTER (WHERE due_at >= now()
		           AND due_at < now() + interval '7 days')
		 FROM compliance_items
		 WHERE org_id = $1 AND completed_at IS NULL`,
		orgID,
	).Scan(&t.OverdueItems, &t.DueWithin7)
	if err != nil {
		return signals.TimelinessSignals{}, fmt.Errorf("collect timeliness signals: %w", err)
	}
	return t, nil
}
