// Package collect implements the read-only aggregate queries that feed the
// compliance scoring engine. Each collector reads one regulatory domain;
// Snapshot fans all of them out concurrently and joins before returning.
package collect

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/aquascore/aquascore/pkg/signals"
)

// Collector runs aggregate queries against the organizational record store.
// All queries are side-effect-free reads; missing data is represented as
// zero counts or sentinel values, never as an error.
type Collector struct {
	db *sql.DB
}

// New creates a Collector backed by the given database.
func New(db *sql.DB) *Collector {
	return &Collector{db: db}
}

// Snapshot collects all six domains concurrently for one organization.
// A failure in any collector aborts the whole snapshot: the scoring engine
// never sees partial data.
func (c *Collector) Snapshot(ctx context.Context, orgID string) (*signals.Snapshot, error) {
	snap := &signals.Snapshot{OrgID: orgID}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		snap.Plans, err = c.Plans(ctx, orgID)
		return err
	})
	g.Go(func() error {
		var err error
		snap.Assets, err = c.Assets(ctx, orgID)
		return err
	})
	g.Go(func() error {
		var err error
		snap.Documents, err = c.Documents(ctx, orgID)
		return err
	})
	g.Go(func() error {
		var err error
		snap.Reports, err = c.Reports(ctx, orgID)
		return err
	})
	g.Go(func() error {
		var err error
		snap.Risk, err = c.Risk(ctx, orgID)
		return err
	})
	g.Go(func() error {
		var err error
		snap.Timeliness, err = c.Timeliness(ctx, orgID)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("collect signals for %s: %w", orgID, err)
	}

	snap.CollectedAt = time.Now().UTC()
	return snap, nil
}

// daysSince converts an optional timestamp into whole days before now,
// returning the sentinel when the timestamp is absent.
func daysSince(t sql.NullTime, now time.Time) int {
	if !t.Valid {
		return signals.NoReviewSentinel
	}
	d := int(now.Sub(t.Time).Hours() / 24)
	if d < 0 {
		return 0
	}
	return d
}
