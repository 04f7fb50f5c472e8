// Package compute orchestrates a full scoring run: collect signals, run the
// scoring engine, then persist to every configured sink. Computation and
// persistence are deliberately separate; a sink failure never voids a score.
package compute

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/aquascore/aquascore/internal/events"
	"github.com/aquascore/aquascore/internal/org"
	"github.com/aquascore/aquascore/pkg/scoring"
	"github.com/aquascore/aquascore/pkg/signals"
)

// SnapshotCollector abstracts signal collection so the compute package does
// not depend on a concrete database-backed implementation.
type SnapshotCollector interface {
	Snapshot(ctx context.Context, orgID string) (*signals.Snapshot, error)
}

// ScoreStore persists score rows and serves recent history.
type ScoreStore interface {
	InsertScore(ctx context.Context, row *org.ScoreRow) error
	RecentOverallScores(ctx context.Context, orgID string, limit int) ([]float64, error)
}

// Archiver stores immutable audit copies of reports and their inputs.
type Archiver interface {
	PutScore(ctx context.Context, orgID, scoreID string, data []byte) error
	PutSnapshot(ctx context.Context, orgID, scoreID string, data []byte) error
}

// Publisher emits score lifecycle events.
type Publisher interface {
	PublishScore(ctx context.Context, ev events.ScoreComputed) error
}

// Recorder receives scoring telemetry. Satisfied by observability.Metrics.
type Recorder interface {
	ScoreComputed(orgID, status string, overall int, duration time.Duration)
	CollectorFailure()
	PersistWarning(sink string)
}

// Result pairs a computed score with its persistence identifiers.
type Result struct {
	ScoreID    string
	ArchiveRef string
	Score      *scoring.ComplianceScore
	Snapshot   *signals.Snapshot
}

// Service runs scoring for organizations.
type Service struct {
	collector SnapshotCollector
	engine    *scoring.Engine
	store     ScoreStore
	archive   Archiver
	publisher Publisher
	metrics   Recorder

	historyDepth int
}

// NewService wires a compute Service. Archive, publisher, and metrics are
// optional: pass nil to disable that sink.
func NewService(collector SnapshotCollector, engine *scoring.Engine, store ScoreStore, archive Archiver, publisher Publisher, metrics Recorder, historyDepth int) *Service {
	if historyDepth <= 0 {
		historyDepth = 2
	}
	return &Service{
		collector:    collector,
		engine:       engine,
		store:        store,
		archive:      archive,
		publisher:    publisher,
		metrics:      metrics,
		historyDepth: historyDepth,
	}
}

// ScoreOrganization computes a fresh compliance score for one organization.
// Collection, history lookup, or engine failure aborts the run. Persistence
// failures are logged and counted but do not fail the run: the caller still
// gets the computed score.
func (s *Service) ScoreOrganization(ctx context.Context, orgID string) (*Result, error) {
	start := time.Now()

	snap, err := s.collector.Snapshot(ctx, orgID)
	if err != nil {
		if s.metrics != nil {
			s.metrics.CollectorFailure()
		}
		return nil, fmt.Errorf("collect snapshot: %w", err)
	}

	history, err := s.store.RecentOverallScores(ctx, orgID, s.historyDepth)
	if err != nil {
		// The history lookup is a data-access read like the collectors;
		// a store failure aborts the run rather than mislabel the trend.
		if s.metrics != nil {
			s.metrics.CollectorFailure()
		}
		return nil, fmt.Errorf("load score history for %s: %w", orgID, err)
	}

	score, err := s.engine.Score(snap, history)
	if err != nil {
		return nil, fmt.Errorf("score organization %s: %w", orgID, err)
	}

	res := &Result{
		ScoreID:  uuid.NewString(),
		Score:    score,
		Snapshot: snap,
	}
	s.persist(ctx, res)

	status := scoring.StatusFromPercent(float64(score.Overall))
	if s.metrics != nil {
		s.metrics.ScoreComputed(orgID, string(status), score.Overall, time.Since(start))
	}
	if s.publisher != nil {
		ev := events.ScoreComputed{
			ScoreID:    res.ScoreID,
			OrgID:      orgID,
			Overall:    score.Overall,
			Status:     status,
			Trend:      score.Trend,
			ComputedAt: score.ComputedAt,
		}
		if err := s.publisher.PublishScore(ctx, ev); err != nil {
			log.Printf("warn: publish score event for %s: %v", orgID, err)
			if s.metrics != nil {
				s.metrics.PersistWarning("events")
			}
		}
	}

	return res, nil
}

// persist writes the score to the archive and the database. Each sink fails
// independently.
func (s *Service) persist(ctx context.Context, res *Result) {
	score := res.Score

	if s.archive != nil {
		if data, err := json.Marshal(score); err != nil {
			s.warn("archive", score.OrgID, err)
		} else if err := s.archive.PutScore(ctx, score.OrgID, res.ScoreID, data); err != nil {
			s.warn("archive", score.OrgID, err)
		} else {
			res.ArchiveRef = fmt.Sprintf("%s/scores/%s.json", score.OrgID, res.ScoreID)
		}

		if data, err := json.Marshal(res.Snapshot); err != nil {
			s.warn("archive", score.OrgID, err)
		} else if err := s.archive.PutSnapshot(ctx, score.OrgID, res.ScoreID, data); err != nil {
			s.warn("archive", score.OrgID, err)
		}
	}

	row, err := s.scoreRow(res)
	if err != nil {
		s.warn("database", score.OrgID, err)
		return
	}
	if err := s.store.InsertScore(ctx, row); err != nil {
		s.warn("database", score.OrgID, err)
	}
}

func (s *Service) scoreRow(res *Result) (*org.ScoreRow, error) {
	score := res.Score

	breakdownJSON, err := json.Marshal(score.Breakdown)
	if err != nil {
		return nil, fmt.Errorf("marshal breakdown: %w", err)
	}
	recsJSON, err := json.Marshal(score.Recommendations)
	if err != nil {
		return nil, fmt.Errorf("marshal recommendations: %w", err)
	}

	return &org.ScoreRow{
		ID:              res.ScoreID,
		OrgID:           score.OrgID,
		Overall:         score.Overall,
		DWSP:            categoryScore(score, scoring.CategoryDWSP),
		Assets:          categoryScore(score, scoring.CategoryAssets),
		Documentation:   categoryScore(score, scoring.CategoryDocumentation),
		Reporting:       categoryScore(score, scoring.CategoryReporting),
		Risk:            categoryScore(score, scoring.CategoryRisk),
		Timeliness:      categoryScore(score, scoring.CategoryTimeliness),
		Trend:           string(score.Trend),
		Breakdown:       breakdownJSON,
		Recommendations: recsJSON,
		ArchiveRef:      res.ArchiveRef,
		ComputedAt:      score.ComputedAt,
	}, nil
}

func (s *Service) warn(sink, orgID string, err error) {
	log.Printf("warn: persist score (%s) for %s: %v", sink, orgID, err)
	if s.metrics != nil {
		s.metrics.PersistWarning(sink)
	}
}

func categoryScore(score *scoring.ComplianceScore, cat scoring.Category) float64 {
	return score.Breakdown[cat].Score
}
