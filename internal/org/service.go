// Package org manages organizations (water suppliers) and their append-only
// compliance score history.
package org

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Service provides organization and score-history access backed by Postgres.
type Service struct {
	db *sql.DB
}

// Organization represents a water supplier tracked by AquaScore.
type Organization struct {
	ID         string
	Name       string
	SupplyCode *string // regulator-issued supply identifier, when known
	CreatedAt  time.Time
}

// ScoreRow represents a compliance score record from the database.
// Rows are append-only: the scoring engine never updates or deletes them.
type ScoreRow struct {
	ID              string
	OrgID           string
	Overall         int
	DWSP            float64
	Assets          float64
	Documentation   float64
	Reporting       float64
	Risk            float64
	Timeliness      float64
	Trend           string
	Breakdown       json.RawMessage
	Recommendations json.RawMessage
	ArchiveRef      string
	ComputedAt      time.Time
	CreatedAt       time.Time
}

// NewService creates a new org Service.
func NewService(db *sql.DB) *Service {
	return &Service{db: db}
}

// CreateOrganization creates a new organization.
func (s *Service) CreateOrganization(ctx context.Context, name string, supplyCode *string) (*Organization, error) {
	o := &Organization{}
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO organizations (name, supply_code)
		 VALUES ($1, $2)
		 RETURNING id, name, supply_code, created_at`,
		name, supplyCode,
	).Scan(&o.ID, &o.Name, &o.SupplyCode, &o.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create organization: %w", err)
	}
	return o, nil
}

// GetOrganization retrieves an organization by ID.
func (s *Service) GetOrganization(ctx context.Context, id string) (*Organization, error) {
	o := &Organization{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, supply_code, created_at
		 FROM organizations WHERE id = $1`,
		id,
	).Scan(&o.ID, &o.Name, &o.SupplyCode, &o.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("get organization %s: %w", id, err)
	}
	return o, nil
}

// GetOrganizationByName looks up an organization by name.
func (s *Service) GetOrganizationByName(ctx context.Context, name string) (*Organization, error) {
	o := &Organization{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, supply_code, created_at
		 FROM organizations WHERE name = $1`,
		name,
	).Scan(&o.ID, &o.Name, &o.SupplyCode, &o.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("get organization by name %s: %w", name, err)
	}
	return o, nil
}

// EnsureOrganization gets or creates an organization by name.
func (s *Service) EnsureOrganization(ctx context.Context, name string) (*Organization, error) {
	o, err := s.GetOrganizationByName(ctx, name)
	if err == nil {
		return o, nil
	}

	o, err = s.CreateOrganization(ctx, name, nil)
	if err != nil {
		// Could be a race condition; try getting again
		if strings.Contains(err.Error(), "duplicate") || strings.Contains(err.Error(), "unique") {
			return s.GetOrganizationByName(ctx, name)
		}
		return nil, fmt.Errorf("ensure organization: %w", err)
	}
	return o, nil
}

// ListOrganizations returns all organizations ordered by name.
func (s *Service) ListOrganizations(ctx context.Context) ([]Organization, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, supply_code, created_at
		 FROM organizations ORDER BY name`,
	)
	if err != nil {
		return nil, fmt.Errorf("list organizations: %w", err)
	}
	defer rows.Close()

	var orgs []Organization
	for rows.Next() {
		var o Organization
		if err := rows.Scan(&o.ID, &o.Name, &o.SupplyCode, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan organization: %w", err)
		}
		orgs = append(orgs, o)
	}
	return orgs, rows.Err()
}

// InsertScore appends a score row to the organization's history.
func (s *Service) InsertScore(ctx context.Context, row *ScoreRow) error {
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO compliance_scores
		   (id, org_id, overall, dwsp_score, asset_score, documentation_score,
		    reporting_score, risk_score, timeliness_score, trend,
		    breakdown, recommendations, archive_ref, computed_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		 RETURNING created_at`,
		row.ID, row.OrgID, row.Overall,
		row.DWSP, row.Assets, row.Documentation,
		row.Reporting, row.Risk, row.Timeliness, row.Trend,
		row.Breakdown, row.Recommendations, nilIfEmpty(row.ArchiveRef), row.ComputedAt,
	).Scan(&row.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert score row: %w", err)
	}
	return nil
}

// ListScores returns all scores for an organization, newest first.
func (s *Service) ListScores(ctx context.Context, orgID string) ([]ScoreRow, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, org_id, overall, dwsp_score, asset_score, documentation_score,
		        reporting_score, risk_score, timeliness_score, trend,
		        breakdown, recommendations, COALESCE(archive_ref, ''), computed_at, created_at
		 FROM compliance_scores WHERE org_id = $1 ORDER BY computed_at DESC`,
		orgID,
	)
	if err != nil {
		return nil, fmt.Errorf("list scores: %w", err)
	}
	defer rows.Close()

	var scores []ScoreRow
	for rows.Next() {
		var sc ScoreRow
		if err := rows.Scan(
			&sc.ID, &sc.OrgID, &sc.Overall,
			&sc.DWSP, &sc.Assets, &sc.Documentation,
			&sc.Reporting, &sc.Risk, &sc.Timeliness, &sc.Trend,
			&sc.Breakdown, &sc.Recommendations, &sc.ArchiveRef, &sc.ComputedAt, &sc.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan score: %w", err)
		}
		scores = append(scores, sc)
	}
	return scores, rows.Err()
}

// GetLatestScore returns the most recent score for an organization.
func (s *Service) GetLatestScore(ctx context.Context, orgID string) (*ScoreRow, error) {
	sc := &ScoreRow{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, org_id, overall, dwsp_score, asset_score, documentation_score,
		        reporting_score, risk_score, timeliness_score, trend,
		        breakdown, recommendations, COALESCE(archive_ref, ''), computed_at, created_at
		 FROM compliance_scores WHERE org_id = $1
		 ORDER BY computed_at DESC LIMIT 1`,
		orgID,
	).Scan(
		&sc.ID, &sc.OrgID, &sc.Overall,
		&sc.DWSP, &sc.Assets, &sc.Documentation,
		&sc.Reporting, &sc.Risk, &sc.Timeliness, &sc.Trend,
		&sc.Breakdown, &sc.Recommendations, &sc.ArchiveRef, &sc.ComputedAt, &sc.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("get latest score for %s: %w", orgID, err)
	}
	return sc, nil
}

// RecentOverallScores returns up to limit prior overall scores for an
// organization, newest first. Returns an empty slice when no history exists.
func (s *Service) RecentOverallScores(ctx context.Context, orgID string, limit int) ([]float64, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT overall FROM compliance_scores
		 WHERE org_id = $1 ORDER BY computed_at DESC LIMIT $2`,
		orgID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("recent overall scores: %w", err)
	}
	defer rows.Close()

	var scores []float64
	for rows.Next() {
		var v float64
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scan overall score: %w", err)
		}
		scores = append(scores, v)
	}
	return scores, rows.Err()
}

func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
