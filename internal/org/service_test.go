package org

import (
	"encoding/json"
	"testing"
	"time"
)

func TestNewService(t *testing.T) {
	// NewService should not panic with nil db (it just stores the reference).
	svc := NewService(nil)
	if svc == nil {
		t.Fatal("NewService returned nil")
	}
}

func TestScoreRowShape(t *testing.T) {
	breakdown := json.RawMessage(`{"dwsp":{"score":80}}`)
	row := ScoreRow{
		ID:         "score-uuid-1",
		OrgID:      "org-uuid-1",
		Overall:    74,
		DWSP:       80,
		Trend:      "improving",
		Breakdown:  breakdown,
		ComputedAt: time.Date(2025, time.August, 15, 12, 0, 0, 0, time.UTC),
	}

	if row.Overall != 74 {
		t.Errorf("Overall = %d, want 74", row.Overall)
	}
	if row.Trend != "improving" {
		t.Errorf("Trend = %q, want improving", row.Trend)
	}
	var decoded map[string]any
	if err := json.Unmarshal(row.Breakdown, &decoded); err != nil {
		t.Errorf("Breakdown is not valid JSON: %v", err)
	}
}

func TestNilIfEmpty(t *testing.T) {
	if nilIfEmpty("") != nil {
		t.Error("expected nil for empty string")
	}
	if v := nilIfEmpty("ref"); v == nil || *v != "ref" {
		t.Error("expected pointer to non-empty string")
	}
}
