package report_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/aquascore/aquascore/pkg/report"
	"github.com/aquascore/aquascore/pkg/scoring"
)

func sampleScore() *scoring.ComplianceScore {
	return &scoring.ComplianceScore{
		OrgID:   "org-1",
		Overall: 62,
		Breakdown: map[scoring.Category]scoring.Component{
			scoring.CategoryDWSP: {
				Category: scoring.CategoryDWSP,
				Name:     "Drinking Water Safety Plan",
				Score:    80, MaxScore: 100, Weight: 0.35, Weighted: 28,
				Status: scoring.StatusGood,
				Detail: "1 approved plan(s), review overdue: last reviewed 1.4 years ago",
			},
			scoring.CategoryTimeliness: {
				Category: scoring.CategoryTimeliness,
				Name:     "Timeliness",
				Score:    20, MaxScore: 100, Weight: 0.05, Weighted: 1,
				Status: scoring.StatusCritical,
				Detail: "4 overdue item(s)",
			},
		},
		Recommendations: []scoring.Recommendation{
			{
				Category: scoring.CategoryDWSP,
				Severity: scoring.SeverityHigh,
				Issue:    "safety plan last reviewed 1.4 years ago",
				Action:   "schedule a plan review",
				Impact:   7,
			},
		},
		Trend:      scoring.TrendDeclining,
		ComputedAt: time.Date(2025, time.August, 15, 12, 0, 0, 0, time.UTC),
	}
}

func TestTerminalRenderer(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	var buf bytes.Buffer
	r := &report.TerminalRenderer{}
	if err := r.Render(&buf, sampleScore()); err != nil {
		t.Fatalf("Render: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"AquaScore: 62/100",
		"trend declining",
		"Drinking Water Safety Plan",
		"Timeliness",
		"Recommendations:",
		"schedule a plan review",
		"potential impact: 7 points",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("terminal output missing %q:\n%s", want, out)
		}
	}

	// DWSP displays before timeliness (descending weight order).
	if strings.Index(out, "Drinking Water Safety Plan") > strings.Index(out, "Timeliness") {
		t.Error("expected DWSP before Timeliness in breakdown")
	}
}

func TestTerminalRendererNoRecommendations(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	score := sampleScore()
	score.Recommendations = nil

	var buf bytes.Buffer
	if err := (&report.TerminalRenderer{}).Render(&buf, score); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(buf.String(), "No recommendations.") {
		t.Error("expected 'No recommendations.' section")
	}
}

func TestJSONRenderer(t *testing.T) {
	var buf bytes.Buffer
	if err := (&report.JSONRenderer{}).Render(&buf, sampleScore()); err != nil {
		t.Fatalf("Render: %v", err)
	}

	var decoded scoring.ComplianceScore
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.Overall != 62 {
		t.Errorf("Overall = %d, want 62", decoded.Overall)
	}
	if decoded.Trend != scoring.TrendDeclining {
		t.Errorf("Trend = %s, want declining", decoded.Trend)
	}
}
