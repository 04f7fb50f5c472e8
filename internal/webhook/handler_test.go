package webhook

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func computeHMAC(payload, secret []byte) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write(payload)
	return "sha256=" + hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature(t *testing.T) {
	secret := []byte("webhook-secret-123")
	payload := []byte(`{"action":"created"}`)

	tests := []struct {
		name      string
		payload   []byte
		signature string
		secret    []byte
		wantErr   bool
	}{
		{
			name:      "valid signature",
			payload:   payload,
			signature: computeHMAC(payload, secret),
			secret:    secret,
			wantErr:   false,
		},
		{
			name:      "wrong secret",
			payload:   payload,
			signature: computeHMAC(payload, []byte("wrong-secret")),
			secret:    secret,
			wantErr:   true,
		},
		{
			name:      "tampered payload",
			payload:   []byte(`{"action":"deleted"}`),
			signature: computeHMAC(payload, secret),
			secret:    secret,
			wantErr:   true,
		},
		{
			name:      "missing sha256= prefix",
			payload:   payload,
			signature: "not-a-valid-sig",
			secret:    secret,
			wantErr:   true,
		},
		{
			name:      "invalid hex after prefix",
			payload:   payload,
			signature: "sha256=zzzz",
			secret:    secret,
			wantErr:   true,
		},
		{
			name:      "empty signature",
			payload:   payload,
			signature: "",
			secret:    secret,
			wantErr:   true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := VerifySignature(tc.payload, tc.signature, tc.secret)
			if tc.wantErr && err == nil {
				t.Error("expected error, got nil")
			}
			if !tc.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestParseEvent_RecordChange(t *testing.T) {
	payload := RecordChangeEvent{
		Action:     "updated",
		RecordType: "safety_plan",
		RecordID:   "rec-1",
		Organization: OrganizationPayload{
			ID:   "org-1",
			Name: "Te Kuiti Water",
		},
	}
	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	event, err := ParseEvent("record_change", data)
	if err != nil {
		t.Fatalf("ParseEvent: %v", err)
	}
	rc, ok := event.(*RecordChangeEvent)
	if !ok {
		t.Fatalf("expected *RecordChangeEvent, got %T", event)
	}
	if rc.RecordType != "safety_plan" || rc.Organization.ID != "org-1" {
		t.Errorf("parsed = %+v, want safety_plan for org-1", rc)
	}
	if !rc.AffectsScore() {
		t.Error("safety_plan changes should affect the score")
	}
}

func TestRecordChangeAffectsScore(t *testing.T) {
	tests := []struct {
		recordType string
		want       bool
	}{
		{"safety_plan", true},
		{"asset", true},
		{"document", true},
		{"report", true},
		{"risk_assessment", true},
		{"incident", true},
		{"compliance_item", true},
		{"billing_invoice", false},
		{"user", false},
		{"", false},
	}

	for _, tc := range tests {
		t.Run(tc.recordType, func(t *testing.T) {
			e := &RecordChangeEvent{RecordType: tc.recordType}
			if got := e.AffectsScore(); got != tc.want {
				t.Errorf("AffectsScore(%q) = %v, want %v", tc.recordType, got, tc.want)
			}
		})
	}
}

func TestParseEvent_UnsupportedType(t *testing.T) {
	_, err := ParseEvent("unknown_event", []byte(`{}`))
	if err == nil {
		t.Error("expected error for unsupported event type, got nil")
	}
}

func TestParseEvent_InvalidJSON(t *testing.T) {
	for _, eventType := range []string{"record_change", "organization"} {
		t.Run(eventType, func(t *testing.T) {
			_, err := ParseEvent(eventType, []byte(`{invalid json`))
			if err == nil {
				t.Errorf("expected error parsing invalid JSON for %s, got nil", eventType)
			}
		})
	}
}

func TestHandlerTriggersRescore(t *testing.T) {
	secret := []byte("secret")
	done := make(chan string, 1)

	h := NewHandler(secret, nil, RescoreFunc(func(ctx context.Context, orgID string) {
		done <- orgID
	}))

	body, _ := json.Marshal(RecordChangeEvent{
		Action:       "created",
		RecordType:   "report",
		RecordID:     "rec-9",
		Organization: OrganizationPayload{ID: "org-7", Name: "Ohakune Supply"},
	})

	req := httptest.NewRequest(http.MethodPost, "/v1/webhooks/records", bytes.NewReader(body))
	req.Header.Set("X-Aquascore-Event", "record_change")
	req.Header.Set("X-Aquascore-Signature-256", computeHMAC(body, secret))
	rr := httptest.NewRecorder()

	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want 202", rr.Code)
	}
	select {
	case orgID := <-done:
		if orgID != "org-7" {
			t.Errorf("rescored %q, want org-7", orgID)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("rescore never triggered")
	}
}

func TestHandlerRejectsBadSignature(t *testing.T) {
	h := NewHandler([]byte("secret"), nil, nil)

	body := []byte(`{"action":"created"}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/webhooks/records", bytes.NewReader(body))
	req.Header.Set("X-Aquascore-Event", "record_change")
	req.Header.Set("X-Aquascore-Signature-256", "sha256=deadbeef")
	rr := httptest.NewRecorder()

	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rr.Code)
	}
}

func TestHandlerRejectsNonPost(t *testing.T) {
	h := NewHandler([]byte("secret"), nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/webhooks/records", nil)
	rr := httptest.NewRecorder()

	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rr.Code)
	}
}

func TestHandlerIgnoresUnscoredRecordTypes(t *testing.T) {
	secret := []byte("secret")
	called := make(chan string, 1)
	h := NewHandler(secret, nil, RescoreFunc(func(ctx context.Context, orgID string) {
		called <- orgID
	}))

	body, _ := json.Marshal(RecordChangeEvent{
		Action:       "created",
		RecordType:   "billing_invoice",
		Organization: OrganizationPayload{ID: "org-7"},
	})

	req := httptest.NewRequest(http.MethodPost, "/v1/webhooks/records", bytes.NewReader(body))
	req.Header.Set("X-Aquascore-Event", "record_change")
	req.Header.Set("X-Aquascore-Signature-256", computeHMAC(body, secret))
	rr := httptest.NewRecorder()

	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want 202", rr.Code)
	}
	select {
	case orgID := <-called:
		t.Errorf("unexpected rescore for %q on a non-scoring record type", orgID)
	case <-time.After(100 * time.Millisecond):
	}
}
