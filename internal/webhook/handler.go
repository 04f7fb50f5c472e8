package webhook

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/aquascore/aquascore/internal/org"
)

// Rescorer triggers a fresh scoring run for one organization.
type Rescorer interface {
	Rescore(ctx context.Context, orgID string)
}

// RescoreFunc adapts a function to the Rescorer interface.
type RescoreFunc func(ctx context.Context, orgID string)

func (f RescoreFunc) Rescore(ctx context.Context, orgID string) { f(ctx, orgID) }

// rescoreTimeout bounds the async scoring run kicked off by a webhook.
const rescoreTimeout = 2 * time.Minute

// Handler processes incoming record-change notifications.
type Handler struct {
	secret   []byte
	orgs     *org.Service
	rescorer Rescorer
}

// NewHandler creates a webhook Handler.
func NewHandler(secret []byte, orgs *org.Service, rescorer Rescorer) *Handler {
	return &Handler{secret: secret, orgs: orgs, rescorer: rescorer}
}

// ServeHTTP handles incoming webhook requests. Rescoring happens async:
// the sender gets 202 as soon as the event is verified and parsed.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20)) // 1 MB limit
	if err != nil {
		http.Error(w, "failed to read body", http.StatusBadRequest)
		return
	}

	signature := r.Header.Get("X-Aquascore-Signature-256")
	if err := VerifySignature(body, signature, h.secret); err != nil {
		log.Printf("webhook signature verification failed: %v", err)
		http.Error(w, "invalid signature", http.StatusUnauthorized)
		return
	}

	eventType := r.Header.Get("X-Aquascore-Event")
	if eventType == "" {
		http.Error(w, "missing X-Aquascore-Event header", http.StatusBadRequest)
		return
	}

	event, err := ParseEvent(eventType, body)
	if err != nil {
		log.Printf("webhook parse error for %s: %v", eventType, err)
		http.Error(w, "unsupported event", http.StatusBadRequest)
		return
	}

	switch e := event.(type) {
	case *RecordChangeEvent:
		h.handleRecordChange(e)
	case *OrganizationEvent:
		if err := h.handleOrganization(r.Context(), e); err != nil {
			log.Printf("handle organization event: %v", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
	}

	w.WriteHeader(http.StatusAccepted)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "accepted"})
}

func (h *Handler) handleRecordChange(e *RecordChangeEvent) {
	if !e.AffectsScore() {
		log.Printf("webhook: ignoring %s change for %s", e.RecordType, e.Organization.ID)
		return
	}
	if h.rescorer == nil || e.Organization.ID == "" {
		return
	}

	orgID := e.Organization.ID
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), rescoreTimeout)
		defer cancel()
		h.rescorer.Rescore(ctx, orgID)
	}()
}

func (h *Handler) handleOrganization(ctx context.Context, e *OrganizationEvent) error {
	if e.Action != "created" || h.orgs == nil {
		return nil
	}
	if _, err := h.orgs.EnsureOrganization(ctx, e.Organization.Name); err != nil {
		return err
	}
	log.Printf("webhook: registered organization %q", e.Organization.Name)
	return nil
}
