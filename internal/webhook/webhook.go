// Package webhook handles change notifications from the records platform.
// Whenever an organization's regulatory records change, the platform posts
// an event here and the daemon recomputes that organization's score.
package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
)

// VerifySignature validates the X-Aquascore-Signature-256 header against the payload.
func VerifySignature(payload []byte, signature string, secret []byte) error {
	if !strings.HasPrefix(signature, "sha256=") {
		return fmt.Errorf("invalid signature format")
	}
	sig, err := hex.DecodeString(signature[7:])
	if err != nil {
		return fmt.Errorf("decode signature: %w", err)
	}

	mac := hmac.New(sha256.New, secret)
	mac.Write(payload)
	expected := mac.Sum(nil)

	if !hmac.Equal(sig, expected) {
		return fmt.Errorf("signature mismatch")
	}
	return nil
}

// RecordChangeEvent signals that a regulatory record was created, updated,
// or deleted for an organization.
type RecordChangeEvent struct {
	Action       string              `json:"action"`
	RecordType   string              `json:"record_type"`
	RecordID     string              `json:"record_id"`
	Organization OrganizationPayload `json:"organization"`
}

// OrganizationEvent signals organization lifecycle changes on the platform.
type OrganizationEvent struct {
	Action       string              `json:"action"`
	Organization OrganizationPayload `json:"organization"`
}

// OrganizationPayload identifies the organization an event belongs to.
type OrganizationPayload struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	SupplyCode string `json:"supply_code,omitempty"`
}

// recordTypes lists the record kinds whose changes affect the score.
var recordTypes = map[string]bool{
	"safety_plan":     true,
	"asset":           true,
	"document":        true,
	"report":          true,
	"risk_assessment": true,
	"incident":        true,
	"compliance_item": true,
}

// AffectsScore reports whether this change can move the compliance score.
func (e *RecordChangeEvent) AffectsScore() bool {
	return recordTypes[e.RecordType]
}

// ParseEvent parses a webhook payload based on the event type.
func ParseEvent(eventType string, payload []byte) (interface{}, error) {
	switch eventType {
	case "record_change":
		var e RecordChangeEvent
		if err := json.Unmarshal(payload, &e); err != nil {
			return nil, fmt.Errorf("parse record_change event: %w", err)
		}
		return &e, nil
	case "organization":
		var e OrganizationEvent
		if err := json.Unmarshal(payload, &e); err != nil {
			return nil, fmt.Errorf("parse organization event: %w", err)
		}
		return &e, nil
	default:
		return nil, fmt.Errorf("unsupported event type: %s", eventType)
	}
}
