package events

import (
	"time"

	"github.com/spec-kit/growid-bridge/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventCredentialIssued   EventType = "credential_issued"
	EventCredentialReissued EventType = "credential_reissued"
	EventCredentialRejected EventType = "credential_rejected"
)

// Event represents a credential lifecycle event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	GrowID    string      `json:"grow_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// CredentialIssuedPayload payload.
type CredentialIssuedPayload struct {
	ExpiresAt time.Time `json:"expires_at"`
}

// CredentialReissuedPayload payload.
type CredentialReissuedPayload struct {
	ExpiresAt       time.Time `json:"expires_at"`
	ClientDataBytes int       `json:"client_data_bytes"`
}

// CredentialRejectedPayload payload. Cause is for operators only.
type CredentialRejectedPayload struct {
	Reason domain.RejectReason `json:"reason"`
	Code   string              `json:"code"`
	Cause  string              `json:"cause"`
}
