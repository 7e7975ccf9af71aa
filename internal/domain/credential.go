package domain

import "time"

// AccountTypeGrowtopia is reported to clients for every credential.
const AccountTypeGrowtopia = "growtopia"

// Claim keys embedded in a credential.
const (
	ClaimGrowID     = "growid"
	ClaimPassword   = "password"
	ClaimClientData = "clientData"
	ClaimExpiresAt  = "exp"
	ClaimIssuedAt   = "iat"
)

// RejectReason is the internal cause of a failed verification. It is
// never shown to clients.
type RejectReason string

const (
	RejectMalformed RejectReason = "malformed"
	RejectSignature RejectReason = "signature"
	RejectExpired   RejectReason = "expired"
	RejectInvalid   RejectReason = "invalid"
)

// Credential is a minted, signed session token.
type Credential struct {
	Token     string
	GrowID    string
	ExpiresAt time.Time
}
