package auth

import (
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/samber/oops"

	"github.com/spec-kit/growid-bridge/internal/domain"
)

// DefaultTTL is the validity window of freshly issued credentials.
const DefaultTTL = 24 * time.Hour

// Internal error codes attached to codec failures.
const (
	CodeTokenMalformed  = "TOKEN_MALFORMED"
	CodeTokenSignature  = "TOKEN_SIGNATURE"
	CodeTokenExpired    = "TOKEN_EXPIRED"
	CodeTokenInvalid    = "TOKEN_INVALID"
	CodeTokenSignFailed = "TOKEN_SIGN_FAILED"
)

// TokenManager handles issuing and validating JWT credentials. It holds
// no mutable state and is safe for concurrent use.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// Option customizes a TokenManager.
type Option func(*TokenManager)

// WithClock replaces the wall clock used for minting and expiry checks.
func WithClock(now func() time.Time) Option {
	return func(tm *TokenManager) {
		if now != nil {
			tm.now = now
		}
	}
}

// NewTokenManager builds a new manager. The secret is copied.
func NewTokenManager(secret []byte, ttl time.Duration, opts ...Option) *TokenManager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	tm := &TokenManager{
		secret: append([]byte(nil), secret...),
		ttl:    ttl,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(tm)
	}
	return tm
}

// TTL returns the validity window applied at issuance.
func (tm *TokenManager) TTL() time.Duration {
	return tm.ttl
}

// GenerateToken builds and signs a credential asserting growID and password.
func (tm *TokenManager) GenerateToken(growID, password string) (string, time.Time, error) {
	now := tm.now()
	expiresAt := now.Add(tm.ttl)
	claims := jwt.MapClaims{
		domain.ClaimGrowID:    growID,
		domain.ClaimPassword:  password,
		domain.ClaimIssuedAt:  now.Unix(),
		domain.ClaimExpiresAt: expiresAt.Unix(),
	}

	tokenString, err := tm.sign(claims)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, time.Unix(expiresAt.Unix(), 0), nil
}

// ParseToken verifies signature and expiry and returns the embedded claims.
// Numeric claims are decoded as json.Number so they round-trip unchanged.
func (tm *TokenManager) ParseToken(tokenStr string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return tm.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithJSONNumber(),
		jwt.WithStrictDecoding(),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(tm.now),
	)
	if err != nil {
		return nil, oops.Code(codeFor(err)).Wrap(err)
	}
	if !parsed.Valid {
		return nil, oops.Code(CodeTokenInvalid).Errorf("invalid token claims")
	}
	return claims, nil
}

// ReissueToken signs a new credential carrying every claim of the original
// plus clientData, base64 encoded. The expiration is copied, not extended.
func (tm *TokenManager) ReissueToken(original jwt.MapClaims, clientData []byte) (string, error) {
	claims := make(jwt.MapClaims, len(original)+1)
	for k, v := range original {
		claims[k] = v
	}
	claims[domain.ClaimClientData] = base64.StdEncoding.EncodeToString(clientData)
	return tm.sign(claims)
}

func (tm *TokenManager) sign(claims jwt.Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tm.secret)
	if err != nil {
		return "", oops.Code(CodeTokenSignFailed).Wrap(err)
	}
	return tokenString, nil
}

// RejectReasonOf maps a ParseToken error onto its internal reason.
func RejectReasonOf(err error) domain.RejectReason {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return domain.RejectMalformed
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return domain.RejectSignature
	case errors.Is(err, jwt.ErrTokenExpired):
		return domain.RejectExpired
	default:
		return domain.RejectInvalid
	}
}

var rejectCodes = map[domain.RejectReason]string{
	domain.RejectMalformed: CodeTokenMalformed,
	domain.RejectSignature: CodeTokenSignature,
	domain.RejectExpired:   CodeTokenExpired,
	domain.RejectInvalid:   CodeTokenInvalid,
}

func codeFor(err error) string {
	return rejectCodes[RejectReasonOf(err)]
}

// ErrorCode returns the internal code attached to a codec error, or
// CodeTokenInvalid when err carries none.
func ErrorCode(err error) string {
	if oopsErr, ok := oops.AsOops(err); ok {
		if code := fmt.Sprint(oopsErr.Code()); code != "" && code != "<nil>" {
			return code
		}
	}
	return CodeTokenInvalid
}

// StringClaim returns a string claim or "" when absent or of another type.
func StringClaim(claims jwt.MapClaims, key string) string {
	v, _ := claims[key].(string)
	return v
}

// ExpiresAt returns the expiration embedded in claims.
func ExpiresAt(claims jwt.MapClaims) (time.Time, bool) {
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
