package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/growid-bridge/internal/auth"
	"github.com/spec-kit/growid-bridge/internal/domain"
	"github.com/spec-kit/growid-bridge/internal/events"
	apperrors "github.com/spec-kit/growid-bridge/pkg/util"
)

// SessionService issues credentials and re-issues them with client data.
// It keeps no per-call state; concurrent calls share only the read-only
// token manager.
type SessionService struct {
	tokens     *auth.TokenManager
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// SessionDependencies encapsulates collaborators of the session service.
type SessionDependencies struct {
	Tokens     *auth.TokenManager
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewSessionService builds the service.
func NewSessionService(deps SessionDependencies) *SessionService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionService{
		tokens:     deps.Tokens,
		dispatcher: deps.Dispatcher,
		logger:     logger,
	}
}

// Issue mints a credential for growID/password. Both must be non-blank;
// they are embedded verbatim. No password store is consulted. A done ctx
// aborts before anything is minted.
func (s *SessionService) Issue(ctx context.Context, growID, password string) (*domain.Credential, error) {
	if strings.TrimSpace(growID) == "" || strings.TrimSpace(password) == "" {
		return nil, apperrors.NewMissingCredentials()
	}
	if err := ctx.Err(); err != nil {
		return nil, apperrors.NewRequestTimeout(err)
	}

	token, exp, err := s.tokens.GenerateToken(growID, password)
	if err != nil {
		s.logger.Error("credential issuance failed", zap.String("grow_id", growID), zap.Error(err))
		return nil, apperrors.NewInternalError(err)
	}

	s.publish(ctx, events.Event{
		Type:    events.EventCredentialIssued,
		GrowID:  growID,
		Payload: events.CredentialIssuedPayload{ExpiresAt: exp},
	})

	return &domain.Credential{Token: token, GrowID: growID, ExpiresAt: exp}, nil
}

// Reissue verifies refreshToken and mints a replacement carrying the same
// claims plus clientData. Every verification failure yields the same
// outward error; the distinct reason is published for operators.
func (s *SessionService) Reissue(ctx context.Context, refreshToken string, clientData []byte) (*domain.Credential, error) {
	if strings.TrimSpace(refreshToken) == "" {
		return nil, apperrors.NewMissingCredential()
	}
	if err := ctx.Err(); err != nil {
		return nil, apperrors.NewRequestTimeout(err)
	}

	claims, err := s.tokens.ParseToken(refreshToken)
	if err != nil {
		s.publish(ctx, events.Event{
			Type: events.EventCredentialRejected,
			Payload: events.CredentialRejectedPayload{
				Reason: auth.RejectReasonOf(err),
				Code:   auth.ErrorCode(err),
				Cause:  err.Error(),
			},
		})
		return nil, apperrors.NewInvalidOrExpiredCredential(err)
	}

	growID := auth.StringClaim(claims, domain.ClaimGrowID)

	token, err := s.tokens.ReissueToken(claims, clientData)
	if err != nil {
		s.logger.Error("credential reissue failed", zap.String("grow_id", growID), zap.Error(err))
		return nil, apperrors.NewInternalError(err)
	}

	exp, _ := auth.ExpiresAt(claims)

	s.publish(ctx, events.Event{
		Type:   events.EventCredentialReissued,
		GrowID: growID,
		Payload: events.CredentialReissuedPayload{
			ExpiresAt:       exp,
			ClientDataBytes: len(clientData),
		},
	})

	return &domain.Credential{Token: token, GrowID: growID, ExpiresAt: exp}, nil
}

// TokenManager exposes the underlying token manager.
func (s *SessionService) TokenManager() *auth.TokenManager {
	return s.tokens
}

func (s *SessionService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	event.ID = uuid.NewString()
	event.Timestamp = time.Now().UTC()
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("event handler failed", zap.String("event_type", string(event.Type)), zap.Error(err))
	}
}
