package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/growid-bridge/internal/api/dto"
	"github.com/spec-kit/growid-bridge/internal/domain"
	"github.com/spec-kit/growid-bridge/internal/service"
	apperrors "github.com/spec-kit/growid-bridge/pkg/util"
)

// Paths served by GrowIDHandler.
const (
	PathLogin            = "/player/growid/login/validate"
	PathCheckToken       = "/player/growid/validate/checktoken"
	PathLegacyCheckToken = "/player/growid/checktoken"
)

const (
	messageAccountValidated = "Account Validated."
	messageTokenValid       = "Token is valid."
)

// GrowIDHandler exposes the credential endpoints used by the game client.
type GrowIDHandler struct {
	sessions *service.SessionService
}

// NewGrowIDHandler constructs handler.
func NewGrowIDHandler(sessions *service.SessionService) *GrowIDHandler {
	return &GrowIDHandler{sessions: sessions}
}

// Login handles ALL /player/growid/login/validate.
func (h *GrowIDHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if kind := bodyKindOf(c); kind != bodyNone {
		if err := c.BodyParser(&req); err != nil {
			return apperrors.NewInvalidPayload(err)
		}
	}

	cred, err := h.sessions.Issue(c.UserContext(), req.GrowID, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(accountResponse(messageAccountValidated, cred.Token))
}

// CheckToken handles ALL /player/growid/validate/checktoken.
func (h *GrowIDHandler) CheckToken(c *fiber.Ctx) error {
	req, err := parseCheckToken(c)
	if err != nil {
		return err
	}

	cred, err := h.sessions.Reissue(c.UserContext(), req.Credential(), req.Metadata())
	if err != nil {
		return err
	}
	return c.JSON(accountResponse(messageTokenValid, cred.Token))
}

// LegacyCheckToken forwards ALL /player/growid/checktoken to CheckToken
// with a 307 so the client repeats the same method and body.
func (h *GrowIDHandler) LegacyCheckToken(c *fiber.Ctx) error {
	return c.Redirect(PathCheckToken, fiber.StatusTemporaryRedirect)
}

func accountResponse(message, token string) dto.AccountResponse {
	return dto.AccountResponse{
		Status:      dto.StatusSuccess,
		Message:     message,
		Token:       token,
		URL:         "",
		AccountType: domain.AccountTypeGrowtopia,
	}
}

// parseCheckToken reads JSON bodies as-is and maps form bodies, where the
// nested object arrives as data[refreshToken] / data[clientData].
func parseCheckToken(c *fiber.Ctx) (dto.CheckTokenRequest, error) {
	var req dto.CheckTokenRequest
	switch bodyKindOf(c) {
	case bodyJSON:
		if err := c.BodyParser(&req); err != nil {
			return req, apperrors.NewInvalidPayload(err)
		}
	case bodyForm:
		req.Data = &dto.CheckTokenData{
			RefreshToken: c.FormValue("data[refreshToken]"),
			ClientData:   c.FormValue("data[clientData]"),
		}
		req.RefreshToken = c.FormValue("refreshToken")
		req.ClientData = c.FormValue("clientData")
	}
	return req, nil
}

type bodyKind int

const (
	bodyNone bodyKind = iota
	bodyJSON
	bodyForm
)

// bodyKindOf classifies the request body. Empty bodies and unknown content
// types are treated as an empty record.
func bodyKindOf(c *fiber.Ctx) bodyKind {
	if len(c.Body()) == 0 {
		return bodyNone
	}
	ctype := strings.ToLower(c.Get(fiber.HeaderContentType))
	switch {
	case strings.HasPrefix(ctype, fiber.MIMEApplicationJSON):
		return bodyJSON
	case strings.HasPrefix(ctype, fiber.MIMEApplicationForm),
		strings.HasPrefix(ctype, fiber.MIMEMultipartForm):
		return bodyForm
	default:
		return bodyNone
	}
}
