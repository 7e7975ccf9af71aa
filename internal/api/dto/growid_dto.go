package dto

import "encoding/json"

// Response status markers.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// LoginRequest payload for /player/growid/login/validate.
type LoginRequest struct {
	GrowID   string `json:"growId" form:"growId"`
	Password string `json:"password" form:"password"`
}

// CheckTokenData is the nested "data" object of a check-token request.
type CheckTokenData struct {
	RefreshToken string `json:"refreshToken"`
	ClientData   string `json:"clientData"`
}

// UnmarshalJSON decodes data leniently. A non-object value or a field of
// the wrong type leaves the field empty so lookup falls back to the top
// level.
func (d *CheckTokenData) UnmarshalJSON(b []byte) error {
	*d = CheckTokenData{}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(b, &fields); err != nil {
		return nil
	}
	_ = json.Unmarshal(fields["refreshToken"], &d.RefreshToken)
	_ = json.Unmarshal(fields["clientData"], &d.ClientData)
	return nil
}

// CheckTokenRequest payload for /player/growid/validate/checktoken. Fields
// may arrive nested under "data" or at the top level.
type CheckTokenRequest struct {
	Data         *CheckTokenData `json:"data"`
	RefreshToken string          `json:"refreshToken"`
	ClientData   string          `json:"clientData"`
}

// Credential resolves the refresh token: a non-empty data.refreshToken
// wins, otherwise the top-level refreshToken is used.
func (r CheckTokenRequest) Credential() string {
	if r.Data != nil && r.Data.RefreshToken != "" {
		return r.Data.RefreshToken
	}
	return r.RefreshToken
}

// Metadata resolves client data with the same precedence as Credential.
func (r CheckTokenRequest) Metadata() []byte {
	if r.Data != nil && r.Data.ClientData != "" {
		return []byte(r.Data.ClientData)
	}
	return []byte(r.ClientData)
}

// AccountResponse is returned on successful issue and reissue.
type AccountResponse struct {
	Status      string `json:"status"`
	Message     string `json:"message"`
	Token       string `json:"token"`
	URL         string `json:"url"`
	AccountType string `json:"accountType"`
}

// ErrorResponse is returned for every failure.
type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// NewErrorResponse builds an error body.
func NewErrorResponse(message string) ErrorResponse {
	return ErrorResponse{Status: StatusError, Message: message}
}
