package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckTokenRequestLookup(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantToken string
		wantData  string
	}{
		{"nested only", `{"data":{"refreshToken":"n","clientData":"nd"}}`, "n", "nd"},
		{"flat only", `{"refreshToken":"f","clientData":"fd"}`, "f", "fd"},
		{"nested wins", `{"data":{"refreshToken":"n","clientData":"nd"},"refreshToken":"f","clientData":"fd"}`, "n", "nd"},
		{"empty nested falls back", `{"data":{"refreshToken":"","clientData":""},"refreshToken":"f","clientData":"fd"}`, "f", "fd"},
		{"mixed sources", `{"data":{"refreshToken":"n"},"clientData":"fd"}`, "n", "fd"},
		{"null data", `{"data":null,"refreshToken":"f"}`, "f", ""},
		{"string data falls back", `{"data":"x","refreshToken":"f","clientData":"fd"}`, "f", "fd"},
		{"array data falls back", `{"data":[1],"refreshToken":"f"}`, "f", ""},
		{"mistyped nested field falls back", `{"data":{"refreshToken":5,"clientData":"nd"},"refreshToken":"f"}`, "f", "nd"},
		{"nothing", `{}`, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req CheckTokenRequest
			require.NoError(t, json.Unmarshal([]byte(tt.body), &req))
			assert.Equal(t, tt.wantToken, req.Credential())
			assert.Equal(t, []byte(tt.wantData), req.Metadata())
		})
	}
}

func TestAccountResponseShape(t *testing.T) {
	body, err := json.Marshal(AccountResponse{
		Status:      StatusSuccess,
		Message:     "Account Validated.",
		Token:       "t",
		AccountType: "growtopia",
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"success","message":"Account Validated.","token":"t","url":"","accountType":"growtopia"}`, string(body))
}
