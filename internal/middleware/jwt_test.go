package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"APEX_BACK-END/internal/config"
	"APEX_BACK-END/internal/utils"
)

func testJWTConfig() *config.JWTConfig {
	return &config.JWTConfig{
		Secret:         "test-secret",
		AccessTokenTTL: time.Hour,
		ResetTokenTTL:  10 * time.Minute,
	}
}

func TestGenerateToken_RoundTrip(t *testing.T) {
	t.Parallel()

	cfg := testJWTConfig()
	userID := uuid.New()

	token, err := GenerateToken(userID, "ada@example.com", cfg)
	require.NoError(t, err)

	claims, err := ValidateToken(token, cfg)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "ada@example.com", claims.Email)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	t.Parallel()

	token, err := GenerateToken(uuid.New(), "ada@example.com", testJWTConfig())
	require.NoError(t, err)

	_, err = ValidateToken(token, &config.JWTConfig{Secret: "other-secret"})
	assert.Error(t, err)
}

func TestValidateToken_Expired(t *testing.T) {
	t.Parallel()

	cfg := &config.JWTConfig{Secret: "test-secret", AccessTokenTTL: -time.Minute}
	token, err := GenerateToken(uuid.New(), "ada@example.com", cfg)
	require.NoError(t, err)

	_, err = ValidateToken(token, cfg)
	assert.Error(t, err)
}

func TestProtect_ValidToken(t *testing.T) {
	t.Parallel()

	cfg := testJWTConfig()
	userID := uuid.New()
	token, err := GenerateToken(userID, "ada@example.com", cfg)
	require.NoError(t, err)

	handler := Protect(func(w http.ResponseWriter, r *http.Request) {
		gotID, ok := utils.GetUserIDFromContext(r.Context())
		require.True(t, ok)
		assert.Equal(t, userID, gotID)

		email, ok := utils.GetEmailFromContext(r.Context())
		require.True(t, ok)
		assert.Equal(t, "ada@example.com", email)

		w.WriteHeader(http.StatusOK)
	}, cfg)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/profile", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestProtect_RejectsBadHeaders(t *testing.T) {
	t.Parallel()

	cfg := testJWTConfig()
	handler := Protect(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	}, cfg)

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic abc123"},
		{"malformed token", "Bearer not-a-jwt"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, "/api/auth/profile", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestResetToken_RoundTrip(t *testing.T) {
	t.Parallel()

	cfg := testJWTConfig()
	userID := uuid.New()

	token, err := GenerateResetToken(userID, "ada@example.com", "123456", cfg)
	require.NoError(t, err)

	claims, err := ValidateResetToken(token, cfg)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "123456", claims.Code)
	assert.Equal(t, "password_reset", claims.Subject)
}

func TestValidateResetToken_RejectsAccessToken(t *testing.T) {
	t.Parallel()

	cfg := testJWTConfig()
	token, err := GenerateToken(uuid.New(), "ada@example.com", cfg)
	require.NoError(t, err)

	_, err = ValidateResetToken(token, cfg)
	assert.Error(t, err)
}
