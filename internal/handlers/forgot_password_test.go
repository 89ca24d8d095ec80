package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"APEX_BACK-END/internal/dto"
	"APEX_BACK-END/internal/middleware"
	"APEX_BACK-END/internal/models"
	"APEX_BACK-END/internal/repository"
)

type fakeVerificationStore struct {
	users         *fakeUserStore
	verifications []*models.AuthVerification
}

func (s *fakeVerificationStore) CreateVerification(_ context.Context, v *models.AuthVerification) error {
	copied := *v
	s.verifications = append(s.verifications, &copied)
	return nil
}

func (s *fakeVerificationStore) LatestVerification(_ context.Context, userID uuid.UUID, email string) (*models.AuthVerification, error) {
	for i := len(s.verifications) - 1; i >= 0; i-- {
		v := s.verifications[i]
		if v.UserID == userID && v.Email == email {
			copied := *v
			return &copied, nil
		}
	}
	return nil, repository.ErrVerificationNotFound
}

func (s *fakeVerificationStore) ActiveVerification(_ context.Context, userID uuid.UUID) (*models.AuthVerification, error) {
	for i := len(s.verifications) - 1; i >= 0; i-- {
		v := s.verifications[i]
		if v.UserID == userID && !v.Used && time.Now().Before(v.ExpiresAt) {
			copied := *v
			return &copied, nil
		}
	}
	return nil, repository.ErrVerificationNotFound
}

func (s *fakeVerificationStore) ResetPassword(_ context.Context, userID, verificationID uuid.UUID, passwordHash string) error {
	user, ok := s.users.usersByID[userID]
	if !ok {
		return repository.ErrUserNotFound
	}
	for _, v := range s.verifications {
		if v.ID == verificationID {
			v.Used = true
			user.PasswordHash = passwordHash
			return nil
		}
	}
	return repository.ErrVerificationNotFound
}

type fakeEmailSender struct {
	to    []string
	codes []string
	err   error
}

func (s *fakeEmailSender) SendVerificationCode(to, code string) error {
	if s.err != nil {
		return s.err
	}
	s.to = append(s.to, to)
	s.codes = append(s.codes, code)
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newForgotPasswordFixture(t *testing.T) (*ForgotPasswordHandler, *fakeUserStore, *fakeVerificationStore, *fakeEmailSender) {
	t.Helper()
	users := newFakeUserStore()
	verifications := &fakeVerificationStore{users: users}
	email := &fakeEmailSender{}
	handler := NewForgotPasswordHandler(users, verifications, email, testConfig(), discardLogger())
	return handler, users, verifications, email
}

func postJSON(handler http.HandlerFunc, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestForgotPassword_SendsCode(t *testing.T) {
	t.Parallel()

	handler, users, verifications, email := newForgotPasswordFixture(t)
	users.addUser(t, "Ada", "ada@example.com", "oldpassword")

	rec := postJSON(handler.ForgotPassword, "/api/auth/forgot-password", `{"email":"ada@example.com"}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp dto.ForgotPasswordResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ada@example.com", resp.Email)
	assert.Equal(t, "3 minutes", resp.ExpiresIn)

	require.Len(t, verifications.verifications, 1)
	stored := verifications.verifications[0]
	assert.Len(t, stored.Code, 6)

	require.Len(t, email.codes, 1)
	assert.Equal(t, stored.Code, email.codes[0])
	assert.Equal(t, "ada@example.com", email.to[0])

	// the code itself never appears in the response
	assert.NotContains(t, rec.Body.String(), stored.Code)
}

func TestForgotPassword_UnknownEmail(t *testing.T) {
	t.Parallel()

	handler, _, _, _ := newForgotPasswordFixture(t)

	rec := postJSON(handler.ForgotPassword, "/api/auth/forgot-password", `{"email":"nobody@example.com"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestForgotPassword_CooldownWhileCodeActive(t *testing.T) {
	t.Parallel()

	handler, users, verifications, _ := newForgotPasswordFixture(t)
	users.addUser(t, "Ada", "ada@example.com", "oldpassword")

	first := postJSON(handler.ForgotPassword, "/api/auth/forgot-password", `{"email":"ada@example.com"}`)
	require.Equal(t, http.StatusOK, first.Code)

	second := postJSON(handler.ForgotPassword, "/api/auth/forgot-password", `{"email":"ada@example.com"}`)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Len(t, verifications.verifications, 1)
}

func TestForgotPassword_NoEmailServiceStillIssuesCode(t *testing.T) {
	t.Parallel()

	users := newFakeUserStore()
	users.addUser(t, "Ada", "ada@example.com", "oldpassword")
	verifications := &fakeVerificationStore{users: users}
	handler := NewForgotPasswordHandler(users, verifications, nil, testConfig(), discardLogger())

	rec := postJSON(handler.ForgotPassword, "/api/auth/forgot-password", `{"email":"ada@example.com"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, verifications.verifications, 1)
}

func TestVerifyOTP_ReturnsResetToken(t *testing.T) {
	t.Parallel()

	handler, users, _, email := newForgotPasswordFixture(t)
	user := users.addUser(t, "Ada", "ada@example.com", "oldpassword")

	require.Equal(t, http.StatusOK,
		postJSON(handler.ForgotPassword, "/api/auth/forgot-password", `{"email":"ada@example.com"}`).Code)
	code := email.codes[0]

	rec := postJSON(handler.VerifyOTP, "/api/auth/verify-otp",
		fmt.Sprintf(`{"email":"ada@example.com","code":%q}`, code))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp dto.VerifyOTPResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.ResetToken)

	claims, err := middleware.ValidateResetToken(resp.ResetToken, &testConfig().JWT)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, code, claims.Code)
}

func TestVerifyOTP_WrongCode(t *testing.T) {
	t.Parallel()

	handler, users, _, _ := newForgotPasswordFixture(t)
	users.addUser(t, "Ada", "ada@example.com", "oldpassword")

	require.Equal(t, http.StatusOK,
		postJSON(handler.ForgotPassword, "/api/auth/forgot-password", `{"email":"ada@example.com"}`).Code)

	rec := postJSON(handler.VerifyOTP, "/api/auth/verify-otp",
		`{"email":"ada@example.com","code":"000000"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestVerifyOTP_ExpiredCode(t *testing.T) {
	t.Parallel()

	handler, users, verifications, _ := newForgotPasswordFixture(t)
	user := users.addUser(t, "Ada", "ada@example.com", "oldpassword")

	verifications.verifications = append(verifications.verifications, &models.AuthVerification{
		ID:        uuid.New(),
		UserID:    user.ID,
		Email:     user.Email,
		Code:      "123456",
		ExpiresAt: time.Now().Add(-time.Minute),
		CreatedAt: time.Now().Add(-5 * time.Minute),
	})

	rec := postJSON(handler.VerifyOTP, "/api/auth/verify-otp",
		`{"email":"ada@example.com","code":"123456"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestResetPassword_FullFlow(t *testing.T) {
	t.Parallel()

	handler, users, verifications, email := newForgotPasswordFixture(t)
	user := users.addUser(t, "Ada", "ada@example.com", "oldpassword")

	require.Equal(t, http.StatusOK,
		postJSON(handler.ForgotPassword, "/api/auth/forgot-password", `{"email":"ada@example.com"}`).Code)
	code := email.codes[0]

	verifyRec := postJSON(handler.VerifyOTP, "/api/auth/verify-otp",
		fmt.Sprintf(`{"email":"ada@example.com","code":%q}`, code))
	require.Equal(t, http.StatusOK, verifyRec.Code)

	var verifyResp dto.VerifyOTPResponse
	require.NoError(t, json.Unmarshal(verifyRec.Body.Bytes(), &verifyResp))

	resetRec := postJSON(handler.ResetPassword, "/api/auth/reset-password",
		fmt.Sprintf(`{"reset_token":%q,"new_password":"newpassword"}`, verifyResp.ResetToken))
	require.Equal(t, http.StatusOK, resetRec.Code)

	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("newpassword")))
	assert.True(t, verifications.verifications[0].Used)

	// the code is single-use
	again := postJSON(handler.ResetPassword, "/api/auth/reset-password",
		fmt.Sprintf(`{"reset_token":%q,"new_password":"another-password"}`, verifyResp.ResetToken))
	assert.Equal(t, http.StatusUnauthorized, again.Code)
}

func TestResetPassword_ShortPassword(t *testing.T) {
	t.Parallel()

	handler, _, _, _ := newForgotPasswordFixture(t)

	rec := postJSON(handler.ResetPassword, "/api/auth/reset-password",
		`{"reset_token":"whatever","new_password":"abc"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestResetPassword_BogusToken(t *testing.T) {
	t.Parallel()

	handler, _, _, _ := newForgotPasswordFixture(t)

	rec := postJSON(handler.ResetPassword, "/api/auth/reset-password",
		`{"reset_token":"not-a-jwt","new_password":"newpassword"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
