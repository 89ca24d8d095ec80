package handlers

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"APEX_BACK-END/internal/config"
	"APEX_BACK-END/internal/dto"
	"APEX_BACK-END/internal/middleware"
	"APEX_BACK-END/internal/models"
	"APEX_BACK-END/internal/repository"
	"APEX_BACK-END/internal/utils"
)

// verificationTTL is how long an emailed code stays valid
const verificationTTL = 3 * time.Minute

// VerificationStore is the subset of the repository the reset flow needs
type VerificationStore interface {
	CreateVerification(ctx context.Context, v *models.AuthVerification) error
	LatestVerification(ctx context.Context, userID uuid.UUID, email string) (*models.AuthVerification, error)
	ActiveVerification(ctx context.Context, userID uuid.UUID) (*models.AuthVerification, error)
	ResetPassword(ctx context.Context, userID, verificationID uuid.UUID, passwordHash string) error
}

// EmailSender delivers verification codes
type EmailSender interface {
	SendVerificationCode(to, code string) error
}

// ForgotPasswordHandler handles the password reset flow
type ForgotPasswordHandler struct {
	users         UserStore
	verifications VerificationStore
	email         EmailSender
	config        *config.Config
	logger        *slog.Logger
}

// NewForgotPasswordHandler creates a new ForgotPasswordHandler instance.
// email may be nil when SMTP is not configured; codes are then only
// logged, which keeps local development workable.
func NewForgotPasswordHandler(users UserStore, verifications VerificationStore, email EmailSender, cfg *config.Config, logger *slog.Logger) *ForgotPasswordHandler {
	return &ForgotPasswordHandler{
		users:         users,
		verifications: verifications,
		email:         email,
		config:        cfg,
		logger:        logger,
	}
}

// ForgotPassword sends a verification code to the user's email
// @Summary Request password reset
// @Description Send 6-digit verification code to user's email for password reset
// @Tags authentication
// @Accept json
// @Produce json
// @Param request body dto.ForgotPasswordRequest true "Email address"
// @Success 200 {object} dto.ForgotPasswordResponse "Verification code sent successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Failure 429 {object} dto.ErrorResponse "Code already sent"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/auth/forgot-password [post]
func (h *ForgotPasswordHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req dto.ForgotPasswordRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}

	if req.Email == "" {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Missing required field", "Email is required")
		return
	}

	user, err := h.users.GetUserByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			utils.WriteErrorResponse(w, http.StatusNotFound, "User not found", "No account found with this email")
			return
		}
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
		return
	}

	// Cooldown: while an unexpired code exists, don't issue another
	if existing, err := h.verifications.ActiveVerification(r.Context(), user.ID); err == nil {
		remaining := time.Until(existing.ExpiresAt)
		utils.WriteErrorResponse(w, http.StatusTooManyRequests,
			"Code already sent",
			fmt.Sprintf("Please wait %d seconds before requesting a new code", int(remaining.Seconds())))
		return
	}

	code, err := generateVerificationCode(6)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to generate code", err.Error())
		return
	}

	verification := models.AuthVerification{
		ID:        uuid.New(),
		UserID:    user.ID,
		Email:     req.Email,
		Code:      code,
		ExpiresAt: time.Now().Add(verificationTTL),
		CreatedAt: time.Now(),
	}
	if err := h.verifications.CreateVerification(r.Context(), &verification); err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to store verification code", err.Error())
		return
	}

	if h.email != nil {
		if err := h.email.SendVerificationCode(req.Email, code); err != nil {
			utils.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to send email", err.Error())
			return
		}
	} else {
		h.logger.Info("verification code issued without email delivery", "email", req.Email)
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.ForgotPasswordResponse{
		Message:   "Verification code has been sent to your email",
		Email:     req.Email,
		ExpiresIn: "3 minutes",
	})
}

// VerifyOTP verifies the OTP and returns a reset token
// @Summary Verify OTP
// @Description Verify the 6-digit code and get a temporary reset token
// @Tags authentication
// @Accept json
// @Produce json
// @Param request body dto.VerifyOTPRequest true "Email and verification code"
// @Success 200 {object} dto.VerifyOTPResponse "OTP verified successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Invalid or expired code"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/auth/verify-otp [post]
func (h *ForgotPasswordHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req dto.VerifyOTPRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}

	if req.Email == "" || req.Code == "" {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Missing required fields", "Email and code are required")
		return
	}

	user, err := h.users.GetUserByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			utils.WriteErrorResponse(w, http.StatusNotFound, "User not found", "No account found with this email")
			return
		}
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
		return
	}

	verification, err := h.verifications.LatestVerification(r.Context(), user.ID, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrVerificationNotFound) {
			utils.WriteErrorResponse(w, http.StatusUnauthorized, "Invalid code", "No verification code found")
			return
		}
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
		return
	}

	if verification.Used {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Code already used", "This verification code has already been used")
		return
	}
	if time.Now().After(verification.ExpiresAt) {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Code expired", "Verification code has expired. Please request a new one")
		return
	}
	if verification.Code != req.Code {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Invalid code", "The verification code you entered is incorrect")
		return
	}

	resetToken, err := middleware.GenerateResetToken(user.ID, req.Email, req.Code, &h.config.JWT)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to generate reset token", err.Error())
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.VerifyOTPResponse{
		Message:    "OTP verified successfully",
		ResetToken: resetToken,
		ExpiresIn:  "10 minutes",
	})
}

// ResetPassword resets the user's password using a reset token
// @Summary Reset password
// @Description Reset user's password with new password using reset token
// @Tags authentication
// @Accept json
// @Produce json
// @Param request body dto.ResetPasswordRequest true "Reset token and new password"
// @Success 200 {object} dto.ResetPasswordResponse "Password reset successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Invalid or expired reset token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/auth/reset-password [post]
func (h *ForgotPasswordHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req dto.ResetPasswordRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}

	if req.ResetToken == "" || req.NewPassword == "" {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Missing required fields", "Reset token and new password are required")
		return
	}
	if len(req.NewPassword) < 6 {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Password too short", "Password must be at least 6 characters long")
		return
	}

	claims, err := middleware.ValidateResetToken(req.ResetToken, &h.config.JWT)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Invalid reset token", err.Error())
		return
	}

	verification, err := h.verifications.LatestVerification(r.Context(), claims.UserID, claims.Email)
	if err != nil {
		if errors.Is(err, repository.ErrVerificationNotFound) {
			utils.WriteErrorResponse(w, http.StatusUnauthorized, "Invalid verification", "No matching verification found")
			return
		}
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
		return
	}

	if verification.Code != claims.Code {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Invalid verification", "No matching verification found")
		return
	}
	if verification.Used {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Code already used", "This verification code has already been used")
		return
	}
	if time.Now().After(verification.ExpiresAt) {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Code expired", "Verification code has expired")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to hash password", err.Error())
		return
	}

	if err := h.verifications.ResetPassword(r.Context(), claims.UserID, verification.ID, string(hashedPassword)); err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to update password", err.Error())
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.ResetPasswordResponse{
		Message: "Password has been reset successfully",
	})
}

// generateVerificationCode generates a random n-digit verification code
func generateVerificationCode(length int) (string, error) {
	const digits = "0123456789"
	code := make([]byte, length)

	for i := range code {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(digits))))
		if err != nil {
			return "", err
		}
		code[i] = digits[num.Int64()]
	}

	return string(code), nil
}
