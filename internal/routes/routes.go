package routes

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"APEX_BACK-END/internal/config"
	"APEX_BACK-END/internal/handlers"
	"APEX_BACK-END/internal/middleware"
	"APEX_BACK-END/internal/utils"
)

// Handlers groups everything SetupRoutes wires into the mux
type Handlers struct {
	Auth           *handlers.AuthHandler
	Builds         *handlers.BuildsHandler
	Services       *handlers.ServicesHandler
	Health         *handlers.HealthHandler
	ForgotPassword *handlers.ForgotPasswordHandler
	GoogleAuth     *handlers.GoogleAuthHandler
}

// SetupRoutes configures all application routes
func SetupRoutes(mux *http.ServeMux, h Handlers, jwtCfg *config.JWTConfig) {
	// Health check routes
	mux.HandleFunc("/api/health", h.Health.HealthCheck)
	mux.HandleFunc("/livez", h.Health.LivenessCheck)
	mux.HandleFunc("/readyz", h.Health.ReadinessCheck)

	// Authentication routes
	mux.HandleFunc("/api/auth/register",
		middleware.ValidateInput([]string{"name", "email", "password"}, h.Auth.Register))
	mux.HandleFunc("/api/auth/login",
		middleware.ValidateInput([]string{"email", "password"}, h.Auth.Login))
	mux.HandleFunc("/api/auth/profile", middleware.Protect(h.Auth.GetProfile, jwtCfg))

	// Password reset routes
	mux.HandleFunc("/api/auth/forgot-password", h.ForgotPassword.ForgotPassword)
	mux.HandleFunc("/api/auth/verify-otp", h.ForgotPassword.VerifyOTP)
	mux.HandleFunc("/api/auth/reset-password", h.ForgotPassword.ResetPassword)

	// Google OAuth routes
	mux.HandleFunc("/api/auth/google/login", h.GoogleAuth.GoogleLogin)
	mux.HandleFunc("/api/auth/google/callback", h.GoogleAuth.GoogleCallback)

	// Service catalog
	mux.HandleFunc("/api/services", h.Services.ListServices)

	// Builds: exact path is create, subtree covers detail and per-user list
	mux.HandleFunc("/api/builds",
		middleware.Protect(middleware.ValidateInput([]string{"carModel", "color"}, h.Builds.CreateBuild), jwtCfg))
	mux.HandleFunc("/api/builds/", middleware.Protect(h.Builds.Builds, jwtCfg))

	// Swagger UI
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	// Root routes
	mux.HandleFunc("/api", apiRootHandler)
	mux.HandleFunc("/", rootHandler)
}

func apiRootHandler(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSONResponse(w, http.StatusOK, map[string]string{
		"message": "Apex API Server",
		"status":  "running",
		"version": "1.0.0",
	})
}

func rootHandler(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("Apex backend is running."))
}
