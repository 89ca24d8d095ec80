package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"APEX_BACK-END/internal/config"
)

func testCORSConfig() *config.CORSConfig {
	return &config.CORSConfig{
		AllowedOrigins: []string{
			"http://localhost:3000",
			"http://localhost:3001",
			"https://apex-client-side.vercel.app",
		},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}
}

func corsRequest(t *testing.T, origin string) *httptest.ResponseRecorder {
	t.Helper()

	handler := CORSHandler(testCORSConfig(), http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/services", nil)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestCORSHandler_AllowedOrigins(t *testing.T) {
	t.Parallel()

	for _, origin := range testCORSConfig().AllowedOrigins {
		rec := corsRequest(t, origin)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, origin, rec.Header().Get("Access-Control-Allow-Origin"), origin)
		assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"), origin)
	}
}

func TestCORSHandler_DisallowedOriginGetsNoCORSHeaders(t *testing.T) {
	t.Parallel()

	rec := corsRequest(t, "https://evil.example")

	// the request still reaches the handler; the missing header is what
	// makes browsers block the response
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSHandler_SubdomainOfAllowedOriginIsNotAllowed(t *testing.T) {
	t.Parallel()

	rec := corsRequest(t, "https://apex-client-side.vercel.app.evil.example")
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSHandler_NoOriginPassesThrough(t *testing.T) {
	t.Parallel()

	rec := corsRequest(t, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSHandler_Preflight(t *testing.T) {
	t.Parallel()

	handler := CORSHandler(testCORSConfig(), http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("preflight must not reach the wrapped handler")
	}))

	req := httptest.NewRequest(http.MethodOptions, "/api/builds", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Authorization, Content-Type")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "POST")
}
