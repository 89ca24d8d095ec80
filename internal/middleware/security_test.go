package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func runSecurity(t *testing.T, isDevelopment bool) http.Header {
	t.Helper()

	handler := Security(isDevelopment)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec.Header()
}

func TestSecurity_Headers(t *testing.T) {
	t.Parallel()

	headers := runSecurity(t, true)

	assert.Equal(t, "nosniff", headers.Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", headers.Get("X-Frame-Options"))
	assert.Equal(t, "0", headers.Get("X-XSS-Protection"))
	assert.Equal(t, "strict-origin-when-cross-origin", headers.Get("Referrer-Policy"))
	assert.Equal(t, "default-src 'none'; frame-ancestors 'none'", headers.Get("Content-Security-Policy"))
	assert.Equal(t, "no-store", headers.Get("Cache-Control"))
}

func TestSecurity_HSTSOnlyOutsideDevelopment(t *testing.T) {
	t.Parallel()

	dev := runSecurity(t, true)
	assert.Empty(t, dev.Get("Strict-Transport-Security"))

	prod := runSecurity(t, false)
	assert.Equal(t, "max-age=31536000; includeSubDomains", prod.Get("Strict-Transport-Security"))
}
