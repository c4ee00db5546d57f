package api_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/simclinic/virtual-patient/internal/api"
	"github.com/simclinic/virtual-patient/internal/config"
	"github.com/simclinic/virtual-patient/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRouter(t *testing.T) http.Handler {
	t.Helper()
	cfg := &config.Config{}
	cfg.Server.RequestTimeout = 30 * time.Second
	cfg.LLM.DefaultProvider = "groq"
	return api.NewRouter(cfg, memory.NewSessionStore(0))
}

func TestRouter_Health(t *testing.T) {
	router := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestRouter_Providers(t *testing.T) {
	router := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/providers", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"default_provider":"groq"`)
}

func TestRouter_MethodNotAllowed(t *testing.T) {
	router := testRouter(t)

	for _, path := range []string{"/api/v1/chat", "/api/v1/evaluate", "/api/v1/treatment"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code, path)
	}
}

func TestRouter_EvaluateWithoutProvider(t *testing.T) {
	// No provider credentials configured: the evaluation degrades to an
	// ERROR verdict rather than a transport failure surfacing as 500
	router := testRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/evaluate",
		strings.NewReader(`{"doctor_message": "Any allergies?", "patient_history": []}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"verdict":"ERROR"`)
}
