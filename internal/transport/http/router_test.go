package http

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"insightcli/internal/config"
	"insightcli/internal/services"
)

func TestNewRouter(t *testing.T) {
	cfg := &config.Config{}
	cfg.Server.WriteTimeout = 15 * time.Second
	cfg.Server.MaxUploadBytes = 1 << 20
	cfg.Insights.Provider = "local"

	router := NewRouter(RouterDeps{
		Config:   cfg,
		Logger:   slog.Default(),
		Analysis: newTestAnalysisService(),
		Health:   services.NewHealthService("test"),
	})

	server := httptest.NewServer(router)
	defer server.Close()

	resp, err := http.Get(server.URL + "/api/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}

func TestNewRouter_InsightsRejectsWrongContentType(t *testing.T) {
	cfg := &config.Config{}
	cfg.Server.WriteTimeout = 15 * time.Second
	cfg.Server.MaxUploadBytes = 1 << 20

	router := NewRouter(RouterDeps{
		Config:   cfg,
		Logger:   slog.Default(),
		Analysis: newTestAnalysisService(),
		Health:   services.NewHealthService("test"),
	})

	server := httptest.NewServer(router)
	defer server.Close()

	resp, err := http.Post(server.URL+"/api/insights", "text/plain", nil)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnsupportedMediaType, resp.StatusCode)
}
