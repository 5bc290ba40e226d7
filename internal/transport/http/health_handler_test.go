package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"insightcli/internal/services"
)

func TestHealthHandler_HealthCheck(t *testing.T) {
	handler := NewHealthHandler(services.NewHealthService("test"), slog.Default())
	server := httptest.NewServer(handler.Routes())
	defer server.Close()

	resp, err := http.Get(server.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var doc map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&doc))
	assert.Equal(t, "healthy", doc["status"])
	assert.Equal(t, "test", doc["version"])
}

func TestHealthHandler_Version(t *testing.T) {
	handler := NewHealthHandler(services.NewHealthService("test"), slog.Default())
	server := httptest.NewServer(handler.Routes())
	defer server.Close()

	resp, err := http.Get(server.URL + "/version")
	require.NoError(t, err)
	defer resp.Body.Close()

	var doc map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&doc))
	assert.Equal(t, "test", doc["version"])
}
