package main

import (
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/settleup/internal/config"
	"github.com/mmynk/settleup/internal/middleware"
	"github.com/mmynk/settleup/internal/service"
	"github.com/mmynk/settleup/internal/storage/sqlite"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "server.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	registry := prometheus.NewRegistry()
	metrics := middleware.NewMetrics(registry)
	svc := service.NewSettlementService(store, service.WithMetrics(metrics))

	cfg := &config.Config{AllowedOrigins: "http://localhost:3000"}
	server := httptest.NewServer(newHandler(cfg, svc, metrics, registry))
	t.Cleanup(server.Close)
	return server
}

func get(t *testing.T, url string) (int, string) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestHealthz(t *testing.T) {
	server := newTestServer(t)

	code, body := get(t, server.URL+"/healthz")
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, "ok", body)
}

func TestMetricsEndpoint(t *testing.T) {
	req := require.New(t)
	server := newTestServer(t)

	body := `{"expenses":[{"payer":"A","amount":100,"participants":["A","B","C"]}]}`
	resp, err := http.Post(server.URL+service.ComputeSettlementsProcedure, "application/json", strings.NewReader(body))
	req.NoError(err)
	resp.Body.Close()
	req.Equal(http.StatusOK, resp.StatusCode)

	code, metrics := get(t, server.URL+"/metrics")
	req.Equal(http.StatusOK, code)
	req.Contains(metrics, `settleup_rpc_requests_total{code="ok",procedure="/settleup.v1.SettlementService/ComputeSettlements"} 1`)
	req.Contains(metrics, "settleup_settlements_emitted_total 2")
	req.Contains(metrics, "settleup_rpc_duration_seconds_bucket")
}

func TestCORSPreflight(t *testing.T) {
	req := require.New(t)
	server := newTestServer(t)

	preflight, err := http.NewRequest(http.MethodOptions, server.URL+service.ComputeSettlementsProcedure, nil)
	req.NoError(err)
	preflight.Header.Set("Origin", "http://localhost:3000")
	preflight.Header.Set("Access-Control-Request-Method", http.MethodPost)
	preflight.Header.Set("Access-Control-Request-Headers", "Content-Type")

	resp, err := http.DefaultClient.Do(preflight)
	req.NoError(err)
	resp.Body.Close()
	req.Equal("http://localhost:3000", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestUnknownRoute(t *testing.T) {
	server := newTestServer(t)

	code, _ := get(t, server.URL+"/nope")
	require.Equal(t, http.StatusNotFound, code)
}
