package middleware

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/settleup/pkg/logging"
)

// captureLogs routes the default logger into a buffer for the test.
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	previous := slog.Default()
	slog.SetDefault(logging.New(&buf, slog.LevelDebug))
	t.Cleanup(func() { slog.SetDefault(previous) })
	return &buf
}

type empty struct{}

func TestMetricsInterceptor(t *testing.T) {
	req := require.New(t)
	m := NewMetrics(prometheus.NewRegistry())

	ok := func(ctx context.Context, r connect.AnyRequest) (connect.AnyResponse, error) {
		return connect.NewResponse(&empty{}), nil
	}
	notFound := func(ctx context.Context, r connect.AnyRequest) (connect.AnyResponse, error) {
		return nil, connect.NewError(connect.CodeNotFound, errors.New("missing"))
	}

	interceptor := m.Interceptor()
	ctx := context.Background()

	_, err := interceptor(ok)(ctx, connect.NewRequest(&empty{}))
	req.NoError(err)
	_, err = interceptor(ok)(ctx, connect.NewRequest(&empty{}))
	req.NoError(err)
	_, err = interceptor(notFound)(ctx, connect.NewRequest(&empty{}))
	req.Error(err)

	// Requests built outside a handler carry an empty procedure
	req.Equal(2.0, testutil.ToFloat64(m.requests.WithLabelValues("", "ok")))
	req.Equal(1.0, testutil.ToFloat64(m.requests.WithLabelValues("", "not_found")))
	req.Equal(1, testutil.CollectAndCount(m.duration))
}

func TestMetrics_ObserveSettlements(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())
	m.ObserveSettlements(2)
	m.ObserveSettlements(0)
	m.ObserveSettlements(3)
	require.Equal(t, 5.0, testutil.ToFloat64(m.settlements))

	var disabled *Metrics
	require.NotPanics(t, func() { disabled.ObserveSettlements(1) })
}

func TestNewMetrics_RegistersCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewMetrics(reg)
	require.Panics(t, func() { NewMetrics(reg) })
}

func TestLoggingInterceptor(t *testing.T) {
	logs := captureLogs(t)
	interceptor := LoggingInterceptor()
	ctx := context.Background()

	failing := func(ctx context.Context, r connect.AnyRequest) (connect.AnyResponse, error) {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("bad amount"))
	}
	_, err := interceptor(failing)(ctx, connect.NewRequest(&empty{}))
	require.Error(t, err)
	require.Contains(t, logs.String(), "RPC error")
	require.Contains(t, logs.String(), "bad amount")

	ok := func(ctx context.Context, r connect.AnyRequest) (connect.AnyResponse, error) {
		return connect.NewResponse(&empty{}), nil
	}
	_, err = interceptor(ok)(ctx, connect.NewRequest(&empty{}))
	require.NoError(t, err)
	require.Contains(t, logs.String(), "RPC ok")
}

func TestLogging(t *testing.T) {
	logs := captureLogs(t)

	handler := Logging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Equal(t, http.StatusTeapot, rec.Code)
	require.Contains(t, logs.String(), "Request completed")
	require.Contains(t, logs.String(), "/healthz")
	require.Contains(t, logs.String(), "418")
}

func TestLevelFor(t *testing.T) {
	tests := []struct {
		code connect.Code
		want slog.Level
	}{
		{connect.CodeInvalidArgument, slog.LevelWarn},
		{connect.CodeNotFound, slog.LevelWarn},
		{connect.CodeUnavailable, slog.LevelWarn},
		{connect.CodeDeadlineExceeded, slog.LevelWarn},
		{connect.CodeInternal, slog.LevelError},
		{connect.CodeUnknown, slog.LevelError},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, levelFor(tt.code), tt.code.String())
	}
}
