package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// assertBizMetricLine checks that the Prometheus output contains a business metric
// matching the given name, partial label pattern, and value. Uses regex to handle
// extra OTel scope labels injected by the Prometheus exporter.
func assertBizMetricLine(t *testing.T, output, name, labels, value string) {
	t.Helper()
	pattern := name + `\{[^}]*` + strings.ReplaceAll(labels, ",", "[^}]*") + `[^}]*\} ` + value
	assert.Regexp(t, pattern, output)
}

func TestNewBusinessMetrics(t *testing.T) {
	provider, err := NewProvider("agentvault")
	require.NoError(t, err)

	businessMetrics, err := NewBusinessMetrics(provider.MeterProvider(), "agentvault")

	require.NoError(t, err)
	assert.NotNil(t, businessMetrics)
}

func TestBusinessMetrics_RecordOperation(t *testing.T) {
	provider, err := NewProvider("agentvault")
	require.NoError(t, err)

	bm, err := NewBusinessMetrics(provider.MeterProvider(), "agentvault")
	require.NoError(t, err)

	t.Run("Success_RecordSuccessfulOperation", func(t *testing.T) {
		bm.RecordOperation(context.Background(), "agents", "agent_create", "success")
	})

	t.Run("Success_RecordFailedOperation", func(t *testing.T) {
		bm.RecordOperation(context.Background(), "agents", "agent_create", "error")
	})

	t.Run("Success_RecordMultipleDomains", func(t *testing.T) {
		bm.RecordOperation(context.Background(), "apikeys", "apikey_store", "success")
		bm.RecordOperation(context.Background(), "crypto", "key_derive", "success")
		bm.RecordOperation(context.Background(), "conversations", "entry_record", "error")
	})
}

func TestBusinessMetrics_RecordDuration(t *testing.T) {
	provider, err := NewProvider("agentvault")
	require.NoError(t, err)

	bm, err := NewBusinessMetrics(provider.MeterProvider(), "agentvault")
	require.NoError(t, err)

	t.Run("Success_RecordSuccessfulDuration", func(t *testing.T) {
		bm.RecordDuration(context.Background(), "apikeys", "apikey_reveal", 123*time.Millisecond, "success")
	})

	t.Run("Success_RecordFailedDuration", func(t *testing.T) {
		bm.RecordDuration(context.Background(), "apikeys", "apikey_reveal", 456*time.Millisecond, "error")
	})
}

func TestNewNoOpBusinessMetrics(t *testing.T) {
	noOpMetrics := NewNoOpBusinessMetrics()

	assert.NotNil(t, noOpMetrics)
	assert.IsType(t, &NoOpBusinessMetrics{}, noOpMetrics)

	t.Run("NoOp_RecordOperationDoesNotPanic", func(t *testing.T) {
		noOpMetrics.RecordOperation(context.Background(), "agents", "agent_create", "success")
	})

	t.Run("NoOp_RecordDurationDoesNotPanic", func(t *testing.T) {
		noOpMetrics.RecordDuration(
			context.Background(),
			"agents",
			"agent_create",
			100*time.Millisecond,
			"success",
		)
	})
}

func TestBusinessMetrics_Integration(t *testing.T) {
	provider, err := NewProvider("agentvault_it")
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, provider.Shutdown(context.Background()))
	}()

	bm, err := NewBusinessMetrics(provider.MeterProvider(), "agentvault_it")
	require.NoError(t, err)

	ctx := context.Background()
	bm.RecordOperation(ctx, "agents", "agent_create", "success")
	bm.RecordOperation(ctx, "agents", "agent_create", "success")
	bm.RecordOperation(ctx, "apikeys", "apikey_store", "error")
	bm.RecordDuration(ctx, "agents", "agent_create", 100*time.Millisecond, "success")

	// Scrape the metrics endpoint and verify exported values
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	provider.Handler().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	output := w.Body.String()

	assertBizMetricLine(t, output, "agentvault_it_operations_total",
		`domain="agents",operation="agent_create",status="success"`, "2")
	assertBizMetricLine(t, output, "agentvault_it_operations_total",
		`domain="apikeys",operation="apikey_store",status="error"`, "1")
	assert.Contains(t, output, "agentvault_it_operation_duration_seconds")
}
