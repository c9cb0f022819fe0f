package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"warden/internal/domain/service"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_ObserveOutcome(t *testing.T) {
	recorder := NewRecorder()

	recorder.ObserveOutcome(service.OperationLogin, service.OutcomeSuccess)
	recorder.ObserveOutcome(service.OperationLogin, "invalid_credentials")
	recorder.ObserveOutcome(service.OperationLogin, "invalid_credentials")
	recorder.ObserveOutcome(service.OperationLogin, "identity_not_found")

	counter := recorder.Counter()
	assert.Equal(t, 1.0, testutil.ToFloat64(counter.WithLabelValues(service.OperationLogin, service.OutcomeSuccess)))
	assert.Equal(t, 2.0, testutil.ToFloat64(counter.WithLabelValues(service.OperationLogin, "invalid_credentials")))
	assert.Equal(t, 1.0, testutil.ToFloat64(counter.WithLabelValues(service.OperationLogin, "identity_not_found")))
}

func TestRecorder_Handler(t *testing.T) {
	recorder := NewRecorder()
	recorder.ObserveOutcome(service.OperationRegister, service.OutcomeSuccess)

	rec := httptest.NewRecorder()
	recorder.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `warden_credential_operations_total{operation="register",outcome="success"} 1`)
}

func TestRecorder_Register(t *testing.T) {
	recorder := NewRecorder()
	counter := prometheus.NewCounter(prometheus.CounterOpts{Name: "warden_test_total", Help: "test"})

	require.NoError(t, recorder.Register(counter))
	assert.Error(t, recorder.Register(counter))
}
