package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveTrigger(t *testing.T) {
	before := testutil.ToFloat64(triggerInvocations.WithLabelValues("PostConfirmation_ConfirmSignUp", "added"))
	ObserveTrigger("PostConfirmation_ConfirmSignUp", "added")
	after := testutil.ToFloat64(triggerInvocations.WithLabelValues("PostConfirmation_ConfirmSignUp", "added"))

	assert.Equal(t, before+1, after)
}

func TestHandlerExposesHTTPMetrics(t *testing.T) {
	ObserveHTTP(http.MethodGet, "/api/v1/posts", http.StatusOK, 12*time.Millisecond)

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `blog_http_requests_total{method="GET",route="/api/v1/posts",status="200"}`)
}
