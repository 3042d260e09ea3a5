package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	io_prometheus_client "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordRecommendationServed(t *testing.T) {
	served := RecommendationsServedTotal.WithLabelValues(SourceLive)
	beforeServed := testutil.ToFloat64(served)
	beforeFallbacks := testutil.ToFloat64(RecommendationFallbacksTotal)

	RecordRecommendationServed(SourceLive, false)
	RecordRecommendationServed(SourceLive, true)

	assert.Equal(t, beforeServed+2, testutil.ToFloat64(served))
	assert.Equal(t, beforeFallbacks+1, testutil.ToFloat64(RecommendationFallbacksTotal))
}

func TestRecordAuthAttempt(t *testing.T) {
	operator := AuthAttemptsTotal.WithLabelValues("operator_token", AuthAuthenticated)
	rejected := AuthAttemptsTotal.WithLabelValues("none", AuthRejected)
	beforeOperator, beforeRejected := testutil.ToFloat64(operator), testutil.ToFloat64(rejected)

	RecordAuthAttempt("operator_token", AuthAuthenticated)
	RecordAuthAttempt("", AuthRejected)

	assert.Equal(t, beforeOperator+1, testutil.ToFloat64(operator))
	assert.Equal(t, beforeRejected+1, testutil.ToFloat64(rejected))
}

func TestRecordBatchUser(t *testing.T) {
	success := BatchUsersTotal.WithLabelValues("test", "success")
	failure := BatchUsersTotal.WithLabelValues("test", "failure")
	beforeSuccess, beforeFailure := testutil.ToFloat64(success), testutil.ToFloat64(failure)

	RecordBatchUser("test", nil)
	RecordBatchUser("test", errors.New("boom"))
	RecordBatchUser("test", errors.New("boom"))

	assert.Equal(t, beforeSuccess+1, testutil.ToFloat64(success))
	assert.Equal(t, beforeFailure+2, testutil.ToFloat64(failure))
}

func histogramSampleCount(t *testing.T) uint64 {
	t.Helper()
	var m io_prometheus_client.Metric
	require.NoError(t, ScoringDuration.Write(&m))
	return m.GetHistogram().GetSampleCount()
}

func TestObserveScoring(t *testing.T) {
	before := histogramSampleCount(t)
	ObserveScoring(3 * time.Millisecond)
	assert.Equal(t, before+1, histogramSampleCount(t))
}
