package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveCall(t *testing.T) {
	before := testutil.CollectAndCount(ExternalCallDuration)

	ObserveCall("metrics_test", time.Now(), nil)
	ObserveCall("metrics_test", time.Now(), errors.New("boom"))

	// One new series per outcome.
	assert.Equal(t, before+2, testutil.CollectAndCount(ExternalCallDuration))
}

func TestSettlementFailureCounter(t *testing.T) {
	c := SettlementFailuresTotal.WithLabelValues("metrics_test")
	before := testutil.ToFloat64(c)
	c.Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(c))
}
