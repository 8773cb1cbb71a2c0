package observability

import (
	"testing"
	"time"

	"github.com/naota/taglib/internal/testutil/testlog"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRegisterMetricsAndRecordersAreSafe(t *testing.T) {
	testlog.Start(t)
	RegisterMetrics()
	RegisterMetrics()

	RecordHTTPRequest("id3ctl", "POST", "/frames/decode", 200, 12*time.Millisecond)
	RecordTag(3, true)
}

func TestRecordFrameCountsByOutcome(t *testing.T) {
	testlog.Start(t)
	before := testutil.ToFloat64(frameOutcomes.WithLabelValues("2", OutcomeDiscarded))
	RecordFrame(2, OutcomeDiscarded)
	RecordFrame(2, OutcomeDiscarded)
	after := testutil.ToFloat64(frameOutcomes.WithLabelValues("2", OutcomeDiscarded))
	if after-before != 2 {
		t.Fatalf("discarded counter delta = %v, want 2", after-before)
	}
}
