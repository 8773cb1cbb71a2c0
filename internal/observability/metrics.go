package observability

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Frame outcome labels.
const (
	OutcomeParsed      = "parsed"
	OutcomeUnknown     = "unknown"
	OutcomeMalformed   = "malformed"
	OutcomeDiscarded   = "discarded"
	OutcomeRewritten   = "rewritten"
	OutcomeTruncated   = "truncated"
	OutcomeOversized   = "oversized"
	OutcomeUnsupported = "unsupported"
)

var (
	registerOnce sync.Once

	frameOutcomes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "id3v2",
			Subsystem: "factory",
			Name:      "frames_total",
			Help:      "Frames handled by the frame factory, by source version and outcome.",
		},
		[]string{"version", "outcome"},
	)
	tagsRead = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "id3v2",
			Subsystem: "tag",
			Name:      "reads_total",
			Help:      "Tags read, by version and result.",
		},
		[]string{"version", "success"},
	)
	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "id3v2",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests.",
		},
		[]string{"service", "method", "path", "status"},
	)
	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "id3v2",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "method", "path", "status"},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(frameOutcomes, tagsRead, httpRequests, httpDuration)
	})
}

func RecordFrame(version int, outcome string) {
	RegisterMetrics()
	frameOutcomes.WithLabelValues(strconv.Itoa(version), outcome).Inc()
}

func RecordTag(version int, success bool) {
	RegisterMetrics()
	tagsRead.WithLabelValues(strconv.Itoa(version), strconv.FormatBool(success)).Inc()
}

func RecordHTTPRequest(service, method, path string, status int, duration time.Duration) {
	RegisterMetrics()
	statusLabel := strconv.Itoa(status)
	httpRequests.WithLabelValues(service, method, path, statusLabel).Inc()
	httpDuration.WithLabelValues(service, method, path, statusLabel).Observe(duration.Seconds())
}
