package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Transcription outcomes.
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
	OutcomeCached  = "cached"
)

var (
	buildInfo = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "transcriber_build_info",
			Help: "Build information for the transcriber server",
		},
		[]string{"version", "commit", "date"},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "transcriber_http_requests_total",
			Help: "HTTP requests by method, route and status code",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "transcriber_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	transcriptions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "transcriber_transcriptions_total",
			Help: "Transcription requests by provider and outcome",
		},
		[]string{"provider", "outcome"},
	)

	transcriptionDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "transcriber_transcription_duration_seconds",
			Help:    "Time spent waiting for the transcription provider",
			Buckets: []float64{0.5, 1, 2, 5, 10, 20, 30, 60, 120},
		},
		[]string{"provider"},
	)

	uploadBytes = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "transcriber_upload_bytes",
			Help:    "Size of accepted audio uploads",
			Buckets: prometheus.ExponentialBuckets(64*1024, 2, 10),
		},
	)
)

// Register adds the transcriber collectors plus Go runtime and process collectors to r.
func Register(r prometheus.Registerer) {
	r.MustRegister(
		buildInfo, httpRequests, httpDuration, transcriptions, transcriptionDuration, uploadBytes,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

func SetBuildInfo(version, commit, date string) {
	buildInfo.WithLabelValues(version, commit, date).Set(1)
}

// RecordHTTPRequest is called once per served request. route is the matched gin route
// pattern so ids in paths do not explode cardinality.
func RecordHTTPRequest(method, route string, status int, d time.Duration) {
	httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// RecordTranscription counts one transcription. Provider latency is only observed for
// calls that reached the provider.
func RecordTranscription(provider, outcome string, d time.Duration) {
	transcriptions.WithLabelValues(provider, outcome).Inc()
	if outcome != OutcomeCached {
		transcriptionDuration.WithLabelValues(provider).Observe(d.Seconds())
	}
}

func ObserveUpload(size int64) {
	uploadBytes.Observe(float64(size))
}
