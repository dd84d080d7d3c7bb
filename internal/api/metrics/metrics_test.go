package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestPromMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	Register(reg)

	SetBuildInfo("1.0.0", "abc", "2025-01-01")
	RecordHTTPRequest("POST", "/api/v1/transcriptions", 200, 150*time.Millisecond)
	RecordTranscription("metrics-test", OutcomeSuccess, 2*time.Second)
	RecordTranscription("metrics-test", OutcomeCached, 0)
	RecordTranscription("metrics-test", OutcomeError, time.Second)
	ObserveUpload(1024 * 1024)

	if v := testutil.ToFloat64(buildInfo.WithLabelValues("1.0.0", "abc", "2025-01-01")); v != 1 {
		t.Fatalf("build info: %v", v)
	}
	if v := testutil.ToFloat64(httpRequests.WithLabelValues("POST", "/api/v1/transcriptions", "200")); v != 1 {
		t.Fatalf("http requests: %v", v)
	}
	if v := testutil.ToFloat64(transcriptions.WithLabelValues("metrics-test", OutcomeSuccess)); v != 1 {
		t.Fatalf("successful transcriptions: %v", v)
	}
	if v := testutil.ToFloat64(transcriptions.WithLabelValues("metrics-test", OutcomeCached)); v != 1 {
		t.Fatalf("cached transcriptions: %v", v)
	}
	if v := testutil.ToFloat64(transcriptions.WithLabelValues("metrics-test", OutcomeError)); v != 1 {
		t.Fatalf("failed transcriptions: %v", v)
	}

	// cached results never reach the provider
	if n := testutil.CollectAndCount(transcriptionDuration, "transcriber_transcription_duration_seconds"); n != 1 {
		t.Fatalf("duration series: %d", n)
	}

	if n := testutil.CollectAndCount(uploadBytes); n != 1 {
		t.Fatalf("upload series: %d", n)
	}

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	names := make(map[string]bool)
	for _, f := range families {
		names[f.GetName()] = true
	}
	for _, want := range []string{"transcriber_upload_bytes", "transcriber_http_requests_total", "go_goroutines"} {
		if !names[want] {
			t.Fatalf("missing metric family %s", want)
		}
	}
}
