package metrics

import (
	"strings"
	"testing"
	"time"
)

func TestBuildReport(t *testing.T) {
	start := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	s := Snapshot{
		TotalBatchesAttempted: 10,
		TotalBatchesSucceeded: 10,
		TotalRecordsSubmitted: 1000,
		Latencies: []time.Duration{
			10 * time.Millisecond, 20 * time.Millisecond, 30 * time.Millisecond,
			40 * time.Millisecond, 50 * time.Millisecond, 60 * time.Millisecond,
			70 * time.Millisecond, 80 * time.Millisecond, 90 * time.Millisecond,
			100 * time.Millisecond,
		},
		StartTime: start,
	}

	report := BuildReport(s, start.Add(10*time.Second))

	if report.TotalRequests != 10 || report.FailedRequests != 0 {
		t.Fatalf("unexpected request counts: %+v", report)
	}
	if report.AvgRequestDurationMs != 55 {
		t.Fatalf("avg %v, want 55", report.AvgRequestDurationMs)
	}
	if report.P95RequestDurationMs != 100 {
		t.Fatalf("p95 %v, want 100", report.P95RequestDurationMs)
	}
	if report.TotalDurationSec != 10 {
		t.Fatalf("duration %v, want 10", report.TotalDurationSec)
	}
	if report.AvgRate != 100 {
		t.Fatalf("rate %v, want 100", report.AvgRate)
	}
	if report.Degraded {
		t.Fatalf("run should not be degraded: %+v", report)
	}
}

func TestBuildReportDegradedByFailureRate(t *testing.T) {
	s := Snapshot{
		TotalBatchesAttempted: 100,
		TotalBatchesSucceeded: 90,
		TotalRecordsSubmitted: 10000,
		Latencies:             []time.Duration{time.Millisecond},
		StartTime:             time.Now().Add(-time.Second),
	}

	report := BuildReport(s, time.Now())
	if report.FailedRequests != 10 {
		t.Fatalf("failed %d, want 10", report.FailedRequests)
	}
	if !report.Degraded {
		t.Fatalf("10%% failure rate must mark run degraded")
	}
}

func TestBuildReportDegradedByP95(t *testing.T) {
	latencies := make([]time.Duration, 100)
	for i := range latencies {
		latencies[i] = 5 * time.Second
	}
	s := Snapshot{
		TotalBatchesAttempted: 100,
		TotalBatchesSucceeded: 100,
		Latencies:             latencies,
		StartTime:             time.Now().Add(-time.Minute),
	}

	if report := BuildReport(s, time.Now()); !report.Degraded {
		t.Fatalf("p95 of 5s must mark run degraded")
	}
}

func TestBuildReportEmptyRun(t *testing.T) {
	s := Snapshot{StartTime: time.Now().Add(-time.Second)}
	report := BuildReport(s, time.Now())

	if report.TotalRequests != 0 || report.AvgRequestDurationMs != 0 || report.Degraded {
		t.Fatalf("unexpected report for empty run: %+v", report)
	}
}

func TestPercentile(t *testing.T) {
	durations := []time.Duration{
		4 * time.Millisecond, 1 * time.Millisecond, 3 * time.Millisecond, 2 * time.Millisecond,
	}
	if got := percentile(durations, 50); got != 3*time.Millisecond {
		t.Fatalf("p50 %v, want 3ms", got)
	}
	if got := percentile(durations, 95); got != 4*time.Millisecond {
		t.Fatalf("p95 %v, want 4ms", got)
	}
}

func TestReportRender(t *testing.T) {
	report := Report{
		TotalRequests:        3,
		FailedRequests:       1,
		TotalRecords:         300,
		AvgRequestDurationMs: 12.5,
		P95RequestDurationMs: 20,
		TotalDurationSec:     1.5,
		AvgRate:              200,
		Degraded:             true,
	}

	text := report.Render()
	for _, want := range []string{
		"Total Products Processed: 300",
		"Failed Requests: 1",
		"Average Request Duration: 12.50ms",
		"P95 Request Duration: 20.00ms",
		"Average Rate: 200.00 products/sec",
		"DEGRADED",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("render output missing %q:\n%s", want, text)
		}
	}
}
