package metrics

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Пороговые значения деградации запуска
const (
	failureRateThreshold = 0.01
	p95Threshold         = 3 * time.Second
)

// Report представляет итоговую сводку запуска
type Report struct {
	TotalRequests        int     `json:"totalRequests"`
	FailedRequests       int     `json:"failedRequests"`
	TotalRecords         int     `json:"totalRecords"`
	AvgRequestDurationMs float64 `json:"avgRequestDurationMs"`
	P95RequestDurationMs float64 `json:"p95RequestDurationMs"`
	TotalDurationSec     float64 `json:"totalDurationSec"`
	AvgRate              float64 `json:"avgRate"`
	Degraded             bool    `json:"degraded"`
}

// BuildReport сворачивает срез метрик в итоговый отчет
func BuildReport(s Snapshot, finishedAt time.Time) Report {
	report := Report{
		TotalRequests:  s.TotalBatchesAttempted,
		FailedRequests: s.TotalBatchesAttempted - s.TotalBatchesSucceeded,
		TotalRecords:   s.TotalRecordsSubmitted,
	}

	totalDuration := finishedAt.Sub(s.StartTime)
	report.TotalDurationSec = totalDuration.Seconds()
	if totalDuration > 0 {
		report.AvgRate = float64(s.TotalRecordsSubmitted) / totalDuration.Seconds()
	}

	if len(s.Latencies) > 0 {
		var sum time.Duration
		for _, l := range s.Latencies {
			sum += l
		}
		avg := sum / time.Duration(len(s.Latencies))
		p95 := percentile(s.Latencies, 95)

		report.AvgRequestDurationMs = float64(avg) / float64(time.Millisecond)
		report.P95RequestDurationMs = float64(p95) / float64(time.Millisecond)

		if p95 > p95Threshold {
			report.Degraded = true
		}
	}

	if s.TotalBatchesAttempted > 0 &&
		float64(report.FailedRequests)/float64(s.TotalBatchesAttempted) > failureRateThreshold {
		report.Degraded = true
	}

	return report
}

// Summary представляет подробный дамп запуска для JSON-отчета
type Summary struct {
	Report                Report    `json:"report"`
	TotalBatchesAttempted int       `json:"totalBatchesAttempted"`
	TotalBatchesSucceeded int       `json:"totalBatchesSucceeded"`
	TotalRecordsSubmitted int       `json:"totalRecordsSubmitted"`
	LatencySamples        int       `json:"latencySamples"`
	StartTime             time.Time `json:"startTime"`
	FinishedAt            time.Time `json:"finishedAt"`
}

// BuildSummary сворачивает срез метрик в подробный дамп
func BuildSummary(s Snapshot, finishedAt time.Time) Summary {
	return Summary{
		Report:                BuildReport(s, finishedAt),
		TotalBatchesAttempted: s.TotalBatchesAttempted,
		TotalBatchesSucceeded: s.TotalBatchesSucceeded,
		TotalRecordsSubmitted: s.TotalRecordsSubmitted,
		LatencySamples:        len(s.Latencies),
		StartTime:             s.StartTime,
		FinishedAt:            finishedAt,
	}
}

// percentile возвращает p-й перцентиль длительностей
func percentile(durations []time.Duration, p int) time.Duration {
	sorted := make([]time.Duration, len(durations))
	copy(sorted, durations)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	idx := len(sorted) * p / 100
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}

// Render возвращает текстовое представление отчета
func (r Report) Render() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Total Products Processed: %d\n", r.TotalRecords)
	fmt.Fprintf(&b, "Total Requests: %d\n", r.TotalRequests)
	fmt.Fprintf(&b, "Failed Requests: %d\n", r.FailedRequests)
	fmt.Fprintf(&b, "Average Request Duration: %.2fms\n", r.AvgRequestDurationMs)
	fmt.Fprintf(&b, "P95 Request Duration: %.2fms\n", r.P95RequestDurationMs)
	fmt.Fprintf(&b, "Total Duration: %.2fs\n", r.TotalDurationSec)
	fmt.Fprintf(&b, "Average Rate: %.2f products/sec\n", r.AvgRate)
	if r.Degraded {
		b.WriteString("Status: DEGRADED (failure rate or p95 over threshold)\n")
	}
	return b.String()
}
