package metrics

import (
	"sync"
	"testing"
	"time"

	"github.com/athebyme/gomarket-platform/catalog-loadgen/internal/domain/models"
	"github.com/athebyme/gomarket-platform/catalog-loadgen/pkg/interfaces"
)

// nopLogger реализация LoggerPort для тестов
type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{})                     {}
func (nopLogger) Info(string, ...interface{})                      {}
func (nopLogger) Warn(string, ...interface{})                      {}
func (nopLogger) Error(string, ...interface{})                     {}
func (nopLogger) Fatal(string, ...interface{})                     {}
func (n nopLogger) WithFields(...interfaces.LogField) interfaces.LoggerPort { return n }
func (nopLogger) Sync() error                                      { return nil }

func TestAggregatorCounts(t *testing.T) {
	a := NewAggregator(nopLogger{}, 1000, 10)

	a.Record(models.OutcomeAccepted, 100, 10*time.Millisecond)
	a.Record(models.OutcomeAccepted, 100, 20*time.Millisecond)
	a.Record(models.OutcomeMismatch, 100, 30*time.Millisecond)
	a.Record(models.OutcomeTransportFailure, 100, 40*time.Millisecond)

	s := a.Snapshot()
	if s.TotalBatchesAttempted != 4 {
		t.Fatalf("attempted %d, want 4", s.TotalBatchesAttempted)
	}
	if s.TotalBatchesSucceeded != 2 {
		t.Fatalf("succeeded %d, want 2", s.TotalBatchesSucceeded)
	}
	if s.TotalRecordsSubmitted != 400 {
		t.Fatalf("records %d, want 400", s.TotalRecordsSubmitted)
	}
	if len(s.Latencies) != 4 {
		t.Fatalf("latencies %d, want 4", len(s.Latencies))
	}
}

func TestAggregatorConcurrentRecord(t *testing.T) {
	a := NewAggregator(nopLogger{}, 10000, 100)

	const goroutines, perGoroutine = 20, 50
	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perGoroutine; i++ {
				a.Record(models.OutcomeAccepted, 10, time.Millisecond)
			}
		}()
	}
	wg.Wait()

	s := a.Snapshot()
	if want := goroutines * perGoroutine; s.TotalBatchesAttempted != want {
		t.Fatalf("attempted %d, want %d", s.TotalBatchesAttempted, want)
	}
	if want := goroutines * perGoroutine * 10; s.TotalRecordsSubmitted != want {
		t.Fatalf("records %d, want %d", s.TotalRecordsSubmitted, want)
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	a := NewAggregator(nopLogger{}, 1000, 1)
	a.Record(models.OutcomeAccepted, 1, time.Millisecond)

	s := a.Snapshot()
	s.Latencies[0] = time.Hour

	if again := a.Snapshot(); again.Latencies[0] == time.Hour {
		t.Fatalf("snapshot shares latency slice with aggregator")
	}
}
