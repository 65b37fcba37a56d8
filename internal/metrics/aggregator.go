package metrics

import (
	"sync"
	"time"

	"github.com/athebyme/gomarket-platform/catalog-loadgen/internal/domain/models"
	"github.com/athebyme/gomarket-platform/catalog-loadgen/pkg/interfaces"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Метрики для Prometheus
var (
	batchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "loadgen_batches_total",
		Help: "Общее количество обработанных батчей",
	}, []string{"outcome"})

	recordsSubmittedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "loadgen_records_submitted_total",
		Help: "Общее количество отправленных записей",
	})

	requestDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "loadgen_request_duration_seconds",
		Help:    "Длительность отправки батча",
		Buckets: prometheus.DefBuckets,
	})
)

// Snapshot представляет согласованный срез накопленных метрик запуска
type Snapshot struct {
	TotalBatchesAttempted int
	TotalBatchesSucceeded int
	TotalRecordsSubmitted int
	Latencies             []time.Duration
	StartTime             time.Time
}

// Aggregator накапливает результаты батчей из нескольких воркеров.
// Единственное разделяемое состояние запуска; вся мутация под мьютексом.
type Aggregator struct {
	logger        interfaces.LoggerPort
	progressEvery int
	totalBatches  int

	mu           sync.Mutex
	attempted    int
	succeeded    int
	records      int
	latencies    []time.Duration
	startTime    time.Time
	nextProgress int
}

// NewAggregator создает агрегатор метрик.
// progressEvery - период прогресс-лога в записях, totalBatches - размер плана
// для позиции батча в логе.
func NewAggregator(logger interfaces.LoggerPort, progressEvery, totalBatches int) *Aggregator {
	return &Aggregator{
		logger:        logger,
		progressEvery: progressEvery,
		totalBatches:  totalBatches,
		startTime:     time.Now(),
		nextProgress:  progressEvery,
	}
}

// Record фиксирует результат одного батча. Безопасен для конкурентных вызовов.
func (a *Aggregator) Record(outcome models.BatchOutcome, recordCount int, latency time.Duration) {
	batchesTotal.WithLabelValues(outcome.String()).Inc()
	recordsSubmittedTotal.Add(float64(recordCount))
	requestDuration.Observe(latency.Seconds())

	a.mu.Lock()
	a.attempted++
	a.records += recordCount
	if outcome == models.OutcomeAccepted {
		a.succeeded++
	}
	a.latencies = append(a.latencies, latency)

	emitProgress := a.progressEvery > 0 && a.records >= a.nextProgress
	if emitProgress {
		for a.nextProgress <= a.records {
			a.nextProgress += a.progressEvery
		}
	}
	records, attempted, elapsed := a.records, a.attempted, time.Since(a.startTime)
	a.mu.Unlock()

	// прогресс - рекомендательная наблюдаемость, вне контракта корректности
	if emitProgress {
		rate := float64(records) / elapsed.Seconds()
		a.logger.Info("Прогресс генерации",
			interfaces.LogField{Key: "records", Value: records},
			interfaces.LogField{Key: "rate_per_sec", Value: rate},
			interfaces.LogField{Key: "batch", Value: attempted},
			interfaces.LogField{Key: "batches_total", Value: a.totalBatches},
		)
	}
}

// Snapshot возвращает согласованную копию накопленного состояния
func (a *Aggregator) Snapshot() Snapshot {
	a.mu.Lock()
	defer a.mu.Unlock()

	latencies := make([]time.Duration, len(a.latencies))
	copy(latencies, a.latencies)

	return Snapshot{
		TotalBatchesAttempted: a.attempted,
		TotalBatchesSucceeded: a.succeeded,
		TotalRecordsSubmitted: a.records,
		Latencies:             latencies,
		StartTime:             a.startTime,
	}
}
