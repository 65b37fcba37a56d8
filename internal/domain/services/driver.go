package services

import (
	"context"
	"encoding/json"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/athebyme/gomarket-platform/catalog-loadgen/internal/domain/models"
	"github.com/athebyme/gomarket-platform/catalog-loadgen/internal/utils"
	"github.com/athebyme/gomarket-platform/catalog-loadgen/pkg/interfaces"
)

// TransportPort определяет способность отправить батч товаров в целевой сервис
type TransportPort interface {
	SubmitBatch(ctx context.Context, products []*models.Product) (*models.SubmitResult, error)
}

// MetricsRecorder принимает результаты обработки батчей
type MetricsRecorder interface {
	Record(outcome models.BatchOutcome, recordCount int, latency time.Duration)
}

// DriverConfig задает параметры пула воркеров и пейсинга
type DriverConfig struct {
	Workers          int
	PaceEveryBatches int
	PacePause        time.Duration
	Seed             int64
}

// Driver распределяет запланированные батчи по пулу воркеров.
// Каждый дескриптор потребляется ровно одним воркером; неудачные батчи
// фиксируются в метриках и не повторяются.
type Driver struct {
	generator *Generator
	transport TransportPort
	metrics   MetricsRecorder
	logger    interfaces.LoggerPort
	cfg       DriverConfig
}

// NewDriver создает драйвер рассылки батчей
func NewDriver(
	generator *Generator,
	transport TransportPort,
	metrics MetricsRecorder,
	logger interfaces.LoggerPort,
	cfg DriverConfig,
) (*Driver, error) {
	if cfg.Workers <= 0 {
		return nil, utils.ErrInvalidWorkerCount
	}
	return &Driver{
		generator: generator,
		transport: transport,
		metrics:   metrics,
		logger:    logger,
		cfg:       cfg,
	}, nil
}

// Run обрабатывает дескрипторы пулом воркеров и возвращается, когда каждый
// дескриптор обработан ровно один раз либо контекст отменен. При отмене
// новые батчи не берутся в работу, начатые отправки завершаются или
// истекают по таймауту; накопленные метрики остаются доступными.
func (d *Driver) Run(ctx context.Context, descriptors []models.BatchDescriptor) {
	queue := make(chan models.BatchDescriptor)

	go func() {
		defer close(queue)
		for _, desc := range descriptors {
			select {
			case queue <- desc:
			case <-ctx.Done():
				d.logger.Warn("Достигнут потолок длительности, новые батчи не отправляются",
					interfaces.LogField{Key: "reason", Value: ctx.Err().Error()})
				return
			}
		}
	}()

	var wg sync.WaitGroup
	for w := 0; w < d.cfg.Workers; w++ {
		wg.Add(1)
		// каждому воркеру свой источник случайности, чтобы запуск
		// с фиксированным сидом оставался воспроизводимым без блокировок
		rng := rand.New(rand.NewSource(d.cfg.Seed + int64(w)*7919))
		go func(workerID int, rng *rand.Rand) {
			defer wg.Done()
			d.runWorker(ctx, workerID, rng, queue)
		}(w, rng)
	}
	wg.Wait()
}

// runWorker обрабатывает дескрипторы из очереди до ее закрытия
func (d *Driver) runWorker(ctx context.Context, workerID int, rng *rand.Rand, queue <-chan models.BatchDescriptor) {
	processed := 0
	for desc := range queue {
		outcome, latency := d.processBatch(ctx, desc, rng)
		d.metrics.Record(outcome, desc.Size, latency)

		if outcome != models.OutcomeAccepted {
			d.logger.Debug("Батч не принят",
				interfaces.LogField{Key: "worker", Value: workerID},
				interfaces.LogField{Key: "sequence", Value: desc.SequenceNumber},
				interfaces.LogField{Key: "outcome", Value: outcome.String()})
		}

		// рекомендательный пейсинг: пауза не задерживает другие воркеры
		processed++
		if d.cfg.PaceEveryBatches > 0 && processed%d.cfg.PaceEveryBatches == 0 {
			select {
			case <-time.After(d.cfg.PacePause):
			case <-ctx.Done():
			}
		}
	}
}

// processBatch материализует батч, отправляет его и классифицирует результат
func (d *Driver) processBatch(ctx context.Context, desc models.BatchDescriptor, rng *rand.Rand) (models.BatchOutcome, time.Duration) {
	products := make([]*models.Product, desc.Size)
	for i := 0; i < desc.Size; i++ {
		products[i] = d.generator.Generate(desc.StartIndex+i, rng)
	}

	start := time.Now()
	result, err := d.transport.SubmitBatch(ctx, products)
	if err != nil {
		return models.OutcomeTransportFailure, time.Since(start)
	}

	if result.StatusCode != http.StatusCreated {
		return models.OutcomeMismatch, result.Latency
	}

	var resp models.BulkResponse
	if err := json.Unmarshal(result.Body, &resp); err != nil {
		return models.OutcomeTransportFailure, result.Latency
	}
	if resp.Count != len(products) {
		return models.OutcomeMismatch, result.Latency
	}
	return models.OutcomeAccepted, result.Latency
}
