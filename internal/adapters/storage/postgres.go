package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/athebyme/gomarket-platform/catalog-loadgen/internal/metrics"
	"github.com/jackc/pgx/v5/pgxpool"
)

// runsTableDDL схема журнала запусков, создается при подключении
const runsTableDDL = `
CREATE TABLE IF NOT EXISTS loadgen_runs (
    id              BIGSERIAL PRIMARY KEY,
    started_at      TIMESTAMPTZ NOT NULL,
    finished_at     TIMESTAMPTZ NOT NULL,
    total_requests  BIGINT NOT NULL,
    failed_requests BIGINT NOT NULL,
    total_records   BIGINT NOT NULL,
    avg_duration_ms DOUBLE PRECISION NOT NULL,
    p95_duration_ms DOUBLE PRECISION NOT NULL,
    total_sec       DOUBLE PRECISION NOT NULL,
    avg_rate        DOUBLE PRECISION NOT NULL,
    degraded        BOOLEAN NOT NULL
)`

// RunStorage сохраняет итоговые отчеты запусков в PostgreSQL
type RunStorage struct {
	pool    *pgxpool.Pool
	timeout time.Duration
}

// NewRunStorage подключается к PostgreSQL и гарантирует наличие журнала запусков
func NewRunStorage(ctx context.Context, connectionString string, timeout time.Duration) (*RunStorage, error) {
	pool, err := pgxpool.New(ctx, connectionString)
	if err != nil {
		return nil, fmt.Errorf("pgxpool.New: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pool.Ping: %w", err)
	}

	ddlCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if _, err := pool.Exec(ddlCtx, runsTableDDL); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pool.Exec: %w", err)
	}

	return &RunStorage{pool: pool, timeout: timeout}, nil
}

// SaveReport сохраняет итоговый отчет одного запуска
func (s *RunStorage) SaveReport(ctx context.Context, startedAt, finishedAt time.Time, report metrics.Report) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	_, err := s.pool.Exec(ctx, `
		INSERT INTO loadgen_runs (
			started_at, finished_at, total_requests, failed_requests,
			total_records, avg_duration_ms, p95_duration_ms, total_sec, avg_rate, degraded
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		startedAt,
		finishedAt,
		report.TotalRequests,
		report.FailedRequests,
		report.TotalRecords,
		report.AvgRequestDurationMs,
		report.P95RequestDurationMs,
		report.TotalDurationSec,
		report.AvgRate,
		report.Degraded,
	)
	if err != nil {
		return fmt.Errorf("pool.Exec: %w", err)
	}
	return nil
}

// Close закрывает пул соединений
func (s *RunStorage) Close() {
	s.pool.Close()
}

// ConnectionString собирает строку подключения из параметров
func ConnectionString(host string, port int, user, password, dbname, sslmode string) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		user, password, host, port, dbname, sslmode)
}
