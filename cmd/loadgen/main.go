package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/athebyme/gomarket-platform/catalog-loadgen/config"
	"github.com/athebyme/gomarket-platform/catalog-loadgen/internal/adapters/logger"
	"github.com/athebyme/gomarket-platform/catalog-loadgen/internal/adapters/storage"
	"github.com/athebyme/gomarket-platform/catalog-loadgen/internal/adapters/transport"
	"github.com/athebyme/gomarket-platform/catalog-loadgen/internal/domain/refdata"
	"github.com/athebyme/gomarket-platform/catalog-loadgen/internal/domain/services"
	"github.com/athebyme/gomarket-platform/catalog-loadgen/internal/metrics"
	"github.com/athebyme/gomarket-platform/catalog-loadgen/pkg/interfaces"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		fmt.Printf("Ошибка загрузки конфигурации: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Printf("Некорректная конфигурация: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.NewZapLogger(cfg.LogLevel, cfg.ENV == "production")
	if err != nil {
		fmt.Printf("Ошибка инициализации логгера: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	log.Info("Инициализация генератора нагрузки",
		interfaces.LogField{Key: "app_name", Value: cfg.AppName},
		interfaces.LogField{Key: "version", Value: cfg.Version},
		interfaces.LogField{Key: "target", Value: cfg.Target.BaseURL},
		interfaces.LogField{Key: "total_products", Value: cfg.Load.TotalProducts},
		interfaces.LogField{Key: "batch_size", Value: cfg.Load.BatchSize},
		interfaces.LogField{Key: "workers", Value: cfg.Load.Workers},
	)

	// Запускаем HTTP сервер для метрик если они включены
	if cfg.Metrics.Enabled {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusOK)
				w.Write([]byte("OK"))
			})

			addr := fmt.Sprintf(":%d", cfg.Metrics.Port)
			log.Info("Запуск HTTP сервера для метрик",
				interfaces.LogField{Key: "addr", Value: addr})
			if err := http.ListenAndServe(addr, mux); err != nil {
				log.Error("Ошибка запуска HTTP сервера для метрик",
					interfaces.LogField{Key: "error", Value: err.Error()})
			}
		}()
	}

	// Потолок длительности запуска задает кооперативную отмену
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Load.MaxDuration)
	defer cancel()

	// Обработка сигналов завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-quit
		log.Info("Получен сигнал завершения, новые батчи не отправляются...")
		cancel()
	}()

	descriptors, err := services.Plan(cfg.Load.TotalProducts, cfg.Load.BatchSize)
	if err != nil {
		log.Fatal("Ошибка планирования батчей",
			interfaces.LogField{Key: "error", Value: err.Error()})
	}

	client, err := transport.NewClient(cfg.Target.BaseURL, cfg.Target.Timeout)
	if err != nil {
		log.Fatal("Ошибка инициализации транспорта",
			interfaces.LogField{Key: "error", Value: err.Error()})
	}

	seed := cfg.Load.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	generator := services.NewGenerator(refdata.Default(), time.Now)
	aggregator := metrics.NewAggregator(log, cfg.Load.ProgressInterval, len(descriptors))

	driver, err := services.NewDriver(generator, client, aggregator, log, services.DriverConfig{
		Workers:          cfg.Load.Workers,
		PaceEveryBatches: cfg.Load.PaceEveryBatches,
		PacePause:        cfg.Load.PacePause,
		Seed:             seed,
	})
	if err != nil {
		log.Fatal("Ошибка инициализации драйвера",
			interfaces.LogField{Key: "error", Value: err.Error()})
	}

	log.Info("Запуск рассылки",
		interfaces.LogField{Key: "batches", Value: len(descriptors)},
		interfaces.LogField{Key: "seed", Value: seed})

	driver.Run(ctx, descriptors)

	finishedAt := time.Now()
	snapshot := aggregator.Snapshot()
	report := metrics.BuildReport(snapshot, finishedAt)

	fmt.Print(report.Render())
	log.Info("Запуск завершен",
		interfaces.LogField{Key: "total_requests", Value: report.TotalRequests},
		interfaces.LogField{Key: "failed_requests", Value: report.FailedRequests},
		interfaces.LogField{Key: "avg_ms", Value: report.AvgRequestDurationMs},
		interfaces.LogField{Key: "p95_ms", Value: report.P95RequestDurationMs},
		interfaces.LogField{Key: "rate", Value: report.AvgRate},
		interfaces.LogField{Key: "degraded", Value: report.Degraded},
	)

	// Подробный JSON-дамп пишется, если задан путь
	if cfg.Report.File != "" {
		summary := metrics.BuildSummary(snapshot, finishedAt)
		data, err := json.MarshalIndent(summary, "", "  ")
		if err == nil {
			err = os.WriteFile(cfg.Report.File, data, 0644)
		}
		if err != nil {
			log.Error("Ошибка записи JSON-отчета",
				interfaces.LogField{Key: "file", Value: cfg.Report.File},
				interfaces.LogField{Key: "error", Value: err.Error()})
		} else {
			log.Info("JSON-отчет записан",
				interfaces.LogField{Key: "file", Value: cfg.Report.File})
		}
	}

	// Журнал запусков в PostgreSQL включается конфигурацией
	if cfg.Postgres.Enabled {
		saveReport(log, cfg, snapshot.StartTime, finishedAt, report)
	}
}

// saveReport сохраняет итоговый отчет в журнал запусков
func saveReport(log interfaces.LoggerPort, cfg *config.Config, startedAt, finishedAt time.Time, report metrics.Report) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Postgres.Timeout)
	defer cancel()

	connStr := storage.ConnectionString(
		cfg.Postgres.Host,
		cfg.Postgres.Port,
		cfg.Postgres.User,
		cfg.Postgres.Password,
		cfg.Postgres.DBName,
		cfg.Postgres.SSLMode,
	)

	repo, err := storage.NewRunStorage(ctx, connStr, cfg.Postgres.Timeout)
	if err != nil {
		log.Error("Ошибка инициализации журнала запусков",
			interfaces.LogField{Key: "error", Value: err.Error()})
		return
	}
	defer repo.Close()

	if err := repo.SaveReport(ctx, startedAt, finishedAt, report); err != nil {
		log.Error("Ошибка сохранения отчета",
			interfaces.LogField{Key: "error", Value: err.Error()})
		return
	}
	log.Info("Отчет сохранен в журнал запусков")
}
