package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/athebyme/gomarket-platform/catalog-loadgen/config"
	"github.com/athebyme/gomarket-platform/catalog-loadgen/internal/adapters/logger"
	"github.com/athebyme/gomarket-platform/catalog-loadgen/internal/api"
	"github.com/athebyme/gomarket-platform/catalog-loadgen/pkg/interfaces"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		fmt.Printf("Ошибка загрузки конфигурации: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.NewZapLogger(cfg.LogLevel, cfg.ENV == "production")
	if err != nil {
		fmt.Printf("Ошибка инициализации логгера: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	handler := api.NewBulkHandler(log, cfg.Stub.FailureRate, cfg.Stub.MaxLatency, time.Now().UnixNano())
	router := api.SetupRouter(handler, log)

	addr := fmt.Sprintf(":%d", cfg.Stub.Port)
	log.Info("Запуск сервера-заглушки",
		interfaces.LogField{Key: "addr", Value: addr},
		interfaces.LogField{Key: "failure_rate", Value: cfg.Stub.FailureRate},
		interfaces.LogField{Key: "max_latency", Value: cfg.Stub.MaxLatency.String()},
	)

	server := http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	if err := server.ListenAndServe(); err != nil {
		log.Fatal("Ошибка запуска сервера-заглушки",
			interfaces.LogField{Key: "error", Value: err.Error()})
	}
}
