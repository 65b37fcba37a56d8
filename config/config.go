package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/athebyme/gomarket-platform/catalog-loadgen/internal/utils"
	"github.com/spf13/viper"
)

// Config содержит все настройки генератора нагрузки
type Config struct {
	AppName  string
	Version  string
	LogLevel string
	ENV      string

	Target struct {
		BaseURL string        // базовый URL целевого API, например http://localhost:8080/api/v1
		Timeout time.Duration // таймаут одной bulk-отправки
	}

	Load struct {
		TotalProducts    int           // целевое число записей за запуск
		BatchSize        int           // размер одного батча
		Workers          int           // число конкурентных воркеров
		MaxDuration      time.Duration // потолок длительности запуска
		ProgressInterval int           // период прогресс-лога в записях
		PaceEveryBatches int           // пейсинг: пауза после каждых N батчей воркера
		PacePause        time.Duration // длительность паузы пейсинга
		Seed             int64         // сид генератора; 0 - от текущего времени
	}

	Metrics struct {
		Enabled bool
		Port    int
	}

	Report struct {
		File string // путь для подробного JSON-дампа отчета; пусто - не писать
	}

	Postgres struct {
		Enabled  bool
		Host     string
		Port     int
		User     string
		Password string
		DBName   string
		SSLMode  string
		Timeout  time.Duration
	}

	Stub struct {
		Port        int
		FailureRate float64 // доля запросов, на которые заглушка отвечает 500
		MaxLatency  time.Duration
	}
}

// Load загружает конфигурацию из файла и переменных окружения
func Load(configPath string) (*Config, error) {
	configFile := "config"
	if configPath != "" {
		configFile = configPath
	}

	var cfg Config

	// Настройка Viper
	viper.SetConfigName(configFile)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("../config")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Чтение конфигурационного файла
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("ошибка чтения файла конфигурации: %w", err)
		}
		// Продолжаем, если файл не найден, будем использовать только переменные окружения
	}

	setDefaults()

	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("ошибка десериализации конфигурации: %w", err)
	}

	cfg.ENV = viper.GetString("env")
	if cfg.ENV == "" {
		cfg.ENV = "development"
		if envVar := os.Getenv("APP_ENV"); envVar != "" {
			cfg.ENV = envVar
		}
	}

	return &cfg, nil
}

// Validate проверяет конфигурацию запуска. Ошибка фатальна до начала рассылки.
func (c *Config) Validate() error {
	if c.Target.BaseURL == "" {
		return utils.ErrEmptyBaseURL
	}
	if c.Target.Timeout <= 0 {
		return utils.ErrInvalidTimeout
	}
	if c.Load.TotalProducts <= 0 {
		return utils.ErrInvalidTotalTarget
	}
	if c.Load.BatchSize <= 0 {
		return utils.ErrInvalidBatchSize
	}
	if c.Load.Workers <= 0 {
		return utils.ErrInvalidWorkerCount
	}
	if c.Load.MaxDuration <= 0 {
		return utils.ErrInvalidMaxDuration
	}
	if c.Load.ProgressInterval <= 0 {
		return utils.ErrInvalidProgressInterval
	}
	return nil
}

// setDefaults устанавливает значения по умолчанию
func setDefaults() {
	// Основные настройки
	viper.SetDefault("appName", "catalog-loadgen")
	viper.SetDefault("version", "1.0.0")
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("env", "development")

	// Целевой сервис
	viper.SetDefault("target.baseURL", "http://localhost:8080/api/v1")
	viper.SetDefault("target.timeout", "30s")

	// Параметры нагрузки
	viper.SetDefault("load.totalProducts", 1000000)
	viper.SetDefault("load.batchSize", 100)
	viper.SetDefault("load.workers", 20)
	viper.SetDefault("load.maxDuration", "24h")
	viper.SetDefault("load.progressInterval", 10000)
	viper.SetDefault("load.paceEveryBatches", 10)
	viper.SetDefault("load.pacePause", "100ms")
	viper.SetDefault("load.seed", 0)

	// Настройки метрик
	viper.SetDefault("metrics.enabled", true)
	viper.SetDefault("metrics.port", 9091)

	// Итоговый отчет
	viper.SetDefault("report.file", "")

	// Настройки Postgres (журнал запусков)
	viper.SetDefault("postgres.enabled", false)
	viper.SetDefault("postgres.host", "localhost")
	viper.SetDefault("postgres.port", 5432)
	viper.SetDefault("postgres.user", "postgres")
	viper.SetDefault("postgres.password", "postgres")
	viper.SetDefault("postgres.dbname", "postgres")
	viper.SetDefault("postgres.sslmode", "disable")
	viper.SetDefault("postgres.timeout", "5s")

	// Настройки сервера-заглушки
	viper.SetDefault("stub.port", 8080)
	viper.SetDefault("stub.failureRate", 0)
	viper.SetDefault("stub.maxLatency", "0s")
}
