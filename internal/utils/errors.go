package utils

import "errors"

// ----------------- конфигурация ------------------
var (
	ErrInvalidTotalTarget      = errors.New("total target must be positive")
	ErrInvalidBatchSize        = errors.New("batch size must be positive")
	ErrInvalidWorkerCount      = errors.New("worker count must be positive")
	ErrInvalidTimeout          = errors.New("request timeout must be positive")
	ErrInvalidMaxDuration      = errors.New("max duration must be positive")
	ErrInvalidProgressInterval = errors.New("progress interval must be positive")
	ErrEmptyBaseURL            = errors.New("base URL is empty")
)
