package models

import "time"

// BatchDescriptor описывает один батч до материализации.
// Создается планировщиком, потребляется ровно одним воркером и не мутируется.
type BatchDescriptor struct {
	SequenceNumber int
	StartIndex     int
	Size           int
}

// BatchOutcome классифицирует результат отправки одного батча
type BatchOutcome int

const (
	// OutcomeAccepted - статус 201 и подтвержденное количество совпало с размером батча
	OutcomeAccepted BatchOutcome = iota
	// OutcomeMismatch - успешный HTTP-статус, но количество не совпало, либо ошибка 4xx/5xx
	OutcomeMismatch
	// OutcomeTransportFailure - таймаут, сетевая ошибка или нечитаемое тело ответа
	OutcomeTransportFailure
)

// String возвращает метку исхода для логов и метрик
func (o BatchOutcome) String() string {
	switch o {
	case OutcomeAccepted:
		return "accepted"
	case OutcomeMismatch:
		return "mismatch"
	case OutcomeTransportFailure:
		return "transport_failure"
	default:
		return "unknown"
	}
}

// SubmitResult представляет сырой ответ транспорта на отправку батча
type SubmitResult struct {
	StatusCode int
	Body       []byte
	Latency    time.Duration
}
