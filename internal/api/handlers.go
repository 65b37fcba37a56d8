package api

import (
	"encoding/json"
	"math/rand"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/athebyme/gomarket-platform/catalog-loadgen/internal/domain/models"
	"github.com/athebyme/gomarket-platform/catalog-loadgen/pkg/interfaces"
	"github.com/go-chi/render"
)

// errorResponse представляет структуру ответа с ошибкой
type errorResponse struct {
	Error   string `json:"error"`
	Code    int    `json:"code"`
	Message string `json:"message,omitempty"`
}

// BulkHandler заглушка bulk-эндпоинта продуктового сервиса.
// Принимает JSON-массив товаров и отвечает 201 с количеством принятых записей;
// для обкатки генератора умеет инжектировать отказы и задержку.
type BulkHandler struct {
	logger      interfaces.LoggerPort
	failureRate float64
	maxLatency  time.Duration

	mu  sync.Mutex
	rng *rand.Rand

	accepted atomic.Int64
	requests atomic.Int64
}

// NewBulkHandler создает обработчик заглушки.
// failureRate - доля запросов с ответом 500, maxLatency - верхняя граница
// искусственной задержки (0 отключает).
func NewBulkHandler(logger interfaces.LoggerPort, failureRate float64, maxLatency time.Duration, seed int64) *BulkHandler {
	return &BulkHandler{
		logger:      logger,
		failureRate: failureRate,
		maxLatency:  maxLatency,
		rng:         rand.New(rand.NewSource(seed)),
	}
}

// BulkCreate обрабатывает POST /products/bulk
func (h *BulkHandler) BulkCreate(w http.ResponseWriter, r *http.Request) {
	h.requests.Add(1)

	if d := h.randomLatency(); d > 0 {
		time.Sleep(d)
	}

	if h.shouldFail() {
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, errorResponse{
			Error:   "internal_error",
			Code:    http.StatusInternalServerError,
			Message: "Инжектированный отказ",
		})
		return
	}

	var products []models.Product
	if err := json.NewDecoder(r.Body).Decode(&products); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, errorResponse{
			Error:   "bad_request",
			Code:    http.StatusBadRequest,
			Message: "Некорректное тело запроса",
		})
		return
	}

	h.accepted.Add(int64(len(products)))

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, models.BulkResponse{Count: len(products)})
}

// Stats обрабатывает GET /stats: счетчики заглушки для отладки
func (h *BulkHandler) Stats(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]int64{
		"requests": h.requests.Load(),
		"accepted": h.accepted.Load(),
	})
}

func (h *BulkHandler) shouldFail() bool {
	if h.failureRate <= 0 {
		return false
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.rng.Float64() < h.failureRate
}

func (h *BulkHandler) randomLatency() time.Duration {
	if h.maxLatency <= 0 {
		return 0
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return time.Duration(h.rng.Int63n(int64(h.maxLatency)))
}
