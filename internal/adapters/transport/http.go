package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/athebyme/gomarket-platform/catalog-loadgen/internal/domain/models"
	"github.com/athebyme/gomarket-platform/catalog-loadgen/internal/utils"
)

// bulkPath путь bulk-эндпоинта относительно базового URL
const bulkPath = "/products/bulk"

// Client отправляет батчи товаров в bulk-эндпоинт целевого сервиса
type Client struct {
	baseURL string
	timeout time.Duration
	client  *http.Client
}

// NewClient создает HTTP-транспорт для bulk-отправки
func NewClient(baseURL string, timeout time.Duration) (*Client, error) {
	if baseURL == "" {
		return nil, utils.ErrEmptyBaseURL
	}
	if timeout <= 0 {
		return nil, utils.ErrInvalidTimeout
	}
	return &Client{
		baseURL: baseURL,
		timeout: timeout,
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 64,
			},
		},
	}, nil
}

// SubmitBatch сериализует товары в JSON-массив и отправляет их одним запросом.
// Возвращает сырой статус, тело и длительность; классификация результата -
// обязанность вызывающего.
func (c *Client) SubmitBatch(ctx context.Context, products []*models.Product) (*models.SubmitResult, error) {
	payload, err := json.Marshal(products)
	if err != nil {
		return nil, fmt.Errorf("json.Marshal: %w", err)
	}

	// начатая отправка должна завершиться или истечь по таймауту,
	// даже если потолок длительности запуска уже достигнут
	callCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(callCtx, http.MethodPost, c.baseURL+bulkPath, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("http.NewRequestWithContext: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("client.Do: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("io.ReadAll: %w", err)
	}

	return &models.SubmitResult{
		StatusCode: resp.StatusCode,
		Body:       body,
		Latency:    time.Since(start),
	}, nil
}
