package transport

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/athebyme/gomarket-platform/catalog-loadgen/internal/domain/models"
	"github.com/athebyme/gomarket-platform/catalog-loadgen/internal/domain/refdata"
	"github.com/athebyme/gomarket-platform/catalog-loadgen/internal/domain/services"
	"github.com/athebyme/gomarket-platform/catalog-loadgen/internal/utils"
)

func testProducts(t *testing.T, n int) []*models.Product {
	t.Helper()
	g := services.NewGenerator(refdata.Default(), nil)
	rng := rand.New(rand.NewSource(1))
	products := make([]*models.Product, n)
	for i := range products {
		products[i] = g.Generate(i+1, rng)
	}
	return products
}

func TestNewClientValidation(t *testing.T) {
	if _, err := NewClient("", time.Second); !errors.Is(err, utils.ErrEmptyBaseURL) {
		t.Fatalf("expected ErrEmptyBaseURL, got %v", err)
	}
	if _, err := NewClient("http://localhost:8080", 0); !errors.Is(err, utils.ErrInvalidTimeout) {
		t.Fatalf("expected ErrInvalidTimeout, got %v", err)
	}
}

func TestSubmitBatchPostsJSONArray(t *testing.T) {
	var gotPath, gotContentType string
	var gotCount int

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotContentType = r.Header.Get("Content-Type")

		var products []models.Product
		if err := json.NewDecoder(r.Body).Decode(&products); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		gotCount = len(products)

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(models.BulkResponse{Count: len(products)})
	}))
	defer server.Close()

	client, err := NewClient(server.URL+"/api/v1", 5*time.Second)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	result, err := client.SubmitBatch(context.Background(), testProducts(t, 5))
	if err != nil {
		t.Fatalf("SubmitBatch: %v", err)
	}

	if gotPath != "/api/v1/products/bulk" {
		t.Fatalf("path %q", gotPath)
	}
	if gotContentType != "application/json" {
		t.Fatalf("content type %q", gotContentType)
	}
	if gotCount != 5 {
		t.Fatalf("server saw %d products, want 5", gotCount)
	}
	if result.StatusCode != http.StatusCreated {
		t.Fatalf("status %d", result.StatusCode)
	}
	var resp models.BulkResponse
	if err := json.Unmarshal(result.Body, &resp); err != nil || resp.Count != 5 {
		t.Fatalf("body %q (err %v)", result.Body, err)
	}
	if result.Latency <= 0 {
		t.Fatalf("latency must be positive, got %v", result.Latency)
	}
}

func TestSubmitBatchReturnsErrorStatusAsResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client, err := NewClient(server.URL, time.Second)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	// ошибочный статус - не ошибка транспорта, классификация на вызывающем
	result, err := client.SubmitBatch(context.Background(), testProducts(t, 1))
	if err != nil {
		t.Fatalf("SubmitBatch: %v", err)
	}
	if result.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("status %d", result.StatusCode)
	}
}

func TestSubmitBatchConnectionError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close() // порт больше не слушается

	client, err := NewClient(server.URL, time.Second)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	if _, err := client.SubmitBatch(context.Background(), testProducts(t, 1)); err == nil {
		t.Fatalf("expected connection error")
	}
}

func TestSubmitBatchTimesOut(t *testing.T) {
	block := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		<-block
	}))
	defer func() {
		close(block)
		server.Close()
	}()

	client, err := NewClient(server.URL, 50*time.Millisecond)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	start := time.Now()
	_, err = client.SubmitBatch(context.Background(), testProducts(t, 1))
	if err == nil {
		t.Fatalf("expected timeout error")
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("timeout took too long: %v", elapsed)
	}
}

func TestSubmitBatchFinishesAfterRunCancel(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(20 * time.Millisecond)
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(models.BulkResponse{Count: 1})
	}))
	defer server.Close()

	client, err := NewClient(server.URL, time.Second)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	// отмена контекста запуска не обрывает начатую отправку
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := client.SubmitBatch(ctx, testProducts(t, 1))
	if err != nil {
		t.Fatalf("SubmitBatch after cancel: %v", err)
	}
	if result.StatusCode != http.StatusCreated {
		t.Fatalf("status %d", result.StatusCode)
	}
}
