package models

import (
	"time"
)

// Category представляет категорию каталога, на которую ссылается товар
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Brand представляет бренд товара.
// Tier управляет ценовым множителем и диапазоном остатков.
type Brand struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Tier string `json:"tier,omitempty"`
}

// Уровни брендов
const (
	TierPremium = "premium"
	TierMid     = "mid"
	TierBudget  = "budget"
	TierGaming  = "gaming"
)

// Product представляет сгенерированный товар в том виде,
// в котором его принимает bulk-эндпоинт продуктового сервиса
type Product struct {
	ID          string                 `json:"id"`
	Name        string                 `json:"name"`
	SKU         string                 `json:"sku"`
	Description string                 `json:"description"`
	Price       int                    `json:"price"`
	Category    []Category             `json:"category"`
	Tags        []string               `json:"tags"`
	Images      []string               `json:"images"`
	Stock       int                    `json:"stock"`
	Brand       Brand                  `json:"brand"`
	Attributes  map[string]interface{} `json:"attributes"`
	RatingAvg   float64                `json:"rating_avg"`
	RatingCount int                    `json:"rating_count"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
	DeletedAt   *time.Time             `json:"deleted_at"`
}

// BulkResponse представляет тело ответа bulk-эндпоинта
type BulkResponse struct {
	Count int `json:"count"`
}
