// Package refdata содержит справочные данные каталога:
// категории, бренды, теги, таблицы типов и ценовых диапазонов.
// Данные неизменяемы и внедряются в генератор как зависимость,
// а не читаются из глобального состояния.
package refdata

import "github.com/athebyme/gomarket-platform/catalog-loadgen/internal/domain/models"

// PriceBand задает диапазон базовой цены категории в минорных единицах валюты
type PriceBand struct {
	Min int
	Max int
}

// Set объединяет все справочники, необходимые генератору
type Set struct {
	Categories      []models.Category
	Brands          []models.Brand
	Tags            []string
	ProductTypes    map[string][]string
	PriceBands      map[string]PriceBand
	TierMultipliers map[string]float64
}

// FallbackCategoryID - категория, чьи таблицы типов и цен используются,
// когда для категории товара нет собственной записи
const FallbackCategoryID = "accessories"

// Default возвращает справочники каталога маркетплейса
func Default() *Set {
	return &Set{
		Categories: []models.Category{
			{ID: "electronics", Name: "Electronics"},
			{ID: "computers", Name: "Computers & Tablets"},
			{ID: "mobile", Name: "Mobile Phones"},
			{ID: "cameras", Name: "Cameras & Photo"},
			{ID: "audio", Name: "Audio & Headphones"},
			{ID: "gaming", Name: "Gaming"},
			{ID: "smart-home", Name: "Smart Home"},
			{ID: "wearables", Name: "Wearables"},
			{ID: "tv-video", Name: "TV & Video"},
			{ID: "accessories", Name: "Accessories"},
			{ID: "health", Name: "Health & Beauty"},
			{ID: "home", Name: "Home & Garden"},
			{ID: "toys", Name: "Toys & Games"},
			{ID: "sports", Name: "Sports & Outdoors"},
			{ID: "automotive", Name: "Automotive"},
			{ID: "groceries", Name: "Groceries"},
			{ID: "books", Name: "Books"},
			{ID: "music", Name: "Music"},
			{ID: "office", Name: "Office Supplies"},
			{ID: "art", Name: "Art & Crafts"},
			{ID: "pet", Name: "Pet Supplies"},
			{ID: "baby", Name: "Baby & Toddler"},
			{ID: "jewelry", Name: "Jewelry & Watches"},
			{ID: "tools", Name: "Tools & Home Improvement"},
			{ID: "garden", Name: "Garden & Outdoor"},
		},
		Brands: []models.Brand{
			{ID: "apple", Name: "Apple", Tier: models.TierPremium},
			{ID: "samsung", Name: "Samsung", Tier: models.TierPremium},
			{ID: "google", Name: "Google", Tier: models.TierPremium},
			{ID: "microsoft", Name: "Microsoft", Tier: models.TierPremium},
			{ID: "sony", Name: "Sony", Tier: models.TierMid},
			{ID: "lg", Name: "LG", Tier: models.TierMid},
			{ID: "huawei", Name: "Huawei", Tier: models.TierMid},
			{ID: "xiaomi", Name: "Xiaomi", Tier: models.TierBudget},
			{ID: "oneplus", Name: "OnePlus", Tier: models.TierMid},
			{ID: "nokia", Name: "Nokia", Tier: models.TierBudget},
			{ID: "asus", Name: "Asus", Tier: models.TierGaming},
			{ID: "dell", Name: "Dell", Tier: models.TierMid},
			{ID: "hp", Name: "HP", Tier: models.TierMid},
			{ID: "lenovo", Name: "Lenovo", Tier: models.TierBudget},
			{ID: "acer", Name: "Acer", Tier: models.TierGaming},
			{ID: "toshiba", Name: "Toshiba", Tier: models.TierBudget},
		},
		Tags: []string{
			"new-arrival",
			"bestseller",
			"featured",
			"sale",
			"trending",
			"premium",
			"limited-edition",
			"exclusive",
			"eco-friendly",
			"wireless",
			"bluetooth",
			"gaming",
			"professional",
			"budget-friendly",
			"luxury",
			"refurbished",
			"open-box",
			"clearance",
			"pre-order",
			"bundle",
		},
		// Ключи таблицы исторически не везде совпадают с ID категорий:
		// несовпавшие категории получают типы из FallbackCategoryID
		ProductTypes: map[string][]string{
			"mobile":      {"smartphone", "tablet", "smartwatch", "earphone", "speaker"},
			"computer":    {"laptop", "desktop", "monitor", "keyboard", "mouse"},
			"camera":      {"camera", "lens", "tripod", "camera bag", "camera accessory"},
			"headphone":   {"earphone", "headphone", "speaker", "earphone accessory"},
			"speaker":     {"speaker", "speaker accessory"},
			"game":        {"game console", "game console accessory", "game console game"},
			"smartHome":   {"smart home device", "smart home accessory"},
			"wearables":   {"smartwatch", "fitness band", "smartwatch accessory"},
			"tvVideo":     {"tv", "monitor", "speaker", "tv accessory"},
			"accessories": {"accessory", "accessory accessory"},
			"health":      {"health device", "health accessory"},
		},
		PriceBands: map[string]PriceBand{
			"mobile":      {Min: 19900, Max: 129900},
			"computers":   {Min: 49900, Max: 299900},
			"audio":       {Min: 9900, Max: 39900},
			"gaming":      {Min: 29900, Max: 199900},
			"cameras":     {Min: 39900, Max: 299900},
			"accessories": {Min: 1990, Max: 19900},
		},
		TierMultipliers: map[string]float64{
			models.TierPremium: 2,
			models.TierMid:     1.5,
			models.TierBudget:  1,
			models.TierGaming:  1.8,
		},
	}
}

// TypesFor возвращает список типов для категории с фолбэком на accessories
func (s *Set) TypesFor(categoryID string) []string {
	if types, ok := s.ProductTypes[categoryID]; ok {
		return types
	}
	return s.ProductTypes[FallbackCategoryID]
}

// PriceBandFor возвращает ценовой диапазон категории с фолбэком на accessories
func (s *Set) PriceBandFor(categoryID string) PriceBand {
	if band, ok := s.PriceBands[categoryID]; ok {
		return band
	}
	return s.PriceBands[FallbackCategoryID]
}

// MultiplierFor возвращает ценовой множитель уровня бренда.
// Неизвестный уровень дает множитель 1.
func (s *Set) MultiplierFor(tier string) float64 {
	if m, ok := s.TierMultipliers[tier]; ok {
		return m
	}
	return 1
}
