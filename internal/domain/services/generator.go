package services

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/athebyme/gomarket-platform/catalog-loadgen/internal/domain/models"
	"github.com/athebyme/gomarket-platform/catalog-loadgen/internal/domain/refdata"
	"github.com/google/uuid"
)

// Словари шаблонов имен и описаний
var (
	seriesNames = []string{"Pro", "Elite", "Plus", "Max", "Ultra", "Lite", ""}

	cpuFamilies = []string{"i5", "i7", "i9", "Ryzen 5", "Ryzen 7", "Ryzen 9"}

	colors     = []string{"Black", "White", "Silver", "Space Gray", "Midnight Blue", "Rose Gold"}
	warranties = []string{"1 Year", "2 Years", "3 Years"}

	connectivityOptions = []string{"5G", "4G LTE"}
	displayTypes        = []string{"AMOLED", "Retina", "LCD"}
	storageTypes        = []string{"SSD", "NVMe SSD"}
	operatingSystems    = []string{"Windows 11", "macOS", "Chrome OS"}
	mobileOSVersions    = []string{"iOS 17", "Android 14", "Android 13"}
	bluetoothVersions   = []string{"5.0", "5.2", "5.3"}
	// в описании исторически упоминаются только две версии
	descBluetoothVersions = []string{"Bluetooth 5.0", "Bluetooth 5.2"}
	processors          = []string{"Intel Core i5", "Intel Core i7", "Intel Core i9", "AMD Ryzen 5", "AMD Ryzen 7", "AMD Ryzen 9"}
	graphicsCards       = []string{"NVIDIA RTX 3060", "NVIDIA RTX 3070", "NVIDIA RTX 4060", "AMD Radeon RX 6600", "Intel Iris Xe", "Apple M2"}

	modelAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	fillerWords = []string{
		"quality", "design", "performance", "experience", "technology",
		"comfort", "durability", "precision", "innovation", "style",
		"reliability", "value", "craftsmanship", "detail", "function",
		"engineered", "refined", "seamless", "modern", "everyday",
		"delivers", "combines", "ensures", "provides", "elevates",
	}
)

// Generator создает внутренне согласованные товары из справочных данных.
// Вся случайность проходит через переданный источник, поэтому запуск
// с фиксированным сидом полностью воспроизводим.
type Generator struct {
	ref *refdata.Set
	now func() time.Time
}

// NewGenerator создает генератор товаров поверх справочников
func NewGenerator(ref *refdata.Set, now func() time.Time) *Generator {
	if now == nil {
		now = time.Now
	}
	return &Generator{ref: ref, now: now}
}

// Generate создает один товар для глобального индекса index.
// Не возвращает ошибку: промахи по справочным таблицам заменяются
// фолбэком на accessories.
func (g *Generator) Generate(index int, rng *rand.Rand) *models.Product {
	now := g.now()

	category := g.ref.Categories[rng.Intn(len(g.ref.Categories))]
	brand := g.ref.Brands[rng.Intn(len(g.ref.Brands))]

	types := g.ref.TypesFor(category.ID)
	productType := types[rng.Intn(len(types))]

	name := g.productName(brand, productType, category, rng, now)

	numCategories := randIntBetween(rng, 1, 3)
	categories := make([]models.Category, 0, numCategories)
	categories = append(categories, category)
	categories = append(categories, g.additionalCategories(category, numCategories-1, rng)...)

	numTags := randIntBetween(rng, 2, 5)
	tags := pickDistinct(rng, g.ref.Tags, numTags)

	createdAt := now.Add(-time.Duration(rng.Int63n(int64(2 * 365 * 24 * time.Hour))))
	updatedAt := createdAt.Add(time.Duration(rng.Int63n(int64(now.Sub(createdAt)) + 1)))

	id, err := uuid.NewRandomFromReader(rng)
	if err != nil {
		// rand.Rand.Read не возвращает ошибок, ветка недостижима
		id = uuid.New()
	}

	return &models.Product{
		ID:          "prod-" + id.String(),
		Name:        name,
		SKU:         buildSKU(index, brand, category),
		Description: g.description(name, brand, productType, category, rng),
		Price:       g.price(brand, category, rng),
		Category:    categories,
		Tags:        tags,
		Images:      g.images(index, rng),
		Stock:       g.stock(brand, rng),
		Brand:       brand,
		Attributes:  g.attributes(category, rng),
		RatingAvg:   math.Round((rng.Float64()*2+3)*10) / 10,
		RatingCount: randIntBetween(rng, 0, 2000),
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
		DeletedAt:   nil,
	}
}

// productName собирает имя товара по шаблону категории
func (g *Generator) productName(brand models.Brand, productType string, category models.Category, rng *rand.Rand, now time.Time) string {
	model := randAlphaNumeric(rng, 4)
	series := seriesNames[rng.Intn(len(seriesNames))]

	switch category.ID {
	case "mobile":
		return fmt.Sprintf("%s %s %s %s (%d)", brand.Name, productType, series, model, now.Year())
	case "computers":
		cpu := cpuFamilies[rng.Intn(len(cpuFamilies))]
		return fmt.Sprintf("%s %s %s %s %s", brand.Name, productType, series, model, cpu)
	case "gaming":
		return fmt.Sprintf("%s %s %s RGB %s", brand.Name, productType, series, model)
	default:
		return fmt.Sprintf("%s %s %s %s", brand.Name, productType, series, model)
	}
}

// description собирает описание: особенности категории плюс абзац-наполнитель
func (g *Generator) description(name string, brand models.Brand, productType string, category models.Category, rng *rand.Rand) string {
	var features []string

	switch category.ID {
	case "mobile":
		features = []string{
			connectivityOptions[rng.Intn(len(connectivityOptions))],
			fmt.Sprintf("%dGB RAM", randIntBetween(rng, 4, 12)),
			fmt.Sprintf("%dGB Storage", randIntBetween(rng, 64, 512)),
			fmt.Sprintf("%dmAh Battery", randIntBetween(rng, 4000, 5000)),
			displayTypes[rng.Intn(len(displayTypes))] + " Display",
		}
	case "computers":
		features = []string{
			fmt.Sprintf("%dGB RAM", randIntBetween(rng, 8, 64)),
			fmt.Sprintf("%dGB %s", randIntBetween(rng, 256, 2048), storageTypes[rng.Intn(len(storageTypes))]),
			operatingSystems[rng.Intn(len(operatingSystems))],
			fmt.Sprintf("%d\" Display", randIntBetween(rng, 13, 17)),
		}
	case "audio":
		features = []string{
			"Active Noise Cancellation",
			fmt.Sprintf("%d Hours Battery Life", randIntBetween(rng, 20, 40)),
			descBluetoothVersions[rng.Intn(len(descBluetoothVersions))],
			"Touch Controls",
		}
	}

	return fmt.Sprintf(
		"Experience the next level of %s with the %s. This %s-tier %s combines cutting-edge technology with %s's signature quality. Key features include: %s. %s",
		strings.ToLower(category.Name),
		name,
		brand.Tier,
		strings.ToLower(productType),
		brand.Name,
		strings.Join(features, ", "),
		fillerParagraph(rng),
	)
}

// attributes собирает общие и категорийные атрибуты товара
func (g *Generator) attributes(category models.Category, rng *rand.Rand) map[string]interface{} {
	attrs := map[string]interface{}{
		"color":      colors[rng.Intn(len(colors))],
		"model_year": randIntBetween(rng, 2022, 2024),
		"warranty":   warranties[rng.Intn(len(warranties))],
	}

	switch category.ID {
	case "mobile":
		attrs["screen_size"] = fmt.Sprintf("%.1f\"", float64(randIntBetween(rng, 60, 70))/10)
		attrs["ram"] = fmt.Sprintf("%dGB", randIntBetween(rng, 4, 12))
		attrs["storage"] = fmt.Sprintf("%dGB", randIntBetween(rng, 64, 512))
		attrs["camera"] = fmt.Sprintf("%dMP", randIntBetween(rng, 12, 108))
		attrs["battery"] = fmt.Sprintf("%dmAh", randIntBetween(rng, 4000, 5000))
		attrs["os_version"] = mobileOSVersions[rng.Intn(len(mobileOSVersions))]
	case "computers":
		attrs["processor"] = processors[rng.Intn(len(processors))]
		attrs["ram"] = fmt.Sprintf("%dGB", randIntBetween(rng, 8, 64))
		attrs["storage"] = fmt.Sprintf("%dGB", randIntBetween(rng, 256, 2048))
		attrs["screen_size"] = fmt.Sprintf("%d\"", randIntBetween(rng, 13, 32))
		attrs["graphics"] = graphicsCards[rng.Intn(len(graphicsCards))]
	case "audio":
		attrs["driver_size"] = fmt.Sprintf("%dmm", randIntBetween(rng, 30, 50))
		attrs["frequency_response"] = "20Hz-20kHz"
		attrs["battery_life"] = fmt.Sprintf("%d hours", randIntBetween(rng, 20, 40))
		attrs["bluetooth_version"] = bluetoothVersions[rng.Intn(len(bluetoothVersions))]
	}

	return attrs
}

// additionalCategories выбирает n дополнительных категорий без повторов,
// исключая основную. При n == 0 возвращает пустой срез.
func (g *Generator) additionalCategories(primary models.Category, n int, rng *rand.Rand) []models.Category {
	if n <= 0 {
		return nil
	}

	rest := make([]models.Category, 0, len(g.ref.Categories)-1)
	for _, c := range g.ref.Categories {
		if c.ID != primary.ID {
			rest = append(rest, c)
		}
	}

	picked := make([]models.Category, 0, n)
	for _, i := range rng.Perm(len(rest))[:n] {
		picked = append(picked, rest[i])
	}
	return picked
}

// images генерирует 3-6 URL изображений; идентификатор пути
// детерминирован от индекса, размеры случайны
func (g *Generator) images(index int, rng *rand.Rand) []string {
	numImages := randIntBetween(rng, 3, 6)
	images := make([]string, numImages)
	for i := range images {
		width := randIntBetween(rng, 800, 1200)
		height := randIntBetween(rng, 800, 1200)
		images[i] = fmt.Sprintf("https://picsum.photos/id/%d/%d/%d", index*10+i, width, height)
	}
	return images
}

// price вычисляет цену: диапазон категории, умноженный на множитель
// уровня бренда, с округлением вниз до целого
func (g *Generator) price(brand models.Brand, category models.Category, rng *rand.Rand) int {
	band := g.ref.PriceBandFor(category.ID)
	multiplier := g.ref.MultiplierFor(brand.Tier)
	return int(math.Floor(float64(randIntBetween(rng, band.Min, band.Max)) * multiplier))
}

// stock вычисляет остаток: premium-бренды держат малые запасы
func (g *Generator) stock(brand models.Brand, rng *rand.Rand) int {
	if brand.Tier == models.TierPremium {
		return randIntBetween(rng, 5, 50)
	}
	return randIntBetween(rng, 20, 200)
}

// buildSKU кодирует бренд, категорию и глобальный индекс в артикул
func buildSKU(index int, brand models.Brand, category models.Category) string {
	return fmt.Sprintf("%s%s%06d", prefix(brand.Name), prefix(category.ID), index)
}

// prefix возвращает первые три символа в верхнем регистре
func prefix(s string) string {
	if len(s) > 3 {
		s = s[:3]
	}
	return strings.ToUpper(s)
}

// pickDistinct выбирает n элементов среза без повторов
func pickDistinct(rng *rand.Rand, pool []string, n int) []string {
	if n > len(pool) {
		n = len(pool)
	}
	picked := make([]string, 0, n)
	for _, i := range rng.Perm(len(pool))[:n] {
		picked = append(picked, pool[i])
	}
	return picked
}

// randIntBetween возвращает равномерное целое из [min, max] включительно
func randIntBetween(rng *rand.Rand, min, max int) int {
	return min + rng.Intn(max-min+1)
}

// randAlphaNumeric возвращает случайный код из заглавных букв и цифр
func randAlphaNumeric(rng *rand.Rand, n int) string {
	var b strings.Builder
	b.Grow(n)
	for i := 0; i < n; i++ {
		b.WriteByte(modelAlphabet[rng.Intn(len(modelAlphabet))])
	}
	return b.String()
}

// fillerParagraph собирает короткий абзац-наполнитель для описания
func fillerParagraph(rng *rand.Rand) string {
	sentences := randIntBetween(rng, 2, 4)
	var b strings.Builder
	for s := 0; s < sentences; s++ {
		words := randIntBetween(rng, 6, 12)
		for w := 0; w < words; w++ {
			word := fillerWords[rng.Intn(len(fillerWords))]
			if w == 0 {
				word = strings.ToUpper(word[:1]) + word[1:]
			} else {
				b.WriteByte(' ')
			}
			b.WriteString(word)
		}
		b.WriteString(". ")
	}
	return strings.TrimSpace(b.String())
}
