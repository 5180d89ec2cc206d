// Package nutrition ищет калорийность продуктов через OpenFoodFacts.
package nutrition

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/pinghoyk/healthbot/internal/database"
	"github.com/pinghoyk/healthbot/internal/translate"
	"github.com/pinghoyk/healthbot/pkg/models"
)

const apiURL = "https://world.openfoodfacts.org/cgi/search.pl"

// ErrNotFound — продукт не найден или без данных о калориях.
var ErrNotFound = errors.New("продукт не найден")

// Client — клиент OpenFoodFacts с переводом запроса и sqlite-кэшем.
type Client struct {
	httpClient *http.Client
	translator *translate.Client
	cache      *database.DB
}

type searchResponse struct {
	Products []struct {
		ProductName string `json:"product_name"`
		Nutriments  struct {
			EnergyKcal100g float64 `json:"energy-kcal_100g"`
		} `json:"nutriments"`
	} `json:"products"`
}

// NewClient создаёт клиент. Кэш может быть nil — тогда каждый запрос идёт в сеть.
func NewClient(translator *translate.Client, cache *database.DB) *Client {
	return &Client{
		// Поиск OpenFoodFacts бывает очень медленным
		httpClient: &http.Client{Timeout: 60 * time.Second},
		translator: translator,
		cache:      cache,
	}
}

// Lookup ищет продукт по названию на любом языке:
// сначала кэш, затем перевод и запрос к OpenFoodFacts.
func (c *Client) Lookup(name string) (models.FoodInfo, error) {
	if c.cache != nil {
		cached, err := c.cache.GetCachedFood(name)
		if err != nil {
			log.Printf("Ошибка чтения кэша продуктов: %v", err)
		} else if cached != nil {
			return *cached, nil
		}
	}

	nameEn := c.translator.ToEnglish(name)

	food, err := c.search(nameEn)
	if err != nil {
		return models.FoodInfo{}, err
	}
	if food.Name == "" {
		food.Name = name
	}

	if c.cache != nil {
		if err := c.cache.SaveCachedFood(name, food); err != nil {
			log.Printf("Ошибка записи кэша продуктов: %v", err)
		}
	}
	return food, nil
}

func (c *Client) search(nameEn string) (models.FoodInfo, error) {
	q := url.Values{}
	q.Set("search_terms", nameEn)
	q.Set("json", "true")

	resp, err := c.httpClient.Get(apiURL + "?" + q.Encode())
	if err != nil {
		return models.FoodInfo{}, fmt.Errorf("ошибка HTTP: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return models.FoodInfo{}, fmt.Errorf("статус %d: %s", resp.StatusCode, string(body))
	}

	var sr searchResponse
	if err := json.Unmarshal(body, &sr); err != nil {
		return models.FoodInfo{}, fmt.Errorf("неверный JSON: %w", err)
	}

	// Берём первый продукт с известной калорийностью
	for _, p := range sr.Products {
		if p.Nutriments.EnergyKcal100g > 0 {
			return models.FoodInfo{
				Name:         p.ProductName,
				Calories:     p.Nutriments.EnergyKcal100g,
				ServingGrams: 100,
			}, nil
		}
	}

	return models.FoodInfo{}, ErrNotFound
}
