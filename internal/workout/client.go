// Package workout запрашивает скорость сжигания калорий по виду активности
// через API Ninjas.
package workout

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/pinghoyk/healthbot/internal/translate"
)

const apiURL = "https://api.api-ninjas.com/v1/caloriesburned"

// Client — клиент API Ninjas с переводом названия активности.
type Client struct {
	apiKey     string
	httpClient *http.Client
	translator *translate.Client
}

type burnEntry struct {
	CaloriesPerHour float64 `json:"calories_per_hour"`
}

// NewClient создаёт клиент с ключом API.
func NewClient(apiKey string, translator *translate.Client) *Client {
	return &Client{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 20 * time.Second},
		translator: translator,
	}
}

// CaloriesPerHour возвращает ккал/час для активности.
// Ошибка переводит вызывающего на запасную формулу, операция не падает.
func (c *Client) CaloriesPerHour(activity string) (float64, error) {
	activityEn := c.translator.ToEnglish(activity)

	q := url.Values{}
	q.Set("activity", activityEn)

	req, err := http.NewRequest(http.MethodGet, apiURL+"?"+q.Encode(), nil)
	if err != nil {
		return 0, fmt.Errorf("ошибка создания запроса: %w", err)
	}
	req.Header.Set("X-Api-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("ошибка HTTP: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("статус %d: %s", resp.StatusCode, string(body))
	}

	var entries []burnEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return 0, fmt.Errorf("неверный JSON: %w", err)
	}
	if len(entries) == 0 || entries[0].CaloriesPerHour <= 0 {
		return 0, fmt.Errorf("активность %q не найдена", activityEn)
	}

	return entries[0].CaloriesPerHour, nil
}
