// Package weather предоставляет клиент OpenWeatherMap для текущей температуры.
package weather

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const apiURL = "http://api.openweathermap.org/data/2.5/weather"

// Client — клиент OpenWeatherMap.
type Client struct {
	apiKey     string
	httpClient *http.Client
}

type weatherResponse struct {
	Main struct {
		Temp float64 `json:"temp"`
	} `json:"main"`
}

// NewClient создаёт клиент с ключом API.
func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}
}

// CurrentTemperature возвращает температуру в °C для города.
// Ошибка означает «температура неизвестна», не отказ вызывающей операции.
func (c *Client) CurrentTemperature(city string) (float64, error) {
	q := url.Values{}
	q.Set("q", city)
	q.Set("appid", c.apiKey)
	q.Set("units", "metric")

	resp, err := c.httpClient.Get(apiURL + "?" + q.Encode())
	if err != nil {
		return 0, fmt.Errorf("ошибка HTTP: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("статус %d: %s", resp.StatusCode, string(body))
	}

	var wr weatherResponse
	if err := json.Unmarshal(body, &wr); err != nil {
		return 0, fmt.Errorf("неверный JSON: %w", err)
	}

	return wr.Main.Temp, nil
}
