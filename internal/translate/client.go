// Package translate переводит названия продуктов и активностей на английский
// для внешних справочников. Перевод не обязан удаваться: при любой ошибке
// возвращается исходный текст.
package translate

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const apiURL = "https://translate.googleapis.com/translate_a/single"

// Client — клиент публичного эндпоинта Google Translate.
type Client struct {
	httpClient *http.Client
}

// NewClient создаёт клиент перевода.
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}
}

// ToEnglish переводит текст на английский. Никогда не возвращает ошибку:
// если перевод недоступен, текст отдаётся как есть.
func (c *Client) ToEnglish(text string) string {
	translated, err := c.translate(text)
	if err != nil {
		log.Printf("Ошибка перевода %q: %v", text, err)
		return text
	}
	return translated
}

func (c *Client) translate(text string) (string, error) {
	q := url.Values{}
	q.Set("client", "gtx")
	q.Set("sl", "auto")
	q.Set("tl", "en")
	q.Set("dt", "t")
	q.Set("q", text)

	resp, err := c.httpClient.Get(apiURL + "?" + q.Encode())
	if err != nil {
		return "", fmt.Errorf("ошибка HTTP: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("статус %d: %s", resp.StatusCode, string(body))
	}

	// Ответ — вложенные массивы: [[["перевод","оригинал",...],...],...]
	var raw []json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return "", fmt.Errorf("неверный JSON: %w", err)
	}
	if len(raw) == 0 {
		return "", fmt.Errorf("пустой ответ")
	}

	var sentences [][]json.RawMessage
	if err := json.Unmarshal(raw[0], &sentences); err != nil {
		return "", fmt.Errorf("неверный JSON сегментов: %w", err)
	}

	var sb strings.Builder
	for _, s := range sentences {
		if len(s) == 0 {
			continue
		}
		var part string
		if err := json.Unmarshal(s[0], &part); err != nil {
			continue
		}
		sb.WriteString(part)
	}

	result := sb.String()
	if result == "" {
		return "", fmt.Errorf("пустой перевод")
	}
	return result, nil
}
