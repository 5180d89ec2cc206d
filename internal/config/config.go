package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	TelegramToken string
	WeatherAPIKey string
	NinjasAPIKey  string
	DatabasePath  string
}

// Load читает конфигурацию из переменных окружения.
// Файл .env подхватывается, если есть, но не обязателен.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		TelegramToken: os.Getenv("TELEGRAM_TOKEN"),
		WeatherAPIKey: os.Getenv("WEATHER_API_KEY"),
		NinjasAPIKey:  os.Getenv("NINJAS_API_KEY"),
		DatabasePath:  valueOrDefault("DATABASE_PATH", "healthbot.db"),
	}

	if cfg.TelegramToken == "" {
		return nil, fmt.Errorf("не задан TELEGRAM_TOKEN")
	}

	return cfg, nil
}

func valueOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
