package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/pinghoyk/healthbot/internal/bot"
	"github.com/pinghoyk/healthbot/internal/config"
	"github.com/pinghoyk/healthbot/internal/database"
	"github.com/pinghoyk/healthbot/internal/nutrition"
	"github.com/pinghoyk/healthbot/internal/tracker"
	"github.com/pinghoyk/healthbot/internal/translate"
	"github.com/pinghoyk/healthbot/internal/weather"
	"github.com/pinghoyk/healthbot/internal/workout"
)

func main() {
	// Загрузка конфигурации из переменных окружения
	log.Println("Загрузка конфигурации...")
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Не удалось загрузить конфигурацию: %v", err)
	}

	// Кэш результатов поиска продуктов
	log.Println("Открытие кэша продуктов...")
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Не удалось открыть базу данных: %v", err)
	}
	defer db.Close()

	// Внешние источники данных
	translator := translate.NewClient()
	weatherClient := weather.NewClient(cfg.WeatherAPIKey)
	nutritionClient := nutrition.NewClient(translator, db)
	workoutClient := workout.NewClient(cfg.NinjasAPIKey, translator)

	// Журнал пользователей живёт в памяти и теряется при перезапуске
	store := tracker.NewStore(nutritionClient, workoutClient)

	b, err := bot.New(cfg.TelegramToken, store, weatherClient)
	if err != nil {
		log.Fatalf("Не удалось создать бота: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Println("Бот запущен")
	if err := b.Start(ctx); err != nil {
		log.Fatalf("Ошибка обработки обновлений: %v", err)
	}
}
