package database

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/pinghoyk/healthbot/pkg/models"
)

// GetCachedFood ищет продукт в кэше по исходному запросу пользователя.
func (db *DB) GetCachedFood(query string) (*models.FoodInfo, error) {
	row := db.conn.QueryRow(
		`SELECT name, calories, serving_grams FROM food_cache WHERE query = ?`,
		normalizeQuery(query),
	)

	var food models.FoodInfo
	err := row.Scan(&food.Name, &food.Calories, &food.ServingGrams)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("не удалось прочитать кэш: %w", err)
	}
	return &food, nil
}

// SaveCachedFood сохраняет результат поиска, перезаписывая старую запись.
func (db *DB) SaveCachedFood(query string, food models.FoodInfo) error {
	_, err := db.conn.Exec(
		`INSERT INTO food_cache (query, name, calories, serving_grams)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(query) DO UPDATE SET
		   name = excluded.name,
		   calories = excluded.calories,
		   serving_grams = excluded.serving_grams,
		   cached_at = CURRENT_TIMESTAMP`,
		normalizeQuery(query), food.Name, food.Calories, food.ServingGrams,
	)
	if err != nil {
		return fmt.Errorf("не удалось сохранить в кэш: %w", err)
	}
	return nil
}

func normalizeQuery(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}
