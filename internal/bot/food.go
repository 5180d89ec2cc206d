package bot

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/pinghoyk/healthbot/internal/tracker"
	"github.com/pinghoyk/healthbot/pkg/locales"
	"github.com/pinghoyk/healthbot/pkg/models"
)

// handleLogFood — первый шаг потока еды: поиск продукта по названию.
// Неудачный поиск завершает поток сразу, без остаточного состояния.
func (b *Bot) handleLogFood(chatID, userID int64, s *session, args string) {
	l := locales.Get()

	name := strings.TrimSpace(args)
	if name == "" {
		b.reply(chatID, l.Food.Usage)
		return
	}

	// Поиск может быть долгим, предупреждаем заранее
	b.reply(chatID, fmt.Sprintf(l.Food.Searching, name))

	food, err := b.store.BeginFood(userID, name)
	switch {
	case errors.Is(err, tracker.ErrProfileIncomplete):
		b.reply(chatID, l.Common.NeedProfile)
	case err != nil:
		b.reply(chatID, fmt.Sprintf(l.Food.NotFound, name))
	default:
		s.state = models.StateFoodAmount
		b.reply(chatID, fmt.Sprintf(l.Food.Found,
			capitalize(food.Name), food.Calories, food.ServingGrams))
	}
}

// handleFoodAmount — второй шаг: количество в граммах.
// Некорректный ввод оставляет поток в ожидании.
func (b *Bot) handleFoodAmount(chatID, userID int64, s *session, text string) {
	l := locales.Get()

	amount, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		b.reply(chatID, l.Common.InvalidNumber)
		return
	}

	res, err := b.store.CompleteFood(userID, amount)
	switch {
	case errors.Is(err, tracker.ErrInvalidAmount):
		b.reply(chatID, l.Common.InvalidNumber)
	case errors.Is(err, tracker.ErrNoPendingFood):
		// Ожидание могло быть снято параллельной отменой
		s.state = models.StateIdle
		b.reply(chatID, l.Food.Usage)
	case err != nil:
		log.Printf("Ошибка записи еды: %v", err)
	default:
		s.state = models.StateIdle
		b.reply(chatID, fmt.Sprintf(l.Food.Logged,
			res.Calories, res.TotalConsumed, res.Remaining))
	}
}
