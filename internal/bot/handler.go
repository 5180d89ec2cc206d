// Package bot реализует Telegram-интерфейс трекера воды и калорий.
package bot

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"
	"unicode"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/pinghoyk/healthbot/internal/charts"
	"github.com/pinghoyk/healthbot/internal/tracker"
	"github.com/pinghoyk/healthbot/internal/weather"
	"github.com/pinghoyk/healthbot/pkg/locales"
	"github.com/pinghoyk/healthbot/pkg/models"
)

// Bot представляет Telegram бота
type Bot struct {
	api     *tgbotapi.BotAPI
	store   *tracker.Store
	weather *weather.Client

	sessionsMu sync.Mutex
	sessions   map[int64]*session
}

// session — диалоговое состояние одного пользователя.
// Мьютекс сессии сериализует обработку его сообщений: пока одна команда
// не завершена (включая внешние вызовы), следующая ждёт.
type session struct {
	mu    sync.Mutex
	state string
	draft tracker.ProfileParams
}

// New создает нового бота
func New(token string, store *tracker.Store, weatherClient *weather.Client) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания бота: %w", err)
	}

	log.Printf("Авторизован как @%s", api.Self.UserName)

	return &Bot{
		api:      api,
		store:    store,
		weather:  weatherClient,
		sessions: make(map[int64]*session),
	}, nil
}

// Start запускает обработку обновлений
func (b *Bot) Start(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			return nil
		case update := <-updates:
			go b.handleUpdate(update)
		}
	}
}

// handleUpdate обрабатывает входящее обновление
func (b *Bot) handleUpdate(update tgbotapi.Update) {
	if update.Message != nil && update.Message.From != nil {
		b.handleMessage(update.Message)
	}
}

// session возвращает сессию пользователя, создавая её при первом обращении.
func (b *Bot) session(userID int64) *session {
	b.sessionsMu.Lock()
	defer b.sessionsMu.Unlock()

	s, ok := b.sessions[userID]
	if !ok {
		s = &session{state: models.StateIdle}
		b.sessions[userID] = s
	}
	return s
}

// handleMessage обрабатывает текстовые сообщения
func (b *Bot) handleMessage(msg *tgbotapi.Message) {
	userID := msg.From.ID
	chatID := msg.Chat.ID

	log.Printf("Пользователь %d (@%s) | Сообщение: %s", userID, msg.From.UserName, msg.Text)

	s := b.session(userID)
	s.mu.Lock()
	defer s.mu.Unlock()

	l := locales.Get()

	if msg.IsCommand() {
		switch msg.Command() {
		case "start":
			b.store.Snapshot(userID) // регистрирует пользователя
			b.reply(chatID, l.Start.Text)
		case "help":
			b.reply(chatID, l.Help.Text)
		case "set_profile":
			b.startWizard(chatID, userID, s)
		case "cancel":
			b.handleCancel(chatID, userID, s)
		case "log_water":
			b.handleLogWater(chatID, userID, msg.CommandArguments())
		case "log_food":
			b.handleLogFood(chatID, userID, s, msg.CommandArguments())
		case "log_workout":
			b.handleLogWorkout(chatID, userID, msg.CommandArguments())
		case "check_progress":
			b.handleCheckProgress(chatID, userID)
		case "show_graphs":
			b.handleShowGraphs(chatID, userID)
		default:
			b.reply(chatID, l.Common.Unknown)
		}
		return
	}

	// Обработка ввода в зависимости от состояния диалога
	switch s.state {
	case models.StateProfileWeight,
		models.StateProfileHeight,
		models.StateProfileAge,
		models.StateProfileGender,
		models.StateProfileActivity,
		models.StateProfileCity:
		b.handleWizardInput(chatID, userID, s, msg.Text)
	case models.StateFoodAmount:
		b.handleFoodAmount(chatID, userID, s, msg.Text)
	default:
		b.reply(chatID, l.Common.Unknown)
	}
}

// handleCancel прерывает активный мастер или поток еды.
func (b *Bot) handleCancel(chatID, userID int64, s *session) {
	l := locales.Get()

	if s.state == models.StateIdle && !b.store.HasPendingFood(userID) {
		b.reply(chatID, l.Common.NothingToCancel)
		return
	}

	s.state = models.StateIdle
	s.draft = tracker.ProfileParams{}
	b.store.ClearPendingFood(userID)

	msg := tgbotapi.NewMessage(chatID, l.Profile.Cancelled)
	msg.ReplyMarkup = tgbotapi.NewRemoveKeyboard(true)
	b.send(msg)
}

// handleLogWater записывает выпитую воду.
func (b *Bot) handleLogWater(chatID, userID int64, args string) {
	l := locales.Get()

	amount, err := strconv.Atoi(strings.TrimSpace(args))
	if err != nil {
		b.reply(chatID, l.Water.Usage)
		return
	}

	res, err := b.store.LogWater(userID, amount)
	switch {
	case errors.Is(err, tracker.ErrProfileIncomplete):
		b.reply(chatID, l.Common.NeedProfile)
	case errors.Is(err, tracker.ErrInvalidAmount):
		b.reply(chatID, l.Water.Usage)
	case err != nil:
		log.Printf("Ошибка записи воды: %v", err)
	case res.GoalMet:
		b.reply(chatID, fmt.Sprintf(l.Water.GoalMet, res.Added))
	default:
		b.reply(chatID, fmt.Sprintf(l.Water.Progress, res.Added, res.Total, res.Goal, res.Remaining))
	}
}

// handleLogWorkout записывает тренировку: <тип...> <минуты>.
func (b *Bot) handleLogWorkout(chatID, userID int64, args string) {
	l := locales.Get()

	fields := strings.Fields(args)
	if len(fields) < 2 {
		b.reply(chatID, l.Workout.Usage)
		return
	}

	minutes, err := strconv.Atoi(fields[len(fields)-1])
	if err != nil {
		b.reply(chatID, l.Workout.Usage)
		return
	}
	activity := strings.Join(fields[:len(fields)-1], " ")

	res, err := b.store.LogWorkout(userID, activity, minutes)
	switch {
	case errors.Is(err, tracker.ErrProfileIncomplete):
		b.reply(chatID, l.Common.NeedProfile)
	case errors.Is(err, tracker.ErrInvalidInput):
		b.reply(chatID, l.Workout.Usage)
	case err != nil:
		log.Printf("Ошибка записи тренировки: %v", err)
	default:
		b.reply(chatID, fmt.Sprintf(l.Workout.Logged,
			capitalize(res.Activity), res.Minutes, res.Burned, res.ExtraWaterMl, res.Remaining))
	}
}

// handleCheckProgress показывает текстовую сводку за день.
func (b *Bot) handleCheckProgress(chatID, userID int64) {
	l := locales.Get()

	view, err := b.store.Progress(userID)
	if errors.Is(err, tracker.ErrProfileIncomplete) {
		b.reply(chatID, l.Common.NeedProfile)
		return
	}
	if err != nil {
		log.Printf("Ошибка получения прогресса: %v", err)
		return
	}

	b.reply(chatID, fmt.Sprintf(l.Progress.Text,
		view.LoggedWater, view.WaterGoal, view.WaterRemaining,
		view.LoggedCalories, view.BurnedCalories, view.Balance, view.CalorieRemaining))
}

// handleShowGraphs строит и отправляет картинку с графиками.
func (b *Bot) handleShowGraphs(chatID, userID int64) {
	l := locales.Get()

	h, err := b.store.HistorySnapshots(userID)
	if errors.Is(err, tracker.ErrProfileIncomplete) {
		b.reply(chatID, l.Common.NeedProfile)
		return
	}
	if err != nil {
		log.Printf("Ошибка выгрузки истории: %v", err)
		return
	}

	if len(h.Water) == 0 && len(h.Consumed) == 0 && len(h.Burned) == 0 {
		b.reply(chatID, l.Graphs.Empty)
		return
	}

	profile := b.store.Snapshot(userID)

	img, err := charts.Render(h.Water, h.Consumed, h.Burned, profile.WaterGoal, profile.CalorieGoal)
	if err != nil {
		log.Printf("Ошибка построения графиков: %v", err)
		b.reply(chatID, l.Graphs.Failed)
		return
	}

	caption := l.Graphs.CaptionHeader
	if len(h.Water) > 0 {
		caption += fmt.Sprintf(l.Graphs.CaptionWater,
			float64(profile.Ledger.LoggedWater)/float64(profile.WaterGoal)*100)
	}
	if len(h.Consumed) > 0 || len(h.Burned) > 0 {
		net := profile.Ledger.LoggedCalories - profile.Ledger.BurnedCalories
		caption += fmt.Sprintf(l.Graphs.CaptionCalories, net/float64(profile.CalorieGoal)*100)
	}

	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{Name: "progress.png", Bytes: img})
	photo.Caption = caption
	b.send(photo)
}

// reply отправляет простое текстовое сообщение.
func (b *Bot) reply(chatID int64, text string) {
	b.send(tgbotapi.NewMessage(chatID, text))
}

func (b *Bot) send(c tgbotapi.Chattable) {
	if _, err := b.api.Send(c); err != nil {
		log.Printf("Ошибка отправки сообщения: %v", err)
	}
}

// capitalize поднимает первую букву, как в ответах исходного бота.
func capitalize(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return s
	}
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
