package bot

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/pinghoyk/healthbot/internal/tracker"
	"github.com/pinghoyk/healthbot/pkg/locales"
	"github.com/pinghoyk/healthbot/pkg/models"
)

// wizardStep — один шаг мастера профиля: валидатор, пишущий значение
// в черновик, и следующее состояние. При неудачной валидации состояние
// не меняется и пользователь получает повторный запрос.
type wizardStep struct {
	apply func(d *tracker.ProfileParams, text string) bool
	next  string
}

var wizardTable = map[string]wizardStep{
	models.StateProfileWeight: {
		apply: func(d *tracker.ProfileParams, text string) bool {
			v, err := strconv.ParseFloat(text, 64)
			if err != nil || v <= 0 {
				return false
			}
			d.Weight = v
			return true
		},
		next: models.StateProfileHeight,
	},
	models.StateProfileHeight: {
		apply: func(d *tracker.ProfileParams, text string) bool {
			v, err := strconv.ParseFloat(text, 64)
			if err != nil || v <= 0 {
				return false
			}
			d.Height = v
			return true
		},
		next: models.StateProfileAge,
	},
	models.StateProfileAge: {
		apply: func(d *tracker.ProfileParams, text string) bool {
			v, err := strconv.Atoi(text)
			if err != nil || v <= 0 {
				return false
			}
			d.Age = v
			return true
		},
		next: models.StateProfileGender,
	},
	models.StateProfileGender: {
		apply: func(d *tracker.ProfileParams, text string) bool {
			g := models.Gender(strings.ToUpper(text))
			if g != models.GenderMale && g != models.GenderFemale {
				return false
			}
			d.Gender = g
			return true
		},
		next: models.StateProfileActivity,
	},
	models.StateProfileActivity: {
		apply: func(d *tracker.ProfileParams, text string) bool {
			v, err := strconv.Atoi(text)
			if err != nil || v < 0 {
				return false
			}
			d.ActivityMinutes = v
			return true
		},
		next: models.StateProfileCity,
	},
	models.StateProfileCity: {
		apply: func(d *tracker.ProfileParams, text string) bool {
			if text == "" {
				return false
			}
			d.City = text
			return true
		},
		next: models.StateIdle,
	},
}

// startWizard начинает настройку профиля с чистого черновика.
// Незавершённый поток еды при этом вытесняется.
func (b *Bot) startWizard(chatID, userID int64, s *session) {
	l := locales.Get()

	s.draft = tracker.ProfileParams{}
	s.state = models.StateProfileWeight
	b.store.ClearPendingFood(userID)

	b.reply(chatID, l.Profile.Intro)
}

// advanceWizard применяет ввод к черновику. Возвращает следующее состояние
// и признак успеха; при неудаче состояние остаётся прежним.
func advanceWizard(state string, d *tracker.ProfileParams, text string) (string, bool) {
	step, ok := wizardTable[state]
	if !ok {
		return models.StateIdle, false
	}
	if !step.apply(d, strings.TrimSpace(text)) {
		return state, false
	}
	return step.next, true
}

// handleWizardInput ведёт пользователя по шагам мастера.
func (b *Bot) handleWizardInput(chatID, userID int64, s *session, text string) {
	l := locales.Get()

	wasCity := s.state == models.StateProfileCity

	next, ok := advanceWizard(s.state, &s.draft, text)
	if !ok {
		// Повторный запрос, состояние и прежние ответы сохраняются
		if s.state == models.StateProfileGender {
			b.reply(chatID, l.Profile.InvalidGender)
		} else {
			b.reply(chatID, l.Common.InvalidNumber)
		}
		s.state = next
		return
	}

	if wasCity {
		// Город — последний шаг: погода, расчёт норм, сброс журнала
		b.commitProfile(chatID, userID, s)
		s.state = models.StateIdle
		return
	}

	s.state = next
	b.promptStep(chatID, s.state)
}

// promptStep отправляет подсказку шага, в который только что перешли.
func (b *Bot) promptStep(chatID int64, state string) {
	l := locales.Get()

	switch state {
	case models.StateProfileHeight:
		b.reply(chatID, l.Profile.AskHeight)
	case models.StateProfileAge:
		b.reply(chatID, l.Profile.AskAge)
	case models.StateProfileGender:
		msg := tgbotapi.NewMessage(chatID, l.Profile.AskGender)
		kb := tgbotapi.NewReplyKeyboard(
			tgbotapi.NewKeyboardButtonRow(
				tgbotapi.NewKeyboardButton(string(models.GenderMale)),
				tgbotapi.NewKeyboardButton(string(models.GenderFemale)),
			),
		)
		kb.OneTimeKeyboard = true
		msg.ReplyMarkup = kb
		b.send(msg)
	case models.StateProfileActivity:
		msg := tgbotapi.NewMessage(chatID, l.Profile.AskActivity)
		msg.ReplyMarkup = tgbotapi.NewRemoveKeyboard(true)
		b.send(msg)
	case models.StateProfileCity:
		b.reply(chatID, l.Profile.AskCity)
	}
}

// commitProfile завершает мастер: запрашивает погоду, фиксирует профиль
// и отвечает сводкой. Недоступная погода лишь убирает температурный бонус.
func (b *Bot) commitProfile(chatID, userID int64, s *session) {
	l := locales.Get()

	var temp *float64
	if t, err := b.weather.CurrentTemperature(s.draft.City); err != nil {
		log.Printf("Погода для %q недоступна: %v", s.draft.City, err)
	} else {
		temp = &t
	}
	s.draft.Temperature = temp

	profile := b.store.ApplyProfile(userID, s.draft)

	tempText := l.Profile.TempUnknown
	if temp != nil {
		tempText = fmt.Sprintf("%g°C", *temp)
	}

	b.reply(chatID, fmt.Sprintf(l.Profile.Summary,
		profile.Weight, profile.Height, profile.Age, profile.Gender,
		profile.ActivityMinutes, profile.City, tempText,
		profile.WaterGoal, profile.CalorieGoal))
}
