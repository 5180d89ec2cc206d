package tracker

import (
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/pinghoyk/healthbot/pkg/models"
)

// Ошибки операций журнала.
var (
	ErrProfileIncomplete = errors.New("профиль не настроен")
	ErrInvalidAmount     = errors.New("некорректное количество")
	ErrInvalidInput      = errors.New("некорректный ввод")
	ErrNoPendingFood     = errors.New("нет продукта, ожидающего количества")
	ErrFoodNotFound      = errors.New("продукт не найден")
)

// NutritionSource ищет продукт по названию (на любом языке).
type NutritionSource interface {
	Lookup(name string) (models.FoodInfo, error)
}

// BurnRateSource возвращает скорость сжигания ккал/час для активности.
// Ошибка означает переход на запасную формулу, не отказ операции.
type BurnRateSource interface {
	CaloriesPerHour(activity string) (float64, error)
}

// ProfileParams — собранные мастером параметры профиля.
type ProfileParams struct {
	Weight          float64
	Height          float64
	Age             int
	Gender          models.Gender
	ActivityMinutes int
	City            string
	Temperature     *float64
}

// WaterResult — итог записи воды.
type WaterResult struct {
	Added     int
	Total     int
	Goal      int
	Remaining int // goal - total, может быть отрицательным
	GoalMet   bool
}

// FoodResult — итог записи еды.
type FoodResult struct {
	Name          string
	Calories      float64 // записанные ккал
	TotalConsumed float64
	Remaining     float64 // до цели с учётом сожжённого
}

// WorkoutResult — итог записи тренировки.
type WorkoutResult struct {
	Activity     string
	Minutes      int
	Burned       int
	ExtraWaterMl int // рекомендация выпить дополнительно
	Remaining    float64
}

// ProgressView — текущий прогресс за день.
type ProgressView struct {
	LoggedWater      int
	WaterGoal        int
	WaterRemaining   int // не меньше нуля
	LoggedCalories   float64
	BurnedCalories   float64
	Balance          float64
	CalorieGoal      int
	CalorieRemaining float64
}

// History — выгрузка историй для построения графиков.
type History struct {
	Water    []models.Snapshot
	Consumed []models.Snapshot
	Burned   []models.Snapshot
}

// Store хранит профили пользователей в памяти.
// Все операции по одному пользователю сериализованы его собственным мьютексом;
// разные пользователи обрабатываются независимо.
type Store struct {
	mu    sync.Mutex
	users map[int64]*userEntry

	nutrition NutritionSource
	burn      BurnRateSource
	now       func() time.Time
}

type userEntry struct {
	mu      sync.Mutex
	profile models.Profile
}

// NewStore создаёт хранилище с внешними источниками данных.
func NewStore(nutrition NutritionSource, burn BurnRateSource) *Store {
	return &Store{
		users:     make(map[int64]*userEntry),
		nutrition: nutrition,
		burn:      burn,
		now:       time.Now,
	}
}

// entry возвращает запись пользователя, создавая пустую при первом обращении.
func (s *Store) entry(userID int64) *userEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.users[userID]
	if !ok {
		e = &userEntry{profile: models.Profile{UserID: userID}}
		s.users[userID] = e
	}
	return e
}

// ApplyProfile записывает параметры профиля, пересчитывает нормы
// и полностью сбрасывает дневной журнал. Повторный вызов перезаписывает всё.
func (s *Store) ApplyProfile(userID int64, p ProfileParams) models.Profile {
	e := s.entry(userID)
	e.mu.Lock()
	defer e.mu.Unlock()

	e.profile = models.Profile{
		UserID:          userID,
		Weight:          p.Weight,
		Height:          p.Height,
		Age:             p.Age,
		Gender:          p.Gender,
		ActivityMinutes: p.ActivityMinutes,
		City:            p.City,
		Temperature:     p.Temperature,
		WaterGoal:       WaterGoal(p.Weight, p.ActivityMinutes, p.Temperature),
		CalorieGoal:     CalorieGoal(p.Weight, p.Height, p.Age, p.Gender, p.ActivityMinutes),
	}
	return e.profile
}

// LogWater добавляет выпитую воду и фиксирует точку истории.
func (s *Store) LogWater(userID int64, amountMl int) (WaterResult, error) {
	e := s.entry(userID)
	e.mu.Lock()
	defer e.mu.Unlock()

	if amountMl <= 0 {
		return WaterResult{}, ErrInvalidAmount
	}
	if !e.profile.Configured() {
		return WaterResult{}, ErrProfileIncomplete
	}

	l := &e.profile.Ledger
	l.LoggedWater += amountMl
	l.WaterHistory = append(l.WaterHistory, models.Snapshot{
		Time:  s.now(),
		Value: float64(l.LoggedWater),
	})

	remaining := e.profile.WaterGoal - l.LoggedWater
	return WaterResult{
		Added:     amountMl,
		Total:     l.LoggedWater,
		Goal:      e.profile.WaterGoal,
		Remaining: remaining,
		GoalMet:   remaining <= 0,
	}, nil
}

// BeginFood ищет продукт и запоминает его до ввода количества.
// Новый поиск вытесняет предыдущий незавершённый.
func (s *Store) BeginFood(userID int64, name string) (models.FoodInfo, error) {
	e := s.entry(userID)
	e.mu.Lock()
	defer e.mu.Unlock()

	if strings.TrimSpace(name) == "" {
		return models.FoodInfo{}, ErrInvalidInput
	}
	if !e.profile.Configured() {
		return models.FoodInfo{}, ErrProfileIncomplete
	}

	food, err := s.nutrition.Lookup(name)
	if err != nil {
		log.Printf("Поиск продукта %q не удался: %v", name, err)
		return models.FoodInfo{}, ErrFoodNotFound
	}
	if food.Calories <= 0 || food.ServingGrams <= 0 {
		return models.FoodInfo{}, ErrFoodNotFound
	}

	e.profile.Ledger.PendingFood = &food
	return food, nil
}

// CompleteFood записывает съеденные граммы ожидающего продукта.
// При некорректном количестве продукт остаётся в ожидании.
func (s *Store) CompleteFood(userID int64, amountGrams float64) (FoodResult, error) {
	e := s.entry(userID)
	e.mu.Lock()
	defer e.mu.Unlock()

	l := &e.profile.Ledger
	if l.PendingFood == nil {
		return FoodResult{}, ErrNoPendingFood
	}
	if amountGrams <= 0 {
		return FoodResult{}, ErrInvalidAmount
	}

	food := *l.PendingFood
	calories := food.Calories / food.ServingGrams * amountGrams

	l.LoggedCalories += calories
	l.ConsumedHistory = append(l.ConsumedHistory, models.Snapshot{
		Time:  s.now(),
		Value: l.LoggedCalories,
	})
	l.PendingFood = nil

	return FoodResult{
		Name:          food.Name,
		Calories:      calories,
		TotalConsumed: l.LoggedCalories,
		Remaining:     float64(e.profile.CalorieGoal) - l.LoggedCalories + l.BurnedCalories,
	}, nil
}

// HasPendingFood сообщает, ждёт ли пользователь ввода граммов.
func (s *Store) HasPendingFood(userID int64) bool {
	e := s.entry(userID)
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.profile.Ledger.PendingFood != nil
}

// ClearPendingFood снимает ожидание продукта (отмена потока еды).
func (s *Store) ClearPendingFood(userID int64) {
	e := s.entry(userID)
	e.mu.Lock()
	defer e.mu.Unlock()
	e.profile.Ledger.PendingFood = nil
}

// LogWorkout записывает тренировку: сожжённые калории через внешний
// справочник с запасной формулой и рекомендацию по воде.
// Рекомендация — только напоминание, счётчик воды не трогает.
func (s *Store) LogWorkout(userID int64, activity string, durationMinutes int) (WorkoutResult, error) {
	e := s.entry(userID)
	e.mu.Lock()
	defer e.mu.Unlock()

	if strings.TrimSpace(activity) == "" || durationMinutes <= 0 {
		return WorkoutResult{}, ErrInvalidInput
	}
	if !e.profile.Configured() {
		return WorkoutResult{}, ErrProfileIncomplete
	}

	rate, err := s.burn.CaloriesPerHour(activity)
	if err != nil {
		log.Printf("Справочник активности %q недоступен: %v", activity, err)
		rate = 0
	}
	burned := EstimateBurn(durationMinutes, e.profile.Weight, rate)

	l := &e.profile.Ledger
	l.BurnedCalories += float64(burned)
	l.BurnedHistory = append(l.BurnedHistory, models.Snapshot{
		Time:  s.now(),
		Value: l.BurnedCalories,
	})

	return WorkoutResult{
		Activity:     activity,
		Minutes:      durationMinutes,
		Burned:       burned,
		ExtraWaterMl: (durationMinutes / 30) * 200,
		Remaining:    float64(e.profile.CalorieGoal) - l.LoggedCalories + l.BurnedCalories,
	}, nil
}

// Progress возвращает сводку прогресса за день.
func (s *Store) Progress(userID int64) (ProgressView, error) {
	e := s.entry(userID)
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.profile.Configured() {
		return ProgressView{}, ErrProfileIncomplete
	}

	l := e.profile.Ledger
	balance := l.LoggedCalories - l.BurnedCalories

	waterRemaining := e.profile.WaterGoal - l.LoggedWater
	if waterRemaining < 0 {
		waterRemaining = 0
	}

	return ProgressView{
		LoggedWater:      l.LoggedWater,
		WaterGoal:        e.profile.WaterGoal,
		WaterRemaining:   waterRemaining,
		LoggedCalories:   l.LoggedCalories,
		BurnedCalories:   l.BurnedCalories,
		Balance:          balance,
		CalorieGoal:      e.profile.CalorieGoal,
		CalorieRemaining: float64(e.profile.CalorieGoal) - balance,
	}, nil
}

// Snapshot возвращает копию профиля (для форматирования ответов).
func (s *Store) Snapshot(userID int64) models.Profile {
	e := s.entry(userID)
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.profile
}

// HistorySnapshots выгружает копии историй для графиков.
func (s *Store) HistorySnapshots(userID int64) (History, error) {
	e := s.entry(userID)
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.profile.Configured() {
		return History{}, ErrProfileIncomplete
	}

	l := e.profile.Ledger
	return History{
		Water:    append([]models.Snapshot(nil), l.WaterHistory...),
		Consumed: append([]models.Snapshot(nil), l.ConsumedHistory...),
		Burned:   append([]models.Snapshot(nil), l.BurnedHistory...),
	}, nil
}
