package models

import "time"

// Gender — пол пользователя, как его вводят с клавиатуры.
type Gender string

const (
	GenderMale   Gender = "М"
	GenderFemale Gender = "Ж"
)

// Profile представляет профиль пользователя с дневным журналом.
// Живёт только в памяти процесса — перезапуск обнуляет всё.
type Profile struct {
	UserID          int64
	Weight          float64 // кг
	Height          float64 // см
	Age             int
	Gender          Gender
	ActivityMinutes int // минут активности в день
	City            string
	Temperature     *float64 // °C на момент настройки, nil если погода недоступна

	WaterGoal   int // мл, 0 пока профиль не настроен
	CalorieGoal int // ккал, 0 пока профиль не настроен

	Ledger DailyLedger
}

// Configured сообщает, завершена ли настройка профиля.
func (p *Profile) Configured() bool {
	return p.WaterGoal > 0 && p.CalorieGoal > 0
}

// DailyLedger — накопители и истории за день.
// Сбрасывается при каждой повторной настройке профиля.
type DailyLedger struct {
	LoggedWater    int     // мл
	LoggedCalories float64 // ккал съедено
	BurnedCalories float64 // ккал сожжено

	WaterHistory    []Snapshot // накопленная выпитая вода
	ConsumedHistory []Snapshot // накопленные съеденные ккал
	BurnedHistory   []Snapshot // накопленные сожжённые ккал

	PendingFood *FoodInfo // продукт, ожидающий ввода граммов
}

// Snapshot — точка истории: момент времени и накопленное значение.
type Snapshot struct {
	Time  time.Time
	Value float64
}

// FoodInfo — результат поиска продукта: ккал на эталонную порцию.
type FoodInfo struct {
	Name         string
	Calories     float64 // ккал на ServingGrams грамм
	ServingGrams float64 // эталонная порция, у OpenFoodFacts всегда 100 г
}

// Константы состояний диалога для конечного автомата (FSM)
const (
	StateIdle            = "idle"
	StateProfileWeight   = "profile_weight"
	StateProfileHeight   = "profile_height"
	StateProfileAge      = "profile_age"
	StateProfileGender   = "profile_gender"
	StateProfileActivity = "profile_activity"
	StateProfileCity     = "profile_city"
	StateFoodAmount      = "food_amount"
)
