// Package tracker содержит расчёт норм и журнал воды/калорий по пользователям.
package tracker

import "github.com/pinghoyk/healthbot/pkg/models"

// WaterGoal считает дневную норму воды в мл:
// 30 мл на кг веса, +500 за каждые полные 30 минут активности,
// бонус за жару: +750 при t>25°C, +500 при t>20°C.
// Нет температуры — нет бонуса.
func WaterGoal(weightKg float64, activityMinutes int, temperature *float64) int {
	base := int(weightKg * 30)
	activityBonus := (activityMinutes / 30) * 500

	tempBonus := 0
	if temperature != nil {
		switch {
		case *temperature > 25:
			tempBonus = 750
		case *temperature > 20:
			tempBonus = 500
		}
	}

	return base + activityBonus + tempBonus
}

// CalorieGoal считает дневную норму калорий по Миффлину-Сан Жеору
// плюс 250 ккал за каждые 30 минут активности (линейно, без округления вниз).
func CalorieGoal(weightKg, heightCm float64, age int, gender models.Gender, activityMinutes int) int {
	bmr := 10*weightKg + 6.25*heightCm - 5*float64(age)
	if gender == models.GenderMale {
		bmr += 5
	} else {
		bmr -= 161
	}

	activityBonus := float64(activityMinutes) / 30 * 250
	return int(bmr + activityBonus)
}

// EstimateBurn считает сожжённые калории за тренировку.
// Если известна скорость сжигания kcalPerHour (из внешнего API), используется она
// с поправкой на вес относительно 70 кг. Иначе — запасная линейная формула
// 5 ккал/мин с той же поправкой. Результат пригоден всегда.
func EstimateBurn(durationMinutes int, weightKg float64, kcalPerHour float64) int {
	if kcalPerHour > 0 {
		perMinute := kcalPerHour / 60
		return int(perMinute * (weightKg / 70) * float64(durationMinutes))
	}
	return int(float64(durationMinutes) * 5 * (weightKg / 70))
}
