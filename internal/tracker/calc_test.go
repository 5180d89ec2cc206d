package tracker

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pinghoyk/healthbot/pkg/models"
)

func floatPtr(v float64) *float64 { return &v }

func TestWaterGoal(t *testing.T) {
	tests := []struct {
		name        string
		weight      float64
		activity    int
		temperature *float64
		want        int
	}{
		{"без активности и погоды", 70, 0, nil, 2100},
		{"неполные полчаса не считаются", 70, 29, nil, 2100},
		{"бонус за активность", 70, 60, nil, 3100},
		{"45 минут — один блок", 70, 45, nil, 2600},
		{"жара выше 25", 70, 45, floatPtr(26), 3350},
		{"тепло выше 20", 70, 0, floatPtr(21), 2600},
		{"ровно 20 — без бонуса", 70, 0, floatPtr(20), 2100},
		{"холод — без бонуса", 70, 0, floatPtr(5), 2100},
		{"дробный вес усекается", 70.5, 0, nil, 2115},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WaterGoal(tt.weight, tt.activity, tt.temperature))
		})
	}
}

func TestCalorieGoal(t *testing.T) {
	tests := []struct {
		name     string
		weight   float64
		height   float64
		age      int
		gender   models.Gender
		activity int
		want     int
	}{
		// 700 + 1093.75 - 150 + 5 + 500 = 2148.75 -> 2148
		{"мужчина с активностью", 70, 175, 30, models.GenderMale, 60, 2148},
		// 700 + 1093.75 - 150 - 161 = 1482.75 -> 1482
		{"женщина без активности", 70, 175, 30, models.GenderFemale, 0, 1482},
		// активность линейная, не по полным блокам: 15/30*250 = 125
		{"неполные полчаса дают вклад", 70, 175, 30, models.GenderMale, 15, 1773},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CalorieGoal(tt.weight, tt.height, tt.age, tt.gender, tt.activity))
		})
	}
}

func TestEstimateBurn(t *testing.T) {
	// Известная скорость: 600/60 * (70/70) * 30 = 300
	assert.Equal(t, 300, EstimateBurn(30, 70, 600))

	// Поправка на вес: 600/60 * (35/70) * 30 = 150
	assert.Equal(t, 150, EstimateBurn(30, 35, 600))

	// Запасная формула: 30 * 5 * (70/70) = 150
	assert.Equal(t, 150, EstimateBurn(30, 70, 0))

	// Запасная формула срабатывает и при отрицательной скорости
	assert.Equal(t, 150, EstimateBurn(30, 70, -1))
}
