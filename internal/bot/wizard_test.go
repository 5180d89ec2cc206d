package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pinghoyk/healthbot/internal/tracker"
	"github.com/pinghoyk/healthbot/pkg/models"
)

func TestWizardHappyPath(t *testing.T) {
	var d tracker.ProfileParams
	state := models.StateProfileWeight

	steps := []struct {
		input string
		next  string
	}{
		{"70", models.StateProfileHeight},
		{"175", models.StateProfileAge},
		{"30", models.StateProfileGender},
		{"М", models.StateProfileActivity},
		{"60", models.StateProfileCity},
		{"Москва", models.StateIdle},
	}

	for _, step := range steps {
		next, ok := advanceWizard(state, &d, step.input)
		require.True(t, ok, "шаг %s, ввод %q", state, step.input)
		assert.Equal(t, step.next, next)
		state = next
	}

	assert.Equal(t, 70.0, d.Weight)
	assert.Equal(t, 175.0, d.Height)
	assert.Equal(t, 30, d.Age)
	assert.Equal(t, models.GenderMale, d.Gender)
	assert.Equal(t, 60, d.ActivityMinutes)
	assert.Equal(t, "Москва", d.City)
}

func TestWizardInvalidInputDoesNotAdvance(t *testing.T) {
	tests := []struct {
		state string
		input string
	}{
		{models.StateProfileWeight, "abc"},
		{models.StateProfileWeight, "-70"},
		{models.StateProfileWeight, "0"},
		{models.StateProfileHeight, ""},
		{models.StateProfileAge, "30.5"},
		{models.StateProfileAge, "-1"},
		{models.StateProfileGender, "X"},
		{models.StateProfileGender, ""},
		{models.StateProfileActivity, "-10"},
		{models.StateProfileActivity, "час"},
		{models.StateProfileCity, "   "},
	}

	for _, tt := range tests {
		var d tracker.ProfileParams
		next, ok := advanceWizard(tt.state, &d, tt.input)
		assert.False(t, ok, "шаг %s, ввод %q", tt.state, tt.input)
		assert.Equal(t, tt.state, next, "состояние не должно меняться")
		assert.Equal(t, tracker.ProfileParams{}, d, "черновик не должен меняться")
	}
}

func TestWizardKeepsEarlierAnswersOnInvalidInput(t *testing.T) {
	var d tracker.ProfileParams

	state, ok := advanceWizard(models.StateProfileWeight, &d, "80")
	require.True(t, ok)

	_, ok = advanceWizard(state, &d, "не рост")
	require.False(t, ok)
	assert.Equal(t, 80.0, d.Weight)

	_, ok = advanceWizard(state, &d, "180")
	require.True(t, ok)
	assert.Equal(t, 180.0, d.Height)
}

func TestWizardGenderAcceptsLowercase(t *testing.T) {
	var d tracker.ProfileParams
	next, ok := advanceWizard(models.StateProfileGender, &d, "ж")
	require.True(t, ok)
	assert.Equal(t, models.GenderFemale, d.Gender)
	assert.Equal(t, models.StateProfileActivity, next)
}

func TestWizardZeroActivityAllowed(t *testing.T) {
	var d tracker.ProfileParams
	_, ok := advanceWizard(models.StateProfileActivity, &d, "0")
	require.True(t, ok)
	assert.Zero(t, d.ActivityMinutes)
}

func TestWizardTrimsInput(t *testing.T) {
	var d tracker.ProfileParams
	_, ok := advanceWizard(models.StateProfileWeight, &d, "  72.5  ")
	require.True(t, ok)
	assert.Equal(t, 72.5, d.Weight)
}

func TestCapitalize(t *testing.T) {
	assert.Equal(t, "Бег", capitalize("бег"))
	assert.Equal(t, "Banana", capitalize("banana"))
	assert.Equal(t, "", capitalize(""))
}
