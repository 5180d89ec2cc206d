package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pinghoyk/healthbot/pkg/models"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestFoodCacheRoundTrip(t *testing.T) {
	db := newTestDB(t)

	got, err := db.GetCachedFood("банан")
	require.NoError(t, err)
	assert.Nil(t, got)

	food := models.FoodInfo{Name: "Банан", Calories: 89, ServingGrams: 100}
	require.NoError(t, db.SaveCachedFood("банан", food))

	got, err = db.GetCachedFood("банан")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, food, *got)
}

func TestFoodCacheNormalizesQuery(t *testing.T) {
	db := newTestDB(t)

	food := models.FoodInfo{Name: "Банан", Calories: 89, ServingGrams: 100}
	require.NoError(t, db.SaveCachedFood("  Банан  ", food))

	got, err := db.GetCachedFood("банан")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Банан", got.Name)
}

func TestFoodCacheOverwrites(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, db.SaveCachedFood("рис", models.FoodInfo{Name: "Рис", Calories: 52, ServingGrams: 100}))
	require.NoError(t, db.SaveCachedFood("рис", models.FoodInfo{Name: "Рис варёный", Calories: 130, ServingGrams: 100}))

	got, err := db.GetCachedFood("рис")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Рис варёный", got.Name)
	assert.Equal(t, 130.0, got.Calories)
}
