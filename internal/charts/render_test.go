package charts

import (
	"bytes"
	"image/png"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pinghoyk/healthbot/pkg/models"
)

func snapshots(start time.Time, values ...float64) []models.Snapshot {
	out := make([]models.Snapshot, len(values))
	for i, v := range values {
		out[i] = models.Snapshot{Time: start.Add(time.Duration(i) * time.Hour), Value: v}
	}
	return out
}

func TestRenderBothPanels(t *testing.T) {
	start := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

	water := snapshots(start, 250, 750, 1500)
	consumed := snapshots(start, 300, 650)
	burned := snapshots(start, 200)

	img, err := Render(water, consumed, burned, 2600, 2148)
	require.NoError(t, err)
	require.NotEmpty(t, img)

	decoded, err := png.Decode(bytes.NewReader(img))
	require.NoError(t, err)
	// Две панели друг над другом
	assert.Equal(t, panelWidth, decoded.Bounds().Dx())
	assert.Equal(t, 2*panelHeight, decoded.Bounds().Dy())
}

func TestRenderWaterOnly(t *testing.T) {
	start := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

	img, err := Render(snapshots(start, 500), nil, nil, 2600, 2148)
	require.NoError(t, err)

	decoded, err := png.Decode(bytes.NewReader(img))
	require.NoError(t, err)
	assert.Equal(t, panelHeight, decoded.Bounds().Dy())
}

func TestRenderSinglePointSeries(t *testing.T) {
	start := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

	// Одна точка в каждой истории не должна ломать рендер
	img, err := Render(snapshots(start, 250), snapshots(start, 100), snapshots(start, 50), 2600, 2148)
	require.NoError(t, err)
	assert.NotEmpty(t, img)
}

func TestRenderBurnedOnly(t *testing.T) {
	start := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

	img, err := Render(nil, nil, snapshots(start, 150, 450), 2600, 2148)
	require.NoError(t, err)
	assert.NotEmpty(t, img)
}

func TestRenderNoData(t *testing.T) {
	_, err := Render(nil, nil, nil, 2600, 2148)
	assert.ErrorIs(t, err, ErrNoData)
}
