// Package charts строит PNG-графики дневного прогресса.
package charts

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/pinghoyk/healthbot/pkg/models"
)

// ErrNoData — нет ни одной точки истории, рисовать нечего.
var ErrNoData = errors.New("нет данных для графиков")

const (
	panelWidth  = 900
	panelHeight = 420
)

// Цвета из оригинальной палитры бота.
var (
	colorWater    = drawing.ColorFromHex("3498db")
	colorGoal     = drawing.ColorFromHex("2ecc71")
	colorConsumed = drawing.ColorFromHex("e74c3c")
	colorNet      = drawing.ColorFromHex("9b59b6")
	colorBurned   = drawing.ColorFromHex("f39c12")
)

// Render собирает картинку прогресса: панель воды и панель калорий,
// поставленные друг над другом. Пустые панели пропускаются.
func Render(water, consumed, burned []models.Snapshot, waterGoal, calorieGoal int) ([]byte, error) {
	var panels [][]byte

	if len(water) > 0 {
		p, err := renderWaterPanel(water, waterGoal)
		if err != nil {
			return nil, fmt.Errorf("панель воды: %w", err)
		}
		panels = append(panels, p)
	}

	if len(consumed) > 0 || len(burned) > 0 {
		p, err := renderCaloriePanel(consumed, burned, calorieGoal)
		if err != nil {
			return nil, fmt.Errorf("панель калорий: %w", err)
		}
		panels = append(panels, p)
	}

	if len(panels) == 0 {
		return nil, ErrNoData
	}
	if len(panels) == 1 {
		return panels[0], nil
	}
	return stackVertically(panels)
}

func renderWaterPanel(water []models.Snapshot, goal int) ([]byte, error) {
	times, values := seriesPoints(water)

	graph := chart.Chart{
		Width:  panelWidth,
		Height: panelHeight,
		Title:  "Прогресс по воде",
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeValueFormatterWithFormat("15:04"),
		},
		YAxis: chart.YAxis{Name: "мл"},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    "Выпито воды",
				XValues: times,
				YValues: values,
				Style: chart.Style{
					StrokeColor: colorWater,
					StrokeWidth: 2.5,
					FillColor:   colorWater.WithAlpha(50),
				},
			},
			goalLine(times, goal, fmt.Sprintf("Цель: %d мл", goal)),
		},
	}
	graph.Elements = []chart.Renderable{chart.LegendThin(&graph)}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func renderCaloriePanel(consumed, burned []models.Snapshot, goal int) ([]byte, error) {
	var burnedTotal float64
	if len(burned) > 0 {
		burnedTotal = burned[len(burned)-1].Value
	}

	var series []chart.Series
	var spanTimes []time.Time

	if len(consumed) > 0 {
		times, values := seriesPoints(consumed)
		spanTimes = times

		series = append(series, chart.TimeSeries{
			Name:    "Потреблено",
			XValues: times,
			YValues: values,
			Style: chart.Style{
				StrokeColor: colorConsumed,
				StrokeWidth: 2.5,
				FillColor:   colorConsumed.WithAlpha(50),
			},
		})

		// Чистый баланс: потреблено минус всё сожжённое на данный момент
		net := make([]float64, len(values))
		for i, v := range values {
			net[i] = v - burnedTotal
		}
		series = append(series, chart.TimeSeries{
			Name:    "Чистый баланс",
			XValues: times,
			YValues: net,
			Style: chart.Style{
				StrokeColor:     colorNet,
				StrokeWidth:     2.5,
				StrokeDashArray: []float64{5, 5},
			},
		})
	}

	if len(burned) > 0 {
		times, values := seriesPoints(burned)
		if spanTimes == nil {
			spanTimes = times
		}
		series = append(series, chart.TimeSeries{
			Name:    fmt.Sprintf("Сожжено: %.0f ккал", burnedTotal),
			XValues: times,
			YValues: values,
			Style: chart.Style{
				StrokeColor: colorBurned,
				StrokeWidth: 2,
			},
		})
	}

	series = append(series, goalLine(spanTimes, goal, fmt.Sprintf("Цель: %d ккал", goal)))

	graph := chart.Chart{
		Width:  panelWidth,
		Height: panelHeight,
		Title:  "Прогресс по калориям",
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeValueFormatterWithFormat("15:04"),
		},
		YAxis:  chart.YAxis{Name: "ккал"},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.LegendThin(&graph)}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// seriesPoints превращает историю в параллельные срезы и дублирует
// единственную точку: рендереру нужно минимум две.
func seriesPoints(history []models.Snapshot) ([]time.Time, []float64) {
	times := make([]time.Time, 0, len(history)+1)
	values := make([]float64, 0, len(history)+1)
	for _, s := range history {
		times = append(times, s.Time)
		values = append(values, s.Value)
	}
	if len(times) == 1 {
		times = append(times, times[0].Add(time.Minute))
		values = append(values, values[0])
	}
	return times, values
}

func goalLine(span []time.Time, goal int, name string) chart.Series {
	return chart.TimeSeries{
		Name:    name,
		XValues: []time.Time{span[0], span[len(span)-1]},
		YValues: []float64{float64(goal), float64(goal)},
		Style: chart.Style{
			StrokeColor:     colorGoal,
			StrokeWidth:     2,
			StrokeDashArray: []float64{5, 5},
		},
	}
}

// stackVertically склеивает панели в одну картинку сверху вниз.
func stackVertically(panels [][]byte) ([]byte, error) {
	images := make([]image.Image, 0, len(panels))
	width, height := 0, 0
	for _, p := range panels {
		img, err := png.Decode(bytes.NewReader(p))
		if err != nil {
			return nil, fmt.Errorf("не удалось декодировать панель: %w", err)
		}
		images = append(images, img)
		if w := img.Bounds().Dx(); w > width {
			width = w
		}
		height += img.Bounds().Dy()
	}

	combined := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(combined, combined.Bounds(), image.White, image.Point{}, draw.Src)

	y := 0
	for _, img := range images {
		r := image.Rect(0, y, img.Bounds().Dx(), y+img.Bounds().Dy())
		draw.Draw(combined, r, img, img.Bounds().Min, draw.Over)
		y += img.Bounds().Dy()
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, combined); err != nil {
		return nil, fmt.Errorf("не удалось закодировать PNG: %w", err)
	}
	return buf.Bytes(), nil
}
