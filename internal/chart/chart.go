// Package chart renders the income split of a successful simulation.
package chart

import (
	"errors"
	"fmt"
	"io"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"tax-simulation/internal/model"
)

const (
	width  = 480
	height = 480
)

var ErrNoData = errors.New("chart: no data")

var palette = []drawing.Color{
	gochart.ColorBlue,
	gochart.ColorRed,
	gochart.ColorGreen,
	gochart.ColorOrange,
}

// RenderSVG draws data as a pie chart. Slices must be non-negative and at
// least one must be positive.
func RenderSVG(w io.Writer, data []model.ChartDatum) error {
	if len(data) == 0 {
		return ErrNoData
	}
	var total float64
	values := make([]gochart.Value, 0, len(data))
	for i, d := range data {
		if d.Value < 0 {
			return fmt.Errorf("chart: negative value %.2f for %q", d.Value, d.Label)
		}
		total += d.Value
		values = append(values, gochart.Value{
			Label: d.Label,
			Value: d.Value,
			Style: gochart.Style{
				FillColor:   palette[i%len(palette)],
				StrokeColor: gochart.ColorWhite,
				StrokeWidth: 2,
			},
		})
	}
	if total == 0 {
		return ErrNoData
	}

	pie := gochart.PieChart{
		Width:  width,
		Height: height,
		Values: values,
	}
	if err := pie.Render(gochart.SVG, w); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}
