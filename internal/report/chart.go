package report

import (
	"bytes"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Chart dimensions in pixels.
const (
	ChartWidth  = 800
	ChartHeight = 400
	maxBars     = 12
)

var (
	barColor  = drawing.ColorFromHex("e3b341")
	textColor = drawing.ColorFromHex("24292f")
	bgColor   = drawing.ColorWhite
)

// Chart renders a PNG bar chart of shinies per species, largest first.
// Species beyond the first dozen are left out.
func Chart(st *Stats) ([]byte, error) {
	if st == nil || len(st.Species) == 0 {
		return renderNoData()
	}

	species := st.Species
	if len(species) > maxBars {
		species = species[:maxBars]
	}

	bars := make([]chart.Value, len(species))
	var top float64
	for i, s := range species {
		v := float64(s.Shinies)
		bars[i] = chart.Value{
			Label: s.Name,
			Value: v,
			Style: chart.Style{FillColor: barColor, StrokeColor: barColor},
		}
		top = max(top, v)
	}

	graph := chart.BarChart{
		Title:      "Shinies per species",
		TitleStyle: chart.Style{FontColor: textColor},
		Width:      ChartWidth,
		Height:     ChartHeight,
		BarWidth:   40,
		Background: chart.Style{
			FillColor: bgColor,
			Padding:   chart.Box{Top: 40, Left: 10, Right: 10, Bottom: 10},
		},
		Canvas: chart.Style{FillColor: bgColor},
		XAxis:  chart.Style{FontColor: textColor},
		YAxis: chart.YAxis{
			Style: chart.Style{FontColor: textColor},
			Range: &chart.ContinuousRange{Min: 0, Max: top + 1},
			ValueFormatter: func(v any) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.0f", f)
				}
				return ""
			},
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("rendering chart: %w", err)
	}
	return buf.Bytes(), nil
}

func renderNoData() ([]byte, error) {
	const msg = "No shinies recorded yet"

	graph := chart.Chart{
		Width:      ChartWidth / 2,
		Height:     ChartHeight / 2,
		Background: chart.Style{FillColor: bgColor},
		Canvas:     chart.Style{FillColor: bgColor},
		Series: []chart.Series{chart.ContinuousSeries{
			XValues: []float64{0, 1},
			YValues: []float64{0, 0},
			Style:   chart.Style{StrokeColor: bgColor},
		}},
		Elements: []chart.Renderable{
			func(r chart.Renderer, cb chart.Box, _ chart.Style) {
				r.SetFontColor(textColor)
				r.SetFontSize(12.0)
				tb := r.MeasureText(msg)
				x := (cb.Width() - tb.Width()) / 2
				y := (cb.Height() + tb.Height()) / 2
				r.Text(msg, x, y)
			},
		},
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("rendering placeholder: %w", err)
	}
	return buf.Bytes(), nil
}
