package production

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/comalice/malariasim/simulation"
)

// ChartVisualizer renders the infected-per-day curve as a PNG line chart.
type ChartVisualizer struct {
	Title  string
	Width  int
	Height int
}

// NewChartVisualizer returns a visualizer with the default title and size.
func NewChartVisualizer() *ChartVisualizer {
	return &ChartVisualizer{
		Title:  "Malaria Spread Simulation",
		Width:  1024,
		Height: 512,
	}
}

// Render writes the chart as PNG to w. An empty history renders the axes only.
func (v *ChartVisualizer) Render(w io.Writer, h simulation.History) error {
	xs := []float64{0}
	ys := []float64{0}
	peak := 1.0
	if len(h) > 0 {
		xs = make([]float64, len(h))
		ys = make([]float64, len(h))
	}
	for i, rec := range h {
		xs[i] = float64(rec.Day)
		ys[i] = float64(rec.Infected)
		peak = max(peak, ys[i])
	}

	graph := v.baseChart(len(h), peak)
	graph.Series = []chart.Series{
		chart.ContinuousSeries{
			Name:    "Infected",
			XValues: xs,
			YValues: ys,
			Style: chart.Style{
				StrokeColor: chart.ColorRed,
				StrokeWidth: 2.0,
			},
		},
	}
	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}

// RenderSummary writes an ensemble chart with the per-day mean and the min/max envelope.
// An empty summary renders the axes only.
func (v *ChartVisualizer) RenderSummary(w io.Writer, summary []simulation.DaySummary) error {
	n := max(len(summary), 1)
	xs := make([]float64, n)
	means := make([]float64, n)
	lows := make([]float64, n)
	highs := make([]float64, n)
	peak := 1.0
	for i, s := range summary {
		xs[i] = float64(s.Day)
		means[i] = s.Mean
		lows[i] = float64(s.Min)
		highs[i] = float64(s.Max)
		peak = max(peak, highs[i])
	}

	envelope := chart.Style{StrokeColor: chart.ColorBlue, StrokeWidth: 1.0, StrokeDashArray: []float64{4.0, 2.0}}
	graph := v.baseChart(len(summary), peak)
	graph.Series = []chart.Series{
		chart.ContinuousSeries{Name: "Min", XValues: xs, YValues: lows, Style: envelope},
		chart.ContinuousSeries{Name: "Max", XValues: xs, YValues: highs, Style: envelope},
		chart.ContinuousSeries{
			Name:    "Mean infected",
			XValues: xs,
			YValues: means,
			Style:   chart.Style{StrokeColor: chart.ColorRed, StrokeWidth: 2.0},
		},
	}
	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}

// baseChart lays out titled axes. Fixed ranges keep flat curves renderable.
func (v *ChartVisualizer) baseChart(days int, peak float64) chart.Chart {
	intFormatter := func(v interface{}) string {
		return fmt.Sprintf("%d", int(v.(float64)))
	}
	return chart.Chart{
		Title:  v.Title,
		Width:  v.Width,
		Height: v.Height,
		XAxis: chart.XAxis{
			Name:           "Days",
			Range:          &chart.ContinuousRange{Min: 0, Max: float64(max(days, 1))},
			ValueFormatter: intFormatter,
		},
		YAxis: chart.YAxis{
			Name:           "Infected Population",
			Range:          &chart.ContinuousRange{Min: 0, Max: peak},
			ValueFormatter: intFormatter,
		},
	}
}

// SaveChart renders the chart to path, creating parent directories.
func (v *ChartVisualizer) SaveChart(path string, h simulation.History) error {
	return v.save(path, func(w io.Writer) error { return v.Render(w, h) })
}

// SaveSummaryChart renders the ensemble chart to path, creating parent directories.
func (v *ChartVisualizer) SaveSummaryChart(path string, summary []simulation.DaySummary) error {
	return v.save(path, func(w io.Writer) error { return v.RenderSummary(w, summary) })
}

func (v *ChartVisualizer) save(path string, render func(io.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", filepath.Dir(path), err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := render(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
