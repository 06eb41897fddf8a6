package pdfreport

import (
	"bytes"

	chart "github.com/wcharczuk/go-chart/v2"

	"github.com/qmdesk/complaint-service/internal/domain"
)

const (
	chartWidth  = 1050
	chartHeight = 600
)

// renderChart draws the series as a PNG. The logarithmic scale applies to
// bar and line charts only, and only while every value is positive; a zero
// value silently falls back to the linear scale the way an empty category
// would otherwise break the axis.
func renderChart(series []domain.SeriesPoint, chartType domain.ChartType, logScale bool) ([]byte, error) {
	var buf bytes.Buffer
	var err error

	switch chartType {
	case domain.ChartPie:
		err = renderPie(&buf, series)
	case domain.ChartLine:
		err = renderLine(&buf, series, useLogRange(series, logScale))
	default:
		err = renderBar(&buf, series, useLogRange(series, logScale))
	}
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func useLogRange(series []domain.SeriesPoint, logScale bool) bool {
	if !logScale {
		return false
	}
	for _, p := range series {
		if p.Value <= 0 {
			return false
		}
	}
	return true
}

// yRange supplies an explicit Y range where go-chart cannot derive one: a
// single point or an all-equal series has a zero value delta and is rejected
// by the axis. Returns nil when the series spans a range on its own.
func yRange(series []domain.SeriesPoint, logScale bool) chart.Range {
	lo, hi := series[0].Value, series[0].Value
	for _, p := range series[1:] {
		if p.Value < lo {
			lo = p.Value
		}
		if p.Value > hi {
			hi = p.Value
		}
	}

	if logScale {
		r := &chart.LogarithmicRange{}
		if lo == hi {
			r.Min = hi / 2
			r.Max = hi * 2
		}
		return r
	}
	if lo != hi {
		return nil
	}
	max := hi
	if max <= 0 {
		max = 1
	}
	return &chart.ContinuousRange{Min: 0, Max: max * 1.25}
}

func renderBar(buf *bytes.Buffer, series []domain.SeriesPoint, logScale bool) error {
	bars := make([]chart.Value, 0, len(series))
	for _, p := range series {
		bars = append(bars, chart.Value{Value: p.Value, Label: p.Label})
	}

	bc := chart.BarChart{
		Width:    chartWidth,
		Height:   chartHeight,
		BarWidth: 40,
		Bars:     bars,
		XAxis:    chart.Style{TextRotationDegrees: 30},
	}
	if r := yRange(series, logScale); r != nil {
		bc.YAxis = chart.YAxis{Range: r}
	}
	return bc.Render(chart.PNG, buf)
}

func renderLine(buf *bytes.Buffer, series []domain.SeriesPoint, logScale bool) error {
	xs := make([]float64, len(series))
	ys := make([]float64, len(series))
	ticks := make([]chart.Tick, len(series))
	for i, p := range series {
		xs[i] = float64(i)
		ys[i] = p.Value
		ticks[i] = chart.Tick{Value: float64(i), Label: p.Label}
	}
	// The continuous series needs two points; a one-entry report becomes a
	// flat segment.
	if len(series) == 1 {
		xs = append(xs, 1)
		ys = append(ys, series[0].Value)
		ticks = append(ticks, chart.Tick{Value: 1, Label: ""})
	}

	graph := chart.Chart{
		Width:  chartWidth,
		Height: chartHeight,
		XAxis: chart.XAxis{
			Ticks: ticks,
			Style: chart.Style{TextRotationDegrees: 30},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{XValues: xs, YValues: ys},
		},
	}
	if r := yRange(series, logScale); r != nil {
		graph.YAxis = chart.YAxis{Range: r}
	}
	return graph.Render(chart.PNG, buf)
}

func renderPie(buf *bytes.Buffer, series []domain.SeriesPoint) error {
	// Zero-value slices carry no angle and would only clutter the legend.
	values := make([]chart.Value, 0, len(series))
	for _, p := range series {
		if p.Value > 0 {
			values = append(values, chart.Value{Value: p.Value, Label: p.Label})
		}
	}
	// An all-zero series still has to render; show the categories as equal
	// slices rather than failing the export.
	if len(values) == 0 {
		for _, p := range series {
			values = append(values, chart.Value{Value: 1, Label: p.Label})
		}
	}

	pc := chart.PieChart{
		Width:  chartHeight,
		Height: chartHeight,
		Values: values,
	}
	return pc.Render(chart.PNG, buf)
}
