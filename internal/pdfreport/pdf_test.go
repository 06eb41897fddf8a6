package pdfreport

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qmdesk/complaint-service/internal/config"
	"github.com/qmdesk/complaint-service/internal/domain"
)

func sampleSeries() []domain.SeriesPoint {
	return []domain.SeriesPoint{
		{Label: "Öntöde", Value: 12},
		{Label: "Sörgyár", Value: 5},
		{Label: "Szerelde", Value: 1},
	}
}

func TestRenderEmptySeries(t *testing.T) {
	renderer := NewRenderer(config.ReportConfig{})

	_, err := renderer.Render(nil, Options{Title: "Vevők szerint", Chart: domain.ChartBar})
	assert.ErrorIs(t, err, ErrNoData)
}

func TestRenderProducesPDF(t *testing.T) {
	renderer := NewRenderer(config.ReportConfig{})

	for _, chartType := range []domain.ChartType{domain.ChartBar, domain.ChartLine, domain.ChartPie} {
		pdf, err := renderer.Render(sampleSeries(), Options{Title: "Üzemegységek szerint", Chart: chartType})
		require.NoError(t, err, "chart %s", chartType)
		require.Greater(t, len(pdf), 4)
		assert.Equal(t, "%PDF", string(pdf[:4]), "chart %s", chartType)
	}
}

func TestRenderSinglePointSeries(t *testing.T) {
	renderer := NewRenderer(config.ReportConfig{})
	single := []domain.SeriesPoint{{Label: "2026-01", Value: 7}}

	for _, chartType := range []domain.ChartType{domain.ChartBar, domain.ChartLine, domain.ChartPie} {
		pdf, err := renderer.Render(single, Options{Title: "Havi hibaszám alakulása", Chart: chartType})
		require.NoError(t, err, "chart %s", chartType)
		assert.Equal(t, "%PDF", string(pdf[:4]), "chart %s", chartType)
	}
}

func TestRenderSinglePointLogScale(t *testing.T) {
	renderer := NewRenderer(config.ReportConfig{})
	single := []domain.SeriesPoint{{Label: "Öntöde", Value: 12}}

	for _, chartType := range []domain.ChartType{domain.ChartBar, domain.ChartLine} {
		pdf, err := renderer.Render(single, Options{Title: "Üzemegységek szerint", Chart: chartType, LogScale: true})
		require.NoError(t, err, "chart %s", chartType)
		assert.NotEmpty(t, pdf)
	}
}

func TestRenderAllEqualValues(t *testing.T) {
	series := []domain.SeriesPoint{
		{Label: "Öntöde", Value: 5},
		{Label: "Sörgyár", Value: 5},
	}

	for _, chartType := range []domain.ChartType{domain.ChartBar, domain.ChartLine} {
		png, err := renderChart(series, chartType, false)
		require.NoError(t, err, "chart %s", chartType)
		assert.NotEmpty(t, png)
	}
}

func TestRenderAllZeroSeries(t *testing.T) {
	series := []domain.SeriesPoint{
		{Label: "2026-01", Value: 0},
		{Label: "2026-02", Value: 0},
	}

	for _, chartType := range []domain.ChartType{domain.ChartBar, domain.ChartLine, domain.ChartPie} {
		png, err := renderChart(series, chartType, false)
		require.NoError(t, err, "chart %s", chartType)
		assert.NotEmpty(t, png)
	}
}

func TestRenderCostTable(t *testing.T) {
	renderer := NewRenderer(config.ReportConfig{})

	pdf, err := renderer.Render(sampleSeries(), Options{Title: "Havi költségbontás", Chart: domain.ChartBar, IsCost: true})
	require.NoError(t, err)
	assert.NotEmpty(t, pdf)
}

func TestUseLogRange(t *testing.T) {
	assert.False(t, useLogRange(sampleSeries(), false))
	assert.True(t, useLogRange(sampleSeries(), true))

	withZero := append(sampleSeries(), domain.SeriesPoint{Label: "Üres", Value: 0})
	assert.False(t, useLogRange(withZero, true), "zero value falls back to linear")
}

func TestRenderChartPieFiltersZeroSlices(t *testing.T) {
	series := append(sampleSeries(), domain.SeriesPoint{Label: "Üres", Value: 0})

	png, err := renderChart(series, domain.ChartPie, false)
	require.NoError(t, err)
	assert.NotEmpty(t, png)
}
