package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/qmdesk/complaint-service/internal/domain"
	"github.com/qmdesk/complaint-service/internal/observability"
	"github.com/qmdesk/complaint-service/internal/pdfreport"
	apperrors "github.com/qmdesk/complaint-service/pkg/util/errorutil"
)

type fakeReportRepo struct {
	series      []domain.SeriesPoint
	monthly     map[string]int
	monthCount  int
	monthCost   float64
	yearCost    float64
	returnCount int
	depts       []domain.DeptCount
}

func (r *fakeReportRepo) GroupedSeries(_ context.Context, _ domain.GroupKey, _, _ time.Time) ([]domain.SeriesPoint, error) {
	return r.series, nil
}

func (r *fakeReportRepo) MonthStats(_ context.Context, _ int, _ time.Month) (int, float64, error) {
	return r.monthCount, r.monthCost, nil
}

func (r *fakeReportRepo) YearCost(_ context.Context, _ int) (float64, error) {
	return r.yearCost, nil
}

func (r *fakeReportRepo) YearReturnCount(_ context.Context, _ int) (int, error) {
	return r.returnCount, nil
}

func (r *fakeReportRepo) MonthlyCounts(_ context.Context, _, _ time.Time) (map[string]int, error) {
	return r.monthly, nil
}

func (r *fakeReportRepo) DeptBreakdown(_ context.Context, _ int) ([]domain.DeptCount, error) {
	return r.depts, nil
}

type fakeRenderer struct {
	rendered int
}

func (f *fakeRenderer) Render(_ []domain.SeriesPoint, _ pdfreport.Options) ([]byte, error) {
	f.rendered++
	return []byte("%PDF-1.4 fake"), nil
}

func newReportService(repo *fakeReportRepo, renderer pdfreport.Renderer, now time.Time) *ReportService {
	svc := NewReportService(repo, nil, 0, renderer, observability.NewMetrics(), zap.NewNop())
	svc.now = func() time.Time { return now }
	return svc
}

func TestGroupedReportRejectsUnknownKey(t *testing.T) {
	svc := newReportService(&fakeReportRepo{}, &fakeRenderer{}, time.Now())

	_, err := svc.GroupedReport(context.Background(), time.Now().AddDate(0, -1, 0), time.Now(), "ismeretlen")
	require.Error(t, err)

	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)
}

func TestGroupedReportRejectsInvertedWindow(t *testing.T) {
	svc := newReportService(&fakeReportRepo{}, &fakeRenderer{}, time.Now())

	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	_, err := svc.GroupedReport(context.Background(), start, start.AddDate(0, 0, -5), domain.GroupByCustomer)
	require.Error(t, err)
}

func TestExportPDFRefusesEmptySeries(t *testing.T) {
	renderer := &fakeRenderer{}
	svc := newReportService(&fakeReportRepo{}, renderer, time.Now())

	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	_, _, err := svc.ExportPDF(context.Background(), start, start.AddDate(0, 1, 0), domain.GroupByCustomer, domain.ChartBar, false)
	require.Error(t, err)

	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "NO_DATA", domainErr.Code)
	assert.Zero(t, renderer.rendered, "nothing must be rendered without data")
}

func TestExportPDFFilename(t *testing.T) {
	repo := &fakeReportRepo{series: []domain.SeriesPoint{{Label: "2026-01", Value: 3}}}
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	svc := newReportService(repo, &fakeRenderer{}, now)

	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	pdf, filename, err := svc.ExportPDF(context.Background(), start, start.AddDate(0, 2, 0), domain.GroupByMonthlyCount, domain.ChartLine, false)
	require.NoError(t, err)
	assert.NotEmpty(t, pdf)
	assert.Equal(t, "riport_monthly_count_2026-03-15.pdf", filename)
}

func TestDashboardStats(t *testing.T) {
	repo := &fakeReportRepo{
		monthCount:  4,
		monthCost:   1200,
		yearCost:    56000,
		returnCount: 3,
		monthly: map[string]int{
			"2025-04": 2,
			"2026-01": 5,
			"2026-03": 1,
		},
		depts: []domain.DeptCount{{Name: "Öntöde", Count: 2}},
	}
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	svc := newReportService(repo, &fakeRenderer{}, now)

	stats, err := svc.DashboardStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 4, stats.MonthCount)
	assert.Equal(t, 1200.0, stats.MonthCost)
	assert.Equal(t, 56000.0, stats.YearCost)
	assert.Equal(t, 3, stats.ReturnCount)
	require.Len(t, stats.Departments, 1)

	// Trailing 12 months ending at March 2026: April 2025 comes first.
	require.Len(t, stats.Monthly.Labels, 12)
	require.Len(t, stats.Monthly.Counts, 12)
	assert.Equal(t, "Ápr", stats.Monthly.Labels[0])
	assert.Equal(t, "Márc", stats.Monthly.Labels[11])

	assert.Equal(t, 2, stats.Monthly.Counts[0], "April 2025")
	assert.Equal(t, 0, stats.Monthly.Counts[1], "empty months zero-filled")
	assert.Equal(t, 5, stats.Monthly.Counts[9], "January 2026")
	assert.Equal(t, 1, stats.Monthly.Counts[11], "March 2026")

	assert.Equal(t, 9, stats.Monthly.YearChangeIndex, "January slot marks the year divider")
}
