package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/qmdesk/complaint-service/internal/domain"
	"github.com/qmdesk/complaint-service/internal/events"
	"github.com/qmdesk/complaint-service/internal/observability"
	"github.com/qmdesk/complaint-service/internal/pdfreport"
	"github.com/qmdesk/complaint-service/internal/repository"
	apperrors "github.com/qmdesk/complaint-service/pkg/util/errorutil"
)

const dashboardCacheKey = "dashboard:stats"

// trendMonths is the fixed length of the dashboard monthly trend.
const trendMonths = 12

// Hungarian month abbreviations indexed by time.Month-1, used as the trend
// labels; the year divider is carried separately as an index.
var honapokRovid = [12]string{
	"Jan", "Febr", "Márc", "Ápr", "Máj", "Jún",
	"Júl", "Aug", "Szept", "Okt", "Nov", "Dec",
}

// ReportService computes grouped reports, PDF exports and the dashboard
// summary. Dashboard results are cached in Redis for a short TTL and the
// cache is dropped on every complaint mutation; with no Redis configured the
// service reads straight from storage.
type ReportService struct {
	reports  repository.ReportRepository
	cache    *redis.Client
	cacheTTL time.Duration
	renderer pdfreport.Renderer
	metrics  *observability.Metrics
	logger   *zap.Logger
	now      func() time.Time
}

// NewReportService constructs the service.
func NewReportService(reports repository.ReportRepository, cache *redis.Client, cacheTTL time.Duration, renderer pdfreport.Renderer, metrics *observability.Metrics, logger *zap.Logger) *ReportService {
	return &ReportService{
		reports:  reports,
		cache:    cache,
		cacheTTL: cacheTTL,
		renderer: renderer,
		metrics:  metrics,
		logger:   logger,
		now:      time.Now,
	}
}

// GroupedReport aggregates complaints dated within [start, end] by the given
// key. Categorical keys count complaints; the monthly keys produce one entry
// per month present in the window, costs summed with 0 for missing sums.
func (s *ReportService) GroupedReport(ctx context.Context, start, end time.Time, key domain.GroupKey) ([]domain.SeriesPoint, error) {
	if !key.Valid() {
		return nil, apperrors.NewValidationError("ismeretlen csoportosítási szempont", map[string]any{"group_by": string(key)})
	}
	if end.Before(start) {
		return nil, apperrors.NewValidationError("a kezdő dátum nem lehet a záró dátum után", nil)
	}

	series, err := s.reports.GroupedSeries(ctx, key, start, end)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return series, nil
}

// ExportPDF renders the grouped report as a PDF with an embedded chart and a
// data table. An empty series refuses the export: the caller gets a NO_DATA
// outcome and no file.
func (s *ReportService) ExportPDF(ctx context.Context, start, end time.Time, key domain.GroupKey, chartType domain.ChartType, logScale bool) ([]byte, string, error) {
	if !chartType.Valid() {
		chartType = domain.ChartBar
	}

	series, err := s.GroupedReport(ctx, start, end, key)
	if err != nil {
		return nil, "", err
	}
	if len(series) == 0 {
		return nil, "", apperrors.NewNoData("Nincs adat a PDF generálásához!")
	}

	pdf, err := s.renderer.Render(series, pdfreport.Options{
		Title:    key.Title(),
		Chart:    chartType,
		LogScale: logScale,
		IsCost:   key.IsMonetary(),
	})
	if err != nil {
		s.logger.Error("pdf rendering failed", zap.String("group_by", string(key)), zap.Error(err))
		return nil, "", apperrors.NewInternalError(err)
	}

	filename := fmt.Sprintf("riport_%s_%s.pdf", key, s.now().Format("2006-01-02"))
	return pdf, filename, nil
}

// DashboardStats assembles the fixed dashboard summary for "now".
func (s *ReportService) DashboardStats(ctx context.Context) (*domain.DashboardStats, error) {
	if cached := s.readCache(ctx); cached != nil {
		return cached, nil
	}

	now := s.now()
	year, month := now.Year(), now.Month()

	count, cost, err := s.reports.MonthStats(ctx, year, month)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	yearCost, err := s.reports.YearCost(ctx, year)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	returnCount, err := s.reports.YearReturnCount(ctx, year)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	trend, err := s.monthlyTrend(ctx, now)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	depts, err := s.reports.DeptBreakdown(ctx, year)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	stats := &domain.DashboardStats{
		MonthCount:  count,
		MonthCost:   cost,
		YearCost:    yearCost,
		ReturnCount: returnCount,
		Monthly:     trend,
		Departments: depts,
	}
	s.writeCache(ctx, stats)
	return stats, nil
}

// monthlyTrend builds the trailing 12-month series ending at the current
// month, oldest first, zero-filled for months with no complaints.
func (s *ReportService) monthlyTrend(ctx context.Context, now time.Time) (domain.MonthlyTrend, error) {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(trendMonths - 1), 0)
	last := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, -1)

	counts, err := s.reports.MonthlyCounts(ctx, first, last)
	if err != nil {
		return domain.MonthlyTrend{}, err
	}

	trend := domain.MonthlyTrend{
		Labels:          make([]string, trendMonths),
		Counts:          make([]int, trendMonths),
		YearChangeIndex: -1,
	}
	for i := 0; i < trendMonths; i++ {
		m := first.AddDate(0, i, 0)
		trend.Labels[i] = honapokRovid[m.Month()-1]
		trend.Counts[i] = counts[m.Format("2006-01")]
		if m.Month() == time.January {
			trend.YearChangeIndex = i
		}
	}
	return trend, nil
}

// RegisterInvalidation drops the cached dashboard on complaint mutations.
func (s *ReportService) RegisterInvalidation(dispatcher events.Dispatcher) {
	if dispatcher == nil {
		return
	}
	invalidate := func(ctx context.Context, _ events.Event) error {
		s.InvalidateDashboard(ctx)
		return nil
	}
	dispatcher.Subscribe(events.EventComplaintCreated, invalidate)
	dispatcher.Subscribe(events.EventComplaintUpdated, invalidate)
	dispatcher.Subscribe(events.EventComplaintDeleted, invalidate)
}

// InvalidateDashboard removes the cached summary.
func (s *ReportService) InvalidateDashboard(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, dashboardCacheKey).Err(); err != nil {
		s.logger.Warn("dashboard cache invalidation failed", zap.Error(err))
	}
}

func (s *ReportService) readCache(ctx context.Context) *domain.DashboardStats {
	if s.cache == nil || s.cacheTTL <= 0 {
		return nil
	}
	raw, err := s.cache.Get(ctx, dashboardCacheKey).Bytes()
	if err != nil {
		s.metrics.RecordCacheHit(false)
		return nil
	}
	var stats domain.DashboardStats
	if err := json.Unmarshal(raw, &stats); err != nil {
		s.metrics.RecordCacheHit(false)
		return nil
	}
	s.metrics.RecordCacheHit(true)
	return &stats
}

func (s *ReportService) writeCache(ctx context.Context, stats *domain.DashboardStats) {
	if s.cache == nil || s.cacheTTL <= 0 {
		return
	}
	raw, err := json.Marshal(stats)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, dashboardCacheKey, raw, s.cacheTTL).Err(); err != nil {
		s.logger.Warn("dashboard cache write failed", zap.Error(err))
	}
}
