package dto

import (
	"time"

	"github.com/qmdesk/complaint-service/internal/domain"
	apperrors "github.com/qmdesk/complaint-service/pkg/util/errorutil"
)

// ReportQueryRequest selects the window and grouping of an ad-hoc report.
type ReportQueryRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	GroupBy   string `json:"group_by"`
}

// Window parses the date range. Both bounds are required.
func (r ReportQueryRequest) Window() (start, end time.Time, err error) {
	start, err = time.Parse(dateLayout, r.StartDate)
	if err != nil {
		return start, end, apperrors.NewValidationError("érvénytelen dátumformátum", map[string]any{"start_date": r.StartDate})
	}
	end, err = time.Parse(dateLayout, r.EndDate)
	if err != nil {
		return start, end, apperrors.NewValidationError("érvénytelen dátumformátum", map[string]any{"end_date": r.EndDate})
	}
	return start, end, nil
}

// ReportExportRequest adds the chart choices for a PDF export.
type ReportExportRequest struct {
	ReportQueryRequest
	ChartType string `json:"chart_type"`
	LogScale  bool   `json:"log_scale"`
}

// ReportSeriesResponse carries a grouped series as parallel label and value
// arrays, the shape the charting frontend consumes directly.
type ReportSeriesResponse struct {
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

// NewReportSeriesResponse splits the series into label and value arrays.
func NewReportSeriesResponse(series []domain.SeriesPoint) ReportSeriesResponse {
	resp := ReportSeriesResponse{
		Labels: make([]string, 0, len(series)),
		Values: make([]float64, 0, len(series)),
	}
	for _, p := range series {
		resp.Labels = append(resp.Labels, p.Label)
		resp.Values = append(resp.Values, p.Value)
	}
	return resp
}

// MonthlyDataResponse is the trailing 12-month trend of the dashboard.
type MonthlyDataResponse struct {
	Labels          []string `json:"labels"`
	Counts          []int    `json:"counts"`
	YearChangeIndex int      `json:"year_change_index"`
}

// DeptDataResponse is one current-year department row.
type DeptDataResponse struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// DashboardResponse is the fixed dashboard summary contract.
type DashboardResponse struct {
	Count       int                 `json:"count"`
	Cost        float64             `json:"cost"`
	YearCost    float64             `json:"year_cost"`
	ReturnCount int                 `json:"return_count"`
	MonthlyData MonthlyDataResponse `json:"monthly_data"`
	DeptData    []DeptDataResponse  `json:"dept_data"`
}

// NewDashboardResponse maps the computed statistics.
func NewDashboardResponse(stats *domain.DashboardStats) DashboardResponse {
	depts := make([]DeptDataResponse, 0, len(stats.Departments))
	for _, d := range stats.Departments {
		depts = append(depts, DeptDataResponse{Name: d.Name, Count: d.Count})
	}
	return DashboardResponse{
		Count:       stats.MonthCount,
		Cost:        stats.MonthCost,
		YearCost:    stats.YearCost,
		ReturnCount: stats.ReturnCount,
		MonthlyData: MonthlyDataResponse{
			Labels:          stats.Monthly.Labels,
			Counts:          stats.Monthly.Counts,
			YearChangeIndex: stats.Monthly.YearChangeIndex,
		},
		DeptData: depts,
	}
}
