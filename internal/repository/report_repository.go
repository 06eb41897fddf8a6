package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/qmdesk/complaint-service/internal/domain"
)

// ReportRepository runs the aggregation queries behind the dashboard and the
// ad-hoc grouped reports. Every dashboard aggregate excludes complaints whose
// status carries the canonical rejected name; a NULL status never counts as
// rejected.
type ReportRepository interface {
	GroupedSeries(ctx context.Context, key domain.GroupKey, start, end time.Time) ([]domain.SeriesPoint, error)
	MonthStats(ctx context.Context, year int, month time.Month) (count int, cost float64, err error)
	YearCost(ctx context.Context, year int) (float64, error)
	YearReturnCount(ctx context.Context, year int) (int, error)
	MonthlyCounts(ctx context.Context, start, end time.Time) (map[string]int, error)
	DeptBreakdown(ctx context.Context, year int) ([]domain.DeptCount, error)
}

type reportRepository struct {
	pool *pgxpool.Pool
}

// NewReportRepository builds the repository.
func NewReportRepository(pool *pgxpool.Pool) ReportRepository {
	return &reportRepository{pool: pool}
}

const notRejected = `NOT EXISTS (SELECT 1 FROM statuses s WHERE s.id = c.status_id AND s.name = $1)`

// categoricalJoins maps the five categorical group keys to their join target.
var categoricalJoins = map[domain.GroupKey]struct {
	table string
	fk    string
}{
	domain.GroupByDefectType: {TableDefectTypes, "defect_type_id"},
	domain.GroupByCustomer:   {TableCustomers, "customer_id"},
	domain.GroupByProduct:    {TableProducts, "product_id"},
	domain.GroupByStatus:     {TableStatuses, "status_id"},
	domain.GroupByDepartment: {TableDepartments, "department_id"},
}

func (r *reportRepository) GroupedSeries(ctx context.Context, key domain.GroupKey, start, end time.Time) ([]domain.SeriesPoint, error) {
	var query string
	switch key {
	case domain.GroupByMonthlyCost:
		query = `
        SELECT to_char(c.complaint_date, 'YYYY-MM'), COALESCE(SUM(c.total_cost), 0)::float8
        FROM complaints c
        WHERE c.complaint_date BETWEEN $1 AND $2
        GROUP BY 1 ORDER BY 1`
	case domain.GroupByMonthlyCount:
		query = `
        SELECT to_char(c.complaint_date, 'YYYY-MM'), COUNT(c.id)::float8
        FROM complaints c
        WHERE c.complaint_date BETWEEN $1 AND $2
        GROUP BY 1 ORDER BY 1`
	default:
		join, ok := categoricalJoins[key]
		if !ok {
			return nil, fmt.Errorf("repository: unsupported group key %q", key)
		}
		query = fmt.Sprintf(`
        SELECT g.display_name, COUNT(c.id)::float8
        FROM complaints c
        JOIN %s g ON g.id = c.%s
        WHERE c.complaint_date BETWEEN $1 AND $2
        GROUP BY g.display_name ORDER BY g.display_name`, join.table, join.fk)
	}

	rows, err := r.pool.Query(ctx, query, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.SeriesPoint
	for rows.Next() {
		var (
			label *string
			value *float64
		)
		if err := rows.Scan(&label, &value); err != nil {
			return nil, err
		}
		point := domain.SeriesPoint{Label: "Nincs adat"}
		if label != nil && *label != "" {
			point.Label = *label
		}
		if value != nil {
			point.Value = *value
		}
		result = append(result, point)
	}
	return result, rows.Err()
}

func (r *reportRepository) MonthStats(ctx context.Context, year int, month time.Month) (int, float64, error) {
	query := `
        SELECT COUNT(*), COALESCE(SUM(c.total_cost), 0)::float8
        FROM complaints c
        WHERE EXTRACT(YEAR FROM c.complaint_date) = $2
          AND EXTRACT(MONTH FROM c.complaint_date) = $3
          AND ` + notRejected
	var (
		count int
		cost  float64
	)
	err := r.pool.QueryRow(ctx, query, domain.StatusRejected, year, int(month)).Scan(&count, &cost)
	return count, cost, err
}

func (r *reportRepository) YearCost(ctx context.Context, year int) (float64, error) {
	query := `
        SELECT COALESCE(SUM(c.total_cost), 0)::float8
        FROM complaints c
        WHERE EXTRACT(YEAR FROM c.complaint_date) = $2
          AND ` + notRejected
	var cost float64
	err := r.pool.QueryRow(ctx, query, domain.StatusRejected, year).Scan(&cost)
	return cost, err
}

func (r *reportRepository) YearReturnCount(ctx context.Context, year int) (int, error) {
	query := `
        SELECT COUNT(*)
        FROM complaints c
        WHERE EXTRACT(YEAR FROM c.complaint_date) = $2
          AND c.requires_return
          AND ` + notRejected
	var count int
	err := r.pool.QueryRow(ctx, query, domain.StatusRejected, year).Scan(&count)
	return count, err
}

func (r *reportRepository) MonthlyCounts(ctx context.Context, start, end time.Time) (map[string]int, error) {
	query := `
        SELECT to_char(c.complaint_date, 'YYYY-MM'), COUNT(c.id)
        FROM complaints c
        WHERE c.complaint_date BETWEEN $2 AND $3
          AND ` + notRejected + `
        GROUP BY 1`
	rows, err := r.pool.Query(ctx, query, domain.StatusRejected, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[string]int)
	for rows.Next() {
		var (
			month string
			count int
		)
		if err := rows.Scan(&month, &count); err != nil {
			return nil, err
		}
		result[month] = count
	}
	return result, rows.Err()
}

func (r *reportRepository) DeptBreakdown(ctx context.Context, year int) ([]domain.DeptCount, error) {
	query := `
        SELECT d.display_name, COUNT(c.id)
        FROM complaints c
        JOIN departments d ON d.id = c.department_id
        WHERE EXTRACT(YEAR FROM c.complaint_date) = $2
          AND ` + notRejected + `
        GROUP BY d.display_name
        ORDER BY COUNT(c.id) DESC`
	rows, err := r.pool.Query(ctx, query, domain.StatusRejected, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.DeptCount
	for rows.Next() {
		var dc domain.DeptCount
		if err := rows.Scan(&dc.Name, &dc.Count); err != nil {
			return nil, err
		}
		result = append(result, dc)
	}
	return result, rows.Err()
}
