package domain

// GroupKey selects the dimension a report is aggregated by.
type GroupKey string

const (
	GroupByDefectType   GroupKey = "defect_type"
	GroupByCustomer     GroupKey = "customer"
	GroupByProduct      GroupKey = "product"
	GroupByStatus       GroupKey = "status"
	GroupByDepartment   GroupKey = "department"
	GroupByMonthlyCost  GroupKey = "monthly_cost"
	GroupByMonthlyCount GroupKey = "monthly_count"
)

// Valid reports whether the key is one of the supported groupings.
func (k GroupKey) Valid() bool {
	switch k {
	case GroupByDefectType, GroupByCustomer, GroupByProduct, GroupByStatus,
		GroupByDepartment, GroupByMonthlyCost, GroupByMonthlyCount:
		return true
	}
	return false
}

// IsMonetary reports whether the aggregate value is a cost sum rather than a
// complaint count.
func (k GroupKey) IsMonetary() bool {
	return k == GroupByMonthlyCost
}

// Title returns the Hungarian report subtitle for the grouping.
func (k GroupKey) Title() string {
	switch k {
	case GroupByDefectType:
		return "Hiba típusok szerint"
	case GroupByCustomer:
		return "Vevők szerint"
	case GroupByProduct:
		return "Termékek szerint"
	case GroupByStatus:
		return "Státusz szerint"
	case GroupByDepartment:
		return "Üzemegységek szerint"
	case GroupByMonthlyCost:
		return "Havi költségbontás"
	case GroupByMonthlyCount:
		return "Havi hibaszám alakulása"
	}
	return string(k)
}

// ChartType selects the chart drawn on a PDF export.
type ChartType string

const (
	ChartBar  ChartType = "bar"
	ChartLine ChartType = "line"
	ChartPie  ChartType = "pie"
)

// Valid reports whether the chart type is supported.
func (t ChartType) Valid() bool {
	return t == ChartBar || t == ChartLine || t == ChartPie
}

// SeriesPoint is one (label, value) pair of a grouped report.
type SeriesPoint struct {
	Label string
	Value float64
}

// MonthlyTrend is the fixed trailing 12-month dashboard series, oldest month
// first, ending at the current month. YearChangeIndex is the slot where
// January falls so a renderer can draw a year divider; -1 when absent.
type MonthlyTrend struct {
	Labels          []string
	Counts          []int
	YearChangeIndex int
}

// DeptCount is one row of the current-year department breakdown.
type DeptCount struct {
	Name  string
	Count int
}

// DashboardStats bundles the fixed dashboard summary. All aggregates exclude
// complaints whose status is the canonical rejected status.
type DashboardStats struct {
	MonthCount  int
	MonthCost   float64
	YearCost    float64
	ReturnCount int
	Monthly     MonthlyTrend
	Departments []DeptCount
}
