package models

import (
	"github.com/25ayu25/BEGC-FinancialManagementSystem-sub002/internal/analytics"
)

// TrendResponse is a chart-ready time series: buckets, the axis to draw
// them against, and the total across the window.
type TrendResponse struct {
	Window      Window              `json:"window"`
	Granularity string              `json:"granularity"`
	Buckets     []analytics.Bucket  `json:"buckets"`
	Scale       analytics.AxisScale `json:"scale"`
	Total       float64             `json:"total"`
	TotalLabel  string              `json:"total_label"`
}

// RevenueTrendResponse pairs income and expense series over the same
// monthly buckets.
type RevenueTrendResponse struct {
	Window       Window              `json:"window"`
	Income       []analytics.Bucket  `json:"income"`
	Expenses     []analytics.Bucket  `json:"expenses"`
	Scale        analytics.AxisScale `json:"scale"`
	NetTotal     float64             `json:"net_total"`
	IncomeTotal  float64             `json:"income_total"`
	ExpenseTotal float64             `json:"expense_total"`
}

// BreakdownResponse is the per-category aggregation for a window plus the
// generated insight strings.
type BreakdownResponse struct {
	Window     Window                     `json:"window"`
	Categories []analytics.CategoryMetric `json:"categories"`
	Insights   []string                   `json:"insights"`
	GrandTotal float64                    `json:"grand_total"`
}

// DashboardSummary is the headline card data: totals for the window and
// growth versus the window immediately before it.
type DashboardSummary struct {
	Window        Window              `json:"window"`
	IncomeSSP     float64             `json:"income_ssp"`
	IncomeUSD     float64             `json:"income_usd"`
	ExpenseSSP    float64             `json:"expense_ssp"`
	PatientVisits int                 `json:"patient_visits"`
	IncomeGrowth  float64             `json:"income_growth"`
	ExpenseGrowth float64             `json:"expense_growth"`
	VisitGrowth   float64             `json:"visit_growth"`
	Scale         analytics.AxisScale `json:"scale"`
	IncomeLabel   string              `json:"income_label"`
	ExpenseLabel  string              `json:"expense_label"`
}

// Window echoes the resolved date range back to the client.
type Window struct {
	Start string `json:"start"`
	End   string `json:"end"`
}
