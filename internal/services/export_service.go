package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"html/template"
	"time"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"github.com/25ayu25/BEGC-FinancialManagementSystem-sub002/internal/analytics"
	"github.com/25ayu25/BEGC-FinancialManagementSystem-sub002/internal/models"
)

// ExportService renders transactions and monthly reports for download.
type ExportService struct {
	db      *gorm.DB
	reports *ReportService
}

func NewExportService(db *gorm.DB, reports *ReportService) *ExportService {
	return &ExportService{db: db, reports: reports}
}

var exportHeader = []string{"Date", "Type", "Amount", "Currency", "Department", "Category", "Description"}

func (s *ExportService) exportRows(start, end time.Time) ([][]string, error) {
	var txs []models.Transaction
	if err := s.db.Preload("Department").
		Where("date >= ? AND date < ?", start, end.AddDate(0, 0, 1)).
		Order("date ASC").
		Find(&txs).Error; err != nil {
		return nil, err
	}

	rows := make([][]string, 0, len(txs))
	for _, t := range txs {
		dept := ""
		if t.Department != nil {
			dept = t.Department.Name
		}
		rows = append(rows, []string{
			analytics.FormatDate(t.Date, analytics.DateStyleISO),
			string(t.Type),
			fmt.Sprintf("%.2f", t.Amount),
			string(t.Currency),
			dept,
			t.Category,
			t.Description,
		})
	}
	return rows, nil
}

// TransactionsCSV renders all transactions in the window as a CSV blob.
func (s *ExportService) TransactionsCSV(start, end time.Time) ([]byte, error) {
	rows, err := s.exportRows(start, end)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(exportHeader); err != nil {
		return nil, err
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// TransactionsXLSX renders the same rows as a styled Excel workbook.
func (s *ExportService) TransactionsXLSX(start, end time.Time) ([]byte, error) {
	rows, err := s.exportRows(start, end)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Transactions"
	f.SetSheetName("Sheet1", sheet)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#2563EB"}},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})

	for i, h := range exportHeader {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}
	endHeader, _ := excelize.CoordinatesToCellName(len(exportHeader), 1)
	f.SetCellStyle(sheet, "A1", endHeader, headerStyle)

	for r, row := range rows {
		for c, v := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	f.SetColWidth(sheet, "A", "A", 12)
	f.SetColWidth(sheet, "E", "G", 24)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// monthlyReportTmpl is a self-contained printable page; the browser's
// print dialog turns it into the PDF the staff file away.
var monthlyReportTmpl = template.Must(template.New("monthly").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Monthly Report — {{.Period}}</title>
<style>
body { font-family: sans-serif; margin: 2rem; color: #111; }
h1 { font-size: 1.4rem; }
table { border-collapse: collapse; width: 100%; margin-top: 1rem; }
th, td { border: 1px solid #ccc; padding: 6px 10px; text-align: left; }
th { background: #f3f4f6; }
.totals td { font-weight: bold; }
@media print { body { margin: 0.5rem; } }
</style>
</head>
<body>
<h1>Bahr El Ghazal Clinic — Monthly Report, {{.Period}}</h1>
<p>Income (SSP): {{.IncomeSSP}} &nbsp; Income (USD): {{.IncomeUSD}} &nbsp; Expenses (SSP): {{.ExpenseSSP}} &nbsp; Patient visits: {{.Visits}}</p>
<h2>Income by department</h2>
<table>
<tr><th>Department</th><th>Total</th><th>Share</th><th>Growth</th></tr>
{{range .Departments}}<tr><td>{{.Name}}</td><td>{{printf "%.2f" .Total}}</td><td>{{printf "%.1f" .Percentage}}%</td><td>{{printf "%+.1f" .Growth}}%</td></tr>
{{end}}</table>
<h2>Expenses by category</h2>
<table>
<tr><th>Category</th><th>Total</th><th>Share</th><th>Growth</th></tr>
{{range .Expenses}}<tr><td>{{.Name}}</td><td>{{printf "%.2f" .Total}}</td><td>{{printf "%.1f" .Percentage}}%</td><td>{{printf "%+.1f" .Growth}}%</td></tr>
{{end}}</table>
{{if .Insights}}<h2>Notes</h2><ul>{{range .Insights}}<li>{{.}}</li>{{end}}</ul>{{end}}
<p><em>Generated {{.GeneratedAt}}</em></p>
</body>
</html>
`))

type monthlyReportData struct {
	Period      string
	IncomeSSP   string
	IncomeUSD   string
	ExpenseSSP  string
	Visits      int
	Departments []analytics.CategoryMetric
	Expenses    []analytics.CategoryMetric
	Insights    []string
	GeneratedAt string
}

// MonthlyReportHTML builds the printable monthly report page.
func (s *ExportService) MonthlyReportHTML(year, month int) ([]byte, error) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)

	summary, err := s.reports.Summary(start, end)
	if err != nil {
		return nil, err
	}
	departments, err := s.reports.DepartmentBreakdown(start, end, models.CurrencySSP)
	if err != nil {
		return nil, err
	}
	expenses, err := s.reports.ExpenseBreakdown(start, end, models.CurrencySSP)
	if err != nil {
		return nil, err
	}

	insights := append([]string{}, departments.Insights...)
	insights = append(insights, expenses.Insights...)

	data := monthlyReportData{
		Period:      analytics.FormatDate(start, analytics.DateStyleMonth),
		IncomeSSP:   analytics.CompactCurrency(summary.IncomeSSP),
		IncomeUSD:   analytics.CompactCurrency(summary.IncomeUSD),
		ExpenseSSP:  analytics.CompactCurrency(summary.ExpenseSSP),
		Visits:      summary.PatientVisits,
		Departments: departments.Categories,
		Expenses:    expenses.Categories,
		Insights:    insights,
		GeneratedAt: analytics.FormatDate(time.Now().UTC(), analytics.DateStyleLong),
	}

	var buf bytes.Buffer
	if err := monthlyReportTmpl.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
