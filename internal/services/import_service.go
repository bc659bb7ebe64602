package services

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/25ayu25/BEGC-FinancialManagementSystem-sub002/internal/models"
)

// Spreadsheets arriving from the clinic use inconsistent column names, so
// each field is resolved through an ordered alias list: the first header
// that matches wins. This mirrors how the dashboard historically
// reconciled loosely-named API fields.
var (
	dateAliases     = []string{"date", "day", "transaction_date", "period"}
	amountAliases   = []string{"amount", "incomessp", "income", "value", "total"}
	typeAliases     = []string{"type", "kind", "direction"}
	currencyAliases = []string{"currency", "cur"}
	deptAliases     = []string{"department", "dept", "department_code"}
	categoryAliases = []string{"category", "expense_category"}
	descAliases     = []string{"description", "notes", "memo"}
)

var importDateLayouts = []string{"2006-01-02", "02/01/2006", "01/02/2006", "2006/01/02"}

// ImportResult reports what a bulk import did.
type ImportResult struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}

// ImportService loads transactions in bulk from CSV files.
type ImportService struct {
	db *gorm.DB
}

func NewImportService(db *gorm.DB) *ImportService {
	return &ImportService{db: db}
}

// ImportTransactionsCSV reads a headed CSV stream and inserts one
// transaction per well-formed row. Rows whose date cannot be parsed are
// skipped silently; a missing or non-numeric amount is coerced to zero
// rather than rejected.
func (s *ImportService) ImportTransactionsCSV(r io.Reader, createdBy string) (*ImportResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, err
	}
	cols := indexColumns(header)

	deptIDs, err := s.departmentCodeIndex()
	if err != nil {
		return nil, err
	}

	result := &ImportResult{}
	var batch []models.Transaction

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// A malformed line is a skipped row, not a failed import.
			result.Skipped++
			continue
		}

		date, ok := parseImportDate(pick(record, cols, dateAliases))
		if !ok {
			result.Skipped++
			continue
		}

		txType := models.TransactionIncome
		if t := strings.ToLower(pick(record, cols, typeAliases)); strings.HasPrefix(t, "exp") {
			txType = models.TransactionExpense
		}

		currency := models.CurrencySSP
		if strings.EqualFold(pick(record, cols, currencyAliases), "USD") {
			currency = models.CurrencyUSD
		}

		batch = append(batch, models.Transaction{
			ID:           uuid.New().String(),
			Date:         date,
			Type:         txType,
			Amount:       coerceFloat(pick(record, cols, amountAliases)),
			Currency:     currency,
			DepartmentID: deptIDs[strings.ToLower(pick(record, cols, deptAliases))],
			Category:     pick(record, cols, categoryAliases),
			Description:  pick(record, cols, descAliases),
			CreatedBy:    createdBy,
		})
		result.Imported++
	}

	if len(batch) > 0 {
		if err := s.db.CreateInBatches(batch, 100).Error; err != nil {
			return nil, err
		}
	}
	return result, nil
}

func (s *ImportService) departmentCodeIndex() (map[string]string, error) {
	var deps []models.Department
	if err := s.db.Find(&deps).Error; err != nil {
		return nil, err
	}
	idx := make(map[string]string, len(deps))
	for _, d := range deps {
		idx[strings.ToLower(d.Code)] = d.ID
		idx[strings.ToLower(d.Name)] = d.ID
	}
	return idx, nil
}

func indexColumns(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return cols
}

// pick returns the value of the first alias present in the header, or ""
// when none match.
func pick(record []string, cols map[string]int, aliases []string) string {
	for _, a := range aliases {
		if i, ok := cols[a]; ok && i < len(record) {
			return strings.TrimSpace(record[i])
		}
	}
	return ""
}

func parseImportDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range importDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// coerceFloat parses a value that may carry currency symbols or grouping
// commas; anything unparseable collapses to 0.
func coerceFloat(s string) float64 {
	s = strings.NewReplacer(",", "", "SSP", "", "USD", "", "$", "", " ", "").Replace(s)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
