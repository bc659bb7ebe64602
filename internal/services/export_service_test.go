package services

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/25ayu25/BEGC-FinancialManagementSystem-sub002/internal/models"
)

func TestTransactionsCSV(t *testing.T) {
	db := testDB(t)
	svc := NewExportService(db, NewReportService(db))

	lab := seedDepartment(t, db, "laboratory", "Laboratory")
	seedTransaction(t, db, models.TransactionIncome, time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC), 1500, lab.ID, "")
	seedTransaction(t, db, models.TransactionExpense, time.Date(2025, 1, 8, 0, 0, 0, 0, time.UTC), 200, "", "fuel")

	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)

	blob, err := svc.TransactionsCSV(start, end)
	if err != nil {
		t.Fatalf("TransactionsCSV returned error: %v", err)
	}

	records, err := csv.NewReader(bytes.NewReader(blob)).ReadAll()
	if err != nil {
		t.Fatalf("Exported CSV does not parse: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("Expected header plus 2 rows, got %d records", len(records))
	}
	if records[0][0] != "Date" || records[0][4] != "Department" {
		t.Errorf("Unexpected header row: %v", records[0])
	}
	if records[1][0] != "2025-01-05" {
		t.Errorf("Expected ISO date in first row, got %q", records[1][0])
	}
	if records[1][2] != "1500.00" || records[1][4] != "Laboratory" {
		t.Errorf("Unexpected income row: %v", records[1])
	}
	if records[2][1] != "expense" || records[2][5] != "fuel" {
		t.Errorf("Unexpected expense row: %v", records[2])
	}
}

func TestTransactionsXLSX(t *testing.T) {
	db := testDB(t)
	svc := NewExportService(db, NewReportService(db))

	lab := seedDepartment(t, db, "laboratory", "Laboratory")
	seedTransaction(t, db, models.TransactionIncome, time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC), 1500, lab.ID, "")

	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)

	blob, err := svc.TransactionsXLSX(start, end)
	if err != nil {
		t.Fatalf("TransactionsXLSX returned error: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(blob))
	if err != nil {
		t.Fatalf("Exported workbook does not open: %v", err)
	}
	defer f.Close()

	got, err := f.GetCellValue("Transactions", "A1")
	if err != nil {
		t.Fatalf("Failed to read header cell: %v", err)
	}
	if got != "Date" {
		t.Errorf("Expected header cell A1 'Date', got %q", got)
	}
	got, err = f.GetCellValue("Transactions", "E2")
	if err != nil {
		t.Fatalf("Failed to read data cell: %v", err)
	}
	if got != "Laboratory" {
		t.Errorf("Expected department name in E2, got %q", got)
	}
}

func TestMonthlyReportHTML(t *testing.T) {
	db := testDB(t)
	svc := NewExportService(db, NewReportService(db))

	lab := seedDepartment(t, db, "laboratory", "Laboratory")
	seedTransaction(t, db, models.TransactionIncome, time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC), 120000, lab.ID, "")
	seedTransaction(t, db, models.TransactionExpense, time.Date(2025, 1, 8, 0, 0, 0, 0, time.UTC), 30000, "", "fuel")

	blob, err := svc.MonthlyReportHTML(2025, 1)
	if err != nil {
		t.Fatalf("MonthlyReportHTML returned error: %v", err)
	}
	page := string(blob)

	if !strings.Contains(page, "Jan 2025") {
		t.Error("Expected report period 'Jan 2025' in the page")
	}
	if !strings.Contains(page, "Laboratory") {
		t.Error("Expected department table to list Laboratory")
	}
	if !strings.Contains(page, "fuel") {
		t.Error("Expected expense table to list fuel")
	}
	if !strings.Contains(page, "120k") {
		t.Error("Expected compact income total '120k' in the page")
	}
}
