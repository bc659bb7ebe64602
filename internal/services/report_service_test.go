package services

import (
	"math"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/25ayu25/BEGC-FinancialManagementSystem-sub002/internal/models"
)

func TestIncomeTrendDailySeries(t *testing.T) {
	db := testDB(t)
	svc := NewReportService(db)

	lab := seedDepartment(t, db, "laboratory", "Laboratory")
	seedTransaction(t, db, models.TransactionIncome, time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC), 100, lab.ID, "")
	seedTransaction(t, db, models.TransactionIncome, time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC), 50, lab.ID, "")
	seedTransaction(t, db, models.TransactionIncome, time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC), 200, lab.ID, "")
	// Outside the requested month, must not leak in.
	seedTransaction(t, db, models.TransactionIncome, time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), 999, lab.ID, "")

	trend, err := svc.IncomeTrend(2025, 1, "")
	if err != nil {
		t.Fatalf("IncomeTrend returned error: %v", err)
	}

	if len(trend.Buckets) != 31 {
		t.Fatalf("Expected 31 daily buckets for January, got %d", len(trend.Buckets))
	}
	if trend.Buckets[4].Value != 150 {
		t.Errorf("Expected Jan 5 bucket to sum to 150, got %v", trend.Buckets[4].Value)
	}
	if trend.Buckets[9].Value != 200 {
		t.Errorf("Expected Jan 10 bucket to be 200, got %v", trend.Buckets[9].Value)
	}
	if trend.Total != 350 {
		t.Errorf("Expected total 350, got %v", trend.Total)
	}
	if trend.TotalLabel != "350" {
		t.Errorf("Expected total label '350', got %q", trend.TotalLabel)
	}
	if trend.Scale.Max != 200 {
		t.Errorf("Expected axis max 200 for peak 200, got %v", trend.Scale.Max)
	}
	if trend.Window.Start != "2025-01-01" || trend.Window.End != "2025-01-31" {
		t.Errorf("Unexpected window: %+v", trend.Window)
	}
}

func TestDepartmentBreakdownSharesAndGrowth(t *testing.T) {
	db := testDB(t)
	svc := NewReportService(db)

	lab := seedDepartment(t, db, "laboratory", "Laboratory")
	xray := seedDepartment(t, db, "xray", "X-Ray")

	// Current window: January 2025.
	seedTransaction(t, db, models.TransactionIncome, time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC), 150, lab.ID, "")
	seedTransaction(t, db, models.TransactionIncome, time.Date(2025, 1, 12, 0, 0, 0, 0, time.UTC), 200, xray.ID, "")
	// Previous window: December 2024, x-ray only.
	seedTransaction(t, db, models.TransactionIncome, time.Date(2024, 12, 10, 0, 0, 0, 0, time.UTC), 100, xray.ID, "")

	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)

	brk, err := svc.DepartmentBreakdown(start, end, "")
	if err != nil {
		t.Fatalf("DepartmentBreakdown returned error: %v", err)
	}

	if len(brk.Categories) != 2 {
		t.Fatalf("Expected 2 departments, got %d", len(brk.Categories))
	}
	if brk.GrandTotal != 350 {
		t.Errorf("Expected grand total 350, got %v", brk.GrandTotal)
	}

	top := brk.Categories[0]
	if top.Name != "X-Ray" || top.Total != 200 {
		t.Fatalf("Expected X-Ray with 200 first, got %s with %v", top.Name, top.Total)
	}
	if math.Abs(top.Percentage-200.0/350.0*100) > 0.01 {
		t.Errorf("Expected X-Ray share ~57.14%%, got %v", top.Percentage)
	}
	if top.Growth != 100 {
		t.Errorf("Expected X-Ray growth 100%% (200 vs 100), got %v", top.Growth)
	}

	second := brk.Categories[1]
	if second.Name != "Laboratory" {
		t.Fatalf("Expected Laboratory second, got %s", second.Name)
	}
	// No prior-window rows: treated as newly appeared.
	if second.Growth != 100 {
		t.Errorf("Expected new department growth of 100%%, got %v", second.Growth)
	}

	var shares float64
	for _, c := range brk.Categories {
		shares += c.Percentage
	}
	if math.Abs(shares-100) > 0.01 {
		t.Errorf("Expected shares to sum to 100, got %v", shares)
	}
}

func TestExpenseBreakdownUncategorized(t *testing.T) {
	db := testDB(t)
	svc := NewReportService(db)

	seedTransaction(t, db, models.TransactionExpense, time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC), 80, "", "supplies")
	seedTransaction(t, db, models.TransactionExpense, time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC), 20, "", "")

	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)

	brk, err := svc.ExpenseBreakdown(start, end, "")
	if err != nil {
		t.Fatalf("ExpenseBreakdown returned error: %v", err)
	}

	if len(brk.Categories) != 2 {
		t.Fatalf("Expected 2 expense categories, got %d", len(brk.Categories))
	}
	if brk.Categories[0].ID != "supplies" {
		t.Errorf("Expected 'supplies' to lead with 80, got %q", brk.Categories[0].ID)
	}
	if brk.Categories[1].ID != "uncategorized" {
		t.Errorf("Expected empty category to map to 'uncategorized', got %q", brk.Categories[1].ID)
	}
}

func TestSummaryGrowth(t *testing.T) {
	db := testDB(t)
	svc := NewReportService(db)

	lab := seedDepartment(t, db, "laboratory", "Laboratory")

	// Current: January 2025. Previous: December 2024 (equal length).
	seedTransaction(t, db, models.TransactionIncome, time.Date(2025, 1, 8, 0, 0, 0, 0, time.UTC), 300, lab.ID, "")
	seedTransaction(t, db, models.TransactionIncome, time.Date(2024, 12, 8, 0, 0, 0, 0, time.UTC), 200, lab.ID, "")

	if err := db.Create(&models.PatientVisit{
		Date: time.Date(2025, 1, 8, 0, 0, 0, 0, time.UTC), DepartmentID: lab.ID, Count: 10,
	}).Error; err != nil {
		t.Fatalf("Failed to seed visits: %v", err)
	}

	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)

	sum, err := svc.Summary(start, end)
	if err != nil {
		t.Fatalf("Summary returned error: %v", err)
	}

	if sum.IncomeSSP != 300 {
		t.Errorf("Expected SSP income 300, got %v", sum.IncomeSSP)
	}
	if sum.IncomeGrowth != 50 {
		t.Errorf("Expected income growth 50%% (300 vs 200), got %v", sum.IncomeGrowth)
	}
	if sum.PatientVisits != 10 {
		t.Errorf("Expected 10 visits, got %d", sum.PatientVisits)
	}
	if sum.VisitGrowth != 100 {
		t.Errorf("Expected visit growth 100%% against an empty prior window, got %v", sum.VisitGrowth)
	}
	if sum.ExpenseGrowth != 0 {
		t.Errorf("Expected expense growth 0 with no expenses either window, got %v", sum.ExpenseGrowth)
	}
	if sum.IncomeLabel != "300" {
		t.Errorf("Expected income label '300', got %q", sum.IncomeLabel)
	}
}

func TestReportCacheInvalidation(t *testing.T) {
	db := testDB(t)
	svc := NewReportService(db)

	lab := seedDepartment(t, db, "laboratory", "Laboratory")
	seedTransaction(t, db, models.TransactionIncome, time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC), 100, lab.ID, "")

	first, err := svc.IncomeTrend(2025, 1, "")
	if err != nil {
		t.Fatalf("IncomeTrend returned error: %v", err)
	}
	if first.Total != 100 {
		t.Fatalf("Expected initial total 100, got %v", first.Total)
	}

	seedTransaction(t, db, models.TransactionIncome, time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC), 50, lab.ID, "")

	cachedResp, err := svc.IncomeTrend(2025, 1, "")
	if err != nil {
		t.Fatalf("IncomeTrend returned error: %v", err)
	}
	if cachedResp.Total != 100 {
		t.Errorf("Expected cached total 100 before invalidation, got %v", cachedResp.Total)
	}

	svc.InvalidateCache()

	fresh, err := svc.IncomeTrend(2025, 1, "")
	if err != nil {
		t.Fatalf("IncomeTrend returned error: %v", err)
	}
	if fresh.Total != 150 {
		t.Errorf("Expected recomputed total 150 after invalidation, got %v", fresh.Total)
	}
}

func TestProviderBalances(t *testing.T) {
	db := testDB(t)
	svc := NewReportService(db)

	cic := seedProvider(t, db, "cic", "CIC Insurance")

	claims := []models.InsuranceClaim{
		{ID: uuid.New().String(), ProviderID: cic.ID, Year: 2025, Month: 1, Amount: 500, Status: models.ClaimPending},
		{ID: uuid.New().String(), ProviderID: cic.ID, Year: 2025, Month: 2, Amount: 200, Status: models.ClaimRejected},
	}
	for i := range claims {
		if err := db.Create(&claims[i]).Error; err != nil {
			t.Fatalf("Failed to seed claim: %v", err)
		}
	}
	payment := models.InsurancePayment{
		ID: uuid.New().String(), ProviderID: cic.ID, Amount: 100,
		PaymentDate: time.Date(2025, 2, 15, 0, 0, 0, 0, time.UTC),
	}
	if err := db.Create(&payment).Error; err != nil {
		t.Fatalf("Failed to seed payment: %v", err)
	}

	balances, err := svc.ProviderBalances()
	if err != nil {
		t.Fatalf("ProviderBalances returned error: %v", err)
	}
	if len(balances) != 1 {
		t.Fatalf("Expected 1 provider balance, got %d", len(balances))
	}

	b := balances[0]
	if b.TotalClaimed != 500 {
		t.Errorf("Expected rejected claim excluded from claimed total, got %v", b.TotalClaimed)
	}
	if b.TotalPaid != 100 {
		t.Errorf("Expected paid total 100, got %v", b.TotalPaid)
	}
	if b.Outstanding != 400 {
		t.Errorf("Expected outstanding 400, got %v", b.Outstanding)
	}
	if b.OpenClaims != 1 {
		t.Errorf("Expected 1 open claim, got %d", b.OpenClaims)
	}
}

func TestPatientVolume(t *testing.T) {
	db := testDB(t)
	svc := NewReportService(db)

	lab := seedDepartment(t, db, "laboratory", "Laboratory")
	visits := []models.PatientVisit{
		{Date: time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC), DepartmentID: lab.ID, Count: 7},
		{Date: time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC), DepartmentID: lab.ID, Count: 3},
		{Date: time.Date(2025, 4, 20, 0, 0, 0, 0, time.UTC), DepartmentID: lab.ID, Count: 5},
	}
	for i := range visits {
		if err := db.Create(&visits[i]).Error; err != nil {
			t.Fatalf("Failed to seed visit: %v", err)
		}
	}

	trend, err := svc.PatientVolume(2025, 4)
	if err != nil {
		t.Fatalf("PatientVolume returned error: %v", err)
	}
	if len(trend.Buckets) != 30 {
		t.Fatalf("Expected 30 daily buckets for April, got %d", len(trend.Buckets))
	}
	if trend.Buckets[1].Value != 10 {
		t.Errorf("Expected Apr 2 visits to sum to 10, got %v", trend.Buckets[1].Value)
	}
	if trend.Total != 15 {
		t.Errorf("Expected 15 total visits, got %v", trend.Total)
	}
}
