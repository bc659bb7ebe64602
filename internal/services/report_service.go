package services

import (
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"gorm.io/gorm"

	"github.com/25ayu25/BEGC-FinancialManagementSystem-sub002/internal/analytics"
	"github.com/25ayu25/BEGC-FinancialManagementSystem-sub002/internal/metrics"
	"github.com/25ayu25/BEGC-FinancialManagementSystem-sub002/internal/models"
)

// reportCacheSize bounds the number of cached trend/breakdown responses.
// Entries are keyed by endpoint plus query parameters; any write to
// transactions or visits purges the whole cache.
const reportCacheSize = 256

// ReportService turns raw transaction and visit rows into chart-ready
// series, breakdowns and summaries.
type ReportService struct {
	db    *gorm.DB
	cache *lru.Cache[string, any]
}

func NewReportService(db *gorm.DB) *ReportService {
	cache, _ := lru.New[string, any](reportCacheSize)
	return &ReportService{db: db, cache: cache}
}

// InvalidateCache drops every cached report. Called after any write that
// can change a series.
func (s *ReportService) InvalidateCache() {
	s.cache.Purge()
}

func (s *ReportService) cached(key string, compute func() (any, error)) (any, error) {
	if v, ok := s.cache.Get(key); ok {
		metrics.ReportCacheHits.Inc()
		return v, nil
	}
	metrics.ReportCacheMisses.Inc()
	v, err := compute()
	if err != nil {
		return nil, err
	}
	s.cache.Add(key, v)
	return v, nil
}

// IncomeTrend returns the daily income series for one calendar month.
func (s *ReportService) IncomeTrend(year, month int, currency models.Currency) (*models.TrendResponse, error) {
	key := fmt.Sprintf("income-trend:%04d-%02d:%s", year, month, currency)
	v, err := s.cached(key, func() (any, error) {
		start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
		end := start.AddDate(0, 1, -1)

		obs, err := s.transactionObservations(models.TransactionIncome, start, end, currency)
		if err != nil {
			return nil, err
		}

		return buildTrend(obs, start, end, analytics.GranularityDay), nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*models.TrendResponse), nil
}

// MonthlyRevenue returns income and expense series bucketed per month for
// the trailing window ending this month.
func (s *ReportService) MonthlyRevenue(months int, currency models.Currency) (*models.RevenueTrendResponse, error) {
	if months <= 0 {
		months = 12
	}
	key := fmt.Sprintf("monthly-revenue:%d:%s", months, currency)
	v, err := s.cached(key, func() (any, error) {
		now := time.Now().UTC()
		end := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, -1)
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(months - 1), 0)

		income, err := s.transactionObservations(models.TransactionIncome, start, end, currency)
		if err != nil {
			return nil, err
		}
		expenses, err := s.transactionObservations(models.TransactionExpense, start, end, currency)
		if err != nil {
			return nil, err
		}

		incomeBuckets := analytics.Bucketize(income, start, end, analytics.GranularityMonth)
		expenseBuckets := analytics.Bucketize(expenses, start, end, analytics.GranularityMonth)

		incomeTotal := bucketSum(incomeBuckets)
		expenseTotal := bucketSum(expenseBuckets)

		return &models.RevenueTrendResponse{
			Window:       window(start, end),
			Income:       incomeBuckets,
			Expenses:     expenseBuckets,
			Scale:        analytics.Scale(maxBucket(incomeBuckets, expenseBuckets), 0),
			NetTotal:     incomeTotal - expenseTotal,
			IncomeTotal:  incomeTotal,
			ExpenseTotal: expenseTotal,
		}, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*models.RevenueTrendResponse), nil
}

// PatientVolume returns the daily visit-count series for one month.
func (s *ReportService) PatientVolume(year, month int) (*models.TrendResponse, error) {
	key := fmt.Sprintf("patient-volume:%04d-%02d", year, month)
	v, err := s.cached(key, func() (any, error) {
		start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
		end := start.AddDate(0, 1, -1)

		var rows []models.PatientVisit
		if err := s.db.Where("date >= ? AND date < ?", start, end.AddDate(0, 0, 1)).Find(&rows).Error; err != nil {
			return nil, err
		}

		obs := make([]analytics.Observation, 0, len(rows))
		for _, r := range rows {
			obs = append(obs, analytics.Observation{Date: r.Date, Value: float64(r.Count), Category: r.DepartmentID})
		}

		return buildTrend(obs, start, end, analytics.GranularityDay), nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*models.TrendResponse), nil
}

// DepartmentBreakdown aggregates income per department over the window,
// compared against the window of equal length immediately before it.
func (s *ReportService) DepartmentBreakdown(start, end time.Time, currency models.Currency) (*models.BreakdownResponse, error) {
	key := fmt.Sprintf("dept-breakdown:%s:%s:%s", start.Format("2006-01-02"), end.Format("2006-01-02"), currency)
	v, err := s.cached(key, func() (any, error) {
		names, err := s.departmentNames()
		if err != nil {
			return nil, err
		}
		return s.breakdown(start, end, currency, models.TransactionIncome, func(t models.Transaction) string {
			return t.DepartmentID
		}, names)
	})
	if err != nil {
		return nil, err
	}
	return v.(*models.BreakdownResponse), nil
}

// ExpenseBreakdown aggregates expenses per expense category.
func (s *ReportService) ExpenseBreakdown(start, end time.Time, currency models.Currency) (*models.BreakdownResponse, error) {
	key := fmt.Sprintf("expense-breakdown:%s:%s:%s", start.Format("2006-01-02"), end.Format("2006-01-02"), currency)
	v, err := s.cached(key, func() (any, error) {
		return s.breakdown(start, end, currency, models.TransactionExpense, func(t models.Transaction) string {
			return t.Category
		}, nil)
	})
	if err != nil {
		return nil, err
	}
	return v.(*models.BreakdownResponse), nil
}

// Summary computes the headline dashboard card: totals for the window and
// growth against the previous window of equal length.
func (s *ReportService) Summary(start, end time.Time) (*models.DashboardSummary, error) {
	key := fmt.Sprintf("summary:%s:%s", start.Format("2006-01-02"), end.Format("2006-01-02"))
	v, err := s.cached(key, func() (any, error) {
		prevStart, prevEnd := previousWindow(start, end)

		curIncomeSSP, err := s.sumAmount(models.TransactionIncome, models.CurrencySSP, start, end)
		if err != nil {
			return nil, err
		}
		curIncomeUSD, err := s.sumAmount(models.TransactionIncome, models.CurrencyUSD, start, end)
		if err != nil {
			return nil, err
		}
		curExpenseSSP, err := s.sumAmount(models.TransactionExpense, models.CurrencySSP, start, end)
		if err != nil {
			return nil, err
		}
		prevIncomeSSP, err := s.sumAmount(models.TransactionIncome, models.CurrencySSP, prevStart, prevEnd)
		if err != nil {
			return nil, err
		}
		prevExpenseSSP, err := s.sumAmount(models.TransactionExpense, models.CurrencySSP, prevStart, prevEnd)
		if err != nil {
			return nil, err
		}

		curVisits, err := s.sumVisits(start, end)
		if err != nil {
			return nil, err
		}
		prevVisits, err := s.sumVisits(prevStart, prevEnd)
		if err != nil {
			return nil, err
		}

		return &models.DashboardSummary{
			Window:        window(start, end),
			IncomeSSP:     curIncomeSSP,
			IncomeUSD:     curIncomeUSD,
			ExpenseSSP:    curExpenseSSP,
			PatientVisits: curVisits,
			IncomeGrowth:  growth(curIncomeSSP, prevIncomeSSP),
			ExpenseGrowth: growth(curExpenseSSP, prevExpenseSSP),
			VisitGrowth:   growth(float64(curVisits), float64(prevVisits)),
			Scale:         analytics.Scale(maxOf(curIncomeSSP, curExpenseSSP), 0),
			IncomeLabel:   analytics.CompactCurrency(curIncomeSSP),
			ExpenseLabel:  analytics.CompactCurrency(curExpenseSSP),
		}, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*models.DashboardSummary), nil
}

// ProviderBalances reports claimed vs paid per insurance provider.
// Rejected claims don't count toward the outstanding position.
func (s *ReportService) ProviderBalances() ([]models.ProviderBalance, error) {
	var providers []models.InsuranceProvider
	if err := s.db.Order("name ASC").Find(&providers).Error; err != nil {
		return nil, err
	}

	balances := make([]models.ProviderBalance, 0, len(providers))
	for _, p := range providers {
		var claimed, paid float64
		var open int64

		if err := s.db.Model(&models.InsuranceClaim{}).
			Where("provider_id = ? AND status != ?", p.ID, models.ClaimRejected).
			Select("COALESCE(SUM(amount), 0)").Scan(&claimed).Error; err != nil {
			return nil, err
		}
		if err := s.db.Model(&models.InsurancePayment{}).
			Where("provider_id = ?", p.ID).
			Select("COALESCE(SUM(amount), 0)").Scan(&paid).Error; err != nil {
			return nil, err
		}
		s.db.Model(&models.InsuranceClaim{}).
			Where("provider_id = ? AND status IN ?", p.ID, []models.ClaimStatus{models.ClaimPending, models.ClaimSubmitted}).
			Count(&open)

		balances = append(balances, models.ProviderBalance{
			ProviderID:   p.ID,
			ProviderName: p.Name,
			TotalClaimed: claimed,
			TotalPaid:    paid,
			Outstanding:  claimed - paid,
			OpenClaims:   int(open),
		})
	}

	return balances, nil
}

// --- internals ---

func (s *ReportService) breakdown(start, end time.Time, currency models.Currency, txType models.TransactionType, keyFn func(models.Transaction) string, names map[string]string) (*models.BreakdownResponse, error) {
	current, err := s.categorySeries(txType, start, end, currency, keyFn, names)
	if err != nil {
		return nil, err
	}

	prevStart, prevEnd := previousWindow(start, end)
	previous, err := s.categorySeries(txType, prevStart, prevEnd, currency, keyFn, names)
	if err != nil {
		return nil, err
	}

	cats := analytics.Aggregate(current, previous)

	var grand float64
	for _, c := range cats {
		grand += c.Total
	}

	return &models.BreakdownResponse{
		Window:     window(start, end),
		Categories: cats,
		Insights:   analytics.Insights(cats),
		GrandTotal: grand,
	}, nil
}

func (s *ReportService) categorySeries(txType models.TransactionType, start, end time.Time, currency models.Currency, keyFn func(models.Transaction) string, names map[string]string) ([]analytics.CategorySeries, error) {
	rows, err := s.transactions(txType, start, end, currency)
	if err != nil {
		return nil, err
	}

	grouped := make(map[string][]analytics.Observation)
	var order []string
	for _, t := range rows {
		k := keyFn(t)
		if k == "" {
			k = "uncategorized"
		}
		if _, seen := grouped[k]; !seen {
			order = append(order, k)
		}
		grouped[k] = append(grouped[k], analytics.Observation{Date: t.Date, Value: t.Amount, Category: k})
	}

	series := make([]analytics.CategorySeries, 0, len(order))
	for _, k := range order {
		name := k
		if names != nil {
			if n, ok := names[k]; ok {
				name = n
			}
		}
		series = append(series, analytics.CategorySeries{
			ID:      k,
			Name:    name,
			Buckets: analytics.Bucketize(grouped[k], start, end, analytics.GranularityAuto),
		})
	}
	return series, nil
}

func (s *ReportService) transactions(txType models.TransactionType, start, end time.Time, currency models.Currency) ([]models.Transaction, error) {
	var rows []models.Transaction
	q := s.db.Where("type = ? AND date >= ? AND date < ?", txType, start, end.AddDate(0, 0, 1))
	if currency != "" {
		q = q.Where("currency = ?", currency)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *ReportService) transactionObservations(txType models.TransactionType, start, end time.Time, currency models.Currency) ([]analytics.Observation, error) {
	rows, err := s.transactions(txType, start, end, currency)
	if err != nil {
		return nil, err
	}
	obs := make([]analytics.Observation, 0, len(rows))
	for _, r := range rows {
		obs = append(obs, analytics.Observation{Date: r.Date, Value: r.Amount})
	}
	return obs, nil
}

func (s *ReportService) sumAmount(txType models.TransactionType, currency models.Currency, start, end time.Time) (float64, error) {
	var total float64
	err := s.db.Model(&models.Transaction{}).
		Where("type = ? AND currency = ? AND date >= ? AND date < ?", txType, currency, start, end.AddDate(0, 0, 1)).
		Select("COALESCE(SUM(amount), 0)").Scan(&total).Error
	return total, err
}

func (s *ReportService) sumVisits(start, end time.Time) (int, error) {
	var total int64
	err := s.db.Model(&models.PatientVisit{}).
		Where("date >= ? AND date < ?", start, end.AddDate(0, 0, 1)).
		Select("COALESCE(SUM(count), 0)").Scan(&total).Error
	return int(total), err
}

func (s *ReportService) departmentNames() (map[string]string, error) {
	var deps []models.Department
	if err := s.db.Find(&deps).Error; err != nil {
		return nil, err
	}
	names := make(map[string]string, len(deps))
	for _, d := range deps {
		names[d.ID] = d.Name
	}
	return names, nil
}

func buildTrend(obs []analytics.Observation, start, end time.Time, g analytics.Granularity) *models.TrendResponse {
	buckets := analytics.Bucketize(obs, start, end, g)
	total := bucketSum(buckets)
	return &models.TrendResponse{
		Window:      window(start, end),
		Granularity: string(g),
		Buckets:     buckets,
		Scale:       analytics.Scale(maxBucket(buckets, nil), 0),
		Total:       total,
		TotalLabel:  analytics.CompactCurrency(total),
	}
}

// previousWindow is the range of equal length ending the day before
// start.
func previousWindow(start, end time.Time) (time.Time, time.Time) {
	days := int(end.Sub(start).Hours()/24) + 1
	prevEnd := start.AddDate(0, 0, -1)
	prevStart := prevEnd.AddDate(0, 0, -(days - 1))
	return prevStart, prevEnd
}

func window(start, end time.Time) models.Window {
	return models.Window{
		Start: start.Format("2006-01-02"),
		End:   end.Format("2006-01-02"),
	}
}

func growth(current, previous float64) float64 {
	switch {
	case previous > 0:
		return (current - previous) / previous * 100
	case current > 0:
		return 100
	default:
		return 0
	}
}

func bucketSum(buckets []analytics.Bucket) float64 {
	var total float64
	for _, b := range buckets {
		total += b.Value
	}
	return total
}

func maxBucket(a, b []analytics.Bucket) float64 {
	var max float64
	for _, bucket := range a {
		if bucket.Value > max {
			max = bucket.Value
		}
	}
	for _, bucket := range b {
		if bucket.Value > max {
			max = bucket.Value
		}
	}
	return max
}

func maxOf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
