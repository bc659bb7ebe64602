package services

import (
	"context"
	"log"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/25ayu25/BEGC-FinancialManagementSystem-sub002/internal/metrics"
	"github.com/25ayu25/BEGC-FinancialManagementSystem-sub002/internal/models"
)

// SnapshotService records one DailySnapshot row per calendar day with
// that day's income, expense and visit totals.
type SnapshotService struct {
	mu            sync.Mutex
	db            *gorm.DB
	lastSnapshot  time.Time
	snapshotHour  int // Hour of day to take the snapshot (0-23)
	checkInterval time.Duration
}

func NewSnapshotService(db *gorm.DB, snapshotHour int) *SnapshotService {
	if snapshotHour < 0 || snapshotHour > 23 {
		snapshotHour = 23
	}
	return &SnapshotService{
		db:            db,
		snapshotHour:  snapshotHour,
		checkInterval: 15 * time.Minute,
	}
}

// Start begins the background snapshot worker.
func (s *SnapshotService) Start(ctx context.Context) {
	log.Println("Snapshot service started: will record daily clinic totals")

	s.checkAndSnapshot()

	ticker := time.NewTicker(s.checkInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Snapshot service stopping...")
			return
		case <-ticker.C:
			s.checkAndSnapshot()
		}
	}
}

// checkAndSnapshot takes today's snapshot when one is due and missing.
func (s *SnapshotService) checkAndSnapshot() {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	if s.hasSnapshotForDate(today) {
		return
	}

	if now.Hour() >= s.snapshotHour {
		if err := s.TakeSnapshot(); err != nil {
			log.Printf("Snapshot service: failed to take snapshot: %v", err)
		}
	}
}

func (s *SnapshotService) hasSnapshotForDate(date time.Time) bool {
	var count int64
	s.db.Model(&models.DailySnapshot{}).
		Where("snapshot_date >= ? AND snapshot_date < ?", date, date.AddDate(0, 0, 1)).
		Count(&count)
	return count > 0
}

// TakeSnapshot computes and upserts today's totals.
func (s *SnapshotService) TakeSnapshot() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	started := time.Now()
	now := time.Now()
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	next := day.AddDate(0, 0, 1)

	snapshot := models.DailySnapshot{SnapshotDate: day}

	sums := []struct {
		txType   models.TransactionType
		currency models.Currency
		dest     *float64
	}{
		{models.TransactionIncome, models.CurrencySSP, &snapshot.IncomeSSP},
		{models.TransactionIncome, models.CurrencyUSD, &snapshot.IncomeUSD},
		{models.TransactionExpense, models.CurrencySSP, &snapshot.ExpenseSSP},
		{models.TransactionExpense, models.CurrencyUSD, &snapshot.ExpenseUSD},
	}
	for _, q := range sums {
		if err := s.db.Model(&models.Transaction{}).
			Where("type = ? AND currency = ? AND date >= ? AND date < ?", q.txType, q.currency, day, next).
			Select("COALESCE(SUM(amount), 0)").Scan(q.dest).Error; err != nil {
			return err
		}
	}

	var visits int64
	s.db.Model(&models.PatientVisit{}).
		Where("date >= ? AND date < ?", day, next).
		Select("COALESCE(SUM(count), 0)").Scan(&visits)
	snapshot.PatientVisits = int(visits)

	var rows int64
	s.db.Model(&models.Transaction{}).
		Where("date >= ? AND date < ?", day, next).
		Count(&rows)
	snapshot.TransactionRows = int(rows)

	result := s.db.Where("snapshot_date = ?", day).
		Assign(models.DailySnapshot{
			IncomeSSP:       snapshot.IncomeSSP,
			IncomeUSD:       snapshot.IncomeUSD,
			ExpenseSSP:      snapshot.ExpenseSSP,
			ExpenseUSD:      snapshot.ExpenseUSD,
			PatientVisits:   snapshot.PatientVisits,
			TransactionRows: snapshot.TransactionRows,
		}).
		FirstOrCreate(&snapshot)
	if result.Error != nil {
		return result.Error
	}

	s.lastSnapshot = now
	metrics.SnapshotsTotal.Inc()
	metrics.SnapshotDuration.Observe(time.Since(started).Seconds())
	metrics.UpdateBusinessMetrics(s.db)

	log.Printf("Snapshot service: recorded totals for %s (income SSP %.2f, visits %d)",
		day.Format("2006-01-02"), snapshot.IncomeSSP, snapshot.PatientVisits)

	return nil
}

// History returns snapshots for a named period, oldest first.
func (s *SnapshotService) History(period string) ([]models.DailySnapshot, error) {
	now := time.Now()
	var startDate time.Time

	switch period {
	case "week":
		startDate = now.AddDate(0, 0, -7)
	case "month":
		startDate = now.AddDate(0, -1, 0)
	case "3month":
		startDate = now.AddDate(0, -3, 0)
	case "year":
		startDate = now.AddDate(-1, 0, 0)
	case "all":
		startDate = time.Time{}
	default:
		startDate = now.AddDate(0, -1, 0)
	}

	var snapshots []models.DailySnapshot
	query := s.db.Order("snapshot_date ASC")
	if !startDate.IsZero() {
		query = query.Where("snapshot_date >= ?", startDate)
	}
	if err := query.Find(&snapshots).Error; err != nil {
		return nil, err
	}
	return snapshots, nil
}
