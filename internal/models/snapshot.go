package models

import (
	"time"
)

// DailySnapshot stores end-of-day totals for historical tracking. One row
// per calendar day, written by the snapshot worker.
type DailySnapshot struct {
	ID              uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	SnapshotDate    time.Time `json:"snapshot_date" gorm:"uniqueIndex;not null"`
	IncomeSSP       float64   `json:"income_ssp"`
	IncomeUSD       float64   `json:"income_usd"`
	ExpenseSSP      float64   `json:"expense_ssp"`
	ExpenseUSD      float64   `json:"expense_usd"`
	PatientVisits   int       `json:"patient_visits"`
	TransactionRows int       `json:"transaction_rows"`
	CreatedAt       time.Time `json:"created_at"`
}
