package models

import (
	"time"
)

type TransactionType string

const (
	TransactionIncome  TransactionType = "income"
	TransactionExpense TransactionType = "expense"
)

type Currency string

const (
	CurrencySSP Currency = "SSP"
	CurrencyUSD Currency = "USD"
)

// Transaction is a single income or expense entry. Income rows carry the
// department that earned them; expense rows carry an expense category.
type Transaction struct {
	ID           string          `json:"id" gorm:"primaryKey"`
	Date         time.Time       `json:"date" gorm:"not null;index"`
	Type         TransactionType `json:"type" gorm:"not null;index"`
	Amount       float64         `json:"amount" gorm:"not null"`
	Currency     Currency        `json:"currency" gorm:"not null;default:'SSP'"`
	DepartmentID string          `json:"department_id" gorm:"index"`
	Department   *Department     `json:"department,omitempty" gorm:"foreignKey:DepartmentID"`
	Category     string          `json:"category" gorm:"index"` // expense category, empty for income
	ProviderID   string          `json:"provider_id" gorm:"index"`
	Description  string          `json:"description"`
	CreatedBy    string          `json:"created_by"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// Department is a clinic revenue center (consultation, laboratory, ...).
type Department struct {
	ID   string `json:"id" gorm:"primaryKey"`
	Code string `json:"code" gorm:"uniqueIndex;not null"`
	Name string `json:"name" gorm:"not null"`
}

// PatientVisit is a daily visit tally for one department.
type PatientVisit struct {
	ID           uint        `json:"id" gorm:"primaryKey;autoIncrement"`
	Date         time.Time   `json:"date" gorm:"not null;index"`
	DepartmentID string      `json:"department_id" gorm:"index"`
	Department   *Department `json:"department,omitempty" gorm:"foreignKey:DepartmentID"`
	Count        int         `json:"count" gorm:"not null;default:0"`
	CreatedAt    time.Time   `json:"created_at"`
}

type CreateTransactionRequest struct {
	Date         string  `json:"date" binding:"required"`
	Type         string  `json:"type" binding:"required,oneof=income expense"`
	Amount       float64 `json:"amount" binding:"required,gt=0"`
	Currency     string  `json:"currency"`
	DepartmentID string  `json:"department_id"`
	Category     string  `json:"category"`
	ProviderID   string  `json:"provider_id"`
	Description  string  `json:"description"`
}
