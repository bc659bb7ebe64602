package models

import (
	"time"
)

type ClaimStatus string

const (
	ClaimPending   ClaimStatus = "pending"
	ClaimSubmitted ClaimStatus = "submitted"
	ClaimPaid      ClaimStatus = "paid"
	ClaimRejected  ClaimStatus = "rejected"
)

// InsuranceProvider is a payer the clinic bills (CIC, UAP, ...).
type InsuranceProvider struct {
	ID   string `json:"id" gorm:"primaryKey"`
	Code string `json:"code" gorm:"uniqueIndex;not null"`
	Name string `json:"name" gorm:"not null"`
}

// InsuranceClaim is one month's claim against a provider.
type InsuranceClaim struct {
	ID          string             `json:"id" gorm:"primaryKey"`
	ProviderID  string             `json:"provider_id" gorm:"not null;index"`
	Provider    *InsuranceProvider `json:"provider,omitempty" gorm:"foreignKey:ProviderID"`
	Year        int                `json:"year" gorm:"not null;index"`
	Month       int                `json:"month" gorm:"not null;index"`
	Amount      float64            `json:"amount" gorm:"not null"`
	Currency    Currency           `json:"currency" gorm:"not null;default:'SSP'"`
	Status      ClaimStatus        `json:"status" gorm:"not null;default:'pending';index"`
	SubmittedAt *time.Time         `json:"submitted_at"`
	Notes       string             `json:"notes"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// InsurancePayment records money received from a provider, optionally
// tied to a specific claim.
type InsurancePayment struct {
	ID          string             `json:"id" gorm:"primaryKey"`
	ProviderID  string             `json:"provider_id" gorm:"not null;index"`
	Provider    *InsuranceProvider `json:"provider,omitempty" gorm:"foreignKey:ProviderID"`
	ClaimID     string             `json:"claim_id" gorm:"index"`
	Amount      float64            `json:"amount" gorm:"not null"`
	Currency    Currency           `json:"currency" gorm:"not null;default:'SSP'"`
	PaymentDate time.Time          `json:"payment_date" gorm:"not null;index"`
	Reference   string             `json:"reference"`
	CreatedAt   time.Time          `json:"created_at"`
}

// ProviderBalance is the derived claimed/paid/outstanding position for
// one provider.
type ProviderBalance struct {
	ProviderID   string  `json:"provider_id"`
	ProviderName string  `json:"provider_name"`
	TotalClaimed float64 `json:"total_claimed"`
	TotalPaid    float64 `json:"total_paid"`
	Outstanding  float64 `json:"outstanding"`
	OpenClaims   int     `json:"open_claims"`
}

type CreateClaimRequest struct {
	ProviderID string  `json:"provider_id" binding:"required"`
	Year       int     `json:"year" binding:"required"`
	Month      int     `json:"month" binding:"required,min=1,max=12"`
	Amount     float64 `json:"amount" binding:"required,gt=0"`
	Currency   string  `json:"currency"`
	Notes      string  `json:"notes"`
}

type UpdateClaimStatusRequest struct {
	Status ClaimStatus `json:"status" binding:"required,oneof=pending submitted paid rejected"`
	Notes  string      `json:"notes"`
}

type CreatePaymentRequest struct {
	ProviderID  string  `json:"provider_id" binding:"required"`
	ClaimID     string  `json:"claim_id"`
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	Currency    string  `json:"currency"`
	PaymentDate string  `json:"payment_date" binding:"required"`
	Reference   string  `json:"reference"`
}
