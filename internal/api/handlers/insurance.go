package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/25ayu25/BEGC-FinancialManagementSystem-sub002/internal/metrics"
	"github.com/25ayu25/BEGC-FinancialManagementSystem-sub002/internal/models"
	"github.com/25ayu25/BEGC-FinancialManagementSystem-sub002/internal/services"
)

type InsuranceHandler struct {
	db      *gorm.DB
	reports *services.ReportService
}

func NewInsuranceHandler(db *gorm.DB, reports *services.ReportService) *InsuranceHandler {
	return &InsuranceHandler{db: db, reports: reports}
}

// ListClaims serves GET /api/insurance-claims?provider&status&year.
func (h *InsuranceHandler) ListClaims(c *gin.Context) {
	query := h.db.Preload("Provider").Order("year DESC, month DESC")

	if p := c.Query("provider"); p != "" {
		query = query.Where("provider_id = ?", p)
	}
	if s := c.Query("status"); s != "" {
		query = query.Where("status = ?", s)
	}
	if y := c.Query("year"); y != "" {
		year, err := strconv.Atoi(y)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid year"})
			return
		}
		query = query.Where("year = ?", year)
	}

	var claims []models.InsuranceClaim
	if err := query.Find(&claims).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, claims)
}

// CreateClaim serves POST /api/insurance-claims.
func (h *InsuranceHandler) CreateClaim(c *gin.Context) {
	var req models.CreateClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var provider models.InsuranceProvider
	if err := h.db.First(&provider, "id = ?", req.ProviderID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown provider"})
		return
	}

	currency := models.CurrencySSP
	if req.Currency == string(models.CurrencyUSD) {
		currency = models.CurrencyUSD
	}

	claim := models.InsuranceClaim{
		ID:         uuid.New().String(),
		ProviderID: req.ProviderID,
		Year:       req.Year,
		Month:      req.Month,
		Amount:     req.Amount,
		Currency:   currency,
		Status:     models.ClaimPending,
		Notes:      req.Notes,
	}
	if err := h.db.Create(&claim).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	metrics.UpdateBusinessMetrics(h.db)
	c.JSON(http.StatusCreated, claim)
}

// UpdateClaimStatus serves PATCH /api/insurance-claims/:id/status.
func (h *InsuranceHandler) UpdateClaimStatus(c *gin.Context) {
	var req models.UpdateClaimStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var claim models.InsuranceClaim
	if err := h.db.First(&claim, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "claim not found"})
		return
	}

	updates := map[string]any{"status": req.Status}
	if req.Notes != "" {
		updates["notes"] = req.Notes
	}
	if req.Status == models.ClaimSubmitted && claim.SubmittedAt == nil {
		now := time.Now()
		updates["submitted_at"] = now
	}

	if err := h.db.Model(&claim).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	metrics.UpdateBusinessMetrics(h.db)
	c.JSON(http.StatusOK, claim)
}

// ListPayments serves GET /api/insurance-payments?provider.
func (h *InsuranceHandler) ListPayments(c *gin.Context) {
	query := h.db.Preload("Provider").Order("payment_date DESC")
	if p := c.Query("provider"); p != "" {
		query = query.Where("provider_id = ?", p)
	}

	var payments []models.InsurancePayment
	if err := query.Find(&payments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, payments)
}

// CreatePayment serves POST /api/insurance-payments.
func (h *InsuranceHandler) CreatePayment(c *gin.Context) {
	var req models.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	date, err := time.Parse("2006-01-02", req.PaymentDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "payment_date must be YYYY-MM-DD"})
		return
	}

	var provider models.InsuranceProvider
	if err := h.db.First(&provider, "id = ?", req.ProviderID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown provider"})
		return
	}

	currency := models.CurrencySSP
	if req.Currency == string(models.CurrencyUSD) {
		currency = models.CurrencyUSD
	}

	payment := models.InsurancePayment{
		ID:          uuid.New().String(),
		ProviderID:  req.ProviderID,
		ClaimID:     req.ClaimID,
		Amount:      req.Amount,
		Currency:    currency,
		PaymentDate: date,
		Reference:   req.Reference,
	}
	if err := h.db.Create(&payment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	metrics.UpdateBusinessMetrics(h.db)
	c.JSON(http.StatusCreated, payment)
}

// Balances serves GET /api/insurance-balances.
func (h *InsuranceHandler) Balances(c *gin.Context) {
	balances, err := h.reports.ProviderBalances()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, balances)
}

// Providers serves GET /api/insurance-providers.
func (h *InsuranceHandler) Providers(c *gin.Context) {
	var providers []models.InsuranceProvider
	if err := h.db.Order("name ASC").Find(&providers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, providers)
}
