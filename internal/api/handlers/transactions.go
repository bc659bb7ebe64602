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

const maxListLimit = 500

type TransactionHandler struct {
	db      *gorm.DB
	reports *services.ReportService
	imports *services.ImportService
}

func NewTransactionHandler(db *gorm.DB, reports *services.ReportService, imports *services.ImportService) *TransactionHandler {
	return &TransactionHandler{db: db, reports: reports, imports: imports}
}

// List serves GET /api/transactions?start&end&type&limit.
func (h *TransactionHandler) List(c *gin.Context) {
	start, end, ok := windowQuery(c)
	if !ok {
		return
	}

	limit := 200
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			if n > maxListLimit {
				n = maxListLimit
			}
			limit = n
		}
	}

	query := h.db.Preload("Department").
		Where("date >= ? AND date < ?", start, end.AddDate(0, 0, 1)).
		Order("date DESC").
		Limit(limit)
	if t := c.Query("type"); t == string(models.TransactionIncome) || t == string(models.TransactionExpense) {
		query = query.Where("type = ?", t)
	}

	var txs []models.Transaction
	if err := query.Find(&txs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, txs)
}

// Create serves POST /api/transactions.
func (h *TransactionHandler) Create(c *gin.Context, createdBy string) {
	var req models.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return
	}

	currency := models.CurrencySSP
	if req.Currency == string(models.CurrencyUSD) {
		currency = models.CurrencyUSD
	}

	tx := models.Transaction{
		ID:           uuid.New().String(),
		Date:         date,
		Type:         models.TransactionType(req.Type),
		Amount:       req.Amount,
		Currency:     currency,
		DepartmentID: req.DepartmentID,
		Category:     req.Category,
		ProviderID:   req.ProviderID,
		Description:  req.Description,
		CreatedBy:    createdBy,
	}
	if err := h.db.Create(&tx).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	h.reports.InvalidateCache()
	metrics.UpdateBusinessMetrics(h.db)
	c.JSON(http.StatusCreated, tx)
}

// Delete serves DELETE /api/transactions/:id.
func (h *TransactionHandler) Delete(c *gin.Context) {
	result := h.db.Delete(&models.Transaction{}, "id = ?", c.Param("id"))
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": result.Error.Error()})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "transaction not found"})
		return
	}

	h.reports.InvalidateCache()
	metrics.UpdateBusinessMetrics(h.db)
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// Import serves POST /api/imports/transactions with a CSV body or
// multipart "file" field.
func (h *TransactionHandler) Import(c *gin.Context, createdBy string) {
	reader := c.Request.Body
	if file, err := c.FormFile("file"); err == nil {
		f, err := file.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unable to read uploaded file"})
			return
		}
		defer f.Close()
		reader = f
	}

	result, err := h.imports.ImportTransactionsCSV(reader, createdBy)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.reports.InvalidateCache()
	metrics.UpdateBusinessMetrics(h.db)
	c.JSON(http.StatusOK, result)
}

// RecordVisits serves POST /api/patient-volume — a daily visit tally for
// one department.
func (h *TransactionHandler) RecordVisits(c *gin.Context) {
	var req struct {
		Date         string `json:"date" binding:"required"`
		DepartmentID string `json:"department_id"`
		Count        int    `json:"count" binding:"required,gt=0"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return
	}

	visit := models.PatientVisit{
		Date:         date,
		DepartmentID: req.DepartmentID,
		Count:        req.Count,
	}
	if err := h.db.Create(&visit).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	h.reports.InvalidateCache()
	c.JSON(http.StatusCreated, visit)
}

// Departments serves GET /api/departments.
func (h *TransactionHandler) Departments(c *gin.Context) {
	var deps []models.Department
	if err := h.db.Order("name ASC").Find(&deps).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, deps)
}
