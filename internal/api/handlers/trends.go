package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/25ayu25/BEGC-FinancialManagementSystem-sub002/internal/models"
	"github.com/25ayu25/BEGC-FinancialManagementSystem-sub002/internal/services"
)

type TrendHandler struct {
	reports   *services.ReportService
	snapshots *services.SnapshotService
}

func NewTrendHandler(reports *services.ReportService, snapshots *services.SnapshotService) *TrendHandler {
	return &TrendHandler{reports: reports, snapshots: snapshots}
}

// IncomeTrend serves GET /api/income-trends/:year/:month — one daily
// income bucket per day of the month.
func (h *TrendHandler) IncomeTrend(c *gin.Context) {
	year, month, ok := yearMonthParams(c)
	if !ok {
		return
	}

	trend, err := h.reports.IncomeTrend(year, month, currencyQuery(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, trend)
}

// MonthlyRevenue serves GET /api/trends/monthly-revenue?months=N.
func (h *TrendHandler) MonthlyRevenue(c *gin.Context) {
	months := 12
	if v := c.Query("months"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 60 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "months must be between 1 and 60"})
			return
		}
		months = n
	}

	trend, err := h.reports.MonthlyRevenue(months, currencyQuery(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, trend)
}

// PatientVolume serves GET /api/patient-volume/period/:year/:month.
func (h *TrendHandler) PatientVolume(c *gin.Context) {
	year, month, ok := yearMonthParams(c)
	if !ok {
		return
	}

	trend, err := h.reports.PatientVolume(year, month)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, trend)
}

// SnapshotHistory serves GET /api/snapshots?period=week|month|3month|year|all.
func (h *TrendHandler) SnapshotHistory(c *gin.Context) {
	period := c.DefaultQuery("period", "month")
	snapshots, err := h.snapshots.History(period)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"period": period, "snapshots": snapshots})
}

// yearMonthParams parses and validates :year/:month path params, writing
// the error response itself on failure.
func yearMonthParams(c *gin.Context) (int, int, bool) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil || year < 2000 || year > 2100 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid year"})
		return 0, 0, false
	}
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil || month < 1 || month > 12 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid month"})
		return 0, 0, false
	}
	return year, month, true
}

func currencyQuery(c *gin.Context) models.Currency {
	switch c.Query("currency") {
	case "USD":
		return models.CurrencyUSD
	case "SSP":
		return models.CurrencySSP
	default:
		return ""
	}
}

// windowQuery resolves optional start/end query params, defaulting to
// the current calendar month.
func windowQuery(c *gin.Context) (time.Time, time.Time, bool) {
	now := time.Now().UTC()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)

	if v := c.Query("start"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "start must be YYYY-MM-DD"})
			return time.Time{}, time.Time{}, false
		}
		start = t
	}
	if v := c.Query("end"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "end must be YYYY-MM-DD"})
			return time.Time{}, time.Time{}, false
		}
		end = t
	}
	if end.Before(start) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "end must not precede start"})
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}
