package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/25ayu25/BEGC-FinancialManagementSystem-sub002/internal/services"
)

type DashboardHandler struct {
	reports *services.ReportService
}

func NewDashboardHandler(reports *services.ReportService) *DashboardHandler {
	return &DashboardHandler{reports: reports}
}

// Summary serves GET /api/dashboard/summary?start&end.
func (h *DashboardHandler) Summary(c *gin.Context) {
	start, end, ok := windowQuery(c)
	if !ok {
		return
	}

	summary, err := h.reports.Summary(start, end)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, summary)
}

// DepartmentBreakdown serves GET /api/departments/breakdown?start&end.
func (h *DashboardHandler) DepartmentBreakdown(c *gin.Context) {
	start, end, ok := windowQuery(c)
	if !ok {
		return
	}

	breakdown, err := h.reports.DepartmentBreakdown(start, end, currencyQuery(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, breakdown)
}

// ExpenseBreakdown serves GET /api/expenses/breakdown?start&end.
func (h *DashboardHandler) ExpenseBreakdown(c *gin.Context) {
	start, end, ok := windowQuery(c)
	if !ok {
		return
	}

	breakdown, err := h.reports.ExpenseBreakdown(start, end, currencyQuery(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, breakdown)
}
