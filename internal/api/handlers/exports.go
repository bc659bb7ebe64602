package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/25ayu25/BEGC-FinancialManagementSystem-sub002/internal/metrics"
	"github.com/25ayu25/BEGC-FinancialManagementSystem-sub002/internal/services"
)

type ExportHandler struct {
	exports *services.ExportService
}

func NewExportHandler(exports *services.ExportService) *ExportHandler {
	return &ExportHandler{exports: exports}
}

// TransactionsCSV serves GET /api/exports/transactions.csv?start&end.
func (h *ExportHandler) TransactionsCSV(c *gin.Context) {
	start, end, ok := windowQuery(c)
	if !ok {
		return
	}

	blob, err := h.exports.TransactionsCSV(start, end)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	metrics.ExportsTotal.WithLabelValues("csv").Inc()
	filename := fmt.Sprintf("transactions_%s_%s.csv", start.Format("20060102"), end.Format("20060102"))
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "text/csv", blob)
}

// TransactionsXLSX serves GET /api/exports/transactions.xlsx?start&end.
func (h *ExportHandler) TransactionsXLSX(c *gin.Context) {
	start, end, ok := windowQuery(c)
	if !ok {
		return
	}

	blob, err := h.exports.TransactionsXLSX(start, end)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	metrics.ExportsTotal.WithLabelValues("xlsx").Inc()
	filename := fmt.Sprintf("transactions_%s_%s.xlsx", start.Format("20060102"), end.Format("20060102"))
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", blob)
}

// MonthlyReport serves GET /api/exports/monthly-report?year&month as a
// printable HTML page; the client prints it to PDF.
func (h *ExportHandler) MonthlyReport(c *gin.Context) {
	var query struct {
		Year  int `form:"year" binding:"required"`
		Month int `form:"month" binding:"required,min=1,max=12"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	page, err := h.exports.MonthlyReportHTML(query.Year, query.Month)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	metrics.ExportsTotal.WithLabelValues("html").Inc()
	c.Data(http.StatusOK, "text/html; charset=utf-8", page)
}
