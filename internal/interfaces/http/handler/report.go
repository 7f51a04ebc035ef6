package handler

import (
	"strconv"
	"time"

	reportapp "github.com/bakeryops/backend/internal/application/report"
	"github.com/gin-gonic/gin"
)

// ReportHandler handles dashboard and report API endpoints
type ReportHandler struct {
	BaseHandler
	reportService *reportapp.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *reportapp.ReportService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
	}
}

// Dashboard returns the aggregated dashboard statistics
func (h *ReportHandler) Dashboard(c *gin.Context) {
	stats, err := h.reportService.Dashboard(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, stats)
}

// Monthly returns the combined sales and expense report for a month.
// Defaults to the current month when year/month are omitted.
func (h *ReportHandler) Monthly(c *gin.Context) {
	year, month, ok := h.parseYearMonth(c)
	if !ok {
		return
	}

	result, err := h.reportService.Monthly(c.Request.Context(), year, month)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// MonthlyExpenses returns the per-category expense breakdown for a month
func (h *ReportHandler) MonthlyExpenses(c *gin.Context) {
	year, month, ok := h.parseYearMonth(c)
	if !ok {
		return
	}

	result, err := h.reportService.MonthlyExpenses(c.Request.Context(), year, month)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

func (h *ReportHandler) parseYearMonth(c *gin.Context) (int, int, bool) {
	now := time.Now()
	year := now.Year()
	month := int(now.Month())

	if yearStr := c.Query("year"); yearStr != "" {
		y, err := strconv.Atoi(yearStr)
		if err != nil {
			h.BadRequest(c, "Invalid year")
			return 0, 0, false
		}
		year = y
	}
	if monthStr := c.Query("month"); monthStr != "" {
		m, err := strconv.Atoi(monthStr)
		if err != nil {
			h.BadRequest(c, "Invalid month")
			return 0, 0, false
		}
		month = m
	}

	return year, month, true
}
