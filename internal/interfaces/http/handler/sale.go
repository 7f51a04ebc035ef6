package handler

import (
	tradeapp "github.com/bakeryops/backend/internal/application/trade"
	"github.com/bakeryops/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SaleHandler handles sales API endpoints
type SaleHandler struct {
	BaseHandler
	salesService *tradeapp.SalesService
}

// NewSaleHandler creates a new SaleHandler
func NewSaleHandler(salesService *tradeapp.SalesService) *SaleHandler {
	return &SaleHandler{
		salesService: salesService,
	}
}

// Create records a new sale on behalf of the authenticated seller
func (h *SaleHandler) Create(c *gin.Context) {
	soldBy, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req tradeapp.CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	sale, err := h.salesService.Create(c.Request.Context(), req, soldBy)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, sale)
}

// List returns sales matching the filter
func (h *SaleHandler) List(c *gin.Context) {
	var filter tradeapp.SaleListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.salesService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// GetByID returns a single sale with its items
func (h *SaleHandler) GetByID(c *gin.Context) {
	saleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid sale ID format")
		return
	}

	sale, err := h.salesService.GetByID(c.Request.Context(), saleID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, sale)
}

// ReturnItems processes a return against a sale
func (h *SaleHandler) ReturnItems(c *gin.Context) {
	saleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid sale ID format")
		return
	}

	var req tradeapp.ReturnItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.salesService.ReturnItems(c.Request.Context(), saleID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// TodaysSummary returns today's sales totals
func (h *SaleHandler) TodaysSummary(c *gin.Context) {
	summary, err := h.salesService.TodaysSummary(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, summary)
}
