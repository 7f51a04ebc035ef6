package handler

import (
	financeapp "github.com/bakeryops/backend/internal/application/finance"
	"github.com/bakeryops/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PaymentHandler handles debt payment API endpoints
type PaymentHandler struct {
	BaseHandler
	paymentService *financeapp.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(paymentService *financeapp.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
	}
}

// Add records a payment received from a customer
func (h *PaymentHandler) Add(c *gin.Context) {
	receivedBy, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req financeapp.AddPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	payment, err := h.paymentService.AddPayment(c.Request.Context(), req, receivedBy)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, payment)
}

// List returns payments matching the filter
func (h *PaymentHandler) List(c *gin.Context) {
	var filter financeapp.PaymentListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.paymentService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// GetByID returns a single payment
func (h *PaymentHandler) GetByID(c *gin.Context) {
	paymentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid payment ID format")
		return
	}

	payment, err := h.paymentService.GetByID(c.Request.Context(), paymentID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, payment)
}

// ExpenseHandler handles expense API endpoints
type ExpenseHandler struct {
	BaseHandler
	expenseService *financeapp.ExpenseService
}

// NewExpenseHandler creates a new ExpenseHandler
func NewExpenseHandler(expenseService *financeapp.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{
		expenseService: expenseService,
	}
}

// Create records a business expense
func (h *ExpenseHandler) Create(c *gin.Context) {
	recordedBy, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req financeapp.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	expense, err := h.expenseService.Create(c.Request.Context(), req, recordedBy)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, expense)
}

// List returns expenses matching the filter
func (h *ExpenseHandler) List(c *gin.Context) {
	var filter financeapp.ExpenseListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.expenseService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// GetByID returns a single expense
func (h *ExpenseHandler) GetByID(c *gin.Context) {
	expenseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid expense ID format")
		return
	}

	expense, err := h.expenseService.GetByID(c.Request.Context(), expenseID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, expense)
}

// Update corrects an expense record
func (h *ExpenseHandler) Update(c *gin.Context) {
	expenseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid expense ID format")
		return
	}

	var req financeapp.UpdateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	expense, err := h.expenseService.Update(c.Request.Context(), expenseID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, expense)
}

// Delete removes an expense record
func (h *ExpenseHandler) Delete(c *gin.Context) {
	expenseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid expense ID format")
		return
	}

	if err := h.expenseService.Delete(c.Request.Context(), expenseID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
