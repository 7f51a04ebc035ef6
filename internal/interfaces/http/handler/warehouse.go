package handler

import (
	inventoryapp "github.com/bakeryops/backend/internal/application/inventory"
	"github.com/bakeryops/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// WarehouseHandler handles raw material and movement API endpoints
type WarehouseHandler struct {
	BaseHandler
	warehouseService *inventoryapp.WarehouseService
}

// NewWarehouseHandler creates a new WarehouseHandler
func NewWarehouseHandler(warehouseService *inventoryapp.WarehouseService) *WarehouseHandler {
	return &WarehouseHandler{
		warehouseService: warehouseService,
	}
}

// CreateMaterial registers a new raw material
func (h *WarehouseHandler) CreateMaterial(c *gin.Context) {
	var req inventoryapp.CreateMaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	material, err := h.warehouseService.CreateMaterial(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, material)
}

// ListMaterials returns raw materials matching the filter
func (h *WarehouseHandler) ListMaterials(c *gin.Context) {
	var filter inventoryapp.MaterialListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.warehouseService.ListMaterials(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// GetMaterial returns a single raw material
func (h *WarehouseHandler) GetMaterial(c *gin.Context) {
	materialID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid material ID format")
		return
	}

	material, err := h.warehouseService.GetMaterial(c.Request.Context(), materialID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, material)
}

// UpdateMaterial updates a raw material's details
func (h *WarehouseHandler) UpdateMaterial(c *gin.Context) {
	materialID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid material ID format")
		return
	}

	var req inventoryapp.UpdateMaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	material, err := h.warehouseService.UpdateMaterial(c.Request.Context(), materialID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, material)
}

// DeleteMaterial removes a raw material with no stock on hand
func (h *WarehouseHandler) DeleteMaterial(c *gin.Context) {
	materialID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid material ID format")
		return
	}

	if err := h.warehouseService.DeleteMaterial(c.Request.Context(), materialID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// AddMovement records an inbound or outbound warehouse movement
func (h *WarehouseHandler) AddMovement(c *gin.Context) {
	performedBy, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req inventoryapp.AddMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	movement, err := h.warehouseService.AddMovement(c.Request.Context(), req, performedBy)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, movement)
}

// ListMovements returns warehouse movements matching the filter
func (h *WarehouseHandler) ListMovements(c *gin.Context) {
	var filter inventoryapp.MovementListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.warehouseService.ListMovements(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// LowStock returns materials at or below their minimum stock level
func (h *WarehouseHandler) LowStock(c *gin.Context) {
	items, err := h.warehouseService.LowStockItems(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, items)
}
