package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/orgstock/inventory-api/internal/dto"
	apierrors "github.com/orgstock/inventory-api/internal/errors"
	"github.com/orgstock/inventory-api/internal/models"
	"github.com/orgstock/inventory-api/internal/services"
	"github.com/orgstock/inventory-api/internal/utils"
)

// ConsumableHandler coordinates consumable stock HTTP handlers.
type ConsumableHandler struct {
	consumableService *services.ConsumableService
}

// NewConsumableHandler creates a new ConsumableHandler.
func NewConsumableHandler(consumableService *services.ConsumableService) *ConsumableHandler {
	return &ConsumableHandler{
		consumableService: consumableService,
	}
}

// Create adds a new consumable. Admin only.
func (h *ConsumableHandler) Create(c *gin.Context) {
	type CreateRequest struct {
		Name        string `json:"name" binding:"required,max=255"`
		Description string `json:"description"`
		Quantity    int    `json:"quantity"`
		MinQuantity *int   `json:"min_quantity"`
		Unit        string `json:"unit"`
	}

	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	consumable, err := h.consumableService.Create(services.CreateConsumableInput{
		Name:        req.Name,
		Description: req.Description,
		Quantity:    req.Quantity,
		MinQuantity: req.MinQuantity,
		Unit:        req.Unit,
	})
	if err != nil {
		respondConsumableError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToConsumableDTO(*consumable))
}

// List returns all consumables.
func (h *ConsumableHandler) List(c *gin.Context) {
	consumables, err := h.consumableService.List()
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, dto.ToConsumableDTOs(consumables))
}

// ListLowStock returns consumables at or below their minimum quantity.
func (h *ConsumableHandler) ListLowStock(c *gin.Context) {
	consumables, err := h.consumableService.ListLowStock()
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, dto.ToConsumableDTOs(consumables))
}

// Get returns a single consumable by ID.
func (h *ConsumableHandler) Get(c *gin.Context) {
	id, ok := utils.ParseID(c, "id")
	if !ok {
		apierrors.BadRequest(c, "Invalid consumable ID")
		return
	}

	consumable, err := h.consumableService.GetByID(id)
	if err != nil {
		respondConsumableError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToConsumableDTO(*consumable))
}

// Update applies a partial patch to a consumable. Admin only.
func (h *ConsumableHandler) Update(c *gin.Context) {
	id, ok := utils.ParseID(c, "id")
	if !ok {
		apierrors.BadRequest(c, "Invalid consumable ID")
		return
	}

	type UpdateRequest struct {
		Name        *string `json:"name" binding:"omitempty,max=255"`
		Description *string `json:"description"`
		Quantity    *int    `json:"quantity"`
		MinQuantity *int    `json:"min_quantity"`
		Unit        *string `json:"unit"`
	}

	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	consumable, err := h.consumableService.Update(id, services.UpdateConsumableInput{
		Name:        req.Name,
		Description: req.Description,
		Quantity:    req.Quantity,
		MinQuantity: req.MinQuantity,
		Unit:        req.Unit,
	})
	if err != nil {
		respondConsumableError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToConsumableDTO(*consumable))
}

// Delete removes a consumable. Admin only.
func (h *ConsumableHandler) Delete(c *gin.Context) {
	id, ok := utils.ParseID(c, "id")
	if !ok {
		apierrors.BadRequest(c, "Invalid consumable ID")
		return
	}

	if err := h.consumableService.Delete(id); err != nil {
		respondConsumableError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Consumable deleted",
	})
}

// Increase adds stock to a consumable.
func (h *ConsumableHandler) Increase(c *gin.Context) {
	h.adjust(c, h.consumableService.Increase)
}

// Decrease takes stock from a consumable, clamping at zero.
func (h *ConsumableHandler) Decrease(c *gin.Context) {
	h.adjust(c, h.consumableService.Decrease)
}

func (h *ConsumableHandler) adjust(c *gin.Context, op func(uint64, int) (*models.Consumable, error)) {
	id, ok := utils.ParseID(c, "id")
	if !ok {
		apierrors.BadRequest(c, "Invalid consumable ID")
		return
	}

	type AdjustRequest struct {
		Amount int `json:"amount" binding:"required"`
	}

	var req AdjustRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	consumable, err := op(id, req.Amount)
	if err != nil {
		respondConsumableError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToConsumableDTO(*consumable))
}

func respondConsumableError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrConsumableNotFound):
		apierrors.NotFound(c, "Consumable not found")
	case errors.Is(err, services.ErrConsumableNameMissing):
		apierrors.BadRequest(c, "Consumable name is required")
	case errors.Is(err, services.ErrConsumableBadQuantity):
		apierrors.BadRequest(c, "Quantities must not be negative")
	case errors.Is(err, services.ErrConsumableBadAdjustment):
		apierrors.BadRequest(c, "Adjustment amount must be positive")
	default:
		apierrors.InternalError(c, "")
	}
}
