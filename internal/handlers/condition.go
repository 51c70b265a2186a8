package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/orgstock/inventory-api/internal/dto"
	apierrors "github.com/orgstock/inventory-api/internal/errors"
	"github.com/orgstock/inventory-api/internal/services"
	"github.com/orgstock/inventory-api/internal/utils"
)

// ConditionHandler coordinates inventory condition HTTP handlers.
type ConditionHandler struct {
	conditionService *services.ConditionService
}

// NewConditionHandler creates a new ConditionHandler.
func NewConditionHandler(conditionService *services.ConditionService) *ConditionHandler {
	return &ConditionHandler{
		conditionService: conditionService,
	}
}

// Create adds a new condition. Admin only.
func (h *ConditionHandler) Create(c *gin.Context) {
	type CreateRequest struct {
		Name        string `json:"name" binding:"required,max=100"`
		Description string `json:"description"`
	}

	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	condition, err := h.conditionService.Create(req.Name, req.Description)
	if err != nil {
		respondConditionError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToConditionDTO(*condition))
}

// List returns all conditions.
func (h *ConditionHandler) List(c *gin.Context) {
	conditions, err := h.conditionService.List()
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, dto.ToConditionDTOs(conditions))
}

// Get returns a single condition by ID.
func (h *ConditionHandler) Get(c *gin.Context) {
	id, ok := utils.ParseID(c, "id")
	if !ok {
		apierrors.BadRequest(c, "Invalid condition ID")
		return
	}

	condition, err := h.conditionService.GetByID(id)
	if err != nil {
		respondConditionError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToConditionDTO(*condition))
}

// Update applies a partial patch to a condition. Admin only.
func (h *ConditionHandler) Update(c *gin.Context) {
	id, ok := utils.ParseID(c, "id")
	if !ok {
		apierrors.BadRequest(c, "Invalid condition ID")
		return
	}

	type UpdateRequest struct {
		Name        *string `json:"name" binding:"omitempty,max=100"`
		Description *string `json:"description"`
	}

	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	condition, err := h.conditionService.Update(id, req.Name, req.Description)
	if err != nil {
		respondConditionError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToConditionDTO(*condition))
}

// Delete removes an unused condition. Admin only.
func (h *ConditionHandler) Delete(c *gin.Context) {
	id, ok := utils.ParseID(c, "id")
	if !ok {
		apierrors.BadRequest(c, "Invalid condition ID")
		return
	}

	if err := h.conditionService.Delete(id); err != nil {
		respondConditionError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Condition deleted",
	})
}

func respondConditionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrConditionNotFound):
		apierrors.NotFound(c, "Condition not found")
	case errors.Is(err, services.ErrConditionNameTaken):
		apierrors.Conflict(c, "A condition with this name already exists")
	case errors.Is(err, services.ErrConditionNameMissing):
		apierrors.BadRequest(c, "Condition name is required")
	case errors.Is(err, services.ErrConditionInUse):
		apierrors.Conflict(c, "Condition is still assigned to inventory items")
	default:
		apierrors.InternalError(c, "")
	}
}
