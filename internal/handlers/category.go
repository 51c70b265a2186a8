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

// CategoryHandler coordinates inventory category HTTP handlers.
type CategoryHandler struct {
	categoryService *services.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(categoryService *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
	}
}

// Create adds a new category. Admin only.
func (h *CategoryHandler) Create(c *gin.Context) {
	type CreateRequest struct {
		Name        string `json:"name" binding:"required,max=100"`
		ShortName   string `json:"short_name" binding:"required,max=10"`
		Description string `json:"description"`
	}

	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	category, err := h.categoryService.Create(req.Name, req.ShortName, req.Description)
	if err != nil {
		respondCategoryError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToCategoryDTO(*category))
}

// List returns all categories.
func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.categoryService.List()
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, dto.ToCategoryDTOs(categories))
}

// Get returns a single category by ID.
func (h *CategoryHandler) Get(c *gin.Context) {
	id, ok := utils.ParseID(c, "id")
	if !ok {
		apierrors.BadRequest(c, "Invalid category ID")
		return
	}

	category, err := h.categoryService.GetByID(id)
	if err != nil {
		respondCategoryError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCategoryDTO(*category))
}

// Update applies a partial patch to a category. Admin only.
func (h *CategoryHandler) Update(c *gin.Context) {
	id, ok := utils.ParseID(c, "id")
	if !ok {
		apierrors.BadRequest(c, "Invalid category ID")
		return
	}

	type UpdateRequest struct {
		Name        *string `json:"name" binding:"omitempty,max=100"`
		ShortName   *string `json:"short_name" binding:"omitempty,max=10"`
		Description *string `json:"description"`
	}

	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	category, err := h.categoryService.Update(id, req.Name, req.ShortName, req.Description)
	if err != nil {
		respondCategoryError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCategoryDTO(*category))
}

// Delete removes an unused category. Admin only.
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, ok := utils.ParseID(c, "id")
	if !ok {
		apierrors.BadRequest(c, "Invalid category ID")
		return
	}

	if err := h.categoryService.Delete(id); err != nil {
		respondCategoryError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Category deleted",
	})
}

func respondCategoryError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrCategoryNotFound):
		apierrors.NotFound(c, "Category not found")
	case errors.Is(err, services.ErrCategoryNameTaken):
		apierrors.Conflict(c, "A category with this name or short name already exists")
	case errors.Is(err, services.ErrCategoryFieldsMissing):
		apierrors.BadRequest(c, "Category name and short name are required")
	case errors.Is(err, services.ErrCategoryInUse):
		apierrors.Conflict(c, "Category still holds inventory items")
	default:
		apierrors.InternalError(c, "")
	}
}
