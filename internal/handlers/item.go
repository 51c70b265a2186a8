package handlers

import (
	"encoding/base64"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/orgstock/inventory-api/internal/dto"
	apierrors "github.com/orgstock/inventory-api/internal/errors"
	"github.com/orgstock/inventory-api/internal/repository"
	"github.com/orgstock/inventory-api/internal/services"
	"github.com/orgstock/inventory-api/internal/utils"
)

const dateLayout = "2006-01-02"

// ItemHandler coordinates inventory item HTTP handlers.
type ItemHandler struct {
	itemService *services.ItemService
}

// NewItemHandler creates a new ItemHandler.
func NewItemHandler(itemService *services.ItemService) *ItemHandler {
	return &ItemHandler{
		itemService: itemService,
	}
}

// Create registers a new inventory item and derives its inventory number.
// Admin only.
func (h *ItemHandler) Create(c *gin.Context) {
	type CreateRequest struct {
		Name           string           `json:"name" binding:"required,max=255"`
		Description    string           `json:"description"`
		CategoryID     uint64           `json:"category_id" binding:"required"`
		RoomID         *uint64          `json:"room_id"`
		ConditionID    uint64           `json:"condition_id" binding:"required"`
		AssignedUserID *uint64          `json:"assigned_user_id"`
		Photo          string           `json:"photo"`
		PurchaseDate   *string          `json:"purchase_date"`
		PurchasePrice  *decimal.Decimal `json:"purchase_price"`
		WarrantyUntil  *string          `json:"warranty_until"`
	}

	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	photo, ok := decodePhoto(req.Photo)
	if !ok {
		apierrors.BadRequest(c, "Photo must be base64 encoded")
		return
	}
	purchaseDate, ok := parseDate(req.PurchaseDate)
	if !ok {
		apierrors.BadRequest(c, "purchase_date must use YYYY-MM-DD")
		return
	}
	warrantyUntil, ok := parseDate(req.WarrantyUntil)
	if !ok {
		apierrors.BadRequest(c, "warranty_until must use YYYY-MM-DD")
		return
	}

	item, err := h.itemService.Create(services.CreateItemInput{
		Name:           req.Name,
		Description:    req.Description,
		CategoryID:     req.CategoryID,
		RoomID:         req.RoomID,
		ConditionID:    req.ConditionID,
		AssignedUserID: req.AssignedUserID,
		Photo:          photo,
		PurchaseDate:   purchaseDate,
		PurchasePrice:  req.PurchasePrice,
		WarrantyUntil:  warrantyUntil,
	})
	if err != nil {
		respondItemError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToItemDTO(*item))
}

// List returns inventory items, optionally filtered by category, room,
// condition or assignee. With ?short=true a compact projection is
// returned instead of the full records.
func (h *ItemHandler) List(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	filter := repository.ItemFilter{
		Offset: params.Offset,
		Limit:  params.Limit,
	}
	var ok bool
	if filter.CategoryID, ok = utils.ParseOptionalUintQuery(c, "category_id"); !ok {
		apierrors.BadRequest(c, "Invalid category_id")
		return
	}
	if filter.RoomID, ok = utils.ParseOptionalUintQuery(c, "room_id"); !ok {
		apierrors.BadRequest(c, "Invalid room_id")
		return
	}
	if filter.ConditionID, ok = utils.ParseOptionalUintQuery(c, "condition_id"); !ok {
		apierrors.BadRequest(c, "Invalid condition_id")
		return
	}
	if filter.AssignedUserID, ok = utils.ParseOptionalUintQuery(c, "assigned_user_id"); !ok {
		apierrors.BadRequest(c, "Invalid assigned_user_id")
		return
	}

	items, total, err := h.itemService.List(filter)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	pagination := utils.PaginationResponse{
		Page:  params.Page,
		Limit: params.Limit,
		Total: total,
	}
	if c.Query("short") == "true" {
		c.JSON(http.StatusOK, gin.H{
			"items":      dto.ToItemShortDTOs(items),
			"pagination": pagination,
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"items":      dto.ToItemDTOs(items),
		"pagination": pagination,
	})
}

// ListByCondition returns all items currently in the named condition.
func (h *ItemHandler) ListByCondition(c *gin.Context) {
	items, err := h.itemService.ListByCondition(c.Param("name"))
	if err != nil {
		respondItemError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToItemDTOs(items))
}

// Get returns a single item by ID. With ?short=true the compact
// projection is returned.
func (h *ItemHandler) Get(c *gin.Context) {
	id, ok := utils.ParseID(c, "id")
	if !ok {
		apierrors.BadRequest(c, "Invalid item ID")
		return
	}

	item, err := h.itemService.GetByID(id)
	if err != nil {
		respondItemError(c, err)
		return
	}

	if c.Query("short") == "true" {
		c.JSON(http.StatusOK, dto.ToItemShortDTO(*item))
		return
	}
	c.JSON(http.StatusOK, dto.ToItemDTO(*item))
}

// Update applies a partial patch to an item. The inventory number is
// re-derived when the category or room changes. Admin only.
func (h *ItemHandler) Update(c *gin.Context) {
	id, ok := utils.ParseID(c, "id")
	if !ok {
		apierrors.BadRequest(c, "Invalid item ID")
		return
	}

	type UpdateRequest struct {
		Name              *string          `json:"name" binding:"omitempty,max=255"`
		Description       *string          `json:"description"`
		CategoryID        *uint64          `json:"category_id"`
		RoomID            *uint64          `json:"room_id"`
		ClearRoom         bool             `json:"clear_room"`
		ConditionID       *uint64          `json:"condition_id"`
		AssignedUserID    *uint64          `json:"assigned_user_id"`
		ClearAssignedUser bool             `json:"clear_assigned_user"`
		Photo             string           `json:"photo"`
		PurchaseDate      *string          `json:"purchase_date"`
		PurchasePrice     *decimal.Decimal `json:"purchase_price"`
		WarrantyUntil     *string          `json:"warranty_until"`
	}

	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	photo, ok := decodePhoto(req.Photo)
	if !ok {
		apierrors.BadRequest(c, "Photo must be base64 encoded")
		return
	}
	purchaseDate, ok := parseDate(req.PurchaseDate)
	if !ok {
		apierrors.BadRequest(c, "purchase_date must use YYYY-MM-DD")
		return
	}
	warrantyUntil, ok := parseDate(req.WarrantyUntil)
	if !ok {
		apierrors.BadRequest(c, "warranty_until must use YYYY-MM-DD")
		return
	}

	item, err := h.itemService.Update(id, services.UpdateItemInput{
		Name:              req.Name,
		Description:       req.Description,
		CategoryID:        req.CategoryID,
		RoomID:            req.RoomID,
		ClearRoom:         req.ClearRoom,
		ConditionID:       req.ConditionID,
		AssignedUserID:    req.AssignedUserID,
		ClearAssignedUser: req.ClearAssignedUser,
		Photo:             photo,
		PurchaseDate:      purchaseDate,
		PurchasePrice:     req.PurchasePrice,
		WarrantyUntil:     warrantyUntil,
	})
	if err != nil {
		respondItemError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToItemDTO(*item))
}

// WriteOff marks an item as written off. The transition is permanent.
// Admin only.
func (h *ItemHandler) WriteOff(c *gin.Context) {
	id, ok := utils.ParseID(c, "id")
	if !ok {
		apierrors.BadRequest(c, "Invalid item ID")
		return
	}

	item, err := h.itemService.WriteOff(id)
	if err != nil {
		respondItemError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToItemDTO(*item))
}

// Delete removes an item entirely. Admin only.
func (h *ItemHandler) Delete(c *gin.Context) {
	id, ok := utils.ParseID(c, "id")
	if !ok {
		apierrors.BadRequest(c, "Invalid item ID")
		return
	}

	if err := h.itemService.Delete(id); err != nil {
		respondItemError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item deleted",
	})
}

func decodePhoto(encoded string) ([]byte, bool) {
	if encoded == "" {
		return nil, true
	}
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, false
	}
	return data, true
}

func parseDate(raw *string) (*time.Time, bool) {
	if raw == nil || *raw == "" {
		return nil, true
	}
	t, err := time.Parse(dateLayout, *raw)
	if err != nil {
		return nil, false
	}
	return &t, true
}

func respondItemError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrItemNotFound):
		apierrors.NotFound(c, "Item not found")
	case errors.Is(err, services.ErrItemFieldsMissing):
		apierrors.BadRequest(c, "Item name, category and condition are required")
	case errors.Is(err, services.ErrItemWrittenOff):
		apierrors.Conflict(c, "Written-off items cannot be modified")
	case errors.Is(err, services.ErrNoWrittenOffState):
		apierrors.Conflict(c, "No written-off condition is configured")
	case errors.Is(err, services.ErrCategoryNotFound):
		apierrors.BadRequest(c, "Category does not exist")
	case errors.Is(err, services.ErrRoomNotFound):
		apierrors.BadRequest(c, "Room does not exist")
	case errors.Is(err, services.ErrConditionNotFound):
		apierrors.BadRequest(c, "Condition does not exist")
	case errors.Is(err, services.ErrAssigneeNotFound):
		apierrors.BadRequest(c, "Assigned user does not exist")
	case errors.Is(err, repository.ErrNumberConflict):
		apierrors.Conflict(c, "Could not allocate an inventory number, try again")
	default:
		apierrors.InternalError(c, "")
	}
}
