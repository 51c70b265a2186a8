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

// RoomHandler coordinates room HTTP handlers.
type RoomHandler struct {
	roomService *services.RoomService
}

// NewRoomHandler creates a new RoomHandler.
func NewRoomHandler(roomService *services.RoomService) *RoomHandler {
	return &RoomHandler{
		roomService: roomService,
	}
}

// Create adds a new room. Admin only.
func (h *RoomHandler) Create(c *gin.Context) {
	type CreateRequest struct {
		Name      string `json:"name" binding:"required,max=100"`
		ShortName string `json:"short_name" binding:"required,max=10"`
	}

	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	room, err := h.roomService.Create(req.Name, req.ShortName)
	if err != nil {
		respondRoomError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToRoomDTO(*room))
}

// List returns all rooms.
func (h *RoomHandler) List(c *gin.Context) {
	rooms, err := h.roomService.List()
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, dto.ToRoomDTOs(rooms))
}

// Get returns a single room by ID.
func (h *RoomHandler) Get(c *gin.Context) {
	id, ok := utils.ParseID(c, "id")
	if !ok {
		apierrors.BadRequest(c, "Invalid room ID")
		return
	}

	room, err := h.roomService.GetByID(id)
	if err != nil {
		respondRoomError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToRoomDTO(*room))
}

// Update renames a room. Admin only.
func (h *RoomHandler) Update(c *gin.Context) {
	id, ok := utils.ParseID(c, "id")
	if !ok {
		apierrors.BadRequest(c, "Invalid room ID")
		return
	}

	type UpdateRequest struct {
		Name      *string `json:"name" binding:"omitempty,max=100"`
		ShortName *string `json:"short_name" binding:"omitempty,max=10"`
	}

	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	room, err := h.roomService.Update(id, req.Name, req.ShortName)
	if err != nil {
		respondRoomError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToRoomDTO(*room))
}

// Delete removes an empty room. Admin only.
func (h *RoomHandler) Delete(c *gin.Context) {
	id, ok := utils.ParseID(c, "id")
	if !ok {
		apierrors.BadRequest(c, "Invalid room ID")
		return
	}

	if err := h.roomService.Delete(id); err != nil {
		respondRoomError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Room deleted",
	})
}

func respondRoomError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrRoomNotFound):
		apierrors.NotFound(c, "Room not found")
	case errors.Is(err, services.ErrRoomNameTaken):
		apierrors.Conflict(c, "A room with this name or short name already exists")
	case errors.Is(err, services.ErrRoomFieldsMissing):
		apierrors.BadRequest(c, "Room name and short name are required")
	case errors.Is(err, services.ErrRoomInUse):
		apierrors.Conflict(c, "Room still holds inventory items")
	default:
		apierrors.InternalError(c, "")
	}
}
