package handlers

import (
	"encoding/base64"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/orgstock/inventory-api/internal/dto"
	apierrors "github.com/orgstock/inventory-api/internal/errors"
	"github.com/orgstock/inventory-api/internal/middleware"
	"github.com/orgstock/inventory-api/internal/services"
	"github.com/orgstock/inventory-api/internal/utils"
)

// UserHandler coordinates user management HTTP handlers.
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// Create registers a new user. Admin only.
func (h *UserHandler) Create(c *gin.Context) {
	type CreateRequest struct {
		Username    string `json:"username" binding:"required,min=3,max=50"`
		Password    string `json:"password" binding:"required"`
		Email       string `json:"email" binding:"required,email"`
		FullName    string `json:"full_name" binding:"required"`
		PhoneNumber string `json:"phone_number" binding:"required"`
		IsAdmin     bool   `json:"is_admin"`
		Avatar      string `json:"avatar"`
	}

	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	avatar, ok := decodeAvatar(req.Avatar)
	if !ok {
		apierrors.BadRequest(c, "Avatar must be base64 encoded")
		return
	}

	user, err := h.userService.Create(services.CreateUserInput{
		Username:    req.Username,
		Password:    req.Password,
		Email:       req.Email,
		FullName:    req.FullName,
		PhoneNumber: req.PhoneNumber,
		IsAdmin:     req.IsAdmin,
		Avatar:      avatar,
	})
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToUserDTO(*user))
}

// List returns a page of users.
func (h *UserHandler) List(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	users, total, err := h.userService.List(params.Offset, params.Limit)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users": dto.ToUserDTOs(users),
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// Get returns a single user by ID.
func (h *UserHandler) Get(c *gin.Context) {
	id, ok := utils.ParseID(c, "id")
	if !ok {
		apierrors.BadRequest(c, "Invalid user ID")
		return
	}

	user, err := h.userService.GetByID(id)
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// Update applies a partial patch to a user. Admin only.
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := utils.ParseID(c, "id")
	if !ok {
		apierrors.BadRequest(c, "Invalid user ID")
		return
	}

	type UpdateRequest struct {
		Username    *string `json:"username" binding:"omitempty,min=3,max=50"`
		Email       *string `json:"email" binding:"omitempty,email"`
		FullName    *string `json:"full_name"`
		PhoneNumber *string `json:"phone_number"`
	}

	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.userService.Update(id, services.UpdateUserInput{
		Username:    req.Username,
		Email:       req.Email,
		FullName:    req.FullName,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// Delete removes a user. Soft delete by default, hard delete with
// ?hard=true. Admin only.
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := utils.ParseID(c, "id")
	if !ok {
		apierrors.BadRequest(c, "Invalid user ID")
		return
	}

	hard := c.Query("hard") == "true"
	if err := h.userService.Delete(id, !hard); err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "User deleted",
	})
}

// ChangePassword changes a user's password. Users change their own
// password with the old one, admins may set anyone's directly.
func (h *UserHandler) ChangePassword(c *gin.Context) {
	id, ok := utils.ParseID(c, "id")
	if !ok {
		apierrors.BadRequest(c, "Invalid user ID")
		return
	}

	claims, exists := middleware.GetClaims(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type PasswordRequest struct {
		OldPassword string `json:"old_password"`
		NewPassword string `json:"new_password" binding:"required"`
	}

	var req PasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	var err error
	switch {
	case claims.IsAdmin && claims.UserID != id:
		err = h.userService.ChangePasswordAsAdmin(id, req.NewPassword)
	case claims.UserID == id:
		err = h.userService.ChangePassword(id, req.OldPassword, req.NewPassword)
	default:
		apierrors.Forbidden(c, "")
		return
	}
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Password changed",
	})
}

// ChangeRole toggles the admin flag on a user. Admin only.
func (h *UserHandler) ChangeRole(c *gin.Context) {
	id, ok := utils.ParseID(c, "id")
	if !ok {
		apierrors.BadRequest(c, "Invalid user ID")
		return
	}

	type RoleRequest struct {
		IsAdmin *bool `json:"is_admin" binding:"required"`
	}

	var req RoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.userService.ChangeRole(id, *req.IsAdmin); err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Role updated",
	})
}

// ChangeAvatar replaces a user's avatar image.
func (h *UserHandler) ChangeAvatar(c *gin.Context) {
	id, ok := utils.ParseID(c, "id")
	if !ok {
		apierrors.BadRequest(c, "Invalid user ID")
		return
	}

	claims, exists := middleware.GetClaims(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}
	if !claims.IsAdmin && claims.UserID != id {
		apierrors.Forbidden(c, "")
		return
	}

	type AvatarRequest struct {
		Avatar string `json:"avatar" binding:"required"`
	}

	var req AvatarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	avatar, ok := decodeAvatar(req.Avatar)
	if !ok {
		apierrors.BadRequest(c, "Avatar must be base64 encoded")
		return
	}

	if err := h.userService.ChangeAvatar(id, avatar); err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Avatar updated",
	})
}

func decodeAvatar(encoded string) ([]byte, bool) {
	if encoded == "" {
		return nil, true
	}
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, false
	}
	return data, true
}

func respondUserError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, "User not found")
	case errors.Is(err, services.ErrUserIdentityTaken):
		apierrors.Conflict(c, "A user with matching details already exists")
	case errors.Is(err, services.ErrUserFieldsMissing):
		apierrors.BadRequest(c, "All user fields are required")
	case errors.Is(err, services.ErrPasswordTooShort):
		apierrors.BadRequest(c, "Password is too short")
	case errors.Is(err, services.ErrPasswordUnchanged):
		apierrors.BadRequest(c, "New password must differ from the old one")
	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.UnauthorizedWithCode(c, apierrors.ErrCodeInvalidCredentials, "Invalid credentials")
	default:
		apierrors.InternalError(c, "")
	}
}
