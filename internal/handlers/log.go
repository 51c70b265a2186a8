package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/orgstock/inventory-api/internal/dto"
	apierrors "github.com/orgstock/inventory-api/internal/errors"
	"github.com/orgstock/inventory-api/internal/models"
	"github.com/orgstock/inventory-api/internal/repository"
	"github.com/orgstock/inventory-api/internal/services"
	"github.com/orgstock/inventory-api/internal/utils"
)

// LogHandler serves the audit log. Admin only.
type LogHandler struct {
	logService *services.LogService
}

// NewLogHandler creates a new LogHandler.
func NewLogHandler(logService *services.LogService) *LogHandler {
	return &LogHandler{
		logService: logService,
	}
}

// List returns audit log entries, newest first, optionally filtered by
// severity and acting user.
func (h *LogHandler) List(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	filter := repository.LogFilter{
		Offset: params.Offset,
		Limit:  params.Limit,
	}

	if raw := c.Query("type"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			apierrors.BadRequest(c, "Invalid log type")
			return
		}
		logType := models.LogType(n)
		filter.Type = &logType
	}

	var ok bool
	if filter.UserID, ok = utils.ParseOptionalUintQuery(c, "user_id"); !ok {
		apierrors.BadRequest(c, "Invalid user_id")
		return
	}

	logs, total, err := h.logService.List(filter)
	if err != nil {
		if errors.Is(err, services.ErrLogTypeInvalid) {
			apierrors.BadRequest(c, "Invalid log type")
			return
		}
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"logs": dto.ToLogDTOs(logs),
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}
