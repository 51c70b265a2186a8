package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/orgstock/inventory-api/internal/errors"
	"github.com/orgstock/inventory-api/internal/services"
)

// SeedHandler exposes database initialization. Admin only once the
// first account exists; open before that so a fresh deployment can
// bootstrap itself.
type SeedHandler struct {
	seedService *services.SeedService
}

// NewSeedHandler creates a new SeedHandler.
func NewSeedHandler(seedService *services.SeedService) *SeedHandler {
	return &SeedHandler{
		seedService: seedService,
	}
}

// InitDatabase seeds the database with sample data. Refuses when data
// already exists unless ?force=true is given.
func (h *SeedHandler) InitDatabase(c *gin.Context) {
	force := c.Query("force") == "true"

	if err := h.seedService.Seed(force); err != nil {
		if errors.Is(err, services.ErrAlreadySeeded) {
			apierrors.Conflict(c, "Database already contains data, use force=true to reseed")
			return
		}
		apierrors.InternalError(c, "Failed to seed database")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Database initialized",
	})
}
