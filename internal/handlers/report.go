package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/orgstock/inventory-api/internal/errors"
	"github.com/orgstock/inventory-api/internal/services"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportHandler serves spreadsheet exports. Admin only.
type ReportHandler struct {
	reportService *services.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService *services.ReportService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
	}
}

// Excel generates the requested report and streams it as a download.
func (h *ReportHandler) Excel(c *gin.Context) {
	reportType := services.ReportType(c.Query("report_type"))
	if reportType == "" {
		apierrors.BadRequest(c, "report_type is required")
		return
	}

	data, filename, err := h.reportService.Generate(reportType, c.Query("condition"))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUnknownReportType):
			apierrors.BadRequest(c, "Unknown report type")
		case errors.Is(err, services.ErrReportNeedsCondition):
			apierrors.BadRequest(c, "condition is required for this report type")
		case errors.Is(err, services.ErrConditionNotFound):
			apierrors.NotFound(c, "Condition not found")
		default:
			apierrors.InternalError(c, "Failed to generate report")
		}
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, data)
}
