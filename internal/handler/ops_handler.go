package handler

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/leadform-api/internal/dto"
	"github.com/noah-isme/leadform-api/internal/models"
	"github.com/noah-isme/leadform-api/pkg/export"
	"github.com/noah-isme/leadform-api/pkg/response"
)

type submissionAuditReader interface {
	List(ctx context.Context, status models.DeliveryStatus, limit int) ([]dto.SubmissionItem, error)
	Records(ctx context.Context, status models.DeliveryStatus, limit int) ([]models.SubmissionRecord, error)
}

// OpsHandler exposes the operator endpoints backing manual recovery: listing
// audited submissions and exporting them as CSV for hand re-entry.
type OpsHandler struct {
	audit    submissionAuditReader
	exporter *export.CSVExporter
}

// NewOpsHandler builds a new handler.
func NewOpsHandler(audit submissionAuditReader) *OpsHandler {
	return &OpsHandler{audit: audit, exporter: export.NewCSVExporter()}
}

// List godoc
// @Summary List audited submissions
// @Tags Operations
// @Produce json
// @Param status query string false "Filter by delivery status"
// @Param limit query int false "Maximum records"
// @Success 200 {object} response.Envelope
// @Router /api/submissions [get]
func (h *OpsHandler) List(c *gin.Context) {
	status, limit := listParams(c)
	items, err := h.audit.List(c.Request.Context(), status, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Data(c, "submissions", items)
}

// Export godoc
// @Summary Export audited submissions as CSV
// @Tags Operations
// @Produce text/csv
// @Param status query string false "Filter by delivery status"
// @Param limit query int false "Maximum records"
// @Success 200 {string} string "CSV content"
// @Router /api/submissions/export [get]
func (h *OpsHandler) Export(c *gin.Context) {
	status, limit := listParams(c)
	records, err := h.audit.Records(c.Request.Context(), status, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	body, err := h.exporter.Render(records)
	if err != nil {
		response.Error(c, err)
		return
	}

	filename := fmt.Sprintf("submissions-%s.csv", time.Now().UTC().Format("20060102-150405"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(200, "text/csv", body)
}

func listParams(c *gin.Context) (models.DeliveryStatus, int) {
	status := models.DeliveryStatus(c.Query("status"))
	limit, err := strconv.Atoi(c.Query("limit"))
	if err != nil {
		limit = 0
	}
	return status, limit
}
