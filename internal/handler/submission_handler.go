package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/noah-isme/leadform-api/internal/dto"
	appErrors "github.com/noah-isme/leadform-api/pkg/errors"
	"github.com/noah-isme/leadform-api/pkg/middleware/requestid"
	"github.com/noah-isme/leadform-api/pkg/response"
)

type submissionProcessor interface {
	Process(ctx context.Context, submissionID, remoteIP string, req dto.SubmitFormRequest) error
}

// SubmissionHandler is the HTTP boundary of the form pipeline. Once a body
// passes structural validation the response is a success acknowledgment no
// matter what happens downstream; only malformed bodies, wrong methods and
// rate limiting produce a non-success response.
type SubmissionHandler struct {
	service submissionProcessor
}

// NewSubmissionHandler builds a new handler.
func NewSubmissionHandler(service submissionProcessor) *SubmissionHandler {
	return &SubmissionHandler{service: service}
}

// Submit godoc
// @Summary Submit a completed lead form
// @Tags Submissions
// @Accept json
// @Produce json
// @Param payload body dto.SubmitFormRequest true "Form answers"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 429 {object} response.Envelope
// @Router /api/submit-form [post]
func (h *SubmissionHandler) Submit(c *gin.Context) {
	var req dto.SubmitFormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInvalidFormData.Code, appErrors.ErrInvalidFormData.Status, appErrors.ErrInvalidFormData.Message))
		return
	}

	submissionID := requestid.Value(c)
	if submissionID == "" {
		submissionID = uuid.NewString()
	}

	if err := h.service.Process(c.Request.Context(), submissionID, c.ClientIP(), req); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Form submitted successfully")
}
