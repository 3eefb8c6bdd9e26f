package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/leadform-api/internal/dto"
	"github.com/noah-isme/leadform-api/internal/models"
	appErrors "github.com/noah-isme/leadform-api/pkg/errors"
)

type auditReaderStub struct {
	items      []dto.SubmissionItem
	records    []models.SubmissionRecord
	err        error
	lastStatus models.DeliveryStatus
	lastLimit  int
}

func (a *auditReaderStub) List(ctx context.Context, status models.DeliveryStatus, limit int) ([]dto.SubmissionItem, error) {
	a.lastStatus, a.lastLimit = status, limit
	return a.items, a.err
}

func (a *auditReaderStub) Records(ctx context.Context, status models.DeliveryStatus, limit int) ([]models.SubmissionRecord, error) {
	a.lastStatus, a.lastLimit = status, limit
	return a.records, a.err
}

func performOps(t *testing.T, handler *OpsHandler, path string, fn func(*gin.Context)) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, err := http.NewRequest(http.MethodGet, path, nil)
	require.NoError(t, err)
	c.Request = req
	fn(c)
	return w
}

func TestOpsListFiltersByStatus(t *testing.T) {
	stub := &auditReaderStub{items: []dto.SubmissionItem{{SubmissionID: "sub-1", Status: "failed"}}}
	handler := NewOpsHandler(stub)

	w := performOps(t, handler, "/api/submissions?status=failed&limit=20", handler.List)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.DeliveryStatusFailed, stub.lastStatus)
	assert.Equal(t, 20, stub.lastLimit)
	assert.Contains(t, w.Body.String(), "sub-1")
}

func TestOpsListUnavailableWithoutStore(t *testing.T) {
	handler := NewOpsHandler(&auditReaderStub{err: appErrors.ErrAuditUnavailable})

	w := performOps(t, handler, "/api/submissions", handler.List)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)
}

func TestOpsExportRendersCSVAttachment(t *testing.T) {
	stub := &auditReaderStub{records: []models.SubmissionRecord{{
		SubmissionID:      "sub-2",
		Name:              "Jane Doe",
		ContactMethods:    "phone",
		Phone:             "5551234567",
		SocialPlatforms:   "tiktok",
		SocialMediaHandle: "@jane",
		Status:            models.DeliveryStatusFailed,
		Attempts:          3,
		CreatedAt:         time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC),
	}}}
	handler := NewOpsHandler(stub)

	w := performOps(t, handler, "/api/submissions/export?status=failed", handler.Export)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
	assert.Contains(t, w.Body.String(), "Jane Doe")
}
