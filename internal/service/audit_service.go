package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/leadform-api/internal/dto"
	"github.com/noah-isme/leadform-api/internal/models"
	appErrors "github.com/noah-isme/leadform-api/pkg/errors"
	"github.com/noah-isme/leadform-api/pkg/jobs"
)

type submissionStore interface {
	Insert(ctx context.Context, rec *models.SubmissionRecord) error
	List(ctx context.Context, status models.DeliveryStatus, limit int) ([]models.SubmissionRecord, error)
}

// AuditService keeps the best-effort trail of submission outcomes. Writes go
// through an in-memory queue so the request path never blocks on the
// database; reads back the operator endpoints. With no store configured the
// service is a no-op and List reports unavailable.
type AuditService struct {
	store  submissionStore
	queue  *jobs.Queue
	logger *zap.Logger
}

// NewAuditService constructs an AuditService over an optional store.
func NewAuditService(store submissionStore, logger *zap.Logger) *AuditService {
	if logger == nil {
		logger = zap.NewNop()
	}
	svc := &AuditService{store: store, logger: logger}
	if store != nil {
		svc.queue = jobs.New("submission-audit", svc.persist, jobs.Config{
			Workers:    1,
			MaxRetries: 3,
			RetryDelay: time.Second,
			Logger:     logger,
		})
	}
	return svc
}

// Enabled reports whether an audit store is configured.
func (s *AuditService) Enabled() bool {
	return s != nil && s.store != nil
}

// Start launches the write queue.
func (s *AuditService) Start(ctx context.Context) {
	if s.queue != nil {
		s.queue.Start(ctx)
	}
}

// Stop drains the write queue.
func (s *AuditService) Stop() {
	if s.queue != nil {
		s.queue.Stop()
	}
}

// Record enqueues one submission outcome. Never blocks the caller on the
// database and never surfaces an error.
func (s *AuditService) Record(rec models.SubmissionRecord) {
	if !s.Enabled() {
		return
	}
	if err := s.queue.Enqueue(jobs.Job{ID: rec.SubmissionID, Payload: rec}); err != nil {
		s.logger.Warn("audit record dropped", zap.String("submission_id", rec.SubmissionID), zap.Error(err))
	}
}

// List returns recent submission records for operator review.
func (s *AuditService) List(ctx context.Context, status models.DeliveryStatus, limit int) ([]dto.SubmissionItem, error) {
	if !s.Enabled() {
		return nil, appErrors.ErrAuditUnavailable
	}
	records, err := s.store.List(ctx, status, limit)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SubmissionItem, 0, len(records))
	for _, rec := range records {
		items = append(items, dto.SubmissionItem{
			SubmissionID:      rec.SubmissionID,
			Name:              rec.Name,
			ContactMethods:    rec.ContactMethods,
			Email:             rec.Email,
			Phone:             rec.Phone,
			SocialPlatforms:   rec.SocialPlatforms,
			SocialMediaHandle: rec.SocialMediaHandle,
			Address:           rec.Address,
			Status:            string(rec.Status),
			Attempts:          rec.Attempts,
			LastError:         rec.LastError,
			CreatedAt:         rec.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return items, nil
}

// Records returns raw submission records, used by the CSV export.
func (s *AuditService) Records(ctx context.Context, status models.DeliveryStatus, limit int) ([]models.SubmissionRecord, error) {
	if !s.Enabled() {
		return nil, appErrors.ErrAuditUnavailable
	}
	return s.store.List(ctx, status, limit)
}

func (s *AuditService) persist(ctx context.Context, job jobs.Job) error {
	rec, ok := job.Payload.(models.SubmissionRecord)
	if !ok {
		s.logger.Error("audit job carried unexpected payload", zap.String("job_id", job.ID))
		return nil
	}
	return s.store.Insert(ctx, &rec)
}
