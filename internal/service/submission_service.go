package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/leadform-api/internal/dto"
	"github.com/noah-isme/leadform-api/internal/models"
	appErrors "github.com/noah-isme/leadform-api/pkg/errors"
)

type tokenVerifier interface {
	Enabled() bool
	Verify(ctx context.Context, token, remoteIP string) error
}

type submissionAuditor interface {
	Record(rec models.SubmissionRecord)
}

// SubmissionService orchestrates one accepted submission: sanitise, verify
// (advisory), pre-check the spreadsheet connection (advisory), deliver with
// retries, and record the outcome. Per the response contract, only a
// validation failure is ever returned to the handler; every downstream
// failure is absorbed here and preserved in the logs.
type SubmissionService struct {
	formatter *Formatter
	delivery  *DeliveryService
	verifier  tokenVerifier
	auditor   submissionAuditor
	logger    *zap.Logger
}

// NewSubmissionService constructs a SubmissionService.
func NewSubmissionService(formatter *Formatter, delivery *DeliveryService, verifier tokenVerifier, auditor submissionAuditor, logger *zap.Logger) *SubmissionService {
	if formatter == nil {
		formatter = NewFormatter()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SubmissionService{
		formatter: formatter,
		delivery:  delivery,
		verifier:  verifier,
		auditor:   auditor,
		logger:    logger,
	}
}

// Process handles a structurally valid request. A non-nil return means the
// form data failed validation and the caller should respond 400; nil means
// the caller must acknowledge success regardless of delivery outcome.
func (s *SubmissionService) Process(ctx context.Context, submissionID, remoteIP string, req dto.SubmitFormRequest) error {
	logr := s.logger.With(zap.String("submission_id", submissionID))

	payload := s.formatter.Sanitize(req)
	if !s.formatter.ValidatePayload(payload) {
		logr.Info("submission rejected by validation")
		return appErrors.ErrInvalidFormData
	}

	if s.verifier != nil && s.verifier.Enabled() {
		if err := s.verifier.Verify(ctx, req.TurnstileToken, remoteIP); err != nil {
			// Advisory only; the submission proceeds.
			logr.Warn("turnstile verification failed", zap.Error(err))
		}
	}

	if s.delivery == nil || !s.delivery.Configured() {
		logr.Error("sheets service not initialised, submission not delivered",
			zap.Bool("manual_recovery", true),
			zap.Any("payload", payload),
		)
		s.audit(payload, submissionID, models.DeliveryStatusSkipped, 0, appErrors.ErrServiceInit.Message)
		return nil
	}

	if err := s.delivery.ValidateConnection(ctx); err != nil {
		// Best-effort pre-check; failure does not block the append attempt.
		logr.Warn("sheets connection pre-check failed", zap.Error(err))
	}

	attempts, err := s.delivery.Deliver(ctx, submissionID, payload)
	if err != nil {
		// Already logged with manual-recovery data by the delivery service.
		s.audit(payload, submissionID, models.DeliveryStatusFailed, attempts, err.Error())
		return nil
	}

	s.audit(payload, submissionID, models.DeliveryStatusDelivered, attempts, "")
	return nil
}

func (s *SubmissionService) audit(payload models.SubmissionPayload, submissionID string, status models.DeliveryStatus, attempts int, lastError string) {
	if s.auditor == nil {
		return
	}
	s.auditor.Record(models.SubmissionRecord{
		SubmissionID:      submissionID,
		Name:              payload.Name,
		ContactMethods:    strings.Join(payload.ContactMethods, ", "),
		Email:             payload.Email,
		Phone:             payload.Phone,
		SocialPlatforms:   strings.Join(payload.SocialPlatforms, ", "),
		SocialMediaHandle: payload.SocialMediaHandle,
		Address:           payload.Address,
		Status:            status,
		Attempts:          attempts,
		LastError:         lastError,
	})
}
