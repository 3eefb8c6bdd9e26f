package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/leadform-api/internal/models"
	appErrors "github.com/noah-isme/leadform-api/pkg/errors"
)

const (
	maxAppendAttempts = 3
	operationAppend   = "sheets_append"
)

type rowAppender interface {
	Append(ctx context.Context, row []string) error
	ValidateConnection(ctx context.Context) error
}

// DeliveryService drives the classified retry loop around the spreadsheet
// append call. The retry policy lives here, independent of the transport, so
// it can be tested without a Sheets client.
type DeliveryService struct {
	appender  rowAppender
	formatter *Formatter
	metrics   *MetricsService
	logger    *zap.Logger

	maxAttempts int
	sleep       func(time.Duration)
}

// NewDeliveryService constructs a DeliveryService.
func NewDeliveryService(appender rowAppender, formatter *Formatter, metrics *MetricsService, logger *zap.Logger) *DeliveryService {
	if formatter == nil {
		formatter = NewFormatter()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DeliveryService{
		appender:    appender,
		formatter:   formatter,
		metrics:     metrics,
		logger:      logger,
		maxAttempts: maxAppendAttempts,
		sleep:       time.Sleep,
	}
}

// Configured reports whether a Sheets client is available.
func (s *DeliveryService) Configured() bool {
	return s != nil && s.appender != nil
}

// ValidateConnection runs the advisory pre-check against the spreadsheet.
func (s *DeliveryService) ValidateConnection(ctx context.Context) error {
	if !s.Configured() {
		return appErrors.ErrServiceInit
	}
	return s.appender.ValidateConnection(ctx)
}

// Deliver converts the payload to a row and appends it, retrying retryable
// failures with classified backoff. It returns the number of attempts made.
// On exhaustion it emits exactly one manual-recovery log entry carrying the
// full payload, which is the only durable copy when the remote call cannot
// succeed, and returns an aggregate error.
func (s *DeliveryService) Deliver(ctx context.Context, submissionID string, payload models.SubmissionPayload) (int, error) {
	if !s.Configured() {
		return 0, appErrors.ErrServiceInit
	}

	row := s.formatter.ToRow(payload)
	logr := s.logger.With(zap.String("submission_id", submissionID), zap.String("operation", operationAppend))

	var lastErr error
	var lastCategory appErrors.Category
	attempts := 0

	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		attempts = attempt
		err := s.appender.Append(ctx, row)
		if err == nil {
			s.metrics.ObserveAppendAttempt(true)
			logr.Info("row appended", zap.Int("attempt", attempt))
			return attempts, nil
		}

		s.metrics.ObserveAppendAttempt(false)
		lastErr = err
		lastCategory = appErrors.Classify(err)

		ectx := models.ErrorContext{
			SubmissionID: submissionID,
			Operation:    operationAppend,
			Attempt:      attempt,
			Payload:      &payload,
			Timestamp:    time.Now().UTC(),
		}
		logr.Warn("append attempt failed",
			zap.Int("attempt", ectx.Attempt),
			zap.String("category", string(lastCategory)),
			zap.Bool("retryable", appErrors.IsRetryable(lastCategory)),
			zap.Error(err),
		)

		if !appErrors.IsRetryable(lastCategory) || attempt == s.maxAttempts {
			break
		}

		delay := appErrors.NextDelay(attempt, lastCategory)
		s.metrics.ObserveAppendRetry(string(lastCategory))
		logr.Info("retrying append", zap.Duration("delay", delay), zap.Int("next_attempt", attempt+1))
		s.sleep(delay)
	}

	s.logManualRecovery(logr, submissionID, payload, attempts, lastCategory, lastErr)
	return attempts, fmt.Errorf("append failed after %d attempt(s), category %s: %w", attempts, lastCategory, lastErr)
}

// logManualRecovery emits the structured record an operator needs to
// re-enter the row by hand.
func (s *DeliveryService) logManualRecovery(logr *zap.Logger, submissionID string, payload models.SubmissionPayload, attempts int, category appErrors.Category, err error) {
	s.metrics.ObserveManualRecovery()
	logr.Error("manual recovery required",
		zap.Bool("manual_recovery", true),
		zap.String("submission_id", submissionID),
		zap.Int("attempts", attempts),
		zap.String("category", string(category)),
		zap.Any("payload", payload),
		zap.Error(err),
	)
}
