package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/leadform-api/internal/models"
)

// SubmissionRepository persists the best-effort audit trail of accepted
// submissions and their delivery outcomes.
type SubmissionRepository struct {
	db *sqlx.DB
}

// NewSubmissionRepository constructs the repository.
func NewSubmissionRepository(db *sqlx.DB) *SubmissionRepository {
	return &SubmissionRepository{db: db}
}

// Insert records one submission outcome.
func (r *SubmissionRepository) Insert(ctx context.Context, rec *models.SubmissionRecord) error {
	const query = `INSERT INTO submissions
(id, submission_id, name, contact_methods, email, phone, social_platforms, social_media_handle, address, status, attempts, last_error, created_at)
VALUES (:id, :submission_id, :name, :contact_methods, :email, :phone, :social_platforms, :social_media_handle, :address, :status, :attempts, :last_error, :created_at)`

	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	if _, err := r.db.NamedExecContext(ctx, query, rec); err != nil {
		return fmt.Errorf("insert submission record: %w", err)
	}
	return nil
}

// List returns the most recent submission records, optionally filtered by
// delivery status.
func (r *SubmissionRepository) List(ctx context.Context, status models.DeliveryStatus, limit int) ([]models.SubmissionRecord, error) {
	if limit <= 0 {
		limit = 100
	}

	var records []models.SubmissionRecord
	if status == "" {
		const query = `SELECT id, submission_id, name, contact_methods, email, phone, social_platforms, social_media_handle, address, status, attempts, last_error, created_at
FROM submissions ORDER BY created_at DESC LIMIT $1`
		if err := r.db.SelectContext(ctx, &records, query, limit); err != nil {
			return nil, fmt.Errorf("list submissions: %w", err)
		}
		return records, nil
	}

	const query = `SELECT id, submission_id, name, contact_methods, email, phone, social_platforms, social_media_handle, address, status, attempts, last_error, created_at
FROM submissions WHERE status = $1 ORDER BY created_at DESC LIMIT $2`
	if err := r.db.SelectContext(ctx, &records, query, status, limit); err != nil {
		return nil, fmt.Errorf("list submissions by status: %w", err)
	}
	return records, nil
}
