package models

import "time"

// ContactDetails is the structured contact answer collected by the form:
// which methods the lead opted into, plus the matching values.
type ContactDetails struct {
	Methods []string `json:"methods"`
	Email   string   `json:"email,omitempty"`
	Phone   string   `json:"phone,omitempty"`
}

// Contact method tags as they appear in ContactDetails.Methods and
// SubmissionPayload.ContactMethods.
const (
	ContactMethodEmail = "email"
	ContactMethodPhone = "phone"
)

// FormAnswers maps question ids to raw answer values as produced by the form
// UI. Values are strings, string slices, numbers, booleans, or a
// ContactDetails object (possibly still as map[string]interface{} when
// decoded from JSON).
type FormAnswers map[string]interface{}

// Well-known question ids consumed by the formatter.
const (
	QuestionName        = "name"
	QuestionContact     = "contact"
	QuestionPlatforms   = "socialPlatforms"
	QuestionSocialMedia = "socialMediaHandle"
	QuestionAddress     = "address"
)

// SubmissionPayload is the canonical, validated shape sent over the wire and
// projected onto a spreadsheet row. A payload that fails any required-field
// or cross-field check must never reach the append step.
type SubmissionPayload struct {
	Timestamp         string   `json:"timestamp"`
	Name              string   `json:"name"`
	ContactMethods    []string `json:"contactMethods"`
	Email             string   `json:"email,omitempty"`
	Phone             string   `json:"phone,omitempty"`
	SocialPlatforms   []string `json:"socialPlatforms"`
	SocialMediaHandle string   `json:"socialMediaHandle"`
	Address           string   `json:"address,omitempty"`
}

// ErrorContext carries per-attempt metadata for delivery failures. It is
// created fresh per failure and consumed immediately by logging and
// classification; log sinks are the durability mechanism.
type ErrorContext struct {
	SubmissionID string
	Operation    string
	Attempt      int
	Payload      *SubmissionPayload
	Timestamp    time.Time
}

// Delivery outcome of one accepted submission.
type DeliveryStatus string

const (
	// DeliveryStatusDelivered means the row reached the spreadsheet.
	DeliveryStatusDelivered DeliveryStatus = "delivered"
	// DeliveryStatusFailed means every attempt failed and a manual-recovery
	// log entry was emitted.
	DeliveryStatusFailed DeliveryStatus = "failed"
	// DeliveryStatusSkipped means no Sheets client was configured.
	DeliveryStatusSkipped DeliveryStatus = "skipped"
)

// SubmissionRecord is the audit-store projection of one accepted submission
// and its delivery outcome. Best-effort only; the HTTP response never waits
// on it.
type SubmissionRecord struct {
	ID                string         `db:"id"`
	SubmissionID      string         `db:"submission_id"`
	Name              string         `db:"name"`
	ContactMethods    string         `db:"contact_methods"`
	Email             string         `db:"email"`
	Phone             string         `db:"phone"`
	SocialPlatforms   string         `db:"social_platforms"`
	SocialMediaHandle string         `db:"social_media_handle"`
	Address           string         `db:"address"`
	Status            DeliveryStatus `db:"status"`
	Attempts          int            `db:"attempts"`
	LastError         string         `db:"last_error"`
	CreatedAt         time.Time      `db:"created_at"`
}
