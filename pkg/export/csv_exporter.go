package export

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/noah-isme/leadform-api/internal/models"
)

var submissionHeaders = []string{
	"submission_id", "created_at", "name", "contact_methods", "email", "phone",
	"social_platforms", "social_media_handle", "address", "status", "attempts", "last_error",
}

// CSVExporter renders submission records into CSV bytes so an operator can
// re-enter rows that never reached the spreadsheet.
type CSVExporter struct{}

// NewCSVExporter builds a CSV exporter.
func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

// Render produces CSV encoded bytes for the records.
func (e *CSVExporter) Render(records []models.SubmissionRecord) ([]byte, error) {
	buf := &bytes.Buffer{}
	writer := csv.NewWriter(buf)
	if err := writer.Write(submissionHeaders); err != nil {
		return nil, fmt.Errorf("write csv headers: %w", err)
	}
	for _, rec := range records {
		row := []string{
			rec.SubmissionID,
			rec.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
			rec.Name,
			rec.ContactMethods,
			rec.Email,
			rec.Phone,
			rec.SocialPlatforms,
			rec.SocialMediaHandle,
			rec.Address,
			string(rec.Status),
			fmt.Sprintf("%d", rec.Attempts),
			rec.LastError,
		}
		if err := writer.Write(row); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
