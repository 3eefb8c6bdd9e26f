package service

import (
	"regexp"
	"strings"
	"time"

	"github.com/noah-isme/leadform-api/internal/dto"
	"github.com/noah-isme/leadform-api/internal/models"
)

// Field length caps applied during sanitisation so overlong values never
// reach the spreadsheet.
const (
	maxNameLength    = 200
	maxHandleLength  = 100
	maxAddressLength = 500
	maxFieldLength   = 320
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var nonDigits = regexp.MustCompile(`\D`)

// Formatter maps raw form answers to the canonical submission payload and
// enforces the form's business rules. All methods are pure; Format never
// fails and missing answers become zero values.
type Formatter struct {
	now func() time.Time
}

// NewFormatter builds a Formatter stamping payloads with the current time.
func NewFormatter() *Formatter {
	return &Formatter{now: time.Now}
}

// Format extracts the canonical payload from raw answers, trims every string
// and stamps the current time. It never rejects input; call Validate first
// before trusting the result for transmission.
func (f *Formatter) Format(answers models.FormAnswers) models.SubmissionPayload {
	contact := decodeContact(answers[models.QuestionContact])

	return models.SubmissionPayload{
		Timestamp:         f.now().UTC().Format(time.RFC3339),
		Name:              capString(strings.TrimSpace(asString(answers[models.QuestionName])), maxNameLength),
		ContactMethods:    trimAll(contact.Methods),
		Email:             capString(strings.TrimSpace(contact.Email), maxFieldLength),
		Phone:             capString(strings.TrimSpace(contact.Phone), maxFieldLength),
		SocialPlatforms:   trimAll(asStringSlice(answers[models.QuestionPlatforms])),
		SocialMediaHandle: capString(strings.TrimSpace(asString(answers[models.QuestionSocialMedia])), maxHandleLength),
		Address:           capString(strings.TrimSpace(asString(answers[models.QuestionAddress])), maxAddressLength),
	}
}

// Validate reports whether the answers satisfy every required-field and
// cross-field rule. A contact method selected without its matching value is
// a failure, never a silent default; whitespace-only strings count as absent.
func (f *Formatter) Validate(answers models.FormAnswers) bool {
	if strings.TrimSpace(asString(answers[models.QuestionName])) == "" {
		return false
	}

	contact := decodeContact(answers[models.QuestionContact])
	if len(contact.Methods) == 0 {
		return false
	}
	for _, method := range contact.Methods {
		switch strings.TrimSpace(method) {
		case models.ContactMethodEmail:
			if !ValidEmail(contact.Email) {
				return false
			}
		case models.ContactMethodPhone:
			if !ValidPhone(contact.Phone) {
				return false
			}
		}
	}

	if len(asStringSlice(answers[models.QuestionPlatforms])) == 0 {
		return false
	}
	if strings.TrimSpace(asString(answers[models.QuestionSocialMedia])) == "" {
		return false
	}
	return true
}

// ValidatePayload applies the same cross-field rules to an already-formed
// payload, guarding the append invariant on the server side.
func (f *Formatter) ValidatePayload(p models.SubmissionPayload) bool {
	if strings.TrimSpace(p.Name) == "" || strings.TrimSpace(p.SocialMediaHandle) == "" {
		return false
	}
	if len(p.ContactMethods) == 0 || len(p.SocialPlatforms) == 0 {
		return false
	}
	for _, method := range p.ContactMethods {
		switch method {
		case models.ContactMethodEmail:
			if !ValidEmail(p.Email) {
				return false
			}
		case models.ContactMethodPhone:
			if !ValidPhone(p.Phone) {
				return false
			}
		}
	}
	return true
}

// Sanitize builds the server-side payload from an inbound request: every
// string trimmed and length-capped, the timestamp re-stamped so it is never
// user-supplied.
func (f *Formatter) Sanitize(req dto.SubmitFormRequest) models.SubmissionPayload {
	return models.SubmissionPayload{
		Timestamp:         f.now().UTC().Format(time.RFC3339),
		Name:              capString(strings.TrimSpace(req.Name), maxNameLength),
		ContactMethods:    trimAll(req.ContactMethods),
		Email:             capString(strings.TrimSpace(req.Email), maxFieldLength),
		Phone:             capString(strings.TrimSpace(req.Phone), maxFieldLength),
		SocialPlatforms:   trimAll(req.SocialPlatforms),
		SocialMediaHandle: capString(strings.TrimSpace(req.SocialMediaHandle), maxHandleLength),
		Address:           capString(strings.TrimSpace(req.Address), maxAddressLength),
	}
}

// ToRow flattens a payload into the human-readable spreadsheet row: arrays
// joined with ", ", absent optionals rendered as empty strings, and the
// timestamp in a locale display format rather than the ISO wire form.
func (f *Formatter) ToRow(p models.SubmissionPayload) []string {
	return []string{
		displayTimestamp(p.Timestamp),
		p.Name,
		strings.Join(p.ContactMethods, ", "),
		p.Email,
		p.Phone,
		strings.Join(p.SocialPlatforms, ", "),
		p.SocialMediaHandle,
		p.Address,
	}
}

// ValidEmail checks the local@domain.tld shape.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(strings.TrimSpace(email))
}

// ValidPhone accepts 10 to 15 digits after stripping every non-digit.
func ValidPhone(phone string) bool {
	digits := nonDigits.ReplaceAllString(phone, "")
	return len(digits) >= 10 && len(digits) <= 15
}

func displayTimestamp(iso string) string {
	ts, err := time.Parse(time.RFC3339, iso)
	if err != nil {
		return iso
	}
	return ts.Format("Jan 2, 2006, 3:04:05 PM")
}

func capString(s string, max int) string {
	if len(s) > max {
		return s[:max]
	}
	return s
}

func trimAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func asString(v interface{}) string {
	s, _ := v.(string)
	return s
}

func asStringSlice(v interface{}) []string {
	switch typed := v.(type) {
	case []string:
		return typed
	case []interface{}:
		out := make([]string, 0, len(typed))
		for _, item := range typed {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

func decodeContact(v interface{}) models.ContactDetails {
	switch typed := v.(type) {
	case models.ContactDetails:
		return typed
	case *models.ContactDetails:
		if typed != nil {
			return *typed
		}
	case map[string]interface{}:
		return models.ContactDetails{
			Methods: asStringSlice(typed["methods"]),
			Email:   asString(typed["email"]),
			Phone:   asString(typed["phone"]),
		}
	}
	return models.ContactDetails{}
}
