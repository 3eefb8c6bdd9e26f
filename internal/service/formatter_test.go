package service

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/leadform-api/internal/dto"
	"github.com/noah-isme/leadform-api/internal/models"
)

func fixedFormatter(t *testing.T) *Formatter {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, "2026-03-14T15:09:26Z")
	require.NoError(t, err)
	return &Formatter{now: func() time.Time { return ts }}
}

func validAnswers() models.FormAnswers {
	return models.FormAnswers{
		models.QuestionName: "John Doe",
		models.QuestionContact: models.ContactDetails{
			Methods: []string{models.ContactMethodEmail},
			Email:   "john@example.com",
		},
		models.QuestionPlatforms:   []string{"instagram"},
		models.QuestionSocialMedia: "@johndoe",
	}
}

func TestValidateAndFormatEmailOnlyLead(t *testing.T) {
	f := fixedFormatter(t)
	answers := validAnswers()

	require.True(t, f.Validate(answers))

	payload := f.Format(answers)
	assert.Equal(t, "2026-03-14T15:09:26Z", payload.Timestamp)
	assert.Equal(t, "John Doe", payload.Name)
	assert.Equal(t, []string{"email"}, payload.ContactMethods)
	assert.Equal(t, "john@example.com", payload.Email)
	assert.Empty(t, payload.Phone)

	row := f.ToRow(payload)
	assert.Equal(t, "email", row[2])
	assert.Equal(t, "", row[4])
}

func TestValidateRejectsShortPhone(t *testing.T) {
	f := NewFormatter()
	answers := validAnswers()
	answers[models.QuestionContact] = models.ContactDetails{
		Methods: []string{models.ContactMethodPhone},
		Phone:   "123",
	}
	assert.False(t, f.Validate(answers))
}

func TestValidatePhoneStripsFormatting(t *testing.T) {
	f := NewFormatter()
	answers := validAnswers()
	answers[models.QuestionContact] = models.ContactDetails{
		Methods: []string{models.ContactMethodPhone},
		Phone:   "+1 (555) 123-4567",
	}
	assert.True(t, f.Validate(answers))
}

func TestValidateRejectsMethodWithoutValue(t *testing.T) {
	f := NewFormatter()

	answers := validAnswers()
	answers[models.QuestionContact] = models.ContactDetails{
		Methods: []string{models.ContactMethodEmail, models.ContactMethodPhone},
		Email:   "john@example.com",
	}
	assert.False(t, f.Validate(answers), "phone selected with no phone value")

	answers[models.QuestionContact] = models.ContactDetails{
		Methods: []string{models.ContactMethodEmail},
		Email:   "   ",
	}
	assert.False(t, f.Validate(answers), "whitespace-only email counts as absent")
}

func TestValidateRejectsEmptySelections(t *testing.T) {
	f := NewFormatter()

	answers := validAnswers()
	answers[models.QuestionPlatforms] = []string{}
	assert.False(t, f.Validate(answers), "empty platform array")

	answers = validAnswers()
	delete(answers, models.QuestionPlatforms)
	assert.False(t, f.Validate(answers), "absent platform array")

	answers = validAnswers()
	answers[models.QuestionContact] = models.ContactDetails{}
	assert.False(t, f.Validate(answers), "no contact method selected")

	answers = validAnswers()
	answers[models.QuestionName] = "   "
	assert.False(t, f.Validate(answers), "blank name")

	answers = validAnswers()
	answers[models.QuestionSocialMedia] = ""
	assert.False(t, f.Validate(answers), "blank handle")
}

func TestValidImpliesStructurallySoundPayload(t *testing.T) {
	f := NewFormatter()
	answers := validAnswers()
	answers[models.QuestionAddress] = "  1 Main St  "

	require.True(t, f.Validate(answers))
	payload := f.Format(answers)
	assert.True(t, f.ValidatePayload(payload))
	assert.Equal(t, "1 Main St", payload.Address)
}

func TestFormatDecodesJSONShapedAnswers(t *testing.T) {
	f := NewFormatter()
	answers := models.FormAnswers{
		models.QuestionName: "Jane",
		models.QuestionContact: map[string]interface{}{
			"methods": []interface{}{"email"},
			"email":   "jane@example.com",
		},
		models.QuestionPlatforms:   []interface{}{"tiktok", "youtube"},
		models.QuestionSocialMedia: "@jane",
	}

	require.True(t, f.Validate(answers))
	payload := f.Format(answers)
	assert.Equal(t, []string{"tiktok", "youtube"}, payload.SocialPlatforms)
	assert.Equal(t, "jane@example.com", payload.Email)
}

func TestFormatNeverFailsOnMissingAnswers(t *testing.T) {
	f := NewFormatter()
	payload := f.Format(models.FormAnswers{})
	assert.Empty(t, payload.Name)
	assert.Empty(t, payload.ContactMethods)
	assert.NotEmpty(t, payload.Timestamp)
}

func TestToRowNeverRendersNullText(t *testing.T) {
	f := fixedFormatter(t)
	payload := f.Format(validAnswers())
	row := f.ToRow(payload)

	require.Len(t, row, 8)
	for _, cell := range row {
		assert.NotContains(t, cell, "null")
		assert.NotContains(t, cell, "undefined")
	}
	assert.Equal(t, "", row[4], "absent phone renders as empty string")
	assert.Equal(t, "", row[7], "absent address renders as empty string")
}

func TestToRowUsesDisplayTimestamp(t *testing.T) {
	f := fixedFormatter(t)
	row := f.ToRow(f.Format(validAnswers()))
	assert.Equal(t, "Mar 14, 2026, 3:09:26 PM", row[0])
	assert.NotContains(t, row[0], "T", "display format is not the ISO wire form")
}

func TestSanitizeCapsAndRestamps(t *testing.T) {
	f := fixedFormatter(t)
	req := dto.SubmitFormRequest{
		Name:              "  " + strings.Repeat("x", maxNameLength+50) + "  ",
		ContactMethods:    []string{" email "},
		Email:             " john@example.com ",
		SocialPlatforms:   []string{"instagram"},
		SocialMediaHandle: " @johndoe ",
	}

	payload := f.Sanitize(req)
	assert.Len(t, payload.Name, maxNameLength)
	assert.Equal(t, []string{"email"}, payload.ContactMethods)
	assert.Equal(t, "john@example.com", payload.Email)
	assert.Equal(t, "@johndoe", payload.SocialMediaHandle)
	assert.Equal(t, "2026-03-14T15:09:26Z", payload.Timestamp)
}
