package dto

// SubmitFormRequest is the inbound body of POST /api/submit-form. The binding
// tags cover structural validation only; cross-field rules (a selected
// contact method must carry its value) are enforced by the formatter.
type SubmitFormRequest struct {
	Name              string   `json:"name" binding:"required"`
	ContactMethods    []string `json:"contactMethods" binding:"required,min=1"`
	Email             string   `json:"email"`
	Phone             string   `json:"phone"`
	SocialPlatforms   []string `json:"socialPlatforms" binding:"required,min=1"`
	SocialMediaHandle string   `json:"socialMediaHandle" binding:"required"`
	Address           string   `json:"address"`
	TurnstileToken    string   `json:"turnstileToken"`
}

// SubmissionItem is the operator-facing projection of an audited submission.
type SubmissionItem struct {
	SubmissionID      string `json:"submissionId"`
	Name              string `json:"name"`
	ContactMethods    string `json:"contactMethods"`
	Email             string `json:"email"`
	Phone             string `json:"phone"`
	SocialPlatforms   string `json:"socialPlatforms"`
	SocialMediaHandle string `json:"socialMediaHandle"`
	Address           string `json:"address"`
	Status            string `json:"status"`
	Attempts          int    `json:"attempts"`
	LastError         string `json:"lastError,omitempty"`
	CreatedAt         string `json:"createdAt"`
}
