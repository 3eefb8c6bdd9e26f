package turnstile

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/noah-isme/leadform-api/pkg/config"
)

// Verifier checks Cloudflare Turnstile tokens against the siteverify
// endpoint. Verification is advisory for the submit flow: a failed check is
// logged by the caller but never blocks the submission.
type Verifier struct {
	secretKey string
	verifyURL string
	client    *http.Client
}

type verifyResponse struct {
	Success    bool     `json:"success"`
	ErrorCodes []string `json:"error-codes"`
}

// New constructs a Verifier with a bounded request timeout.
func New(cfg config.TurnstileConfig) *Verifier {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Verifier{
		secretKey: cfg.SecretKey,
		verifyURL: cfg.VerifyURL,
		client:    &http.Client{Timeout: timeout},
	}
}

// Enabled reports whether a secret key was configured.
func (v *Verifier) Enabled() bool {
	return v != nil && v.secretKey != ""
}

// Verify posts the token and the client IP to siteverify.
func (v *Verifier) Verify(ctx context.Context, token, remoteIP string) error {
	if !v.Enabled() {
		return nil
	}

	form := url.Values{}
	form.Set("secret", v.secretKey)
	form.Set("response", token)
	if remoteIP != "" {
		form.Set("remoteip", remoteIP)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.verifyURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("build turnstile request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := v.client.Do(req)
	if err != nil {
		return fmt.Errorf("turnstile verify: %w", err)
	}
	defer resp.Body.Close()

	var body verifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return fmt.Errorf("decode turnstile response: %w", err)
	}
	if !body.Success {
		return fmt.Errorf("turnstile rejected token: %s", strings.Join(body.ErrorCodes, ", "))
	}
	return nil
}
