package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/leadform-api/internal/models"
	"github.com/noah-isme/leadform-api/internal/service"
)

// ErrInvalidAnswers is returned when the answers fail local validation; the
// form cannot be submitted until the user fixes them.
var ErrInvalidAnswers = errors.New("answers failed validation")

// DefaultSubmitTimeout bounds how long a submission may block the caller.
const DefaultSubmitTimeout = 10 * time.Second

// Result reports the outcome of one submission attempt. Completed is true
// whenever the flow finished, including every network failure branch: the
// user-visible "thank you" state is never gated on the reliability of a
// non-critical logging sink. Delivered only says whether the server
// acknowledged; Err carries whatever was logged.
type Result struct {
	Completed bool
	Delivered bool
	Err       error
}

// Client submits completed forms to the lead capture API.
type Client struct {
	endpoint  string
	http      *http.Client
	formatter *service.Formatter
	drafts    *DraftStore
	logger    *zap.Logger
}

// Option tunes a Client.
type Option func(*Client)

// WithTimeout overrides the submit timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.http.Timeout = timeout
		}
	}
}

// WithDraftStore attaches persistent draft state cleared on completion.
func WithDraftStore(store *DraftStore) Option {
	return func(c *Client) { c.drafts = store }
}

// WithLogger attaches a logger for failure branches.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New builds a client for the submit endpoint base URL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		endpoint:  baseURL + "/api/submit-form",
		http:      &http.Client{Timeout: DefaultSubmitTimeout},
		formatter: service.NewFormatter(),
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Submit validates and formats the answers, posts them with a bounded wait,
// then clears the draft and marks the flow complete regardless of the
// network outcome. The failure branches differ only in what is logged.
func (c *Client) Submit(ctx context.Context, answers models.FormAnswers) Result {
	if !c.formatter.Validate(answers) {
		return Result{Err: ErrInvalidAnswers}
	}

	payload := c.formatter.Format(answers)
	delivered, err := c.post(ctx, payload)

	switch {
	case err == nil:
		c.logger.Info("form submitted", zap.Bool("delivered", delivered))
	case errors.Is(err, context.DeadlineExceeded) || isTimeout(err):
		c.logger.Warn("form submission timed out", zap.Error(err))
	default:
		c.logger.Warn("form submission failed", zap.Error(err))
	}

	if c.drafts != nil {
		if clearErr := c.drafts.Clear(); clearErr != nil {
			c.logger.Warn("draft not cleared", zap.Error(clearErr))
		}
	}

	return Result{Completed: true, Delivered: delivered, Err: err}
}

func (c *Client) post(ctx context.Context, payload models.SubmissionPayload) (bool, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return false, fmt.Errorf("encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return false, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("server responded %d", resp.StatusCode)
	}

	var envelope struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return false, fmt.Errorf("decode response: %w", err)
	}
	if !envelope.Success {
		return false, fmt.Errorf("server reported failure: %s", envelope.Message)
	}
	return true, nil
}

func isTimeout(err error) bool {
	var timeout interface{ Timeout() bool }
	return errors.As(err, &timeout) && timeout.Timeout()
}
