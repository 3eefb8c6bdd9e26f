package sheets

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/noah-isme/leadform-api/pkg/config"
)

// serviceAccountKey is the JSON key shape expected by the Google auth
// libraries when only the client email and private key are configured.
type serviceAccountKey struct {
	Type        string `json:"type"`
	PrivateKey  string `json:"private_key"`
	ClientEmail string `json:"client_email"`
	TokenURI    string `json:"token_uri"`
}

// Client appends rows to one fixed spreadsheet range using a service
// account. Append is the only write operation used; rows are never updated
// or deleted.
type Client struct {
	svc           *sheetsapi.Service
	spreadsheetID string
	writeRange    string
}

// New builds a Sheets client from configuration. Credential material may be
// a full key JSON or the email + private key pair; environment variables
// commonly carry the key with literal \n escapes, which are normalised here.
func New(ctx context.Context, cfg config.SheetsConfig) (*Client, error) {
	credentials, err := CredentialsJSON(cfg)
	if err != nil {
		return nil, err
	}

	svc, err := sheetsapi.NewService(ctx, option.WithCredentialsJSON(credentials))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	writeRange := cfg.ColumnRange
	if cfg.SheetName != "" {
		writeRange = fmt.Sprintf("%s!%s", cfg.SheetName, cfg.ColumnRange)
	}

	return &Client{svc: svc, spreadsheetID: cfg.SpreadsheetID, writeRange: writeRange}, nil
}

// CredentialsJSON assembles the service account key bytes from configuration.
func CredentialsJSON(cfg config.SheetsConfig) ([]byte, error) {
	if cfg.CredentialsJSON != "" {
		key := serviceAccountKey{}
		if err := json.Unmarshal([]byte(cfg.CredentialsJSON), &key); err != nil {
			return nil, fmt.Errorf("parse credentials json: %w", err)
		}
		return []byte(cfg.CredentialsJSON), nil
	}

	if cfg.ClientEmail == "" || cfg.PrivateKey == "" {
		return nil, fmt.Errorf("sheets credentials missing: client email and private key required")
	}

	key := serviceAccountKey{
		Type:        "service_account",
		PrivateKey:  NormalizePrivateKey(cfg.PrivateKey),
		ClientEmail: cfg.ClientEmail,
		TokenURI:    "https://oauth2.googleapis.com/token",
	}
	return json.Marshal(key)
}

// NormalizePrivateKey converts literal \n escape sequences into real
// newlines so PEM parsing succeeds regardless of how the key was injected.
func NormalizePrivateKey(key string) string {
	return strings.ReplaceAll(key, `\n`, "\n")
}

// Append adds one row after the last row of the configured range.
func (c *Client) Append(ctx context.Context, row []string) error {
	values := make([]interface{}, len(row))
	for i, cell := range row {
		values[i] = cell
	}

	_, err := c.svc.Spreadsheets.Values.
		Append(c.spreadsheetID, c.writeRange, &sheetsapi.ValueRange{Values: [][]interface{}{values}}).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("append to sheet: %w", err)
	}
	return nil
}

// ValidateConnection performs a cheap metadata read against the spreadsheet.
// Callers treat failure as advisory.
func (c *Client) ValidateConnection(ctx context.Context) error {
	_, err := c.svc.Spreadsheets.Get(c.spreadsheetID).Fields("spreadsheetId").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("validate sheets connection: %w", err)
	}
	return nil
}
