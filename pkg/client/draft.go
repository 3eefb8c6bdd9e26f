package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/noah-isme/leadform-api/internal/models"
)

// DefaultDraftFile is the fixed name drafts are persisted under.
const DefaultDraftFile = "leadform-draft.json"

// DefaultDraftTTL is how long a saved draft stays loadable.
const DefaultDraftTTL = 24 * time.Hour

type draftFile struct {
	Answers models.FormAnswers `json:"answers"`
	SavedAt time.Time          `json:"savedAt"`
}

// DraftStore persists in-progress form answers to a local file so a partly
// filled form survives restarts. Drafts expire after the TTL based on the
// stored timestamp, wall-clock.
type DraftStore struct {
	path string
	ttl  time.Duration
	now  func() time.Time
}

// NewDraftStore builds a store at path; an empty path uses DefaultDraftFile
// in the user cache directory.
func NewDraftStore(path string, ttl time.Duration) *DraftStore {
	if path == "" {
		if cacheDir, err := os.UserCacheDir(); err == nil {
			path = filepath.Join(cacheDir, DefaultDraftFile)
		} else {
			path = DefaultDraftFile
		}
	}
	if ttl <= 0 {
		ttl = DefaultDraftTTL
	}
	return &DraftStore{path: path, ttl: ttl, now: time.Now}
}

// Save writes the current answers with a fresh timestamp.
func (s *DraftStore) Save(answers models.FormAnswers) error {
	raw, err := json.Marshal(draftFile{Answers: answers, SavedAt: s.now().UTC()})
	if err != nil {
		return fmt.Errorf("encode draft: %w", err)
	}
	if err := os.WriteFile(s.path, raw, 0o600); err != nil {
		return fmt.Errorf("write draft: %w", err)
	}
	return nil
}

// Load returns the saved answers, or ok=false when no draft exists or the
// draft expired. Expired drafts are removed.
func (s *DraftStore) Load() (models.FormAnswers, bool, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read draft: %w", err)
	}

	var draft draftFile
	if err := json.Unmarshal(raw, &draft); err != nil {
		// A corrupt draft is unrecoverable; discard it.
		_ = s.Clear()
		return nil, false, nil
	}

	if s.now().Sub(draft.SavedAt) > s.ttl {
		_ = s.Clear()
		return nil, false, nil
	}
	return draft.Answers, true, nil
}

// Clear removes any persisted draft.
func (s *DraftStore) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("clear draft: %w", err)
	}
	return nil
}
