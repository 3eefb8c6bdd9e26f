package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/leadform-api/internal/models"
)

func answersFixture() models.FormAnswers {
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

func draftWithAnswers(t *testing.T) *DraftStore {
	t.Helper()
	store := NewDraftStore(filepath.Join(t.TempDir(), DefaultDraftFile), DefaultDraftTTL)
	require.NoError(t, store.Save(answersFixture()))
	return store
}

func draftExists(store *DraftStore) bool {
	_, err := os.Stat(store.path)
	return err == nil
}

func TestSubmitDeliversAndClearsDraft(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/submit-form", r.URL.Path)
		w.Write([]byte(`{"success":true,"message":"Form submitted successfully"}`))
	}))
	defer server.Close()

	store := draftWithAnswers(t)
	c := New(server.URL, WithDraftStore(store))

	result := c.Submit(context.Background(), answersFixture())
	assert.True(t, result.Completed)
	assert.True(t, result.Delivered)
	assert.NoError(t, result.Err)
	assert.False(t, draftExists(store), "draft cleared on success")
}

func TestSubmitCompletesDespiteServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	store := draftWithAnswers(t)
	c := New(server.URL, WithDraftStore(store))

	result := c.Submit(context.Background(), answersFixture())
	assert.True(t, result.Completed, "completion is never gated on the server")
	assert.False(t, result.Delivered)
	assert.Error(t, result.Err)
	assert.False(t, draftExists(store), "draft cleared even on failure")
}

func TestSubmitCompletesDespiteTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(`{"success":true}`))
	}))
	defer server.Close()

	store := draftWithAnswers(t)
	c := New(server.URL, WithDraftStore(store), WithTimeout(20*time.Millisecond))

	result := c.Submit(context.Background(), answersFixture())
	assert.True(t, result.Completed)
	assert.False(t, result.Delivered)
	assert.Error(t, result.Err)
	assert.False(t, draftExists(store))
}

func TestSubmitRejectsInvalidAnswersLocally(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("invalid answers must not reach the server")
	}))
	defer server.Close()

	store := draftWithAnswers(t)
	c := New(server.URL, WithDraftStore(store))

	answers := answersFixture()
	answers[models.QuestionName] = "  "

	result := c.Submit(context.Background(), answers)
	assert.False(t, result.Completed)
	assert.ErrorIs(t, result.Err, ErrInvalidAnswers)
	assert.True(t, draftExists(store), "draft kept so the user can fix the form")
}

func TestDraftStoreRoundTrip(t *testing.T) {
	store := NewDraftStore(filepath.Join(t.TempDir(), DefaultDraftFile), time.Hour)
	require.NoError(t, store.Save(answersFixture()))

	answers, ok, err := store.Load()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "John Doe", answers[models.QuestionName])
}

func TestDraftStoreExpiresAfterTTL(t *testing.T) {
	store := NewDraftStore(filepath.Join(t.TempDir(), DefaultDraftFile), 24*time.Hour)
	current := time.Date(2026, 3, 14, 15, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return current }
	require.NoError(t, store.Save(answersFixture()))

	current = current.Add(25 * time.Hour)
	_, ok, err := store.Load()
	require.NoError(t, err)
	assert.False(t, ok, "expired draft is not loadable")
	assert.False(t, draftExists(store), "expired draft is removed")
}

func TestDraftStoreDiscardsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultDraftFile)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	store := NewDraftStore(path, time.Hour)
	_, ok, err := store.Load()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDraftStoreLoadWithoutFile(t *testing.T) {
	store := NewDraftStore(filepath.Join(t.TempDir(), DefaultDraftFile), time.Hour)
	_, ok, err := store.Load()
	require.NoError(t, err)
	assert.False(t, ok)
}
