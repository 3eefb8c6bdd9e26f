package turnstile

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/leadform-api/pkg/config"
)

func newVerifierAgainst(t *testing.T, handler http.HandlerFunc) *Verifier {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return New(config.TurnstileConfig{SecretKey: "secret-1", VerifyURL: server.URL})
}

func TestVerifyAcceptsValidToken(t *testing.T) {
	v := newVerifierAgainst(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "secret-1", r.FormValue("secret"))
		assert.Equal(t, "token-1", r.FormValue("response"))
		assert.Equal(t, "203.0.113.9", r.FormValue("remoteip"))
		w.Write([]byte(`{"success":true}`))
	})

	assert.NoError(t, v.Verify(context.Background(), "token-1", "203.0.113.9"))
}

func TestVerifyReportsRejection(t *testing.T) {
	v := newVerifierAgainst(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":false,"error-codes":["invalid-input-response"]}`))
	})

	err := v.Verify(context.Background(), "bad-token", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid-input-response")
}

func TestVerifyIsNoopWithoutSecret(t *testing.T) {
	v := New(config.TurnstileConfig{})
	assert.False(t, v.Enabled())
	assert.NoError(t, v.Verify(context.Background(), "anything", ""))
}
