package transcribe

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranscribeSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "whisper-1", r.FormValue("model"))

		_, hdr, err := r.FormFile("file")
		require.NoError(t, err)
		assert.Equal(t, "voice.webm", hdr.Filename)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"text":"My name is John Smith"}`))
	}))
	defer srv.Close()

	c := NewClient("test-key", srv.URL, "")
	text, err := c.Transcribe(context.Background(), "voice.webm", []byte("fake-audio"))

	require.NoError(t, err)
	assert.Equal(t, "My name is John Smith", text)
}

func TestTranscribeMissingKey(t *testing.T) {
	c := NewClient("", "http://localhost:0", "")
	_, err := c.Transcribe(context.Background(), "a.webm", []byte("x"))

	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestTranscribeUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"message":"rate limit exceeded"}}`))
	}))
	defer srv.Close()

	c := NewClient("test-key", srv.URL, "")
	_, err := c.Transcribe(context.Background(), "a.webm", []byte("x"))

	var ue *UpstreamError
	require.True(t, errors.As(err, &ue))
	assert.Equal(t, http.StatusTooManyRequests, ue.Status)
	assert.Contains(t, ue.Body, "rate limit")
}
