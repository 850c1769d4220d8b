package services

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const geminiReply = `{"candidates":[{"content":{"parts":[{"text":"%s"}],"role":"model"}}]}`

func makeGeminiServer(t *testing.T, statusCode int, body string, requestBody *string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, ":generateContent"), r.URL.Path)
		if requestBody != nil {
			raw, err := io.ReadAll(r.Body)
			require.NoError(t, err)
			*requestBody = string(raw)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(statusCode)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestGeminiClient(t *testing.T, srv *httptest.Server) *GeminiClient {
	t.Helper()
	client, err := NewGeminiClient(context.Background(), "test-key", "gemini-2.5-flash", srv.URL, srv.Client())
	require.NoError(t, err)
	return client
}

func TestNewGeminiClient_RequiresKey(t *testing.T) {
	_, err := NewGeminiClient(context.Background(), "", "gemini-2.5-flash", "", nil)
	assert.Error(t, err)
}

func TestGeminiClient_Complete(t *testing.T) {
	var body string
	srv := makeGeminiServer(t, http.StatusOK, strings.Replace(geminiReply, "%s", "profile json", 1), &body)

	got, err := newTestGeminiClient(t, srv).Complete(context.Background(), "extract the profile")
	require.NoError(t, err)

	assert.Equal(t, "profile json", got)
	assert.Contains(t, body, "extract the profile")
}

func TestGeminiClient_Complete_HTTPError(t *testing.T) {
	srv := makeGeminiServer(t, http.StatusInternalServerError, `{"error":{"code":500,"message":"internal","status":"INTERNAL"}}`, nil)

	_, err := newTestGeminiClient(t, srv).Complete(context.Background(), "p")
	assert.Error(t, err)
}

func TestGeminiClient_Complete_EmptyCandidates(t *testing.T) {
	srv := makeGeminiServer(t, http.StatusOK, `{"candidates":[]}`, nil)

	_, err := newTestGeminiClient(t, srv).Complete(context.Background(), "p")
	assert.Error(t, err)
}

func TestGeminiClient_Transcribe(t *testing.T) {
	var body string
	srv := makeGeminiServer(t, http.StatusOK, strings.Replace(geminiReply, "%s", "  I build distributed systems.  ", 1), &body)
	audio := writeTempFile(t, "pitch.wav", "RIFF fake wav bytes")

	got, err := newTestGeminiClient(t, srv).Transcribe(context.Background(), audio)
	require.NoError(t, err)

	assert.Equal(t, "I build distributed systems.", got)
	assert.Contains(t, body, "audio/wav")
	assert.Contains(t, body, "Transcribe this audio recording")
}

func TestGeminiClient_Transcribe_MissingFile(t *testing.T) {
	srv := makeGeminiServer(t, http.StatusOK, strings.Replace(geminiReply, "%s", "x", 1), nil)

	_, err := newTestGeminiClient(t, srv).Transcribe(context.Background(), "/does/not/exist.mp3")
	assert.Error(t, err)
}
