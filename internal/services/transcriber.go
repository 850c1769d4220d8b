package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// SpeechBackend converts a recording on disk to text.
type SpeechBackend interface {
	Transcribe(ctx context.Context, audioPath string) (string, error)
}

// WhisperBackend calls an OpenAI-compatible /audio/transcriptions endpoint.
// One instance is created per process and shared by every request.
type WhisperBackend struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

func NewWhisperBackend(baseURL, apiKey, model string, httpClient *http.Client) (*WhisperBackend, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("whisper backend: API key is required")
	}
	if strings.TrimSpace(baseURL) == "" {
		return nil, errors.New("whisper backend: base URL is required")
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &WhisperBackend{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		model:      model,
		httpClient: httpClient,
	}, nil
}

type transcriptionResponse struct {
	Text  string `json:"text"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Transcribe implements SpeechBackend.
func (w *WhisperBackend) Transcribe(ctx context.Context, audioPath string) (string, error) {
	f, err := os.Open(audioPath)
	if err != nil {
		return "", fmt.Errorf("open audio file: %w", err)
	}
	defer f.Close()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filepath.Base(audioPath))
	if err != nil {
		return "", fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return "", fmt.Errorf("copy audio: %w", err)
	}
	if err := mw.WriteField("model", w.model); err != nil {
		return "", fmt.Errorf("write model field: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("close multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.baseURL+"/audio/transcriptions", &body)
	if err != nil {
		return "", fmt.Errorf("create transcription request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+w.apiKey)

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("transcription request: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read transcription response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("transcription API error (status %d): %s", resp.StatusCode, string(respBytes))
	}

	var tr transcriptionResponse
	if err := json.Unmarshal(respBytes, &tr); err != nil {
		return "", fmt.Errorf("parse transcription response: %w", err)
	}
	if tr.Error != nil {
		return "", fmt.Errorf("transcription error: %s", tr.Error.Message)
	}

	return strings.TrimSpace(tr.Text), nil
}

// AudioTranscriber is the TextExtractor for recordings. Calls go through the
// transcription worker so the shared backend sees one request at a time per
// worker.
type AudioTranscriber struct {
	worker TranscriptionWorker
}

func NewAudioTranscriber(worker TranscriptionWorker) *AudioTranscriber {
	return &AudioTranscriber{worker: worker}
}

// ExtractText implements TextExtractor.
func (a *AudioTranscriber) ExtractText(ctx context.Context, audioPath string) string {
	if _, err := os.Stat(audioPath); err != nil {
		log.Printf("❌ Error transcribing audio: file not found: %s\n", audioPath)
		return ""
	}

	text, err := a.worker.Submit(ctx, audioPath)
	if err != nil {
		log.Printf("❌ Error transcribing audio %s: %v\n", audioPath, err)
		return ""
	}

	log.Printf("🎙️ Transcribed %d characters from %s\n", len(text), filepath.Base(audioPath))
	return text
}
