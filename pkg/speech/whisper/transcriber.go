package whisper

import (
	"bytes"
	"context"
	"net/http"
	"strings"
	"time"

	"voicenote-be/pkg/speech"

	sdk "github.com/sashabaranov/go-openai"
)

type WhisperTranscriber struct {
	client *sdk.Client
	model  string
}

// Ensure WhisperTranscriber implements Transcriber
var _ speech.Transcriber = &WhisperTranscriber{}

func NewWhisperTranscriber(apiKey, baseURL string) *WhisperTranscriber {
	config := sdk.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = strings.TrimRight(baseURL, "/")
	}
	config.HTTPClient = &http.Client{
		Timeout: 120 * time.Second,
	}
	return &WhisperTranscriber{
		client: sdk.NewClientWithConfig(config),
		model:  sdk.Whisper1,
	}
}

func (t *WhisperTranscriber) Transcribe(ctx context.Context, audio []byte, languageHint string) (string, error) {
	resp, err := t.client.CreateTranscription(ctx, sdk.AudioRequest{
		Model: t.model,
		// FilePath only names the upload part; the bytes come from Reader.
		FilePath: "voice.mp3",
		Reader:   bytes.NewReader(audio),
		Prompt:   languageHint,
	})
	if err != nil {
		return "", &speech.TranscriptionError{Err: err}
	}
	return strings.TrimSpace(resp.Text), nil
}
