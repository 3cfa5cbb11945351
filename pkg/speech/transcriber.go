package speech

import (
	"context"
	"fmt"
)

// Transcriber converts raw audio bytes into plain text. The language hint
// biases recognition and may be empty.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, languageHint string) (string, error)
}

// TranscriptionError wraps a failure from the speech-to-text backend.
type TranscriptionError struct {
	Err error
}

func (e *TranscriptionError) Error() string {
	return fmt.Sprintf("transcription: %v", e.Err)
}

func (e *TranscriptionError) Unwrap() error {
	return e.Err
}
