package audio

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Converter rewraps voice notes into a container the transcription service
// accepts. Chat clients typically deliver ogg/opus; Whisper wants mp3.
type Converter struct {
	FfmpegPath   string
	OutputFormat string
}

func NewConverter(ffmpegPath string) *Converter {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	return &Converter{
		FfmpegPath:   ffmpegPath,
		OutputFormat: "mp3",
	}
}

// NeedsConversion reports whether the mime type is already acceptable.
func (c *Converter) NeedsConversion(mime string) bool {
	mime = strings.ToLower(mime)
	return !strings.Contains(mime, "mp3") && !strings.Contains(mime, "mpeg") && !strings.Contains(mime, "wav")
}

// Convert pipes the input through ffmpeg and returns the re-encoded bytes.
func (c *Converter) Convert(ctx context.Context, input []byte) ([]byte, error) {
	cmd := exec.CommandContext(ctx, c.FfmpegPath,
		"-hide_banner", "-loglevel", "error",
		"-i", "pipe:0",
		"-f", c.OutputFormat,
		"pipe:1",
	)
	cmd.Stdin = bytes.NewReader(input)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("ffmpeg convert: %w: %s", err, strings.TrimSpace(stderr.String()))
	}
	return stdout.Bytes(), nil
}
