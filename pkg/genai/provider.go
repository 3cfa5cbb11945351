package genai

import (
	"context"
	"fmt"
)

// Chunk is one element of a streamed generation. Text carries the full
// visible text so far (monotonically non-decreasing); the element with
// Finished set is always the last one. Err, when set, terminates the
// stream and invalidates Text.
type Chunk struct {
	Text     string
	Finished bool
	Err      error
}

// Option allows for optional parameters like Temperature, MaxTokens, etc.
type Option func(*Options)

type Options struct {
	Temperature float32
	MaxTokens   int
}

func WithTemperature(temp float32) Option {
	return func(o *Options) {
		o.Temperature = temp
	}
}

func WithMaxTokens(n int) Option {
	return func(o *Options) {
		o.MaxTokens = n
	}
}

// Provider defines the contract for any text-generation backend. A stream
// is not restartable; retrying requires a new call.
type Provider interface {
	// Generate sends a system instruction and a user text to the model
	// and returns the full response.
	Generate(ctx context.Context, system, user, model string, options ...Option) (string, error)

	// GenerateStream returns a finite channel of incremental results. The
	// channel is closed after the element carrying Finished (or Err).
	GenerateStream(ctx context.Context, system, user, model string, options ...Option) (<-chan Chunk, error)
}

// GenerationError wraps a failure from the generation backend so callers
// can distinguish it from transcription failures.
type GenerationError struct {
	Op  string
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation %s: %v", e.Op, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}
