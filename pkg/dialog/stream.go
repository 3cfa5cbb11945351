package dialog

import (
	"context"
	"errors"

	"voicenote-be/pkg/genai"
)

// streamToChannel consumes a generation stream and keeps one channel
// message updated in place while the text grows. Edits are suppressed
// while the text grows by fewer runes than the threshold, so a chatty
// stream does not turn into a flood of outbound edits; the finished text
// always flushes, split into cap-sized messages.
func (m *Machine) streamToChannel(ctx context.Context, ch Channel, system, user, model string) (string, error) {
	stream, err := m.provider.GenerateStream(ctx, system, user, model)
	if err != nil {
		return "", err
	}

	var msgID string
	var final string
	shown := 0
	finished := false

	for chunk := range stream {
		if chunk.Err != nil {
			return "", chunk.Err
		}
		if chunk.Finished {
			final = chunk.Text
			finished = true
			break
		}

		runes := []rune(chunk.Text)
		if absDelta(len(runes), shown) < m.cfg.StreamEditThreshold {
			continue
		}

		display := chunk.Text
		if len(runes) > m.cfg.MessageCharCap {
			display = string(runes[:m.cfg.MessageCharCap])
		}
		if msgID == "" {
			msgID, err = ch.Send(ctx, display)
		} else {
			err = ch.Edit(ctx, msgID, display)
		}
		if err != nil {
			// Bailing out mid-stream leaves the producer with chunks still
			// to send; drain so it can finish and close the channel.
			go drain(stream)
			return "", err
		}
		shown = len(runes)
	}

	if !finished {
		return "", &genai.GenerationError{Op: "stream", Err: errors.New("stream ended without a finished chunk")}
	}

	segments := splitMessage(final, m.cfg.MessageCharCap)
	if msgID == "" {
		for _, seg := range segments {
			if _, err := ch.Send(ctx, seg); err != nil {
				return "", err
			}
		}
		return final, nil
	}

	if err := ch.Edit(ctx, msgID, segments[0]); err != nil {
		return "", err
	}
	for _, seg := range segments[1:] {
		if _, err := ch.Send(ctx, seg); err != nil {
			return "", err
		}
	}
	return final, nil
}

// sendSplit delivers text as one or more messages within the channel cap.
func (m *Machine) sendSplit(ctx context.Context, ch Channel, text string) error {
	for _, seg := range splitMessage(text, m.cfg.MessageCharCap) {
		if _, err := ch.Send(ctx, seg); err != nil {
			return err
		}
	}
	return nil
}

// splitMessage chunks text into rune-counted segments of at most limit.
func splitMessage(text string, limit int) []string {
	runes := []rune(text)
	if len(runes) <= limit {
		return []string{text}
	}
	segments := make([]string, 0, (len(runes)+limit-1)/limit)
	for start := 0; start < len(runes); start += limit {
		end := start + limit
		if end > len(runes) {
			end = len(runes)
		}
		segments = append(segments, string(runes[start:end]))
	}
	return segments
}

func drain(stream <-chan genai.Chunk) {
	for range stream {
	}
}

func absDelta(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}
