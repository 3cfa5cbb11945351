package dialog

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"unicode/utf8"

	"voicenote-be/internal/constant"
)

// isOutlineIntent asks whether the text expresses an intent to enter
// outline mode. Real mode-entry phrases are short commands, so anything
// longer than the configured threshold skips the gateway call entirely.
func (m *Machine) isOutlineIntent(ctx context.Context, text string) (bool, error) {
	if utf8.RuneCountInString(text) > m.cfg.OutlineIntentMaxLen {
		return false, nil
	}

	resp, err := m.provider.Generate(ctx, constant.OutlineIntentPromptV1, text, m.cfg.DefaultModel)
	if err != nil {
		return false, err
	}
	return strings.Contains(strings.ToLower(resp), "true"), nil
}

type taggedText struct {
	Tag     string `json:"tag"`
	Content string `json:"content"`
}

// classifyTag separates a leading tag marker from the content of a
// transcription. Any failure, transport or parse, degrades to the default
// tag with the raw text as content; tagging is never worth failing the
// pipeline over.
func (m *Machine) classifyTag(ctx context.Context, text string) (string, string) {
	resp, err := m.provider.Generate(ctx, constant.TagParsePromptV1, text, m.cfg.DefaultModel)
	if err != nil {
		m.logger.Warn("Dialog", "Tag classification failed, using default tag", map[string]interface{}{
			"error": err.Error(),
		})
		return constant.DefaultTag, text
	}

	cleaned := []byte(resp)
	cleaned = bytes.TrimSpace(cleaned)
	cleaned = bytes.TrimPrefix(cleaned, []byte("```json"))
	cleaned = bytes.TrimPrefix(cleaned, []byte("```"))
	cleaned = bytes.TrimSuffix(cleaned, []byte("```"))
	cleaned = bytes.TrimSpace(cleaned)

	var parsed taggedText
	if err := json.Unmarshal(cleaned, &parsed); err != nil {
		return constant.DefaultTag, text
	}
	if parsed.Tag == "" {
		parsed.Tag = constant.DefaultTag
	}
	if parsed.Content == "" {
		parsed.Content = text
	}
	return parsed.Tag, parsed.Content
}
