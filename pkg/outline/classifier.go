package outline

import (
	"bytes"
	"context"
	"encoding/json"

	"voicenote-be/internal/constant"
	"voicenote-be/internal/pkg/logger"
	"voicenote-be/pkg/genai"
)

// Intent is the classified meaning of a dictated outline command.
type Intent string

const (
	IntentExit   Intent = "exit"
	IntentAppend Intent = "append"
	IntentModify Intent = "modify"
)

// Command is the structured result of classifying one utterance while in
// outline mode.
type Command struct {
	Intent  Intent
	Line    int
	Content string
}

// Classifier asks the generation backend to map free text onto an outline
// command. The backend's structured-output compliance is imperfect, so a
// response that fails to parse degrades to "append the raw text at the
// end" instead of surfacing an error.
type Classifier struct {
	provider genai.Provider
	model    string
	logger   logger.ILogger
}

func NewClassifier(provider genai.Provider, model string, log logger.ILogger) *Classifier {
	return &Classifier{
		provider: provider,
		model:    model,
		logger:   log,
	}
}

// rawCommand mirrors the JSON shape the prompt requests. Line is a pointer
// so an omitted line number is distinguishable from line 0.
type rawCommand struct {
	Intent  string `json:"intent"`
	Line    *int   `json:"line"`
	Content string `json:"content"`
}

// Classify returns the command for the given text. A transport failure of
// the generation call is returned as an error; a malformed response is not.
func (c *Classifier) Classify(ctx context.Context, text string) (Command, error) {
	resp, err := c.provider.Generate(ctx, constant.OutlineCommandPromptV1, text, c.model)
	if err != nil {
		return Command{}, err
	}

	cmd, ok := parseCommand(resp)
	if !ok {
		c.logger.Warn("OutlineClassifier", "Unparseable classification, falling back to append", map[string]interface{}{
			"response": resp,
		})
		return Command{Intent: IntentAppend, Line: EndOfDocument, Content: text}, nil
	}
	return cmd, nil
}

func parseCommand(resp string) (Command, bool) {
	cleaned := []byte(resp)
	cleaned = bytes.TrimSpace(cleaned)
	cleaned = bytes.TrimPrefix(cleaned, []byte("```json"))
	cleaned = bytes.TrimPrefix(cleaned, []byte("```"))
	cleaned = bytes.TrimSuffix(cleaned, []byte("```"))
	cleaned = bytes.TrimSpace(cleaned)

	var raw rawCommand
	if err := json.Unmarshal(cleaned, &raw); err != nil {
		return Command{}, false
	}

	line := EndOfDocument
	if raw.Line != nil {
		line = *raw.Line
	}

	switch Intent(raw.Intent) {
	case IntentExit:
		return Command{Intent: IntentExit}, true
	case IntentModify:
		return Command{Intent: IntentModify, Line: line, Content: raw.Content}, true
	case IntentAppend:
		return Command{Intent: IntentAppend, Line: line, Content: raw.Content}, true
	default:
		return Command{}, false
	}
}
