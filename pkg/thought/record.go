package thought

import (
	"time"
)

// Well-known field names inside a Record.
const (
	FieldTag         = "tag"
	FieldModel       = "model"
	FieldContent     = "content"
	FieldTranscribed = "transcribed"
	FieldParaphrased = "paraphrased"
)

// Record is one user-originated unit of content, iteratively reshaped into
// derived text fields. DerivationOrder is append-only and records the
// sequence in which fields were produced; ActiveField is a cursor naming
// the field the next derivation reads. Every name in DerivationOrder is a
// key of Fields, and ActiveField always is too.
type Record struct {
	Tag             string            `json:"tag"`
	Fields          map[string]string `json:"fields"`
	DerivationOrder []string          `json:"derivation_order"`
	ActiveField     string            `json:"active_field"`
	Model           string            `json:"model"`
	CreatedAt       time.Time         `json:"created_at"`
}

// NewRecord builds a record for a freshly transcribed voice message.
// Content starts equal to the transcription; a tag parser may have already
// separated the two, in which case content carries the classified text.
func NewRecord(tag, content, transcribed, model string) *Record {
	return &Record{
		Tag: tag,
		Fields: map[string]string{
			FieldTag:         tag,
			FieldModel:       model,
			FieldContent:     content,
			FieldTranscribed: transcribed,
		},
		DerivationOrder: []string{FieldTag, FieldModel, FieldTranscribed},
		ActiveField:     FieldTranscribed,
		Model:           model,
		CreatedAt:       time.Now(),
	}
}

// NewSetMessage builds a pseudo-record for raw user-supplied text that
// never went through transcription. It still participates in style
// derivations as the most recent thought.
func NewSetMessage(text string) *Record {
	return &Record{
		Tag: "",
		Fields: map[string]string{
			FieldContent: text,
		},
		DerivationOrder: []string{FieldContent},
		ActiveField:     FieldContent,
		CreatedAt:       time.Now(),
	}
}

// ActiveText returns the text the next derivation should read.
func (r *Record) ActiveText() string {
	return r.Fields[r.ActiveField]
}

// AppendField stores a derived value and extends the derivation order.
// When advance is set the cursor moves to the new field; a non-continuing
// derivation leaves it where it was.
func (r *Record) AppendField(name, value string, advance bool) {
	r.Fields[name] = value
	r.DerivationOrder = append(r.DerivationOrder, name)
	if advance {
		r.ActiveField = name
	}
}
