package dialog

import (
	"context"
	"fmt"
	"strings"

	"voicenote-be/internal/constant"
	"voicenote-be/internal/pkg/logger"
	"voicenote-be/pkg/events"
	"voicenote-be/pkg/genai"
	"voicenote-be/pkg/outline"
	"voicenote-be/pkg/speech"
	"voicenote-be/pkg/thought"
)

// Channel is the conversation surface the machine replies through. Send
// returns a message id usable by Edit for in-place updates while a
// streamed reply grows.
type Channel interface {
	Send(ctx context.Context, text string) (string, error)
	Edit(ctx context.Context, messageID, text string) error
}

// EventPublisher receives lifecycle events. Publishing is best effort and
// never affects the conversation.
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// Config carries every tunable of the machine. There is no package-level
// state; two machines with different configs can coexist.
type Config struct {
	DefaultModel        string
	StyleModel          string
	StreamEditThreshold int
	MessageCharCap      int
	OutlineIntentMaxLen int
	LanguageHint        string
	ClassifyTags        bool
	StreamReplies       bool
}

func (c Config) withDefaults() Config {
	if c.DefaultModel == "" {
		c.DefaultModel = constant.ModelDefault
	}
	if c.StyleModel == "" {
		c.StyleModel = constant.ModelPremium
	}
	if c.StreamEditThreshold == 0 {
		c.StreamEditThreshold = 50
	}
	if c.MessageCharCap == 0 {
		c.MessageCharCap = 4096
	}
	if c.OutlineIntentMaxLen == 0 {
		c.OutlineIntentMaxLen = 30
	}
	return c
}

// Machine drives one session through the regular/outline conversation
// lifecycle. It mutates exactly one session per call and never commits
// partial results: a gateway failure leaves the session as it was before
// the event began.
type Machine struct {
	cfg         Config
	transcriber speech.Transcriber
	provider    genai.Provider
	classifier  *outline.Classifier
	logger      logger.ILogger
	publisher   EventPublisher
}

func NewMachine(
	cfg Config,
	transcriber speech.Transcriber,
	provider genai.Provider,
	classifier *outline.Classifier,
	log logger.ILogger,
	publisher EventPublisher,
) *Machine {
	return &Machine{
		cfg:         cfg.withDefaults(),
		transcriber: transcriber,
		provider:    provider,
		classifier:  classifier,
		logger:      log,
		publisher:   publisher,
	}
}

const (
	msgOutlineEntered = "进入草稿模式。说出要添加或修改的内容，说\"退出草稿模式\"结束。"
	msgOutlineExited  = "已退出草稿模式。"
	msgNothingToStyle = "还没有可以加工的内容，请先发送一条语音。"
	msgTextSaved      = "已记录这段文字，风格指令将作用于它。"
)

// HandleVoice processes one inbound voice message for the session.
func (m *Machine) HandleVoice(ctx context.Context, sess *thought.Session, ch Channel, audio []byte) error {
	text, err := m.transcriber.Transcribe(ctx, audio, m.cfg.LanguageHint)
	if err != nil {
		m.report(ctx, ch, "语音识别失败: "+err.Error(), err)
		return err
	}

	if sess.Mode == thought.ModeOutline {
		return m.handleOutlineVoice(ctx, sess, ch, text)
	}

	enter, err := m.isOutlineIntent(ctx, text)
	if err != nil {
		m.report(ctx, ch, "意图识别失败: "+err.Error(), err)
		return err
	}
	if enter {
		sess.EnterOutline()
		m.publish(ctx, events.NewOutlineEntered(sess.UserID))
		m.reply(ctx, ch, msgOutlineEntered)
		return nil
	}

	return m.deriveParaphrase(ctx, sess, ch, text)
}

// HandleText processes one inbound free-text message: a style key applies
// a derivation to the last thought, anything else becomes a new pseudo
// thought. In outline mode any text ends the draft.
func (m *Machine) HandleText(ctx context.Context, sess *thought.Session, ch Channel, text string) error {
	text = strings.TrimSpace(text)

	if sess.Mode == thought.ModeOutline {
		lines := len(sess.OutlineLines)
		sess.ExitOutline()
		m.publish(ctx, events.NewOutlineExited(sess.UserID, lines))
		m.reply(ctx, ch, msgOutlineExited)
		return nil
	}

	if system, ok := constant.StylePrompts[text]; ok {
		return m.deriveStyle(ctx, sess, ch, text, system)
	}

	sess.Append(thought.NewSetMessage(text))
	m.reply(ctx, ch, msgTextSaved)
	return nil
}

// deriveParaphrase runs the full pipeline for a fresh transcription: tag
// parsing, paraphrase generation (streamed when configured), and only then
// the commit to history.
func (m *Machine) deriveParaphrase(ctx context.Context, sess *thought.Session, ch Channel, transcribed string) error {
	tag, content := constant.DefaultTag, transcribed
	if m.cfg.ClassifyTags {
		tag, content = m.classifyTag(ctx, transcribed)
	}

	rec := thought.NewRecord(tag, content, transcribed, sess.ActiveModel)

	var out string
	var err error
	if m.cfg.StreamReplies {
		out, err = m.streamToChannel(ctx, ch, constant.ParaphrasePromptV1, content, sess.ActiveModel)
	} else {
		out, err = m.provider.Generate(ctx, constant.ParaphrasePromptV1, content, sess.ActiveModel)
		if err == nil {
			err = m.sendSplit(ctx, ch, out)
		}
	}
	if err != nil {
		m.report(ctx, ch, "生成失败: "+err.Error(), err)
		return err
	}

	rec.AppendField(thought.FieldParaphrased, out, true)
	sess.Append(rec)
	m.publish(ctx, events.NewThoughtCreated(sess.UserID, rec.Tag, rec.Model))
	return nil
}

// deriveStyle applies one style instruction to the active field of the
// most recent thought. The critique style is defined as non-continuing:
// its output is stored but the cursor stays put.
func (m *Machine) deriveStyle(ctx context.Context, sess *thought.Session, ch Channel, key, system string) error {
	last := sess.LastRecord()
	if last == nil {
		m.reply(ctx, ch, msgNothingToStyle)
		return nil
	}

	out, err := m.provider.Generate(ctx, system, last.ActiveText(), m.cfg.StyleModel)
	if err != nil {
		m.report(ctx, ch, "生成失败: "+err.Error(), err)
		return err
	}

	newField := last.ActiveField + "_" + key
	last.AppendField(newField, out, key != constant.NonContinuingStyleKey)
	return m.sendSplit(ctx, ch, out)
}

// handleOutlineVoice interprets a transcription as a line-editing command.
func (m *Machine) handleOutlineVoice(ctx context.Context, sess *thought.Session, ch Channel, text string) error {
	cmd, err := m.classifier.Classify(ctx, text)
	if err != nil {
		m.report(ctx, ch, "指令识别失败: "+err.Error(), err)
		return err
	}

	doc := outline.NewDocument(sess.OutlineLines)
	switch cmd.Intent {
	case outline.IntentExit:
		lines := doc.Len()
		sess.ExitOutline()
		m.publish(ctx, events.NewOutlineExited(sess.UserID, lines))
		m.reply(ctx, ch, msgOutlineExited)
		return nil

	case outline.IntentModify:
		if err := doc.Modify(cmd.Content, cmd.Line); err != nil {
			m.reply(ctx, ch, fmt.Sprintf("第%d行不存在，当前草稿共%d行。", cmd.Line, doc.Len()))
			return nil
		}

	case outline.IntentAppend:
		doc.Append(cmd.Content, cmd.Line)
	}

	sess.OutlineLines = doc.Lines
	return m.sendSplit(ctx, ch, doc.Render())
}

func (m *Machine) reply(ctx context.Context, ch Channel, text string) {
	if _, err := ch.Send(ctx, text); err != nil {
		m.logger.Warn("Dialog", "Failed to send reply", map[string]interface{}{"error": err.Error()})
	}
}

func (m *Machine) report(ctx context.Context, ch Channel, userMessage string, err error) {
	m.logger.Error("Dialog", "Pipeline step failed", map[string]interface{}{"error": err.Error()})
	m.reply(ctx, ch, userMessage)
}

func (m *Machine) publish(ctx context.Context, event events.Event) {
	if m.publisher == nil {
		return
	}
	if err := m.publisher.Publish(ctx, event); err != nil {
		m.logger.Warn("Dialog", "Event publish failed", map[string]interface{}{
			"event": event.EventType(),
			"error": err.Error(),
		})
	}
}
