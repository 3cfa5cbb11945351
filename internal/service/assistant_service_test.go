package service

import (
	"context"
	"fmt"
	"testing"

	"voicenote-be/internal/config"
	"voicenote-be/internal/constant"
	"voicenote-be/internal/pkg/logger"
	"voicenote-be/pkg/dialog"
	"voicenote-be/pkg/genai"
	"voicenote-be/pkg/outline"
	"voicenote-be/pkg/session"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingChannel struct {
	sent []string
}

func (c *recordingChannel) Send(_ context.Context, text string) (string, error) {
	c.sent = append(c.sent, text)
	return fmt.Sprintf("m%d", len(c.sent)), nil
}

func (c *recordingChannel) Edit(_ context.Context, _, _ string) error {
	return nil
}

type cannedProvider struct {
	resp string
}

func (p *cannedProvider) Generate(_ context.Context, _, _, _ string, _ ...genai.Option) (string, error) {
	return p.resp, nil
}

func (p *cannedProvider) GenerateStream(_ context.Context, _, _, _ string, _ ...genai.Option) (<-chan genai.Chunk, error) {
	ch := make(chan genai.Chunk, 1)
	ch <- genai.Chunk{Text: p.resp, Finished: true}
	close(ch)
	return ch, nil
}

type cannedTranscriber struct {
	text string
}

func (t *cannedTranscriber) Transcribe(_ context.Context, _ []byte, _ string) (string, error) {
	return t.text, nil
}

func newTestService(t *testing.T) (IAssistantService, *recordingChannel, session.Store) {
	t.Helper()

	nop := logger.NewNopLogger()
	provider := &cannedProvider{resp: "False"}
	classifier := outline.NewClassifier(provider, constant.ModelDefault, nop)
	machine := dialog.NewMachine(dialog.Config{}, &cannedTranscriber{}, provider, classifier, nop, nil)

	store := session.NewMemoryStore()
	ch := &recordingChannel{}
	cfg := config.AssistantConfig{
		DefaultModel:   constant.ModelDefault,
		MessageCharCap: 4096,
	}

	svc := NewAssistantService(machine, store, nil, func(uuid.UUID) dialog.Channel { return ch }, cfg, nop)
	return svc, ch, store
}

func TestHandleTextHelpCommand(t *testing.T) {
	svc, ch, _ := newTestService(t)
	userID := uuid.New()

	for _, cmd := range []string{"/start", "/help"} {
		svc.HandleText(context.Background(), userID, cmd)
	}

	require.Len(t, ch.sent, 2)
	assert.Contains(t, ch.sent[0], "/model")
	assert.Equal(t, ch.sent[0], ch.sent[1])
}

func TestHandleTextModelCommand(t *testing.T) {
	svc, ch, store := newTestService(t)
	userID := uuid.New()
	ctx := context.Background()

	// Without an argument: report the current choice.
	svc.HandleText(ctx, userID, "/model")
	require.NotEmpty(t, ch.sent)
	assert.Contains(t, ch.sent[0], constant.ModelDefault)

	// Unknown model is rejected and nothing persists.
	svc.HandleText(ctx, userID, "/model gpt-99")
	assert.Contains(t, ch.sent[len(ch.sent)-1], "未知模型")

	// A valid model switches and survives the round trip to the store.
	svc.HandleText(ctx, userID, "/model "+constant.ModelPremium)
	assert.Contains(t, ch.sent[len(ch.sent)-1], constant.ModelPremium)

	sess, found, err := store.Load(ctx, userID.String())
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, constant.ModelPremium, sess.ActiveModel)

	models, err := svc.Models(ctx, userID)
	require.NoError(t, err)
	require.Len(t, models, len(constant.AvailableModels))
	for _, m := range models {
		assert.Equal(t, m.ID == constant.ModelPremium, m.Active)
	}
}

func TestHandleTextClearCommand(t *testing.T) {
	svc, ch, store := newTestService(t)
	userID := uuid.New()
	ctx := context.Background()

	// Seed some history through the plain-text path.
	svc.HandleText(ctx, userID, "一段文字")
	sess, found, _ := store.Load(ctx, userID.String())
	require.True(t, found)
	require.Len(t, sess.History, 1)

	svc.HandleText(ctx, userID, "/clear")
	assert.Contains(t, ch.sent[len(ch.sent)-1], "会话已清空")

	sess, _, _ = store.Load(ctx, userID.String())
	assert.Empty(t, sess.History)
}

func TestHandleTextDataCommand(t *testing.T) {
	svc, ch, _ := newTestService(t)
	userID := uuid.New()
	ctx := context.Background()

	svc.HandleText(ctx, userID, "一段文字")
	svc.HandleText(ctx, userID, "/data")

	dump := ch.sent[len(ch.sent)-1]
	assert.Contains(t, dump, `"mode": "REGULAR"`)
	assert.Contains(t, dump, "一段文字")
}

func TestHandleTextUnknownCommand(t *testing.T) {
	svc, ch, _ := newTestService(t)

	svc.HandleText(context.Background(), uuid.New(), "/frobnicate")
	require.NotEmpty(t, ch.sent)
	assert.Contains(t, ch.sent[0], "未知指令")
}

func TestSessionDumpLazySession(t *testing.T) {
	svc, _, _ := newTestService(t)

	dump, err := svc.SessionDump(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, "REGULAR", dump.Mode)
	assert.Equal(t, constant.ModelDefault, dump.ActiveModel)
	assert.Empty(t, dump.History)
}
