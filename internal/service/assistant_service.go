package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"voicenote-be/internal/config"
	"voicenote-be/internal/constant"
	"voicenote-be/internal/dto"
	"voicenote-be/internal/pkg/logger"
	"voicenote-be/pkg/audio"
	"voicenote-be/pkg/dialog"
	"voicenote-be/pkg/session"
	"voicenote-be/pkg/thought"

	"github.com/google/uuid"
)

// IAssistantService defines the assistant service interface. The Handle*
// methods consume websocket frames; the rest back the REST surface.
type IAssistantService interface {
	HandleVoice(ctx context.Context, userID uuid.UUID, audioBytes []byte, mime string)
	HandleText(ctx context.Context, userID uuid.UUID, text string)
	SessionDump(ctx context.Context, userID uuid.UUID) (*dto.SessionDumpResponse, error)
	Models(ctx context.Context, userID uuid.UUID) ([]dto.ModelInfo, error)
}

// ChannelFactory resolves the conversation channel for a user. Kept as a
// function so the service never touches the websocket layer directly.
type ChannelFactory func(userID uuid.UUID) dialog.Channel

type assistantService struct {
	machine   *dialog.Machine
	store     session.Store
	converter *audio.Converter
	channels  ChannelFactory
	cfg       config.AssistantConfig
	logger    logger.ILogger

	// One mutex per user: events for the same session run strictly one
	// at a time, in arrival order; different sessions don't contend.
	locks sync.Map
}

func NewAssistantService(
	machine *dialog.Machine,
	store session.Store,
	converter *audio.Converter,
	channels ChannelFactory,
	cfg config.AssistantConfig,
	log logger.ILogger,
) IAssistantService {
	return &assistantService{
		machine:   machine,
		store:     store,
		converter: converter,
		channels:  channels,
		cfg:       cfg,
		logger:    log,
	}
}

const helpText = `发送一条语音，我会把它转写并整理成文字。
指令:
/start /help - 显示本说明
/data - 查看当前会话数据
/clear - 清空会话
/model <id> - 选择生成模型
发送风格关键词（海明威 / 装逼 / 高情商 / 思考）可以对最近一条内容再加工。
说"进入草稿模式"可以开始逐行口述一份草稿。`

func (s *assistantService) HandleVoice(ctx context.Context, userID uuid.UUID, audioBytes []byte, mime string) {
	ch := s.channels(userID)

	data := audioBytes
	if s.converter != nil && s.converter.NeedsConversion(mime) {
		converted, err := s.converter.Convert(ctx, audioBytes)
		if err != nil {
			// The transcriber copes with most containers; try the
			// original bytes before giving up.
			s.logger.Warn("Assistant", "Audio conversion failed, sending original", map[string]interface{}{
				"user_id": userID,
				"mime":    mime,
				"error":   err.Error(),
			})
		} else {
			data = converted
		}
	}

	s.withSession(ctx, userID, ch, func(sess *thought.Session) error {
		return s.machine.HandleVoice(ctx, sess, ch, data)
	})
}

func (s *assistantService) HandleText(ctx context.Context, userID uuid.UUID, text string) {
	ch := s.channels(userID)

	trimmed := strings.TrimSpace(text)
	if strings.HasPrefix(trimmed, "/") {
		s.handleCommand(ctx, userID, ch, trimmed)
		return
	}

	s.withSession(ctx, userID, ch, func(sess *thought.Session) error {
		return s.machine.HandleText(ctx, sess, ch, trimmed)
	})
}

func (s *assistantService) handleCommand(ctx context.Context, userID uuid.UUID, ch dialog.Channel, cmd string) {
	parts := strings.Fields(cmd)

	switch parts[0] {
	case "/start", "/help":
		ch.Send(ctx, helpText)

	case "/clear":
		s.withSession(ctx, userID, ch, func(sess *thought.Session) error {
			sess.Clear()
			ch.Send(ctx, "会话已清空。")
			return nil
		})

	case "/data":
		s.withSession(ctx, userID, ch, func(sess *thought.Session) error {
			ch.Send(ctx, s.renderDump(sess))
			return nil
		})

	case "/model":
		if len(parts) < 2 {
			s.withSession(ctx, userID, ch, func(sess *thought.Session) error {
				ch.Send(ctx, fmt.Sprintf("当前模型: %s。可选: %s",
					sess.ActiveModel, strings.Join(constant.AvailableModels, ", ")))
				return nil
			})
			return
		}
		requested := parts[1]
		if !isKnownModel(requested) {
			ch.Send(ctx, fmt.Sprintf("未知模型 %s。可选: %s",
				requested, strings.Join(constant.AvailableModels, ", ")))
			return
		}
		s.withSession(ctx, userID, ch, func(sess *thought.Session) error {
			sess.ActiveModel = requested
			ch.Send(ctx, "已切换到 "+requested)
			return nil
		})

	default:
		ch.Send(ctx, "未知指令，发送 /help 查看用法。")
	}
}

// renderDump serializes the session for /data, falling back to a summary
// when the full dump would not fit in a single channel message.
func (s *assistantService) renderDump(sess *thought.Session) string {
	dump := sessionToDump(sess)
	data, err := json.MarshalIndent(dump, "", "  ")
	if err == nil && utf8.RuneCount(data) <= s.cfg.MessageCharCap {
		return string(data)
	}
	return fmt.Sprintf("会话包含 %d 条记录，模式 %s，模型 %s。完整数据过长，无法在此展示。",
		len(sess.History), sess.Mode, sess.ActiveModel)
}

func (s *assistantService) SessionDump(ctx context.Context, userID uuid.UUID) (*dto.SessionDumpResponse, error) {
	mu := s.lockFor(userID)
	mu.Lock()
	defer mu.Unlock()

	sess, found, err := s.store.Load(ctx, userID.String())
	if err != nil {
		return nil, err
	}
	if !found {
		sess = thought.NewSession(userID.String(), s.cfg.DefaultModel)
	}
	return sessionToDump(sess), nil
}

func (s *assistantService) Models(ctx context.Context, userID uuid.UUID) ([]dto.ModelInfo, error) {
	mu := s.lockFor(userID)
	mu.Lock()
	defer mu.Unlock()

	active := s.cfg.DefaultModel
	if sess, found, err := s.store.Load(ctx, userID.String()); err == nil && found {
		active = sess.ActiveModel
	}

	models := make([]dto.ModelInfo, 0, len(constant.AvailableModels))
	for _, id := range constant.AvailableModels {
		models = append(models, dto.ModelInfo{ID: id, Active: id == active})
	}
	return models, nil
}

// withSession runs fn with the user's session held exclusively, creating
// the session lazily and persisting it afterwards. fn reports its own
// failures to the channel; a store failure is reported here.
func (s *assistantService) withSession(ctx context.Context, userID uuid.UUID, ch dialog.Channel, fn func(*thought.Session) error) {
	mu := s.lockFor(userID)
	mu.Lock()
	defer mu.Unlock()

	key := userID.String()
	sess, found, err := s.store.Load(ctx, key)
	if err != nil {
		s.logger.Error("Assistant", "Session load failed", map[string]interface{}{
			"user_id": key,
			"error":   err.Error(),
		})
		ch.Send(ctx, "服务暂时不可用，请稍后再试。")
		return
	}
	if !found {
		sess = thought.NewSession(key, s.cfg.DefaultModel)
	}

	if err := fn(sess); err != nil {
		// Already surfaced on the channel; log for the operator.
		s.logger.Warn("Assistant", "Event handling failed", map[string]interface{}{
			"user_id": key,
			"error":   err.Error(),
		})
	}

	if err := s.store.Save(ctx, sess); err != nil {
		s.logger.Error("Assistant", "Session save failed", map[string]interface{}{
			"user_id": key,
			"error":   err.Error(),
		})
	}
}

func (s *assistantService) lockFor(userID uuid.UUID) *sync.Mutex {
	actual, _ := s.locks.LoadOrStore(userID.String(), &sync.Mutex{})
	return actual.(*sync.Mutex)
}

func isKnownModel(id string) bool {
	for _, m := range constant.AvailableModels {
		if m == id {
			return true
		}
	}
	return false
}

func sessionToDump(sess *thought.Session) *dto.SessionDumpResponse {
	history := make([]dto.ThoughtDTO, 0, len(sess.History))
	for _, rec := range sess.History {
		history = append(history, dto.ThoughtDTO{
			Tag:             rec.Tag,
			Fields:          rec.Fields,
			DerivationOrder: rec.DerivationOrder,
			ActiveField:     rec.ActiveField,
			Model:           rec.Model,
			CreatedAt:       rec.CreatedAt,
		})
	}
	return &dto.SessionDumpResponse{
		Mode:         string(sess.Mode),
		ActiveModel:  sess.ActiveModel,
		OutlineLines: sess.OutlineLines,
		History:      history,
	}
}
