package openai

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"voicenote-be/pkg/genai"

	sdk "github.com/sashabaranov/go-openai"
)

type OpenAIProvider struct {
	client *sdk.Client
}

// Ensure OpenAIProvider implements Provider
var _ genai.Provider = &OpenAIProvider{}

func NewOpenAIProvider(apiKey, baseURL string) *OpenAIProvider {
	config := sdk.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = strings.TrimRight(baseURL, "/")
	}
	config.HTTPClient = &http.Client{
		Timeout: 120 * time.Second,
	}
	return &OpenAIProvider{
		client: sdk.NewClientWithConfig(config),
	}
}

func buildRequest(system, user, model string, opts ...genai.Option) sdk.ChatCompletionRequest {
	options := &genai.Options{}
	for _, opt := range opts {
		opt(options)
	}

	messages := make([]sdk.ChatCompletionMessage, 0, 2)
	if system != "" {
		messages = append(messages, sdk.ChatCompletionMessage{
			Role:    sdk.ChatMessageRoleSystem,
			Content: system,
		})
	}
	messages = append(messages, sdk.ChatCompletionMessage{
		Role:    sdk.ChatMessageRoleUser,
		Content: user,
	})

	req := sdk.ChatCompletionRequest{
		Model:       model,
		Messages:    messages,
		Temperature: options.Temperature,
	}
	if options.MaxTokens > 0 {
		req.MaxTokens = options.MaxTokens
	}
	return req
}

func (p *OpenAIProvider) Generate(ctx context.Context, system, user, model string, opts ...genai.Option) (string, error) {
	resp, err := p.client.CreateChatCompletion(ctx, buildRequest(system, user, model, opts...))
	if err != nil {
		return "", &genai.GenerationError{Op: "chat", Err: err}
	}
	if len(resp.Choices) == 0 {
		return "", &genai.GenerationError{Op: "chat", Err: errors.New("empty choices in response")}
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func (p *OpenAIProvider) GenerateStream(ctx context.Context, system, user, model string, opts ...genai.Option) (<-chan genai.Chunk, error) {
	req := buildRequest(system, user, model, opts...)
	req.Stream = true

	stream, err := p.client.CreateChatCompletionStream(ctx, req)
	if err != nil {
		return nil, &genai.GenerationError{Op: "stream open", Err: err}
	}

	out := make(chan genai.Chunk)
	go func() {
		defer close(out)
		defer stream.Close()

		var sb strings.Builder
		for {
			resp, err := stream.Recv()
			if errors.Is(err, io.EOF) {
				select {
				case out <- genai.Chunk{Text: strings.TrimSpace(sb.String()), Finished: true}:
				case <-ctx.Done():
				}
				return
			}
			if err != nil {
				select {
				case out <- genai.Chunk{Err: &genai.GenerationError{Op: "stream recv", Err: err}, Finished: true}:
				case <-ctx.Done():
				}
				return
			}
			if len(resp.Choices) == 0 {
				continue
			}
			sb.WriteString(resp.Choices[0].Delta.Content)

			select {
			case out <- genai.Chunk{Text: sb.String()}:
			case <-ctx.Done():
				out <- genai.Chunk{Err: &genai.GenerationError{Op: "stream recv", Err: ctx.Err()}, Finished: true}
				return
			}
		}
	}()
	return out, nil
}
