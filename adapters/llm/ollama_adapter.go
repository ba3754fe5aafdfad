package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/khoahotran/skillsync/internal/application/service"
	"github.com/khoahotran/skillsync/internal/config"
	"github.com/khoahotran/skillsync/pkg/logger"
)

type ollamaLLMAdapter struct {
	client *openai.Client
	model  string
	log    logger.Logger
}

// NewOllamaLLMAdapter talks to Ollama through its OpenAI compatible API.
func NewOllamaLLMAdapter(cfg config.Config, log logger.Logger) (service.LLMService, error) {
	if cfg.Ollama.Host == "" {
		return nil, fmt.Errorf("ollama host is not configured")
	}

	clientCfg := openai.DefaultConfig("ollama")
	clientCfg.BaseURL = strings.TrimRight(cfg.Ollama.Host, "/")
	if !strings.HasSuffix(clientCfg.BaseURL, "/v1") {
		clientCfg.BaseURL += "/v1"
	}

	log.Info("Ollama LLM adapter initialized", zap.String("base_url", clientCfg.BaseURL), zap.String("model", cfg.Ollama.Model))
	return &ollamaLLMAdapter{
		client: openai.NewClientWithConfig(clientCfg),
		model:  cfg.Ollama.Model,
		log:    log,
	}, nil
}

func (a *ollamaLLMAdapter) GenerateChatResponse(ctx context.Context, prompt string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: a.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		Stream: false,
	}

	resp, err := a.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("ollama chat completion request failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("ollama returned no chat choices")
	}

	return resp.Choices[0].Message.Content, nil
}
