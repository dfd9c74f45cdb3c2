// Package openai is a judge backend for any server speaking the OpenAI chat
// completions protocol, such as a local Ollama instance.
package openai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	openaisdk "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/sushmitharayikanti/ai-job-screening/internal/ai"
	"github.com/sushmitharayikanti/ai-job-screening/internal/logger"
	"github.com/sushmitharayikanti/ai-job-screening/internal/utils"
	"go.uber.org/zap"
)

const (
	DefaultBaseURL      = "http://localhost:11434/v1/"
	DefaultModel        = "llama2"
	defaultTemperature  = 0.1
	defaultMaxLogLength = 200
	// Ollama ignores the key but the client refuses to send an empty one.
	placeholderAPIKey = "ollama"
)

type completions interface {
	New(ctx context.Context, body openaisdk.ChatCompletionNewParams, opts ...option.RequestOption) (*openaisdk.ChatCompletion, error)
}

// Options configures a Generator.
type Options struct {
	BaseURL      string
	APIKey       string
	Model        string
	MaxRetries   int
	MaxLogLength int
	Temperature  float64
}

// Generator sends chat completion requests.
type Generator struct {
	completions completions
	model       string
	temperature float64
	maxLogLen   int
	logger      *zap.Logger
}

var _ ai.Generator = (*Generator)(nil)

// NewGenerator builds a Generator for the given endpoint. Retries are handled
// by the SDK and bounded by MaxRetries.
func NewGenerator(opts Options, log *zap.Logger) *Generator {
	baseURL := strings.TrimSpace(opts.BaseURL)
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	apiKey := strings.TrimSpace(opts.APIKey)
	if apiKey == "" {
		apiKey = placeholderAPIKey
	}
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = DefaultModel
	}
	temperature := opts.Temperature
	if temperature <= 0 {
		temperature = defaultTemperature
	}
	maxLogLen := opts.MaxLogLength
	if maxLogLen <= 0 {
		maxLogLen = defaultMaxLogLength
	}
	retries := opts.MaxRetries - 1
	if retries < 0 {
		retries = 0
	}

	client := openaisdk.NewClient(
		option.WithBaseURL(baseURL),
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(retries),
	)

	return &Generator{
		completions: &client.Chat.Completions,
		model:       model,
		temperature: temperature,
		maxLogLen:   maxLogLen,
		logger:      logger.WithCommonFields(log, ai.ProviderOpenAI, model),
	}
}

// GenerateContent returns the first non-empty choice of a chat completion.
func (g *Generator) GenerateContent(ctx context.Context, systemInstruction, message string) (string, error) {
	if g == nil || g.completions == nil {
		return "", errors.New("openai generator is not initialized")
	}

	message = strings.TrimSpace(message)
	if message == "" {
		return "", errors.New("message must not be empty")
	}

	var messages []openaisdk.ChatCompletionMessageParamUnion
	if s := strings.TrimSpace(systemInstruction); s != "" {
		messages = append(messages, openaisdk.SystemMessage(s))
	}
	messages = append(messages, openaisdk.UserMessage(message))

	log := g.logger
	if log == nil {
		log = zap.NewNop()
	}
	log.Debug("chat completion request",
		zap.Int("message_length", utf8.RuneCountInString(message)),
		zap.String("message_preview", utils.TruncateForLog(message, g.maxLogLen)),
	)

	resp, err := g.completions.New(ctx, openaisdk.ChatCompletionNewParams{
		Model:       g.model,
		Messages:    messages,
		Temperature: openaisdk.Float(g.temperature),
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}

	for _, choice := range resp.Choices {
		text := strings.TrimSpace(choice.Message.Content)
		if text == "" {
			continue
		}
		log.Debug("chat completion response",
			zap.Int("response_length", utf8.RuneCountInString(text)),
			zap.String("response_preview", utils.TruncateForLog(text, g.maxLogLen)),
		)
		return text, nil
	}

	return "", ai.ErrEmptyResponse
}

// Model returns the configured model name.
func (g *Generator) Model() string {
	if g == nil {
		return ""
	}
	return g.model
}
