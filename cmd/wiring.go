package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/sushmitharayikanti/ai-job-screening/internal/ai"
	"github.com/sushmitharayikanti/ai-job-screening/internal/ai/gemini"
	"github.com/sushmitharayikanti/ai-job-screening/internal/ai/openai"
	"github.com/sushmitharayikanti/ai-job-screening/internal/judge"
	"github.com/sushmitharayikanti/ai-job-screening/internal/logger"
	"github.com/sushmitharayikanti/ai-job-screening/internal/scoring"
	"github.com/sushmitharayikanti/ai-job-screening/internal/screening"
	"github.com/sushmitharayikanti/ai-job-screening/internal/secrets"
)

func newEngine(config *Config, log *zap.Logger) (*scoring.Engine, error) {
	cfg, err := config.Scoring.Resolve()
	if err != nil {
		return nil, fmt.Errorf("resolving scoring config: %w", err)
	}
	return scoring.NewEngine(cfg, log.With(zap.String("variant", string(cfg.Variant))))
}

// newGenerator returns the judge backend. A nil generator with a nil error
// means the judge is disabled.
func newGenerator(ctx context.Context, cfg *JudgeConfig, log *zap.Logger) (ai.Generator, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, nil
	}

	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	switch provider {
	case "", ai.ProviderGemini:
		apiKey, err := secrets.Load(secrets.Source{
			Name:  "gemini api key",
			Value: cfg.Gemini.APIKey,
			File:  cfg.Gemini.APIKeyFile,
			Env:   "GEMINI_API_KEY",
		})
		if err != nil {
			return nil, fmt.Errorf("%w (set judge.gemini.api-key-file or GEMINI_API_KEY_FILE)", err)
		}

		genLogger := logger.WithCommonFields(log, ai.ProviderGemini, cfg.Gemini.Model).
			With(zap.Int("ai_retry_attempts", cfg.Gemini.MaxRetries))

		generator, err := gemini.NewGenerator(ctx, gemini.Options{
			APIKey:       apiKey,
			Model:        cfg.Gemini.Model,
			MaxRetries:   cfg.Gemini.MaxRetries,
			MaxLogLength: cfg.Gemini.MaxLogLength,
		}, genLogger)
		if err != nil {
			return nil, err
		}
		return generator, nil

	case ai.ProviderOpenAI:
		// Local OpenAI-compatible servers usually run without a key.
		apiKey, err := secrets.Load(secrets.Source{
			Name:  "openai api key",
			Value: cfg.OpenAI.APIKey,
			File:  cfg.OpenAI.APIKeyFile,
			Env:   "OPENAI_API_KEY",
		})
		if err != nil && !errors.Is(err, secrets.ErrNotConfigured) {
			return nil, err
		}

		return openai.NewGenerator(openai.Options{
			BaseURL:    cfg.OpenAI.BaseURL,
			APIKey:     apiKey,
			Model:      cfg.OpenAI.Model,
			MaxRetries: cfg.OpenAI.MaxRetries,
		}, logger.WithCommonFields(log, ai.ProviderOpenAI, cfg.OpenAI.Model)), nil

	default:
		return nil, fmt.Errorf("unsupported judge provider: %s", cfg.Provider)
	}
}

// newAdapter builds the scoring engine and the judge around it. A judge that
// cannot be built is skipped and scoring stays heuristic-only.
func newAdapter(ctx context.Context, config *Config, log *zap.Logger) (*judge.Adapter, ai.Generator, error) {
	engine, err := newEngine(config, log)
	if err != nil {
		return nil, nil, err
	}

	generator, err := newGenerator(ctx, config.Judge, log)
	if err != nil {
		log.Warn("skipping the judge, scoring is heuristic only", zap.Error(err))
		generator = nil
	}

	adapter := judge.NewAdapter(engine, generator, judge.Options{
		Timeout:      config.Judge.Timeout,
		MaxLogLength: config.Judge.Gemini.MaxLogLength,
	}, log)

	return adapter, generator, nil
}

func newQuestionGenerator(config *Config, generator ai.Generator, log *zap.Logger) *judge.QuestionGenerator {
	return judge.NewQuestionGenerator(generator, judge.QuestionOptions{
		MinScore: config.Questions.MinScore,
		Count:    config.Questions.Count,
		Timeout:  config.Judge.Timeout,
	}, log)
}

// prepareFilters returns the pre-filter chain. The history filter is disabled
// when no history file is configured or when asked to rescreen.
func prepareFilters(config *Config, rescreen bool) []screening.Filter {
	steps := screening.DefaultFilters()
	switch {
	case rescreen:
		screening.DisableByName(steps, "history", "rescreening requested")
	case strings.TrimSpace(config.HistoryFile) == "":
		screening.DisableByName(steps, "history", "history-file is not set")
	}
	return steps
}
