// Package judge lets an external language model override the heuristic score
// while guaranteeing a valid result whatever the model does.
package judge

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/sushmitharayikanti/ai-job-screening/internal/ai"
	"github.com/sushmitharayikanti/ai-job-screening/internal/scoring"
	"github.com/sushmitharayikanti/ai-job-screening/internal/utils"
	"go.uber.org/zap"
)

const (
	DefaultTimeout      = 30 * time.Second
	defaultMaxLogLength = 200

	degradedSkillWeight      = 0.6
	degradedExperienceWeight = 0.4
)

// Options configures an Adapter.
type Options struct {
	Timeout      time.Duration
	MaxLogLength int
}

// Adapter runs the heuristic engine and, when a generator is configured, asks
// the judge for a score that supersedes it.
type Adapter struct {
	engine    *scoring.Engine
	generator ai.Generator
	timeout   time.Duration
	maxLogLen int
	logger    *zap.Logger
}

// NewAdapter returns an Adapter. A nil generator means heuristic-only scoring.
func NewAdapter(engine *scoring.Engine, generator ai.Generator, opts Options, logger *zap.Logger) *Adapter {
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	maxLogLen := opts.MaxLogLength
	if maxLogLen <= 0 {
		maxLogLen = defaultMaxLogLength
	}

	return &Adapter{
		engine:    engine,
		generator: generator,
		timeout:   timeout,
		maxLogLen: maxLogLen,
		logger:    logger,
	}
}

// Enabled reports whether a judge backend is configured.
func (a *Adapter) Enabled() bool {
	return a.generator != nil
}

// Engine returns the heuristic engine behind the adapter.
func (a *Adapter) Engine() *scoring.Engine {
	return a.engine
}

// Evaluate scores the pair. It never fails: judge errors, timeouts, malformed
// replies and out-of-range scores all resolve to a valid MatchResult.
func (a *Adapter) Evaluate(ctx context.Context, job scoring.JobRequirement, candidate scoring.CandidateProfile) scoring.MatchResult {
	heuristic := a.engine.Score(job, candidate)
	if a.generator == nil {
		return heuristic
	}

	log := a.logger.With(zap.String("job", job.Title), zap.String("candidate", candidate.Name))

	callCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	prompt := buildJudgePrompt(job, candidate)
	log.Debug("judge request",
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", utils.TruncateForLog(prompt, a.maxLogLen)),
	)

	reply, err := generateWithin(callCtx, a.generator, judgeSystemPrompt, prompt)
	if err != nil {
		log.Warn("judge call failed, using degraded estimate", zap.Error(err))
		reason := fmt.Sprintf("judge call failed: %v", err)
		if errors.Is(err, context.DeadlineExceeded) {
			reason = fmt.Sprintf("judge call timed out after %s", a.timeout)
		}
		return a.degraded(job, candidate, heuristic, reason)
	}

	log.Debug("judge response",
		zap.Int("response_length", utf8.RuneCountInString(reply)),
		zap.String("response_preview", utils.TruncateForLog(reply, a.maxLogLen)),
	)

	score, reasoning, source := 0.0, "", scoring.SourceJudge
	if s, r, err := parseStrict(reply); err == nil {
		score, reasoning = s, r
		if strings.TrimSpace(reasoning) == "" {
			reasoning = "The judge gave no reasoning."
		}
	} else if s, err := parseLenient(reply); err == nil {
		score, source = s, scoring.SourceJudgeLenient
		skill, exp := a.engine.TwoFactor(job, candidate)
		reasoning = fmt.Sprintf(
			"The judge reply was not in the expected format; score %.2f was read from it. Skill match %.0f%%, experience match %.0f%%.",
			s, skill*100, exp*100,
		)
		log.Info("judge reply parsed leniently", zap.Float64("score", s))
	} else {
		log.Warn("judge reply has no score, using degraded estimate",
			zap.String("response_preview", utils.TruncateForLog(reply, a.maxLogLen)),
		)
		return a.degraded(job, candidate, heuristic, "judge reply could not be parsed")
	}

	if !validScore(score) {
		log.Warn("judge score out of range, keeping heuristic result", zap.Float64("score", score))
		heuristic.Source = scoring.SourceJudgeRejected
		heuristic.Rationale = fmt.Sprintf("Judge score %v rejected as outside [0,1]. %s", score, heuristic.Rationale)
		return heuristic
	}

	log.Debug("judge score accepted", zap.Float64("score", score), zap.String("source", string(source)))
	return a.supersede(heuristic, score, reasoning, source)
}

// degraded is the two-factor estimate used when the judge cannot be consulted.
func (a *Adapter) degraded(job scoring.JobRequirement, candidate scoring.CandidateProfile, heuristic scoring.MatchResult, reason string) scoring.MatchResult {
	skill, exp := a.engine.TwoFactor(job, candidate)
	score := degradedSkillWeight*skill + degradedExperienceWeight*exp
	rationale := fmt.Sprintf(
		"Judge unavailable (%s). Estimated from skill match %.0f%% and experience match %.0f%%.",
		reason, skill*100, exp*100,
	)
	return a.supersede(heuristic, score, rationale, scoring.SourceJudgeDegraded)
}

func (a *Adapter) supersede(heuristic scoring.MatchResult, score float64, rationale string, source scoring.Source) scoring.MatchResult {
	result := heuristic
	result.OverallScore = score
	result.Rationale = rationale
	result.Source = source
	result.Shortlisted = a.engine.Shortlist(score, heuristic.Components)
	result.Recommendation = scoring.Recommend(score)
	return result
}

func validScore(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0 && v <= 1
}

type generated struct {
	text string
	err  error
}

// generateWithin returns once ctx is done even if the generator keeps running.
// A reply that arrives after the deadline is discarded.
func generateWithin(ctx context.Context, generator ai.Generator, systemInstruction, message string) (string, error) {
	done := make(chan generated, 1)
	go func() {
		text, err := generator.GenerateContent(ctx, systemInstruction, message)
		done <- generated{text: text, err: err}
	}()

	select {
	case r := <-done:
		if r.err == nil && ctx.Err() != nil {
			return "", ctx.Err()
		}
		return r.text, r.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}
