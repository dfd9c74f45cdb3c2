package judge

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/sushmitharayikanti/ai-job-screening/internal/ai"
	"github.com/sushmitharayikanti/ai-job-screening/internal/scoring"
	"go.uber.org/zap"
)

const (
	DefaultQuestionsMinScore = 0.6
	DefaultQuestionCount     = 5

	lowScorePlaceholder = "No interview questions generated for low match scores."
)

var (
	cannedQuestions = []string{
		"Describe your most challenging project and how you overcame obstacles.",
		"How do you stay updated with the latest developments in your field?",
		"Explain your approach to problem-solving in a technical environment.",
	}

	listMarkerPattern = regexp.MustCompile(`^(?:[-*•]+|\(?\d+[.):]|[qQ]\d+[.):])\s*`)
)

// QuestionOptions configures a QuestionGenerator.
type QuestionOptions struct {
	// MinScore is the score gate. Nil means DefaultQuestionsMinScore; zero
	// generates questions for every candidate.
	MinScore *float64
	Count    int
	Timeout  time.Duration
}

// QuestionGenerator produces interview questions for candidates that cleared
// the score gate.
type QuestionGenerator struct {
	generator ai.Generator
	minScore  float64
	count     int
	timeout   time.Duration
	logger    *zap.Logger
}

// NewQuestionGenerator returns a QuestionGenerator. A nil generator always
// yields the canned question list.
func NewQuestionGenerator(generator ai.Generator, opts QuestionOptions, logger *zap.Logger) *QuestionGenerator {
	if logger == nil {
		logger = zap.NewNop()
	}
	minScore := DefaultQuestionsMinScore
	if opts.MinScore != nil {
		minScore = *opts.MinScore
	}
	count := opts.Count
	if count <= 0 {
		count = DefaultQuestionCount
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &QuestionGenerator{
		generator: generator,
		minScore:  minScore,
		count:     count,
		timeout:   timeout,
		logger:    logger,
	}
}

// Generate never fails and never returns an empty list.
func (q *QuestionGenerator) Generate(ctx context.Context, job scoring.JobRequirement, candidate scoring.CandidateProfile, result scoring.MatchResult) []string {
	if result.OverallScore < q.minScore {
		return []string{lowScorePlaceholder}
	}
	if q.generator == nil {
		return canned()
	}

	callCtx, cancel := context.WithTimeout(ctx, q.timeout)
	defer cancel()

	reply, err := generateWithin(callCtx, q.generator, questionsSystemPrompt, buildQuestionsPrompt(job, candidate, result, q.count))
	if err != nil {
		q.logger.Warn("question generation failed, using canned questions",
			zap.String("candidate", candidate.Name),
			zap.Error(err),
		)
		return canned()
	}

	questions := filterQuestions(reply, q.count)
	if len(questions) == 0 {
		q.logger.Info("no usable questions in reply, using canned questions", zap.String("candidate", candidate.Name))
		return canned()
	}
	return questions
}

// filterQuestions keeps lines that are questions or ask to describe or explain
// something, without list markers, up to limit.
func filterQuestions(reply string, limit int) []string {
	var out []string
	for _, raw := range strings.Split(reply, "\n") {
		line := strings.Trim(raw, " \t\r*_")
		line = listMarkerPattern.ReplaceAllString(line, "")
		line = strings.Trim(line, " \t*_")
		if line == "" {
			continue
		}

		lower := strings.ToLower(line)
		if !strings.HasSuffix(line, "?") && !strings.Contains(lower, "describe") && !strings.Contains(lower, "explain") {
			continue
		}

		out = append(out, line)
		if len(out) == limit {
			break
		}
	}
	return out
}

func canned() []string {
	out := make([]string, len(cannedQuestions))
	copy(out, cannedQuestions)
	return out
}
