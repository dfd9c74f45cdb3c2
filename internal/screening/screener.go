package screening

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sushmitharayikanti/ai-job-screening/internal/judge"
	"github.com/sushmitharayikanti/ai-job-screening/internal/logger"
	"github.com/sushmitharayikanti/ai-job-screening/internal/records"
)

const DefaultWorkers = 4

// Screener scores a pool of candidates against one job.
type Screener struct {
	adapter   *judge.Adapter
	questions *judge.QuestionGenerator
	filters   []Filter
	cfg       *Config
	workers   int
	logger    *zap.Logger
}

// Options configures a Screener. A nil Questions generator disables interview
// questions.
type Options struct {
	Questions *judge.QuestionGenerator
	Filters   []Filter
	Config    *Config
	Workers   int
}

// New returns a Screener.
func New(adapter *judge.Adapter, opts Options, log *zap.Logger) *Screener {
	if log == nil {
		log = zap.NewNop()
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}
	cfg := opts.Config
	if cfg == nil {
		cfg = &Config{}
	}

	return &Screener{
		adapter:   adapter,
		questions: opts.Questions,
		filters:   opts.Filters,
		cfg:       cfg,
		workers:   workers,
		logger:    log,
	}
}

// Filters returns the configured filter chain.
func (s *Screener) Filters() []Filter {
	return s.filters
}

// Run filters the candidates and scores the remaining ones. Results keep the
// order of the filtered input.
func (s *Screener) Run(ctx context.Context, deps Deps, job records.Job, candidates []records.Candidate) (*Results, error) {
	if deps.Logger == nil {
		deps.Logger = s.logger
	}

	pool := &Pool{JobID: job.ID, Items: append([]records.Candidate(nil), candidates...)}
	pool, err := RunFilters(ctx, s.cfg, deps, s.filters, pool)
	if err != nil {
		return nil, fmt.Errorf("filtering candidates: %w", err)
	}

	results := &Results{
		RunID:    uuid.NewString(),
		JobID:    job.ID,
		JobTitle: job.Title,
		Items:    make([]*Result, pool.Len()),
	}

	requirement := job.ToRequirement()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, candidate := range pool.Items {
		g.Go(func() error {
			log := logger.WithFields(s.logger, logger.MatchFields(job.ID, candidate.ID)...)
			profile := candidate.ToProfile()

			match := s.adapter.Evaluate(gctx, requirement, profile)
			log.Info("candidate scored",
				zap.Float64("score", match.OverallScore),
				zap.Bool("shortlisted", match.Shortlisted),
				zap.String("source", string(match.Source)),
			)

			result := &Result{
				CandidateID: candidate.ID,
				Name:        candidate.Name,
				Email:       candidate.Email,
				Match:       match,
			}
			if s.questions != nil {
				result.Questions = s.questions.Generate(gctx, requirement, profile, match)
			}
			results.Items[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.logger.Info("screening completed",
		zap.String("run_id", results.RunID),
		zap.String("job_id", job.ID),
		zap.Int("candidates", results.Len()),
		zap.Int("shortlisted", len(results.Shortlisted())),
	)

	return results, nil
}
