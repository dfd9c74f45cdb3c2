package scoring

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"go.uber.org/zap"
)

// Engine is the deterministic multi-factor scorer. It holds compiled, immutable
// tables and is safe for concurrent use.
type Engine struct {
	cfg           Config
	normalizer    *Normalizer
	categories    categoryIndex
	categoryOrder []Category
	stopwords     map[string]struct{}
	logger        *zap.Logger
}

// NewEngine validates cfg and compiles it into an Engine.
func NewEngine(cfg Config, logger *zap.Logger) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scoring config: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	cfg = cfg.clone()
	stopwords := make(map[string]struct{}, len(cfg.Stopwords))
	for _, w := range cfg.Stopwords {
		stopwords[strings.ToLower(strings.TrimSpace(w))] = struct{}{}
	}

	return &Engine{
		cfg:           cfg,
		normalizer:    NewNormalizer(cfg.Synonyms),
		categories:    newCategoryIndex(cfg.Categories),
		categoryOrder: orderedCategories(cfg.Categories),
		stopwords:     stopwords,
		logger:        logger,
	}, nil
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() Config {
	return e.cfg.clone()
}

// Normalizer exposes the compiled synonym table.
func (e *Engine) Normalizer() *Normalizer {
	return e.normalizer
}

// Score rates a candidate against a job. It always returns a result: a panic
// while scoring is logged and converted into the neutral fallback score.
func (e *Engine) Score(job JobRequirement, candidate CandidateProfile) (result MatchResult) {
	defer func() {
		if r := recover(); r != nil {
			result = e.fallback(job, candidate, r)
		}
	}()
	return e.score(job, candidate)
}

func (e *Engine) score(job JobRequirement, candidate CandidateProfile) MatchResult {
	var components ComponentScores
	var coverage map[Category]float64

	switch e.cfg.SkillStrategy {
	case SkillsFlat:
		components.Skills = e.flatSkillScore(job.RequiredSkills, candidate.Skills)
	default:
		components.Skills, coverage = e.categorySkillScore(job.RequiredSkills, candidate.Skills)
	}
	components.Experience = e.experienceScore(candidate.ExperienceYears, job.RequiredExperienceYears)
	components.Qualifications = qualificationScore(job.RequiredQualifications, candidate.Qualifications)
	components.Keywords = e.keywordScore(job.Description, candidate.ResumeText)

	seniority := job.SeniorityHint()
	w := e.weights(seniority)
	overall := w.Skills*components.Skills +
		w.Experience*components.Experience +
		w.Qualifications*components.Qualifications +
		w.Keywords*components.Keywords

	bonus := e.excellent(components)
	if bonus {
		overall *= e.cfg.BonusMultiplier
	}
	overall = clamp(overall, 0, 1)

	matching, missing := e.splitSkills(job.RequiredSkills, candidate.Skills)
	result := MatchResult{
		OverallScore:     overall,
		Components:       components,
		CategoryCoverage: coverage,
		MatchingSkills:   matching,
		MissingSkills:    missing,
		Shortlisted:      e.Shortlist(overall, components),
		Source:           SourceHeuristic,
		Recommendation:   Recommend(overall),
	}
	result.Rationale = heuristicRationale(result, seniority, bonus)
	return result
}

// weights returns the aggregation weights adjusted for seniority and
// renormalized to sum to 1.
func (e *Engine) weights(seniority Seniority) Weights {
	w := e.cfg.BaseWeights
	switch seniority {
	case SenioritySenior:
		shift := math.Min(e.cfg.SeniorityShift, w.Skills)
		w.Skills -= shift
		w.Experience += shift
	case SeniorityJunior:
		shift := math.Min(e.cfg.SeniorityShift, w.Experience)
		w.Experience -= shift
		w.Skills += shift
	}
	return w.normalized()
}

func (e *Engine) excellent(c ComponentScores) bool {
	t := e.cfg.BonusThreshold
	return c.Skills > t && c.Experience > t && c.Qualifications > t
}

// Shortlist applies the configured shortlist rule to an overall score and the
// component scores it was derived from.
func (e *Engine) Shortlist(overall float64, c ComponentScores) bool {
	th := e.cfg.Shortlist
	if e.cfg.ShortlistRule == ShortlistOverall {
		return overall >= th.Overall
	}
	return overall >= th.Overall && c.Skills >= th.Skills && c.Experience >= th.Experience
}

// TwoFactor returns the plain skill and experience match ratios used when a
// quick estimate is needed without the full weighting.
func (e *Engine) TwoFactor(job JobRequirement, candidate CandidateProfile) (skillRatio, experienceRatio float64) {
	return e.flatSkillScore(job.RequiredSkills, candidate.Skills),
		experienceMatchRatio(candidate.ExperienceYears, job.RequiredExperienceYears)
}

// FallbackScore is the neutral score used when scoring itself fails.
func (e *Engine) FallbackScore() float64 {
	return e.cfg.FallbackScore
}

// splitSkills partitions the required skills into those the candidate covers
// and those missing, both sorted.
func (e *Engine) splitSkills(required, candidate []string) (matching, missing []string) {
	candidateSet := e.normalizer.Expand(candidate)
	matching, missing = []string{}, []string{}
	for _, skill := range distinctCanonical(required) {
		if e.normalizer.matchesAny(skill, candidateSet) {
			matching = append(matching, skill)
		} else {
			missing = append(missing, skill)
		}
	}
	slices.Sort(matching)
	slices.Sort(missing)
	return matching, missing
}

func (e *Engine) fallback(job JobRequirement, candidate CandidateProfile, cause any) MatchResult {
	score := 0.5
	logger := zap.NewNop()
	if e != nil {
		if e.logger != nil {
			logger = e.logger
		}
		if inUnitRange(e.cfg.FallbackScore) && e.normalizer != nil {
			score = e.cfg.FallbackScore
		}
	}
	logger.Error("Scoring failed, using fallback score",
		zap.String("job", job.Title),
		zap.String("candidate", candidate.Name),
		zap.Any("panic", cause),
		zap.Float64("score", score),
	)

	return MatchResult{
		OverallScore:   score,
		MatchingSkills: []string{},
		MissingSkills:  []string{},
		Rationale:      fmt.Sprintf("Scoring failed (%v); a neutral score of %.2f was assigned.", cause, score),
		Source:         SourceHeuristicFallback,
		Recommendation: Recommend(score),
	}
}

// heuristicRationale explains a heuristic result in a few short sentences.
func heuristicRationale(r MatchResult, seniority Seniority, bonus bool) string {
	var parts []string

	c := r.Components
	switch {
	case len(r.MatchingSkills) == 0:
		parts = append(parts, "No skill matches")
	case c.Skills >= 0.7:
		parts = append(parts, fmt.Sprintf("Strong skill match (%s)", strings.Join(r.MatchingSkills, ", ")))
	case c.Skills >= 0.4:
		parts = append(parts, fmt.Sprintf("Moderate skill match (%s)", strings.Join(r.MatchingSkills, ", ")))
	default:
		parts = append(parts, fmt.Sprintf("Weak skill match (%s)", strings.Join(r.MatchingSkills, ", ")))
	}
	if len(r.MissingSkills) > 0 {
		parts = append(parts, fmt.Sprintf("Missing skills: %s", strings.Join(r.MissingSkills, ", ")))
	}

	switch {
	case c.Experience >= 1:
		parts = append(parts, "Experience meets or exceeds the requirement")
	case c.Experience >= 0.8:
		parts = append(parts, "Experience close to the requirement")
	default:
		parts = append(parts, "Experience below the requirement")
	}

	if c.Qualifications >= 1 {
		parts = append(parts, "All required qualifications present")
	} else {
		parts = append(parts, fmt.Sprintf("Qualification coverage %.0f%%", c.Qualifications*100))
	}

	if c.Keywords >= 0.5 {
		parts = append(parts, "Good keyword overlap")
	} else if c.Keywords > 0 {
		parts = append(parts, "Some keyword overlap")
	}

	if seniority != SeniorityNone {
		parts = append(parts, fmt.Sprintf("Weights adjusted for a %s role", seniority))
	}
	if bonus {
		parts = append(parts, "Excellence bonus applied")
	}

	return fmt.Sprintf("Overall score %.2f. %s.", r.OverallScore, strings.Join(parts, ". "))
}
