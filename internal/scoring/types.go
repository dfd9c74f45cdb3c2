// Package scoring implements the deterministic match scorer: skill, experience,
// qualification and keyword signals combined into one normalized score and a
// shortlist decision.
package scoring

import "strings"

// Seniority is the seniority hint detected from a job description.
type Seniority string

const (
	SeniorityNone   Seniority = "none"
	SenioritySenior Seniority = "senior"
	SeniorityJunior Seniority = "junior"
)

// Source records which stage produced the overall score of a MatchResult.
type Source string

const (
	SourceHeuristic         Source = "heuristic"
	SourceHeuristicFallback Source = "heuristic_fallback"
	SourceJudge             Source = "judge"
	SourceJudgeLenient      Source = "judge_lenient"
	SourceJudgeDegraded     Source = "judge_degraded"
	SourceJudgeRejected     Source = "judge_rejected"
)

// JobRequirement is the structured form of a job posting.
type JobRequirement struct {
	Title                   string
	Company                 string
	RequiredSkills          []string
	RequiredExperienceYears float64
	RequiredQualifications  []string
	Description             string
}

// SeniorityHint detects "senior" or "junior" in the description. Senior wins
// when both words are present.
func (j JobRequirement) SeniorityHint() Seniority {
	text := strings.ToLower(j.Description)
	switch {
	case strings.Contains(text, "senior"):
		return SenioritySenior
	case strings.Contains(text, "junior"):
		return SeniorityJunior
	default:
		return SeniorityNone
	}
}

// CandidateProfile is the structured form of a candidate resume.
type CandidateProfile struct {
	Name            string
	Skills          []string
	ExperienceYears float64
	Qualifications  []string
	ResumeText      string
}

// ComponentScores holds the per-signal scores.
type ComponentScores struct {
	Skills         float64 `json:"skills"`
	Experience     float64 `json:"experience"`
	Qualifications float64 `json:"qualifications"`
	Keywords       float64 `json:"keywords"`
}

// MatchResult is the outcome of scoring one job/candidate pair.
type MatchResult struct {
	OverallScore     float64              `json:"overall_score"`
	Components       ComponentScores      `json:"component_scores"`
	CategoryCoverage map[Category]float64 `json:"category_coverage,omitempty"`
	MatchingSkills   []string             `json:"matching_skills"`
	MissingSkills    []string             `json:"missing_skills"`
	Shortlisted      bool                 `json:"shortlisted"`
	Rationale        string               `json:"rationale"`
	Source           Source               `json:"source"`
	Recommendation   string               `json:"recommendation"`
}

const (
	recommendationExcellent = "Excellent match! Strongly recommended for interview."
	recommendationGood      = "Good match. Consider for interview."
	recommendationBelow     = "Below threshold. Not recommended."
)

// Recommend maps an overall score to a reviewer-facing recommendation.
func Recommend(score float64) string {
	switch {
	case score >= 0.8:
		return recommendationExcellent
	case score >= 0.6:
		return recommendationGood
	default:
		return recommendationBelow
	}
}
