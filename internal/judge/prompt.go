package judge

import (
	_ "embed"
	"strconv"
	"strings"

	"github.com/sushmitharayikanti/ai-job-screening/internal/scoring"
	"github.com/sushmitharayikanti/ai-job-screening/internal/utils"
)

var (
	//go:embed prompts/judge_system.md
	judgeSystemPrompt string
	//go:embed prompts/judge_user.md
	judgeUserTemplate string
	//go:embed prompts/questions_system.md
	questionsSystemPrompt string
	//go:embed prompts/questions_user.md
	questionsUserTemplate string
)

const (
	maxResumeRunes      = 2000
	maxDescriptionRunes = 3000
	notSpecified        = "not specified"
)

func buildJudgePrompt(job scoring.JobRequirement, candidate scoring.CandidateProfile) string {
	return strings.NewReplacer(
		"{{JOB_TITLE}}", orNotSpecified(job.Title),
		"{{JOB_COMPANY}}", orNotSpecified(job.Company),
		"{{JOB_SKILLS}}", joinList(job.RequiredSkills),
		"{{JOB_EXPERIENCE}}", formatYears(job.RequiredExperienceYears),
		"{{JOB_QUALIFICATIONS}}", joinList(job.RequiredQualifications),
		"{{JOB_DESCRIPTION}}", orNotSpecified(utils.Truncate(job.Description, maxDescriptionRunes)),
		"{{CANDIDATE_SKILLS}}", joinList(candidate.Skills),
		"{{CANDIDATE_EXPERIENCE}}", formatYears(candidate.ExperienceYears),
		"{{CANDIDATE_RESUME}}", orNotSpecified(utils.Truncate(candidate.ResumeText, maxResumeRunes)),
	).Replace(judgeUserTemplate)
}

func buildQuestionsPrompt(job scoring.JobRequirement, candidate scoring.CandidateProfile, result scoring.MatchResult, count int) string {
	return strings.NewReplacer(
		"{{COUNT}}", strconv.Itoa(count),
		"{{JOB_TITLE}}", orNotSpecified(job.Title),
		"{{JOB_COMPANY}}", orNotSpecified(job.Company),
		"{{JOB_SKILLS}}", joinList(job.RequiredSkills),
		"{{CANDIDATE_SKILLS}}", joinList(candidate.Skills),
		"{{MISSING_SKILLS}}", joinList(result.MissingSkills),
		"{{CANDIDATE_EXPERIENCE}}", formatYears(candidate.ExperienceYears),
		"{{JOB_EXPERIENCE}}", formatYears(job.RequiredExperienceYears),
		"{{SCORE}}", strconv.FormatFloat(result.OverallScore, 'f', 2, 64),
	).Replace(questionsUserTemplate)
}

func joinList(items []string) string {
	cleaned := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			cleaned = append(cleaned, item)
		}
	}
	if len(cleaned) == 0 {
		return "none"
	}
	return strings.Join(cleaned, ", ")
}

func formatYears(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func orNotSpecified(s string) string {
	if strings.TrimSpace(s) == "" {
		return notSpecified
	}
	return s
}
