package records

import (
	"regexp"
	"strconv"
	"strings"
)

// knownSkills are looked up in job descriptions that do not list their
// required skills explicitly.
var knownSkills = []string{
	"python", "javascript", "java", "c++", "sql", "aws", "docker", "kubernetes",
	"react", "angular", "vue", "node.js", "tensorflow", "pytorch",
	"machine learning", "deep learning", "nlp", "ai", "data science", "cloud",
	"git", "agile", "scrum", "devops", "communication", "leadership", "problem solving",
}

var (
	skillPatterns = compileSkillPatterns(knownSkills)

	experiencePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(\d+)\+?\s*(?:years?|yrs?)(?:\s+of)?\s+(?:experience|exp)`),
		regexp.MustCompile(`(?i)minimum\s+of\s+(\d+)\s+years?`),
		regexp.MustCompile(`(?i)at\s+least\s+(\d+)\s+years?`),
	}

	degreePattern        = regexp.MustCompile(`(?i)\b(bachelor|master|phd|ph\.d|doctorate|mba)\b`)
	certificationPattern = regexp.MustCompile(`(?i)certification\s+in\s+([a-z0-9 +#/.-]+?)(?:[,;:()]|\.\s|\.$|$)`)
)

func compileSkillPatterns(skills []string) map[string]*regexp.Regexp {
	patterns := make(map[string]*regexp.Regexp, len(skills))
	for _, skill := range skills {
		patterns[skill] = regexp.MustCompile(`(?i)(?:^|[^a-z0-9+#.])` + regexp.QuoteMeta(skill) + `(?:$|[^a-z0-9+#])`)
	}
	return patterns
}

// Summary is what can be derived from a free-text job description.
type Summary struct {
	Skills          []string
	ExperienceYears *float64
	Qualifications  []string
}

// Summarize extracts skills, required years and qualifications from a job
// description.
func Summarize(description string) Summary {
	var summary Summary
	if strings.TrimSpace(description) == "" {
		return summary
	}

	for _, skill := range knownSkills {
		if skillPatterns[skill].MatchString(description) {
			summary.Skills = append(summary.Skills, skill)
		}
	}

	for _, pattern := range experiencePatterns {
		match := pattern.FindStringSubmatch(description)
		if match == nil {
			continue
		}
		if years, err := strconv.ParseFloat(match[1], 64); err == nil {
			summary.ExperienceYears = &years
			break
		}
	}

	seen := make(map[string]struct{})
	add := func(q string) {
		q = strings.ToLower(strings.TrimSpace(q))
		if q == "" {
			return
		}
		if _, dup := seen[q]; dup {
			return
		}
		seen[q] = struct{}{}
		summary.Qualifications = append(summary.Qualifications, q)
	}
	for _, match := range degreePattern.FindAllStringSubmatch(description, -1) {
		degree := strings.ToLower(match[1])
		if degree == "ph.d" {
			degree = "phd"
		}
		add(degree)
	}
	for _, match := range certificationPattern.FindAllStringSubmatch(description, -1) {
		add("certification in " + strings.TrimSpace(match[1]))
	}

	return summary
}
