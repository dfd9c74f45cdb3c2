// Package records loads job and candidate records from YAML or JSON files and
// converts them into scoring inputs.
package records

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/spf13/viper"

	"github.com/sushmitharayikanti/ai-job-screening/internal/scoring"
)

// ErrNoCandidates is returned when a candidates file holds no records.
var ErrNoCandidates = errors.New("no candidates found")

var validate = validator.New()

// Job is a job posting as stored on disk.
type Job struct {
	ID                     string   `mapstructure:"id" json:"id"`
	Title                  string   `mapstructure:"title" json:"title" validate:"required"`
	Company                string   `mapstructure:"company" json:"company"`
	Description            string   `mapstructure:"description" json:"description"`
	RequiredSkills         []string `mapstructure:"required_skills" json:"required_skills"`
	RequiredExperience     *float64 `mapstructure:"required_experience" json:"required_experience,omitempty" validate:"omitempty,gte=0"`
	RequiredQualifications []string `mapstructure:"required_qualifications" json:"required_qualifications"`
}

// Candidate is a candidate profile as stored on disk.
type Candidate struct {
	ID              string   `mapstructure:"id" json:"id"`
	Name            string   `mapstructure:"name" json:"name" validate:"required"`
	Email           string   `mapstructure:"email" json:"email,omitempty" validate:"omitempty,email"`
	Phone           string   `mapstructure:"phone" json:"phone,omitempty"`
	Skills          []string `mapstructure:"skills" json:"skills"`
	ExperienceYears float64  `mapstructure:"experience_years" json:"experience_years" validate:"gte=0"`
	Qualifications  []string `mapstructure:"qualifications" json:"qualifications"`
	ResumeText      string   `mapstructure:"resume_text" json:"resume_text,omitempty"`
}

// Complete fills missing required skills, experience and qualifications from
// the description and returns the names of the fields it derived.
func (j *Job) Complete() []string {
	var derived []string
	summary := Summarize(j.Description)

	if len(j.RequiredSkills) == 0 && len(summary.Skills) > 0 {
		j.RequiredSkills = summary.Skills
		derived = append(derived, "required_skills")
	}
	if j.RequiredExperience == nil && summary.ExperienceYears != nil {
		j.RequiredExperience = summary.ExperienceYears
		derived = append(derived, "required_experience")
	}
	if len(j.RequiredQualifications) == 0 && len(summary.Qualifications) > 0 {
		j.RequiredQualifications = summary.Qualifications
		derived = append(derived, "required_qualifications")
	}
	return derived
}

// ToRequirement converts the record into the scorer's input.
func (j Job) ToRequirement() scoring.JobRequirement {
	years := 0.0
	if j.RequiredExperience != nil {
		years = *j.RequiredExperience
	}
	return scoring.JobRequirement{
		Title:                   j.Title,
		Company:                 j.Company,
		RequiredSkills:          j.RequiredSkills,
		RequiredExperienceYears: years,
		RequiredQualifications:  j.RequiredQualifications,
		Description:             j.Description,
	}
}

// ToProfile converts the record into the scorer's input.
func (c Candidate) ToProfile() scoring.CandidateProfile {
	return scoring.CandidateProfile{
		Name:            c.Name,
		Skills:          c.Skills,
		ExperienceYears: c.ExperienceYears,
		Qualifications:  c.Qualifications,
		ResumeText:      c.ResumeText,
	}
}

// LoadJob reads a single job record. The file holds the job fields at the top
// level.
func LoadJob(path string) (*Job, error) {
	v, err := read(path)
	if err != nil {
		return nil, err
	}

	var job Job
	if err := decode(v.AllSettings(), &job); err != nil {
		return nil, fmt.Errorf("decoding job from %q: %w", path, err)
	}
	if err := validate.Struct(&job); err != nil {
		return nil, fmt.Errorf("invalid job in %q: %w", path, err)
	}
	if strings.TrimSpace(job.ID) == "" {
		job.ID = stableID(job.Title, job.Company)
	}
	return &job, nil
}

// LoadCandidates reads the "candidates" list of a file.
func LoadCandidates(path string) ([]Candidate, error) {
	v, err := read(path)
	if err != nil {
		return nil, err
	}

	raw := v.Get("candidates")
	if raw == nil {
		return nil, fmt.Errorf("%q: %w", path, ErrNoCandidates)
	}

	var candidates []Candidate
	if err := decode(raw, &candidates); err != nil {
		return nil, fmt.Errorf("decoding candidates from %q: %w", path, err)
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("%q: %w", path, ErrNoCandidates)
	}

	for i := range candidates {
		if err := validate.Struct(&candidates[i]); err != nil {
			return nil, fmt.Errorf("invalid candidate #%d in %q: %w", i+1, path, err)
		}
		if strings.TrimSpace(candidates[i].ID) == "" {
			c := candidates[i]
			candidates[i].ID = stableID(c.Name, c.Email, c.Phone)
		}
	}
	return candidates, nil
}

// stableID derives a name-based UUID from identifying fields, so a record
// without an id gets the same one on every run and history lookups keep
// matching.
func stableID(parts ...string) string {
	normalized := make([]string, len(parts))
	for i, part := range parts {
		normalized[i] = strings.ToLower(strings.TrimSpace(part))
	}
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(strings.Join(normalized, "\x00"))).String()
}

func read(path string) (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading %q: %w", path, err)
	}
	return v, nil
}
