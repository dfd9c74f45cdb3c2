package screening

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sushmitharayikanti/ai-job-screening/internal/records"
	"github.com/sushmitharayikanti/ai-job-screening/internal/scoring"
)

const (
	StatusShortlisted    = "shortlisted"
	StatusNotShortlisted = "not shortlisted"
)

// Result is the screening outcome for one candidate.
type Result struct {
	CandidateID string              `json:"candidate_id"`
	Name        string              `json:"name"`
	Email       string              `json:"email,omitempty"`
	Match       scoring.MatchResult `json:"match"`
	Questions   []string            `json:"interview_questions,omitempty"`
}

// Results is the outcome of one screening run.
type Results struct {
	RunID    string    `json:"run_id"`
	JobID    string    `json:"job_id"`
	JobTitle string    `json:"job_title"`
	Items    []*Result `json:"results"`
}

func (r *Results) Len() int {
	return len(r.Items)
}

// Shortlisted returns the shortlisted results in run order.
func (r *Results) Shortlisted() []*Result {
	var out []*Result
	for _, item := range r.Items {
		if item.Match.Shortlisted {
			out = append(out, item)
		}
	}
	return out
}

// FindByID returns the result of a candidate or nil.
func (r *Results) FindByID(id string) *Result {
	for _, item := range r.Items {
		if item.CandidateID == id {
			return item
		}
	}
	return nil
}

// ReportByStatus groups the candidates into shortlisted and not shortlisted.
func (r *Results) ReportByStatus() map[string][]map[string]string {
	report := make(map[string][]map[string]string)
	for _, item := range r.Items {
		key := StatusNotShortlisted
		if item.Match.Shortlisted {
			key = StatusShortlisted
		}
		report[key] = append(report[key], map[string]string{
			"name":           item.Name,
			"email":          item.Email,
			"score":          fmt.Sprintf("%.2f", item.Match.OverallScore),
			"source":         string(item.Match.Source),
			"matching":       strings.Join(item.Match.MatchingSkills, ", "),
			"missing":        strings.Join(item.Match.MissingSkills, ", "),
			"recommendation": item.Match.Recommendation,
		})
	}
	return report
}

// DumpToTmpFile writes the results as indented JSON to a new temporary file.
func (r *Results) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "screening_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return "", err
	}
	return file.Name(), nil
}

// ToHistory converts the results into history entries.
func (r *Results) ToHistory() *records.History {
	history := &records.History{}
	now := time.Now().UTC()
	for _, item := range r.Items {
		history.Items = append(history.Items, &records.HistoryEntry{
			JobID:          r.JobID,
			CandidateID:    item.CandidateID,
			CandidateEmail: item.Email,
			Score:          item.Match.OverallScore,
			Shortlisted:    item.Match.Shortlisted,
			ScreenedAt:     now,
		})
	}
	return history
}
