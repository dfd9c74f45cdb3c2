package records

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

// History is the list of job/candidate pairs already screened. It is stored as
// JSON and used to skip candidates on later runs.
type History struct {
	Items []*HistoryEntry
}

// HistoryEntry is one screened pair.
type HistoryEntry struct {
	JobID          string
	CandidateID    string
	CandidateEmail string
	Score          float64
	Shortlisted    bool
	ScreenedAt     time.Time
}

// LoadHistory reads a history file. A missing or empty file yields an empty
// history.
func LoadHistory(path string) (*History, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &History{}, nil
		}
		return nil, err
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return nil, err
	}

	if stat.Size() == 0 {
		return &History{}, nil
	}

	var history History
	if err := json.NewDecoder(file).Decode(&history); err != nil {
		return nil, fmt.Errorf("decoding history %q: %w", path, err)
	}
	return &history, nil
}

// Append adds the entries of s.
func (h *History) Append(s *History) {
	h.Items = append(h.Items, s.Items...)
}

// Screened returns the candidate IDs and lower-cased e-mails already screened
// for a job.
func (h *History) Screened(jobID string) map[string]struct{} {
	seen := make(map[string]struct{})
	for _, item := range h.Items {
		if item.JobID != jobID {
			continue
		}
		if item.CandidateID != "" {
			seen[item.CandidateID] = struct{}{}
		}
		if email := strings.ToLower(strings.TrimSpace(item.CandidateEmail)); email != "" {
			seen[email] = struct{}{}
		}
	}
	return seen
}

// ToFile writes the history, replacing the file content.
func (h *History) ToFile(path string) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	return enc.Encode(h)
}
