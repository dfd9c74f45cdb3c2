package screening

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/sushmitharayikanti/ai-job-screening/internal/records"
)

type duplicatesFilter struct {
	disabled bool
	reason   string
}

// NewDuplicates creates a filter that keeps only the first candidate per e-mail.
func NewDuplicates() Filter {
	return &duplicatesFilter{}
}

func (f *duplicatesFilter) Name() string { return "duplicates" }

func (f *duplicatesFilter) Disable(reason string) {
	f.disabled = true
	f.reason = reason
}

func (f *duplicatesFilter) IsEnabled() bool { return !f.disabled }

func (f *duplicatesFilter) Validate(*Config) error { return nil }

func (f *duplicatesFilter) Apply(_ context.Context, deps Deps, p *Pool) (*Pool, Step, error) {
	initial := p.Len()
	seen := make(map[string]struct{}, initial)
	kept := make([]records.Candidate, 0, initial)
	var dropped []string

	for _, candidate := range p.Items {
		email := strings.ToLower(strings.TrimSpace(candidate.Email))
		if email == "" {
			kept = append(kept, candidate)
			continue
		}
		if _, dup := seen[email]; dup {
			dropped = append(dropped, candidate.ID)
			continue
		}
		seen[email] = struct{}{}
		kept = append(kept, candidate)
	}
	p.Items = kept

	if deps.Logger != nil && len(dropped) > 0 {
		deps.Logger.Info("excluding candidates with duplicate e-mail",
			zap.Strings("excluded_candidates", dropped),
			zap.Int("candidates_left", p.Len()),
		)
	}

	return p, Step{Initial: initial, Dropped: len(dropped), Left: p.Len()}, nil
}

func (f *duplicatesFilter) Status() Status {
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason}
}

type historyFilter struct {
	disabled bool
	reason   string
	path     string
}

// NewHistory creates a filter that removes candidates already screened for the
// job according to the history file.
func NewHistory() Filter {
	return &historyFilter{}
}

func (f *historyFilter) Name() string { return "history" }

func (f *historyFilter) Disable(reason string) {
	f.disabled = true
	f.reason = reason
}

func (f *historyFilter) IsEnabled() bool { return !f.disabled }

func (f *historyFilter) Validate(cfg *Config) error {
	f.path = ""
	if cfg != nil {
		f.path = strings.TrimSpace(cfg.HistoryFile)
	}
	return nil
}

func (f *historyFilter) Apply(_ context.Context, deps Deps, p *Pool) (*Pool, Step, error) {
	initial := p.Len()

	history := deps.History
	if history == nil {
		if f.path == "" {
			return p, Step{Initial: initial, Dropped: 0, Left: p.Len()}, nil
		}
		loaded, err := records.LoadHistory(f.path)
		if err != nil {
			return p, Step{}, fmt.Errorf("getting screening history from file: %w", err)
		}
		history = loaded
	}

	screened := history.Screened(p.JobID)
	kept := make([]records.Candidate, 0, initial)
	var dropped []string
	for _, candidate := range p.Items {
		_, byID := screened[candidate.ID]
		_, byEmail := screened[strings.ToLower(strings.TrimSpace(candidate.Email))]
		if byID || (candidate.Email != "" && byEmail) {
			dropped = append(dropped, candidate.ID)
			continue
		}
		kept = append(kept, candidate)
	}
	p.Items = kept

	if deps.Logger != nil && len(dropped) > 0 {
		deps.Logger.Info("excluding candidates based on screening history",
			zap.String("path", f.path),
			zap.Strings("excluded_candidates", dropped),
			zap.Int("candidates_left", p.Len()),
		)
	}

	return p, Step{Initial: initial, Dropped: len(dropped), Left: p.Len()}, nil
}

func (f *historyFilter) Status() Status {
	details := map[string]string{}
	if f.path != "" {
		details["path"] = f.path
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}
