package records

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestDecodeStringList(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input any
		want  []string
	}{
		{name: "nil", input: nil, want: nil},
		{name: "json list string", input: `["Python", " AWS ", ""]`, want: []string{"Python", "AWS"}},
		{name: "comma separated", input: "python, aws ,, docker", want: []string{"python", "aws", "docker"}},
		{name: "single value", input: "bachelor", want: []string{"bachelor"}},
		{name: "broken json falls back to split", input: `[python, 'aws']`, want: []string{"python", "aws"}},
		{name: "list of any", input: []any{"go", 3, nil}, want: []string{"go", "3"}},
		{name: "blank string", input: "   ", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := DecodeStringList(tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}

	if _, err := DecodeStringList(map[string]any{}); err == nil {
		t.Fatal("expected error for map input")
	}
}

func TestLoadJobYAML(t *testing.T) {
	path := writeFile(t, "job.yaml", `
id: job-1
title: Backend Engineer
company: Acme
required_skills: python, aws
required_experience: 5
required_qualifications: '["bachelor"]'
description: Build cloud services.
`)

	job, err := LoadJob(path)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if job.ID != "job-1" || job.Title != "Backend Engineer" || job.Company != "Acme" {
		t.Fatalf("unexpected job: %+v", job)
	}
	if !reflect.DeepEqual(job.RequiredSkills, []string{"python", "aws"}) {
		t.Fatalf("unexpected skills: %q", job.RequiredSkills)
	}
	if job.RequiredExperience == nil || *job.RequiredExperience != 5 {
		t.Fatalf("unexpected experience: %v", job.RequiredExperience)
	}
	if !reflect.DeepEqual(job.RequiredQualifications, []string{"bachelor"}) {
		t.Fatalf("unexpected qualifications: %q", job.RequiredQualifications)
	}

	req := job.ToRequirement()
	if req.RequiredExperienceYears != 5 || req.Description != "Build cloud services." {
		t.Fatalf("unexpected requirement: %+v", req)
	}
}

func TestLoadJobValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "missing title", content: `{"company": "Acme"}`},
		{name: "negative experience", content: `{"title": "Dev", "required_experience": -1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "job.json", tt.content)
			if _, err := LoadJob(path); err == nil || !strings.Contains(err.Error(), "invalid job") {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestLoadJobGeneratesID(t *testing.T) {
	path := writeFile(t, "job.json", `{"title": "Dev"}`)

	job, err := LoadJob(path)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(job.ID) != 36 {
		t.Fatalf("expected a generated uuid, got %q", job.ID)
	}
	if job.RequiredExperience != nil {
		t.Fatalf("expected experience to stay unset, got %v", *job.RequiredExperience)
	}
}

func TestGeneratedIDsAreStable(t *testing.T) {
	path := writeFile(t, "job.yaml", "title: Backend Engineer\ncompany: Acme\n")

	first, err := LoadJob(path)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	second, err := LoadJob(path)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("expected the same id on every load, got %q and %q", first.ID, second.ID)
	}

	other, err := LoadJob(writeFile(t, "other.yaml", "title: Frontend Engineer\ncompany: Acme\n"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if other.ID == first.ID {
		t.Fatal("expected different jobs to get different ids")
	}

	candidatesPath := writeFile(t, "candidates.yaml", "candidates:\n  - name: John Roe\n    email: john@example.com\n")
	a, err := LoadCandidates(candidatesPath)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	b, err := LoadCandidates(candidatesPath)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if a[0].ID == "" || a[0].ID != b[0].ID {
		t.Fatalf("expected a stable candidate id, got %q and %q", a[0].ID, b[0].ID)
	}

	history := &History{Items: []*HistoryEntry{{JobID: first.ID, CandidateID: a[0].ID}}}
	if _, ok := history.Screened(second.ID)[b[0].ID]; !ok {
		t.Fatal("expected the reloaded pair to be found in the history")
	}
}

func TestLoadCandidates(t *testing.T) {
	path := writeFile(t, "candidates.json", `{
  "candidates": [
    {"id": "c-1", "name": "Jane Doe", "email": "jane@example.com", "skills": "[\"python\", \"docker\"]", "experience_years": 6, "qualifications": ["bachelor"], "resume_text": "Python developer"},
    {"name": "John Roe", "skills": "go, k8s", "experience_years": "3.5"}
  ]
}`)

	candidates, err := LoadCandidates(path)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(candidates) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(candidates))
	}

	jane := candidates[0]
	if jane.ID != "c-1" || !reflect.DeepEqual(jane.Skills, []string{"python", "docker"}) || jane.ExperienceYears != 6 {
		t.Fatalf("unexpected candidate: %+v", jane)
	}

	john := candidates[1]
	if john.ID == "" {
		t.Fatal("expected generated id")
	}
	if !reflect.DeepEqual(john.Skills, []string{"go", "k8s"}) || john.ExperienceYears != 3.5 {
		t.Fatalf("unexpected candidate: %+v", john)
	}

	profile := jane.ToProfile()
	if profile.Name != "Jane Doe" || profile.ResumeText != "Python developer" {
		t.Fatalf("unexpected profile: %+v", profile)
	}
}

func TestLoadCandidatesErrors(t *testing.T) {
	empty := writeFile(t, "empty.yaml", "candidates: []\n")
	if _, err := LoadCandidates(empty); !errors.Is(err, ErrNoCandidates) {
		t.Fatalf("expected ErrNoCandidates, got %v", err)
	}

	missing := writeFile(t, "other.yaml", "jobs: []\n")
	if _, err := LoadCandidates(missing); !errors.Is(err, ErrNoCandidates) {
		t.Fatalf("expected ErrNoCandidates, got %v", err)
	}

	badEmail := writeFile(t, "bad.yaml", "candidates:\n  - name: Jane\n    email: not-an-email\n")
	if _, err := LoadCandidates(badEmail); err == nil || !strings.Contains(err.Error(), "invalid candidate #1") {
		t.Fatalf("expected validation error, got %v", err)
	}

	if _, err := LoadCandidates(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestJobComplete(t *testing.T) {
	job := Job{
		Title:       "Data Engineer",
		Description: "We need 3+ years of experience with Python, SQL and Kubernetes. A Bachelor degree and certification in AWS Solutions Architecture, preferred.",
	}

	derived := job.Complete()

	if !reflect.DeepEqual(derived, []string{"required_skills", "required_experience", "required_qualifications"}) {
		t.Fatalf("unexpected derived fields: %v", derived)
	}
	if !reflect.DeepEqual(job.RequiredSkills, []string{"python", "sql", "aws", "kubernetes"}) {
		t.Fatalf("unexpected skills: %q", job.RequiredSkills)
	}
	if *job.RequiredExperience != 3 {
		t.Fatalf("unexpected experience: %v", *job.RequiredExperience)
	}
	if !reflect.DeepEqual(job.RequiredQualifications, []string{"bachelor", "certification in aws solutions architecture"}) {
		t.Fatalf("unexpected qualifications: %q", job.RequiredQualifications)
	}
}

func TestJobCompleteKeepsExplicitFields(t *testing.T) {
	years := 0.0
	job := Job{
		Title:              "Dev",
		Description:        "At least 7 years in Java.",
		RequiredSkills:     []string{"go"},
		RequiredExperience: &years,
	}

	derived := job.Complete()

	if len(derived) != 0 {
		t.Fatalf("expected nothing derived, got %v", derived)
	}
	if *job.RequiredExperience != 0 || !reflect.DeepEqual(job.RequiredSkills, []string{"go"}) {
		t.Fatalf("explicit fields were overwritten: %+v", job)
	}
}

func TestSummarize(t *testing.T) {
	summary := Summarize("Minimum of 4 years building JavaScript apps with Node.js; strong communication. PhD welcome.")

	if !reflect.DeepEqual(summary.Skills, []string{"javascript", "node.js", "communication"}) {
		t.Fatalf("unexpected skills: %q", summary.Skills)
	}
	if summary.ExperienceYears == nil || *summary.ExperienceYears != 4 {
		t.Fatalf("unexpected experience: %v", summary.ExperienceYears)
	}
	if !reflect.DeepEqual(summary.Qualifications, []string{"phd"}) {
		t.Fatalf("unexpected qualifications: %q", summary.Qualifications)
	}

	if got := Summarize("  "); got.Skills != nil || got.ExperienceYears != nil {
		t.Fatalf("expected empty summary, got %+v", got)
	}
}

func TestHistoryRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")

	history, err := LoadHistory(path)
	if err != nil {
		t.Fatalf("expected missing file to be empty history, got %v", err)
	}
	if len(history.Items) != 0 {
		t.Fatalf("expected empty history, got %d items", len(history.Items))
	}

	history.Append(&History{Items: []*HistoryEntry{
		{JobID: "job-1", CandidateID: "c-1", CandidateEmail: "Jane@Example.com", Score: 0.77, Shortlisted: true, ScreenedAt: time.Now().UTC()},
		{JobID: "job-2", CandidateID: "c-2"},
	}})
	if err := history.ToFile(path); err != nil {
		t.Fatalf("write history: %v", err)
	}

	loaded, err := LoadHistory(path)
	if err != nil {
		t.Fatalf("read history: %v", err)
	}
	screened := loaded.Screened("job-1")
	for _, key := range []string{"c-1", "jane@example.com"} {
		if _, ok := screened[key]; !ok {
			t.Fatalf("expected %q to be screened for job-1: %v", key, screened)
		}
	}
	if _, ok := screened["c-2"]; ok {
		t.Fatal("c-2 was screened for another job")
	}
}

func TestLoadHistoryEmptyFile(t *testing.T) {
	path := writeFile(t, "history.json", "")

	history, err := LoadHistory(path)
	if err != nil || len(history.Items) != 0 {
		t.Fatalf("expected empty history, got %+v (%v)", history, err)
	}
}
