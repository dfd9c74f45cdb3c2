package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizer_Expand(t *testing.T) {
	n := NewNormalizer(map[string][]string{"Kubernetes": {"K8s"}})

	got := n.Expand([]string{"  Kubernetes ", "", "Rust", "   "})

	assert.Equal(t, map[string]struct{}{"kubernetes": {}, "k8s": {}, "rust": {}}, got)
}

func TestNormalizer_MatchesBothDirections(t *testing.T) {
	n := NewNormalizer(DefaultConfig().Synonyms)

	assert.True(t, n.Matches("kubernetes", "k8s"))
	assert.True(t, n.Matches("k8s", "kubernetes"))
	assert.True(t, n.Matches("Node.js", "JavaScript"))
	assert.True(t, n.Matches("elixir", "Elixir"))
	// two synonyms of the same key do not match each other
	assert.False(t, n.Matches("mysql", "oracle"))
}

func TestNormalizer_UnicodeComposition(t *testing.T) {
	n := NewNormalizer(nil)

	// precomposed vs combining accent
	assert.True(t, n.Matches("caf\u00e9", "cafe\u0301"))
}

func TestCategorySkillScore_SynonymSymmetry(t *testing.T) {
	engine := newTestEngine(t, DefaultConfig())
	synonyms := DefaultConfig().Synonyms

	for key, values := range synonyms {
		withKey, keyCoverage := engine.categorySkillScore([]string{key}, []string{key})
		for _, synonym := range values {
			withSynonym, synonymCoverage := engine.categorySkillScore([]string{key}, []string{synonym})
			assert.Equal(t, withKey, withSynonym, "%s via %s", key, synonym)
			assert.Equal(t, keyCoverage, synonymCoverage, "%s via %s", key, synonym)
		}
	}
}

func TestCategorySkillScore(t *testing.T) {
	engine := newTestEngine(t, DefaultConfig())

	cases := []struct {
		name      string
		required  []string
		candidate []string
		want      float64
		coverage  map[Category]float64
	}{
		{
			name:      "empty required",
			required:  nil,
			candidate: []string{"python"},
			want:      0,
		},
		{
			name:      "empty candidate",
			required:  []string{"python"},
			candidate: []string{" "},
			want:      0,
		},
		{
			name:      "uncategorized skills only",
			required:  []string{"cobol"},
			candidate: []string{"cobol"},
			want:      0,
		},
		{
			name:      "renormalized over scored categories",
			required:  []string{"python", "aws"},
			candidate: []string{"python", "docker"},
			want:      0.625,
			coverage:  map[Category]float64{CategoryProgramming: 1, CategoryCloud: 0},
		},
		{
			name:      "synonym inherits category",
			required:  []string{"k8s", "mysql"},
			candidate: []string{"kubernetes"},
			want:      0.5,
			coverage:  map[Category]float64{CategoryCloud: 1, CategoryDatabase: 0},
		},
		{
			name:      "partial coverage inside a category",
			required:  []string{"python", "java", "git"},
			candidate: []string{"python"},
			want:      (0.25*0.5 + 0.10*0) / 0.35,
			coverage:  map[Category]float64{CategoryProgramming: 0.5, CategoryOther: 0},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, coverage := engine.categorySkillScore(tc.required, tc.candidate)
			assert.InDelta(t, tc.want, got, 1e-9)
			if tc.coverage != nil {
				assert.Equal(t, tc.coverage, coverage)
			}
		})
	}
}

func TestExperienceScore_MonotonicAndBounded(t *testing.T) {
	engine := newTestEngine(t, DefaultConfig())

	prev := 0.0
	for years := 0.0; years <= 30; years += 0.5 {
		got := engine.experienceScore(years, 5)
		assert.GreaterOrEqual(t, got, prev, "years=%v", years)
		assert.LessOrEqual(t, got, 1.0, "years=%v", years)
		prev = got
	}
}

func TestExperienceScore(t *testing.T) {
	canonical := newTestEngine(t, DefaultConfig())
	legacy := newTestEngine(t, LegacyConfig())

	assert.InDelta(t, 0.5, canonical.experienceScore(3, 0), 1e-9)
	assert.InDelta(t, 1.0, legacy.experienceScore(3, 0), 1e-9)
	assert.InDelta(t, 0.6, canonical.experienceScore(3, 5), 1e-9)
	assert.InDelta(t, 0.0, canonical.experienceScore(-2, 5), 1e-9)
	assert.InDelta(t, 1.2, legacy.experienceScore(30, 5), 1e-9)
}

func TestExperienceScore_LegacyHasNoExcessBonus(t *testing.T) {
	canonical := newTestEngine(t, DefaultConfig())
	legacy := newTestEngine(t, LegacyConfig())

	assert.InDelta(t, 1.1, legacy.experienceScore(5.5, 5), 1e-9)
	assert.InDelta(t, 1.0, canonical.experienceScore(5.5, 5), 1e-9)
	assert.InDelta(t, 0.0, legacy.experienceScore(0, 0), 1e-9)
	assert.InDelta(t, 0.5, canonical.experienceScore(0, 0), 1e-9)
}

func TestQualificationScore(t *testing.T) {
	assert.InDelta(t, 1.0, qualificationScore(nil, nil), 1e-9)
	assert.InDelta(t, 1.0, qualificationScore([]string{"Bachelor"}, []string{"bachelor "}), 1e-9)
	assert.InDelta(t, 0.5, qualificationScore([]string{"bachelor", "aws certified"}, []string{"BACHELOR"}), 1e-9)
	assert.InDelta(t, 0.0, qualificationScore([]string{"phd"}, nil), 1e-9)
}

func TestKeywords(t *testing.T) {
	engine := newTestEngine(t, DefaultConfig())

	t.Run("vocabulary is enough", func(t *testing.T) {
		got := engine.keywords("Design scalable microservices, deploy to cloud and write testing tools.")
		assert.Equal(t, []string{"cloud", "deploy", "design", "microservices", "scalable", "testing", "tool"}, got)
	})

	t.Run("supplemented with long words", func(t *testing.T) {
		got := engine.keywords("Looking for a Kotlin engineer, Android, about Gradle: (Kotlin) shipping")
		assert.Equal(t, []string{"kotlin", "engineer", "android", "gradle", "shipping"}, got)
	})

	t.Run("supplement is capped", func(t *testing.T) {
		got := engine.keywords("aaaaaa1 aaaaaa2 aaaaaa3 aaaaaa4 aaaaaa5 aaaaaa6 aaaaaa7 aaaaaa8 aaaaaa9 aaaaaa10 aaaaaa11 aaaaaa12")
		assert.Len(t, got, 10)
	})

	t.Run("empty description", func(t *testing.T) {
		assert.Empty(t, engine.keywords("   "))
	})
}

func TestKeywordScore(t *testing.T) {
	engine := newTestEngine(t, DefaultConfig())

	assert.InDelta(t, 0.0, engine.keywordScore("", "python cloud"), 1e-9)
	assert.InDelta(t, 0.0, engine.keywordScore("cloud platform", ""), 1e-9)
	assert.InDelta(t, 0.5, engine.keywordScore("cloud platform", "Cloud engineer"), 1e-9)
}
