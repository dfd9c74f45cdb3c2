package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOverrides_Resolve(t *testing.T) {
	shift := 0.2
	o := Overrides{
		Synonyms:          map[string][]string{"Golang": {"go"}},
		CategoryWeights:   map[Category]float64{"Cloud": 0.3},
		SeniorityShift:    &shift,
		ShortlistRule:     ShortlistOverall,
		KeywordVocabulary: []string{"kafka"},
	}

	cfg, err := o.Resolve()
	require.NoError(t, err)

	assert.Equal(t, VariantCanonical, cfg.Variant)
	assert.Equal(t, []string{"go"}, cfg.Synonyms["golang"])
	assert.Equal(t, []string{"py", "python3"}, cfg.Synonyms["python"])
	assert.InDelta(t, 0.3, cfg.CategoryWeights[CategoryCloud], 1e-9)
	assert.InDelta(t, 0.25, cfg.CategoryWeights[CategoryProgramming], 1e-9)
	assert.InDelta(t, 0.2, cfg.SeniorityShift, 1e-9)
	assert.Equal(t, ShortlistOverall, cfg.ShortlistRule)
	assert.Equal(t, []string{"kafka"}, cfg.KeywordVocabulary)
	assert.NotEmpty(t, cfg.Stopwords)
}

func TestOverrides_ResolveLegacy(t *testing.T) {
	cfg, err := Overrides{Variant: "Legacy"}.Resolve()
	require.NoError(t, err)

	assert.Equal(t, LegacyConfig(), cfg)
}

func TestOverrides_ResolveErrors(t *testing.T) {
	_, err := Overrides{Variant: "future"}.Resolve()
	require.Error(t, err)

	negative := -1.0
	_, err = Overrides{ZeroExperienceScore: &negative}.Resolve()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "zero experience score")
}
