package scoring

import (
	"errors"
	"fmt"
	"maps"
	"math"
	"slices"
	"strings"
)

// Category is a named group of related skills.
type Category string

const (
	CategoryProgramming Category = "programming"
	CategoryWeb         Category = "web"
	CategoryDatabase    Category = "database"
	CategoryCloud       Category = "cloud"
	CategoryAIML        Category = "ai_ml"
	CategoryBigData     Category = "big_data"
	CategoryOther       Category = "other"
)

// Variant selects one of the two historical rule sets.
type Variant string

const (
	VariantCanonical Variant = "canonical"
	VariantLegacy    Variant = "legacy"
)

// ShortlistRule selects how the shortlist decision is derived.
type ShortlistRule string

const (
	// ShortlistStrict requires overall, skills and experience thresholds.
	ShortlistStrict ShortlistRule = "strict"
	// ShortlistOverall only looks at the overall score.
	ShortlistOverall ShortlistRule = "overall"
)

// SkillStrategy selects how the skill component is computed.
type SkillStrategy string

const (
	// SkillsByCategory is the category-weighted coverage.
	SkillsByCategory SkillStrategy = "category"
	// SkillsFlat is the plain ratio of matched required skills.
	SkillsFlat SkillStrategy = "flat"
)

// Weights are the aggregation weights of the four component scores.
type Weights struct {
	Skills         float64 `mapstructure:"skills" json:"skills"`
	Experience     float64 `mapstructure:"experience" json:"experience"`
	Qualifications float64 `mapstructure:"qualifications" json:"qualifications"`
	Keywords       float64 `mapstructure:"keywords" json:"keywords"`
}

func (w Weights) sum() float64 {
	return w.Skills + w.Experience + w.Qualifications + w.Keywords
}

func (w Weights) normalized() Weights {
	total := w.sum()
	if total <= 0 {
		return w
	}
	return Weights{
		Skills:         w.Skills / total,
		Experience:     w.Experience / total,
		Qualifications: w.Qualifications / total,
		Keywords:       w.Keywords / total,
	}
}

// ShortlistThresholds are the minimum scores a candidate needs to be shortlisted.
type ShortlistThresholds struct {
	Overall    float64 `mapstructure:"overall" json:"overall"`
	Skills     float64 `mapstructure:"skills" json:"skills"`
	Experience float64 `mapstructure:"experience" json:"experience"`
}

// Config is the full set of scoring tables and knobs. It is copied into an
// Engine at construction time and never consulted again afterwards.
type Config struct {
	Variant                  Variant               `json:"variant"`
	Synonyms                 map[string][]string   `json:"synonyms"`
	Categories               map[Category][]string `json:"categories"`
	CategoryWeights          map[Category]float64  `json:"category_weights"`
	DefaultCategoryWeight    float64               `json:"default_category_weight"`
	BaseWeights              Weights               `json:"base_weights"`
	SeniorityShift           float64               `json:"seniority_shift"`
	BonusMultiplier          float64               `json:"bonus_multiplier"`
	BonusThreshold           float64               `json:"bonus_threshold"`
	Shortlist                ShortlistThresholds   `json:"shortlist"`
	ShortlistRule            ShortlistRule         `json:"shortlist_rule"`
	SkillStrategy            SkillStrategy         `json:"skill_strategy"`
	ZeroExperienceScore      float64               `json:"zero_experience_score"`
	ZeroExperienceNeedsYears bool                  `json:"zero_experience_needs_years"`
	ExperienceBonusPerYear   float64               `json:"experience_bonus_per_year"`
	ExperienceBonusCap       float64               `json:"experience_bonus_cap"`
	ExperienceCap            float64               `json:"experience_cap"`
	KeywordVocabulary        []string              `json:"keyword_vocabulary"`
	Stopwords                []string              `json:"stopwords"`
	MinVocabularyHits        int                   `json:"min_vocabulary_hits"`
	MaxSupplementWords       int                   `json:"max_supplement_words"`
	MinSupplementWordLen     int                   `json:"min_supplement_word_len"`
	FallbackScore            float64               `json:"fallback_score"`
}

// categoryOrder fixes the iteration order of categories so that floating point
// sums are identical between runs.
var categoryOrder = []Category{
	CategoryProgramming,
	CategoryWeb,
	CategoryDatabase,
	CategoryCloud,
	CategoryAIML,
	CategoryBigData,
	CategoryOther,
}

// DefaultConfig returns the canonical rule set.
func DefaultConfig() Config {
	return Config{
		Variant: VariantCanonical,
		Synonyms: map[string][]string{
			"python":                      {"py", "python3"},
			"javascript":                  {"js", "ecmascript", "node.js", "nodejs"},
			"java":                        {"java programming", "core java", "java ee"},
			"c++":                         {"cpp", "c plus plus"},
			"react":                       {"reactjs", "react.js"},
			"angular":                     {"angularjs", "angular.js"},
			"vue":                         {"vuejs", "vue.js"},
			"aws":                         {"amazon web services", "amazon aws"},
			"docker":                      {"containerization"},
			"kubernetes":                  {"k8s"},
			"machine learning":            {"ml", "machine-learning"},
			"artificial intelligence":     {"ai"},
			"natural language processing": {"nlp"},
			"tensorflow":                  {"tf"},
			"pytorch":                     {"torch"},
			"sql":                         {"mysql", "postgresql", "oracle", "tsql", "sql server"},
			"mongodb":                     {"mongo", "nosql"},
			"bigdata":                     {"big data", "hadoop", "spark"},
			"devops":                      {"ci/cd", "continuous integration"},
			"git":                         {"github", "gitlab", "version control"},
			"data science":                {"data analysis", "data analytics", "analytics"},
			"web development":             {"web dev", "frontend", "backend", "fullstack"},
			"api":                         {"rest api", "graphql", "web services"},
		},
		Categories: map[Category][]string{
			CategoryProgramming: {"python", "java", "javascript", "c++"},
			CategoryWeb:         {"react", "angular", "vue"},
			CategoryDatabase:    {"sql", "mongodb"},
			CategoryCloud:       {"aws", "docker", "kubernetes"},
			CategoryAIML:        {"machine learning", "tensorflow", "pytorch", "nlp", "computer vision"},
			CategoryBigData:     {"spark", "hadoop", "kafka"},
			CategoryOther:       {"git", "agile", "devops"},
		},
		CategoryWeights: map[Category]float64{
			CategoryProgramming: 0.25,
			CategoryWeb:         0.15,
			CategoryDatabase:    0.15,
			CategoryCloud:       0.15,
			CategoryAIML:        0.25,
			CategoryBigData:     0.15,
			CategoryOther:       0.10,
		},
		DefaultCategoryWeight: 0.10,
		BaseWeights: Weights{
			Skills:         0.4,
			Experience:     0.3,
			Qualifications: 0.2,
			Keywords:       0.1,
		},
		SeniorityShift:  0.1,
		BonusMultiplier: 1.1,
		BonusThreshold:  0.8,
		Shortlist: ShortlistThresholds{
			Overall:    0.7,
			Skills:     0.6,
			Experience: 0.8,
		},
		ShortlistRule:          ShortlistStrict,
		SkillStrategy:          SkillsByCategory,
		ZeroExperienceScore:    0.5,
		ExperienceBonusPerYear: 0.05,
		ExperienceBonusCap:     0.20,
		ExperienceCap:          1.0,
		KeywordVocabulary: []string{
			"algorithm", "analytics", "api", "architecture", "automation",
			"cloud", "database", "deploy", "design", "development",
			"devops", "distributed", "framework", "infrastructure", "integration",
			"machine learning", "microservices", "optimization", "pipeline", "platform",
			"programming", "scalable", "security", "software", "system",
			"testing", "tool", "web", "agile", "data",
		},
		Stopwords: []string{
			"their", "there", "these", "those", "about", "would", "should",
			"before", "because", "within", "through", "across", "having",
			"including", "looking", "candidate", "required", "preferred",
		},
		MinVocabularyHits:    5,
		MaxSupplementWords:   10,
		MinSupplementWordLen: 6,
		FallbackScore:        0.5,
	}
}

// LegacyConfig returns the alternate rule set kept for comparison with older
// scores: flat skill ratio, 0.5/0.3/0.1/0.1 weights, no seniority shift,
// experience as plain min(1.2, cand/req) without the excess-year bonus, full
// credit when no experience is required and the candidate has some, and an
// overall-only shortlist rule.
func LegacyConfig() Config {
	cfg := DefaultConfig()
	cfg.Variant = VariantLegacy
	cfg.BaseWeights = Weights{Skills: 0.5, Experience: 0.3, Qualifications: 0.1, Keywords: 0.1}
	cfg.SeniorityShift = 0
	cfg.SkillStrategy = SkillsFlat
	cfg.ZeroExperienceScore = 1.0
	cfg.ZeroExperienceNeedsYears = true
	cfg.ExperienceBonusPerYear = 0
	cfg.ExperienceCap = 1.2
	cfg.ShortlistRule = ShortlistOverall
	return cfg
}

// ConfigFor returns the base configuration of a variant.
func ConfigFor(variant Variant) (Config, error) {
	switch Variant(strings.ToLower(strings.TrimSpace(string(variant)))) {
	case "", VariantCanonical:
		return DefaultConfig(), nil
	case VariantLegacy:
		return LegacyConfig(), nil
	default:
		return Config{}, fmt.Errorf("unknown scoring variant: %q", variant)
	}
}

// Validate reports configuration values the engine cannot work with.
func (c Config) Validate() error {
	var errs []error

	w := c.BaseWeights
	if w.Skills < 0 || w.Experience < 0 || w.Qualifications < 0 || w.Keywords < 0 {
		errs = append(errs, errors.New("base weights must be non-negative"))
	}
	if w.sum() <= 0 {
		errs = append(errs, errors.New("base weights must sum to a positive value"))
	}
	for category, weight := range c.CategoryWeights {
		if weight < 0 || math.IsNaN(weight) {
			errs = append(errs, fmt.Errorf("category weight %q must be non-negative", category))
		}
	}
	if c.SeniorityShift < 0 {
		errs = append(errs, errors.New("seniority shift must be non-negative"))
	}
	if c.BonusMultiplier < 1 {
		errs = append(errs, errors.New("bonus multiplier must be at least 1"))
	}
	if !inUnitRange(c.FallbackScore) {
		errs = append(errs, errors.New("fallback score must be within [0,1]"))
	}
	if !inUnitRange(c.ZeroExperienceScore) {
		errs = append(errs, errors.New("zero experience score must be within [0,1]"))
	}
	if c.ExperienceCap < 1 {
		errs = append(errs, errors.New("experience cap must be at least 1"))
	}
	switch c.ShortlistRule {
	case ShortlistStrict, ShortlistOverall:
	default:
		errs = append(errs, fmt.Errorf("unknown shortlist rule: %q", c.ShortlistRule))
	}
	switch c.SkillStrategy {
	case SkillsByCategory, SkillsFlat:
	default:
		errs = append(errs, fmt.Errorf("unknown skill strategy: %q", c.SkillStrategy))
	}

	return errors.Join(errs...)
}

// clone returns a deep copy so that an Engine never shares tables with callers.
func (c Config) clone() Config {
	out := c
	out.Synonyms = make(map[string][]string, len(c.Synonyms))
	for key, values := range c.Synonyms {
		out.Synonyms[key] = slices.Clone(values)
	}
	out.Categories = make(map[Category][]string, len(c.Categories))
	for key, values := range c.Categories {
		out.Categories[key] = slices.Clone(values)
	}
	out.CategoryWeights = maps.Clone(c.CategoryWeights)
	out.KeywordVocabulary = slices.Clone(c.KeywordVocabulary)
	out.Stopwords = slices.Clone(c.Stopwords)
	return out
}

// Overrides carries optional values read from the configuration file. Nil or
// empty fields keep the variant's value.
type Overrides struct {
	Variant             Variant               `mapstructure:"variant"`
	Synonyms            map[string][]string   `mapstructure:"synonyms"`
	Categories          map[Category][]string `mapstructure:"categories"`
	CategoryWeights     map[Category]float64  `mapstructure:"category-weights"`
	BaseWeights         *Weights              `mapstructure:"base-weights"`
	SeniorityShift      *float64              `mapstructure:"seniority-shift"`
	BonusMultiplier     *float64              `mapstructure:"bonus-multiplier"`
	BonusThreshold      *float64              `mapstructure:"bonus-threshold"`
	Shortlist           *ShortlistThresholds  `mapstructure:"shortlist"`
	ShortlistRule       ShortlistRule         `mapstructure:"shortlist-rule"`
	SkillStrategy       SkillStrategy         `mapstructure:"skill-strategy"`
	ZeroExperienceScore *float64              `mapstructure:"zero-experience-score"`
	ExperienceCap       *float64              `mapstructure:"experience-cap"`
	KeywordVocabulary   []string              `mapstructure:"keyword-vocabulary"`
	Stopwords           []string              `mapstructure:"stopwords"`
}

// Resolve builds the final configuration: the variant's base values with the
// overrides applied on top. Synonym, category and category weight entries are
// merged per key; vocabulary and stopword lists replace the defaults.
func (o Overrides) Resolve() (Config, error) {
	cfg, err := ConfigFor(o.Variant)
	if err != nil {
		return Config{}, err
	}

	for key, values := range o.Synonyms {
		cfg.Synonyms[strings.ToLower(strings.TrimSpace(key))] = slices.Clone(values)
	}
	for key, values := range o.Categories {
		cfg.Categories[Category(strings.ToLower(string(key)))] = slices.Clone(values)
	}
	for key, weight := range o.CategoryWeights {
		cfg.CategoryWeights[Category(strings.ToLower(string(key)))] = weight
	}
	if o.BaseWeights != nil {
		cfg.BaseWeights = *o.BaseWeights
	}
	if o.SeniorityShift != nil {
		cfg.SeniorityShift = *o.SeniorityShift
	}
	if o.BonusMultiplier != nil {
		cfg.BonusMultiplier = *o.BonusMultiplier
	}
	if o.BonusThreshold != nil {
		cfg.BonusThreshold = *o.BonusThreshold
	}
	if o.Shortlist != nil {
		cfg.Shortlist = *o.Shortlist
	}
	if o.ShortlistRule != "" {
		cfg.ShortlistRule = o.ShortlistRule
	}
	if o.SkillStrategy != "" {
		cfg.SkillStrategy = o.SkillStrategy
	}
	if o.ZeroExperienceScore != nil {
		cfg.ZeroExperienceScore = *o.ZeroExperienceScore
	}
	if o.ExperienceCap != nil {
		cfg.ExperienceCap = *o.ExperienceCap
	}
	if len(o.KeywordVocabulary) > 0 {
		cfg.KeywordVocabulary = slices.Clone(o.KeywordVocabulary)
	}
	if len(o.Stopwords) > 0 {
		cfg.Stopwords = slices.Clone(o.Stopwords)
	}

	return cfg, cfg.Validate()
}

func inUnitRange(v float64) bool {
	return v >= 0 && v <= 1 && !math.IsNaN(v)
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}
