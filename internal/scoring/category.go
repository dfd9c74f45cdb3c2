package scoring

import "slices"

// categoryIndex maps a normalized skill to the category that lists it.
type categoryIndex map[string]Category

func newCategoryIndex(categories map[Category][]string) categoryIndex {
	idx := make(categoryIndex)
	for _, category := range orderedCategories(categories) {
		for _, skill := range categories[category] {
			s := Canonical(skill)
			if s == "" {
				continue
			}
			if _, taken := idx[s]; !taken {
				idx[s] = category
			}
		}
	}
	return idx
}

// orderedCategories returns the known categories in fixed order followed by
// any custom ones in lexical order.
func orderedCategories(categories map[Category][]string) []Category {
	out := make([]Category, 0, len(categories))
	known := make(map[Category]struct{}, len(categoryOrder))
	for _, c := range categoryOrder {
		known[c] = struct{}{}
		if _, ok := categories[c]; ok {
			out = append(out, c)
		}
	}
	var extra []Category
	for c := range categories {
		if _, ok := known[c]; !ok {
			extra = append(extra, c)
		}
	}
	slices.Sort(extra)
	return append(out, extra...)
}

// categoryOf looks the skill up directly and then through its synonym key.
func (e *Engine) categoryOf(skill string) (Category, bool) {
	if c, ok := e.categories[skill]; ok {
		return c, true
	}
	key := e.normalizer.key(skill)
	if key == "" {
		return "", false
	}
	if c, ok := e.categories[key]; ok {
		return c, true
	}
	for _, syn := range e.normalizer.synonyms[key] {
		if c, ok := e.categories[syn]; ok {
			return c, true
		}
	}
	return "", false
}

type coverage struct {
	required int
	matched  int
}

// categorySkillScore is the category-weighted skill coverage together with the
// per-category coverage that produced it.
func (e *Engine) categorySkillScore(required, candidate []string) (float64, map[Category]float64) {
	candidateSet := e.normalizer.Expand(candidate)
	if len(candidateSet) == 0 {
		return 0, nil
	}

	perCategory := make(map[Category]*coverage)
	for _, skill := range distinctCanonical(required) {
		category, ok := e.categoryOf(skill)
		if !ok {
			continue
		}
		cov := perCategory[category]
		if cov == nil {
			cov = &coverage{}
			perCategory[category] = cov
		}
		cov.required++
		if e.normalizer.matchesAny(skill, candidateSet) {
			cov.matched++
		}
	}
	if len(perCategory) == 0 {
		return 0, nil
	}

	result := make(map[Category]float64, len(perCategory))
	var weighted, weights, plain float64
	for _, category := range e.categoryOrder {
		cov := perCategory[category]
		if cov == nil {
			continue
		}
		ratio := float64(cov.matched) / float64(cov.required)
		result[category] = ratio

		w := e.categoryWeight(category)
		weighted += w * ratio
		weights += w
		plain += ratio
	}

	if weights <= 0 {
		return plain / float64(len(result)), result
	}
	return weighted / weights, result
}

func (e *Engine) categoryWeight(c Category) float64 {
	if w, ok := e.cfg.CategoryWeights[c]; ok {
		return w
	}
	return e.cfg.DefaultCategoryWeight
}

// flatSkillScore is the plain ratio of required skills the candidate covers.
func (e *Engine) flatSkillScore(required, candidate []string) float64 {
	candidateSet := e.normalizer.Expand(candidate)
	req := distinctCanonical(required)
	if len(req) == 0 || len(candidateSet) == 0 {
		return 0
	}
	matched := 0
	for _, skill := range req {
		if e.normalizer.matchesAny(skill, candidateSet) {
			matched++
		}
	}
	return float64(matched) / float64(len(req))
}

// distinctCanonical normalizes skills and drops empties and repeats, keeping
// first-seen order.
func distinctCanonical(skills []string) []string {
	seen := make(map[string]struct{}, len(skills))
	out := make([]string, 0, len(skills))
	for _, raw := range skills {
		s := Canonical(raw)
		if s == "" {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
