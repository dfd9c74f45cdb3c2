package scoring

import "math"

// experienceScore compares candidate years to required years. Excess years add
// a small bounded bonus; the result never exceeds ExperienceCap.
func (e *Engine) experienceScore(candidateYears, requiredYears float64) float64 {
	cand := sanitizeYears(candidateYears)
	req := sanitizeYears(requiredYears)

	if req == 0 {
		if e.cfg.ZeroExperienceNeedsYears && cand == 0 {
			return 0
		}
		return e.cfg.ZeroExperienceScore
	}

	score := math.Min(e.cfg.ExperienceCap, cand/req)
	if cand > req && e.cfg.ExperienceBonusPerYear > 0 {
		bonus := math.Min(e.cfg.ExperienceBonusCap, (cand-req)*e.cfg.ExperienceBonusPerYear)
		score += bonus
	}
	return clamp(score, 0, e.cfg.ExperienceCap)
}

// experienceMatchRatio is the plain min(1, cand/req) ratio used by the degraded
// two-factor fallback; 0.5 when nothing is required.
func experienceMatchRatio(candidateYears, requiredYears float64) float64 {
	cand := sanitizeYears(candidateYears)
	req := sanitizeYears(requiredYears)
	if req == 0 {
		return 0.5
	}
	return math.Min(1, cand/req)
}

func sanitizeYears(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
