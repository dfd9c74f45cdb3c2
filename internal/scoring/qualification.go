package scoring

// qualificationScore is the share of required qualifications the candidate
// lists, compared case-insensitively. No requirements means full credit.
func qualificationScore(required, candidate []string) float64 {
	req := distinctCanonical(required)
	if len(req) == 0 {
		return 1
	}

	have := make(map[string]struct{}, len(candidate))
	for _, q := range distinctCanonical(candidate) {
		have[q] = struct{}{}
	}

	matched := 0
	for _, q := range req {
		if _, ok := have[q]; ok {
			matched++
		}
	}
	return float64(matched) / float64(len(req))
}
