package scoring

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// keywords extracts the keyword set of a job description: vocabulary terms it
// mentions, supplemented with long distinctive words when there are too few.
func (e *Engine) keywords(description string) []string {
	text := strings.ToLower(description)
	if strings.TrimSpace(text) == "" {
		return nil
	}

	seen := make(map[string]struct{})
	var out []string
	for _, term := range e.cfg.KeywordVocabulary {
		term = strings.ToLower(strings.TrimSpace(term))
		if term == "" {
			continue
		}
		if _, dup := seen[term]; dup {
			continue
		}
		if strings.Contains(text, term) {
			seen[term] = struct{}{}
			out = append(out, term)
		}
	}

	if len(out) >= e.cfg.MinVocabularyHits {
		return out
	}

	added := 0
	for _, field := range strings.Fields(text) {
		if added >= e.cfg.MaxSupplementWords {
			break
		}
		word := strings.TrimFunc(field, func(r rune) bool {
			return unicode.IsPunct(r) || unicode.IsSymbol(r)
		})
		if utf8.RuneCountInString(word) < e.cfg.MinSupplementWordLen {
			continue
		}
		if _, stop := e.stopwords[word]; stop {
			continue
		}
		if _, dup := seen[word]; dup {
			continue
		}
		seen[word] = struct{}{}
		out = append(out, word)
		added++
	}
	return out
}

// keywordScore is the fraction of the description's keywords found in the
// resume text.
func (e *Engine) keywordScore(description, resume string) float64 {
	text := strings.ToLower(resume)
	if strings.TrimSpace(text) == "" {
		return 0
	}
	keys := e.keywords(description)
	if len(keys) == 0 {
		return 0
	}

	found := 0
	for _, k := range keys {
		if strings.Contains(text, k) {
			found++
		}
	}
	return float64(found) / float64(len(keys))
}
