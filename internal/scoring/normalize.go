package scoring

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Normalizer canonicalizes raw skill strings and expands them with the
// registered synonyms.
type Normalizer struct {
	synonyms map[string][]string
	// reverse maps every registered synonym back to its table key.
	reverse map[string]string
}

// NewNormalizer compiles a synonym table. Keys and synonyms are normalized the
// same way raw skills are.
func NewNormalizer(synonyms map[string][]string) *Normalizer {
	n := &Normalizer{
		synonyms: make(map[string][]string, len(synonyms)),
		reverse:  make(map[string]string),
	}
	for key, values := range synonyms {
		k := Canonical(key)
		if k == "" {
			continue
		}
		for _, v := range values {
			s := Canonical(v)
			if s == "" {
				continue
			}
			n.synonyms[k] = append(n.synonyms[k], s)
			if _, taken := n.reverse[s]; !taken {
				n.reverse[s] = k
			}
		}
		if _, ok := n.synonyms[k]; !ok {
			n.synonyms[k] = nil
		}
	}
	return n
}

// Canonical lower-cases, trims and NFC-composes a skill.
func Canonical(skill string) string {
	return strings.ToLower(strings.TrimSpace(norm.NFC.String(skill)))
}

// Expand returns the normalized set of skills including every synonym of the
// skills that are table keys. Empty strings are dropped.
func (n *Normalizer) Expand(skills []string) map[string]struct{} {
	out := make(map[string]struct{}, len(skills))
	for _, raw := range skills {
		for s := range n.expandOne(raw) {
			out[s] = struct{}{}
		}
	}
	return out
}

func (n *Normalizer) expandOne(raw string) map[string]struct{} {
	skill := Canonical(raw)
	if skill == "" {
		return nil
	}
	out := map[string]struct{}{skill: {}}
	for _, syn := range n.synonyms[skill] {
		out[syn] = struct{}{}
	}
	return out
}

// Matches reports whether two raw skills refer to the same thing: their
// expanded sets intersect.
func (n *Normalizer) Matches(a, b string) bool {
	return n.matchesAny(a, n.expandOne(b))
}

// matchesAny reports whether the required skill is covered by the candidate's
// expanded skill set.
func (n *Normalizer) matchesAny(required string, candidate map[string]struct{}) bool {
	for s := range n.expandOne(required) {
		if _, ok := candidate[s]; ok {
			return true
		}
	}
	return false
}

// key returns the synonym-table key a skill belongs to, the skill itself when
// it is a key, or "".
func (n *Normalizer) key(skill string) string {
	if _, ok := n.synonyms[skill]; ok {
		return skill
	}
	return n.reverse[skill]
}
