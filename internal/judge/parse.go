package judge

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
)

const (
	scorePrefix     = "SCORE:"
	reasoningPrefix = "REASONING:"
)

var (
	errNoScore     = errors.New("no score found in judge reply")
	errNoReasoning = errors.New("no reasoning line in judge reply")

	decimalPattern = regexp.MustCompile(`\d+\.\d+`)
)

// parseStrict reads the SCORE: and REASONING: lines; both must be present. The
// reasoning runs to the end of the reply so that multi-line explanations are
// kept.
func parseStrict(reply string) (float64, string, error) {
	lines := strings.Split(reply, "\n")

	score, found := 0.0, false
	var reasoning []string
	inReasoning := false

	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		upper := strings.ToUpper(line)

		switch {
		case !found && strings.HasPrefix(upper, scorePrefix):
			value := strings.TrimSpace(line[len(scorePrefix):])
			if fields := strings.Fields(value); len(fields) > 0 {
				value = fields[0]
			}
			parsed, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return 0, "", errNoScore
			}
			score, found = parsed, true
			inReasoning = false
		case !inReasoning && reasoning == nil && strings.HasPrefix(upper, reasoningPrefix):
			inReasoning = true
			if rest := strings.TrimSpace(line[len(reasoningPrefix):]); rest != "" {
				reasoning = append(reasoning, rest)
			} else {
				reasoning = []string{}
			}
		case inReasoning && line != "":
			reasoning = append(reasoning, line)
		}
	}

	if !found {
		return 0, "", errNoScore
	}
	if reasoning == nil {
		return 0, "", errNoReasoning
	}
	return score, strings.Join(reasoning, " "), nil
}

// parseLenient takes the first decimal number anywhere in the reply.
func parseLenient(reply string) (float64, error) {
	match := decimalPattern.FindString(reply)
	if match == "" {
		return 0, errNoScore
	}
	return strconv.ParseFloat(match, 64)
}
