package efficacy

import (
	"regexp"
	"strconv"
	"strings"
)

type Change string

const (
	Improved  Change = "improved"
	Worsened  Change = "worsened"
	Unchanged Change = "unchanged"
)

var severityRanks = map[string]int{
	"mild":         1,
	"minimal":      1,
	"slight":       1,
	"moderate":     2,
	"significant":  2,
	"severe":       3,
	"intense":      3,
	"extreme":      4,
	"debilitating": 4,
}

// Checked in order against the text around a symptom.
var contextKeywords = []struct {
	word string
	rank string
}{
	{"mild", "1"}, {"minimal", "1"}, {"slight", "1"},
	{"moderate", "2"}, {"significant", "2"},
	{"severe", "3"}, {"extreme", "4"}, {"intense", "3"},
	{"debilitating", "4"}, {"worst", "4"},
}

var severityPatterns = []string{
	`{}.*?(mild|moderate|severe|extreme)`,
	`{}.*?(\d+)/10`,
	`{}.*?intensity of (\d+)`,
	`{}.*?(?:rated|scale|score)\D*(\d+)`,
	`(mild|moderate|severe|extreme).*?{}`,
}

func compile(format, term string) *regexp.Regexp {
	return regexp.MustCompile("(?i)" + strings.ReplaceAll(format, "{}", regexp.QuoteMeta(term)))
}

// Severity finds how severe a symptom is described in a note: a word
// near the symptom, an N/10 score, an intensity or rating number, or
// failing that a numeric rank for a keyword in the surrounding text.
func Severity(text, symptom string) *string {
	if text == "" || symptom == "" {
		return nil
	}

	for _, p := range severityPatterns {
		if m := compile(p, symptom).FindStringSubmatch(text); m != nil {
			s := strings.ToLower(m[1])
			return &s
		}
	}

	window := symptomContext(text, symptom, 100)
	if window == "" {
		return nil
	}
	lower := strings.ToLower(window)
	for _, k := range contextKeywords {
		if strings.Contains(lower, k.word) {
			rank := k.rank
			return &rank
		}
	}
	return nil
}

// symptomContext returns the symptom with up to size characters either side.
func symptomContext(text, symptom string, size int) string {
	n := strconv.Itoa(size)
	re := regexp.MustCompile(`(?i).{0,` + n + `}` + regexp.QuoteMeta(symptom) + `.{0,` + n + `}`)
	return re.FindString(text)
}

// CompareSeverity classifies the move from previous to current severity.
// Scores out of ten and plain numbers compare numerically, descriptive
// words by rank; anything else, or a missing side, is unchanged.
func CompareSeverity(current, previous *string) Change {
	if current == nil || previous == nil {
		return Unchanged
	}
	cur, prev := *current, *previous

	if strings.Contains(cur, "/") && strings.Contains(prev, "/") {
		c, cerr := strconv.Atoi(strings.TrimSpace(strings.SplitN(cur, "/", 2)[0]))
		p, perr := strconv.Atoi(strings.TrimSpace(strings.SplitN(prev, "/", 2)[0]))
		if cerr == nil && perr == nil {
			return compareRanks(c, p)
		}
	}

	c, cerr := strconv.Atoi(strings.TrimSpace(cur))
	p, perr := strconv.Atoi(strings.TrimSpace(prev))
	if cerr == nil && perr == nil {
		return compareRanks(c, p)
	}

	return compareRanks(severityRanks[strings.ToLower(cur)], severityRanks[strings.ToLower(prev)])
}

func compareRanks(current, previous int) Change {
	switch {
	case current < previous:
		return Improved
	case current > previous:
		return Worsened
	default:
		return Unchanged
	}
}
