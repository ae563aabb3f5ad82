package extraction

import (
	"regexp"
	"strings"
)

// matcher tries one pattern against the text. ok reports whether the
// pattern hit at all; a hit with an empty value still stops the search so
// that precedence between patterns is preserved.
type matcher func(text string) (value string, ok bool)

func firstMatch(matchers []matcher, text string) (string, bool) {
	for _, m := range matchers {
		if v, ok := m(text); ok {
			return v, true
		}
	}
	return "", false
}

// group returns a matcher yielding the trimmed first capture group of re.
func group(re *regexp.Regexp) matcher {
	return func(text string) (string, bool) {
		m := re.FindStringSubmatch(text)
		if m == nil {
			return "", false
		}
		return strings.TrimSpace(m[1]), true
	}
}

// whole returns a matcher yielding the entire match of re.
func whole(re *regexp.Regexp) matcher {
	return func(text string) (string, bool) {
		m := re.FindString(text)
		if m == "" {
			return "", false
		}
		return m, true
	}
}

// mapped wraps m and translates its value through fn.
func mapped(m matcher, fn func(string) string) matcher {
	return func(text string) (string, bool) {
		v, ok := m(text)
		if !ok {
			return "", false
		}
		return fn(v), true
	}
}

var listSplit = regexp.MustCompile(`,\s*(?:and\s+)?|\s+and\s+`)

// splitList splits an enumeration on commas and "and", dropping blanks.
func splitList(s string) []string {
	parts := listSplit.Split(s, -1)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// wordRe compiles a case-insensitive whole-word pattern for a vocabulary term.
func wordRe(term string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(term) + `\b`)
}

// capitalize upper-cases the first letter and lower-cases the rest.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(strings.ToLower(s))
	r[0] = []rune(strings.ToUpper(string(r[0])))[0]
	return string(r)
}
