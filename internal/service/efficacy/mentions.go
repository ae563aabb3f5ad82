package efficacy

import (
	"regexp"
	"strings"
)

const owner = `(?:the|my|her|his|their)`

var (
	improvementPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)` + owner + `\s+([^.]+?)\s+(?:has|have|is|are)\s+(?:improved|better|decreased|reduced|subsided)`),
		regexp.MustCompile(`(?i)(?:improvement|decrease|reduction)\s+in\s+` + owner + `\s+([^.]+)`),
		regexp.MustCompile(`(?i)` + owner + `\s+([^.]+?)\s+(?:is|are)\s+(?:less|not as)\s+(?:severe|intense|painful|frequent)`),
		regexp.MustCompile(`(?i)(?:report|mention|note)\s+(?:that|of)\s+` + owner + `\s+([^.]+?)\s+(?:is|has|have)\s+(?:improved|better)`),
	}
	worseningPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)` + owner + `\s+([^.]+?)\s+(?:has|have|is|are)\s+(?:worse|worsened|increased|intensified)`),
		regexp.MustCompile(`(?i)(?:worsening|increase|intensification)\s+in\s+` + owner + `\s+([^.]+)`),
		regexp.MustCompile(`(?i)` + owner + `\s+([^.]+?)\s+(?:is|are)\s+(?:more)\s+(?:severe|intense|painful|frequent)`),
		regexp.MustCompile(`(?i)(?:report|mention|note)\s+(?:that|of)\s+` + owner + `\s+([^.]+?)\s+(?:is|has|have)\s+(?:worse|worsened)`),
	}
)

var (
	pronounPrefixes = []string{"i ", "he ", "she ", "they ", "we "}
	leadingArticles = map[string]bool{
		"a": true, "an": true, "the": true, "this": true, "that": true,
		"these": true, "those": true, "some": true, "any": true,
	}
)

// Mention is a sentence fragment saying a symptom got better or worse.
type Mention struct {
	Symptom string
	Change  Change
	Text    string
}

// Mentions harvests improvement phrases first, then worsening phrases.
func Mentions(text string) []Mention {
	var out []Mention
	out = append(out, harvest(improvementPatterns, Improved, text)...)
	out = append(out, harvest(worseningPatterns, Worsened, text)...)
	return out
}

func harvest(patterns []*regexp.Regexp, change Change, text string) []Mention {
	var out []Mention
	for _, re := range patterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			symptom := strings.TrimSpace(m[1])
			if len(symptom) <= 3 || hasPronounPrefix(symptom) {
				continue
			}
			out = append(out, Mention{Symptom: cleanSymptom(symptom), Change: change, Text: m[0]})
		}
	}
	return out
}

func hasPronounPrefix(s string) bool {
	lower := strings.ToLower(s)
	for _, p := range pronounPrefixes {
		if strings.HasPrefix(lower, p) {
			return true
		}
	}
	return false
}

func cleanSymptom(s string) string {
	words := strings.Fields(s)
	if len(words) > 0 && leadingArticles[strings.ToLower(words[0])] {
		return strings.Join(words[1:], " ")
	}
	return s
}
