package extraction

import (
	"regexp"
	"strings"
	"unicode"
)

var medicalTerms = []string{
	"COVID", "COVID-19", "MRI", "CT scan", "EKG", "ECG", "IV", "BP",
	"HDL", "LDL", "VLDL", "GERD", "UTI", "URI", "PCP", "COPD",
}

var medicalTermRes = func() []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(medicalTerms))
	for i, t := range medicalTerms {
		out[i] = wordRe(strings.ToLower(t))
	}
	return out
}()

// CleanTranscription capitalizes sentences, restores the spelling of common
// medical acronyms and terminates the text with a period.
func CleanTranscription(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return text
	}

	sentences := splitSentences(text)
	for i, s := range sentences {
		r := []rune(s)
		r[0] = unicode.ToUpper(r[0])
		sentences[i] = string(r)
	}
	text = strings.Join(sentences, " ")

	for i, re := range medicalTermRes {
		text = re.ReplaceAllLiteralString(text, medicalTerms[i])
	}

	if !strings.HasSuffix(text, ".") && !strings.HasSuffix(text, "!") && !strings.HasSuffix(text, "?") {
		text += "."
	}
	return text
}

// splitSentences splits after '.', '!' or '?' followed by whitespace.
func splitSentences(text string) []string {
	var (
		out   []string
		start int
	)
	r := []rune(text)
	for i := 0; i < len(r); i++ {
		if !strings.ContainsRune(".!?", r[i]) || i+1 >= len(r) || !unicode.IsSpace(r[i+1]) {
			continue
		}
		out = append(out, string(r[start:i+1]))
		j := i + 1
		for j < len(r) && unicode.IsSpace(r[j]) {
			j++
		}
		start = j
		i = j - 1
	}
	if start < len(r) {
		out = append(out, string(r[start:]))
	}
	return out
}
