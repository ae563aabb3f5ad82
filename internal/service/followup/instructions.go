package followup

import (
	"regexp"
	"strings"
)

var (
	patientInstructionPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:you should|you need to|make sure to|be sure to|remember to|don't forget to|please) ([^.]+)`),
		regexp.MustCompile(`(?i)(?:I want you to|I'd like you to|I recommend|I suggest) ([^.]+)`),
		regexp.MustCompile(`(?i)(?:it's important|it is important|it's crucial|it is crucial) (?:to|that you) ([^.]+)`),
	}
	doctorInstructionPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:I should|I need to|I'll|I will|we should|we need to|we'll|we will) ([^.]+)`),
		regexp.MustCompile(`(?i)(?:need to|should|must|have to|let's|we'll) (?:check|follow up on|remember|monitor|track|review) ([^.]+)`),
		regexp.MustCompile(`(?i)(?:remember to|don't forget to|make a note to) ([^.]+)`),
	}
	testPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:order|get|need|require|recommend)(?:\s+an?)?\s+([\w\s]+(?:test|scan|x-ray|mri|ct|ultrasound|blood\s+work))`),
		regexp.MustCompile(`(?i)(?:refer|send)(?:\s+to)?\s+(?:a|an)?\s+([\w\s]+(?:specialist|doctor|cardiologist|neurologist|dermatologist|surgeon))`),
	}
	testWords = []string{"test", "scan", "x-ray", "mri", "ct", "ultrasound", "blood"}
)

// explicitInstructions harvests direct patient instructions and the
// doctor's own reminders, each de-duplicated case-insensitively.
func explicitInstructions(text string) (patient, doctor []string) {
	return harvest(patientInstructionPatterns, text), harvest(doctorInstructionPatterns, text)
}

func harvest(patterns []*regexp.Regexp, text string) []string {
	var out []string
	for _, re := range patterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			in := strings.TrimSpace(m[1])
			if len(in) > 5 && !containsFold(out, in) {
				out = append(out, in)
			}
		}
	}
	return out
}

func containsFold(items []string, s string) bool {
	for _, it := range items {
		if strings.EqualFold(it, s) {
			return true
		}
	}
	return false
}

type orderItem struct {
	name string
	kind string // test | referral
}

func testsAndReferrals(text string) []orderItem {
	var out []orderItem
	for _, re := range testPatterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			name := strings.TrimSpace(m[1])
			kind := "referral"
			if containsAny(strings.ToLower(name), testWords) {
				kind = "test"
			}
			out = append(out, orderItem{name: name, kind: kind})
		}
	}
	return out
}
