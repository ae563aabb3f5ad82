package followup

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	explicitFollowUp = regexp.MustCompile(`(?i)(?:follow up|follow-up|see me|come back)[^.]* (?:in|after) ([^.,]+)`)
	firstNumber      = regexp.MustCompile(`\d+`)
)

// Checked in order against the lowercased time frame.
var spelledNumbers = []struct {
	word string
	n    int
}{
	{"one", 1}, {"two", 2}, {"three", 3}, {"four", 4}, {"five", 5}, {"six", 6},
	{"seven", 7}, {"eight", 8}, {"nine", 9}, {"ten", 10}, {"eleven", 11}, {"twelve", 12},
	{"couple", 2}, {"few", 3}, {"several", 4},
}

var (
	urgentKeywords = []string{"severe", "acute", "intense", "worst", "emergency", "unbearable"}
	urgentSymptoms = []string{"chest pain", "difficulty breathing", "shortness of breath", "severe pain"}
)

// Schedule resolves the follow-up date and urgency of a visit. An explicit
// "follow up in N days/weeks/months" phrase wins; otherwise the date
// defaults to 30 days out, shortened for urgent issues or chronic disease.
func Schedule(text string, complaints, symptoms, chronic []string, now time.Time) (date, urgency string) {
	at := func(days int) string { return now.AddDate(0, 0, days).Format(DateLayout) }

	if m := explicitFollowUp.FindStringSubmatch(text); m != nil {
		frame := strings.ToLower(strings.TrimSpace(m[1]))
		n := numberIn(frame)
		switch {
		case strings.Contains(frame, "week"):
			if n > 0 && n <= 2 {
				return at(7 * n), UrgencySoon
			}
			return at(7 * or(n, 1)), UrgencyRoutine
		case strings.Contains(frame, "month"):
			return at(30 * or(n, 1)), UrgencyRoutine
		case strings.Contains(frame, "day"):
			if n > 0 && n <= 7 {
				return at(n), UrgencyUrgent
			}
			return at(or(n, 7)), UrgencySoon
		}
	}

	for _, issue := range append(append([]string{}, complaints...), symptoms...) {
		lower := strings.ToLower(issue)
		if containsAny(lower, urgentKeywords) || containsAny(lower, urgentSymptoms) {
			return at(7), UrgencyUrgent
		}
	}
	if len(chronic) > 0 {
		return at(14), UrgencyRoutine
	}
	return at(30), UrgencyRoutine
}

// numberIn reads the first digit run or spelled-out quantity; 0 if none.
func numberIn(s string) int {
	if d := firstNumber.FindString(s); d != "" {
		if n, err := strconv.Atoi(d); err == nil {
			return n
		}
	}
	for _, w := range spelledNumbers {
		if strings.Contains(s, w.word) {
			return w.n
		}
	}
	return 0
}

func or(n, fallback int) int {
	if n == 0 {
		return fallback
	}
	return n
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
