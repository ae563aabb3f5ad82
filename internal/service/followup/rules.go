package followup

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/Alijeyrad/health_companion/internal/service/extraction"
)

type cannedAction struct {
	key      string
	action   string
	priority string
	context  string
}

// Checked in order; the first key contained in the symptom wins.
var symptomTable = []cannedAction{
	{"fever", "Monitor temperature daily", PriorityMedium, "For fever management"},
	{"headache", "Track headache frequency, intensity, and triggers", PriorityMedium, "For headache management"},
	{"cough", "Monitor cough characteristics and note any changes", PriorityMedium, "For respiratory symptom tracking"},
	{"pain", "Rate pain level daily on a scale of 1-10", PriorityMedium, "For pain management"},
	{"dizziness", "Avoid driving and hazardous activities while experiencing dizziness", PriorityHigh, "For safety"},
	{"breathing", "Monitor breathing difficulty and seek immediate care if it worsens", PriorityHigh, "For respiratory safety"},
	{"chest pain", "Seek emergency care immediately if chest pain occurs", PriorityHigh, "For cardiac safety"},
	{"blood pressure", "Measure blood pressure daily and keep a log", PriorityHigh, "For blood pressure management"},
}

const frequencyWords = `(?:once|twice|three times|every|daily|weekly|monthly)`

var lifestylePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:recommend|suggest|advise)[^.]* (?:to) ([^.]+) (?:for|to improve)`),
	regexp.MustCompile(`(?i)(?:increase|decrease|reduce|limit|avoid|quit)[^.]* ([^.]+)`),
	regexp.MustCompile(`(?i)(?:exercise|diet|nutrition|sleep|stress)[^.]* (?:should|need to|must) ([^.]+)`),
	regexp.MustCompile(`(?i)(?:important|essential|crucial|critical) (?:to|that you) ([^.]+)`),
}

// compile builds a case-insensitive pattern around a literal term.
func compile(format, term string) *regexp.Regexp {
	return regexp.MustCompile("(?i)" + strings.ReplaceAll(format, "{}", regexp.QuoteMeta(term)))
}

func firstGroup(patterns []string, term, text string) string {
	for _, p := range patterns {
		if m := compile(p, term).FindStringSubmatch(text); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	return ""
}

// ---------------------------------------------------------------------------
// Patient actions
// ---------------------------------------------------------------------------

func symptomActions(symptoms []string, text string) []Action {
	var out []Action
	for _, symptom := range symptoms {
		if custom := symptomInstruction(text, symptom); custom != "" {
			out = append(out, Action{
				Action:    custom,
				Category:  "symptom_management",
				Priority:  PriorityHigh,
				RelatedTo: symptom,
				Context:   "Specific instruction from doctor",
			})
			continue
		}

		lower := strings.ToLower(symptom)
		matched := false
		for _, c := range symptomTable {
			if strings.Contains(lower, c.key) {
				out = append(out, Action{
					Action:    c.action,
					Category:  "symptom_management",
					Priority:  c.priority,
					RelatedTo: symptom,
					Context:   c.context,
				})
				matched = true
				break
			}
		}
		if !matched {
			out = append(out, Action{
				Action:    "Monitor " + symptom + " and report any changes or worsening",
				Category:  "symptom_management",
				Priority:  PriorityMedium,
				RelatedTo: symptom,
				Context:   "General symptom monitoring",
			})
		}
	}
	return out
}

func symptomInstruction(text, symptom string) string {
	return firstGroup([]string{
		`(?:for|with) (?:the|your) {}[,\s]+(?:you should|please) ([^.]+)`,
		`(?:to manage|to treat|to handle|for) (?:the|your) {}[,\s]+([^.]+)`,
		`(?:I recommend|I suggest|try|consider) ([^.]+) for (?:the|your) {}`,
		`{}[^.]+ (?:can be managed by|can be treated with|should be) ([^.]+)`,
	}, symptom, text)
}

func medicationActions(medications []string, text string) []Action {
	var out []Action
	for _, medication := range medications {
		name := strings.Fields(medication)
		if len(name) == 0 {
			continue
		}
		med := name[0]

		action := "Take " + medication + " as prescribed"
		if dosing := medicationInstruction(text, med); dosing != "" {
			action = "Take " + med + " " + dosing
		}
		out = append(out, Action{
			Action:    action,
			Category:  "medication",
			Priority:  PriorityHigh,
			RelatedTo: med,
			Context:   "Medication adherence",
		})

		if compile(`(?:start|begin|new|prescrib\w+|initiat\w+)[^.]*{}`, med).MatchString(text) {
			out = append(out, Action{
				Action:    "Watch for side effects from " + med + " and report them to your doctor",
				Category:  "medication_monitoring",
				Priority:  PriorityHigh,
				RelatedTo: med,
				Context:   "New medication monitoring",
			})
		}

		if m := compile(`(?:refill|renew)[^.]*{}[^.]* (?:in|after|before) ([^.]+)`, med).FindStringSubmatch(text); m != nil {
			out = append(out, Action{
				Action:    "Refill " + med + " " + m[1],
				Category:  "medication_refill",
				Priority:  PriorityMedium,
				RelatedTo: med,
				Context:   "Medication refill",
			})
		}
	}
	return out
}

func medicationInstruction(text, medication string) string {
	return firstGroup([]string{
		`{}[^.]* (\d+\s*\w+(?:\s+\d+\s*\w+)?\s+` + frequencyWords + `[^.]+)`,
		`take[^.]* {}[^.]* (\d+\s*\w+(?:\s+\d+\s*\w+)?\s+` + frequencyWords + `[^.]+)`,
		`{}[^.]* (\d+\s*\w+(?:\s+\d+\s*\w+)?)[^.]* ` + frequencyWords + `[^.]+`,
		`prescrib\w+[^.]* {}[^.]* (\d+\s*\w+(?:\s+\d+\s*\w+)?)[^.]* ` + frequencyWords + `[^.]+`,
	}, medication, text)
}

func lifestyleActions(habits []extraction.LifestyleHabit, text string) []Action {
	var out []Action
	for _, re := range lifestylePatterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			rec := strings.TrimSpace(m[1])
			if len(rec) <= 10 {
				continue
			}
			out = append(out, Action{
				Action:   capitalize(rec),
				Category: "lifestyle",
				Priority: PriorityMedium,
				Context:  "Lifestyle recommendation",
			})
		}
	}

	for _, h := range habits {
		lower := strings.ToLower(h.Habit)
		switch {
		case lower == "":
		case strings.Contains(lower, "smok"):
			out = append(out, Action{
				Action:    "Work on reducing or quitting smoking",
				Category:  "lifestyle",
				Priority:  PriorityHigh,
				RelatedTo: h.Habit,
				Context:   "For improved health",
			})
		case strings.Contains(lower, "alcohol") || strings.Contains(lower, "drinking"):
			out = append(out, Action{
				Action:    "Limit alcohol consumption as discussed",
				Category:  "lifestyle",
				Priority:  PriorityMedium,
				RelatedTo: h.Habit,
				Context:   "For improved health",
			})
		case strings.Contains(lower, "drug"):
			out = append(out, Action{
				Action:    "Avoid recreational drug use",
				Category:  "lifestyle",
				Priority:  PriorityHigh,
				RelatedTo: h.Habit,
				Context:   "For health and safety",
			})
		}
	}
	return out
}

// capitalize title-cases the first rune and lowercases the rest.
func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToTitle(r)) + strings.ToLower(s[size:])
}

// ---------------------------------------------------------------------------
// Doctor actions
// ---------------------------------------------------------------------------

var complaintPatterns = []string{
	`(?:I'll|I will|we'll|we will|need to)[^.]* (?:check|evaluate|assess|monitor|review)[^.]* {}[^.]* (?:at|during|in|next)[^.]+`,
	`(?:let's|let us|will)[^.]* (?:see|check|evaluate|assess|review)[^.]* {}[^.]* (?:again|next)[^.]+`,
	`(?:important|essential|critical|crucial)[^.]* (?:to|that I)[^.]* (?:review|check|evaluate|monitor|follow up on)[^.]* {}`,
}

func complaintActions(complaints []string, text string) []Action {
	var out []Action
	for _, complaint := range complaints {
		out = append(out, Action{
			Action:    "Follow up on " + complaint + " at next visit",
			Category:  "follow_up",
			Priority:  PriorityMedium,
			RelatedTo: complaint,
			Context:   "Chief complaint follow-up",
		})

		for _, p := range complaintPatterns {
			if m := compile(p, complaint).FindString(text); m != "" {
				out = append(out, Action{
					Action:    strings.TrimSpace(m),
					Category:  "specific_follow_up",
					Priority:  PriorityHigh,
					RelatedTo: complaint,
					Context:   "Explicit doctor note",
				})
				break
			}
		}

		lower := strings.ToLower(complaint)
		switch {
		case strings.Contains(lower, "chest pain") || strings.Contains(lower, "chest discomfort") || strings.Contains(lower, "heart"):
			out = append(out, Action{
				Action:    "Consider EKG or cardiac evaluation",
				Category:  "diagnostic",
				Priority:  PriorityHigh,
				RelatedTo: complaint,
				Context:   "For cardiac evaluation",
			})
		case strings.Contains(lower, "breath") || strings.Contains(lower, "cough") || strings.Contains(lower, "lung"):
			out = append(out, Action{
				Action:    "Consider pulmonary function tests or chest imaging",
				Category:  "diagnostic",
				Priority:  PriorityMedium,
				RelatedTo: complaint,
				Context:   "For respiratory evaluation",
			})
		case strings.Contains(lower, "headache") || strings.Contains(lower, "migraine"):
			out = append(out, Action{
				Action:    "Monitor headache frequency and intensity",
				Category:  "monitoring",
				Priority:  PriorityMedium,
				RelatedTo: complaint,
				Context:   "For headache management",
			})
		case strings.Contains(lower, "pain"):
			out = append(out, Action{
				Action:    "Evaluate pain management effectiveness for " + complaint,
				Category:  "treatment",
				Priority:  PriorityHigh,
				RelatedTo: complaint,
				Context:   "For pain management",
			})
		}
	}
	return out
}
