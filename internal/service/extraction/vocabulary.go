package extraction

import "regexp"

var chronicDiseases = []string{
	"diabetes", "hypertension", "asthma", "copd", "arthritis",
	"cancer", "heart disease", "kidney disease", "liver disease",
}

var familyConditions = []string{
	"diabetes", "hypertension", "cancer", "heart disease",
	"asthma", "stroke", "alzheimer", "arthritis",
}

// CommonSymptoms is the symptom vocabulary searched for in every note.
var CommonSymptoms = []string{
	"fever", "headache", "fatigue", "cough", "nausea", "vomiting",
	"dizziness", "pain", "rash", "sore throat", "shortness of breath",
	"chest pain", "back pain", "abdominal pain", "diarrhea", "weakness",
	"chills", "sweating", "itching", "loss of appetite", "swelling",
}

var symptomDiseases = map[string][]string{
	"fever":       {"Common Cold", "Flu", "COVID-19", "Infection"},
	"headache":    {"Migraine", "Tension Headache", "Sinus Infection"},
	"cough":       {"Common Cold", "Bronchitis", "Asthma", "COVID-19"},
	"nausea":      {"Food Poisoning", "Migraine", "Vertigo", "Pregnancy"},
	"fatigue":     {"Anemia", "Depression", "Sleep Apnea", "Hypothyroidism"},
	"sore throat": {"Strep Throat", "Common Cold", "Tonsillitis"},
}

type habitTerm struct {
	re    *regexp.Regexp
	habit string
}

var lifestyleTerms = []habitTerm{
	{regexp.MustCompile(`(?i)\bsmok[a-z]*\b[^.;]*`), "Smoking"},
	{regexp.MustCompile(`(?i)\balcohol[a-z]*\b[^.;]*`), "Alcohol"},
	{regexp.MustCompile(`(?i)\bdrink[a-z]*\b[^.;]*`), "Drinking"},
	{regexp.MustCompile(`(?i)\bdrug[a-z]*\b[^.;]*`), "Recreational drugs"},
}

var (
	chronicRes = compileWords(chronicDiseases)
	symptomRes = compileWords(CommonSymptoms)
	familyRes  = compileFamily(familyConditions)
)

func compileWords(terms []string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(terms))
	for i, t := range terms {
		out[i] = wordRe(t)
	}
	return out
}

func compileFamily(terms []string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(terms))
	for i, t := range terms {
		out[i] = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(t) +
			`\b[^.;]*(?:(?:in|with)\s+(?:father|mother|brother|sister|parent|grandparent))?`)
	}
	return out
}
