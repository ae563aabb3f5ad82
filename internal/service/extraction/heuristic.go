package extraction

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	nameMatchers = []matcher{
		group(regexp.MustCompile(`(?i)(?:patient|name)[:\s]+([A-Z][a-z]+(?:\s+[A-Z][a-z]+){0,2})`)),
		group(regexp.MustCompile(`(?i)([A-Z][a-z]+(?:\s+[A-Z][a-z]+){0,2})[,\s]+(?:aged?|a)\s+\d+`)),
	}

	ageMatchers = []matcher{
		mapped(
			group(regexp.MustCompile(`(?i)\b(\d{1,3})[\s-]*(years?|yrs?|y\.o\.?|year old)\b`)),
			func(n string) string { return n + " years" },
		),
	}

	genderMatchers = []matcher{
		mapped(group(regexp.MustCompile(`(?i)\b(male|female|m/f|f/m|m|f)\b`)), genderOf),
		mapped(group(regexp.MustCompile(`(?i)\b(man|woman|boy|girl)\b`)), genderOf),
	}

	maritalMatchers = []matcher{
		mapped(group(regexp.MustCompile(`(?i)\b(single|married|divorced|widowed|separated)\b`)), capitalize),
	}

	residenceMatchers = []matcher{
		group(regexp.MustCompile(`(?i)residing in\s+([A-Za-z\s]+)`)),
		group(regexp.MustCompile(`(?i)resident of\s+([A-Za-z\s]+)`)),
		group(regexp.MustCompile(`(?i)lives in\s+([A-Za-z\s]+)`)),
		group(regexp.MustCompile(`(?i)from\s+([A-Za-z\s]+)`)),
	}

	complaintMatchers = []matcher{
		group(regexp.MustCompile(`(?i)(?:chief|main|primary)\s+complaints?[:\s]+([^.;]+)[.;]`)),
		group(regexp.MustCompile(`(?i)complains of\s+([^.;]+)[.;]`)),
		group(regexp.MustCompile(`(?i)presented with\s+([^.;]+)[.;]`)),
	}

	locationMatchers = []matcher{
		group(regexp.MustCompile(`(?i)(?:in|on|at)\s+(?:the\s+)?([a-z\s]+)`)),
	}

	severityMatchers = []matcher{
		group(regexp.MustCompile(`(?i)(mild|moderate|severe|\d+/10)`)),
	}

	complaintDurationMatchers = []matcher{
		group(regexp.MustCompile(`(?i)for\s+([^.;]+)`)),
		group(regexp.MustCompile(`(?i)(?:since|past|last)\s+([^.;]+)`)),
	}

	habitFrequencyMatchers = []matcher{
		whole(regexp.MustCompile(`(?i)(\d+)[^.;]*(?:times|per|a)\s+(?:day|week|month|year)`)),
		whole(regexp.MustCompile(`(?i)(?:daily|weekly|monthly|occasionally|rarely|frequently)`)),
	}

	habitDurationMatchers = []matcher{
		whole(regexp.MustCompile(`(?i)for\s+([^.;]+)`)),
		whole(regexp.MustCompile(`(?i)(?:since|past|last)\s+([^.;]+)`)),
		whole(regexp.MustCompile(`(?i)(\d+)\s+(?:years|months)`)),
	}

	pastHistorySection   = group(regexp.MustCompile(`(?i)(?:past|previous|medical)\s+history[:\s]+([^.]+)[.]`))
	surgerySection       = group(regexp.MustCompile(`(?i)(?:history of|previous|underwent)\s+([^.;]+(?:surgery|operation|procedure))[.;]`))
	drugHistorySection   = group(regexp.MustCompile(`(?i)(?:drug|medication|prescription)\s+history[:\s]+([^.]+)[.]`))
	familyHistorySection = regexp.MustCompile(`(?i)family\s+history[:\s]+([^.]+)[.]`)
	allergySection       = group(regexp.MustCompile(`(?i)(?:allerg(?:y|ies)|allergic(?:\s+to)?)[:\s]+([^.]+)[.]`))
)

func genderOf(code string) string {
	switch strings.ToLower(code) {
	case "m", "male", "man", "boy":
		return "Male"
	case "f", "female", "woman", "girl":
		return "Female"
	default:
		return ""
	}
}

// Heuristic extracts a summary from text with the built-in pattern tables.
func Heuristic(text string) *Summary {
	s := &Summary{}

	s.PatientDetails = PatientDetails{
		Name:          valueOf(nameMatchers, text),
		Age:           valueOf(ageMatchers, text),
		Gender:        valueOf(genderMatchers, text),
		MaritalStatus: valueOf(maritalMatchers, text),
		Residence:     valueOf(residenceMatchers, text),
	}

	if raw, ok := firstMatch(complaintMatchers, text); ok {
		s.ChiefComplaints = splitList(raw)
		severity := valueOf(severityMatchers, text)
		for _, c := range s.ChiefComplaints {
			s.ChiefComplaintDetails = append(s.ChiefComplaintDetails, ComplaintDetail{
				Complaint: c,
				Location:  valueOf(locationMatchers, c),
				Severity:  severity,
				Duration:  valueOf(complaintDurationMatchers, c),
			})
		}
	}

	if raw, ok := pastHistorySection(text); ok {
		s.PastHistory = splitList(raw)
	}
	if surgery, ok := surgerySection(text); ok {
		s.PastHistory = append(s.PastHistory, surgery)
	}

	for i, re := range chronicRes {
		if re.MatchString(text) {
			s.ChronicDiseases = append(s.ChronicDiseases, capitalize(chronicDiseases[i]))
		}
	}

	for _, term := range lifestyleTerms {
		habitText := term.re.FindString(text)
		if habitText == "" {
			continue
		}
		s.Lifestyle = append(s.Lifestyle, LifestyleHabit{
			Habit:     term.habit,
			Frequency: valueOf(habitFrequencyMatchers, habitText),
			Duration:  valueOf(habitDurationMatchers, habitText),
		})
	}

	if raw, ok := drugHistorySection(text); ok {
		s.DrugHistory = splitList(raw)
	}

	if m := familyHistorySection.FindStringSubmatch(text); m != nil {
		for _, re := range familyRes {
			for _, hit := range re.FindAllString(m[1], -1) {
				s.FamilyHistory = append(s.FamilyHistory, strings.TrimSpace(hit))
			}
		}
	}

	if raw, ok := allergySection(text); ok {
		s.Allergies = splitList(raw)
	}

	title := cases.Title(language.Und)
	for i, re := range symptomRes {
		if re.MatchString(text) {
			s.Symptoms = append(s.Symptoms, title.String(CommonSymptoms[i]))
		}
	}

	for _, symptom := range s.Symptoms {
		s.PossibleDiseases = append(s.PossibleDiseases, symptomDiseases[strings.ToLower(symptom)]...)
	}

	s.Normalize()
	return s
}

func valueOf(matchers []matcher, text string) *string {
	v, ok := firstMatch(matchers, text)
	if !ok || v == "" {
		return nil
	}
	return &v
}
