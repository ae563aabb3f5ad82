// Package symptom ranks likely conditions for a set of checked symptoms.
package symptom

import (
	"math"
	"slices"
	"sort"
)

const Undetermined = "Unable to determine from given symptoms"

var symptoms = []string{
	"Fever", "Cough", "Fatigue", "Difficulty Breathing", "Headache",
	"Sore Throat", "Body Aches", "Runny Nose", "Nausea", "Diarrhea",
	"Chest Pain", "Abdominal Pain", "Dizziness", "Rash", "Loss of Taste/Smell",
	"Joint Pain", "Swelling", "Chills", "Vomiting", "Confusion",
}

var conditions = map[string][]string{
	"Fever":                {"Common Cold", "Flu", "COVID-19"},
	"Cough":                {"Common Cold", "Flu", "COVID-19", "Bronchitis"},
	"Fatigue":              {"Flu", "COVID-19", "Anemia", "Depression"},
	"Difficulty Breathing": {"COVID-19", "Asthma", "Pneumonia"},
	"Headache":             {"Migraine", "Tension Headache", "Sinusitis"},
	"Sore Throat":          {"Common Cold", "Strep Throat", "Tonsillitis"},
	"Body Aches":           {"Flu", "COVID-19", "Fibromyalgia"},
	"Runny Nose":           {"Common Cold", "Allergies", "Sinusitis"},
	"Nausea":               {"Food Poisoning", "Migraine", "Gastroenteritis"},
	"Diarrhea":             {"Food Poisoning", "Gastroenteritis", "IBS"},
	"Chest Pain":           {"Heart Attack", "Angina", "Acid Reflux"},
	"Abdominal Pain":       {"Appendicitis", "Gastritis", "IBS"},
	"Dizziness":            {"Low Blood Pressure", "Anemia", "Vertigo"},
	"Rash":                 {"Allergic Reaction", "Eczema", "Psoriasis"},
	"Loss of Taste/Smell":  {"COVID-19", "Common Cold", "Sinusitis"},
	"Joint Pain":           {"Arthritis", "Gout", "Lupus"},
	"Swelling":             {"Injury", "Infection", "Allergic Reaction"},
	"Chills":               {"Flu", "COVID-19", "Infection"},
	"Vomiting":             {"Food Poisoning", "Gastroenteritis", "Migraine"},
	"Confusion":            {"Stroke", "UTI (in elderly)", "Medication Side Effect"},
}

var recommendations = map[string][]string{
	"Common Cold": {
		"Rest and get plenty of sleep",
		"Stay hydrated with water, tea, and soup",
		"Use over-the-counter cold medications as directed",
		"Consider saline nasal sprays for congestion",
	},
	"Flu": {
		"Rest and avoid contact with others",
		"Drink plenty of fluids",
		"Take acetaminophen or ibuprofen for fever and aches",
		"Consult a doctor about antiviral medications if within 48 hours of symptoms",
	},
	"COVID-19": {
		"Isolate from others immediately",
		"Get tested as soon as possible",
		"Monitor your oxygen levels if possible",
		"Contact a healthcare provider for guidance",
	},
	"Migraine": {
		"Rest in a quiet, dark room",
		"Apply cold or warm compresses to your head",
		"Try over-the-counter pain relievers",
		"Stay hydrated and consider tracking triggers",
	},
	"Food Poisoning": {
		"Stay hydrated with small sips of water or electrolyte solutions",
		"Avoid solid foods until vomiting subsides",
		"Gradually reintroduce bland foods like toast or bananas",
		"Seek medical attention if symptoms are severe or persistent",
	},
}

var defaultRecommendations = []string{
	"Rest and monitor your symptoms",
	"Stay hydrated",
	"Consult with a healthcare provider for proper diagnosis",
	"Take over-the-counter medications as appropriate for symptom relief",
}

type Candidate struct {
	Condition string `json:"condition"`
	Matches   int    `json:"matches"`
}

type Prediction struct {
	Symptoms        []string    `json:"symptoms"`
	Condition       string      `json:"prediction"`
	Confidence      float64     `json:"confidence"`
	Candidates      []Candidate `json:"candidates"`
	Recommendations []string    `json:"recommendations"`
}

// Symptoms returns the checkbox vocabulary in display order.
func Symptoms() []string {
	return slices.Clone(symptoms)
}

// Predict counts how many selected symptoms point at each condition.
// Ties keep first-seen order. Unknown symptoms still count towards the
// confidence denominator.
func Predict(selected []string) *Prediction {
	var (
		order  []string
		counts = map[string]int{}
	)
	for _, s := range selected {
		for _, c := range conditions[s] {
			if counts[c] == 0 {
				order = append(order, c)
			}
			counts[c]++
		}
	}

	p := &Prediction{Symptoms: selected, Candidates: []Candidate{}}
	if p.Symptoms == nil {
		p.Symptoms = []string{}
	}
	if len(order) == 0 {
		p.Condition = Undetermined
		p.Recommendations = Recommendations(Undetermined)
		return p
	}

	for _, c := range order {
		p.Candidates = append(p.Candidates, Candidate{Condition: c, Matches: counts[c]})
	}
	sort.SliceStable(p.Candidates, func(i, j int) bool {
		return p.Candidates[i].Matches > p.Candidates[j].Matches
	})

	top := p.Candidates[0]
	confidence := math.Min(100, float64(top.Matches)/float64(len(selected))*100)
	p.Condition = top.Condition
	p.Confidence = math.Round(confidence*10) / 10
	p.Recommendations = Recommendations(top.Condition)
	return p
}

// Recommendations returns condition-specific advice, or general advice.
func Recommendations(condition string) []string {
	if r, ok := recommendations[condition]; ok {
		return slices.Clone(r)
	}
	return slices.Clone(defaultRecommendations)
}
