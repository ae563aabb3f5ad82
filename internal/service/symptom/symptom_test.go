package symptom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSymptoms(t *testing.T) {
	got := Symptoms()
	assert.Len(t, got, 20)
	assert.Equal(t, "Fever", got[0])

	got[0] = "changed"
	assert.Equal(t, "Fever", Symptoms()[0])
}

func TestPredict(t *testing.T) {
	tests := []struct {
		name       string
		selected   []string
		condition  string
		confidence float64
	}{
		{"flu profile", []string{"Fever", "Fatigue", "Body Aches", "Chills"}, "Flu", 100},
		{"tie keeps first seen", []string{"Fever"}, "Common Cold", 100},
		{"cold", []string{"Cough", "Sore Throat", "Runny Nose"}, "Common Cold", 100},
		{"partial", []string{"Headache", "Nausea", "Rash"}, "Migraine", 66.7},
		{"unknown counts in denominator", []string{"Rash", "Itchy Elbow"}, "Allergic Reaction", 50},
		{"nothing known", []string{"Itchy Elbow"}, Undetermined, 0},
		{"empty", nil, Undetermined, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Predict(tt.selected)
			assert.Equal(t, tt.condition, got.Condition)
			assert.InDelta(t, tt.confidence, got.Confidence, 0.001)
		})
	}
}

func TestPredict_Recommendations(t *testing.T) {
	got := Predict([]string{"Fever", "Cough", "Loss of Taste/Smell", "Difficulty Breathing"})
	assert.Equal(t, "COVID-19", got.Condition)
	assert.Equal(t, "Isolate from others immediately", got.Recommendations[0])
	assert.Equal(t, Candidate{Condition: "COVID-19", Matches: 4}, got.Candidates[0])

	got = Predict([]string{"Joint Pain"})
	assert.Equal(t, "Arthritis", got.Condition)
	assert.Equal(t, defaultRecommendations, got.Recommendations)
}
