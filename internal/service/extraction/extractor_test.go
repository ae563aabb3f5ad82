package extraction

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGenerator struct {
	out string
	err error
}

func (f fakeGenerator) Generate(context.Context, string) (string, error) {
	return f.out, f.err
}

const johnDoe = "Patient John Doe, 45 years, male, complains of headache and fever for 3 days. Allergic to penicillin."

func TestHeuristic_EndToEnd(t *testing.T) {
	s := Extract(context.Background(), johnDoe, nil)

	require.NotNil(t, s.PatientDetails.Name)
	assert.Equal(t, "John Doe", *s.PatientDetails.Name)
	require.NotNil(t, s.PatientDetails.Age)
	assert.Equal(t, "45 years", *s.PatientDetails.Age)
	require.NotNil(t, s.PatientDetails.Gender)
	assert.Equal(t, "Male", *s.PatientDetails.Gender)
	assert.Nil(t, s.PatientDetails.MaritalStatus)
	assert.Nil(t, s.PatientDetails.Residence)

	assert.Equal(t, []string{"headache", "fever for 3 days"}, s.ChiefComplaints)
	assert.Equal(t, []string{"penicillin"}, s.Allergies)
	assert.Contains(t, s.Symptoms, "Headache")
	assert.Contains(t, s.Symptoms, "Fever")

	require.Len(t, s.ChiefComplaintDetails, 2)
	require.NotNil(t, s.ChiefComplaintDetails[1].Duration)
	assert.Equal(t, "3 days", *s.ChiefComplaintDetails[1].Duration)
	assert.Nil(t, s.ChiefComplaintDetails[0].Duration)

	assert.Contains(t, s.PossibleDiseases, "Migraine")
	assert.Contains(t, s.PossibleDiseases, "Flu")
}

func TestHeuristic_Sections(t *testing.T) {
	text := "Name: Mary Ann Smith, a 62 yrs old widowed woman residing in Springfield. " +
		"Chief complaint: severe back pain, nausea and dizziness since last week. " +
		"Past history: appendicitis, and pneumonia. She underwent knee replacement surgery. " +
		"Known hypertension and heart disease. She smokes 10 cigarettes a day for 20 years. " +
		"Medication history: Lisinopril 10mg daily, Metformin 500mg twice daily. " +
		"Family history: diabetes in mother, stroke with father. " +
		"Allergies: sulfa, latex and peanuts."

	s := Heuristic(text)

	assert.Equal(t, "Mary Ann Smith", *s.PatientDetails.Name)
	assert.Equal(t, "62 years", *s.PatientDetails.Age)
	assert.Equal(t, "Female", *s.PatientDetails.Gender)
	assert.Equal(t, "Widowed", *s.PatientDetails.MaritalStatus)
	assert.Equal(t, "Springfield", *s.PatientDetails.Residence)

	assert.Equal(t, []string{"severe back pain", "nausea", "dizziness since last week"}, s.ChiefComplaints)
	for _, d := range s.ChiefComplaintDetails {
		require.NotNil(t, d.Severity)
		assert.Equal(t, "severe", *d.Severity)
	}

	assert.Equal(t, []string{"appendicitis", "pneumonia", "knee replacement surgery"}, s.PastHistory)
	// "diabetes" in the family history also counts as a chronic disease mention.
	assert.Equal(t, []string{"Diabetes", "Hypertension", "Heart disease"}, s.ChronicDiseases)
	assert.Equal(t, []string{"Lisinopril 10mg daily", "Metformin 500mg twice daily"}, s.DrugHistory)
	assert.Equal(t, []string{"diabetes in mother, stroke with father", "stroke with father"}, s.FamilyHistory)
	assert.Equal(t, []string{"sulfa", "latex", "peanuts"}, s.Allergies)

	require.NotEmpty(t, s.Lifestyle)
	smoking := s.Lifestyle[0]
	assert.Equal(t, "Smoking", smoking.Habit)
	require.NotNil(t, smoking.Frequency)
	assert.Equal(t, "10 cigarettes a day", *smoking.Frequency)
	require.NotNil(t, smoking.Duration)
	assert.Equal(t, "for 20 years", *smoking.Duration)

	assert.Contains(t, s.Symptoms, "Back Pain")
	assert.Contains(t, s.Symptoms, "Nausea")
}

func TestExtract_SchemaCompleteness(t *testing.T) {
	inputs := []string{"", "   ", "no medical content here", johnDoe, "Allergies: ."}

	for _, in := range inputs {
		s := Extract(context.Background(), in, nil)
		raw, err := json.Marshal(s)
		require.NoError(t, err)

		var m map[string]any
		require.NoError(t, json.Unmarshal(raw, &m))

		pd, ok := m["patient_details"].(map[string]any)
		require.True(t, ok, "patient_details must be an object for %q", in)
		for _, k := range []string{"name", "age", "gender", "marital_status", "residence"} {
			_, present := pd[k]
			assert.True(t, present, "patient_details.%s missing for %q", k, in)
		}

		for _, k := range []string{
			"chief_complaints", "chief_complaint_details", "past_history", "chronic_diseases",
			"lifestyle", "drug_history", "family_history", "allergies", "symptoms", "possible_diseases",
		} {
			_, isList := m[k].([]any)
			assert.True(t, isList, "%s must be a list for %q", k, in)
		}
	}
}

func TestExtract_Idempotent(t *testing.T) {
	a := Extract(context.Background(), johnDoe, nil)
	b := Extract(context.Background(), johnDoe, nil)
	if !reflect.DeepEqual(a, b) {
		t.Errorf("Extract() not idempotent:\n%+v\n%+v", a, b)
	}
}

func TestExtract_Generator(t *testing.T) {
	generated := "```json\n" + `{
		"patient_details": {"name": "Ann Lee", "age": 30, "gender": null},
		"chief_complaints": ["cough", "Cough", ""],
		"symptoms": ["Cough"],
		"lifestyle": [{"habit": "Smoking"}, {"frequency": "daily"}]
	}` + "\n```"

	s := Extract(context.Background(), "irrelevant", fakeGenerator{out: generated})

	assert.Equal(t, "Ann Lee", s.Name())
	assert.Equal(t, "30", *s.PatientDetails.Age)
	assert.Nil(t, s.PatientDetails.Gender)
	assert.Equal(t, []string{"cough"}, s.ChiefComplaints)
	assert.Len(t, s.Lifestyle, 1)
	assert.NotNil(t, s.Allergies)
	assert.NotNil(t, s.PossibleDiseases)
}

func TestExtract_GeneratorFallback(t *testing.T) {
	tests := []struct {
		name string
		gen  fakeGenerator
	}{
		{"malformed json", fakeGenerator{out: "I could not find anything"}},
		{"backend error", fakeGenerator{err: errors.New("quota exceeded")}},
		{"json null", fakeGenerator{out: "null"}},
		{"fenced null", fakeGenerator{out: "```json\nnull\n```"}},
		{"json array", fakeGenerator{out: "[]"}},
	}

	want := Heuristic(johnDoe)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extract(context.Background(), johnDoe, tt.gen)
			assert.Equal(t, want, got)
		})
	}
}

func TestDecodeRejectsNonObjects(t *testing.T) {
	for _, in := range []string{"null", "[]", `"text"`, "42"} {
		_, err := Decode([]byte(in))
		assert.Error(t, err, in)
	}
	_, err := Decode([]byte("null"))
	assert.ErrorIs(t, err, ErrNotObject)
}

func TestGenderPrecedence(t *testing.T) {
	// "m/f" hits the first pattern without mapping to a gender; the noun
	// pattern must not be consulted.
	s := Heuristic("Sex: m/f unknown, the woman was seen.")
	assert.Nil(t, s.PatientDetails.Gender)

	s = Heuristic("The woman was seen.")
	require.NotNil(t, s.PatientDetails.Gender)
	assert.Equal(t, "Female", *s.PatientDetails.Gender)
}

func TestNormalizeDedupe(t *testing.T) {
	s := &Summary{
		Symptoms:              []string{"Fever", "fever", "", "Cough"},
		ChiefComplaintDetails: []ComplaintDetail{{Complaint: ""}, {Complaint: "pain"}},
		PatientDetails:        PatientDetails{Name: strPtr("")},
	}
	s.Normalize()

	assert.Equal(t, []string{"Fever", "Cough"}, s.Symptoms)
	assert.Len(t, s.ChiefComplaintDetails, 1)
	assert.Nil(t, s.PatientDetails.Name)
	assert.NotNil(t, s.Allergies)
}

func TestPlaceholder(t *testing.T) {
	p := Placeholder()
	assert.True(t, p.IsPlaceholder())
	assert.False(t, p.IsBlank())
	assert.True(t, Empty().IsBlank())
}
