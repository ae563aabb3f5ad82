package efficacy

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alijeyrad/health_companion/internal/repo/repotest"
	"github.com/Alijeyrad/health_companion/internal/service/extraction"
)

func ptr(s string) *string { return &s }

func TestCompareSeverity(t *testing.T) {
	tests := []struct {
		current, previous *string
		want              Change
	}{
		{ptr("mild"), ptr("severe"), Improved},
		{ptr("7/10"), ptr("3/10"), Worsened},
		{nil, ptr("3"), Unchanged},
		{ptr("3"), nil, Unchanged},
		{ptr("3"), ptr("5"), Improved},
		{ptr("Moderate"), ptr("mild"), Worsened},
		{ptr("2/10"), ptr("2/10"), Unchanged},
		{ptr("foo"), ptr("bar"), Unchanged},
	}
	for _, tt := range tests {
		if got := CompareSeverity(tt.current, tt.previous); got != tt.want {
			t.Errorf("CompareSeverity(%v, %v) = %s, want %s", deref(tt.current), deref(tt.previous), got, tt.want)
		}
	}
}

func TestBaseMedicationName(t *testing.T) {
	tests := map[string]string{
		"Metformin 500mg twice daily": "Metformin",
		"Lisinopril 10mg daily":       "Lisinopril",
		"Lisinopril 20mg BID":         "Lisinopril",
		"Aspirin daily":               "Aspirin",
		"Vitamin D":                   "Vitamin D",
	}
	for in, want := range tests {
		if got := BaseMedicationName(in); got != want {
			t.Errorf("BaseMedicationName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestDosage(t *testing.T) {
	assert.Equal(t, "500mg", deref(Dosage("Metformin", "Patient taking Metformin 500mg daily.")))
	assert.Equal(t, "81mg", deref(Dosage("Aspirin 81mg", "No dose in the text.")))
	assert.Nil(t, Dosage("Aspirin", "Nothing here."))
}

func TestSeverity(t *testing.T) {
	tests := []struct {
		text, symptom string
		want          *string
	}{
		{"Headache is mild now.", "headache", ptr("mild")},
		{"Patient reports severe headache.", "headache", ptr("severe")},
		{"Headache 8/10 today.", "headache", ptr("8")},
		{"Pain rated at 7 today.", "pain", ptr("7")},
		{"Cough with an intensity of 4.", "cough", ptr("4")},
		{"Patient has debilitating back pain.", "back pain", ptr("4")},
		{"No mention of anything.", "cough", nil},
		{"", "cough", nil},
	}
	for _, tt := range tests {
		got := Severity(tt.text, tt.symptom)
		if deref(got) != deref(tt.want) || (got == nil) != (tt.want == nil) {
			t.Errorf("Severity(%q, %q) = %v, want %v", tt.text, tt.symptom, deref(got), deref(tt.want))
		}
	}
}

func TestMentions(t *testing.T) {
	got := Mentions("My cough has improved a lot. The pain is more intense.")
	require.Len(t, got, 2)
	assert.Equal(t, Mention{Symptom: "cough", Change: Improved, Text: "My cough has improved"}, got[0])
	assert.Equal(t, Mention{Symptom: "pain", Change: Worsened, Text: "The pain is more intense"}, got[1])

	assert.Empty(t, Mentions("The bad has improved."), "short fragments are ignored")
	assert.Equal(t, "rash", cleanSymptom("a rash"))
}

func visit(id int64, day int, text string, symptoms, drugs []string) Visit {
	s := extraction.Empty()
	s.Symptoms = symptoms
	s.DrugHistory = drugs
	return Visit{
		NoteID:  id,
		Date:    time.Date(2024, time.January, day, 10, 0, 0, 0, time.UTC),
		Text:    text,
		Summary: s,
	}
}

func TestAnalyze(t *testing.T) {
	visits := []Visit{
		visit(3, 3, "Ibuprofen 800mg daily now. Headache is severe again.", []string{"headache"}, []string{"Ibuprofen 800mg daily"}),
		visit(1, 1, "Patient reports severe headache.", []string{"headache"}, nil),
		visit(2, 2, "Started Ibuprofen 400mg daily. Headache is mild now.", []string{"headache"}, []string{"Ibuprofen 400mg daily"}),
	}

	r := Analyze(visits)

	require.Len(t, r.DetailedAnalysis, 2)
	first, second := r.DetailedAnalysis[0], r.DetailedAnalysis[1]
	assert.Equal(t, Improved, first.Change)
	assert.Equal(t, "positive", first.Correlation)
	assert.Equal(t, visits[1].Date, first.FromDate)
	assert.Equal(t, "Started Ibuprofen 400mg daily. Headache is mild now.", first.Evidence)
	require.Len(t, first.Treatments, 1)
	assert.Equal(t, "Ibuprofen 400mg daily", first.Treatments[0].Treatment)

	assert.Equal(t, Worsened, second.Change)
	assert.Equal(t, "negative", second.Correlation)

	e := r.TreatmentEffectiveness["Ibuprofen"]
	require.NotNil(t, e)
	assert.Equal(t, 1, e.Positive)
	assert.Equal(t, 1, e.Negative)
	assert.InDelta(t, 50.0, e.EffectivenessScore, 0.001)
	assert.Equal(t, []string{"headache"}, e.SymptomsImproved)
	assert.Equal(t, []string{"headache"}, e.SymptomsWorsened)
	assert.Equal(t, "800mg", deref(e.LatestDosage))
	require.Len(t, e.DosageChanges, 1)
	assert.Equal(t, DosageChange{Date: visits[0].Date, From: "400mg", To: "800mg"}, e.DosageChanges[0])
	assert.Len(t, e.Evidence, 2)
}

func TestAnalyze_NoTreatmentNoTransition(t *testing.T) {
	r := Analyze([]Visit{
		visit(1, 1, "Severe cough.", []string{"cough"}, nil),
		visit(2, 2, "Mild cough.", []string{"cough"}, nil),
	})
	assert.Empty(t, r.DetailedAnalysis)
	assert.Empty(t, r.TreatmentEffectiveness)
}

func TestService_Analyze(t *testing.T) {
	ctx := context.Background()
	client := repotest.New(t)
	svc := New(client)

	save := func(name, text string) {
		t.Helper()
		note, err := client.CreateNote(ctx, text)
		require.NoError(t, err)
		s := extraction.Empty()
		s.PatientDetails.Name = &name
		data, err := json.Marshal(s)
		require.NoError(t, err)
		require.NoError(t, client.SaveSummary(ctx, note.ID, data, false))
	}

	_, err := svc.Analyze(ctx, "  ")
	assert.ErrorIs(t, err, ErrNameRequired)

	save("Jane Roe", "First visit.")
	save("John Doe", "Other patient.")

	_, err = svc.Analyze(ctx, "jane")
	assert.ErrorIs(t, err, ErrInsufficientNotes)

	save("Jane Roe", "Second visit.")

	report, err := svc.Analyze(ctx, "jane")
	require.NoError(t, err)
	assert.Equal(t, "jane", report.PatientName)
	assert.False(t, report.AnalysisDate.IsZero())
}

func deref(s *string) string {
	if s == nil {
		return "<nil>"
	}
	return *s
}
