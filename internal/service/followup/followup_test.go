package followup

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alijeyrad/health_companion/internal/repo/repotest"
	"github.com/Alijeyrad/health_companion/internal/service/extraction"
)

var fixedNow = time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)

func TestSchedule(t *testing.T) {
	tests := []struct {
		name        string
		text        string
		complaints  []string
		symptoms    []string
		chronic     []string
		wantDate    string
		wantUrgency string
	}{
		{"two weeks digits", "Please follow up in 2 weeks.", nil, nil, nil, "2024-03-15", UrgencySoon},
		{"three days", "Come back in 3 days.", nil, nil, nil, "2024-03-04", UrgencyUrgent},
		{"ten days", "Follow up in 10 days.", nil, nil, nil, "2024-03-11", UrgencySoon},
		{"spelled months", "See me after two months.", nil, nil, nil, "2024-04-30", UrgencyRoutine},
		{"many weeks", "Follow-up in 6 weeks.", nil, nil, nil, "2024-04-12", UrgencyRoutine},
		{"default", "Nothing scheduled.", nil, nil, nil, "2024-03-31", UrgencyRoutine},
		{"urgent keyword", "", []string{"severe headache"}, nil, nil, "2024-03-08", UrgencyUrgent},
		{"urgent symptom", "", nil, []string{"Shortness of breath"}, nil, "2024-03-08", UrgencyUrgent},
		{"chronic disease", "", nil, nil, []string{"Diabetes"}, "2024-03-15", UrgencyRoutine},
		{"urgent beats chronic", "", []string{"acute pain"}, nil, []string{"Diabetes"}, "2024-03-08", UrgencyUrgent},
		{"explicit beats urgent", "Follow up in 2 weeks.", []string{"severe pain"}, nil, nil, "2024-03-15", UrgencySoon},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			date, urgency := Schedule(tt.text, tt.complaints, tt.symptoms, tt.chronic, fixedNow)
			if date != tt.wantDate || urgency != tt.wantUrgency {
				t.Errorf("Schedule() = (%s, %s), want (%s, %s)", date, urgency, tt.wantDate, tt.wantUrgency)
			}
		})
	}
}

func TestNumberIn(t *testing.T) {
	tests := map[string]int{
		"2 weeks":        2,
		"twelve months":  12,
		"a couple weeks": 2,
		"a few days":     3,
		"several weeks":  4,
		"a while":        0,
	}
	for in, want := range tests {
		if got := numberIn(in); got != want {
			t.Errorf("numberIn(%q) = %d, want %d", in, got, want)
		}
	}
}

func TestBuild_WithSummary(t *testing.T) {
	text := "You should drink plenty of water. I will order a blood test next week. Follow up in 2 weeks."
	s := extraction.Empty()
	s.Symptoms = []string{"fever"}
	s.DrugHistory = []string{"Paracetamol 500mg"}
	s.ChiefComplaints = []string{"chest pain"}

	a := Build(text, s, fixedNow)

	require.NotNil(t, a.FollowUpDate)
	assert.Equal(t, "2024-03-15", *a.FollowUpDate)
	assert.Equal(t, UrgencySoon, a.UrgencyLevel)
	assert.Equal(t, fixedNow.Format(time.RFC3339), a.GeneratedAt)

	assert.Equal(t, []string{
		"Monitor temperature daily",
		"Take Paracetamol 500mg as prescribed",
		"Schedule follow-up appointment on 2024-03-15",
		"drink plenty of water",
		"Complete test: blood test",
	}, actionTexts(a.PatientActions))
	assert.Equal(t, []string{
		"Follow up on chest pain at next visit",
		"Consider EKG or cardiac evaluation",
		"order a blood test next week",
		"Order test: blood test",
	}, actionTexts(a.DoctorActions))

	assert.Equal(t, PriorityMedium, a.PatientActions[2].Priority)
	assert.Equal(t, "fever", a.PatientActions[0].RelatedTo)
	assert.Equal(t, "test", a.DoctorActions[3].Category)
}

func TestBuild_WithoutSummary(t *testing.T) {
	a := Build("Please rest well. Refer to a heart specialist.", nil, fixedNow)

	assert.Nil(t, a.FollowUpDate)
	assert.Equal(t, UrgencyRoutine, a.UrgencyLevel)
	assert.Equal(t, []string{"rest well", "Complete referral: heart specialist"}, actionTexts(a.PatientActions))
	assert.Equal(t, []string{"Order referral: heart specialist"}, actionTexts(a.DoctorActions))
}

func TestBuild_Medication(t *testing.T) {
	text := "Start Metformin 500mg twice daily with meals. Refill Metformin in 30 days."
	s := extraction.Empty()
	s.DrugHistory = []string{"Metformin 500mg"}

	a := Build(text, s, fixedNow)

	got := actionTexts(a.PatientActions)
	assert.Contains(t, got, "Take Metformin 500mg twice daily with meals")
	assert.Contains(t, got, "Watch for side effects from Metformin and report them to your doctor")
	assert.Contains(t, got, "Refill Metformin 30 days")
	assert.Equal(t, "2024-03-31", *a.FollowUpDate)
}

func TestBuild_LifestyleAndDedupe(t *testing.T) {
	text := "It is important to reduce salt intake every day. Please take your pills daily. Please take your pills daily."
	s := extraction.Empty()
	s.Lifestyle = []extraction.LifestyleHabit{{Habit: "smoking"}}

	a := Build(text, s, fixedNow)

	got := actionTexts(a.PatientActions)
	assert.Contains(t, got, "Reduce salt intake every day")
	assert.Contains(t, got, "Work on reducing or quitting smoking")
	assert.Equal(t, 1, countFold(got, "reduce salt intake every day"))
	assert.Equal(t, 1, countFold(got, "take your pills daily"))
}

func TestBuild_LifestyleCapitalization(t *testing.T) {
	text := "It is essential to take Vitamin D supplements DAILY."

	a := Build(text, extraction.Empty(), fixedNow)

	assert.Contains(t, actionTexts(a.PatientActions), "Take vitamin d supplements daily")
}

func TestCapitalize(t *testing.T) {
	assert.Equal(t, "", capitalize(""))
	assert.Equal(t, "Walk", capitalize("wALK"))
	assert.Equal(t, "Éclair diet", capitalize("éCLAIR Diet"))
}

func TestBuild_SymptomInstruction(t *testing.T) {
	text := "For your headache, you should rest in a dark room."
	s := extraction.Empty()
	s.Symptoms = []string{"headache", "rash"}

	a := Build(text, s, fixedNow)

	require.GreaterOrEqual(t, len(a.PatientActions), 2)
	assert.Equal(t, "rest in a dark room", a.PatientActions[0].Action)
	assert.Equal(t, "Specific instruction from doctor", a.PatientActions[0].Context)
	assert.Equal(t, "Monitor rash and report any changes or worsening", a.PatientActions[1].Action)
}

func TestService_GenerateAndGet(t *testing.T) {
	ctx := context.Background()
	client := repotest.New(t)
	svc := New(client, WithClock(func() time.Time { return fixedNow }))

	note, err := client.CreateNote(ctx, "Patient has headache. Follow up in 3 days.")
	require.NoError(t, err)

	_, err = svc.Get(ctx, note.ID)
	assert.True(t, errors.Is(err, ErrNotGenerated))

	summary := extraction.Empty()
	summary.Symptoms = []string{"Headache"}
	data, err := json.Marshal(summary)
	require.NoError(t, err)
	require.NoError(t, client.SaveSummary(ctx, note.ID, data, false))

	generated, err := svc.Generate(ctx, note.ID)
	require.NoError(t, err)
	assert.Equal(t, UrgencyUrgent, generated.UrgencyLevel)
	assert.Equal(t, "2024-03-04", *generated.FollowUpDate)

	stored, err := svc.Get(ctx, note.ID)
	require.NoError(t, err)
	assert.Equal(t, generated, stored)
}

func TestService_UnknownNote(t *testing.T) {
	svc := New(repotest.New(t))

	_, err := svc.Generate(context.Background(), 42)
	assert.ErrorIs(t, err, ErrNoteNotFound)
	_, err = svc.Get(context.Background(), 42)
	assert.ErrorIs(t, err, ErrNoteNotFound)
}

func actionTexts(actions []Action) []string {
	out := make([]string, len(actions))
	for i, a := range actions {
		out[i] = a.Action
	}
	return out
}

func countFold(items []string, s string) int {
	n := 0
	for _, it := range items {
		if strings.EqualFold(it, s) {
			n++
		}
	}
	return n
}
