package patient

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alijeyrad/health_companion/internal/repo"
	"github.com/Alijeyrad/health_companion/internal/repo/repotest"
	"github.com/Alijeyrad/health_companion/internal/service/extraction"
)

func saveNote(t *testing.T, client *repo.Client, text string, s *extraction.Summary) int64 {
	t.Helper()
	ctx := context.Background()
	note, err := client.CreateNote(ctx, text)
	require.NoError(t, err)
	if s != nil {
		data, err := json.Marshal(s)
		require.NoError(t, err)
		require.NoError(t, client.SaveSummary(ctx, note.ID, data, false))
	}
	return note.ID
}

func summaryFor(name, age string) *extraction.Summary {
	s := extraction.Empty()
	if name != "" {
		s.PatientDetails.Name = &name
	}
	if age != "" {
		s.PatientDetails.Age = &age
	}
	return s
}

func TestList(t *testing.T) {
	client := repotest.New(t)
	svc := New(client)

	saveNote(t, client, "no summary yet", nil)
	first := saveNote(t, client, "first", summaryFor("Jane Roe", "45 years"))
	withFamily := summaryFor("", "")
	withFamily.FamilyHistory = []string{"diabetes in mother"}
	second := saveNote(t, client, "second", withFamily)

	entries, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, second, entries[0].NoteID)
	assert.Equal(t, "Unknown", entries[0].PatientName)
	assert.True(t, entries[0].HasFamilyHistory)

	assert.Equal(t, first, entries[1].NoteID)
	assert.Equal(t, "Jane Roe", entries[1].PatientName)
	assert.Equal(t, "45 years", entries[1].PatientAge)
}

func TestRecords(t *testing.T) {
	client := repotest.New(t)
	svc := New(client)

	s := summaryFor("Jane Roe", "")
	s.DrugHistory = []string{"Metformin"}
	id := saveNote(t, client, "visit", s)
	saveNote(t, client, "other", summaryFor("John Doe", ""))

	records, err := svc.Records(context.Background(), "JANE")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, id, records[0].NoteID)
	assert.Equal(t, []string{"Metformin"}, records[0].DrugHistory)

	_, err = svc.Records(context.Background(), "nobody")
	assert.ErrorIs(t, err, ErrNoRecords)
	_, err = svc.Records(context.Background(), " ")
	assert.ErrorIs(t, err, ErrNameRequired)
}

func TestHistory(t *testing.T) {
	ctx := context.Background()
	client := repotest.New(t)
	svc := New(client)

	older := summaryFor("Jane Roe", "45 years")
	older.Allergies = []string{"Penicillin"}
	saveNote(t, client, "older", older)

	newer := summaryFor("Jane Roe", "45 years")
	newer.ChronicDiseases = []string{"Asthma"}
	newest := saveNote(t, client, "newer", newer)

	saveNote(t, client, "no history", summaryFor("Jane Roe", "45 years"))

	h, err := svc.History(ctx, "jane roe", "45")
	require.NoError(t, err)
	assert.Equal(t, newest, h.NoteID)
	assert.Equal(t, []string{"Asthma"}, h.ChronicDiseases)
	require.NotNil(t, h.PatientDetails.Name)
	assert.Equal(t, "Jane Roe", *h.PatientDetails.Name)

	_, err = svc.History(ctx, "jane roe", "30")
	assert.ErrorIs(t, err, ErrNoHistory)
	_, err = svc.History(ctx, "", "")
	assert.ErrorIs(t, err, ErrNameRequired)
}

func TestAgesMatch(t *testing.T) {
	age := "45 years"
	tests := []struct {
		query    string
		recorded *string
		want     bool
	}{
		{"", &age, true},
		{"45", nil, true},
		{"45", &age, true},
		{"45 years", &age, true},
		{"46", &age, false},
	}
	for _, tt := range tests {
		if got := agesMatch(tt.query, tt.recorded); got != tt.want {
			t.Errorf("agesMatch(%q) = %v, want %v", tt.query, got, tt.want)
		}
	}
}
