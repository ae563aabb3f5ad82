package patient

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/Alijeyrad/health_companion/internal/repo"
	"github.com/Alijeyrad/health_companion/internal/service/extraction"
)

// ---------------------------------------------------------------------------
// DTOs
// ---------------------------------------------------------------------------

// Entry is one row of the patient listing; one per summarized note.
type Entry struct {
	NoteID           int64     `json:"note_id"`
	CreatedAt        time.Time `json:"created_at"`
	PatientName      string    `json:"patient_name"`
	PatientAge       string    `json:"patient_age"`
	HasFamilyHistory bool      `json:"has_family_history"`
}

// Record is a note of a patient with the sections used for history review.
type Record struct {
	NoteID      int64     `json:"note_id"`
	CreatedAt   time.Time `json:"created_at"`
	PatientName string    `json:"patient_name"`
	extraction.History
	DrugHistory []string `json:"drug_history"`
}

// History is the most recent carried-over history of a patient.
type History struct {
	PatientDetails extraction.PatientDetails `json:"patient_details"`
	extraction.History
	NoteID int64     `json:"note_id"`
	Date   time.Time `json:"date"`
}

const unknown = "Unknown"

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

type Service interface {
	List(ctx context.Context) ([]Entry, error)
	Records(ctx context.Context, name string) ([]Record, error)
	// History finds the newest note of a matching patient that carries
	// history data. A non-empty age must match the recorded age.
	History(ctx context.Context, name, age string) (*History, error)
}

type patientService struct {
	client *repo.Client
}

func New(client *repo.Client) Service {
	return &patientService{client: client}
}

type summarized struct {
	note    *repo.Note
	summary *extraction.Summary
}

// summarizedNotes returns every note with a readable summary, newest first.
func (s *patientService) summarizedNotes(ctx context.Context) ([]summarized, error) {
	notes, err := s.client.ListNotes(ctx, repo.NewestFirst)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}

	out := make([]summarized, 0, len(notes))
	for _, n := range notes {
		if n.Summary == nil {
			continue
		}
		sum, err := extraction.Decode(n.Summary)
		if err != nil {
			slog.WarnContext(ctx, "skipping note with unreadable summary", "note_id", n.ID, "err", err)
			continue
		}
		out = append(out, summarized{note: n, summary: sum})
	}
	return out, nil
}

func (s *patientService) List(ctx context.Context) ([]Entry, error) {
	notes, err := s.summarizedNotes(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(notes))
	for _, n := range notes {
		e := Entry{
			NoteID:           n.note.ID,
			CreatedAt:        n.note.CreatedAt,
			PatientName:      unknown,
			PatientAge:       unknown,
			HasFamilyHistory: len(n.summary.FamilyHistory) > 0,
		}
		if name := extraction.PatientName(n.note.Summary); name != "" {
			e.PatientName = name
		}
		if age := n.summary.PatientDetails.Age; age != nil {
			e.PatientAge = *age
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func (s *patientService) Records(ctx context.Context, name string) ([]Record, error) {
	query := strings.ToLower(strings.TrimSpace(name))
	if query == "" {
		return nil, ErrNameRequired
	}

	notes, err := s.summarizedNotes(ctx)
	if err != nil {
		return nil, err
	}

	var records []Record
	for _, n := range notes {
		stored := extraction.PatientName(n.note.Summary)
		if stored == "" || !strings.Contains(strings.ToLower(stored), query) {
			continue
		}
		records = append(records, Record{
			NoteID:      n.note.ID,
			CreatedAt:   n.note.CreatedAt,
			PatientName: stored,
			History:     n.summary.History(),
			DrugHistory: n.summary.DrugHistory,
		})
	}
	if len(records) == 0 {
		return nil, ErrNoRecords
	}
	return records, nil
}

func (s *patientService) History(ctx context.Context, name, age string) (*History, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrNameRequired
	}

	notes, err := s.summarizedNotes(ctx)
	if err != nil {
		return nil, err
	}

	for _, n := range notes {
		if !extraction.MatchesName(extraction.PatientName(n.note.Summary), name) {
			continue
		}
		if !agesMatch(age, n.summary.PatientDetails.Age) {
			continue
		}
		if !n.summary.HasHistory() {
			continue
		}
		return &History{
			PatientDetails: n.summary.PatientDetails,
			History:        n.summary.History(),
			NoteID:         n.note.ID,
			Date:           n.note.CreatedAt,
		}, nil
	}
	return nil, ErrNoHistory
}

var leadingNumber = regexp.MustCompile(`^\s*(\d+)`)

// agesMatch compares ages by their leading number, so "45" matches
// "45 years". A missing age on either side matches anything.
func agesMatch(query string, recorded *string) bool {
	query = strings.TrimSpace(query)
	if query == "" || recorded == nil {
		return true
	}
	q, r := leadingNumber.FindStringSubmatch(query), leadingNumber.FindStringSubmatch(*recorded)
	if q != nil && r != nil {
		return q[1] == r[1]
	}
	return strings.EqualFold(query, strings.TrimSpace(*recorded))
}
