package efficacy

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/Alijeyrad/health_companion/internal/repo"
	"github.com/Alijeyrad/health_companion/internal/service/extraction"
)

// ---------------------------------------------------------------------------
// Report
// ---------------------------------------------------------------------------

type Report struct {
	PatientName            string                    `json:"patient_name"`
	AnalysisDate           time.Time                 `json:"analysis_date"`
	TreatmentEffectiveness map[string]*Effectiveness `json:"treatment_effectiveness"`
	DetailedAnalysis       []Transition              `json:"detailed_analysis"`
}

// Effectiveness aggregates every transition attributed to one medication.
type Effectiveness struct {
	Positive           int            `json:"positive"`
	Negative           int            `json:"negative"`
	SymptomsImproved   []string       `json:"symptoms_improved"`
	SymptomsWorsened   []string       `json:"symptoms_worsened"`
	LatestDosage       *string        `json:"latest_dosage"`
	Evidence           []Evidence     `json:"evidence"`
	EffectivenessScore float64        `json:"effectiveness_score"`
	DosageChanges      []DosageChange `json:"dosage_changes,omitempty"`
}

type Evidence struct {
	Type    string `json:"type"` // improvement | worsening
	Symptom string `json:"symptom"`
	Text    string `json:"text"`
}

type DosageChange struct {
	Date time.Time `json:"date"`
	From string    `json:"from"`
	To   string    `json:"to"`
}

// Transition is one change of a symptom between two visits together with
// the medications that appeared in between.
type Transition struct {
	Symptom     string      `json:"symptom"`
	Change      Change      `json:"change"`
	FromDate    time.Time   `json:"from_date"`
	ToDate      time.Time   `json:"to_date"`
	Treatments  []Treatment `json:"treatments"`
	Correlation string      `json:"correlation"` // positive | negative
	Evidence    string      `json:"evidence"`
}

type Treatment struct {
	Date      time.Time `json:"date"`
	Treatment string    `json:"treatment"`
	NoteID    int64     `json:"note_id"`
	Dosage    *string   `json:"dosage"`
}

// Visit is one matched note as seen by the analyzer.
type Visit struct {
	NoteID  int64
	Date    time.Time
	Text    string
	Summary *extraction.Summary
}

type occurrence struct {
	date     time.Time
	symptom  string
	severity *string
	change   Change // set only for explicit improvement or worsening phrases
	rawText  string
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

type Service interface {
	// Analyze correlates medication timelines with symptom transitions
	// across every visit of a patient.
	Analyze(ctx context.Context, patientName string) (*Report, error)
}

type efficacyService struct {
	client *repo.Client
	now    func() time.Time
}

func New(client *repo.Client) Service {
	return &efficacyService{client: client, now: time.Now}
}

func (s *efficacyService) Analyze(ctx context.Context, patientName string) (*Report, error) {
	if strings.TrimSpace(patientName) == "" {
		return nil, ErrNameRequired
	}

	notes, err := s.client.ListNotes(ctx, repo.OldestFirst)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}

	var visits []Visit
	for _, n := range notes {
		if n.Summary == nil || !extraction.MatchesName(extraction.PatientName(n.Summary), patientName) {
			continue
		}
		summary, err := extraction.Decode(n.Summary)
		if err != nil {
			slog.WarnContext(ctx, "skipping note with unreadable summary", "note_id", n.ID, "err", err)
			continue
		}
		visits = append(visits, Visit{NoteID: n.ID, Date: n.CreatedAt, Text: n.Text, Summary: summary})
	}

	if len(visits) < 2 {
		return nil, ErrInsufficientNotes
	}

	report := Analyze(visits)
	report.PatientName = patientName
	report.AnalysisDate = s.now()
	return report, nil
}

// ---------------------------------------------------------------------------
// Analysis
// ---------------------------------------------------------------------------

// Analyze builds the efficacy report over visits of a single patient.
func Analyze(visits []Visit) *Report {
	visits = append([]Visit(nil), visits...)
	sort.SliceStable(visits, func(i, j int) bool { return visits[i].Date.Before(visits[j].Date) })

	var treatments []Treatment
	var symptoms []occurrence

	for _, v := range visits {
		for _, drug := range v.Summary.DrugHistory {
			treatments = append(treatments, Treatment{
				Date:      v.Date,
				Treatment: drug,
				NoteID:    v.NoteID,
				Dosage:    Dosage(drug, v.Text),
			})
		}

		for _, symptom := range v.Summary.Symptoms {
			symptoms = append(symptoms, occurrence{
				date:     v.Date,
				symptom:  symptom,
				severity: Severity(v.Text, symptom),
				rawText:  symptomContext(v.Text, symptom, 150),
			})
		}

		for _, m := range Mentions(v.Text) {
			name := m.Symptom
			lowerText := strings.ToLower(m.Text)
			for _, o := range symptoms {
				if strings.Contains(lowerText, strings.ToLower(o.symptom)) {
					name = o.symptom
					break
				}
			}
			if name == "" {
				name = "Unnamed symptom"
			}
			symptoms = append(symptoms, occurrence{
				date:    v.Date,
				symptom: name,
				change:  m.Change,
				rawText: m.Text,
			})
		}
	}

	transitions := correlate(symptoms, treatments)
	return &Report{
		TreatmentEffectiveness: aggregate(transitions, treatments),
		DetailedAnalysis:       transitions,
	}
}

func correlate(symptoms []occurrence, treatments []Treatment) []Transition {
	var order []string
	groups := make(map[string][]occurrence)
	for _, o := range symptoms {
		if _, ok := groups[o.symptom]; !ok {
			order = append(order, o.symptom)
		}
		groups[o.symptom] = append(groups[o.symptom], o)
	}

	transitions := []Transition{}
	for _, symptom := range order {
		occ := groups[symptom]
		if len(occ) < 2 {
			continue
		}
		sort.SliceStable(occ, func(i, j int) bool { return occ[i].date.Before(occ[j].date) })

		for i := 1; i < len(occ); i++ {
			prev, cur := occ[i-1], occ[i]

			change := cur.change
			if change == "" {
				change = CompareSeverity(cur.severity, prev.severity)
			}
			if change == Unchanged {
				continue
			}

			between := treatmentsBetween(treatments, prev.date, cur.date)
			if len(between) == 0 {
				continue
			}

			correlation := "negative"
			if change == Improved {
				correlation = "positive"
			}
			transitions = append(transitions, Transition{
				Symptom:     symptom,
				Change:      change,
				FromDate:    prev.date,
				ToDate:      cur.date,
				Treatments:  between,
				Correlation: correlation,
				Evidence:    cur.rawText,
			})
		}
	}
	return transitions
}

// treatmentsBetween returns the distinct treatments dated in (from, to].
func treatmentsBetween(treatments []Treatment, from, to time.Time) []Treatment {
	var out []Treatment
	seen := make(map[string]bool)
	for _, t := range treatments {
		if !t.Date.After(from) || t.Date.After(to) || seen[t.Treatment] {
			continue
		}
		seen[t.Treatment] = true
		out = append(out, t)
	}
	return out
}

func aggregate(transitions []Transition, treatments []Treatment) map[string]*Effectiveness {
	out := make(map[string]*Effectiveness)

	for _, tr := range transitions {
		for _, t := range tr.Treatments {
			name := BaseMedicationName(t.Treatment)
			e, ok := out[name]
			if !ok {
				e = &Effectiveness{SymptomsImproved: []string{}, SymptomsWorsened: []string{}, Evidence: []Evidence{}}
				out[name] = e
			}
			if t.Dosage != nil {
				e.LatestDosage = t.Dosage
			}

			if tr.Correlation == "positive" {
				e.Positive++
				e.SymptomsImproved = appendUnique(e.SymptomsImproved, tr.Symptom)
				e.Evidence = append(e.Evidence, Evidence{Type: "improvement", Symptom: tr.Symptom, Text: tr.Evidence})
			} else {
				e.Negative++
				e.SymptomsWorsened = appendUnique(e.SymptomsWorsened, tr.Symptom)
				e.Evidence = append(e.Evidence, Evidence{Type: "worsening", Symptom: tr.Symptom, Text: tr.Evidence})
			}
		}
	}

	for _, e := range out {
		if total := e.Positive + e.Negative; total > 0 {
			e.EffectivenessScore = float64(e.Positive) / float64(total) * 100
		}
	}

	for name, changes := range dosageChanges(treatments) {
		if e, ok := out[name]; ok {
			e.DosageChanges = changes
		}
	}
	return out
}

// dosageChanges logs, per medication, each visit whose dose differs from
// the last known one.
func dosageChanges(treatments []Treatment) map[string][]DosageChange {
	groups := make(map[string][]Treatment)
	for _, t := range treatments {
		name := BaseMedicationName(t.Treatment)
		groups[name] = append(groups[name], t)
	}

	out := make(map[string][]DosageChange)
	for name, list := range groups {
		sort.SliceStable(list, func(i, j int) bool { return list[i].Date.Before(list[j].Date) })

		var last string
		for _, t := range list {
			if t.Dosage == nil {
				continue
			}
			if last != "" && *t.Dosage != last {
				out[name] = append(out[name], DosageChange{Date: t.Date, From: last, To: *t.Dosage})
			}
			last = *t.Dosage
		}
	}
	return out
}

func appendUnique(items []string, s string) []string {
	for _, it := range items {
		if it == s {
			return items
		}
	}
	return append(items, s)
}
