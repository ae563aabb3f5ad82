package followup

import (
	"strings"
	"time"

	"github.com/Alijeyrad/health_companion/internal/service/extraction"
)

// ---------------------------------------------------------------------------
// Types
// ---------------------------------------------------------------------------

const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

const (
	UrgencyRoutine = "routine"
	UrgencySoon    = "soon"
	UrgencyUrgent  = "urgent"
)

// DateLayout is the layout of Actions.FollowUpDate.
const DateLayout = "2006-01-02"

type Action struct {
	Action    string `json:"action"`
	Category  string `json:"category"`
	Priority  string `json:"priority"`
	RelatedTo string `json:"related_to,omitempty"`
	Context   string `json:"context"`
}

// Actions is the follow-up plan derived from one note.
type Actions struct {
	PatientActions []Action `json:"patient_actions"`
	DoctorActions  []Action `json:"doctor_actions"`
	FollowUpDate   *string  `json:"follow_up_date"`
	UrgencyLevel   string   `json:"urgency_level"`
	GeneratedAt    string   `json:"generated_at"`
}

// ---------------------------------------------------------------------------
// Builder
// ---------------------------------------------------------------------------

// Build derives the follow-up plan of a note from its raw text and its
// summary. A nil summary still yields explicit instructions, tests and
// referrals found in the text.
func Build(text string, s *extraction.Summary, now time.Time) *Actions {
	a := &Actions{
		PatientActions: []Action{},
		DoctorActions:  []Action{},
		UrgencyLevel:   UrgencyRoutine,
		GeneratedAt:    now.Format(time.RFC3339),
	}

	if s != nil {
		a.PatientActions = append(a.PatientActions, symptomActions(s.Symptoms, text)...)
		a.PatientActions = append(a.PatientActions, medicationActions(s.DrugHistory, text)...)
		if len(s.Lifestyle) > 0 {
			a.PatientActions = append(a.PatientActions, lifestyleActions(s.Lifestyle, text)...)
		}
		a.DoctorActions = append(a.DoctorActions, complaintActions(s.ChiefComplaints, text)...)

		date, urgency := Schedule(text, s.ChiefComplaints, s.Symptoms, s.ChronicDiseases, now)
		a.FollowUpDate = &date
		a.UrgencyLevel = urgency

		priority := PriorityMedium
		if urgency == UrgencyUrgent {
			priority = PriorityHigh
		}
		a.PatientActions = append(a.PatientActions, Action{
			Action:   "Schedule follow-up appointment on " + date,
			Category: "appointment",
			Priority: priority,
			Context:  "Based on your condition assessment",
		})
	}

	patient, doctor := explicitInstructions(text)
	for _, in := range patient {
		if !hasAction(a.PatientActions, in) {
			a.PatientActions = append(a.PatientActions, Action{
				Action:   in,
				Category: "direct_instruction",
				Priority: PriorityHigh,
				Context:  "Direct instruction from doctor",
			})
		}
	}
	for _, in := range doctor {
		if !hasAction(a.DoctorActions, in) {
			a.DoctorActions = append(a.DoctorActions, Action{
				Action:   in,
				Category: "direct_instruction",
				Priority: PriorityHigh,
				Context:  "Self-noted follow-up",
			})
		}
	}

	for _, item := range testsAndReferrals(text) {
		a.DoctorActions = append(a.DoctorActions, Action{
			Action:   "Order " + item.kind + ": " + item.name,
			Category: item.kind,
			Priority: PriorityHigh,
			Context:  "Mentioned during visit",
		})
		a.PatientActions = append(a.PatientActions, Action{
			Action:   "Complete " + item.kind + ": " + item.name,
			Category: item.kind,
			Priority: PriorityHigh,
			Context:  "Requested during visit",
		})
	}

	return a
}

func hasAction(actions []Action, text string) bool {
	for _, a := range actions {
		if strings.EqualFold(a.Action, text) {
			return true
		}
	}
	return false
}
