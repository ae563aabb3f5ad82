package extraction

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"
)

// ---------------------------------------------------------------------------
// Types
// ---------------------------------------------------------------------------

// Summary is the structured extraction of a clinical note. Every list is
// non-nil after Normalize so it always serializes as a JSON array.
type Summary struct {
	PatientDetails        PatientDetails    `json:"patient_details"`
	ChiefComplaints       []string          `json:"chief_complaints"`
	ChiefComplaintDetails []ComplaintDetail `json:"chief_complaint_details"`
	PastHistory           []string          `json:"past_history"`
	ChronicDiseases       []string          `json:"chronic_diseases"`
	Lifestyle             []LifestyleHabit  `json:"lifestyle"`
	DrugHistory           []string          `json:"drug_history"`
	FamilyHistory         []string          `json:"family_history"`
	Allergies             []string          `json:"allergies"`
	Symptoms              []string          `json:"symptoms"`
	PossibleDiseases      []string          `json:"possible_diseases"`
}

type PatientDetails struct {
	Name          *string `json:"name"`
	Age           *string `json:"age"`
	Gender        *string `json:"gender"`
	MaritalStatus *string `json:"marital_status"`
	Residence     *string `json:"residence"`
}

type ComplaintDetail struct {
	Complaint string  `json:"complaint"`
	Location  *string `json:"location"`
	Severity  *string `json:"severity"`
	Duration  *string `json:"duration"`
}

type LifestyleHabit struct {
	Habit     string  `json:"habit"`
	Frequency *string `json:"frequency"`
	Duration  *string `json:"duration"`
}

// UnknownPatient names the placeholder summary stored when nothing at all
// could be extracted from a note.
const UnknownPatient = "Unknown Patient"

// Empty returns a summary with every key present and nothing filled in.
func Empty() *Summary {
	s := &Summary{}
	s.Normalize()
	return s
}

// Placeholder returns the summary stored for notes that yielded nothing.
func Placeholder() *Summary {
	s := Empty()
	s.PatientDetails.Name = strPtr(UnknownPatient)
	return s
}

// Name returns the patient name or "".
func (s *Summary) Name() string {
	if s == nil || s.PatientDetails.Name == nil {
		return ""
	}
	return *s.PatientDetails.Name
}

// IsBlank reports whether no field carries any information.
func (s *Summary) IsBlank() bool {
	pd := s.PatientDetails
	return pd.Name == nil && pd.Age == nil && pd.Gender == nil && pd.MaritalStatus == nil && pd.Residence == nil &&
		len(s.ChiefComplaints) == 0 && len(s.ChiefComplaintDetails) == 0 && len(s.PastHistory) == 0 &&
		len(s.ChronicDiseases) == 0 && len(s.Lifestyle) == 0 && len(s.DrugHistory) == 0 &&
		len(s.FamilyHistory) == 0 && len(s.Allergies) == 0 && len(s.Symptoms) == 0 &&
		len(s.PossibleDiseases) == 0
}

// IsPlaceholder reports whether s is the "Unknown Patient" shell with no
// complaints, symptoms or allergies.
func (s *Summary) IsPlaceholder() bool {
	return s.Name() == UnknownPatient &&
		len(s.ChiefComplaints) == 0 && len(s.Symptoms) == 0 && len(s.Allergies) == 0
}

// HasHistory reports whether any of the history sections is filled.
func (s *Summary) HasHistory() bool {
	return len(s.Allergies) > 0 || len(s.PastHistory) > 0 || len(s.ChronicDiseases) > 0 ||
		len(s.FamilyHistory) > 0 || len(s.Lifestyle) > 0
}

// ---------------------------------------------------------------------------
// Normalization
// ---------------------------------------------------------------------------

// Normalize fills missing lists, drops empty values and removes
// case-insensitive duplicates while keeping the first occurrence.
func (s *Summary) Normalize() {
	pd := &s.PatientDetails
	for _, f := range []**string{&pd.Name, &pd.Age, &pd.Gender, &pd.MaritalStatus, &pd.Residence} {
		if *f != nil && **f == "" {
			*f = nil
		}
	}

	s.ChiefComplaints = dedupe(s.ChiefComplaints)
	s.PastHistory = dedupe(s.PastHistory)
	s.ChronicDiseases = dedupe(s.ChronicDiseases)
	s.DrugHistory = dedupe(s.DrugHistory)
	s.FamilyHistory = dedupe(s.FamilyHistory)
	s.Allergies = dedupe(s.Allergies)
	s.Symptoms = dedupe(s.Symptoms)
	s.PossibleDiseases = dedupe(s.PossibleDiseases)

	details := make([]ComplaintDetail, 0, len(s.ChiefComplaintDetails))
	for _, d := range s.ChiefComplaintDetails {
		if d.Complaint != "" {
			details = append(details, d)
		}
	}
	s.ChiefComplaintDetails = details

	habits := make([]LifestyleHabit, 0, len(s.Lifestyle))
	for _, h := range s.Lifestyle {
		if h.Habit != "" {
			habits = append(habits, h)
		}
	}
	s.Lifestyle = habits
}

func dedupe(items []string) []string {
	out := make([]string, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		if item == "" {
			continue
		}
		key := strings.ToLower(item)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, item)
	}
	return out
}

// ---------------------------------------------------------------------------
// Decoding
// ---------------------------------------------------------------------------

var ErrNotObject = errors.New("summary is not a JSON object")

// Decode parses loosely-typed summary JSON as produced by a generative
// backend or edited by a client. Numbers are accepted where strings are
// expected; entries of any other type are dropped. The result is normalized.
func Decode(data []byte) (*Summary, error) {
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	// A bare null decodes into a nil map without error.
	if m == nil {
		return nil, ErrNotObject
	}

	s := &Summary{}
	if pd, ok := m["patient_details"].(map[string]any); ok {
		s.PatientDetails = PatientDetails{
			Name:          looseString(pd["name"]),
			Age:           looseString(pd["age"]),
			Gender:        looseString(pd["gender"]),
			MaritalStatus: looseString(pd["marital_status"]),
			Residence:     looseString(pd["residence"]),
		}
	}

	s.ChiefComplaints = looseStrings(m["chief_complaints"])
	s.PastHistory = looseStrings(m["past_history"])
	s.ChronicDiseases = looseStrings(m["chronic_diseases"])
	s.DrugHistory = looseStrings(m["drug_history"])
	s.FamilyHistory = looseStrings(m["family_history"])
	s.Allergies = looseStrings(m["allergies"])
	s.Symptoms = looseStrings(m["symptoms"])
	s.PossibleDiseases = looseStrings(m["possible_diseases"])

	for _, obj := range looseObjects(m["chief_complaint_details"]) {
		d := ComplaintDetail{
			Location: looseString(obj["location"]),
			Severity: looseString(obj["severity"]),
			Duration: looseString(obj["duration"]),
		}
		if c := looseString(obj["complaint"]); c != nil {
			d.Complaint = *c
		}
		s.ChiefComplaintDetails = append(s.ChiefComplaintDetails, d)
	}
	for _, obj := range looseObjects(m["lifestyle"]) {
		h := LifestyleHabit{
			Frequency: looseString(obj["frequency"]),
			Duration:  looseString(obj["duration"]),
		}
		if v := looseString(obj["habit"]); v != nil {
			h.Habit = *v
		}
		s.Lifestyle = append(s.Lifestyle, h)
	}

	s.Normalize()
	return s, nil
}

func looseString(v any) *string {
	switch t := v.(type) {
	case string:
		if t == "" {
			return nil
		}
		return &t
	case float64:
		str := strconv.FormatFloat(t, 'f', -1, 64)
		return &str
	default:
		return nil
	}
}

func looseStrings(v any) []string {
	list, _ := v.([]any)
	out := make([]string, 0, len(list))
	for _, item := range list {
		if s := looseString(item); s != nil {
			out = append(out, *s)
		}
	}
	return out
}

func looseObjects(v any) []map[string]any {
	list, _ := v.([]any)
	out := make([]map[string]any, 0, len(list))
	for _, item := range list {
		if obj, ok := item.(map[string]any); ok {
			out = append(out, obj)
		}
	}
	return out
}

func strPtr(s string) *string {
	return &s
}
