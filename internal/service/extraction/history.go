package extraction

import "strings"

// History is the part of a summary that carries over between visits.
// Drug history is left out as it changes from visit to visit.
type History struct {
	Allergies       []string         `json:"allergies"`
	PastHistory     []string         `json:"past_history"`
	ChronicDiseases []string         `json:"chronic_diseases"`
	FamilyHistory   []string         `json:"family_history"`
	Lifestyle       []LifestyleHabit `json:"lifestyle"`
}

// History returns the carried-over sections of s.
func (s *Summary) History() History {
	return History{
		Allergies:       s.Allergies,
		PastHistory:     s.PastHistory,
		ChronicDiseases: s.ChronicDiseases,
		FamilyHistory:   s.FamilyHistory,
		Lifestyle:       s.Lifestyle,
	}
}

// MergeHistory adds imported history entries that s does not already
// mention. Existing entries keep their order and come first.
func (s *Summary) MergeHistory(h *History) {
	if h == nil {
		return
	}
	s.Allergies = append(s.Allergies, h.Allergies...)
	s.PastHistory = append(s.PastHistory, h.PastHistory...)
	s.ChronicDiseases = append(s.ChronicDiseases, h.ChronicDiseases...)
	s.FamilyHistory = append(s.FamilyHistory, h.FamilyHistory...)

	seen := make(map[string]bool, len(s.Lifestyle))
	for _, l := range s.Lifestyle {
		seen[strings.ToLower(l.Habit)] = true
	}
	for _, l := range h.Lifestyle {
		key := strings.ToLower(l.Habit)
		if seen[key] {
			continue
		}
		seen[key] = true
		s.Lifestyle = append(s.Lifestyle, l)
	}

	s.Normalize()
}
