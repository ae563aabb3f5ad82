package extraction

import (
	"encoding/json"
	"strings"
)

// PatientName reads the patient name out of raw summary JSON. The canonical
// patient_details.name wins whenever patient_details is present; older
// records may carry patient.name or a top-level patient_name instead.
func PatientName(data []byte) string {
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return ""
	}

	if pd, ok := m["patient_details"]; ok {
		if obj, ok := pd.(map[string]any); ok {
			return deref(looseString(obj["name"]))
		}
		return ""
	}
	if p, ok := m["patient"].(map[string]any); ok {
		if v, ok := p["name"]; ok {
			return deref(looseString(v))
		}
	}
	if v, ok := m["patient_name"]; ok {
		return deref(looseString(v))
	}
	return ""
}

// MatchesName reports whether a stored patient name and a query refer to
// the same patient: case-insensitive equality or containment either way.
// A blank stored name never matches.
func MatchesName(stored, query string) bool {
	stored = strings.ToLower(strings.TrimSpace(stored))
	query = strings.ToLower(strings.TrimSpace(query))
	if stored == "" {
		return false
	}
	return strings.Contains(stored, query) || strings.Contains(query, stored)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
