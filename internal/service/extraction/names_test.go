package extraction

import "testing"

func TestPatientName(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"canonical", `{"patient_details":{"name":"Jane Roe"}}`, "Jane Roe"},
		{"canonical wins", `{"patient_details":{"name":null},"patient_name":"Other"}`, ""},
		{"nested patient", `{"patient":{"name":"Ali Reza"}}`, "Ali Reza"},
		{"nested without name", `{"patient":{"age":3},"patient_name":"Flat"}`, "Flat"},
		{"flat", `{"patient_name":"Flat Name"}`, "Flat Name"},
		{"numeric", `{"patient_name":42}`, "42"},
		{"garbage", `not json`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PatientName([]byte(tt.data)); got != tt.want {
				t.Errorf("PatientName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMatchesName(t *testing.T) {
	tests := []struct {
		stored, query string
		want          bool
	}{
		{"John Doe", "john doe", true},
		{"John Doe", "john", true},
		{"John", "John Doe", true},
		{" JOHN DOE ", "doe", true},
		{"John Doe", "Jane", false},
		{"", "John", false},
	}
	for _, tt := range tests {
		if got := MatchesName(tt.stored, tt.query); got != tt.want {
			t.Errorf("MatchesName(%q, %q) = %v, want %v", tt.stored, tt.query, got, tt.want)
		}
	}
}
