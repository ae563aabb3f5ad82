package extraction

import "testing"

func TestCleanTranscription(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"patient has fever. ordered an mri", "Patient has fever. Ordered an MRI."},
		{"bp is high!  check ecg and ldl?", "BP is high! Check ECG and LDL?"},
		{"tested for covid-19 yesterday", "Tested for COVID-19 yesterday."},
		{"needs a ct scan", "Needs a CT scan."},
	}

	for _, tt := range tests {
		if got := CleanTranscription(tt.in); got != tt.want {
			t.Errorf("CleanTranscription(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
