package efficacy

import (
	"regexp"
	"strings"
)

const (
	doseUnit   = `(?:mg|mcg|g|ml|tablet|tabs|cap|pill)`
	doseSuffix = `(?:/day|/daily|daily|twice daily|BID|TID|QID)?`
)

var (
	trailingDose      = regexp.MustCompile(`(?i)\s+\d+\s*` + doseUnit + `.*`)
	trailingFrequency = regexp.MustCompile(`(?i)\s+(?:once|twice|three times|daily|BID|TID|QID).*`)
	inlineDose        = regexp.MustCompile(`(?i)(\d+\s*` + doseUnit + `)`)
)

var dosagePatterns = []string{
	`{}\s+(\d+\s*` + doseUnit + doseSuffix + `)`,
	`{}[^.]*?(\d+\s*` + doseUnit + doseSuffix + `)`,
	`(?:prescribed|taking|started|initiated)\s+{}\s+(\d+\s*` + doseUnit + doseSuffix + `)`,
	`(?:prescribed|taking|started|initiated)[^.]*?{}[^.]*?(\d+\s*` + doseUnit + doseSuffix + `)`,
}

// BaseMedicationName strips trailing dosage and frequency tokens so that
// "Lisinopril 10mg daily" and "Lisinopril 20mg BID" group together.
func BaseMedicationName(medication string) string {
	name := trailingDose.ReplaceAllString(medication, "")
	name = trailingFrequency.ReplaceAllString(name, "")
	return strings.TrimSpace(name)
}

// Dosage finds the dose of a medication in the note text, falling back to
// a dose written into the medication entry itself.
func Dosage(medication, text string) *string {
	base := BaseMedicationName(medication)
	if base != "" {
		for _, p := range dosagePatterns {
			if m := compile(p, base).FindStringSubmatch(text); m != nil {
				d := strings.TrimSpace(m[1])
				return &d
			}
		}
	}
	if m := inlineDose.FindStringSubmatch(medication); m != nil {
		d := strings.TrimSpace(m[1])
		return &d
	}
	return nil
}
