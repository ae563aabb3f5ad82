package lipid

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	totalLabel   = regexp.MustCompile(`(?i)\b(?:total\s+cholesterol|cholesterol,?\s+total)\b`)
	hdlLabel     = regexp.MustCompile(`(?i)\bHDL\b(?:[\s-]*(?:cholesterol|c)\b)?`)
	ldlLabel     = regexp.MustCompile(`(?i)\bLDL\b(?:[\s-]*(?:cholesterol|c)\b)?`)
	trigLabel    = regexp.MustCompile(`(?i)\btriglycerides?\b`)
	labelValue   = regexp.MustCompile(`^[^0-9\n]{0,30}?(\d+(?:\.\d+)?)`)
	ratioAfter   = regexp.MustCompile(`^\s*/`)
	nonHDLBefore = regexp.MustCompile(`(?i)(?:non[\s-]*|/)$`)
)

// ParseReport pulls the four lipid values out of lab report text.
// Ratios (TC/HDL) and derived markers (non-HDL, VLDL) are skipped.
func ParseReport(text string) (Profile, error) {
	tc, ok1 := labeled(text, totalLabel, nil)
	hdl, ok2 := labeled(text, hdlLabel, nonHDLBefore)
	ldl, ok3 := labeled(text, ldlLabel, nil)
	tg, ok4 := labeled(text, trigLabel, nil)

	if !ok1 || !ok2 || !ok3 || !ok4 {
		return Profile{}, ErrIncompleteReport
	}
	return Profile{TotalCholesterol: tc, HDL: hdl, LDL: ldl, Triglycerides: tg}, nil
}

// labeled returns the first number following label. Occurrences that are
// part of a ratio, or whose preceding text matches skipBefore, are ignored.
func labeled(text string, label, skipBefore *regexp.Regexp) (float64, bool) {
	for _, loc := range label.FindAllStringIndex(text, -1) {
		before, after := text[:loc[0]], text[loc[1]:]
		if skipBefore != nil && skipBefore.MatchString(before) {
			continue
		}
		if ratioAfter.MatchString(after) {
			continue
		}
		m := labelValue.FindStringSubmatch(after)
		if m == nil {
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(m[1]), 64)
		if err != nil {
			continue
		}
		return v, true
	}
	return 0, false
}
