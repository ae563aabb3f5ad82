package lipid

import (
	"encoding/json"
	"math"
)

// ---------------------------------------------------------------------------
// Types
// ---------------------------------------------------------------------------

// Profile holds lipid values in mg/dL.
type Profile struct {
	TotalCholesterol float64 `json:"total_cholesterol"`
	HDL              float64 `json:"hdl_cholesterol"`
	LDL              float64 `json:"ldl_cholesterol"`
	Triglycerides    float64 `json:"triglycerides"`
}

// Risk is ordered from lowest to highest.
type Risk int

const (
	LowRisk Risk = iota
	ModerateRisk
	HighRisk
	VeryHighRisk
)

func (r Risk) String() string {
	switch r {
	case ModerateRisk:
		return "Moderate Risk"
	case HighRisk:
		return "High Risk"
	case VeryHighRisk:
		return "Very High Risk"
	default:
		return "Low Risk"
	}
}

func (r Risk) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

// Flag colours a marker for display.
type Flag string

const (
	FlagGood    Flag = "good"
	FlagWarning Flag = "warning"
	FlagDanger  Flag = "danger"
)

type Marker struct {
	Value  *float64 `json:"value"`
	Status string   `json:"status"`
	Flag   Flag     `json:"flag"`
}

type Percentiles struct {
	TotalCholesterol int `json:"total_cholesterol"`
	HDL              int `json:"hdl_cholesterol"`
	LDL              int `json:"ldl_cholesterol"`
	Triglycerides    int `json:"triglycerides"`
}

type Result struct {
	Profile          Profile     `json:"profile"`
	TotalCholesterol Marker      `json:"total_cholesterol"`
	HDL              Marker      `json:"hdl_cholesterol"`
	LDL              Marker      `json:"ldl_cholesterol"`
	Triglycerides    Marker      `json:"triglycerides"`
	Ratio            Marker      `json:"tc_hdl_ratio"`
	NonHDL           Marker      `json:"non_hdl_cholesterol"`
	RiskLevel        Risk        `json:"risk_level"`
	Recommendations  []string    `json:"recommendations"`
	Percentiles      Percentiles `json:"percentiles"`
}

// ---------------------------------------------------------------------------
// Analysis
// ---------------------------------------------------------------------------

// Analyze classifies each marker against standard adult thresholds and
// derives an overall risk level. The level only ever rises.
func Analyze(p Profile) (*Result, error) {
	for _, v := range []float64{p.TotalCholesterol, p.HDL, p.LDL, p.Triglycerides} {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, ErrInvalidValue
		}
	}

	r := &Result{Profile: p, Recommendations: []string{}}
	raise := func(level Risk) {
		if level > r.RiskLevel {
			r.RiskLevel = level
		}
	}
	advise := func(s ...string) { r.Recommendations = append(r.Recommendations, s...) }

	tc, hdl, ldl, tg := p.TotalCholesterol, p.HDL, p.LDL, p.Triglycerides

	switch {
	case tc < 200:
		r.TotalCholesterol = marker(tc, "Optimal")
	case tc < 240:
		r.TotalCholesterol = marker(tc, "Borderline High")
		raise(ModerateRisk)
		advise("Consider dietary changes to reduce total cholesterol.")
	default:
		r.TotalCholesterol = marker(tc, "High")
		raise(HighRisk)
		advise("Consult with a healthcare provider about your high total cholesterol.")
	}
	r.TotalCholesterol.Flag = flagBelow(tc, 200, 240)

	switch {
	case hdl >= 60:
		r.HDL = marker(hdl, "Optimal (Protective)")
	case hdl >= 40:
		r.HDL = marker(hdl, "Normal")
	default:
		r.HDL = marker(hdl, "Low")
		raise(ModerateRisk)
		advise("Work on increasing your HDL through exercise and diet.")
	}
	switch {
	case hdl >= 60:
		r.HDL.Flag = FlagGood
	case hdl >= 40:
		r.HDL.Flag = FlagWarning
	default:
		r.HDL.Flag = FlagDanger
	}

	switch {
	case ldl < 100:
		r.LDL = marker(ldl, "Optimal")
	case ldl < 130:
		r.LDL = marker(ldl, "Near Optimal")
	case ldl < 160:
		r.LDL = marker(ldl, "Borderline High")
		raise(ModerateRisk)
		advise("Consider dietary changes to reduce LDL cholesterol.")
	case ldl < 190:
		r.LDL = marker(ldl, "High")
		raise(HighRisk)
		advise("Consult with a healthcare provider about your high LDL cholesterol.")
	default:
		r.LDL = marker(ldl, "Very High")
		raise(VeryHighRisk)
		advise("Urgent: Consult with a healthcare provider about your very high LDL cholesterol.")
	}
	r.LDL.Flag = flagBelow(ldl, 100, 160)

	switch {
	case tg < 150:
		r.Triglycerides = marker(tg, "Normal")
	case tg < 200:
		r.Triglycerides = marker(tg, "Borderline High")
		raise(ModerateRisk)
		advise("Consider dietary changes to reduce triglycerides.")
	case tg < 500:
		r.Triglycerides = marker(tg, "High")
		raise(HighRisk)
		advise("Consult with a healthcare provider about your high triglycerides.")
	default:
		r.Triglycerides = marker(tg, "Very High")
		raise(VeryHighRisk)
		advise("Urgent: Consult with a healthcare provider about your very high triglycerides.")
	}
	r.Triglycerides.Flag = flagBelow(tg, 150, 200)

	if hdl == 0 {
		r.Ratio = Marker{Status: "Could not calculate", Flag: FlagDanger}
	} else {
		ratio := math.Round(tc/hdl*100) / 100
		switch {
		case ratio < 3.5:
			r.Ratio = marker(ratio, "Optimal")
		case ratio < 5:
			r.Ratio = marker(ratio, "Normal")
		default:
			r.Ratio = marker(ratio, "High Risk")
			raise(HighRisk)
			advise("Your Total Cholesterol to HDL ratio indicates elevated risk. Consider lifestyle modifications.")
		}
		r.Ratio.Flag = flagBelow(ratio, 3.5, 5)
	}

	nonHDL := tc - hdl
	switch {
	case nonHDL < 130:
		r.NonHDL = marker(nonHDL, "Optimal")
	case nonHDL < 160:
		r.NonHDL = marker(nonHDL, "Above Optimal")
		raise(ModerateRisk)
	case nonHDL < 190:
		r.NonHDL = marker(nonHDL, "High")
		raise(HighRisk)
	default:
		r.NonHDL = marker(nonHDL, "Very High")
		raise(VeryHighRisk)
		advise("Your Non-HDL cholesterol is high, indicating increased risk for heart disease.")
	}
	r.NonHDL.Flag = flagBelow(nonHDL, 130, 160)

	switch {
	case len(r.Recommendations) == 0 && r.RiskLevel == LowRisk:
		advise(
			"Continue maintaining a healthy lifestyle with balanced diet and regular exercise.",
			"Get your lipid profile checked annually.",
		)
	case len(r.Recommendations) == 0:
		advise(
			"Increase physical activity.",
			"Follow a heart-healthy diet low in saturated fats.",
			"Consider discussing medication options with your doctor.",
		)
	}

	if ldl >= 130 || tg >= 150 {
		advise(
			"Reduce intake of processed foods, sugars, and saturated fats.",
			"Increase consumption of fiber-rich foods like fruits, vegetables, and whole grains.",
		)
	}
	if hdl < 40 {
		advise(
			"Regular aerobic exercise can help raise HDL levels.",
			"Consider including healthy fats like olive oil, nuts, and avocados in your diet.",
		)
	}
	if tg >= 200 {
		advise("Limit alcohol consumption.", "Reduce intake of simple carbohydrates and sugars.")
	}

	r.Percentiles = PopulationPercentiles(p)
	return r, nil
}

func marker(v float64, status string) Marker {
	return Marker{Value: &v, Status: status}
}

// flagBelow flags lower-is-better markers.
func flagBelow(v, good, warning float64) Flag {
	switch {
	case v < good:
		return FlagGood
	case v < warning:
		return FlagWarning
	default:
		return FlagDanger
	}
}

// PopulationPercentiles places each value on a coarse population scale.
func PopulationPercentiles(p Profile) Percentiles {
	return Percentiles{
		TotalCholesterol: bucket(p.TotalCholesterol, []float64{150, 170, 200, 240}),
		HDL:              bucket(p.HDL, []float64{40, 50, 60, 70}),
		LDL:              bucket(p.LDL, []float64{90, 110, 130, 160}),
		Triglycerides:    bucket(p.Triglycerides, []float64{90, 120, 150, 200}),
	}
}

var percentileSteps = []int{10, 25, 50, 75, 90}

func bucket(v float64, bounds []float64) int {
	for i, b := range bounds {
		if v < b {
			return percentileSteps[i]
		}
	}
	return percentileSteps[len(bounds)]
}
