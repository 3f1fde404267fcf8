// Package insight turns risk assessments and cohort statistics into short
// human-readable explanations.
package insight

import (
	"fmt"

	"github.com/abhisek/dropwatch/internal/features"
	"github.com/abhisek/dropwatch/internal/risk"
)

// Rule contributes Message to a report for bucket Bucket when Applies holds.
type Rule struct {
	Bucket  risk.Bucket
	Message string
	Applies func(in features.Input) bool
}

// Table holds the factor rules, grouped by bucket in evaluation order.
var Table = []Rule{
	{risk.Low, "Strong first-semester grade", func(in features.Input) bool { return in.FirstSemesterGrade > 15 }},
	{risk.Low, "High admission grade", func(in features.Input) bool { return in.AdmissionGrade > 150 }},
	{risk.Low, "Tuition paid on time", func(in features.Input) bool { return in.TuitionUpToDate }},
	{risk.Low, "Holds a scholarship", func(in features.Input) bool { return in.ScholarshipHolder }},

	{risk.Medium, "First-semester grade is fairly low", func(in features.Input) bool { return in.FirstSemesterGrade < 12 }},
	{risk.Medium, "Admission grade below average", func(in features.Input) bool { return in.AdmissionGrade < 130 }},
	{risk.Medium, "Tuition payment needs attention", func(in features.Input) bool { return !in.TuitionUpToDate }},
	{risk.Medium, "No scholarship", func(in features.Input) bool { return !in.ScholarshipHolder }},

	{risk.High, "Very low first-semester grade", func(in features.Input) bool { return in.FirstSemesterGrade < 8 }},
	{risk.High, "Low admission grade", func(in features.Input) bool { return in.AdmissionGrade < 110 }},
	{risk.High, "Tuition fees are overdue", func(in features.Input) bool { return !in.TuitionUpToDate }},
	{risk.High, "No scholarship support", func(in features.Input) bool { return !in.ScholarshipHolder }},
}

var headlines = map[risk.Bucket]string{
	risk.Low:    "low dropout risk",
	risk.Medium: "moderate dropout risk",
	risk.High:   "high dropout risk",
}

var advice = map[risk.Bucket]string{
	risk.Low:    "Good prospects of completing the programme. Keep monitoring academic progress.",
	risk.Medium: "Consider academic mentoring, and financial counseling where needed.",
	risk.High:   "Needs immediate intervention. Recommend intensive mentoring and a review of financial support.",
}

var factorLabels = map[risk.Bucket]string{
	risk.Low:    "Contributing factors",
	risk.Medium: "Areas to watch",
	risk.High:   "Main risk factors",
}

// Report explains a single assessment.
type Report struct {
	Assessment risk.Assessment
	Headline   string
	// FactorLabel introduces Factors, e.g. "Main risk factors".
	FactorLabel string
	Factors     []string
	Advice      string
}

// Explain evaluates the rules of the assessment's bucket against in.
func Explain(a risk.Assessment, in features.Input) Report {
	r := Report{
		Assessment:  a,
		Headline:    fmt.Sprintf("This student has %s (%.2f).", headlines[a.Bucket], a.Probability),
		FactorLabel: factorLabels[a.Bucket],
		Advice:      advice[a.Bucket],
	}
	for _, rule := range Table {
		if rule.Bucket == a.Bucket && rule.Applies(in) {
			r.Factors = append(r.Factors, rule.Message)
		}
	}
	return r
}

// Profile renders the input attributes as label/value pairs.
func Profile(in features.Input) [][2]string {
	return [][2]string{
		{"Age", fmt.Sprintf("%.1f years", in.Age)},
		{"Admission grade", fmt.Sprintf("%.1f", in.AdmissionGrade)},
		{"1st-sem grade", fmt.Sprintf("%.1f", in.FirstSemesterGrade)},
		{"Scholarship", yesNo(in.ScholarshipHolder, "Yes", "No")},
		{"Tuition", yesNo(in.TuitionUpToDate, "On time", "Late/unpaid")},
	}
}

func yesNo(b bool, yes, no string) string {
	if b {
		return yes
	}
	return no
}
