package insight

import (
	"fmt"

	"github.com/abhisek/dropwatch/internal/dataset"
)

// Cohort holds the aggregate figures behind the recommendation panels.
// Every field is zero for an empty cohort.
type Cohort struct {
	Size int

	UnpaidShare      float64
	ScholarshipShare float64

	MeanFirstSemGrade float64
	GradeRiskBelow    float64 // 25th percentile of first-semester grade

	MeanAge        float64
	MeanDropoutAge float64

	MeanDropoutAdmission  float64
	MeanGraduateAdmission float64
	AdmissionRiskBelow    float64 // 25th percentile of admission grade
}

// Panel is one titled block of insights and suggested actions.
type Panel struct {
	Title    string
	Insights []string
	Actions  []string
}

// Summarize computes cohort figures over ds.
func Summarize(ds *dataset.Dataset) Cohort {
	c := Cohort{Size: ds.Len()}
	if c.Size == 0 {
		return c
	}

	var unpaid, holders int
	var dropoutAges, dropoutAdm, graduateAdm []float64
	for _, r := range ds.Records() {
		if !r.TuitionUpToDate {
			unpaid++
		}
		if r.ScholarshipHolder {
			holders++
		}
		switch r.Outcome {
		case dataset.OutcomeDropout:
			dropoutAges = append(dropoutAges, r.Age)
			dropoutAdm = append(dropoutAdm, r.AdmissionGrade)
		case dataset.OutcomeGraduate:
			graduateAdm = append(graduateAdm, r.AdmissionGrade)
		}
	}
	n := float64(c.Size)
	c.UnpaidShare = float64(unpaid) / n
	c.ScholarshipShare = float64(holders) / n

	grades := ds.Values(func(r dataset.StudentRecord) float64 { return r.FirstSemesterGrade })
	c.MeanFirstSemGrade = dataset.Mean(grades)
	c.GradeRiskBelow = dataset.Quantile(grades, 0.25)

	c.MeanAge = dataset.Mean(ds.Values(func(r dataset.StudentRecord) float64 { return r.Age }))
	c.MeanDropoutAge = dataset.Mean(dropoutAges)

	c.MeanDropoutAdmission = dataset.Mean(dropoutAdm)
	c.MeanGraduateAdmission = dataset.Mean(graduateAdm)
	c.AdmissionRiskBelow = dataset.Quantile(
		ds.Values(func(r dataset.StudentRecord) float64 { return r.AdmissionGrade }), 0.25)
	return c
}

// Panels renders the five cohort panels in display order.
func (c Cohort) Panels() []Panel {
	return []Panel{
		{
			Title: "Payment Review",
			Insights: []string{
				fmt.Sprintf("%.1f%% of students have late or unpaid tuition", c.UnpaidShare*100),
				"Students with outstanding tuition carry a higher dropout risk",
			},
			Actions: []string{
				"Build an early-warning system for payments",
				"Offer flexible payment plans to at-risk students",
			},
		},
		{
			Title: "Academic Intervention",
			Insights: []string{
				fmt.Sprintf("Mean first-semester grade: %.2f", c.MeanFirstSemGrade),
				fmt.Sprintf("Grades below %.2f indicate high dropout potential", c.GradeRiskBelow),
			},
			Actions: []string{
				fmt.Sprintf("Academic mentoring for students graded below %.2f", c.GradeRiskBelow),
				"Extra sessions for the hardest courses",
			},
		},
		{
			Title: "Scholarship Allocation",
			Insights: []string{
				fmt.Sprintf("%.1f%% of students hold a scholarship", c.ScholarshipShare*100),
				"Scholarships can lower the dropout rate substantially",
			},
			Actions: []string{
				"Prioritise scholarships for high-risk students",
				"Widen the number and reach of scholarship programmes",
			},
		},
		{
			Title: "Age Counseling",
			Insights: []string{
				fmt.Sprintf("Mean age at enrollment: %.2f years", c.MeanAge),
				fmt.Sprintf("Students who dropped out averaged %.2f years", c.MeanDropoutAge),
			},
			Actions: []string{
				"Dedicated programme for non-traditional (older) students",
				"Career counseling for adult students",
			},
		},
		{
			Title: "Admission Grade Analysis",
			Insights: []string{
				fmt.Sprintf("Mean admission grade of dropouts: %.2f", c.MeanDropoutAdmission),
				fmt.Sprintf("Mean admission grade of graduates: %.2f", c.MeanGraduateAdmission),
				fmt.Sprintf("Admission grades below %.2f signal higher dropout risk", c.AdmissionRiskBelow),
			},
			Actions: []string{
				"Preparation programme for students with low admission grades",
				"Revisit admission standards for specific programmes",
				"Broader campus onboarding for new students",
			},
		},
	}
}

// Strategy is the closing summary shown under the cohort panels.
var Strategy = Panel{
	Title: "Conclusions",
	Insights: []string{
		"Academic: admission grade and first-semester performance are strong dropout indicators.",
		"Financial: tuition status and scholarship support strongly affect continuation.",
		"Demographic: age at enrollment helps tailor the support offered.",
	},
	Actions: []string{
		"Early-warning system: monitor students to flag risk early",
		"Integrated support: combine academic, financial and social help per student",
		"Periodic evaluation: regularly assess how well interventions work",
		"Engagement: grow programmes that build a sense of belonging",
	},
}
