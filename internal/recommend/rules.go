package recommend

import "github.com/abhisek/dropwatch/internal/dataset"

// Rule adds Program to a student's recommendations when Applies holds.
type Rule struct {
	Name    string
	Program string
	Applies func(rec dataset.StudentRecord) bool
}

// Rule thresholds.
const (
	LowGradeBelow = 10
	AdultAgeAbove = 25
)

// DefaultRules returns the attribute rules in priority order.
func DefaultRules() []Rule {
	return []Rule{
		{
			Name:    "tuition-overdue",
			Program: "Financial Aid Program",
			Applies: func(rec dataset.StudentRecord) bool { return !rec.TuitionUpToDate },
		},
		{
			Name:    "low-first-semester-grade",
			Program: "Intensive Academic Mentoring",
			Applies: func(rec dataset.StudentRecord) bool { return rec.FirstSemesterGrade < LowGradeBelow },
		},
		{
			Name:    "adult-student",
			Program: "Adult-Student Support Program",
			Applies: func(rec dataset.StudentRecord) bool { return rec.Age > AdultAgeAbove },
		},
	}
}

// Triggers returns the rules that apply to rec, in priority order.
func Triggers(rec dataset.StudentRecord) []Rule {
	var out []Rule
	for _, r := range DefaultRules() {
		if r.Applies(rec) {
			out = append(out, r)
		}
	}
	return out
}
