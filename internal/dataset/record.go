package dataset

import (
	"fmt"
	"strings"
)

// Outcome is the three-valued enrollment outcome of a student.
// Values follow the label encoding of the source data (alphabetical).
type Outcome int

const (
	OutcomeDropout Outcome = iota
	OutcomeEnrolled
	OutcomeGraduate

	// OutcomeUnknown marks a record without a label, e.g. a hypothetical applicant.
	OutcomeUnknown Outcome = -1
)

// Outcomes lists the labelled outcomes in encoding order.
var Outcomes = []Outcome{OutcomeDropout, OutcomeEnrolled, OutcomeGraduate}

// String returns the dataset label for the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeDropout:
		return "Dropout"
	case OutcomeEnrolled:
		return "Enrolled"
	case OutcomeGraduate:
		return "Graduate"
	default:
		return "Unknown"
	}
}

// Known reports whether the outcome carries a label.
func (o Outcome) Known() bool {
	return o >= OutcomeDropout && o <= OutcomeGraduate
}

// ParseOutcome parses a Target value. Both the text labels and their
// numeric encodings (0, 1, 2) are accepted.
func ParseOutcome(s string) (Outcome, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "dropout", "0":
		return OutcomeDropout, nil
	case "enrolled", "1":
		return OutcomeEnrolled, nil
	case "graduate", "2":
		return OutcomeGraduate, nil
	}
	return OutcomeUnknown, fmt.Errorf("unknown outcome %q", s)
}

// StudentRecord is one cleaned row of the dataset, reduced to the
// attributes the dashboard reasons about.
type StudentRecord struct {
	Row                int // 1-based data row in the source file, 0 for synthetic records
	Course             int
	Age                float64
	AdmissionGrade     float64
	ScholarshipHolder  bool
	FirstSemesterGrade float64
	TuitionUpToDate    bool
	Outcome            Outcome
}

// IsDropout reports whether the record is labelled Dropout.
func (r StudentRecord) IsDropout() bool {
	return r.Outcome == OutcomeDropout
}
