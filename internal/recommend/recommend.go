// Package recommend selects intervention programs for a student from their
// risk bucket and a small set of attribute rules.
package recommend

import (
	"github.com/abhisek/dropwatch/internal/dataset"
	"github.com/abhisek/dropwatch/internal/risk"
)

// MaxPrograms is the maximum number of programs recommended per student.
const MaxPrograms = 3

// Default programs per bucket, in display order.
var defaults = map[risk.Bucket][]string{
	risk.High: {
		"Intensive Academic Mentor Program",
		"Financial & Scholarship Counseling",
		"Time-Management Workshop",
		"Foundational-Course Remedial Program",
	},
	risk.Medium: {
		"Guided Study Group",
		"Monthly Progress Monitoring",
		"Academic Counseling",
		"Study-Skills Training",
	},
	risk.Low: {
		"Career Orientation Session",
		"Soft-Skills Workshop",
		"Academic Enrichment Program",
		"Extracurricular Activities",
	},
}

// Defaults returns a copy of the default program list for bucket b.
func Defaults(b risk.Bucket) []string {
	return append([]string(nil), defaults[b]...)
}

// Set is the outcome of Recommend.
type Set struct {
	Bucket risk.Bucket
	// Programs holds at most MaxPrograms unique names, rule-triggered ones first.
	Programs []string
	// Triggered is how many leading entries of Programs came from rules.
	Triggered int
}

// Recommend builds the program list for a student in bucket b. Programs
// triggered by the student's attributes come first, in rule order, followed
// by the bucket defaults not already present.
func Recommend(b risk.Bucket, rec dataset.StudentRecord) Set {
	set := Set{Bucket: b}
	seen := make(map[string]bool, MaxPrograms)
	add := func(name string) bool {
		if seen[name] || len(set.Programs) >= MaxPrograms {
			return false
		}
		seen[name] = true
		set.Programs = append(set.Programs, name)
		return true
	}

	for _, r := range Triggers(rec) {
		if add(r.Program) {
			set.Triggered++
		}
	}
	for _, name := range defaults[b] {
		add(name)
	}
	return set
}
