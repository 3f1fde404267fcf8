// Package datasettest builds synthetic student tables for tests in other
// packages.
package datasettest

import (
	"math/rand/v2"

	"github.com/abhisek/dropwatch/internal/dataset"
)

// Courses cycled through by Records.
var Courses = []int{9119, 9500, 9254}

// Records builds n students where dropouts have low grades and unpaid
// tuition, with enough overlap that a classifier is not trivially perfect.
// Outcomes cycle Dropout, Enrolled, Graduate.
func Records(n int, seed uint64) []dataset.StudentRecord {
	rng := rand.New(rand.NewPCG(seed, 11))
	out := make([]dataset.StudentRecord, n)
	for i := range out {
		r := dataset.StudentRecord{Row: i + 1, Course: Courses[(i/3)%len(Courses)]}
		switch i % 3 {
		case 0:
			r.Outcome = dataset.OutcomeDropout
			r.Age = 24 + rng.Float64()*10
			r.AdmissionGrade = 100 + rng.Float64()*30
			r.FirstSemesterGrade = 4 + rng.Float64()*7
			r.TuitionUpToDate = rng.Float64() < 0.3
			r.ScholarshipHolder = rng.Float64() < 0.1
		case 1:
			r.Outcome = dataset.OutcomeEnrolled
			r.Age = 18 + rng.Float64()*8
			r.AdmissionGrade = 115 + rng.Float64()*30
			r.FirstSemesterGrade = 10 + rng.Float64()*4
			r.TuitionUpToDate = rng.Float64() < 0.85
			r.ScholarshipHolder = rng.Float64() < 0.25
		default:
			r.Outcome = dataset.OutcomeGraduate
			r.Age = 18 + rng.Float64()*5
			r.AdmissionGrade = 130 + rng.Float64()*40
			r.FirstSemesterGrade = 12 + rng.Float64()*6
			r.TuitionUpToDate = rng.Float64() < 0.97
			r.ScholarshipHolder = rng.Float64() < 0.4
		}
		out[i] = r
	}
	return out
}

// Dataset wraps Records in a Dataset.
func Dataset(n int, seed uint64) *dataset.Dataset {
	return dataset.FromRecords("synthetic", Records(n, seed))
}
