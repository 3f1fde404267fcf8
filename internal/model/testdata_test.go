package model

import (
	"math/rand/v2"
	"testing"

	"github.com/abhisek/dropwatch/internal/dataset"
)

// syntheticRecords builds a table where dropouts have low grades and unpaid
// tuition, with some overlap so the classifier is not trivially perfect.
func syntheticRecords(t *testing.T, n int, seed uint64) []dataset.StudentRecord {
	t.Helper()
	rng := rand.New(rand.NewPCG(seed, 7))
	out := make([]dataset.StudentRecord, n)
	for i := range out {
		r := dataset.StudentRecord{Row: i + 1, Course: 9119}
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

func clearDropout() dataset.StudentRecord {
	return dataset.StudentRecord{Age: 30, AdmissionGrade: 105, FirstSemesterGrade: 5, Outcome: dataset.OutcomeUnknown}
}

func clearGraduate() dataset.StudentRecord {
	return dataset.StudentRecord{
		Age: 19, AdmissionGrade: 160, FirstSemesterGrade: 16,
		TuitionUpToDate: true, ScholarshipHolder: true, Outcome: dataset.OutcomeUnknown,
	}
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.CacheRows = 64
	return cfg
}
