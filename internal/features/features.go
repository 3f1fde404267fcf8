// Package features selects and standardizes the five student attributes
// the risk model is trained on.
package features

import (
	"math"
	"strings"

	"github.com/abhisek/dropwatch/internal/dataset"
)

// Count is the number of model features.
const Count = 5

// Feature indexes into a Vector.
const (
	Age = iota
	AdmissionGrade
	ScholarshipHolder
	FirstSemesterGrade
	TuitionUpToDate
)

// Names are the source column names of the features, in Vector order.
var Names = [Count]string{
	dataset.ColAge,
	dataset.ColAdmissionGrade,
	dataset.ColScholarshipHolder,
	dataset.ColFirstSemesterGrade,
	dataset.ColTuitionUpToDate,
}

// SetID identifies the feature set for cache keys. It changes whenever
// the feature selection changes.
var SetID = "v1:" + strings.Join(Names[:], "|")

// Vector is one feature row.
type Vector [Count]float64

// Extract selects the model features from a record. Booleans become 0/1;
// nothing else is transformed.
func Extract(r dataset.StudentRecord) Vector {
	return Vector{
		Age:                r.Age,
		AdmissionGrade:     r.AdmissionGrade,
		ScholarshipHolder:  flag(r.ScholarshipHolder),
		FirstSemesterGrade: r.FirstSemesterGrade,
		TuitionUpToDate:    flag(r.TuitionUpToDate),
	}
}

// ExtractAll extracts a vector per record.
func ExtractAll(records []dataset.StudentRecord) []Vector {
	out := make([]Vector, len(records))
	for i, r := range records {
		out[i] = Extract(r)
	}
	return out
}

// Input holds the raw attributes of a hypothetical applicant.
type Input struct {
	Age                float64
	AdmissionGrade     float64
	ScholarshipHolder  bool
	FirstSemesterGrade float64
	TuitionUpToDate    bool
}

// Record converts the input into an unlabelled student record.
func (in Input) Record() dataset.StudentRecord {
	return dataset.StudentRecord{
		Age:                in.Age,
		AdmissionGrade:     in.AdmissionGrade,
		ScholarshipHolder:  in.ScholarshipHolder,
		FirstSemesterGrade: in.FirstSemesterGrade,
		TuitionUpToDate:    in.TuitionUpToDate,
		Outcome:            dataset.OutcomeUnknown,
	}
}

// InputFrom reads the input attributes back from a record.
func InputFrom(r dataset.StudentRecord) Input {
	return Input{
		Age:                r.Age,
		AdmissionGrade:     r.AdmissionGrade,
		ScholarshipHolder:  r.ScholarshipHolder,
		FirstSemesterGrade: r.FirstSemesterGrade,
		TuitionUpToDate:    r.TuitionUpToDate,
	}
}

// Range is the observed span of one feature.
type Range struct {
	Min, Max, Mean float64
}

// Ranges computes the min, max and mean of every feature over ds.
// An empty dataset yields zero ranges.
func Ranges(ds *dataset.Dataset) [Count]Range {
	var out [Count]Range
	if ds.Len() == 0 {
		return out
	}
	vecs := ExtractAll(ds.Records())
	for f := range Count {
		lo, hi, sum := math.Inf(1), math.Inf(-1), 0.0
		for _, v := range vecs {
			lo = math.Min(lo, v[f])
			hi = math.Max(hi, v[f])
			sum += v[f]
		}
		out[f] = Range{Min: lo, Max: hi, Mean: sum / float64(len(vecs))}
	}
	return out
}

// DefaultInput builds an applicant at the dataset means. Flags are set
// when their mean is at least one half.
func DefaultInput(ranges [Count]Range) Input {
	return Input{
		Age:                ranges[Age].Mean,
		AdmissionGrade:     ranges[AdmissionGrade].Mean,
		ScholarshipHolder:  ranges[ScholarshipHolder].Mean >= 0.5,
		FirstSemesterGrade: ranges[FirstSemesterGrade].Mean,
		TuitionUpToDate:    ranges[TuitionUpToDate].Mean >= 0.5,
	}
}

func flag(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
