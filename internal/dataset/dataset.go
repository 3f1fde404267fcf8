package dataset

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"math"
	"slices"
)

// Dataset is an immutable, cleaned student table. Records and matrix rows
// are index-aligned. Derived views (Filter) share nothing mutable with
// their parent.
type Dataset struct {
	source      string
	columns     []string
	colIndex    map[string]int
	matrix      [][]float64
	records     []StudentRecord
	report      CleanReport
	fingerprint string
}

func newDataset(source string, columns []string, matrix [][]float64, records []StudentRecord, report CleanReport) *Dataset {
	idx := make(map[string]int, len(columns))
	for i, c := range columns {
		idx[c] = i
	}
	d := &Dataset{
		source:   source,
		columns:  columns,
		colIndex: idx,
		matrix:   matrix,
		records:  records,
		report:   report,
	}
	d.fingerprint = d.computeFingerprint()
	return d
}

// FromRecords builds a dataset from already-clean records. The numeric
// matrix carries only the required columns. Used for synthetic data and
// tests.
func FromRecords(source string, records []StudentRecord) *Dataset {
	columns := slices.Clone(RequiredColumns)
	matrix := make([][]float64, len(records))
	recs := make([]StudentRecord, len(records))
	for i, r := range records {
		if r.Row == 0 {
			r.Row = i + 1
		}
		recs[i] = r
		matrix[i] = []float64{
			float64(r.Course),
			r.Age,
			r.AdmissionGrade,
			boolFloat(r.ScholarshipHolder),
			r.FirstSemesterGrade,
			boolFloat(r.TuitionUpToDate),
			float64(r.Outcome),
		}
	}
	report := CleanReport{RowsRead: len(records)}
	return newDataset(source, columns, matrix, recs, report)
}

// Source returns the path or name the dataset was read from.
func (d *Dataset) Source() string { return d.source }

// Len returns the number of records.
func (d *Dataset) Len() int { return len(d.records) }

// Report returns the cleaning summary of the load.
func (d *Dataset) Report() CleanReport { return d.report }

// Columns returns a copy of the column names.
func (d *Dataset) Columns() []string { return slices.Clone(d.columns) }

// Records returns a copy of the records.
func (d *Dataset) Records() []StudentRecord { return slices.Clone(d.records) }

// Record returns the i-th record.
func (d *Dataset) Record(i int) StudentRecord { return d.records[i] }

// Column returns a copy of the numeric values of the named column.
func (d *Dataset) Column(name string) ([]float64, bool) {
	c, ok := d.colIndex[name]
	if !ok {
		return nil, false
	}
	out := make([]float64, len(d.matrix))
	for i, row := range d.matrix {
		out[i] = row[c]
	}
	return out, true
}

// Values projects every record through f.
func (d *Dataset) Values(f func(StudentRecord) float64) []float64 {
	out := make([]float64, len(d.records))
	for i, r := range d.records {
		out[i] = f(r)
	}
	return out
}

// Filter returns the view of records for which keep returns true.
func (d *Dataset) Filter(keep func(StudentRecord) bool) *Dataset {
	var (
		matrix  [][]float64
		records []StudentRecord
	)
	for i, r := range d.records {
		if keep(r) {
			records = append(records, r)
			matrix = append(matrix, d.matrix[i])
		}
	}
	report := CleanReport{RowsRead: len(records)}
	return newDataset(d.source, d.columns, matrix, records, report)
}

// Fingerprint is a content hash of the cleaned table. Two datasets with
// the same columns and values share a fingerprint.
func (d *Dataset) Fingerprint() string { return d.fingerprint }

func (d *Dataset) computeFingerprint() string {
	h := sha256.New()
	for _, c := range d.columns {
		h.Write([]byte(c))
		h.Write([]byte{0})
	}
	var buf [8]byte
	for _, row := range d.matrix {
		for _, v := range row {
			binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
			h.Write(buf[:])
		}
	}
	return hex.EncodeToString(h.Sum(nil))
}

func boolFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
