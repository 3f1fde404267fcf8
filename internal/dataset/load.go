package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
)

// Column names of the source schema used by the dashboard.
const (
	ColCourse             = "Course"
	ColAge                = "Age at enrollment"
	ColAdmissionGrade     = "Admission grade"
	ColScholarshipHolder  = "Scholarship holder"
	ColFirstSemesterGrade = "Curricular units 1st sem (grade)"
	ColTuitionUpToDate    = "Tuition fees up to date"
	ColTarget             = "Target"
)

// RequiredColumns lists the columns that must be present in every dataset.
var RequiredColumns = []string{
	ColCourse,
	ColAge,
	ColAdmissionGrade,
	ColScholarshipHolder,
	ColFirstSemesterGrade,
	ColTuitionUpToDate,
	ColTarget,
}

// Delimiter is the field separator of the source file.
const Delimiter = ';'

// Load reads and cleans the semicolon-delimited dataset at path.
// Every failure is reported as a *DataLoadError.
func Load(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &DataLoadError{Source: path, Err: err}
	}
	defer f.Close()
	return Parse(f, path)
}

// Parse reads and cleans a dataset from r. source names the input in errors.
func Parse(r io.Reader, source string) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.Comma = Delimiter
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, &DataLoadError{Source: source, Err: errors.New("empty file")}
	}
	if err != nil {
		return nil, &DataLoadError{Source: source, Err: err}
	}
	header = normalizeHeader(header)

	index, err := columnIndex(header)
	if err != nil {
		return nil, &DataLoadError{Source: source, Line: 1, Err: err}
	}

	var raw [][]string
	for line := 2; ; line++ {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &DataLoadError{Source: source, Line: line, Err: err}
		}
		if len(row) == 1 && strings.TrimSpace(row[0]) == "" {
			continue // blank line
		}
		if len(row) > len(header) {
			return nil, &DataLoadError{
				Source: source,
				Line:   line,
				Err:    fmt.Errorf("expected %d fields, got %d", len(header), len(row)),
			}
		}
		// Short rows are padded so the missing fields count as nulls.
		for len(row) < len(header) {
			row = append(row, "")
		}
		raw = append(raw, row)
	}

	rows, report := Clean(raw)
	if len(rows) == 0 {
		return nil, &DataLoadError{Source: source, Err: errors.New("no usable rows after cleaning")}
	}

	strict := make(map[int]bool, len(RequiredColumns))
	for _, c := range RequiredColumns {
		strict[index[c]] = true
	}
	matrix, err := encodeMatrix(header, rows, index[ColTarget], strict)
	if err != nil {
		return nil, &DataLoadError{Source: source, Err: err}
	}

	records := make([]StudentRecord, len(rows))
	for i := range rows {
		rec, err := buildRecord(matrix[i], index)
		if err != nil {
			return nil, &DataLoadError{Source: source, Err: fmt.Errorf("row %d: %w", i+1, err)}
		}
		rec.Row = i + 1
		records[i] = rec
	}

	return newDataset(source, header, matrix, records, report), nil
}

func normalizeHeader(header []string) []string {
	out := make([]string, len(header))
	for i, h := range header {
		h = strings.TrimPrefix(h, "\ufeff")
		out[i] = strings.TrimSpace(h)
	}
	return out
}

func columnIndex(header []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, h := range header {
		if _, dup := index[h]; dup {
			return nil, fmt.Errorf("duplicate column %q", h)
		}
		index[h] = i
	}
	var missing []string
	for _, c := range RequiredColumns {
		if _, ok := index[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing columns: %s", strings.Join(missing, ", "))
	}
	return index, nil
}

// encodeMatrix converts every column to float64. Columns that do not parse
// as numbers are label-encoded in sorted order of their distinct values;
// the Target column always uses the Outcome encoding. Strict columns must
// be numeric.
func encodeMatrix(header []string, rows [][]string, targetCol int, strict map[int]bool) ([][]float64, error) {
	matrix := make([][]float64, len(rows))
	for i := range matrix {
		matrix[i] = make([]float64, len(header))
	}

	for c := range header {
		if c == targetCol {
			for i, row := range rows {
				o, err := ParseOutcome(row[c])
				if err != nil {
					return nil, fmt.Errorf("row %d: %w", i+1, err)
				}
				matrix[i][c] = float64(o)
			}
			continue
		}

		numeric := true
		for i, row := range rows {
			v, err := strconv.ParseFloat(strings.TrimSpace(row[c]), 64)
			if err != nil {
				if strict[c] {
					return nil, fmt.Errorf("row %d: column %q: %w", i+1, header[c], err)
				}
				numeric = false
				break
			}
			matrix[i][c] = v
		}
		if numeric {
			continue
		}

		labels := distinct(rows, c)
		codes := make(map[string]float64, len(labels))
		for k, l := range labels {
			codes[l] = float64(k)
		}
		for i, row := range rows {
			matrix[i][c] = codes[strings.TrimSpace(row[c])]
		}
	}
	return matrix, nil
}

func distinct(rows [][]string, col int) []string {
	set := make(map[string]struct{})
	for _, row := range rows {
		set[strings.TrimSpace(row[col])] = struct{}{}
	}
	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

func buildRecord(values []float64, index map[string]int) (StudentRecord, error) {
	outcome := Outcome(int(values[index[ColTarget]]))
	if !outcome.Known() {
		return StudentRecord{}, fmt.Errorf("invalid outcome code %v", values[index[ColTarget]])
	}
	return StudentRecord{
		Course:             int(values[index[ColCourse]]),
		Age:                values[index[ColAge]],
		AdmissionGrade:     values[index[ColAdmissionGrade]],
		ScholarshipHolder:  values[index[ColScholarshipHolder]] >= 0.5,
		FirstSemesterGrade: values[index[ColFirstSemesterGrade]],
		TuitionUpToDate:    values[index[ColTuitionUpToDate]] >= 0.5,
		Outcome:            outcome,
	}, nil
}
