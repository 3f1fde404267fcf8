package dataset

import "fmt"

// DataLoadError reports a dataset that could not be read or does not match
// the expected schema. It is fatal for the dashboard session.
type DataLoadError struct {
	Source string
	Line   int // 0 when the failure is not tied to a line
	Err    error
}

func (e *DataLoadError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("load dataset %s: line %d: %v", e.Source, e.Line, e.Err)
	}
	return fmt.Sprintf("load dataset %s: %v", e.Source, e.Err)
}

func (e *DataLoadError) Unwrap() error { return e.Err }
