package model

import (
	"errors"
	"fmt"
)

// ErrSingleClass is wrapped by ModelFitError when the training table lacks
// either dropouts or non-dropouts.
var ErrSingleClass = errors.New("training table contains a single class")

// ErrEmptyTable is wrapped by ModelFitError when there is nothing to train on.
var ErrEmptyTable = errors.New("training table is empty")

// ModelFitError indicates the classifier could not be trained. Callers
// show "no prediction available" instead of a probability.
type ModelFitError struct {
	Rows int
	Err  error
}

func (e *ModelFitError) Error() string {
	return fmt.Sprintf("fit model on %d rows: %v", e.Rows, e.Err)
}

func (e *ModelFitError) Unwrap() error { return e.Err }

// ArtifactLoadError indicates a persisted model could not be used, either
// because none exists for the key or because the payload is corrupt.
type ArtifactLoadError struct {
	Key string
	Err error
}

func (e *ArtifactLoadError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("load model artifact: %v", e.Err)
	}
	return fmt.Sprintf("load model artifact %s: %v", shortKey(e.Key), e.Err)
}

func (e *ArtifactLoadError) Unwrap() error { return e.Err }

func shortKey(key string) string {
	if len(key) > 12 {
		return key[:12]
	}
	return key
}
