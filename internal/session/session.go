// Package session holds the state of one dashboard run: the loaded
// dataset, the trained risk model, and the assessments made along the way.
package session

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/dropwatch/internal/advisor"
	"github.com/abhisek/dropwatch/internal/dataset"
	"github.com/abhisek/dropwatch/internal/features"
	"github.com/abhisek/dropwatch/internal/model"
	"github.com/abhisek/dropwatch/internal/store"
)

// DefaultSampleSize is the number of students shown on the recommendation
// page when Options.SampleSize is zero.
const DefaultSampleSize = 5

// Options configures a Session. Data and Models are required.
type Options struct {
	Data    *dataset.Dataset
	Models  *model.Service
	Events  store.EventRepo  // nil = assessments are not recorded
	Advisor *advisor.Service // nil = no counselor notes

	SampleSize int
	SampleSeed uint64

	// Warnings receives non-fatal problems. Defaults to os.Stderr.
	Warnings io.Writer
}

// Session is one dashboard run. It is safe for concurrent use.
type Session struct {
	ID        string
	StartedAt time.Time

	data     *dataset.Dataset
	ranges   [features.Count]features.Range
	models   *model.Service
	events   store.EventRepo
	advisor  *advisor.Service
	sample   int
	seed     uint64
	warnings io.Writer

	mu      sync.Mutex
	trained bool
	result  *model.TrainResult
	err     error
}

// New creates a Session with a fresh ID.
func New(opts Options) *Session {
	sample := opts.SampleSize
	if sample <= 0 {
		sample = DefaultSampleSize
	}
	w := opts.Warnings
	if w == nil {
		w = os.Stderr
	}
	return &Session{
		ID:        uuid.NewString(),
		StartedAt: time.Now(),
		data:      opts.Data,
		ranges:    features.Ranges(opts.Data),
		models:    opts.Models,
		events:    opts.Events,
		advisor:   opts.Advisor,
		sample:    sample,
		seed:      opts.SampleSeed,
		warnings:  w,
	}
}

// Data returns the cleaned dataset.
func (s *Session) Data() *dataset.Dataset { return s.data }

// Ranges returns the observed feature ranges of the dataset.
func (s *Session) Ranges() [features.Count]features.Range { return s.ranges }

// Advisor returns the counselor-note service, which may be disabled.
func (s *Session) Advisor() *advisor.Service { return s.advisor }

// Events returns the event store, or nil.
func (s *Session) Events() store.EventRepo { return s.events }

// Train fits the risk model once per session, or loads it from the model
// cache. Later calls return the first outcome; concurrent callers wait.
func (s *Session) Train(ctx context.Context) (*model.TrainResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.trained {
		return s.result, s.err
	}
	s.result, s.err = s.models.Train(ctx, s.data)
	s.trained = true
	return s.result, s.err
}

// Status reports the training outcome without blocking. ok is false while
// no Train call has finished.
func (s *Session) Status() (res *model.TrainResult, err error, ok bool) {
	if !s.mu.TryLock() {
		return nil, nil, false
	}
	defer s.mu.Unlock()
	return s.result, s.err, s.trained
}

func (s *Session) warnf(format string, args ...any) {
	fmt.Fprintf(s.warnings, "warning: "+format+"\n", args...)
}

// StatusText summarizes the model state for display: "training",
// "unavailable", "cached" or "ready".
func (s *Session) StatusText() string {
	res, err, ok := s.Status()
	switch {
	case !ok:
		return "training"
	case err != nil:
		return "unavailable"
	case res.CacheHit:
		return "cached"
	default:
		return "ready"
	}
}
