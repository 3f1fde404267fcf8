// Package sessiontest builds sessions over synthetic data for screen and
// command tests.
package sessiontest

import (
	"io"
	"testing"

	"github.com/abhisek/dropwatch/internal/advisor"
	"github.com/abhisek/dropwatch/internal/dataset"
	"github.com/abhisek/dropwatch/internal/dataset/datasettest"
	"github.com/abhisek/dropwatch/internal/model"
	"github.com/abhisek/dropwatch/internal/modelcache"
	"github.com/abhisek/dropwatch/internal/session"
	"github.com/abhisek/dropwatch/internal/store"
)

// Options tweak the test session.
type Options struct {
	Rows    int // default 60
	Seed    uint64
	Events  store.EventRepo
	Advisor *advisor.Service
	Data    *dataset.Dataset // overrides Rows and Seed
}

// New builds a session with an in-memory model cache. Warnings are
// discarded.
func New(t testing.TB, opts Options) *session.Session {
	t.Helper()
	ds := opts.Data
	if ds == nil {
		rows := opts.Rows
		if rows == 0 {
			rows = 60
		}
		ds = datasettest.Dataset(rows, opts.Seed)
	}
	cfg := model.DefaultConfig()
	cfg.CacheRows = 64
	svc := model.NewService(modelcache.NewMemoryCache(), cfg)
	svc.Warnings = io.Discard
	return session.New(session.Options{
		Data:     ds,
		Models:   svc,
		Events:   opts.Events,
		Advisor:  opts.Advisor,
		Warnings: io.Discard,
	})
}
