package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/abhisek/dropwatch/internal/advisor"
	"github.com/abhisek/dropwatch/internal/config"
	"github.com/abhisek/dropwatch/internal/dataset"
	"github.com/abhisek/dropwatch/internal/llm"
	"github.com/abhisek/dropwatch/internal/model"
	"github.com/abhisek/dropwatch/internal/modelcache"
	"github.com/abhisek/dropwatch/internal/session"
	"github.com/abhisek/dropwatch/internal/store"
)

// runtime holds the dependencies shared by the data commands.
type runtime struct {
	cfg     config.Config
	store   *store.Store
	cache   *modelcache.Counting
	backend string
	models  *model.Service
	data    *dataset.Dataset
	closers []func() error
}

// runtimeOptions controls what openRuntime builds.
type runtimeOptions struct {
	// Warnings receives non-fatal problems. The TUI discards them since
	// stderr output would corrupt the screen.
	Warnings io.Writer
}

// openRuntime loads the configuration, opens the store and the model
// cache. The dataset is loaded separately by loadData.
func openRuntime(cmd *cobra.Command, opts runtimeOptions) (*runtime, error) {
	st, cfg, err := openStore(cmd)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	rt := &runtime{cfg: cfg, store: st}
	rt.closers = append(rt.closers, st.Close)

	cache, backend, closeCache := newCache(cmd.Context(), cfg.Cache, st, opts.Warnings)
	if closeCache != nil {
		rt.closers = append(rt.closers, closeCache)
	}
	rt.cache = modelcache.WithStats(cache)
	rt.backend = backend
	rt.models = model.NewService(rt.cache, cfg.Model)
	rt.models.Warnings = opts.Warnings
	return rt, nil
}

// newCache builds the configured model cache. An unreachable Redis falls
// back to the sqlite artifact table with a warning.
func newCache(ctx context.Context, cfg config.CacheConfig, st *store.Store, warnings io.Writer) (modelcache.Cache, string, func() error) {
	switch cfg.Backend {
	case config.BackendMemory:
		return modelcache.NewMemoryCache(), config.BackendMemory, nil
	case config.BackendRedis:
		rc, err := modelcache.NewRedisCache(ctx, cfg.Redis)
		if err == nil {
			return rc, config.BackendRedis, rc.Close
		}
		fmt.Fprintf(warnings, "warning: redis cache unavailable, using sqlite: %v\n", err)
	}
	return st.ArtifactRepo(), config.BackendSQLite, nil
}

// loadData reads and cleans the student table.
func (rt *runtime) loadData() error {
	ds, err := dataset.Load(rt.cfg.DataPath)
	if err != nil {
		return err
	}
	rt.data = ds
	return nil
}

// newAdvisor builds the counselor-note service. Without a configured LLM
// provider it returns a disabled service.
func (rt *runtime) newAdvisor(ctx context.Context, warnings io.Writer) *advisor.Service {
	provider, err := llm.NewProviderFromConfig(ctx, rt.cfg.LLM, rt.store.EventRepo(), warnings)
	if err != nil {
		fmt.Fprintf(warnings, "warning: LLM provider not configured: %v\n", err)
		return nil
	}
	if provider == nil {
		return nil
	}
	return advisor.NewService(provider, rt.cfg.Advisor)
}

// newSession builds a session over the loaded dataset.
func (rt *runtime) newSession(adv *advisor.Service, warnings io.Writer) *session.Session {
	return session.New(session.Options{
		Data:       rt.data,
		Models:     rt.models,
		Events:     rt.store.EventRepo(),
		Advisor:    adv,
		SampleSize: rt.cfg.SampleSize,
		SampleSeed: rt.cfg.SampleSeed,
		Warnings:   warnings,
	})
}

// Close releases the cache and then the store, reporting every failure.
func (rt *runtime) Close() error {
	var errs []error
	for i := len(rt.closers) - 1; i >= 0; i-- {
		errs = append(errs, rt.closers[i]())
	}
	return errors.Join(errs...)
}

// closeRuntime is deferred by the commands; a failed close joins the
// command's error.
func closeRuntime(rt *runtime, err *error) {
	*err = errors.Join(*err, rt.Close())
}

// openSession is openRuntime plus the dataset and a session, for the
// commands that score students.
func openSession(cmd *cobra.Command, withAdvisor bool) (*runtime, *session.Session, error) {
	w := cmd.ErrOrStderr()
	rt, err := openRuntime(cmd, runtimeOptions{Warnings: w})
	if err != nil {
		return nil, nil, err
	}
	if err := rt.loadData(); err != nil {
		return nil, nil, errors.Join(err, rt.Close())
	}
	var adv *advisor.Service
	if withAdvisor {
		adv = rt.newAdvisor(cmd.Context(), w)
	}
	return rt, rt.newSession(adv, w), nil
}
