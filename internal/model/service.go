package model

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/abhisek/dropwatch/internal/dataset"
	"github.com/abhisek/dropwatch/internal/features"
	"github.com/abhisek/dropwatch/internal/modelcache"
)

// TrainResult is the outcome of Service.Train.
type TrainResult struct {
	Model      *Model
	Evaluation Evaluation
	Key        string
	CacheHit   bool
}

// Service trains models on demand and persists them in a cache keyed by
// dataset fingerprint, feature set and configuration.
type Service struct {
	cache  modelcache.Cache
	config Config

	// Warnings receives non-fatal problems such as corrupt cache entries.
	Warnings io.Writer
}

// NewService creates a Service backed by cache.
func NewService(cache modelcache.Cache, cfg Config) *Service {
	return &Service{cache: cache, config: cfg.withDefaults(), Warnings: os.Stderr}
}

// Config returns the training configuration.
func (s *Service) Config() Config { return s.config }

// Key returns the cache key for ds under the service configuration.
func (s *Service) Key(ds *dataset.Dataset) string {
	return CacheKey(ds.Fingerprint(), features.SetID, s.config)
}

// Train returns the cached model for ds, or fits, evaluates and stores a
// new one. A corrupt cache entry is reported and replaced.
func (s *Service) Train(ctx context.Context, ds *dataset.Dataset) (*TrainResult, error) {
	key := s.Key(ds)

	m, err := s.lookup(ctx, key)
	if err == nil {
		res := &TrainResult{Model: m, Key: key, CacheHit: true}
		if ev := m.Evaluation(); ev != nil {
			res.Evaluation = *ev
		}
		return res, nil
	}
	var loadErr *ArtifactLoadError
	if errors.As(err, &loadErr) && !errors.Is(err, modelcache.ErrCacheMiss) {
		s.warnf("ignoring cached model: %v", err)
	}

	train, test := StratifiedSplit(ds.Records(), s.config.TestFraction, s.config.Seed)
	if s.config.MaxTrainRows > 0 && len(train) > s.config.MaxTrainRows {
		frac := 1 - float64(s.config.MaxTrainRows)/float64(len(train))
		train, _ = StratifiedSplit(train, frac, s.config.Seed)
	}

	m, err = Fit(train, s.config)
	if err != nil {
		return nil, err
	}
	ev := Evaluate(m, test)
	m.evaluation = &ev
	m.fingerprint = ds.Fingerprint()

	payload, err := Encode(m)
	if err != nil {
		return nil, fmt.Errorf("encode model: %w", err)
	}
	if err := s.cache.Put(ctx, key, payload); err != nil {
		s.warnf("failed to cache model: %v", err)
	}
	return &TrainResult{Model: m, Evaluation: ev, Key: key}, nil
}

// Load returns the cached model for ds without training. A missing or
// unusable artifact is reported as *ArtifactLoadError.
func (s *Service) Load(ctx context.Context, ds *dataset.Dataset) (*Model, error) {
	return s.lookup(ctx, s.Key(ds))
}

// Forget removes the cached model for ds.
func (s *Service) Forget(ctx context.Context, ds *dataset.Dataset) error {
	return s.cache.Delete(ctx, s.Key(ds))
}

func (s *Service) lookup(ctx context.Context, key string) (*Model, error) {
	payload, err := s.cache.Get(ctx, key)
	if err != nil {
		return nil, &ArtifactLoadError{Key: key, Err: err}
	}
	m, err := Decode(payload)
	if err != nil {
		var le *ArtifactLoadError
		if errors.As(err, &le) {
			le.Key = key
		}
		return nil, err
	}
	return m, nil
}

func (s *Service) warnf(format string, args ...any) {
	if s.Warnings == nil {
		return
	}
	fmt.Fprintf(s.Warnings, "warning: "+format+"\n", args...)
}
