package model

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/dropwatch/internal/dataset"
	"github.com/abhisek/dropwatch/internal/features"
	"github.com/abhisek/dropwatch/internal/modelcache"
)

func trainedModel(t *testing.T) *Model {
	t.Helper()
	m, err := Fit(syntheticRecords(t, 90, 11), testConfig())
	require.NoError(t, err)
	return m
}

func TestArtifact_RestoresPredictions(t *testing.T) {
	m := trainedModel(t)
	payload, err := Encode(m)
	require.NoError(t, err)

	restored, err := Decode(payload)
	require.NoError(t, err)
	for _, r := range []dataset.StudentRecord{clearDropout(), clearGraduate()} {
		assert.InDelta(t, m.Probability(r), restored.Probability(r), 1e-12)
	}
	assert.Equal(t, m.SupportVectors(), restored.SupportVectors())
	assert.Equal(t, m.Config(), restored.Config())
}

func mutateArtifact(t *testing.T, m *Model, edit func(a map[string]any)) []byte {
	t.Helper()
	payload, err := Encode(m)
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(payload, &doc))
	edit(doc)
	out, err := json.Marshal(doc)
	require.NoError(t, err)
	return out
}

func TestDecode_Errors(t *testing.T) {
	m := trainedModel(t)
	tests := []struct {
		name    string
		payload []byte
		want    string
	}{
		{"not json", []byte("{nope"), "invalid JSON"},
		{"missing coef", mutateArtifact(t, m, func(a map[string]any) { delete(a, "coef") }), "schema validation"},
		{"short vector", mutateArtifact(t, m, func(a map[string]any) { a["scaler_mean"] = []float64{1, 2} }), "schema validation"},
		{"bad version", mutateArtifact(t, m, func(a map[string]any) { a["version"] = 99 }), "unsupported artifact version"},
		{"feature set", mutateArtifact(t, m, func(a map[string]any) { a["feature_set"] = "v0:other" }), "feature set mismatch"},
		{"count mismatch", mutateArtifact(t, m, func(a map[string]any) { a["coef"] = []float64{1} }), "counts differ"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.payload)
			var le *ArtifactLoadError
			require.ErrorAs(t, err, &le)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestCacheKey(t *testing.T) {
	cfg := DefaultConfig()
	k := CacheKey("fp", features.SetID, cfg)
	assert.Len(t, k, 64)
	assert.Equal(t, k, CacheKey("fp", features.SetID, cfg))
	assert.NotEqual(t, k, CacheKey("fp2", features.SetID, cfg))
	assert.NotEqual(t, k, CacheKey("fp", "v2:x", cfg))

	cfg2 := cfg
	cfg2.C = 10
	assert.NotEqual(t, k, CacheKey("fp", features.SetID, cfg2))

	// Zero fields resolve to defaults.
	assert.Equal(t, k, CacheKey("fp", features.SetID, Config{Seed: 42}))
}

func TestService_TrainCachesModel(t *testing.T) {
	ctx := context.Background()
	ds := dataset.FromRecords("synthetic", syntheticRecords(t, 120, 21))
	cache := modelcache.WithStats(modelcache.NewMemoryCache())
	svc := NewService(cache, testConfig())

	first, err := svc.Train(ctx, ds)
	require.NoError(t, err)
	assert.False(t, first.CacheHit)
	assert.Equal(t, 30, first.Evaluation.TestSize)

	second, err := svc.Train(ctx, ds)
	require.NoError(t, err)
	assert.True(t, second.CacheHit)
	assert.Equal(t, first.Key, second.Key)
	assert.Equal(t, first.Evaluation, second.Evaluation)
	assert.InDelta(t, first.Model.Probability(clearDropout()), second.Model.Probability(clearDropout()), 1e-12)
	assert.Equal(t, ds.Fingerprint(), second.Model.DatasetFingerprint())

	stats := cache.Stats()
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)

	loaded, err := svc.Load(ctx, ds)
	require.NoError(t, err)
	assert.NotNil(t, loaded.Evaluation())
}

func TestService_LoadMiss(t *testing.T) {
	ds := dataset.FromRecords("synthetic", syntheticRecords(t, 30, 1))
	svc := NewService(modelcache.NewMemoryCache(), testConfig())

	_, err := svc.Load(context.Background(), ds)
	var le *ArtifactLoadError
	require.ErrorAs(t, err, &le)
	assert.ErrorIs(t, err, modelcache.ErrCacheMiss)
	assert.Equal(t, svc.Key(ds), le.Key)
}

func TestService_CorruptEntryRetrains(t *testing.T) {
	ctx := context.Background()
	ds := dataset.FromRecords("synthetic", syntheticRecords(t, 60, 2))
	cache := modelcache.NewMemoryCache()
	svc := NewService(cache, testConfig())
	var warnings strings.Builder
	svc.Warnings = &warnings

	require.NoError(t, cache.Put(ctx, svc.Key(ds), []byte("garbage")))

	res, err := svc.Train(ctx, ds)
	require.NoError(t, err)
	assert.False(t, res.CacheHit)
	assert.Contains(t, warnings.String(), "ignoring cached model")

	_, err = svc.Load(ctx, ds)
	assert.NoError(t, err)

	require.NoError(t, svc.Forget(ctx, ds))
	_, err = svc.Load(ctx, ds)
	assert.Error(t, err)
}

func TestService_FitErrorPropagates(t *testing.T) {
	recs := syntheticRecords(t, 30, 1)
	for i := range recs {
		recs[i].Outcome = dataset.OutcomeGraduate
	}
	svc := NewService(modelcache.NewMemoryCache(), testConfig())
	_, err := svc.Train(context.Background(), dataset.FromRecords("one-class", recs))
	var fitErr *ModelFitError
	assert.ErrorAs(t, err, &fitErr)
}
