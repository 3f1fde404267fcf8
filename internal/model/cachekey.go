package model

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// CacheKey derives the artifact cache key from everything that determines
// a trained model: the cleaned data, the feature selection and the training
// configuration.
func CacheKey(datasetFingerprint, featureSetID string, cfg Config) string {
	cfg = cfg.withDefaults()
	h := sha256.New()
	fmt.Fprintf(h, "artifact:v%d\x00%s\x00%s\x00", ArtifactVersion, datasetFingerprint, featureSetID)
	fmt.Fprintf(h, "C=%g;gamma=%g;tol=%g;iter=%d;folds=%d;test=%g;seed=%d;max=%d",
		cfg.C, cfg.Gamma, cfg.Tolerance, cfg.MaxIterations, cfg.ProbabilityFolds,
		cfg.TestFraction, cfg.Seed, cfg.MaxTrainRows)
	return hex.EncodeToString(h.Sum(nil))
}
