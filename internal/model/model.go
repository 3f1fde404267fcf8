// Package model trains and serves the dropout risk scorer: standardized
// features, an RBF support vector classifier and a Platt sigmoid that turns
// decision values into probabilities.
package model

import (
	"time"

	"github.com/abhisek/dropwatch/internal/dataset"
	"github.com/abhisek/dropwatch/internal/features"
	"github.com/abhisek/dropwatch/internal/risk"
)

// Model is a trained risk scorer. It is safe for concurrent use.
type Model struct {
	scaler  features.Scaler
	svm     *svm
	sigmoid platt

	config      Config
	featureSet  string
	trainedRows int
	createdAt   time.Time
	evaluation  *Evaluation
	fingerprint string
}

// Fit trains a model on records. Dropout is the positive class.
func Fit(records []dataset.StudentRecord, cfg Config) (*Model, error) {
	cfg = cfg.withDefaults()
	if len(records) == 0 {
		return nil, &ModelFitError{Err: ErrEmptyTable}
	}

	y := make([]float64, len(records))
	var pos int
	for i, r := range records {
		if r.IsDropout() {
			y[i] = 1
			pos++
		} else {
			y[i] = -1
		}
	}
	if pos == 0 || pos == len(records) {
		return nil, &ModelFitError{Rows: len(records), Err: ErrSingleClass}
	}

	raw := features.ExtractAll(records)
	scaler, err := features.FitScaler(raw)
	if err != nil {
		return nil, &ModelFitError{Rows: len(records), Err: err}
	}
	x := scaler.TransformAll(raw)

	gamma := cfg.Gamma
	if gamma <= 0 {
		gamma = scaleGamma(x)
	}
	params := svmParams{
		C:             cfg.C,
		Gamma:         gamma,
		Tolerance:     cfg.Tolerance,
		MaxIterations: cfg.MaxIterations,
		CacheRows:     cfg.CacheRows,
	}

	dec := crossValidatedDecisions(x, y, params, cfg.ProbabilityFolds, cfg.Seed)
	return &Model{
		scaler:      scaler,
		svm:         trainSVM(x, y, params),
		sigmoid:     fitPlatt(dec, y),
		config:      cfg,
		featureSet:  features.SetID,
		trainedRows: len(records),
		createdAt:   time.Now().UTC(),
	}, nil
}

// DecisionValue returns the signed distance of rec from the separating
// surface in kernel space. Positive values lean towards dropout.
func (m *Model) DecisionValue(rec dataset.StudentRecord) float64 {
	return m.svm.decision(m.scaler.Transform(features.Extract(rec)))
}

// Probability returns P(dropout) for rec, in [0, 1].
func (m *Model) Probability(rec dataset.StudentRecord) float64 {
	return m.sigmoid.probability(m.DecisionValue(rec))
}

// Assess scores rec and buckets the probability.
func (m *Model) Assess(rec dataset.StudentRecord) risk.Assessment {
	return risk.Assess(m.Probability(rec))
}

// PredictDropout reports the classifier's hard decision for rec.
func (m *Model) PredictDropout(rec dataset.StudentRecord) bool {
	return m.DecisionValue(rec) > 0
}

// Config returns the configuration the model was trained with.
func (m *Model) Config() Config { return m.config }

// SupportVectors returns the number of support vectors.
func (m *Model) SupportVectors() int { return len(m.svm.Vectors) }

// TrainedRows returns the size of the training table.
func (m *Model) TrainedRows() int { return m.trainedRows }

// CreatedAt returns when the model was trained.
func (m *Model) CreatedAt() time.Time { return m.createdAt }

// Evaluation returns the held-out evaluation, or nil if none was run.
func (m *Model) Evaluation() *Evaluation { return m.evaluation }

// DatasetFingerprint returns the fingerprint of the dataset the model was
// trained from, if known.
func (m *Model) DatasetFingerprint() string { return m.fingerprint }
