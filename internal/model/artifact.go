package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/abhisek/dropwatch/internal/features"
)

// ArtifactVersion is bumped whenever the artifact layout changes.
const ArtifactVersion = 1

// Artifact is the persisted form of a Model.
type Artifact struct {
	Version            int               `json:"version"`
	FeatureSet         string            `json:"feature_set"`
	DatasetFingerprint string            `json:"dataset_fingerprint"`
	CreatedAt          time.Time         `json:"created_at"`
	TrainedRows        int               `json:"trained_rows"`
	Config             Config            `json:"config"`
	ScalerMean         features.Vector   `json:"scaler_mean"`
	ScalerScale        features.Vector   `json:"scaler_scale"`
	Gamma              float64           `json:"gamma"`
	Rho                float64           `json:"rho"`
	SupportVectors     []features.Vector `json:"support_vectors"`
	Coef               []float64         `json:"coef"`
	PlattA             float64           `json:"platt_a"`
	PlattB             float64           `json:"platt_b"`
	Evaluation         *Evaluation       `json:"evaluation,omitempty"`
}

const artifactSchema = `{
  "type": "object",
  "required": ["version", "feature_set", "scaler_mean", "scaler_scale", "gamma", "rho",
               "support_vectors", "coef", "platt_a", "platt_b"],
  "properties": {
    "version": {"type": "integer", "minimum": 1},
    "feature_set": {"type": "string", "minLength": 1},
    "dataset_fingerprint": {"type": "string"},
    "trained_rows": {"type": "integer", "minimum": 0},
    "scaler_mean": {"$ref": "#/$defs/vector"},
    "scaler_scale": {"$ref": "#/$defs/vector"},
    "gamma": {"type": "number", "exclusiveMinimum": 0},
    "rho": {"type": "number"},
    "support_vectors": {"type": "array", "minItems": 1, "items": {"$ref": "#/$defs/vector"}},
    "coef": {"type": "array", "minItems": 1, "items": {"type": "number"}},
    "platt_a": {"type": "number"},
    "platt_b": {"type": "number"}
  },
  "$defs": {
    "vector": {"type": "array", "minItems": 5, "maxItems": 5, "items": {"type": "number"}}
  }
}`

var compiledArtifactSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(artifactSchema))
	if err != nil {
		return nil, fmt.Errorf("parse artifact schema: %w", err)
	}
	c := jsonschema.NewCompiler()
	const url = "schema://model-artifact.json"
	if err := c.AddResource(url, doc); err != nil {
		return nil, fmt.Errorf("add artifact schema: %w", err)
	}
	return c.Compile(url)
})

// ToArtifact captures m in its persisted form.
func (m *Model) ToArtifact() Artifact {
	return Artifact{
		Version:            ArtifactVersion,
		FeatureSet:         m.featureSet,
		DatasetFingerprint: m.fingerprint,
		CreatedAt:          m.createdAt,
		TrainedRows:        m.trainedRows,
		Config:             m.config,
		ScalerMean:         m.scaler.Mean,
		ScalerScale:        m.scaler.Scale,
		Gamma:              m.svm.Gamma,
		Rho:                m.svm.Rho,
		SupportVectors:     m.svm.Vectors,
		Coef:               m.svm.Coef,
		PlattA:             m.sigmoid.A,
		PlattB:             m.sigmoid.B,
		Evaluation:         m.evaluation,
	}
}

// Encode serializes m as a JSON artifact.
func Encode(m *Model) ([]byte, error) {
	return json.Marshal(m.ToArtifact())
}

// Decode validates and restores a model from a JSON artifact. Any problem
// is reported as *ArtifactLoadError.
func Decode(payload []byte) (*Model, error) {
	schema, err := compiledArtifactSchema()
	if err != nil {
		return nil, &ArtifactLoadError{Err: err}
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(payload))
	if err != nil {
		return nil, &ArtifactLoadError{Err: fmt.Errorf("invalid JSON: %w", err)}
	}
	if err := schema.Validate(doc); err != nil {
		return nil, &ArtifactLoadError{Err: fmt.Errorf("schema validation failed: %w", err)}
	}

	var a Artifact
	if err := json.Unmarshal(payload, &a); err != nil {
		return nil, &ArtifactLoadError{Err: err}
	}
	switch {
	case a.Version != ArtifactVersion:
		return nil, &ArtifactLoadError{Err: fmt.Errorf("unsupported artifact version %d", a.Version)}
	case a.FeatureSet != features.SetID:
		return nil, &ArtifactLoadError{Err: fmt.Errorf("feature set mismatch: %q", a.FeatureSet)}
	case len(a.SupportVectors) != len(a.Coef):
		return nil, &ArtifactLoadError{Err: errors.New("support vector and coefficient counts differ")}
	}
	for _, s := range a.ScalerScale {
		if s == 0 {
			return nil, &ArtifactLoadError{Err: errors.New("zero scaler scale")}
		}
	}

	return &Model{
		scaler: features.Scaler{Mean: a.ScalerMean, Scale: a.ScalerScale},
		svm: &svm{
			Vectors: a.SupportVectors,
			Coef:    a.Coef,
			Rho:     a.Rho,
			Gamma:   a.Gamma,
		},
		sigmoid:     platt{A: a.PlattA, B: a.PlattB},
		config:      a.Config,
		featureSet:  a.FeatureSet,
		trainedRows: a.TrainedRows,
		createdAt:   a.CreatedAt,
		evaluation:  a.Evaluation,
		fingerprint: a.DatasetFingerprint,
	}, nil
}
