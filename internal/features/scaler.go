package features

import (
	"errors"
	"math"
)

// Scaler standardizes vectors to zero mean and unit variance using
// statistics of the data it was fitted on.
type Scaler struct {
	Mean  Vector
	Scale Vector
}

// FitScaler computes population mean and standard deviation per feature.
// A constant feature gets scale 1 so it maps to 0.
func FitScaler(vecs []Vector) (Scaler, error) {
	if len(vecs) == 0 {
		return Scaler{}, errors.New("fit scaler: no samples")
	}
	var s Scaler
	n := float64(len(vecs))
	for f := range Count {
		var sum float64
		for _, v := range vecs {
			sum += v[f]
		}
		mean := sum / n
		var ss float64
		for _, v := range vecs {
			d := v[f] - mean
			ss += d * d
		}
		std := math.Sqrt(ss / n)
		if std == 0 {
			std = 1
		}
		s.Mean[f] = mean
		s.Scale[f] = std
	}
	return s, nil
}

// Transform standardizes a single vector.
func (s Scaler) Transform(v Vector) Vector {
	var out Vector
	for f := range Count {
		out[f] = (v[f] - s.Mean[f]) / s.Scale[f]
	}
	return out
}

// TransformAll standardizes every vector.
func (s Scaler) TransformAll(vecs []Vector) []Vector {
	out := make([]Vector, len(vecs))
	for i, v := range vecs {
		out[i] = s.Transform(v)
	}
	return out
}
