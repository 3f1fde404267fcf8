package model

import (
	"math"

	"github.com/golang/groupcache/lru"

	"github.com/abhisek/dropwatch/internal/features"
)

func rbf(gamma float64, a, b features.Vector) float64 {
	var d2 float64
	for i := range a {
		d := a[i] - b[i]
		d2 += d * d
	}
	return math.Exp(-gamma * d2)
}

// qMatrix serves rows of Q[i][j] = y[i]*y[j]*K(x[i], x[j]) from a bounded
// LRU cache.
type qMatrix struct {
	x     []features.Vector
	y     []float64
	gamma float64
	rows  *lru.Cache
	diag  []float64
}

func newQMatrix(x []features.Vector, y []float64, gamma float64, cacheRows int) *qMatrix {
	if cacheRows < 2 {
		cacheRows = 2
	}
	q := &qMatrix{
		x:     x,
		y:     y,
		gamma: gamma,
		rows:  lru.New(cacheRows),
		diag:  make([]float64, len(x)),
	}
	for i := range q.diag {
		q.diag[i] = 1 // K(x, x) = 1 for the RBF kernel
	}
	return q
}

func (q *qMatrix) row(i int) []float64 {
	if v, ok := q.rows.Get(i); ok {
		return v.([]float64)
	}
	r := make([]float64, len(q.x))
	for j := range q.x {
		r[j] = q.y[i] * q.y[j] * rbf(q.gamma, q.x[i], q.x[j])
	}
	q.rows.Add(i, r)
	return r
}

// scaleGamma mirrors the "scale" heuristic: 1 / (nFeatures * Var(X)) over
// every entry of the design matrix.
func scaleGamma(x []features.Vector) float64 {
	n := float64(len(x) * features.Count)
	if n == 0 {
		return 1.0 / features.Count
	}
	var sum, sumSq float64
	for _, v := range x {
		for _, e := range v {
			sum += e
			sumSq += e * e
		}
	}
	mean := sum / n
	variance := sumSq/n - mean*mean
	if variance <= 0 {
		return 1.0 / features.Count
	}
	return 1 / (features.Count * variance)
}
