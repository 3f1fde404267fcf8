package model

import (
	"math"

	"github.com/abhisek/dropwatch/internal/features"
)

const tau = 1e-12

type svmParams struct {
	C             float64
	Gamma         float64
	Tolerance     float64
	MaxIterations int
	CacheRows     int
}

// svm is a trained binary RBF support vector classifier. Positive decision
// values favour the +1 class.
type svm struct {
	Vectors []features.Vector
	Coef    []float64 // alpha[i] * y[i]
	Rho     float64
	Gamma   float64
}

func (m *svm) decision(x features.Vector) float64 {
	var sum float64
	for i, sv := range m.Vectors {
		sum += m.Coef[i] * rbf(m.Gamma, sv, x)
	}
	return sum - m.Rho
}

// trainSVM solves the C-SVC dual with sequential minimal optimization. The
// working pair is the maximal violating index plus the partner that gives
// the largest second-order decrease of the objective. y holds +1/-1 labels.
func trainSVM(x []features.Vector, y []float64, p svmParams) *svm {
	n := len(x)
	q := newQMatrix(x, y, p.Gamma, p.CacheRows)
	alpha := make([]float64, n)
	grad := make([]float64, n)
	for i := range grad {
		grad[i] = -1
	}
	C := p.C

	maxIter := p.MaxIterations
	if maxIter <= 0 {
		maxIter = max(10000000, 100*n)
	}

	for iter := 0; iter < maxIter; iter++ {
		i, j, ok := selectWorkingSet(alpha, grad, y, q, C, p.Tolerance)
		if !ok {
			break
		}
		qi := q.row(i)
		qj := q.row(j)
		oldI, oldJ := alpha[i], alpha[j]

		if y[i] != y[j] {
			quad := q.diag[i] + q.diag[j] + 2*qi[j]
			if quad <= 0 {
				quad = tau
			}
			delta := (-grad[i] - grad[j]) / quad
			diff := alpha[i] - alpha[j]
			alpha[i] += delta
			alpha[j] += delta
			if diff > 0 {
				if alpha[j] < 0 {
					alpha[j] = 0
					alpha[i] = diff
				}
			} else if alpha[i] < 0 {
				alpha[i] = 0
				alpha[j] = -diff
			}
			if diff > 0 {
				if alpha[i] > C {
					alpha[i] = C
					alpha[j] = C - diff
				}
			} else if alpha[j] > C {
				alpha[j] = C
				alpha[i] = C + diff
			}
		} else {
			quad := q.diag[i] + q.diag[j] - 2*qi[j]
			if quad <= 0 {
				quad = tau
			}
			delta := (grad[i] - grad[j]) / quad
			sum := alpha[i] + alpha[j]
			alpha[i] -= delta
			alpha[j] += delta
			if sum > C {
				if alpha[i] > C {
					alpha[i] = C
					alpha[j] = sum - C
				}
			} else if alpha[j] < 0 {
				alpha[j] = 0
				alpha[i] = sum
			}
			if sum > C {
				if alpha[j] > C {
					alpha[j] = C
					alpha[i] = sum - C
				}
			} else if alpha[i] < 0 {
				alpha[i] = 0
				alpha[j] = sum
			}
		}

		dI, dJ := alpha[i]-oldI, alpha[j]-oldJ
		for k := range grad {
			grad[k] += qi[k]*dI + qj[k]*dJ
		}
	}

	m := &svm{Gamma: p.Gamma, Rho: computeRho(alpha, grad, y, C)}
	for k, a := range alpha {
		if a > 0 {
			m.Vectors = append(m.Vectors, x[k])
			m.Coef = append(m.Coef, a*y[k])
		}
	}
	return m
}

func atUpper(a, C float64) bool { return a >= C }
func atLower(a float64) bool    { return a <= 0 }

func selectWorkingSet(alpha, grad, y []float64, q *qMatrix, C, eps float64) (int, int, bool) {
	gmax := math.Inf(-1)
	i := -1
	for t := range alpha {
		if y[t] > 0 {
			if !atUpper(alpha[t], C) && -grad[t] >= gmax {
				gmax = -grad[t]
				i = t
			}
		} else if !atLower(alpha[t]) && grad[t] >= gmax {
			gmax = grad[t]
			i = t
		}
	}
	if i < 0 {
		return 0, 0, false
	}

	qi := q.row(i)
	gmax2 := math.Inf(-1)
	j := -1
	best := math.Inf(1)
	for t := range alpha {
		var gradDiff, quad float64
		if y[t] > 0 {
			if atLower(alpha[t]) {
				continue
			}
			gradDiff = gmax + grad[t]
			gmax2 = math.Max(gmax2, grad[t])
			quad = q.diag[i] + q.diag[t] - 2*y[i]*qi[t]
		} else {
			if atUpper(alpha[t], C) {
				continue
			}
			gradDiff = gmax - grad[t]
			gmax2 = math.Max(gmax2, -grad[t])
			quad = q.diag[i] + q.diag[t] + 2*y[i]*qi[t]
		}
		if gradDiff <= 0 {
			continue
		}
		if quad <= 0 {
			quad = tau
		}
		if obj := -(gradDiff * gradDiff) / quad; obj <= best {
			best = obj
			j = t
		}
	}
	if gmax+gmax2 < eps || j < 0 {
		return 0, 0, false
	}
	return i, j, true
}

func computeRho(alpha, grad, y []float64, C float64) float64 {
	ub, lb := math.Inf(1), math.Inf(-1)
	var free int
	var sumFree float64
	for i := range alpha {
		yg := y[i] * grad[i]
		switch {
		case atUpper(alpha[i], C):
			if y[i] < 0 {
				ub = math.Min(ub, yg)
			} else {
				lb = math.Max(lb, yg)
			}
		case atLower(alpha[i]):
			if y[i] > 0 {
				ub = math.Min(ub, yg)
			} else {
				lb = math.Max(lb, yg)
			}
		default:
			free++
			sumFree += yg
		}
	}
	if free > 0 {
		return sumFree / float64(free)
	}
	return (ub + lb) / 2
}
