package model

import (
	"math"
	"math/rand/v2"

	"github.com/abhisek/dropwatch/internal/features"
)

// platt maps SVM decision values to probabilities with 1 / (1 + exp(A*f + B)).
type platt struct {
	A, B float64
}

func (p platt) probability(dec float64) float64 {
	f := dec*p.A + p.B
	if f >= 0 {
		return math.Exp(-f) / (1 + math.Exp(-f))
	}
	return 1 / (1 + math.Exp(f))
}

// fitPlatt fits the sigmoid by regularized maximum likelihood using Newton's
// method with backtracking line search.
func fitPlatt(dec, y []float64) platt {
	const (
		maxIter = 100
		minStep = 1e-10
		sigma   = 1e-12
		eps     = 1e-5
	)
	var prior1, prior0 float64
	for _, l := range y {
		if l > 0 {
			prior1++
		} else {
			prior0++
		}
	}
	hi := (prior1 + 1) / (prior1 + 2)
	lo := 1 / (prior0 + 2)
	t := make([]float64, len(y))
	for i, l := range y {
		if l > 0 {
			t[i] = hi
		} else {
			t[i] = lo
		}
	}

	objective := func(a, b float64) float64 {
		var f float64
		for i, d := range dec {
			fApB := d*a + b
			if fApB >= 0 {
				f += t[i]*fApB + math.Log1p(math.Exp(-fApB))
			} else {
				f += (t[i]-1)*fApB + math.Log1p(math.Exp(fApB))
			}
		}
		return f
	}

	A, B := 0.0, math.Log((prior0+1)/(prior1+1))
	fval := objective(A, B)
	for iter := 0; iter < maxIter; iter++ {
		h11, h22, h21 := sigma, sigma, 0.0
		var g1, g2 float64
		for i, d := range dec {
			fApB := d*A + B
			var p, q float64
			if fApB >= 0 {
				p = math.Exp(-fApB) / (1 + math.Exp(-fApB))
				q = 1 / (1 + math.Exp(-fApB))
			} else {
				p = 1 / (1 + math.Exp(fApB))
				q = math.Exp(fApB) / (1 + math.Exp(fApB))
			}
			d2 := p * q
			h11 += d * d * d2
			h22 += d2
			h21 += d * d2
			d1 := t[i] - p
			g1 += d * d1
			g2 += d1
		}
		if math.Abs(g1) < eps && math.Abs(g2) < eps {
			break
		}

		det := h11*h22 - h21*h21
		dA := -(h22*g1 - h21*g2) / det
		dB := -(-h21*g1 + h11*g2) / det
		gd := g1*dA + g2*dB

		step := 1.0
		for step >= minStep {
			newA, newB := A+step*dA, B+step*dB
			if newf := objective(newA, newB); newf < fval+0.0001*step*gd {
				A, B, fval = newA, newB, newf
				break
			}
			step /= 2
		}
		if step < minStep {
			break
		}
	}
	return platt{A: A, B: B}
}

// crossValidatedDecisions returns out-of-fold decision values for every
// sample. The fold assignment is a seeded shuffle, so results are
// reproducible.
func crossValidatedDecisions(x []features.Vector, y []float64, p svmParams, folds int, seed uint64) []float64 {
	n := len(x)
	if folds < 2 {
		folds = 2
	}
	folds = min(folds, n)

	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	rng.Shuffle(n, func(i, j int) { perm[i], perm[j] = perm[j], perm[i] })

	dec := make([]float64, n)
	for f := 0; f < folds; f++ {
		begin, end := f*n/folds, (f+1)*n/folds

		var tx []features.Vector
		var ty []float64
		var pos, neg int
		for k, idx := range perm {
			if k >= begin && k < end {
				continue
			}
			tx = append(tx, x[idx])
			ty = append(ty, y[idx])
			if y[idx] > 0 {
				pos++
			} else {
				neg++
			}
		}

		switch {
		case pos > 0 && neg > 0:
			m := trainSVM(tx, ty, p)
			for _, idx := range perm[begin:end] {
				dec[idx] = m.decision(x[idx])
			}
		default:
			var v float64
			if pos > 0 {
				v = 1
			} else if neg > 0 {
				v = -1
			}
			for _, idx := range perm[begin:end] {
				dec[idx] = v
			}
		}
	}
	return dec
}
