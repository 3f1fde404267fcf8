package model

import (
	"fmt"

	"github.com/abhisek/dropwatch/internal/dataset"
)

// Evaluation summarizes dropout classification quality on held-out rows.
type Evaluation struct {
	TestSize  int     `json:"test_size"`
	Positives int     `json:"positives"`
	Accuracy  float64 `json:"accuracy"`
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	F1        float64 `json:"f1"`
}

func (e Evaluation) String() string {
	return fmt.Sprintf("accuracy %.3f  precision %.3f  recall %.3f  F1 %.3f  (n=%d, dropouts=%d)",
		e.Accuracy, e.Precision, e.Recall, e.F1, e.TestSize, e.Positives)
}

// Evaluate scores m's hard dropout decisions against the labelled test rows.
// Undefined ratios are reported as 0.
func Evaluate(m *Model, test []dataset.StudentRecord) Evaluation {
	var tp, fp, tn, fn int
	for _, r := range test {
		pred, actual := m.PredictDropout(r), r.IsDropout()
		switch {
		case pred && actual:
			tp++
		case pred && !actual:
			fp++
		case !pred && actual:
			fn++
		default:
			tn++
		}
	}
	e := Evaluation{TestSize: len(test), Positives: tp + fn}
	e.Accuracy = ratio(tp+tn, len(test))
	e.Precision = ratio(tp, tp+fp)
	e.Recall = ratio(tp, tp+fn)
	if e.Precision+e.Recall > 0 {
		e.F1 = 2 * e.Precision * e.Recall / (e.Precision + e.Recall)
	}
	return e
}

func ratio(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}
