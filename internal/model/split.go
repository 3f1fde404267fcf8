package model

import (
	"math"
	"math/rand/v2"
	"slices"

	"github.com/abhisek/dropwatch/internal/dataset"
)

// StratifiedSplit partitions records into train and test sets, keeping the
// outcome proportions of each set close to the full table. Each non-empty
// outcome keeps at least one training row. The split depends only on the
// input order and seed. Both halves preserve input order.
func StratifiedSplit(records []dataset.StudentRecord, testFraction float64, seed uint64) (train, test []dataset.StudentRecord) {
	byOutcome := map[dataset.Outcome][]int{}
	for i, r := range records {
		byOutcome[r.Outcome] = append(byOutcome[r.Outcome], i)
	}
	outcomes := make([]dataset.Outcome, 0, len(byOutcome))
	for o := range byOutcome {
		outcomes = append(outcomes, o)
	}
	slices.Sort(outcomes)

	rng := rand.New(rand.NewPCG(seed, seed+1))
	inTest := make([]bool, len(records))
	for _, o := range outcomes {
		idx := byOutcome[o]
		rng.Shuffle(len(idx), func(i, j int) { idx[i], idx[j] = idx[j], idx[i] })
		n := int(math.Round(testFraction * float64(len(idx))))
		n = max(0, min(n, len(idx)-1))
		for _, k := range idx[:n] {
			inTest[k] = true
		}
	}

	for i, r := range records {
		if inTest[i] {
			test = append(test, r)
		} else {
			train = append(train, r)
		}
	}
	return train, test
}
