package dataset

import (
	"math"
	"slices"
	"sort"
	"strconv"
	"strings"
)

// Overview holds the headline metrics of the dataset.
type Overview struct {
	Total       int
	Dropouts    int
	DropoutRate float64 // percent, 0-100
}

// Overview computes total students and the dropout rate.
func (d *Dataset) Overview() Overview {
	o := Overview{Total: d.Len()}
	for _, r := range d.records {
		if r.IsDropout() {
			o.Dropouts++
		}
	}
	if o.Total > 0 {
		o.DropoutRate = float64(o.Dropouts) / float64(o.Total) * 100
	}
	return o
}

// StatusCount is the number and share of students with one outcome.
type StatusCount struct {
	Outcome Outcome
	Count   int
	Share   float64 // 0-1
}

// StatusCounts returns one entry per labelled outcome, in encoding order.
func (d *Dataset) StatusCounts() []StatusCount {
	var counts [3]int
	for _, r := range d.records {
		if r.Outcome.Known() {
			counts[r.Outcome]++
		}
	}
	out := make([]StatusCount, len(Outcomes))
	for i, o := range Outcomes {
		out[i] = StatusCount{Outcome: o, Count: counts[o]}
		if d.Len() > 0 {
			out[i].Share = float64(counts[o]) / float64(d.Len())
		}
	}
	return out
}

// CourseCount is the number of students in one course, split by outcome.
type CourseCount struct {
	Code      int
	Name      string
	Count     int
	ByOutcome [3]int
}

// CourseCounts returns the per-course totals, largest course first.
func (d *Dataset) CourseCounts() []CourseCount {
	byCode := make(map[int]*CourseCount)
	for _, r := range d.records {
		cc, ok := byCode[r.Course]
		if !ok {
			cc = &CourseCount{Code: r.Course, Name: CourseName(r.Course)}
			byCode[r.Course] = cc
		}
		cc.Count++
		if r.Outcome.Known() {
			cc.ByOutcome[r.Outcome]++
		}
	}
	out := make([]CourseCount, 0, len(byCode))
	for _, cc := range byCode {
		out = append(out, *cc)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Code < out[j].Code
	})
	return out
}

// StatusMeans holds the mean age and grades of students with one outcome.
type StatusMeans struct {
	Outcome            Outcome
	Count              int
	Age                float64
	AdmissionGrade     float64
	FirstSemesterGrade float64
}

// MeansByStatus returns the means for every outcome present in the data.
func (d *Dataset) MeansByStatus() []StatusMeans {
	var out []StatusMeans
	for _, o := range Outcomes {
		sm := StatusMeans{Outcome: o}
		for _, r := range d.records {
			if r.Outcome != o {
				continue
			}
			sm.Count++
			sm.Age += r.Age
			sm.AdmissionGrade += r.AdmissionGrade
			sm.FirstSemesterGrade += r.FirstSemesterGrade
		}
		if sm.Count == 0 {
			continue
		}
		n := float64(sm.Count)
		sm.Age /= n
		sm.AdmissionGrade /= n
		sm.FirstSemesterGrade /= n
		out = append(out, sm)
	}
	return out
}

// Correlation is the Pearson correlation of one column with Target.
type Correlation struct {
	Column string
	Value  float64
}

// TargetCorrelations correlates every numeric column with the encoded
// Target, sorted ascending. Constant columns are skipped.
func (d *Dataset) TargetCorrelations() []Correlation {
	target, ok := d.Column(ColTarget)
	if !ok {
		return nil
	}
	var out []Correlation
	for _, c := range d.columns {
		if c == ColTarget {
			continue
		}
		col, _ := d.Column(c)
		r, ok := Pearson(col, target)
		if !ok {
			continue
		}
		out = append(out, Correlation{Column: c, Value: r})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Value < out[j].Value })
	return out
}

// Mean returns the arithmetic mean of xs, or 0 for an empty slice.
func Mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// Quantile returns the q-th quantile (0-1) of xs using linear
// interpolation between closest ranks. Returns 0 for an empty slice.
func Quantile(xs []float64, q float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sorted := slices.Clone(xs)
	slices.Sort(sorted)
	return quantileSorted(sorted, q)
}

func quantileSorted(sorted []float64, q float64) float64 {
	q = math.Max(0, math.Min(1, q))
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac
}

// Pearson returns the correlation coefficient of x and y. ok is false
// when the inputs differ in length, are empty, or either is constant.
func Pearson(x, y []float64) (r float64, ok bool) {
	if len(x) != len(y) || len(x) == 0 {
		return 0, false
	}
	mx, my := Mean(x), Mean(y)
	var sxy, sxx, syy float64
	for i := range x {
		dx, dy := x[i]-mx, y[i]-my
		sxy += dx * dy
		sxx += dx * dx
		syy += dy * dy
	}
	if sxx == 0 || syy == 0 {
		return 0, false
	}
	return sxy / math.Sqrt(sxx*syy), true
}

// Bin is one bucket of a histogram, covering [Lo, Hi).
type Bin struct {
	Lo, Hi float64
	Count  int
}

// Histogram splits xs into n equal-width bins between its min and max.
// The last bin is closed on the right.
func Histogram(xs []float64, n int) []Bin {
	if len(xs) == 0 || n <= 0 {
		return nil
	}
	lo, hi := slices.Min(xs), slices.Max(xs)
	if lo == hi {
		return []Bin{{Lo: lo, Hi: hi, Count: len(xs)}}
	}
	width := (hi - lo) / float64(n)
	bins := make([]Bin, n)
	for i := range bins {
		bins[i].Lo = lo + float64(i)*width
		bins[i].Hi = lo + float64(i+1)*width
	}
	for _, x := range xs {
		i := int((x - lo) / width)
		if i >= n {
			i = n - 1
		}
		bins[i].Count++
	}
	return bins
}

// HistogramRange is Histogram with explicit bounds, so several series can
// share bins. Values outside [lo, hi] are ignored.
func HistogramRange(xs []float64, n int, lo, hi float64) []Bin {
	if n <= 0 || hi <= lo {
		return nil
	}
	width := (hi - lo) / float64(n)
	bins := make([]Bin, n)
	for i := range bins {
		bins[i].Lo = lo + float64(i)*width
		bins[i].Hi = lo + float64(i+1)*width
	}
	for _, x := range xs {
		if x < lo || x > hi {
			continue
		}
		i := int((x - lo) / width)
		if i >= n {
			i = n - 1
		}
		bins[i].Count++
	}
	return bins
}

// Box is a five-number summary.
type Box struct {
	N                        int
	Min, Q1, Median, Q3, Max float64
}

// BoxStats computes the five-number summary of xs.
func BoxStats(xs []float64) Box {
	if len(xs) == 0 {
		return Box{}
	}
	sorted := slices.Clone(xs)
	slices.Sort(sorted)
	return Box{
		N:      len(sorted),
		Min:    sorted[0],
		Q1:     quantileSorted(sorted, 0.25),
		Median: quantileSorted(sorted, 0.5),
		Q3:     quantileSorted(sorted, 0.75),
		Max:    sorted[len(sorted)-1],
	}
}

// ResolveCourse finds the course a user typed: an exact code present in
// the data, or the largest course whose name contains s, ignoring case.
func (d *Dataset) ResolveCourse(s string) (CourseCount, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return CourseCount{}, false
	}
	counts := d.CourseCounts()
	if code, err := strconv.Atoi(s); err == nil {
		for _, cc := range counts {
			if cc.Code == code {
				return cc, true
			}
		}
		return CourseCount{}, false
	}
	needle := strings.ToLower(s)
	for _, cc := range counts {
		if strings.Contains(strings.ToLower(cc.Name), needle) {
			return cc, true
		}
	}
	return CourseCount{}, false
}
