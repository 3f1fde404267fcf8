package dataset

import (
	"math"
	"testing"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestOverview(t *testing.T) {
	o := parseSample(t).Overview()
	if o.Total != 4 || o.Dropouts != 2 {
		t.Fatalf("Overview = %+v", o)
	}
	if !approx(o.DropoutRate, 50) {
		t.Errorf("DropoutRate = %v, want 50", o.DropoutRate)
	}
}

func TestStatusCounts(t *testing.T) {
	counts := parseSample(t).StatusCounts()
	want := map[Outcome]int{OutcomeDropout: 2, OutcomeEnrolled: 1, OutcomeGraduate: 1}
	for _, c := range counts {
		if c.Count != want[c.Outcome] {
			t.Errorf("%s count = %d, want %d", c.Outcome, c.Count, want[c.Outcome])
		}
	}
	if !approx(counts[0].Share, 0.5) {
		t.Errorf("dropout share = %v, want 0.5", counts[0].Share)
	}
}

func TestCourseCounts_SortedBySize(t *testing.T) {
	counts := parseSample(t).CourseCounts()
	if len(counts) != 3 {
		t.Fatalf("got %d courses, want 3", len(counts))
	}
	if counts[0].Code != 9119 || counts[0].Count != 2 {
		t.Errorf("largest course = %+v, want 9119 with 2", counts[0])
	}
	if counts[0].Name != "Informatics Engineering" {
		t.Errorf("Name = %q", counts[0].Name)
	}
	if counts[0].ByOutcome[OutcomeDropout] != 1 || counts[0].ByOutcome[OutcomeGraduate] != 1 {
		t.Errorf("ByOutcome = %v", counts[0].ByOutcome)
	}
	// Ties broken by course code.
	if counts[1].Code != 9147 || counts[2].Code != 9500 {
		t.Errorf("tie order = %d, %d", counts[1].Code, counts[2].Code)
	}
}

func TestResolveCourse(t *testing.T) {
	ds := parseSample(t)
	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{"9500", 9500, true},
		{" nursing ", 9500, true},
		{"informatics", 9119, true},
		{"9254", 0, false},
		{"astronomy", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		cc, ok := ds.ResolveCourse(tt.in)
		if ok != tt.ok || cc.Code != tt.want {
			t.Errorf("ResolveCourse(%q) = %d, %v; want %d, %v", tt.in, cc.Code, ok, tt.want, tt.ok)
		}
	}
}

func TestMeansByStatus(t *testing.T) {
	means := parseSample(t).MeansByStatus()
	if len(means) != 3 {
		t.Fatalf("got %d groups, want 3", len(means))
	}
	dropout := means[0]
	if dropout.Outcome != OutcomeDropout || dropout.Count != 2 {
		t.Fatalf("first group = %+v", dropout)
	}
	if !approx(dropout.Age, 29) || !approx(dropout.AdmissionGrade, 114) || !approx(dropout.FirstSemesterGrade, 4.25) {
		t.Errorf("dropout means = %+v", dropout)
	}
}

func TestTargetCorrelations(t *testing.T) {
	corr := parseSample(t).TargetCorrelations()
	if len(corr) == 0 {
		t.Fatal("expected correlations")
	}
	for i, c := range corr {
		if c.Column == ColTarget {
			t.Error("Target must not correlate with itself")
		}
		if i > 0 && corr[i-1].Value > c.Value {
			t.Errorf("not sorted ascending at %d", i)
		}
		if c.Value < -1-1e-9 || c.Value > 1+1e-9 {
			t.Errorf("%s correlation out of range: %v", c.Column, c.Value)
		}
	}
}

func TestPearson(t *testing.T) {
	r, ok := Pearson([]float64{1, 2, 3}, []float64{2, 4, 6})
	if !ok || !approx(r, 1) {
		t.Errorf("Pearson = %v, %v; want 1, true", r, ok)
	}
	r, ok = Pearson([]float64{1, 2, 3}, []float64{3, 2, 1})
	if !ok || !approx(r, -1) {
		t.Errorf("Pearson = %v, %v; want -1, true", r, ok)
	}
	if _, ok := Pearson([]float64{1, 1, 1}, []float64{1, 2, 3}); ok {
		t.Error("constant input should not be ok")
	}
	if _, ok := Pearson([]float64{1}, []float64{1, 2}); ok {
		t.Error("length mismatch should not be ok")
	}
}

func TestQuantile(t *testing.T) {
	xs := []float64{4, 1, 3, 2}
	tests := []struct {
		q, want float64
	}{
		{0, 1},
		{0.25, 1.75},
		{0.5, 2.5},
		{1, 4},
	}
	for _, tt := range tests {
		if got := Quantile(xs, tt.q); !approx(got, tt.want) {
			t.Errorf("Quantile(%v) = %v, want %v", tt.q, got, tt.want)
		}
	}
	if Quantile(nil, 0.5) != 0 {
		t.Error("empty quantile should be 0")
	}
	if xs[0] != 4 {
		t.Error("Quantile must not reorder its input")
	}
}

func TestHistogram(t *testing.T) {
	bins := Histogram([]float64{0, 1, 2, 3, 4, 10}, 5)
	if len(bins) != 5 {
		t.Fatalf("got %d bins", len(bins))
	}
	total := 0
	for _, b := range bins {
		total += b.Count
	}
	if total != 6 {
		t.Errorf("total count = %d, want 6", total)
	}
	if bins[4].Count != 1 {
		t.Errorf("max value should land in last bin, got %d", bins[4].Count)
	}

	single := Histogram([]float64{3, 3}, 4)
	if len(single) != 1 || single[0].Count != 2 {
		t.Errorf("constant histogram = %+v", single)
	}
}

func TestBoxStats(t *testing.T) {
	b := BoxStats([]float64{5, 1, 3, 2, 4})
	if b.N != 5 || b.Min != 1 || b.Max != 5 || b.Median != 3 || b.Q1 != 2 || b.Q3 != 4 {
		t.Errorf("BoxStats = %+v", b)
	}
	if (BoxStats(nil) != Box{}) {
		t.Error("empty BoxStats should be zero")
	}
}
