package session

import (
	"context"
	"math/rand/v2"
	"slices"

	"github.com/abhisek/dropwatch/internal/dataset"
	"github.com/abhisek/dropwatch/internal/features"
	"github.com/abhisek/dropwatch/internal/insight"
	"github.com/abhisek/dropwatch/internal/model"
	"github.com/abhisek/dropwatch/internal/recommend"
	"github.com/abhisek/dropwatch/internal/risk"
)

// AllCourses disables the course filter.
const AllCourses = 0

// CohortQuery selects the students shown on the recommendation page.
type CohortQuery struct {
	Risk   risk.Filter
	Course int // AllCourses or a course code
}

// Student is one sampled student with their programs.
type Student struct {
	Record          dataset.StudentRecord
	Risk            risk.Assessment
	Recommendations recommend.Set
}

// Cohort is the recommendation page content for one query.
type Cohort struct {
	Query CohortQuery
	Data  *dataset.Dataset // students matching the query

	// Scored is false when no cached model was available. Every student
	// is then treated as Medium risk and the risk filter is ignored.
	Scored  bool
	LoadErr error

	// Buckets counts the students of each bucket before the risk filter
	// is applied. Empty when Scored is false.
	Buckets map[risk.Bucket]int

	Summary insight.Cohort
	Sample  []Student
}

// Cohort scores the dataset with the cached model and applies q. It never
// trains; a missing or unreadable artifact degrades to Medium risk.
func (s *Session) Cohort(ctx context.Context, q CohortQuery) Cohort {
	m, err := s.models.Load(ctx, s.data)
	c := Cohort{Query: q, Scored: err == nil, LoadErr: err}

	byRow := make(map[int]risk.Assessment, s.data.Len())
	fallback := risk.Assess(0.5)
	if c.Scored {
		c.Buckets = make(map[risk.Bucket]int, len(risk.Buckets))
	}

	for _, r := range s.data.Records() {
		if q.Course != AllCourses && r.Course != q.Course {
			continue
		}
		a := fallback
		if c.Scored {
			a = m.Assess(r)
			c.Buckets[a.Bucket]++
		}
		byRow[r.Row] = a
	}

	c.Data = s.data.Filter(func(r dataset.StudentRecord) bool {
		a, ok := byRow[r.Row]
		if !ok {
			return false
		}
		return !c.Scored || q.Risk.Matches(a.Bucket)
	})
	c.Summary = insight.Summarize(c.Data)

	pool := c.Data
	if pool.Len() == 0 {
		pool = s.data
	}
	for _, r := range sample(pool.Records(), s.sample, s.seed) {
		a, ok := byRow[r.Row]
		if !ok {
			a = scoreOrFallback(m, r, fallback)
		}
		c.Sample = append(c.Sample, Student{
			Record:          r,
			Risk:            a,
			Recommendations: recommend.Recommend(a.Bucket, r),
		})
	}
	return c
}

// Input returns the model attributes of the sampled student.
func (st Student) Input() features.Input {
	return features.InputFrom(st.Record)
}

func scoreOrFallback(m *model.Model, r dataset.StudentRecord, fallback risk.Assessment) risk.Assessment {
	if m == nil {
		return fallback
	}
	return m.Assess(r)
}

// sample picks up to n records with a seeded shuffle, keeping their
// original order.
func sample(records []dataset.StudentRecord, n int, seed uint64) []dataset.StudentRecord {
	if n >= len(records) {
		return records
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x5eed))
	idx := rng.Perm(len(records))[:n]
	slices.Sort(idx)
	out := make([]dataset.StudentRecord, n)
	for i, j := range idx {
		out[i] = records[j]
	}
	return out
}
