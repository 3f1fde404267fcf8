package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/abhisek/dropwatch/internal/dataset"
	"github.com/abhisek/dropwatch/internal/risk"
)

func student(paid bool, grade, age float64) dataset.StudentRecord {
	return dataset.StudentRecord{
		Age:                age,
		AdmissionGrade:     130,
		FirstSemesterGrade: grade,
		TuitionUpToDate:    paid,
		Outcome:            dataset.OutcomeUnknown,
	}
}

func TestRecommend_AllTriggersHighRisk(t *testing.T) {
	a := risk.Assess(0.8)
	set := Recommend(a.Bucket, student(false, 9, 30))

	assert.Equal(t, risk.High, set.Bucket)
	assert.Equal(t, []string{
		"Financial Aid Program",
		"Intensive Academic Mentoring",
		"Adult-Student Support Program",
	}, set.Programs)
	assert.Equal(t, 3, set.Triggered)
}

func TestRecommend_NoTriggersLowRisk(t *testing.T) {
	a := risk.Assess(0.1)
	set := Recommend(a.Bucket, student(true, 16, 20))

	assert.Equal(t, risk.Low, set.Bucket)
	assert.Equal(t, Defaults(risk.Low)[:3], set.Programs)
	assert.Zero(t, set.Triggered)
}

func TestRecommend_MixesTriggersAndDefaults(t *testing.T) {
	set := Recommend(risk.Medium, student(false, 14, 19))

	assert.Equal(t, []string{
		"Financial Aid Program",
		"Guided Study Group",
		"Monthly Progress Monitoring",
	}, set.Programs)
	assert.Equal(t, 1, set.Triggered)
}

func TestRecommend_Boundaries(t *testing.T) {
	// Grade exactly 10 and age exactly 25 do not trigger.
	set := Recommend(risk.High, student(true, 10, 25))
	assert.Zero(t, set.Triggered)
	assert.Equal(t, Defaults(risk.High)[:3], set.Programs)
}

func TestRecommend_Invariants(t *testing.T) {
	grades := []float64{0, 9.99, 10, 15}
	ages := []float64{17, 25, 25.5, 60}
	for _, b := range risk.Buckets {
		for _, paid := range []bool{true, false} {
			for _, g := range grades {
				for _, age := range ages {
					set := Recommend(b, student(paid, g, age))
					assert.LessOrEqual(t, len(set.Programs), MaxPrograms)
					assert.Len(t, set.Programs, MaxPrograms)

					seen := map[string]bool{}
					for _, p := range set.Programs {
						assert.False(t, seen[p], "duplicate %q", p)
						seen[p] = true
					}

					triggers := Triggers(student(paid, g, age))
					for i := 0; i < set.Triggered; i++ {
						assert.Equal(t, triggers[i].Program, set.Programs[i])
					}
				}
			}
		}
	}
}

func TestDefaults_Copy(t *testing.T) {
	d := Defaults(risk.Low)
	assert.Len(t, d, 4)
	d[0] = "changed"
	assert.Equal(t, "Career Orientation Session", Defaults(risk.Low)[0])
}
