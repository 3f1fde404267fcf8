package insight

import (
	"fmt"
	"sort"
	"strings"

	"github.com/abhisek/dropwatch/internal/dataset"
)

// CourseNotes names the courses with the most dropouts and the smallest
// courses by enrolment.
func CourseNotes(ds *dataset.Dataset) []string {
	courses := ds.CourseCounts()
	if len(courses) == 0 {
		return nil
	}

	byDropout := append([]dataset.CourseCount(nil), courses...)
	sort.SliceStable(byDropout, func(i, j int) bool {
		return byDropout[i].ByOutcome[dataset.OutcomeDropout] > byDropout[j].ByOutcome[dataset.OutcomeDropout]
	})

	notes := []string{
		fmt.Sprintf("%s have the highest dropout counts.", joinNames(byDropout, 3)),
	}
	if len(courses) > 3 {
		smallest := courses[len(courses)-2:]
		notes = append(notes, fmt.Sprintf("%s are comparatively small programmes.", joinNames(smallest, 2)))
	}
	notes = append(notes, "Use this view to find the programmes that need retention attention first.")
	return notes
}

// MeansNotes compares dropouts and graduates on the means table.
func MeansNotes(means []dataset.StatusMeans) []string {
	var drop, grad *dataset.StatusMeans
	for i := range means {
		switch means[i].Outcome {
		case dataset.OutcomeDropout:
			drop = &means[i]
		case dataset.OutcomeGraduate:
			grad = &means[i]
		}
	}
	if drop == nil || grad == nil {
		return nil
	}

	var notes []string
	if drop.FirstSemesterGrade < grad.FirstSemesterGrade {
		notes = append(notes, fmt.Sprintf(
			"Dropouts average a first-semester grade of %.2f against %.2f for graduates.",
			drop.FirstSemesterGrade, grad.FirstSemesterGrade))
	}
	if drop.Age > grad.Age {
		notes = append(notes, fmt.Sprintf(
			"Dropouts enrolled older on average (%.1f vs %.1f years).", drop.Age, grad.Age))
	}
	notes = append(notes, "The first-semester grade is a usable early signal for intervention.")
	return notes
}

// CorrelationNotes names the strongest positive and negative correlates of
// Target. corrs must be sorted ascending.
func CorrelationNotes(corrs []dataset.Correlation) []string {
	if len(corrs) == 0 {
		return nil
	}
	var neg, pos []string
	for i := 0; i < len(corrs) && i < 3 && corrs[i].Value < 0; i++ {
		neg = append(neg, corrs[i].Column)
	}
	for i := len(corrs) - 1; i >= 0 && len(pos) < 3 && corrs[i].Value > 0; i-- {
		pos = append(pos, corrs[i].Column)
	}

	var notes []string
	if len(pos) > 0 {
		notes = append(notes, "Strongest positive correlation with completion: "+strings.Join(pos, ", ")+".")
	}
	if len(neg) > 0 {
		notes = append(notes, "Strongest negative correlation (towards dropout): "+strings.Join(neg, ", ")+".")
	}
	return notes
}

// StatusNotes describes the outcome proportions.
func StatusNotes(counts []dataset.StatusCount) []string {
	if len(counts) == 0 {
		return nil
	}
	top := counts[0]
	var dropout float64
	for _, c := range counts {
		if c.Count > top.Count {
			top = c
		}
		if c.Outcome == dataset.OutcomeDropout {
			dropout = c.Share
		}
	}
	return []string{
		fmt.Sprintf("%s students are the largest group (%.0f%%).", top.Outcome, top.Share*100),
		fmt.Sprintf("About %.0f%% of students drop out.", dropout*100),
	}
}

func joinNames(cs []dataset.CourseCount, n int) string {
	names := make([]string, 0, n)
	for i := 0; i < len(cs) && i < n; i++ {
		names = append(names, cs[i].Name)
	}
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	default:
		return strings.Join(names[:len(names)-1], ", ") + " and " + names[len(names)-1]
	}
}
