package dataset

import (
	"strings"
	"testing"
)

const sampleHeader = "Marital status;Course;Daytime/evening attendance\t;Age at enrollment;Admission grade;Scholarship holder;Curricular units 1st sem (grade);Tuition fees up to date;Gender;Target"

// sampleCSV has 6 data rows: one with a missing field and one exact
// duplicate, leaving 4 usable students.
const sampleCSV = sampleHeader + `
1;9119;1;19;142.5;1;14.2;1;F;Graduate
1;9500;1;27;118.0;0;8.5;0;M;Dropout
1;9500;1;27;118.0;0;8.5;0;M;Dropout
2;9147;0;;130.0;0;11.0;1;F;Enrolled
1;9147;0;22;125.0;0;12.0;1;M;Enrolled
1;9119;1;31;110.0;0;0;0;F;Dropout
`

func parseSample(t *testing.T) *Dataset {
	t.Helper()
	ds, err := Parse(strings.NewReader(sampleCSV), "sample.csv")
	if err != nil {
		t.Fatalf("parse sample: %v", err)
	}
	return ds
}
