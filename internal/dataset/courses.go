package dataset

import "strconv"

// courseNames maps the Course codes of the source data to programme names.
var courseNames = map[int]string{
	33:   "Biofuel Production Technologies",
	171:  "Animation and Multimedia Design",
	8014: "Social Service (evening attendance)",
	9003: "Agronomy",
	9070: "Communication Design",
	9085: "Veterinary Nursing",
	9119: "Informatics Engineering",
	9130: "Equinculture",
	9147: "Management",
	9238: "Social Service",
	9254: "Tourism",
	9500: "Nursing",
	9556: "Oral Hygiene",
	9670: "Advertising and Marketing Management",
	9773: "Journalism and Communication",
	9853: "Basic Education",
	9991: "Management (evening attendance)",
}

// CourseName returns the programme name for a course code. Unmapped codes
// are rendered as "Course <code>".
func CourseName(code int) string {
	if name, ok := courseNames[code]; ok {
		return name
	}
	return "Course " + strconv.Itoa(code)
}

// KnownCourse reports whether code is one of the mapped programmes.
func KnownCourse(code int) bool {
	_, ok := courseNames[code]
	return ok
}
