package core

import (
	"fmt"
	"strconv"
)

// semesterCodes maps the two-digit semester suffix shared by SIS and LMS term codes.
var semesterCodes = map[string]Semester{
	"01": SemesterSpring,
	"05": SemesterSummer,
	"09": SemesterFall,
}

// ParseTermCode decodes a six-digit SIS term code (YYYYSS).
// Returns false if the code is not exactly six digits.
// Unknown semester codes are kept and labeled SemesterUnknown.
func ParseTermCode(code string) (TermCode, bool) {
	if len(code) != 6 || !isDigits(code) {
		return TermCode{}, false
	}
	year, _ := strconv.Atoi(code[0:4])
	return newTermCode(code, year, code[4:6]), true
}

// ParseLmsTermCode decodes a four-digit LMS term code (YYSS), where YY is
// the year offset from 2000.
func ParseLmsTermCode(code string) (TermCode, bool) {
	if len(code) != 4 || !isDigits(code) {
		return TermCode{}, false
	}
	offset, _ := strconv.Atoi(code[0:2])
	return newTermCode(code, 2000+offset, code[2:4]), true
}

func newTermCode(raw string, year int, semCode string) TermCode {
	sem, ok := semesterCodes[semCode]
	if !ok {
		sem = SemesterUnknown
	}
	return TermCode{
		Raw:      raw,
		Year:     year,
		Code:     semCode,
		Semester: sem,
		Display:  fmt.Sprintf("%s %d", sem, year),
	}
}

// String returns the display form, e.g. "Spring 2026".
func (t TermCode) String() string {
	return t.Display
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
