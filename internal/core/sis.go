package core

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/xuri/excelize/v2"
)

// SIS class list column positions, counted from 0. Columns 5 and 6 are unused.
const (
	sisColName        = 0
	sisColID          = 1
	sisColStatus      = 2
	sisColLevel       = 3
	sisColCreditHours = 4
	sisColClassYear   = 7
)

// sisHeaderLabel marks the row that separates the metadata block from student rows.
const sisHeaderLabel = "Student Name"

var (
	// "INTRO TO IT & WEB SCIENCE - ITWS 1100 01"
	courseTitlePattern = regexp.MustCompile(`^(.*\S)\s*-\s*([A-Za-z]+)\s+(\d+)\s+(\w+)$`)

	// "Spring 2026 - 202601"
	termLabelPattern = regexp.MustCompile(`^(.*\S)\s*-\s*(\d{6})$`)

	// `Last, "Preferred" First (pronouns)`; preferred name and pronouns are optional.
	studentNamePattern = regexp.MustCompile(`^\s*([^,]+?)\s*,\s*(?:["“]([^"”]*)["”]\s*)?([^(]*?)\s*(?:\(.*\))?\s*$`)

	parentheticalPattern = regexp.MustCompile(`\([^)]*\)`)
)

// ReadFirstSheet returns the cell grid of a workbook's first sheet.
// Rows keep their position; trailing empty cells may be absent.
func ReadFirstSheet(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, nil
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	return rows, nil
}

// ExtractSisClasslist parses a SIS class list workbook.
// A workbook that cannot be read yields an empty result.
func ExtractSisClasslist(data []byte) *SisClasslist {
	rows, err := ReadFirstSheet(data)
	if err != nil {
		return newSisClasslist()
	}
	return extractSisRows(rows)
}

// extractSisRows runs the two-state pass over a class list grid: metadata
// rows until the "Student Name" header, student rows after it.
func extractSisRows(rows [][]string) *SisClasslist {
	out := newSisClasslist()
	inStudents := false

	for i, row := range rows {
		line := i + 1

		if !inStudents {
			label := strings.TrimSuffix(strings.TrimSpace(cell(row, 0)), ":")
			if label == sisHeaderLabel {
				inStudents = true
				continue
			}
			applySisMetadata(out, label, row)
			continue
		}

		if isEmptyRow(row) {
			continue
		}

		name := strings.TrimSpace(cell(row, sisColName))
		id := strings.TrimSpace(cell(row, sisColID))
		if name == "" || id == "" {
			out.Skipped = append(out.Skipped, SkippedRow{Line: line, Reason: "missing student name or ID"})
			continue
		}

		first, last, preferred := ParseStudentName(name)
		rec := StudentRecord{
			FullName:           name,
			FirstName:          first,
			LastName:           last,
			PreferredName:      preferred,
			StudentID:          id,
			RegistrationStatus: strings.TrimSpace(cell(row, sisColStatus)),
			Level:              strings.TrimSpace(cell(row, sisColLevel)),
			CreditHours:        strings.TrimSpace(cell(row, sisColCreditHours)),
			ClassYear:          strings.TrimSpace(cell(row, sisColClassYear)),
		}
		if !rec.HasIdentity() {
			out.Skipped = append(out.Skipped, SkippedRow{Line: line, Reason: "no identifying field"})
			continue
		}
		out.Students = append(out.Students, rec)
	}

	return out
}

func newSisClasslist() *SisClasslist {
	return &SisClasslist{Students: []StudentRecord{}, Skipped: []SkippedRow{}}
}

// applySisMetadata fills course info from a labeled header row.
// Unrecognized labels are ignored.
func applySisMetadata(out *SisClasslist, label string, row []string) {
	value := strings.TrimSpace(cell(row, 1))

	switch label {
	case "Course Title":
		if m := courseTitlePattern.FindStringSubmatch(value); m != nil {
			dept := strings.ToUpper(m[2])
			out.CourseInfo.FullTitle = m[1]
			out.CourseInfo.Department = dept
			out.CourseInfo.CourseNumber = m[3]
			out.CourseInfo.Section = m[4]
			out.CourseInfo.CourseCode = dept + "-" + m[3]
		} else {
			out.CourseInfo.FullTitle = value
		}
	case "Term":
		if m := termLabelPattern.FindStringSubmatch(value); m != nil {
			out.CourseInfo.TermDisplay = m[1]
			out.CourseInfo.TermCode = m[2]
		} else {
			out.CourseInfo.TermDisplay = value
		}
	case "CRN":
		out.CourseInfo.CRN = value
	case "Duration":
		out.CourseInfo.Duration = value
	case "Status":
		out.CourseInfo.Status = value
	case "Enrollment":
		if len(row) >= 4 {
			out.EnrollmentCounts = EnrollmentCounts{
				Maximum:   parseLeadingInt(cell(row, 1)),
				Actual:    parseLeadingInt(cell(row, 2)),
				Remaining: parseLeadingInt(cell(row, 3)),
			}
		}
	}
}

// ParseStudentName splits a SIS display name of the form
// `Last, "Preferred" First (pronouns)` into its parts. Pronouns are dropped.
// Names the pattern rejects fall back to a plain split on the first comma.
func ParseStudentName(name string) (first, last, preferred string) {
	if m := studentNamePattern.FindStringSubmatch(name); m != nil {
		return strings.TrimSpace(m[3]), strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
	}

	before, after, _ := strings.Cut(name, ",")
	last = strings.TrimSpace(before)
	first = strings.TrimSpace(parentheticalPattern.ReplaceAllString(after, ""))
	return first, last, ""
}

// parseLeadingInt reads an optional sign and the leading digits of s.
// Anything unparseable is 0.
func parseLeadingInt(s string) int {
	s = strings.TrimSpace(s)
	neg := false
	if s != "" && (s[0] == '-' || s[0] == '+') {
		neg = s[0] == '-'
		s = s[1:]
	}

	n := 0
	for i := 0; i < len(s) && s[i] >= '0' && s[i] <= '9'; i++ {
		n = n*10 + int(s[i]-'0')
	}
	if neg {
		return -n
	}
	return n
}

// cell returns row[i], or "" when the row is shorter.
func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

func isEmptyRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
