package core

import "strings"

// ColumnIndex is a zero-based header position, or NotFound.
type ColumnIndex int

// NotFound marks a logical column that no header matched.
const NotFound ColumnIndex = -1

// Found reports whether the column was detected.
func (c ColumnIndex) Found() bool {
	return c >= 0
}

// DetectedColumns maps logical roster fields to header positions.
// Every index is either NotFound or a valid position in the header row.
type DetectedColumns struct {
	Username        ColumnIndex `json:"username"`
	Email           ColumnIndex `json:"email"`
	StudentID       ColumnIndex `json:"studentId"`
	FirstName       ColumnIndex `json:"firstName"`
	LastName        ColumnIndex `json:"lastName"`
	FullName        ColumnIndex `json:"fullName"`
	Team            ColumnIndex `json:"team"`
	DiscordUsername ColumnIndex `json:"discordUsername"`
}

// columnRule pairs a lower-cased header test with the field it fills.
type columnRule struct {
	target func(*DetectedColumns) *ColumnIndex
	match  func(h string) bool
}

// columnRules are independent: each field takes the first header that matches it.
var columnRules = []columnRule{
	{
		target: func(d *DetectedColumns) *ColumnIndex { return &d.Username },
		match: func(h string) bool {
			return containsAny(h, "username", "user name", "rcs") || h == "user"
		},
	},
	{
		target: func(d *DetectedColumns) *ColumnIndex { return &d.Email },
		match:  func(h string) bool { return strings.Contains(h, "email") },
	},
	{
		target: func(d *DetectedColumns) *ColumnIndex { return &d.StudentID },
		match: func(h string) bool {
			return containsAny(h, "student id", "studentid") || h == "id"
		},
	},
	{
		target: func(d *DetectedColumns) *ColumnIndex { return &d.FirstName },
		match: func(h string) bool {
			return strings.Contains(h, "first") || h == "firstname" || h == "given"
		},
	},
	{
		target: func(d *DetectedColumns) *ColumnIndex { return &d.LastName },
		match: func(h string) bool {
			return strings.Contains(h, "last") || h == "lastname" || h == "surname" || h == "family"
		},
	},
	{
		// Excludes first/last so "First Name" does not double as the full name.
		target: func(d *DetectedColumns) *ColumnIndex { return &d.FullName },
		match: func(h string) bool {
			return strings.Contains(h, "name") && !strings.Contains(h, "first") && !strings.Contains(h, "last")
		},
	},
	{
		target: func(d *DetectedColumns) *ColumnIndex { return &d.Team },
		match:  func(h string) bool { return containsAny(h, "team", "group") },
	},
	{
		target: func(d *DetectedColumns) *ColumnIndex { return &d.DiscordUsername },
		match:  func(h string) bool { return strings.Contains(h, "discord") },
	},
}

// DetectColumns matches header cells (case-insensitively) to roster fields.
func DetectColumns(header []string) DetectedColumns {
	lowered := make([]string, len(header))
	for i, h := range header {
		lowered[i] = strings.ToLower(strings.TrimSpace(h))
	}

	var cols DetectedColumns
	for _, rule := range columnRules {
		idx := rule.target(&cols)
		*idx = NotFound
		for i, h := range lowered {
			if rule.match(h) {
				*idx = ColumnIndex(i)
				break
			}
		}
	}
	return cols
}

// ExtractGenericCsv parses a CSV with an arbitrary header row, guessing
// which columns hold roster fields. Fewer than two non-blank lines yield an
// empty result. Rows without a username, email, student ID or Discord
// handle are dropped.
func ExtractGenericCsv(text string) *GenericCsv {
	out := &GenericCsv{
		Headers:         []string{},
		Students:        []StudentRecord{},
		DetectedColumns: DetectColumns(nil),
		Skipped:         []SkippedRow{},
	}

	type numberedLine struct {
		n    int
		text string
	}
	var lines []numberedLine
	for i, l := range splitLines(text) {
		if !isBlankLine(l) {
			lines = append(lines, numberedLine{n: i + 1, text: l})
		}
	}
	if len(lines) < 2 {
		return out
	}

	out.Headers = trimFields(TokenizeLine(lines[0].text))
	out.DetectedColumns = DetectColumns(out.Headers)
	cols := out.DetectedColumns

	for _, l := range lines[1:] {
		fields := trimFields(TokenizeLine(l.text))
		get := func(c ColumnIndex) string {
			if !c.Found() {
				return ""
			}
			return cell(fields, int(c))
		}

		rec := StudentRecord{
			RcsID:           get(cols.Username),
			Email:           get(cols.Email),
			StudentID:       get(cols.StudentID),
			FirstName:       get(cols.FirstName),
			LastName:        get(cols.LastName),
			FullName:        get(cols.FullName),
			Team:            get(cols.Team),
			DiscordUsername: get(cols.DiscordUsername),
		}
		if rec.FullName == "" && (rec.FirstName != "" || rec.LastName != "") {
			rec.FullName = strings.TrimSpace(rec.FirstName + " " + rec.LastName)
		}

		if !rec.HasHandle() {
			out.Skipped = append(out.Skipped, SkippedRow{Line: l.n, Reason: "no username, email, student ID or Discord handle"})
			continue
		}
		out.Students = append(out.Students, rec)
	}

	return out
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
