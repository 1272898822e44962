package core

import (
	"regexp"
	"strconv"
)

var teamNumberPattern = regexp.MustCompile(`(?i)team\s*(\d+)`)

// ExtractLmsGroupMembers parses an LMS group-members export.
// Columns: group code, username, student ID, first name, last name.
// The first line is a header and is always skipped.
func ExtractLmsGroupMembers(text string) *GroupMembersExport {
	out := &GroupMembersExport{Students: []StudentRecord{}, Skipped: []SkippedRow{}}

	lines := splitLines(text)
	for i := 1; i < len(lines); i++ {
		if isBlankLine(lines[i]) {
			continue
		}

		fields := trimFields(TokenizeLine(lines[i]))
		if len(fields) < 5 {
			out.Skipped = append(out.Skipped, SkippedRow{Line: i + 1, Reason: "expected 5 columns, got " + strconv.Itoa(len(fields))})
			continue
		}
		if fields[1] == "" {
			out.Skipped = append(out.Skipped, SkippedRow{Line: i + 1, Reason: "missing username"})
			continue
		}

		first, last := fields[3], fields[4]
		rec := StudentRecord{
			GroupCode: fields[0],
			RcsID:     fields[1],
			StudentID: fields[2],
			FirstName: first,
			LastName:  last,
			FullName:  first + " " + last,
		}
		if !rec.HasIdentity() {
			out.Skipped = append(out.Skipped, SkippedRow{Line: i + 1, Reason: "no identifying field"})
			continue
		}
		out.Students = append(out.Students, rec)
	}

	return out
}

// ExtractLmsGroups parses an LMS groups export.
// Columns: group code, title. A team number is taken from titles like "Team 3".
func ExtractLmsGroups(text string) *GroupsExport {
	out := &GroupsExport{Groups: []GroupRecord{}, Skipped: []SkippedRow{}}

	lines := splitLines(text)
	for i := 1; i < len(lines); i++ {
		if isBlankLine(lines[i]) {
			continue
		}

		fields := trimFields(TokenizeLine(lines[i]))
		if len(fields) < 2 || fields[0] == "" || fields[1] == "" {
			out.Skipped = append(out.Skipped, SkippedRow{Line: i + 1, Reason: "missing group code or title"})
			continue
		}

		out.Groups = append(out.Groups, GroupRecord{
			GroupCode:  fields[0],
			Title:      fields[1],
			TeamNumber: parseTeamNumber(fields[1]),
		})
	}

	return out
}

// parseTeamNumber returns the number in "Team 3" style titles, or nil.
func parseTeamNumber(title string) *int {
	m := teamNumberPattern.FindStringSubmatch(title)
	if m == nil {
		return nil
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return nil
	}
	return &n
}
