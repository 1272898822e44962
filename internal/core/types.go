// Package core provides the roster import engine.
// This package has no UI dependencies and can be used by any frontend.
package core

import "time"

// FileType tags the kind of export a filename was classified as.
type FileType string

const (
	TypeSisClasslist    FileType = "sis_classlist"
	TypeLmsGroupMembers FileType = "lms_groupmembers"
	TypeLmsGroups       FileType = "lms_groups"
	TypeGenericCsv      FileType = "generic_csv"
	TypeGenericXlsx     FileType = "generic_xlsx"
	TypeUnknown         FileType = "unknown"
)

// Semester is the human name of an academic term's season.
type Semester string

const (
	SemesterSpring  Semester = "Spring"
	SemesterSummer  Semester = "Summer"
	SemesterFall    Semester = "Fall"
	SemesterUnknown Semester = "Unknown"
)

// TermCode is a decoded academic term such as "202609" (Fall 2026).
type TermCode struct {
	Raw      string   `json:"raw"`      // Code as it appeared: "202609" or "2609"
	Year     int      `json:"year"`     // Four-digit year
	Code     string   `json:"code"`     // Two-digit semester code: "01", "05", "09"
	Semester Semester `json:"semester"` // Spring, Summer, Fall or Unknown
	Display  string   `json:"display"`  // "Fall 2026"
}

// FileMetadata holds what could be read from the filename itself.
// Which fields are set depends on the classification type.
type FileMetadata struct {
	Term         *TermCode `json:"term,omitempty"`
	TermCode     string    `json:"termCode,omitempty"`
	CRN          string    `json:"crn,omitempty"`
	Timestamp    string    `json:"timestamp,omitempty"`
	Department   string    `json:"department,omitempty"`
	CourseNumber string    `json:"courseNumber,omitempty"`
	Section      string    `json:"section,omitempty"`
	CourseCode   string    `json:"courseCode,omitempty"`
}

// Classification is the result of inspecting a filename.
type Classification struct {
	Filename string       `json:"filename"`
	Type     FileType     `json:"type"`
	Metadata FileMetadata `json:"metadata"`
}

// StudentRecord is one normalized enrollee row.
type StudentRecord struct {
	FullName           string `json:"fullName"`
	FirstName          string `json:"firstName"`
	LastName           string `json:"lastName"`
	PreferredName      string `json:"preferredName"`
	RcsID              string `json:"rcsId,omitempty"`
	StudentID          string `json:"studentId,omitempty"`
	Email              string `json:"email,omitempty"`
	DiscordUsername    string `json:"discordUsername,omitempty"`
	RegistrationStatus string `json:"registrationStatus,omitempty"`
	Level              string `json:"level,omitempty"`
	CreditHours        string `json:"creditHours,omitempty"`
	ClassYear          string `json:"classYear,omitempty"`
	GroupCode          string `json:"groupCode,omitempty"`
	Team               string `json:"team,omitempty"`
}

// HasHandle reports whether the record can be matched to an account: a
// username, email, student ID or Discord handle.
func (r StudentRecord) HasHandle() bool {
	return r.RcsID != "" || r.StudentID != "" || r.Email != "" || r.DiscordUsername != ""
}

// HasIdentity reports whether the record carries a handle or a name.
// Extractors never emit a record without one.
func (r StudentRecord) HasIdentity() bool {
	return r.HasHandle() || r.FullName != ""
}

// GroupRecord is a named team parsed from a groups export.
type GroupRecord struct {
	GroupCode  string `json:"groupCode"`
	Title      string `json:"title"`
	TeamNumber *int   `json:"teamNumber,omitempty"`
}

// SkippedRow describes a row an extractor dropped.
type SkippedRow struct {
	Line   int    `json:"line"` // 1-indexed line or sheet row
	Reason string `json:"reason"`
}

// CourseInfo is the header block of a SIS class list.
type CourseInfo struct {
	FullTitle    string `json:"fullTitle"`
	Department   string `json:"department,omitempty"`
	CourseNumber string `json:"courseNumber,omitempty"`
	Section      string `json:"section,omitempty"`
	CourseCode   string `json:"courseCode,omitempty"`
	TermDisplay  string `json:"termDisplay,omitempty"`
	TermCode     string `json:"termCode,omitempty"`
	CRN          string `json:"crn,omitempty"`
	Duration     string `json:"duration,omitempty"`
	Status       string `json:"status,omitempty"`
}

// EnrollmentCounts are the seat counts printed on a SIS class list.
type EnrollmentCounts struct {
	Maximum   int `json:"maximum"`
	Actual    int `json:"actual"`
	Remaining int `json:"remaining"`
}

// Extraction is the data produced by one of the extractors.
type Extraction interface {
	Summary() Summary
}

// SisClasslist is the output of the SIS class list extractor.
type SisClasslist struct {
	CourseInfo       CourseInfo       `json:"courseInfo"`
	EnrollmentCounts EnrollmentCounts `json:"enrollmentCounts"`
	Students         []StudentRecord  `json:"students"`
	Skipped          []SkippedRow     `json:"skipped"`
}

// GroupMembersExport is the output of the LMS group-members extractor.
type GroupMembersExport struct {
	Students []StudentRecord `json:"students"`
	Skipped  []SkippedRow    `json:"skipped"`
}

// GroupsExport is the output of the LMS groups extractor.
type GroupsExport struct {
	Groups  []GroupRecord `json:"groups"`
	Skipped []SkippedRow  `json:"skipped"`
}

// GenericCsv is the output of the generic CSV extractor.
type GenericCsv struct {
	Headers         []string        `json:"headers"`
	Students        []StudentRecord `json:"students"`
	DetectedColumns DetectedColumns `json:"detectedColumns"`
	Skipped         []SkippedRow    `json:"skipped"`
}

// ParseResult is the tagged output of ParseFile.
type ParseResult struct {
	Type     FileType     `json:"type"`
	Metadata FileMetadata `json:"metadata"`
	Data     Extraction   `json:"data"`
}

// Summary is a compact description of a parse, used for logs and previews.
type Summary struct {
	Type        FileType `json:"type"`
	Students    int      `json:"students"`
	Groups      int      `json:"groups"`
	Skipped     int      `json:"skipped"`
	CourseCode  string   `json:"courseCode,omitempty"`
	TermDisplay string   `json:"termDisplay,omitempty"`
}

// Summary implements Extraction.
func (c *SisClasslist) Summary() Summary {
	return Summary{
		Type:        TypeSisClasslist,
		Students:    len(c.Students),
		Skipped:     len(c.Skipped),
		CourseCode:  c.CourseInfo.CourseCode,
		TermDisplay: c.CourseInfo.TermDisplay,
	}
}

// Summary implements Extraction.
func (e *GroupMembersExport) Summary() Summary {
	return Summary{Type: TypeLmsGroupMembers, Students: len(e.Students), Skipped: len(e.Skipped)}
}

// Summary implements Extraction.
func (e *GroupsExport) Summary() Summary {
	return Summary{Type: TypeLmsGroups, Groups: len(e.Groups), Skipped: len(e.Skipped)}
}

// Summary implements Extraction.
func (g *GenericCsv) Summary() Summary {
	return Summary{Type: TypeGenericCsv, Students: len(g.Students), Skipped: len(g.Skipped)}
}

// Summary combines the filename metadata with the extraction counts.
// Filename metadata fills course and term when the content did not.
func (r *ParseResult) Summary() Summary {
	var s Summary
	if r.Data != nil {
		s = r.Data.Summary()
	}
	s.Type = r.Type
	if s.CourseCode == "" {
		s.CourseCode = r.Metadata.CourseCode
	}
	if s.TermDisplay == "" && r.Metadata.Term != nil {
		s.TermDisplay = r.Metadata.Term.Display
	}
	return s
}

// HistoryEntry records one completed import.
type HistoryEntry struct {
	ID          string        `json:"id"`
	FileName    string        `json:"fileName"`
	Type        FileType      `json:"type"`
	CourseCode  string        `json:"courseCode,omitempty"`
	TermDisplay string        `json:"termDisplay,omitempty"`
	Students    int           `json:"students"`
	Groups      int           `json:"groups"`
	Skipped     int           `json:"skipped"`
	SizeBytes   int64         `json:"sizeBytes"`
	ParsedAt    time.Time     `json:"parsedAt"`
	Duration    time.Duration `json:"durationNs"`
}

// ImportResult is returned by Service.Import.
type ImportResult struct {
	ID      string       `json:"id"`
	Summary Summary      `json:"summary"`
	Result  *ParseResult `json:"result"`
}
