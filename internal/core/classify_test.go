package core

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseTermCode(t *testing.T) {
	tests := []struct {
		code   string
		want   TermCode
		wantOK bool
	}{
		{"202601", TermCode{Raw: "202601", Year: 2026, Code: "01", Semester: SemesterSpring, Display: "Spring 2026"}, true},
		{"202505", TermCode{Raw: "202505", Year: 2025, Code: "05", Semester: SemesterSummer, Display: "Summer 2025"}, true},
		{"202409", TermCode{Raw: "202409", Year: 2024, Code: "09", Semester: SemesterFall, Display: "Fall 2024"}, true},
		{"202403", TermCode{Raw: "202403", Year: 2024, Code: "03", Semester: SemesterUnknown, Display: "Unknown 2024"}, true},
		{"20240", TermCode{}, false},
		{"2024a9", TermCode{}, false},
		{"", TermCode{}, false},
	}

	for _, tt := range tests {
		got, ok := ParseTermCode(tt.code)
		if ok != tt.wantOK {
			t.Errorf("ParseTermCode(%q) ok = %v, want %v", tt.code, ok, tt.wantOK)
			continue
		}
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("ParseTermCode(%q) mismatch (-want +got):\n%s", tt.code, diff)
		}
	}
}

func TestParseLmsTermCode(t *testing.T) {
	tests := []struct {
		code        string
		wantDisplay string
		wantOK      bool
	}{
		{"2601", "Spring 2026", true},
		{"2409", "Fall 2024", true},
		{"0005", "Summer 2000", true},
		{"202601", "", false},
		{"26x1", "", false},
	}

	for _, tt := range tests {
		got, ok := ParseLmsTermCode(tt.code)
		if ok != tt.wantOK {
			t.Errorf("ParseLmsTermCode(%q) ok = %v, want %v", tt.code, ok, tt.wantOK)
			continue
		}
		if got.Display != tt.wantDisplay {
			t.Errorf("ParseLmsTermCode(%q).Display = %q, want %q", tt.code, got.Display, tt.wantDisplay)
		}
		if ok && got.String() != got.Display {
			t.Errorf("String() = %q, want %q", got.String(), got.Display)
		}
	}
}

func TestClassify(t *testing.T) {
	fall2024, _ := ParseTermCode("202409")
	spring2026Sis, _ := ParseTermCode("202601")
	spring2026, _ := ParseLmsTermCode("2601")

	tests := []struct {
		name     string
		filename string
		want     Classification
	}{
		{
			name:     "sis class list",
			filename: "202409_12345_classlist.xlsx",
			want: Classification{
				Filename: "202409_12345_classlist.xlsx",
				Type:     TypeSisClasslist,
				Metadata: FileMetadata{Term: &fall2024, TermCode: "202409", CRN: "12345"},
			},
		},
		{
			name:     "sis class list upper case extension",
			filename: "202409_12345_CLASSLIST.XLSX",
			want: Classification{
				Filename: "202409_12345_CLASSLIST.XLSX",
				Type:     TypeSisClasslist,
				Metadata: FileMetadata{Term: &fall2024, TermCode: "202409", CRN: "12345"},
			},
		},
		{
			name:     "sis class list spring term",
			filename: "202601_36419_classlist.xlsx",
			want: Classification{
				Filename: "202601_36419_classlist.xlsx",
				Type:     TypeSisClasslist,
				Metadata: FileMetadata{Term: &spring2026Sis, TermCode: "202601", CRN: "36419"},
			},
		},
		{
			name:     "lms group members",
			filename: "20260115093000_2601_itws_1100_01_groupmembers.csv",
			want: Classification{
				Filename: "20260115093000_2601_itws_1100_01_groupmembers.csv",
				Type:     TypeLmsGroupMembers,
				Metadata: FileMetadata{
					Term:         &spring2026,
					TermCode:     "2601",
					Timestamp:    "20260115093000",
					Department:   "ITWS",
					CourseNumber: "1100",
					Section:      "01",
					CourseCode:   "ITWS-1100",
				},
			},
		},
		{
			name:     "lms groups",
			filename: "20260115093000_2601_ITWS_1100_01_groups.csv",
			want: Classification{
				Filename: "20260115093000_2601_ITWS_1100_01_groups.csv",
				Type:     TypeLmsGroups,
				Metadata: FileMetadata{
					Term:         &spring2026,
					TermCode:     "2601",
					Timestamp:    "20260115093000",
					Department:   "ITWS",
					CourseNumber: "1100",
					Section:      "01",
					CourseCode:   "ITWS-1100",
				},
			},
		},
		{
			name:     "lms shape with wrong timestamp width falls back to csv",
			filename: "2026011509_2601_ITWS_1100_01_groups.csv",
			want:     Classification{Filename: "2026011509_2601_ITWS_1100_01_groups.csv", Type: TypeGenericCsv},
		},
		{
			name:     "generic csv",
			filename: "Roster.CSV",
			want:     Classification{Filename: "Roster.CSV", Type: TypeGenericCsv},
		},
		{
			name:     "generic xlsx",
			filename: "students.xlsx",
			want:     Classification{Filename: "students.xlsx", Type: TypeGenericXlsx},
		},
		{
			name:     "legacy xls",
			filename: "students.xls",
			want:     Classification{Filename: "students.xls", Type: TypeGenericXlsx},
		},
		{
			name:     "sis pattern with csv extension is generic",
			filename: "202409_12345_classlist.csv",
			want:     Classification{Filename: "202409_12345_classlist.csv", Type: TypeGenericCsv},
		},
		{
			name:     "unknown",
			filename: "notes.txt",
			want:     Classification{Filename: "notes.txt", Type: TypeUnknown},
		},
		{
			name:     "empty name",
			filename: "",
			want:     Classification{Type: TypeUnknown},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.filename)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Classify(%q) mismatch (-want +got):\n%s", tt.filename, diff)
			}
		})
	}
}
