package core

import (
	"regexp"
	"strings"
)

var (
	sisClasslistPattern = regexp.MustCompile(`(?i)^(\d{6})_(\d+)_classlist\.xlsx$`)
	lmsMembersPattern   = regexp.MustCompile(`(?i)^(\d{14})_(\d{4})_([A-Z]+)_(\d{4})_(\d{2})_groupmembers\.csv$`)
	lmsGroupsPattern    = regexp.MustCompile(`(?i)^(\d{14})_(\d{4})_([A-Z]+)_(\d{4})_(\d{2})_groups\.csv$`)
)

// classifyRule pairs a filename test with the metadata it extracts.
// match returns false when the rule does not apply.
type classifyRule struct {
	fileType FileType
	match    func(name string) (FileMetadata, bool)
}

// classifyRules is evaluated in order; the first matching rule wins.
var classifyRules = []classifyRule{
	{TypeSisClasslist, matchSisClasslist},
	{TypeLmsGroupMembers, matchLmsExport(lmsMembersPattern)},
	{TypeLmsGroups, matchLmsExport(lmsGroupsPattern)},
	{TypeGenericCsv, matchSuffix(".csv")},
	{TypeGenericXlsx, matchSuffix(".xlsx", ".xls")},
}

// Classify inspects a filename and returns its type and the metadata encoded in it.
// It never reads file content. Names matching no rule classify as TypeUnknown.
func Classify(filename string) Classification {
	for _, rule := range classifyRules {
		if meta, ok := rule.match(filename); ok {
			return Classification{Filename: filename, Type: rule.fileType, Metadata: meta}
		}
	}
	return Classification{Filename: filename, Type: TypeUnknown}
}

func matchSisClasslist(name string) (FileMetadata, bool) {
	m := sisClasslistPattern.FindStringSubmatch(name)
	if m == nil {
		return FileMetadata{}, false
	}
	meta := FileMetadata{TermCode: m[1], CRN: m[2]}
	if term, ok := ParseTermCode(m[1]); ok {
		meta.Term = &term
	}
	return meta, true
}

func matchLmsExport(pattern *regexp.Regexp) func(string) (FileMetadata, bool) {
	return func(name string) (FileMetadata, bool) {
		m := pattern.FindStringSubmatch(name)
		if m == nil {
			return FileMetadata{}, false
		}
		dept := strings.ToUpper(m[3])
		meta := FileMetadata{
			Timestamp:    m[1],
			TermCode:     m[2],
			Department:   dept,
			CourseNumber: m[4],
			Section:      m[5],
			CourseCode:   dept + "-" + m[4],
		}
		if term, ok := ParseLmsTermCode(m[2]); ok {
			meta.Term = &term
		}
		return meta, true
	}
}

func matchSuffix(suffixes ...string) func(string) (FileMetadata, bool) {
	return func(name string) (FileMetadata, bool) {
		lower := strings.ToLower(name)
		for _, s := range suffixes {
			if strings.HasSuffix(lower, s) {
				return FileMetadata{}, true
			}
		}
		return FileMetadata{}, false
	}
}
