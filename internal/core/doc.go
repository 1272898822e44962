// Package core provides the roster import engine.
//
// It turns exported roster files into normalized student and group records.
// It has no UI or transport dependencies and can be used by the web server,
// the CLI, or tests without modification.
//
// # Flow
//
//  1. [Classify] inspects only the filename and returns a [FileType] plus the
//     metadata encoded in the name (term, CRN, course code, section).
//  2. [ParseFile] dispatches the content to the extractor for that type.
//  3. The extractor returns an [Extraction]: [SisClasslist],
//     [GroupMembersExport], [GroupsExport] or [GenericCsv].
//
// Recognized filenames:
//
//	202601_36419_classlist.xlsx                              SIS class list
//	20260115093000_2601_ITWS_1100_01_groupmembers.csv        LMS group members
//	20260115093000_2601_ITWS_1100_01_groups.csv              LMS groups
//	anything.csv / anything.xlsx / anything.xls              generic fallbacks
//
// Any other name fails with [ErrUnsupportedFileType].
//
// # Row Handling
//
// Rows missing the fields an extractor needs are dropped rather than passed
// on half-populated. Each extraction lists them in its Skipped field with the
// line number and reason. Numeric cells that fail to parse count as 0.
//
// # Service
//
// [Service] adds what the HTTP and CLI frontends need around ParseFile: a size
// limit, an [ImportLimiter] bounding concurrent parses, and a [HistoryStore]
// recording each import.
//
// # Error Handling
//
// Technical errors are mapped to user-facing messages with [MapError]. Codes
// are listed in error_messages.go.
package core
