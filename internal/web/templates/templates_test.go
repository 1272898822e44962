package templates

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/JonMunkholm/roster/internal/core"
	"github.com/a-h/templ"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var b strings.Builder
	if err := c.Render(context.Background(), &b); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	return b.String()
}

func TestErrorAlert_Escapes(t *testing.T) {
	got := render(t, ErrorAlert("<script>x</script>", "Try again", "FILE002"))

	if strings.Contains(got, "<script>") {
		t.Errorf("ErrorAlert() did not escape the message: %s", got)
	}
	for _, want := range []string{"Try again", "Code: FILE002", `role="alert"`} {
		if !strings.Contains(got, want) {
			t.Errorf("ErrorAlert() missing %q in %s", want, got)
		}
	}
}

func TestErrorAlert_OmitsEmptyParts(t *testing.T) {
	got := render(t, ErrorAlert("Failed", "", ""))
	if strings.Contains(got, "alert-action") || strings.Contains(got, "alert-code") {
		t.Errorf("ErrorAlert() rendered empty parts: %s", got)
	}
}

func TestImportSummary(t *testing.T) {
	res := &core.ImportResult{
		ID: "abc",
		Summary: core.Summary{
			Type: core.TypeLmsGroupMembers, Students: 2, Skipped: 1,
			CourseCode: "ITWS-1100", TermDisplay: "Spring 2026",
		},
		Result: &core.ParseResult{
			Type: core.TypeLmsGroupMembers,
			Data: &core.GroupMembersExport{
				Skipped: []core.SkippedRow{{Line: 4, Reason: "no group code"}},
			},
		},
	}

	got := render(t, ImportSummary(res))
	for _, want := range []string{
		`data-import-id="abc"`,
		"LMS group members",
		"ITWS-1100 Spring 2026",
		"<dt>Students</dt><dd>2</dd>",
		"Line 4: no group code",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("ImportSummary() missing %q in %s", want, got)
		}
	}
	if strings.Contains(got, "<dt>Groups</dt>") {
		t.Error("ImportSummary() rendered a zero group count")
	}
}

func TestHistoryTable(t *testing.T) {
	if got := render(t, HistoryTable(nil)); !strings.Contains(got, "No imports yet") {
		t.Errorf("HistoryTable(nil) = %s", got)
	}

	entries := []core.HistoryEntry{{
		ID:       "abc",
		FileName: "roster.csv",
		Type:     core.TypeGenericCsv,
		Students: 30,
		ParsedAt: time.Date(2026, 1, 15, 9, 30, 0, 0, time.UTC),
	}}
	got := render(t, HistoryTable(entries))
	for _, want := range []string{`id="import-abc"`, "roster.csv", "CSV roster", "<td>30</td>", "2026-01-15 09:30"} {
		if !strings.Contains(got, want) {
			t.Errorf("HistoryTable() missing %q in %s", want, got)
		}
	}
}
