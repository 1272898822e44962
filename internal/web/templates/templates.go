// Package templates renders the HTMX fragments returned by the web server.
//
// Components are plain templ.ComponentFunc values so they compose with any
// templ-generated page that embeds them.
package templates

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/JonMunkholm/roster/internal/core"
	"github.com/a-h/templ"
)

// ErrorAlert renders a dismissible error banner with the support code.
func ErrorAlert(message, action, code string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<div class="alert alert-error" role="alert">`)
		fmt.Fprintf(&b, `<p class="alert-message">%s</p>`, templ.EscapeString(message))
		if action != "" {
			fmt.Fprintf(&b, `<p class="alert-action">%s</p>`, templ.EscapeString(action))
		}
		if code != "" {
			fmt.Fprintf(&b, `<p class="alert-code">Code: %s</p>`, templ.EscapeString(code))
		}
		b.WriteString(`</div>`)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

// ImportSummary renders the counts for a completed import and any rows
// that were dropped.
func ImportSummary(res *core.ImportResult) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		var b strings.Builder
		sum := res.Summary

		fmt.Fprintf(&b, `<section class="import-summary" data-import-id="%s">`, templ.EscapeString(res.ID))
		fmt.Fprintf(&b, `<h3>%s</h3>`, templ.EscapeString(typeLabel(sum.Type)))
		if sum.CourseCode != "" || sum.TermDisplay != "" {
			fmt.Fprintf(&b, `<p class="course">%s</p>`,
				templ.EscapeString(strings.TrimSpace(sum.CourseCode+" "+sum.TermDisplay)))
		}

		b.WriteString(`<dl>`)
		fmt.Fprintf(&b, `<dt>Students</dt><dd>%d</dd>`, sum.Students)
		if sum.Groups > 0 {
			fmt.Fprintf(&b, `<dt>Groups</dt><dd>%d</dd>`, sum.Groups)
		}
		fmt.Fprintf(&b, `<dt>Skipped rows</dt><dd>%d</dd>`, sum.Skipped)
		b.WriteString(`</dl>`)

		if skipped := skippedRows(res); len(skipped) > 0 {
			b.WriteString(`<ul class="skipped">`)
			for _, row := range skipped {
				fmt.Fprintf(&b, `<li>Line %d: %s</li>`, row.Line, templ.EscapeString(row.Reason))
			}
			b.WriteString(`</ul>`)
		}
		b.WriteString(`</section>`)

		_, err := io.WriteString(w, b.String())
		return err
	})
}

// HistoryTable renders recent imports, newest first.
func HistoryTable(entries []core.HistoryEntry) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		var b strings.Builder
		if len(entries) == 0 {
			b.WriteString(`<p class="empty">No imports yet</p>`)
			_, err := io.WriteString(w, b.String())
			return err
		}

		b.WriteString(`<table class="history"><thead><tr>`)
		b.WriteString(`<th>File</th><th>Type</th><th>Course</th><th>Students</th><th>Groups</th><th>Skipped</th><th>Parsed</th>`)
		b.WriteString(`</tr></thead><tbody>`)
		for _, e := range entries {
			fmt.Fprintf(&b, `<tr id="import-%s">`, templ.EscapeString(e.ID))
			fmt.Fprintf(&b, `<td>%s</td><td>%s</td><td>%s</td>`,
				templ.EscapeString(e.FileName),
				templ.EscapeString(typeLabel(e.Type)),
				templ.EscapeString(e.CourseCode))
			fmt.Fprintf(&b, `<td>%d</td><td>%d</td><td>%d</td>`, e.Students, e.Groups, e.Skipped)
			fmt.Fprintf(&b, `<td>%s</td></tr>`, e.ParsedAt.Format("2006-01-02 15:04"))
		}
		b.WriteString(`</tbody></table>`)

		_, err := io.WriteString(w, b.String())
		return err
	})
}

func typeLabel(t core.FileType) string {
	switch t {
	case core.TypeSisClasslist:
		return "SIS class list"
	case core.TypeLmsGroupMembers:
		return "LMS group members"
	case core.TypeLmsGroups:
		return "LMS groups"
	case core.TypeGenericCsv:
		return "CSV roster"
	case core.TypeGenericXlsx:
		return "Excel roster"
	default:
		return "Unknown"
	}
}

func skippedRows(res *core.ImportResult) []core.SkippedRow {
	if res.Result == nil {
		return nil
	}
	switch d := res.Result.Data.(type) {
	case *core.SisClasslist:
		return d.Skipped
	case *core.GroupMembersExport:
		return d.Skipped
	case *core.GroupsExport:
		return d.Skipped
	case *core.GenericCsv:
		return d.Skipped
	}
	return nil
}
