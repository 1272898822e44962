package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/JonMunkholm/roster/internal/core"
	"github.com/spf13/cobra"
)

var (
	parseJSON     bool
	parseStudents bool
)

var parseCmd = &cobra.Command{
	Use:   "parse FILE",
	Short: "Parse a roster export and summarise it",
	Long: `Parses a roster file the same way the server does, including the
size limit. By default a summary and any skipped rows are printed;
--students lists every extracted student and --json prints the full result.`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().BoolVar(&parseJSON, "json", false, "Print the full parse result as JSON")
	parseCmd.Flags().BoolVar(&parseStudents, "students", false, "List extracted students")
}

func runParse(cmd *cobra.Command, args []string) error {
	path := args[0]
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	size := int64(-1)
	if info, err := f.Stat(); err == nil {
		size = info.Size()
	}

	service := core.NewService(nil, nil)
	result, err := service.Import(cmd.Context(), filepath.Base(path), f, size)
	if err != nil {
		return fmt.Errorf("%s: %s", path, core.FormatUserError(err))
	}

	out := cmd.OutOrStdout()
	if parseJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	printSummary(out, result)
	if parseStudents {
		return printStudents(out, students(result.Result.Data))
	}
	return nil
}

func printSummary(w io.Writer, res *core.ImportResult) {
	sum := res.Summary
	fmt.Fprintf(w, "type:     %s\n", sum.Type)
	if sum.CourseCode != "" {
		fmt.Fprintf(w, "course:   %s\n", sum.CourseCode)
	}
	if sum.TermDisplay != "" {
		fmt.Fprintf(w, "term:     %s\n", sum.TermDisplay)
	}
	fmt.Fprintf(w, "students: %d\n", sum.Students)
	if sum.Groups > 0 {
		fmt.Fprintf(w, "groups:   %d\n", sum.Groups)
	}
	fmt.Fprintf(w, "skipped:  %d\n", sum.Skipped)

	if g, ok := res.Result.Data.(*core.GenericCsv); ok {
		fmt.Fprintf(w, "columns:  %s\n", describeColumns(g.Headers, g.DetectedColumns))
	}
	for _, row := range skipped(res.Result.Data) {
		fmt.Fprintf(w, "  line %d: %s\n", row.Line, row.Reason)
	}
}

func printStudents(w io.Writer, list []core.StudentRecord) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tID\tUSERNAME\tEMAIL\tGROUP")
	for _, s := range list {
		group := s.GroupCode
		if group == "" {
			group = s.Team
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", s.FullName, s.StudentID, s.RcsID, s.Email, group)
	}
	return tw.Flush()
}

func describeColumns(headers []string, cols core.DetectedColumns) string {
	named := []struct {
		label string
		idx   core.ColumnIndex
	}{
		{"username", cols.Username},
		{"email", cols.Email},
		{"id", cols.StudentID},
		{"first", cols.FirstName},
		{"last", cols.LastName},
		{"name", cols.FullName},
		{"team", cols.Team},
		{"discord", cols.DiscordUsername},
	}

	var parts []string
	for _, n := range named {
		if n.idx.Found() && int(n.idx) < len(headers) {
			parts = append(parts, fmt.Sprintf("%s=%q", n.label, headers[n.idx]))
		}
	}
	if len(parts) == 0 {
		return "none detected"
	}
	return strings.Join(parts, " ")
}

func students(data core.Extraction) []core.StudentRecord {
	switch d := data.(type) {
	case *core.SisClasslist:
		return d.Students
	case *core.GroupMembersExport:
		return d.Students
	case *core.GenericCsv:
		return d.Students
	}
	return nil
}

func skipped(data core.Extraction) []core.SkippedRow {
	switch d := data.(type) {
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
