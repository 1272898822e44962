package main

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"text/tabwriter"

	"github.com/JonMunkholm/roster/internal/core"
	"github.com/spf13/cobra"
)

var classifyJSON bool

var classifyCmd = &cobra.Command{
	Use:   "classify FILE...",
	Short: "Show how each filename would be parsed",
	Long: `Classifies files by name only; contents are never read. The
metadata column shows what the filename encodes (term, CRN, course).`,
	Args: cobra.MinimumNArgs(1),
	RunE: runClassify,
}

func init() {
	classifyCmd.Flags().BoolVar(&classifyJSON, "json", false, "Print classifications as JSON")
}

func runClassify(cmd *cobra.Command, args []string) error {
	results := make([]core.Classification, 0, len(args))
	for _, arg := range args {
		results = append(results, core.Classify(filepath.Base(arg)))
	}

	if classifyJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "FILE\tTYPE\tMETADATA")
	for _, c := range results {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", c.Filename, c.Type, describeMetadata(c.Metadata))
	}
	return tw.Flush()
}

func describeMetadata(m core.FileMetadata) string {
	var out string
	add := func(label, v string) {
		if v == "" {
			return
		}
		if out != "" {
			out += " "
		}
		out += label + "=" + v
	}

	if m.Term != nil {
		add("term", m.Term.Display)
	}
	add("crn", m.CRN)
	add("course", m.CourseCode)
	add("section", m.Section)
	if out == "" {
		return "-"
	}
	return out
}
