// Command rosterctl classifies and parses roster exports from the command line.
//
// Usage:
//
//	rosterctl classify 202409_12345_classlist.xlsx export.csv
//	rosterctl parse 20240903120000_2409_CSCI_4440_01_groupmembers.csv --json
package main

import (
	"os"

	"github.com/JonMunkholm/roster/internal/logging"
	"github.com/spf13/cobra"
)

var logLevel string

var rootCmd = &cobra.Command{
	Use:   "rosterctl",
	Short: "Inspect SIS and LMS roster exports",
	Long: `rosterctl reads course roster exports (SIS class lists, LMS group
exports and generic CSV or Excel rosters) and reports what the importer
would extract from them.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Setup(logLevel, "text", cmd.ErrOrStderr())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(classifyCmd)
	rootCmd.AddCommand(parseCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
