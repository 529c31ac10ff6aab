package vindex

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	flagQuiet   bool
	flagVerbose bool

	version = "0.1.0"
)

// rootCmd is the base Cobra command for the vindex CLI.
var rootCmd = &cobra.Command{
	Use:           "vindex",
	Short:         "Extract structured evidence from diagnostic-tablet dumps",
	Long:          "vindex scans a forensic filesystem dump of a vehicle-diagnostics tablet and extracts VINs, MAC addresses, credentials, user identifiers, network endpoints and categorized log events into per-category CSV reports.",
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the vindex CLI. It should be called by the main package.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "suppress the progress bar and summary table")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "also log debug-level detail to the run log")
}
