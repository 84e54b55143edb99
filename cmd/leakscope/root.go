package leakscope

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	flagJSON            bool
	flagThreads         int
	flagNoColor         bool
	flagNoCache         bool
	flagDefaultExcludes bool

	version = "0.1.0"
)

// rootCmd is the base Cobra command for the Leakscope CLI.
var rootCmd = &cobra.Command{
	Use:           "leakscope",
	Short:         "Find sensitive information in a directory tree",
	Long:          "Leakscope walks a directory, decodes text files and reports sensitive information (phone numbers, credentials, keys, internal URLs) with exact file/line locations, grouped by risk.",
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the Leakscope CLI. It should be called by the main package.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(2)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "emit match records as JSON")
	rootCmd.PersistentFlags().IntVar(&flagThreads, "threads", 0, "worker count: 2, 4, 8 or 16 (0 = default)")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable colorized output")
	rootCmd.PersistentFlags().BoolVar(&flagNoCache, "no-cache", false, "disable the incremental results cache")
	rootCmd.PersistentFlags().BoolVar(&flagDefaultExcludes, "default-excludes", true, "apply built-in exclude list (node_modules, dist, lockfiles, etc.)")
}
