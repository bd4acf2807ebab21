package corelint

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	flagThreads int
	flagNoCache bool

	version = "0.1.0"
)

// rootCmd is the base Cobra command for the corelint CLI.
var rootCmd = &cobra.Command{
	Use:           "corelint",
	Short:         "Enforce source policy over a C/C++ engine tree",
	Long:          "corelint scans Source/Core (and optionally Source/Modules) for banned constructs: exception and RTTI tokens, raw new/delete, heavy STL headers, non-ASCII bytes, and Core-only ownership rules.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the corelint CLI. It should be called by the main package.
// Exit codes: 0 clean, 1 policy failure, 2 usage or internal error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(2)
	}
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagThreads, "threads", 0, "worker count (0 = GOMAXPROCS)")
	rootCmd.PersistentFlags().BoolVar(&flagNoCache, "no-cache", false, "disable the clean-file scan cache")
}
