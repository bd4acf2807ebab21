package corelint

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/corelint/corelint/internal/selftest"
)

func init() {
	cmd := &cobra.Command{
		Use:   "selftest",
		Short: "Verify the scanner still detects a planted violation",
		Long:  "selftest copies a fixture with a known banned construct into a synthetic core tree and runs a strict scan through the production entry point. It exits non-zero only when the scanner fails to detect the violation.",
		RunE: func(_ *cobra.Command, _ []string) error {
			return selftest.Run(os.Stdout)
		},
	}
	rootCmd.AddCommand(cmd)
}
