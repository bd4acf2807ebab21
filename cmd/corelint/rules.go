package corelint

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/corelint/corelint/internal/engine"
)

func init() {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List rule families",
		Run: func(_ *cobra.Command, _ []string) {
			for _, id := range engine.RuleIDs() {
				fmt.Println(id)
			}
		},
	}
	rootCmd.AddCommand(cmd)
}
