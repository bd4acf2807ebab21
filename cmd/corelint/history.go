package corelint

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/corelint/corelint/internal/audit"
)

func init() {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent scan outcomes from the audit log",
		RunE: func(_ *cobra.Command, _ []string) error {
			abs, _ := filepath.Abs(flagRoot)
			recs, err := audit.History(abs)
			if err != nil {
				return err
			}
			if len(recs) == 0 {
				fmt.Fprintln(os.Stdout, "No scan history.")
				return nil
			}
			if limit > 0 && len(recs) > limit {
				recs = recs[:limit]
			}
			for _, r := range recs {
				status := "ok"
				if r.Failed {
					status = "FAIL"
				}
				fmt.Fprintf(os.Stdout, "%s  %-13s %-4s violations=%d hits=%d files=%d (%s)\n",
					r.Timestamp.Format("2006-01-02 15:04:05"), r.Mode, status,
					r.Violations, r.AllowlistUse, r.FilesScanned, r.Duration)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&flagRoot, "root", "p", ".", "repository root")
	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "max records to show")
	rootCmd.AddCommand(cmd)
}
