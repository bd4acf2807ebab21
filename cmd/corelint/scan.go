package corelint

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/corelint/corelint/internal/audit"
	"github.com/corelint/corelint/internal/config"
	"github.com/corelint/corelint/internal/engine"
	"github.com/corelint/corelint/internal/policy"
	"github.com/corelint/corelint/internal/report"
	"github.com/corelint/corelint/internal/types"
)

var (
	flagRoot         string
	flagModules      bool
	flagStrict       bool
	flagNoAllowlists bool
	flagInclude      string
	flagExclude      string
	flagMaxBytes     int64
	flagPolicyFile   string
	flagJSON         bool
	flagSARIF        bool
	flagSummary      bool
	flagNoAudit      bool
)

func init() {
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan the source tree for policy violations",
		RunE:  runScan,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().StringVarP(&flagRoot, "root", "p", ".", "repository root to scan")
	cmd.Flags().BoolVar(&flagModules, "modules", false, "also scan the modules subtree")
	cmd.Flags().BoolVar(&flagStrict, "strict", false, "fail if any unblessed allowlist entry is exercised")
	cmd.Flags().BoolVar(&flagNoAllowlists, "no-allowlists", false, "fail immediately if any allowlist map is non-empty (cleanup mode)")
	cmd.Flags().StringVar(&flagInclude, "include", "", "comma-separated include globs")
	cmd.Flags().StringVar(&flagExclude, "exclude", "", "comma-separated exclude globs")
	cmd.Flags().Int64Var(&flagMaxBytes, "max-bytes", 1<<20, "skip files larger than this")
	cmd.Flags().StringVar(&flagPolicyFile, "policy", "", "YAML policy file overlaying the built-in rule tables")
	cmd.Flags().BoolVar(&flagJSON, "json", false, "emit JSON")
	cmd.Flags().BoolVar(&flagSARIF, "sarif", false, "emit SARIF 2.1.0")
	cmd.Flags().BoolVar(&flagSummary, "summary", false, "print a per-rule violation count table")
	cmd.Flags().BoolVar(&flagNoAudit, "no-audit", false, "do not append a scan record to the audit log")
	cmd.MarkFlagsMutuallyExclusive("strict", "no-allowlists")
}

func runScan(_ *cobra.Command, _ []string) error {
	abs, err := filepath.Abs(flagRoot)
	if err != nil {
		return fmt.Errorf("resolve root: %w", err)
	}

	// Config precedence: CLI > repo-local file > global file.
	var gcfg, lcfg config.FileConfig
	if c, err := config.LoadGlobal(); err == nil {
		gcfg = c
	}
	if c, err := config.LoadLocal(abs); err == nil {
		lcfg = c
	}

	pol, err := loadPolicy(abs, pickString(flagPolicyFile, lcfg.Policy, gcfg.Policy))
	if err != nil {
		return err
	}

	mode := report.ModeDefault
	switch {
	case flagStrict:
		mode = report.ModeStrict
	case flagNoAllowlists:
		mode = report.ModeNoAllowlists
	}

	// The cleanup gate runs before any file is touched.
	if mode == report.ModeNoAllowlists {
		if !report.CheckAllowlistGate(os.Stdout, pol) {
			os.Exit(1)
		}
	}

	cfg := engine.Config{
		Root:           abs,
		IncludeModules: pickBool(flagModules, lcfg.Modules, gcfg.Modules),
		IncludeGlobs:   pickString(flagInclude, lcfg.Include, gcfg.Include),
		ExcludeGlobs:   pickString(flagExclude, lcfg.Exclude, gcfg.Exclude),
		MaxBytes:       pickInt64(flagMaxBytes, lcfg.MaxBytes, gcfg.MaxBytes),
		Threads:        pickInt(flagThreads, lcfg.Threads, gcfg.Threads),
		NoCache:        pickBool(flagNoCache, lcfg.NoCache, gcfg.NoCache),
	}

	if !flagJSON && !flagSARIF {
		fmt.Fprintf(os.Stderr, "Scanning %s (%d rule families)...\n", abs, len(engine.RuleIDs()))
	}

	res, err := engine.Scan(cfg, pol)
	if err != nil {
		return fmt.Errorf("scan error: %w", err)
	}

	failed := false
	switch {
	case flagSARIF:
		if err := report.WriteSARIF(os.Stdout, version, res.Violations); err != nil {
			return fmt.Errorf("sarif error: %w", err)
		}
		failed = decide(mode, res, pol)
	case flagJSON:
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(jsonReport(res)); err != nil {
			return err
		}
		failed = decide(mode, res, pol)
	default:
		failed = report.Render(os.Stdout, mode, res.Violations, res.Hits, pol)
		if flagSummary {
			fmt.Fprintln(os.Stdout)
			report.PrintRuleSummary(os.Stdout, res.Violations, engine.RuleIDs())
		}
	}

	if !flagNoAudit {
		_ = audit.Append(abs, audit.ScanRecord{
			Root:         abs,
			Mode:         modeName(mode),
			Violations:   len(res.Violations),
			AllowlistUse: len(res.Hits),
			FilesScanned: res.FilesScanned,
			FilesCached:  res.FilesCached,
			Duration:     res.Duration.String(),
			Failed:       failed,
		})
	}

	if failed {
		os.Exit(1)
	}
	return nil
}

// decide applies the enforcement policy without rendering, for the machine
// output formats.
func decide(mode report.Mode, res engine.Result, pol *policy.Config) bool {
	if len(res.Violations) > 0 {
		return true
	}
	return mode == report.ModeStrict && len(report.Unblessed(res.Hits, pol)) > 0
}

func loadPolicy(root, path string) (*policy.Config, error) {
	if path == "" {
		return policy.Default(), nil
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(root, path)
	}
	pol, err := policy.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load policy: %w", err)
	}
	return pol, nil
}

func modeName(mode report.Mode) string {
	switch mode {
	case report.ModeStrict:
		return "strict"
	case report.ModeNoAllowlists:
		return "no-allowlists"
	default:
		return "default"
	}
}

type scanJSON struct {
	Violations []types.Violation    `json:"violations"`
	Hits       []types.AllowlistHit `json:"allowlist_hits"`
}

func jsonReport(res engine.Result) scanJSON {
	out := scanJSON{Violations: res.Violations, Hits: res.Hits}
	if out.Violations == nil {
		out.Violations = []types.Violation{}
	}
	if out.Hits == nil {
		out.Hits = []types.AllowlistHit{}
	}
	return out
}
