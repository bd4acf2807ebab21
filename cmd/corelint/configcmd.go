package corelint

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/corelint/corelint/internal/config"
)

const starterConfig = `# corelint configuration (CLI flags override these values)
# include: "Source/Core/**"
# exclude: "Source/Core/ThirdParty/**"
# max_bytes: 1048576
# threads: 0
# modules: false
# policy: corelint.policy.yml
`

const starterPolicy = `# corelint policy overlay. Omitted sections keep the built-in defaults.
# core_subtree: Source/Core
# modules_subtree: Source/Modules
# forbidden_tokens: [throw, try, catch, dynamic_cast, typeid]
# heavy_includes: [regex, filesystem, iostream, locale]
#
# token_allowlist:
#   Source/Core/Except/Translate.cpp: [throw]
# core_token_allowlist:
#   Source/Core/Memory/GlobalNewDelete.cpp: [malloc, free]
# heavy_include_allowlist:
#   Source/Core/Log/Sink.cpp: [iostream]
# blessed:
#   - path: Source/Core/Memory/GlobalNewDelete.cpp
#     reason: core:malloc
`

func init() {
	cfg := &cobra.Command{Use: "config", Short: "Manage corelint configuration files"}
	rootCmd.AddCommand(cfg)

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write starter .corelint.yml and corelint.policy.yml files",
		RunE: func(_ *cobra.Command, _ []string) error {
			wrote := 0
			for _, f := range []struct{ name, body string }{
				{".corelint.yml", starterConfig},
				{"corelint.policy.yml", starterPolicy},
			} {
				p := filepath.Join(flagRoot, f.name)
				if _, err := os.Stat(p); err == nil {
					fmt.Fprintln(os.Stderr, "exists, skipping:", f.name)
					continue
				}
				if err := os.WriteFile(p, []byte(f.body), 0644); err != nil {
					return err
				}
				fmt.Fprintln(os.Stdout, "Wrote", f.name)
				wrote++
			}
			if wrote == 0 {
				fmt.Fprintln(os.Stdout, "Nothing to do.")
			}
			return nil
		},
	}
	initCmd.Flags().StringVarP(&flagRoot, "root", "p", ".", "repository root")
	cfg.AddCommand(initCmd)

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration and policy summary",
		RunE: func(_ *cobra.Command, _ []string) error {
			abs, err := filepath.Abs(flagRoot)
			if err != nil {
				return err
			}
			var gcfg, lcfg config.FileConfig
			if c, err := config.LoadGlobal(); err == nil {
				gcfg = c
			}
			if c, err := config.LoadLocal(abs); err == nil {
				lcfg = c
			}

			fmt.Println("root:", abs)
			fmt.Println("include:", orDefault(pickString("", lcfg.Include, gcfg.Include), "(all)"))
			fmt.Println("exclude:", orDefault(pickString("", lcfg.Exclude, gcfg.Exclude), "(none)"))
			maxBytes := pickInt64(0, lcfg.MaxBytes, gcfg.MaxBytes)
			if maxBytes == 0 {
				maxBytes = 1 << 20
			}
			fmt.Println("max_bytes:", maxBytes)
			fmt.Println("threads:", pickInt(0, lcfg.Threads, gcfg.Threads))
			fmt.Println("no_cache:", pickBool(false, lcfg.NoCache, gcfg.NoCache))
			fmt.Println("modules:", pickBool(false, lcfg.Modules, gcfg.Modules))

			pol, err := loadPolicy(abs, pickString("", lcfg.Policy, gcfg.Policy))
			if err != nil {
				return err
			}
			fmt.Println("policy:", orDefault(pickString("", lcfg.Policy, gcfg.Policy), "(built-in)"))
			fmt.Println("core_subtree:", pol.CoreSubtree)
			fmt.Println("modules_subtree:", pol.ModulesSubtree)
			fmt.Println("forbidden_tokens:", strings.Join(pol.ForbiddenTokens, " "))
			summary := pol.AllowlistSummary()
			if len(summary) == 0 {
				fmt.Println("allowlists: (none)")
			} else {
				fmt.Println("allowlists:", strings.Join(summary, " "))
			}
			return nil
		},
	}
	showCmd.Flags().StringVarP(&flagRoot, "root", "p", ".", "repository root")
	cfg.AddCommand(showCmd)
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
