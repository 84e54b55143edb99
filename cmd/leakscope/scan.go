package leakscope

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/leakscope/leakscope/internal/config"
	"github.com/leakscope/leakscope/internal/engine"
	"github.com/leakscope/leakscope/internal/report"
	"github.com/leakscope/leakscope/internal/rules"
	"github.com/leakscope/leakscope/internal/tui"
	"github.com/leakscope/leakscope/internal/types"
)

var (
	flagPath     string
	flagInclude  string
	flagExclude  string
	flagMaxBytes int64
	flagRules    string
	flagOutput   string
	flagNoTUI    bool
	flagAllowExt string
	flagDenyExt  string
)

// defaultReportName matches what users of earlier releases expect to find in
// their working directory.
const defaultReportName = "sensitive_info_report.md"

// localRulesName is picked up from the scan root when no rules file is
// configured anywhere else.
const localRulesName = "leakscope_rules.yml"

func init() {
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan a directory for sensitive information",
		RunE:  runScan,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().StringVarP(&flagPath, "path", "p", ".", "directory to scan")
	cmd.Flags().StringVar(&flagInclude, "include", "", "comma-separated include globs")
	cmd.Flags().StringVar(&flagExclude, "exclude", "", "comma-separated exclude globs")
	cmd.Flags().Int64Var(&flagMaxBytes, "max-bytes", 0, "skip files larger than this (0 = no limit)")
	cmd.Flags().StringVar(&flagRules, "rules", "", "rules YAML file (default: leakscope_rules.yml in the root, else built-in set)")
	cmd.Flags().StringVarP(&flagOutput, "output", "o", "", "Markdown report path (default "+defaultReportName+")")
	cmd.Flags().BoolVar(&flagNoTUI, "no-tui", false, "plain progress output even on a terminal")
	cmd.Flags().StringVar(&flagAllowExt, "allow-ext", "", "comma-separated extra text extensions (e.g. .tpl,.conf2)")
	cmd.Flags().StringVar(&flagDenyExt, "deny-ext", "", "comma-separated extra binary extensions, always skipped")
}

func runScan(cmd *cobra.Command, _ []string) error {
	abs, _ := filepath.Abs(flagPath)

	// Load configs: CLI > local > global
	var gcfg, lcfg config.FileConfig
	if c, err := config.LoadGlobal(); err == nil {
		gcfg = c
	}
	if c, err := config.LoadLocal(abs); err == nil {
		lcfg = c
	}

	reg, rulesSource, err := resolveRules(abs, pickString(flagRules, lcfg.RulesFile, gcfg.RulesFile))
	if err != nil {
		return err
	}

	cfg := engine.Config{
		Root:            abs,
		Rules:           reg,
		IncludeGlobs:    pickString(flagInclude, lcfg.Include, gcfg.Include),
		ExcludeGlobs:    pickString(flagExclude, lcfg.Exclude, gcfg.Exclude),
		MaxBytes:        pickInt64(flagMaxBytes, lcfg.MaxBytes, gcfg.MaxBytes),
		Threads:         pickInt(flagThreads, lcfg.Threads, gcfg.Threads),
		DefaultExcludes: pickBoolDefault(cmd.Flags().Changed("default-excludes"), flagDefaultExcludes, lcfg.DefaultExcludes, gcfg.DefaultExcludes, true),
		NoCache:         pickBool(flagNoCache, lcfg.NoCache, gcfg.NoCache),
		AllowExtensions: splitList(pickString(flagAllowExt, lcfg.AllowExtensions, gcfg.AllowExtensions)),
		DenyExtensions:  splitList(pickString(flagDenyExt, lcfg.DenyExtensions, gcfg.DenyExtensions)),
	}
	noColor := pickBool(flagNoColor, lcfg.NoColor, gcfg.NoColor)
	output := pickString(flagOutput, lcfg.Output, gcfg.Output)
	if output == "" {
		output = defaultReportName
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	interactive := !flagJSON && !flagNoTUI && term.IsTerminal(int(os.Stdout.Fd()))

	if !flagJSON {
		fmt.Fprintf(os.Stderr, "Scanning %s with %d rules (%s)...\n", abs, len(reg.ActiveRules()), rulesSource)
	}
	total := engine.CountTargets(cfg)

	var res engine.Result
	if interactive {
		res, err = tui.Run(total, cancel, func(obs engine.Observer) (engine.Result, error) {
			c := cfg
			c.Progress = obs
			return engine.Run(ctx, c)
		})
	} else {
		if !flagJSON && total > 0 {
			cfg.Progress = func(_ string, stats types.Stats) {
				done := stats.FilesScanned + stats.FilesSkipped
				if done%10 == 0 || done == total {
					pct := float64(done) / float64(total) * 100
					fmt.Fprintf(os.Stderr, "\r[%d/%d] %.0f%%", done, total, pct)
				}
			}
		}
		res, err = engine.Run(ctx, cfg)
		if !flagJSON && total > 0 {
			fmt.Fprintln(os.Stderr)
		}
	}
	if err != nil {
		return fmt.Errorf("scan error: %w", err)
	}

	if flagJSON {
		matches := res.AllMatches()
		if matches == nil {
			matches = []types.Match{} // no `null` in JSON
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(matches)
	}

	md := report.Render(&res.Result)
	if err := os.WriteFile(output, []byte(md), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	report.PrintSummary(os.Stdout, &res.Result, report.PrintOptions{
		NoColor:  noColor,
		Duration: res.Duration,
	})
	fmt.Printf("Report written to %s\n", output)
	return nil
}

// resolveRules picks the rule set for a scan: an explicitly configured file,
// else leakscope_rules.yml sitting in the scan root, else the built-in set.
// The returned source string is for the banner only.
func resolveRules(root, configured string) (*rules.Registry, string, error) {
	if configured != "" {
		reg, err := rules.LoadFile(configured)
		if err != nil {
			return nil, "", err
		}
		return reg, configured, nil
	}
	local := filepath.Join(root, localRulesName)
	if _, err := os.Stat(local); err == nil {
		reg, err := rules.LoadFile(local)
		if err != nil {
			return nil, "", err
		}
		return reg, localRulesName, nil
	}
	return rules.Default(), "built-in rules", nil
}
