package leakscope

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/leakscope/leakscope/internal/rules"
)

var (
	rulesFile      string
	rulesInitOut   string
	rulesInitForce bool
)

func init() {
	rulesCmd := &cobra.Command{Use: "rules", Short: "Rule set helpers"}
	rootCmd.AddCommand(rulesCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List the rules a scan would run",
		RunE:  runRulesList,
	}
	listCmd.Flags().StringVar(&rulesFile, "rules", "", "rules YAML file (default: built-in set)")
	rulesCmd.AddCommand(listCmd)

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the built-in rule set out for editing",
		RunE:  runRulesInit,
	}
	initCmd.Flags().StringVarP(&rulesInitOut, "output", "o", localRulesName, "output file path")
	initCmd.Flags().BoolVar(&rulesInitForce, "force", false, "overwrite an existing file")
	rulesCmd.AddCommand(initCmd)

	checkCmd := &cobra.Command{
		Use:   "check <file>",
		Short: "Validate a rules file without scanning",
		Args:  cobra.ExactArgs(1),
		RunE:  runRulesCheck,
	}
	rulesCmd.AddCommand(checkCmd)
}

func runRulesList(_ *cobra.Command, _ []string) error {
	var reg *rules.Registry
	if rulesFile != "" {
		r, err := rules.LoadFile(rulesFile)
		if err != nil {
			return err
		}
		reg = r
	} else {
		reg = rules.Default()
	}

	t := tablewriter.NewTable(os.Stdout)
	t.Header("Name", "Risk", "Enabled", "Description")
	for _, r := range reg.AllRules() {
		enabled := "yes"
		if !r.Enabled {
			enabled = "no"
		}
		_ = t.Append([]string{r.Name, string(r.Risk), enabled, r.Description})
	}
	return t.Render()
}

func runRulesInit(_ *cobra.Command, _ []string) error {
	if !rulesInitForce {
		if _, err := os.Stat(rulesInitOut); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", rulesInitOut)
		}
	}
	if err := os.WriteFile(rulesInitOut, rules.DefaultSource(), 0o644); err != nil {
		return err
	}
	fmt.Printf("Wrote %s — edit it and run 'leakscope scan'\n", rulesInitOut)
	return nil
}

func runRulesCheck(_ *cobra.Command, args []string) error {
	reg, err := rules.LoadFile(args[0])
	if err != nil {
		return err
	}
	all := reg.AllRules()
	disabled := 0
	for _, r := range all {
		if !r.Enabled {
			disabled++
		}
	}
	fmt.Printf("%s: %d rules ok (%d disabled)\n", args[0], len(all), disabled)
	return nil
}
