package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/reqext/internal/report"
)

// rulesCmd represents the rules command
var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List rules and their configured severities",
	RunE: func(cmd *cobra.Command, args []string) error {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get working directory: %w", err)
		}
		return executeRules(wd, cfgFile, cmd.OutOrStdout(), cmd.ErrOrStderr())
	},
}

func init() {
	rootCmd.AddCommand(rulesCmd)
}

func executeRules(rootDir, configFile string, out, errOut io.Writer) error {
	env, err := loadEnvironment(rootDir, configFile, verbose, errOut)
	if err != nil {
		return err
	}

	report.WriteRulesTable(out, report.RuleEntries(env.severities))
	return nil
}
