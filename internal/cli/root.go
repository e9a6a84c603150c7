package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "reqext",
	Short: "Require .js extensions on relative imports and exports",
	Long: `reqext checks JavaScript and TypeScript sources for relative import and
export specifiers that Node's ESM loader cannot resolve as written:

  require-extensions  specifiers must end in .js, .jsx, .cjs or .mjs
  require-index       specifiers naming a directory must end in /index.js

Both rules can rewrite offending specifiers with --fix.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		// The report already explains a failed check.
		if !errors.Is(err, ErrLintFailed) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .reqext/config.yml in the working directory)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (debug logging)")
}
