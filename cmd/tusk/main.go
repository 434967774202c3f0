package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"tusktsk/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "tusk",
	Short: "TuskTsk configuration toolchain",
	Long:  `Tusk parses, validates and inspects TuskTsk configuration documents`,
}

// main registers subcommands and persistent flags, then executes the root
// command. Command execution errors exit with status code 1.
func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("no-cache", false, "disable the result cache")
	rootCmd.PersistentFlags().Bool("no-sema", false, "skip semantic analysis")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to show")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
