package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tusktsk/internal/diagfmt"
	"tusktsk/internal/factory"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] <file.tsk>",
	Short: "Tokenize a TuskTsk document",
	Long:  `Tokenize breaks down a TuskTsk document into its constituent tokens`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}

	opts, err := factoryOptions(cmd)
	if err != nil {
		return err
	}
	opts.IncludeTokens = true
	// Cached results drop the token list, so bypass the cache here.
	opts.EnableCaching = false

	res := factory.New(opts).ParseFile(filePath)
	reportDiagnostics(cmd, res, opts)
	if len(res.Tokens) == 0 {
		return fmt.Errorf("no tokens in %s", filePath)
	}

	switch format {
	case "pretty":
		return diagfmt.FormatTokensPretty(os.Stdout, res.Tokens, fileSetFor(filePath))
	case "json":
		return diagfmt.FormatTokensJSON(os.Stdout, res.Tokens)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
