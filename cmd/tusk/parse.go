package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tusktsk/internal/diagfmt"
	"tusktsk/internal/factory"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] <file.tsk>",
	Short: "Parse a TuskTsk document and output its AST",
	Long:  `Parse reads a TuskTsk document and outputs its abstract syntax tree`,
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runParse(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}

	opts, err := factoryOptions(cmd)
	if err != nil {
		return err
	}

	res := factory.New(opts).ParseFile(filePath)
	reportDiagnostics(cmd, res, opts)
	if !res.Success {
		return fmt.Errorf("%d error(s) in %s", len(res.Errors), filePath)
	}

	switch format {
	case "pretty":
		return diagfmt.FormatDocumentPretty(os.Stdout, res.Document)
	case "json":
		return diagfmt.FormatDocumentJSON(os.Stdout, res.Document)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
