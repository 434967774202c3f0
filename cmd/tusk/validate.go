package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tusktsk/internal/diagfmt"
	"tusktsk/internal/factory"
)

var validateCmd = &cobra.Command{
	Use:   "validate [flags] <file.tsk|directory>",
	Short: "Validate TuskTsk documents",
	Long:  `Validate checks a TuskTsk document, or every *.tsk file under a directory, and reports pass/fail with diagnostics`,
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

func init() {
	validateCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	validateCmd.Flags().String("ui", "auto", "progress UI for directories (auto|on|off)")
}

// fileReport is the JSON form of one validated file.
type fileReport struct {
	File   string         `json:"file"`
	Valid  bool           `json:"valid"`
	Report diagfmt.Output `json:"report"`
}

func runValidate(cmd *cobra.Command, args []string) error {
	target := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}
	mode, err := readUIMode(cmd.Flag("ui").Value.String())
	if err != nil {
		return err
	}

	opts, err := factoryOptions(cmd)
	if err != nil {
		return err
	}
	f := factory.New(opts)

	st, statErr := os.Stat(target)
	if statErr == nil && st.IsDir() {
		return validateDirectory(cmd, f, opts, target, format, mode)
	}

	res := f.ParseFile(target)
	if format == "json" {
		return writeReports(os.Stdout, []factory.FileResult{{Path: target, Result: res}})
	}
	reportDiagnostics(cmd, res, opts)
	if !res.Success {
		return fmt.Errorf("%s: invalid (%d error(s))", target, len(res.Errors))
	}
	fmt.Fprintf(os.Stdout, "%s: ok\n", target)
	return nil
}

func validateDirectory(cmd *cobra.Command, f *factory.Factory, opts factory.Options, dir, format string, mode uiMode) error {
	paths, err := factory.ListTskFiles(dir)
	if err != nil {
		return fmt.Errorf("scanning %s: %w", dir, err)
	}
	if len(paths) == 0 {
		return fmt.Errorf("no *.tsk files under %s", dir)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var results []factory.FileResult
	if format == "pretty" && shouldUseTUI(mode) {
		results, err = runValidateWithUI(ctx, fmt.Sprintf("validating %s", dir), f, paths)
		if err != nil {
			return err
		}
	} else {
		results = f.ParseFiles(ctx, paths)
	}

	if format == "json" {
		return writeReports(os.Stdout, results)
	}

	failed := 0
	for _, fr := range results {
		if !fr.Result.Success {
			failed++
			reportDiagnostics(cmd, fr.Result, opts)
		}
	}
	fmt.Fprintf(os.Stdout, "validated %d file(s): %d ok, %d failed\n", len(results), len(results)-failed, failed)
	if failed > 0 {
		return fmt.Errorf("%d file(s) failed validation", failed)
	}
	return nil
}

func writeReports(w *os.File, results []factory.FileResult) error {
	reports := make([]fileReport, 0, len(results))
	for _, fr := range results {
		reports = append(reports, fileReport{
			File:   fr.Path,
			Valid:  fr.Result.Success,
			Report: diagfmt.BuildOutput(fr.Result.Diagnostics(), fileSetFor(fr.Path), diagfmt.JSONOpts{}),
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(reports)
}
