package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tusktsk/internal/diagfmt"
	"tusktsk/internal/factory"
	"tusktsk/internal/source"
)

// factoryOptions layers the persistent flags over a tusk.toml manifest from
// the working directory, when one exists.
func factoryOptions(cmd *cobra.Command) (factory.Options, error) {
	opts, err := factory.LoadManifest(factory.ManifestName)
	if err != nil {
		return opts, fmt.Errorf("reading %s: %w", factory.ManifestName, err)
	}

	if noCache, err := cmd.Root().PersistentFlags().GetBool("no-cache"); err == nil && noCache {
		opts.EnableCaching = false
	}
	if noSema, err := cmd.Root().PersistentFlags().GetBool("no-sema"); err == nil && noSema {
		opts.PerformSemanticAnalysis = false
	}
	return opts, nil
}

func useColor(cmd *cobra.Command, f *os.File) bool {
	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false
	}
	return colorFlag == "on" || (colorFlag == "auto" && isTerminal(f))
}

// reportDiagnostics prints a result's diagnostics to stderr. The source text
// is re-read best effort; previews are skipped when it is unavailable.
func reportDiagnostics(cmd *cobra.Command, res *factory.Result, opts factory.Options) {
	ds := res.Diagnostics()
	if len(ds) == 0 {
		return
	}
	if max, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics"); err == nil && max > 0 && max < len(ds) {
		ds = ds[:max]
	}

	pretty := opts.Format
	pretty.Color = useColor(cmd, os.Stderr)
	diagfmt.Pretty(os.Stderr, ds, fileSetFor(res.SourceID), pretty)
}

// fileSetFor rebuilds a one-file set for diagnostic rendering. An unreadable
// source yields an empty file: heads still render, previews are skipped.
func fileSetFor(id string) *source.FileSet {
	content, _ := os.ReadFile(id) // #nosec G304 -- path came from the command line
	fs := source.NewFileSet()
	fs.AddVirtual(id, content)
	return fs
}
