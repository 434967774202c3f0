package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"tusktsk/internal/factory"
)

var statsCmd = &cobra.Command{
	Use:   "stats [flags] <file.tsk|directory>",
	Short: "Parse documents and report pipeline statistics",
	Long:  `Stats parses the given document or directory and reports diagnostic counts, timing and cache state`,
	Args:  cobra.ExactArgs(1),
	RunE:  runStats,
}

func init() {
	statsCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

type statsPayload struct {
	Documents int    `json:"documents"`
	Valid     int    `json:"valid"`
	Errors    int    `json:"errors"`
	Warnings  int    `json:"warnings"`
	Elapsed   string `json:"elapsed"`

	CacheSize    int  `json:"cache_size"`
	CacheEnabled bool `json:"cache_enabled"`
	MaxCacheSize int  `json:"max_cache_size"`
}

func runStats(cmd *cobra.Command, args []string) error {
	target := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}

	opts, err := factoryOptions(cmd)
	if err != nil {
		return err
	}
	f := factory.New(opts)

	paths := []string{target}
	if st, err := os.Stat(target); err == nil && st.IsDir() {
		paths, err = factory.ListTskFiles(target)
		if err != nil {
			return fmt.Errorf("scanning %s: %w", target, err)
		}
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	start := time.Now()
	results := f.ParseFiles(ctx, paths)
	elapsed := time.Since(start)

	payload := statsPayload{Documents: len(results), Elapsed: elapsed.String()}
	for _, fr := range results {
		if fr.Result.Success {
			payload.Valid++
		}
		payload.Errors += len(fr.Result.Errors)
		payload.Warnings += len(fr.Result.Warnings)
	}
	cache := f.Statistics()
	payload.CacheSize = cache.CacheSize
	payload.CacheEnabled = cache.CacheEnabled
	payload.MaxCacheSize = cache.MaxCacheSize

	switch format {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(payload)
	case "pretty":
		fmt.Fprintf(os.Stdout, "documents: %d\n", payload.Documents)
		fmt.Fprintf(os.Stdout, "valid:     %d\n", payload.Valid)
		fmt.Fprintf(os.Stdout, "errors:    %d\n", payload.Errors)
		fmt.Fprintf(os.Stdout, "warnings:  %d\n", payload.Warnings)
		fmt.Fprintf(os.Stdout, "elapsed:   %s\n", payload.Elapsed)
		fmt.Fprintf(os.Stdout, "cache:     %d/%d (enabled: %v)\n", payload.CacheSize, payload.MaxCacheSize, payload.CacheEnabled)
		return nil
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
