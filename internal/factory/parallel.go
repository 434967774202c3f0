package factory

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"
)

// FileResult pairs a path with its parse result for batch operations.
type FileResult struct {
	Path   string
	Result *Result
}

// ParseFiles parses many documents concurrently with bounded parallelism.
// The pipeline is pure, so workers only contend on the cache mutex. Results
// come back in input order. The context applies at the file-read boundary of
// each worker, per the single-file contract.
func (f *Factory) ParseFiles(ctx context.Context, paths []string) []FileResult {
	out := make([]FileResult, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			out[i] = FileResult{Path: path, Result: f.ParseFileCtx(ctx, path)}
			return nil
		})
	}
	// Workers never return errors; faults are inside each Result.
	_ = g.Wait()
	return out
}

// ProgressState marks a point in one file's batch lifecycle.
type ProgressState uint8

const (
	ProgressStarted ProgressState = iota
	ProgressSucceeded
	ProgressFailed
)

// ParseFilesProgress is ParseFiles with a notification callback, for progress
// rendering. The callback runs on worker goroutines and must be safe for
// concurrent use.
func (f *Factory) ParseFilesProgress(ctx context.Context, paths []string, notify func(path string, state ProgressState)) []FileResult {
	out := make([]FileResult, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			notify(path, ProgressStarted)
			res := f.ParseFileCtx(ctx, path)
			out[i] = FileResult{Path: path, Result: res}
			if res.Success {
				notify(path, ProgressSucceeded)
			} else {
				notify(path, ProgressFailed)
			}
			return nil
		})
	}
	_ = g.Wait()
	return out
}

// ListTskFiles returns the sorted *.tsk files under dir, recursively.
func ListTskFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), ".tsk") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}
