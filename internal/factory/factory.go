// Package factory is the public entry point of the TuskTsk pipeline. It
// sequences lexing, parsing and semantic analysis, manages the result cache,
// and converts every failure into a structured result: no call on this
// surface ever panics or returns a Go error for document faults.
package factory

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"tusktsk/internal/ast"
	"tusktsk/internal/diag"
	"tusktsk/internal/lexer"
	"tusktsk/internal/parser"
	"tusktsk/internal/sema"
	"tusktsk/internal/source"
)

// DefaultSourceID names string inputs that carry no identifier of their own.
const DefaultSourceID = "<string>"

// Factory owns the options and cache for one parsing session. The pipeline
// itself is pure and reentrant; the cache is the only shared state and is
// guarded by mu. Safe for concurrent use.
type Factory struct {
	opts  Options
	mu    sync.Mutex
	cache map[string]*snapshot
	disk  *DiskCache
}

// New creates a factory with the given options.
func New(opts Options) *Factory {
	f := &Factory{
		opts:  opts,
		cache: make(map[string]*snapshot),
	}
	if opts.MaxCacheSize <= 0 {
		f.opts.MaxCacheSize = DefaultOptions().MaxCacheSize
	}
	if opts.PersistentCache {
		if disk, err := OpenDiskCache("tusk"); err == nil {
			f.disk = disk
		}
		// A failed open silently disables persistence; the in-memory
		// cache is authoritative either way.
	}
	return f
}

// NewDefault creates a factory with DefaultOptions.
func NewDefault() *Factory {
	return New(DefaultOptions())
}

// Options returns the active configuration.
func (f *Factory) Options() Options {
	return f.opts
}

// Statistics reports cache state and the active configuration snapshot.
func (f *Factory) Statistics() Statistics {
	return Statistics{
		CacheSize:     f.cacheLen(),
		CacheEnabled:  f.opts.EnableCaching,
		MaxCacheSize:  f.opts.MaxCacheSize,
		ActiveOptions: f.opts,
	}
}

// ParseString parses source text under the given identifier. It never
// panics: unexpected faults become a single INT001 Fatal diagnostic.
func (f *Factory) ParseString(src, id string) *Result {
	if id == "" {
		id = DefaultSourceID
	}

	// Empty source short-circuits: immediate success, no pipeline work.
	if src == "" {
		return &Result{
			Success:  true,
			Document: ast.NewDocument(),
			Errors:   []diag.Diagnostic{},
			Warnings: []diag.Diagnostic{},
			SourceID: id,
		}
	}

	if f.opts.EnableCaching {
		key := cacheKey(id, hashSource(src))
		lookupStart := time.Now()
		if snap, ok := f.cacheGet(key); ok {
			return snap.result(id, time.Since(lookupStart))
		}
		if f.disk != nil {
			if snap, ok, err := f.disk.Get(hashSource(src)); ok && err == nil {
				f.cachePut(key, snap)
				return snap.result(id, time.Since(lookupStart))
			}
		}
	}

	start := time.Now()
	res := f.runPipeline(src, id)
	res.Elapsed = time.Since(start)

	if res.Success && f.opts.EnableCaching {
		key := cacheKey(id, hashSource(src))
		snap := newSnapshot(res)
		f.cachePut(key, snap)
		if f.disk != nil {
			// Best effort; a failed write never affects the result.
			_ = f.disk.Put(hashSource(src), snap)
		}
	}
	return res
}

// runPipeline executes lex -> parse -> analyze over its own FileSet, so
// concurrent calls share nothing. Panics are converted to INT001.
func (f *Factory) runPipeline(src, id string) (res *Result) {
	res = &Result{
		Document: ast.NewDocument(),
		Errors:   []diag.Diagnostic{},
		Warnings: []diag.Diagnostic{},
		SourceID: id,
	}
	defer func() {
		if r := recover(); r != nil {
			res.Success = false
			res.Errors = append(res.Errors, diag.Diagnostic{
				Phase:    diag.PhaseInternal,
				Severity: diag.SevFatal,
				Code:     diag.InternalFault,
				Message:  fmt.Sprintf("internal parser error: %v", r),
				Line:     1,
				Column:   1,
			})
		}
	}()

	fs := source.NewFileSet()
	fileID := fs.AddVirtual(id, []byte(src))
	file := fs.Get(fileID)

	bag := diag.NewBag(16)
	reporter := &diag.BagReporter{Bag: bag}

	lx := lexer.New(file, lexer.Options{Reporter: reporter})
	toks, lexOK := lx.Tokens()
	if f.opts.IncludeTokens {
		res.Tokens = toks
	}

	if lexOK {
		parseRes := parser.ParseTokens(file, parser.NewListStream(toks), parser.Options{Reporter: reporter})
		res.Document = parseRes.Doc
	}

	res.Errors = bag.Errors()
	res.Warnings = bag.Warnings()

	if len(res.Errors) == 0 && f.opts.PerformSemanticAnalysis {
		semRes := sema.Analyze(file, res.Document, f.opts.Semantic)
		res.Semantic = &semRes
		res.Errors = append(res.Errors, semRes.Errors...)
		res.Warnings = append(res.Warnings, semRes.Warnings...)
	}

	res.Success = len(res.Errors) == 0
	return res
}

// ParseFile reads and parses the document at path. A missing file yields one
// FILE001 Fatal diagnostic, any other read failure one FILE002; neither is
// ever raised as a Go error.
func (f *Factory) ParseFile(path string) *Result {
	content, err := os.ReadFile(path) // #nosec G304 -- path is provided by the caller
	if err != nil {
		return fileErrorResult(path, err)
	}
	return f.ParseString(string(content), path)
}

// ParseFileCtx is the suspending variant of ParseFile: the context applies
// only at the file-read boundary, everything after shares the synchronous
// path. The pipeline itself has no cancellation points.
func (f *Factory) ParseFileCtx(ctx context.Context, path string) *Result {
	if err := ctx.Err(); err != nil {
		return fileErrorResult(path, err)
	}
	return f.ParseFile(path)
}

// ValidateString parses and reports pass/fail, discarding the AST.
func (f *Factory) ValidateString(src, id string) *ValidationResult {
	return toValidation(f.ParseString(src, id))
}

// ValidateFile parses the file at path and reports pass/fail.
func (f *Factory) ValidateFile(path string) *ValidationResult {
	return toValidation(f.ParseFile(path))
}

// ValidateFileCtx is the suspending variant of ValidateFile.
func (f *Factory) ValidateFileCtx(ctx context.Context, path string) *ValidationResult {
	return toValidation(f.ParseFileCtx(ctx, path))
}

func toValidation(res *Result) *ValidationResult {
	return &ValidationResult{
		IsValid:  res.Success,
		Errors:   res.Errors,
		Warnings: res.Warnings,
		SourceID: res.SourceID,
		Elapsed:  res.Elapsed,
	}
}

func fileErrorResult(path string, err error) *Result {
	code := diag.FileReadFailure
	msg := fmt.Sprintf("cannot read %s: %v", path, err)
	if os.IsNotExist(err) {
		code = diag.FileNotFound
		msg = fmt.Sprintf("file not found: %s", path)
	}
	return &Result{
		Success:  false,
		Document: ast.NewDocument(),
		Errors: []diag.Diagnostic{{
			Phase:    diag.PhaseIO,
			Severity: diag.SevFatal,
			Code:     code,
			Message:  msg,
			Line:     1,
			Column:   1,
		}},
		Warnings: []diag.Diagnostic{},
		SourceID: path,
	}
}
