package factory

import (
	"time"

	"tusktsk/internal/ast"
	"tusktsk/internal/diag"
	"tusktsk/internal/sema"
	"tusktsk/internal/token"
)

// Result is the outcome of one parse. Document is never nil: a total failure
// yields an empty document. Success holds exactly when Errors is empty;
// warnings never affect it.
type Result struct {
	Success   bool
	Document  *ast.Document
	Errors    []diag.Diagnostic
	Warnings  []diag.Diagnostic
	Tokens    []token.Token
	Semantic  *sema.Result
	SourceID  string
	Elapsed   time.Duration
	FromCache bool
}

// Diagnostics returns errors then warnings as one list, for report rendering.
func (r *Result) Diagnostics() []diag.Diagnostic {
	out := make([]diag.Diagnostic, 0, len(r.Errors)+len(r.Warnings))
	out = append(out, r.Errors...)
	out = append(out, r.Warnings...)
	return out
}

// ValidationResult is the pass/fail view of a parse; the AST is discarded.
type ValidationResult struct {
	IsValid  bool
	Errors   []diag.Diagnostic
	Warnings []diag.Diagnostic
	SourceID string
	Elapsed  time.Duration
}

// Statistics reports the cache state and the active configuration.
type Statistics struct {
	CacheSize     int
	CacheEnabled  bool
	MaxCacheSize  int
	ActiveOptions Options
}
