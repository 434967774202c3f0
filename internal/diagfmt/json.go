package diagfmt

import (
	"encoding/json"
	"io"
	"path/filepath"

	"tusktsk/internal/diag"
	"tusktsk/internal/source"
)

// DiagnosticJSON is the stable wire form of one diagnostic.
type DiagnosticJSON struct {
	Phase    string `json:"phase"`
	Severity string `json:"severity"`
	Code     string `json:"code"`
	Message  string `json:"message"`
	File     string `json:"file,omitempty"`
	Line     uint32 `json:"line"`
	Column   uint32 `json:"column"`
}

// Output is the root of the JSON report.
type Output struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Errors      int              `json:"errors"`
	Warnings    int              `json:"warnings"`
}

// BuildOutput converts diagnostics into their wire form without serializing.
func BuildOutput(ds []diag.Diagnostic, fs *source.FileSet, opts JSONOpts) Output {
	n := len(ds)
	if opts.Max > 0 && opts.Max < n {
		n = opts.Max
	}
	out := Output{Diagnostics: make([]DiagnosticJSON, 0, n)}
	for _, d := range ds {
		if d.Severity >= diag.SevError {
			out.Errors++
		} else {
			out.Warnings++
		}
	}
	for i := 0; i < n; i++ {
		d := ds[i]
		path := ""
		if fs != nil {
			path = fs.Get(d.Span.File).Path
			if opts.PathMode == PathModeBasename {
				path = filepath.Base(path)
			}
		}
		out.Diagnostics = append(out.Diagnostics, DiagnosticJSON{
			Phase:    d.Phase.String(),
			Severity: d.Severity.String(),
			Code:     d.Code.ID(),
			Message:  d.Message,
			File:     path,
			Line:     d.Line,
			Column:   d.Column,
		})
	}
	return out
}

// JSON serializes the report with stable field order.
func JSON(w io.Writer, ds []diag.Diagnostic, fs *source.FileSet, opts JSONOpts) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildOutput(ds, fs, opts))
}
