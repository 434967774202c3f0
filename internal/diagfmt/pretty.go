// Package diagfmt renders pipeline diagnostics for CLI and log surfaces in a
// selectable output format.
package diagfmt

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"tusktsk/internal/diag"
	"tusktsk/internal/source"
)

var (
	fatalColor = color.New(color.FgRed, color.Bold)
	errColor   = color.New(color.FgRed)
	warnColor  = color.New(color.FgYellow)
	codeColor  = color.New(color.Bold)
	caretColor = color.New(color.FgGreen)
)

// Pretty writes each diagnostic as
//
//	<path>:<line>:<col>: <SEV> <CODE>: <message>
//
// followed, when ShowPreview is set, by the offending source line with a
// ^~~~ underline aligned via display width.
func Pretty(w io.Writer, ds []diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) {
	for _, d := range ds {
		path := ""
		var file *source.File
		if fs != nil {
			file = fs.Get(d.Span.File)
			path = file.Path
			if opts.PathMode == PathModeBasename {
				path = filepath.Base(path)
			}
		}

		head := fmt.Sprintf("%s:%d:%d: %s %s: %s",
			path, d.Line, d.Column,
			severityText(d.Severity, opts.Color),
			codeText(d.Code, opts.Color),
			d.Message)
		if opts.Width > 0 {
			head = runewidth.Truncate(head, opts.Width, "…")
		}
		fmt.Fprintln(w, head)

		if opts.ShowPreview && file != nil && d.Line > 0 {
			writePreview(w, file, d, opts)
		}
	}
}

func writePreview(w io.Writer, file *source.File, d diag.Diagnostic, opts PrettyOpts) {
	line := file.GetLine(d.Line)
	if line == "" {
		return
	}
	fmt.Fprintf(w, "  %s\n", line)

	// Pad to the diagnostic column using display width of the prefix.
	col := int(d.Column)
	if col > len(line)+1 {
		col = len(line) + 1
	}
	pad := runewidth.StringWidth(line[:col-1])
	underline := "^"
	if n := int(d.Span.Len()); n > 1 {
		width := n
		if rest := runewidth.StringWidth(line) - pad; width > rest && rest > 0 {
			width = rest
		}
		underline += strings.Repeat("~", width-1)
	}
	if opts.Color {
		underline = caretColor.Sprint(underline)
	}
	fmt.Fprintf(w, "  %s%s\n", strings.Repeat(" ", pad), underline)
}

func severityText(s diag.Severity, colored bool) string {
	if !colored {
		return s.String()
	}
	switch s {
	case diag.SevFatal:
		return fatalColor.Sprint(s.String())
	case diag.SevError:
		return errColor.Sprint(s.String())
	default:
		return warnColor.Sprint(s.String())
	}
}

func codeText(c diag.Code, colored bool) string {
	if !colored {
		return c.ID()
	}
	return codeColor.Sprint(c.ID())
}
