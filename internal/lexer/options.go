package lexer

import (
	"tusktsk/internal/diag"
)

// Options configures a Lexer. Reporter may be nil, in which case faults are
// still fatal for the phase but nothing is recorded.
type Options struct {
	Reporter diag.Reporter
}

func (lx *Lexer) report(d diag.Diagnostic) {
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(d)
	}
}
