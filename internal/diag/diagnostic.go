package diag

import (
	"tusktsk/internal/source"
	"tusktsk/internal/token"
)

// Diagnostic is a single error or warning with a stable code and a 1-based
// source position. Token optionally carries the offending token.
type Diagnostic struct {
	Phase    Phase
	Severity Severity
	Code     Code
	Message  string
	Span     source.Span
	Line     uint32
	Column   uint32
	Token    *token.Token
}

// Clone returns an independent copy; the offending token, when present, is
// copied too so cached diagnostics cannot be mutated through the pointer.
func (d Diagnostic) Clone() Diagnostic {
	out := d
	if d.Token != nil {
		tok := *d.Token
		out.Token = &tok
	}
	return out
}

// CloneAll deep-copies a diagnostic list. A nil input yields an empty,
// non-nil slice so result lists are always safe to range over.
func CloneAll(ds []Diagnostic) []Diagnostic {
	out := make([]Diagnostic, 0, len(ds))
	for _, d := range ds {
		out = append(out, d.Clone())
	}
	return out
}
