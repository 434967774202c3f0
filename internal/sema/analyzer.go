// Package sema performs static checks over a parsed TuskTsk document. It runs
// only when the syntax phase produced zero errors. Unlike the lexer and
// parser, this phase batches: every finding in the document is reported.
package sema

import (
	"fmt"

	"tusktsk/internal/ast"
	"tusktsk/internal/diag"
	"tusktsk/internal/source"
)

// Options toggles individual warning groups. Errors are always checked.
type Options struct {
	WarnUnused             bool
	WarnDuplicates         bool
	WarnImplicitConversion bool
	WarnMixedArrays        bool
	WarnCrossFile          bool
}

// DefaultOptions enables every check.
func DefaultOptions() Options {
	return Options{
		WarnUnused:             true,
		WarnDuplicates:         true,
		WarnImplicitConversion: true,
		WarnMixedArrays:        true,
		WarnCrossFile:          true,
	}
}

// Result holds the two independent diagnostic lists.
type Result struct {
	Errors   []diag.Diagnostic
	Warnings []diag.Diagnostic
}

type analyzer struct {
	file *source.File
	doc  *ast.Document
	opts Options
	res  Result

	// globalsUsed tracks which keys of the globals section were referenced.
	globalsUsed map[string]bool
}

// Analyze checks doc and returns batched errors and warnings. An unexpected
// fault inside a check is converted to a single SEM999 error instead of
// propagating.
func Analyze(file *source.File, doc *ast.Document, opts Options) (res Result) {
	a := &analyzer{
		file:        file,
		doc:         doc,
		opts:        opts,
		globalsUsed: make(map[string]bool),
	}
	a.res.Errors = make([]diag.Diagnostic, 0)
	a.res.Warnings = make([]diag.Diagnostic, 0)

	defer func() {
		if r := recover(); r != nil {
			a.errKind(diag.InternalError, source.Span{File: file.ID},
				fmt.Sprintf("internal analyzer fault: %v", r))
			res = a.res
		}
	}()

	a.checkSections()
	for si := range doc.Sections {
		sec := &doc.Sections[si]
		for ei := range sec.Entries {
			a.checkValue(sec, sec.Entries[ei].Key, sec.Entries[ei].Value)
		}
	}
	a.checkUnusedGlobals()

	return a.res
}

// globalsSection returns the section holding $-referencable keys.
func (a *analyzer) globalsSection() (*ast.Section, bool) {
	if s, ok := a.doc.Section("global"); ok {
		return s, true
	}
	if s, ok := a.doc.Section("globals"); ok {
		return s, true
	}
	return nil, false
}

// checkSections validates names and flags duplicate sections and keys.
func (a *analyzer) checkSections() {
	seenSections := make(map[string]bool, len(a.doc.Sections))
	for si := range a.doc.Sections {
		sec := &a.doc.Sections[si]
		if !validIdent(sec.Name) {
			a.errKind(diag.InvalidIdentifier, sec.Span,
				fmt.Sprintf("invalid section name %q", sec.Name))
		}
		if seenSections[sec.Name] && a.opts.WarnDuplicates {
			a.warnKind(diag.DuplicateSection, sec.Span,
				fmt.Sprintf("duplicate section [%s]", sec.Name))
		}
		seenSections[sec.Name] = true

		seenKeys := make(map[string]bool, len(sec.Entries))
		for ei := range sec.Entries {
			e := &sec.Entries[ei]
			if !validIdent(e.Key) {
				a.errKind(diag.InvalidIdentifier, e.Span,
					fmt.Sprintf("invalid key name %q", e.Key))
			}
			if seenKeys[e.Key] && a.opts.WarnDuplicates {
				a.warnKind(diag.DuplicateKey, e.Span,
					fmt.Sprintf("duplicate key %q in section [%s]", e.Key, sec.Name))
			}
			seenKeys[e.Key] = true
		}
	}
}

func (a *analyzer) checkUnusedGlobals() {
	if !a.opts.WarnUnused {
		return
	}
	globals, ok := a.globalsSection()
	if !ok {
		return
	}
	for i := range globals.Entries {
		e := &globals.Entries[i]
		if !a.globalsUsed[e.Key] {
			a.warnKind(diag.UnusedVariable, e.Span,
				fmt.Sprintf("global %q is never referenced", e.Key))
		}
	}
}

// errKind appends a semantic error through the closed kind table.
func (a *analyzer) errKind(kind diag.SemErrorKind, sp source.Span, msg string) {
	pos := a.file.Position(sp.Start)
	a.res.Errors = append(a.res.Errors, diag.Diagnostic{
		Phase:    diag.PhaseSemantic,
		Severity: diag.SevError,
		Code:     kind.Code(),
		Message:  msg,
		Span:     sp,
		Line:     pos.Line,
		Column:   pos.Col,
	})
}

// warnKind appends a semantic warning through the closed kind table.
func (a *analyzer) warnKind(kind diag.SemWarningKind, sp source.Span, msg string) {
	pos := a.file.Position(sp.Start)
	a.res.Warnings = append(a.res.Warnings, diag.Diagnostic{
		Phase:    diag.PhaseSemantic,
		Severity: diag.SevWarning,
		Code:     kind.Code(),
		Message:  msg,
		Span:     sp,
		Line:     pos.Line,
		Column:   pos.Col,
	})
}

// validIdent mirrors the lexer's identifier rules for names that arrive via
// quoted forms (inline object keys).
func validIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_':
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		case r >= 0x80:
			// Unicode letters were validated by the lexer already.
		default:
			return false
		}
	}
	return true
}
