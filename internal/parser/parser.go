// Package parser builds a TuskTsk document tree from the token stream.
// The grammar is: document = section*; section = '[' Ident ']' assignment*;
// assignment = Ident ('='|':') value. The first unexpected token aborts the
// phase with one SYN001 diagnostic; the partial document built so far is
// returned for reporting only.
package parser

import (
	"tusktsk/internal/ast"
	"tusktsk/internal/diag"
	"tusktsk/internal/source"
	"tusktsk/internal/token"
)

// TokenStream is what the parser pulls from: a live lexer or a replayed
// token list.
type TokenStream interface {
	Next() token.Token
	Peek() token.Token
}

// Options configures a parse.
type Options struct {
	Reporter diag.Reporter
}

// Result carries the document plus the abort flag. Doc is never nil.
type Result struct {
	Doc    *ast.Document
	Failed bool
}

// Parser holds the state for one document.
type Parser struct {
	lx     TokenStream
	file   *source.File
	opts   Options
	doc    *ast.Document
	failed bool
}

// ParseTokens parses the stream produced by lx.
func ParseTokens(file *source.File, lx TokenStream, opts Options) Result {
	p := Parser{
		lx:   lx,
		file: file,
		opts: opts,
		doc:  ast.NewDocument(),
	}
	p.parseDocument()
	return Result{Doc: p.doc, Failed: p.failed}
}

func (p *Parser) at(k token.Kind) bool {
	return p.lx.Peek().Kind == k
}

func (p *Parser) advance() token.Token {
	return p.lx.Next()
}

// fail reports the single syntax fault and aborts the phase. An Invalid
// token means the lexer already reported LEX001; abort without a second
// diagnostic.
func (p *Parser) fail(tok token.Token, msg string) {
	if p.failed {
		return
	}
	p.failed = true
	if tok.Kind == token.Invalid {
		return
	}
	pos := p.file.Position(tok.Span.Start)
	offending := tok
	d := diag.Diagnostic{
		Phase:    diag.PhaseSyntax,
		Severity: diag.SevError,
		Code:     diag.SynUnexpectedToken,
		Message:  msg,
		Span:     tok.Span,
		Line:     pos.Line,
		Column:   pos.Col,
		Token:    &offending,
	}
	if p.opts.Reporter != nil {
		p.opts.Reporter.Report(d)
	}
}

func (p *Parser) expect(k token.Kind, msg string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	p.fail(p.lx.Peek(), msg)
	return token.Token{Kind: token.Invalid}, false
}

func (p *Parser) parseDocument() {
	for !p.at(token.EOF) && !p.failed {
		if p.at(token.Invalid) {
			// Lexical fault already reported by the lexer; stop quietly.
			p.failed = true
			return
		}
		if !p.parseSection() {
			return
		}
	}
}

// parseSection parses '[' Ident ']' followed by assignments until the next
// section header or EOF.
func (p *Parser) parseSection() bool {
	open, ok := p.expect(token.LBracket, "expected '[' to start a section")
	if !ok {
		return false
	}
	name, ok := p.expect(token.Ident, "expected section name")
	if !ok {
		return false
	}
	if _, ok := p.expect(token.RBracket, "expected ']' after section name"); !ok {
		return false
	}

	sec := ast.Section{
		Name:    name.Text,
		Span:    open.Span.Cover(name.Span),
		Entries: make([]ast.Entry, 0, 8),
	}

	for !p.at(token.EOF) && !p.at(token.LBracket) && !p.failed {
		if p.at(token.Invalid) {
			p.failed = true
			break
		}
		entry, ok := p.parseAssignment()
		if !ok {
			break
		}
		sec.Entries = append(sec.Entries, entry)
	}

	// Keep the partial section for reporting even when an assignment failed.
	p.doc.Sections = append(p.doc.Sections, sec)
	return !p.failed
}

func (p *Parser) parseAssignment() (ast.Entry, bool) {
	key, ok := p.expect(token.Ident, "expected key name")
	if !ok {
		return ast.Entry{}, false
	}
	if _, ok := p.expect(token.Assign, "expected '=' or ':' after key"); !ok {
		return ast.Entry{}, false
	}
	val, ok := p.parseValue(key.Text)
	if !ok {
		return ast.Entry{}, false
	}
	return ast.Entry{Key: key.Text, Span: key.Span, Value: val}, true
}
