// Package lexer turns TuskTsk source text into tokens. The phase has no
// recovery: the first malformed or unterminated literal produces one LEX001
// diagnostic and stops the scan.
package lexer

import (
	"tusktsk/internal/diag"
	"tusktsk/internal/source"
	"tusktsk/internal/token"
)

type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	look   *token.Token // one-token lookahead buffer
	failed bool
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}
}

// Failed reports whether a lexical fault aborted the scan.
func (lx *Lexer) Failed() bool { return lx.failed }

// Next returns the next significant token. After EOF or a fault it keeps
// returning EOF / Invalid respectively.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}
	if lx.failed {
		return token.Token{Kind: token.Invalid, Span: lx.emptySpan()}
	}

	lx.skipTrivia()

	if lx.cursor.EOF() {
		return token.Token{Kind: token.EOF, Span: lx.emptySpan()}
	}

	ch := lx.cursor.Peek()
	switch {
	case ch == '"' || ch == '\'':
		return lx.scanString()
	case ch == '@':
		return lx.scanAtCall()
	case isDec(ch) || (ch == '-' && isDec(lx.cursor.PeekAt(1))):
		return lx.scanNumberOrDate()
	case isIdentStartByte(ch) || ch >= 0x80:
		return lx.scanIdentOrKeyword()
	default:
		return lx.scanPunct()
	}
}

// Peek returns the next token without consuming it.
func (lx *Lexer) Peek() token.Token {
	t := lx.Next()
	lx.look = &t
	return t
}

// Tokens scans the whole document. On a fault the returned slice holds
// everything scanned before it and ok is false; the single LEX001 diagnostic
// has already been reported.
func (lx *Lexer) Tokens() (toks []token.Token, ok bool) {
	toks = make([]token.Token, 0, 64)
	for {
		t := lx.Next()
		if t.Kind == token.Invalid {
			return toks, false
		}
		toks = append(toks, t)
		if t.Kind == token.EOF {
			return toks, true
		}
	}
}

// skipTrivia consumes whitespace and '#' comments.
func (lx *Lexer) skipTrivia() {
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == ' ' || b == '\t' || b == '\n' || b == '\r' {
			lx.cursor.Bump()
			continue
		}
		if b == '#' {
			for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
				lx.cursor.Bump()
			}
			continue
		}
		break
	}
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

// errLex reports the single lexical fault and poisons the lexer.
func (lx *Lexer) errLex(sp source.Span, msg string) token.Token {
	lx.failed = true
	pos := lx.file.Position(sp.Start)
	lx.report(diag.Diagnostic{
		Phase:    diag.PhaseLexical,
		Severity: diag.SevError,
		Code:     diag.LexFault,
		Message:  msg,
		Span:     sp,
		Line:     pos.Line,
		Column:   pos.Col,
	})
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
}

func (lx *Lexer) text(sp source.Span) string {
	return string(lx.file.Content[sp.Start:sp.End])
}
