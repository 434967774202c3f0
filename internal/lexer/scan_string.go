package lexer

import (
	"strings"

	"tusktsk/internal/token"
)

// scanString handles '...' and "..." literals plus triple-quoted """...""",
// which carries a verbatim multi-line function body (FUJSEN). Unterminated
// literals abort the phase.
func (lx *Lexer) scanString() token.Token {
	if lx.cursor.Peek() == '"' && lx.cursor.PeekAt(1) == '"' && lx.cursor.PeekAt(2) == '"' {
		return lx.scanFuncBody()
	}

	start := lx.cursor.Mark()
	quote := lx.cursor.Bump()
	var sb strings.Builder
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == quote {
			lx.cursor.Bump()
			sp := lx.cursor.SpanFrom(start)
			return token.Token{Kind: token.String, Span: sp, Text: lx.text(sp), Value: sb.String()}
		}
		if b == '\n' {
			return lx.errLex(lx.cursor.SpanFrom(start), "newline in string literal")
		}
		if b == '\\' {
			lx.cursor.Bump()
			if lx.cursor.EOF() {
				break
			}
			sb.WriteByte(unescape(lx.cursor.Bump()))
			continue
		}
		sb.WriteByte(lx.cursor.Bump())
	}
	return lx.errLex(lx.cursor.SpanFrom(start), "unterminated string literal")
}

func unescape(b byte) byte {
	switch b {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	case 'r':
		return '\r'
	case '0':
		return 0
	default:
		// \" \' \\ and unknown escapes keep the byte itself
		return b
	}
}

// scanFuncBody captures everything between """ delimiters verbatim.
func (lx *Lexer) scanFuncBody() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Off += 3 // opening """
	bodyStart := lx.cursor.Off
	for !lx.cursor.EOF() {
		if lx.cursor.Peek() == '"' && lx.cursor.PeekAt(1) == '"' && lx.cursor.PeekAt(2) == '"' {
			body := string(lx.file.Content[bodyStart:lx.cursor.Off])
			lx.cursor.Off += 3 // closing """
			sp := lx.cursor.SpanFrom(start)
			return token.Token{Kind: token.FuncBody, Span: sp, Text: lx.text(sp), Value: body}
		}
		lx.cursor.Bump()
	}
	return lx.errLex(lx.cursor.SpanFrom(start), "unterminated function body literal")
}
