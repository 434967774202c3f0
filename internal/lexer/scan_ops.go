package lexer

import (
	"tusktsk/internal/token"
)

// scanAtCall captures a whole '@operator(...)' call as one contiguous token.
// Arguments are never interpreted here: parens are balanced with respect to
// string quoting and the raw text is handed to an external evaluator later.
func (lx *Lexer) scanAtCall() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '@'

	if !isIdentStartByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
		return lx.errLex(lx.cursor.SpanFrom(start), "operator name expected after '@'")
	}
	// dotted name: @env, @file.tsk.get, @query
	for {
		for isIdentContinueByte(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
		if lx.cursor.Peek() == '.' && isIdentStartByte(lx.cursor.PeekAt(1)) {
			lx.cursor.Bump()
			continue
		}
		break
	}

	if lx.cursor.Peek() != '(' {
		// Bare operator form, e.g. '@date'.
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: token.AtCall, Span: sp, Text: lx.text(sp)}
	}

	depth := 0
	var quote byte
	for !lx.cursor.EOF() {
		b := lx.cursor.Bump()
		if quote != 0 {
			if b == '\\' {
				lx.cursor.Bump()
			} else if b == quote {
				quote = 0
			}
			continue
		}
		switch b {
		case '"', '\'':
			quote = b
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				sp := lx.cursor.SpanFrom(start)
				return token.Token{Kind: token.AtCall, Span: sp, Text: lx.text(sp)}
			}
		case '\n':
			return lx.errLex(lx.cursor.SpanFrom(start), "unterminated operator call")
		}
	}
	return lx.errLex(lx.cursor.SpanFrom(start), "unterminated operator call")
}

func (lx *Lexer) scanPunct() token.Token {
	start := lx.cursor.Mark()
	b := lx.cursor.Bump()

	var kind token.Kind
	switch b {
	case '[':
		kind = token.LBracket
	case ']':
		kind = token.RBracket
	case '{':
		kind = token.LBrace
	case '}':
		kind = token.RBrace
	case '=', ':':
		kind = token.Assign
	case ',':
		kind = token.Comma
	case '.':
		kind = token.Dot
	case '$':
		kind = token.Dollar
	default:
		return lx.errLex(lx.cursor.SpanFrom(start), "unexpected character")
	}
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: kind, Span: sp, Text: lx.text(sp)}
}
