package lexer

import (
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"tusktsk/internal/token"
)

// scanIdentOrKeyword scans identifiers and the bare literals true/false/null.
// Unicode identifiers are accepted and NFC-normalized so that semantically
// equal keys compare equal regardless of how the editor encoded them.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()
	sawUnicode := false
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if isIdentContinueByte(b) {
			lx.cursor.Bump()
			continue
		}
		if b >= 0x80 {
			r, sz := utf8.DecodeRune(lx.file.Content[lx.cursor.Off:])
			if r == utf8.RuneError || !(unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r)) {
				break
			}
			sawUnicode = true
			lx.cursor.Off += uint32(sz) // #nosec G115 -- sz is 1..4
			continue
		}
		break
	}

	sp := lx.cursor.SpanFrom(start)
	text := lx.text(sp)
	if sp.Empty() {
		return lx.errLex(sp, "unexpected character")
	}
	if sawUnicode {
		text = norm.NFC.String(text)
	}

	switch text {
	case "true":
		return token.Token{Kind: token.Bool, Span: sp, Text: text, Value: true}
	case "false":
		return token.Token{Kind: token.Bool, Span: sp, Text: text, Value: false}
	case "null":
		return token.Token{Kind: token.Null, Span: sp, Text: text}
	}
	return token.Token{Kind: token.Ident, Span: sp, Text: text}
}
