package lexer

import (
	"strconv"
	"time"

	"tusktsk/internal/token"
)

// scanNumberOrDate scans integer/float literals and bare ISO dates
// (YYYY-MM-DD). A literal that runs into identifier characters or fails to
// parse aborts the phase.
func (lx *Lexer) scanNumberOrDate() token.Token {
	if lx.looksLikeDate() {
		return lx.scanDate()
	}

	start := lx.cursor.Mark()
	lx.cursor.Eat('-')
	for isDec(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	isInt := true
	if lx.cursor.Peek() == '.' && isDec(lx.cursor.PeekAt(1)) {
		isInt = false
		lx.cursor.Bump()
		for isDec(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
	}
	if b := lx.cursor.Peek(); b == 'e' || b == 'E' {
		isInt = false
		lx.cursor.Bump()
		if b := lx.cursor.Peek(); b == '+' || b == '-' {
			lx.cursor.Bump()
		}
		if !isDec(lx.cursor.Peek()) {
			return lx.errLex(lx.cursor.SpanFrom(start), "malformed exponent in numeric literal")
		}
		for isDec(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
	}

	// A '.' followed by a non-digit ends the number: it is a path separator
	// (tags.0.name), left for the Dot token. Identifier bytes or a second
	// fractional dot glued to the literal are malformed.
	if b := lx.cursor.Peek(); isIdentContinueByte(b) || (b == '.' && isDec(lx.cursor.PeekAt(1))) {
		for isIdentContinueByte(lx.cursor.Peek()) || lx.cursor.Peek() == '.' {
			lx.cursor.Bump()
		}
		return lx.errLex(lx.cursor.SpanFrom(start), "malformed numeric literal")
	}

	sp := lx.cursor.SpanFrom(start)
	text := lx.text(sp)
	// Integers decode as int64, floats as float64.
	if isInt {
		val, err := strconv.ParseInt(text, 10, 64)
		if err == nil {
			return token.Token{Kind: token.Number, Span: sp, Text: text, Value: val}
		}
		// Out-of-range integers fall through to float.
	}
	val, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return lx.errLex(sp, "malformed numeric literal")
	}
	return token.Token{Kind: token.Number, Span: sp, Text: text, Value: val}
}

// looksLikeDate matches exactly DDDD-DD-DD at the cursor, not followed by
// more digits or date punctuation.
func (lx *Lexer) looksLikeDate() bool {
	for i := uint32(0); i < 4; i++ {
		if !isDec(lx.cursor.PeekAt(i)) {
			return false
		}
	}
	if lx.cursor.PeekAt(4) != '-' {
		return false
	}
	for _, i := range []uint32{5, 6, 8, 9} {
		if !isDec(lx.cursor.PeekAt(i)) {
			return false
		}
	}
	if lx.cursor.PeekAt(7) != '-' {
		return false
	}
	next := lx.cursor.PeekAt(10)
	return !isDec(next) && next != '-'
}

func (lx *Lexer) scanDate() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Off += 10
	sp := lx.cursor.SpanFrom(start)
	text := lx.text(sp)
	val, err := time.Parse("2006-01-02", text)
	if err != nil {
		return lx.errLex(sp, "invalid date literal")
	}
	return token.Token{Kind: token.Date, Span: sp, Text: text, Value: val}
}
