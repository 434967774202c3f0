package token

import (
	"tusktsk/internal/source"
)

// Token is a single lexical token with its location. Value carries the decoded
// literal where one exists: string contents without quotes, int64 or float64
// for numbers, bool for booleans, time.Time for dates. It is nil otherwise.
type Token struct {
	Kind  Kind
	Span  source.Span
	Text  string
	Value any
}

// IsLiteral reports whether the token is a scalar literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case String, Number, Bool, Null, Date:
		return true
	default:
		return false
	}
}

// IsValueStart reports whether the token can begin a value expression.
func (t Token) IsValueStart() bool {
	switch t.Kind {
	case String, Number, Bool, Null, Date, AtCall, FuncBody, Dollar, LBracket, LBrace, Ident:
		return true
	default:
		return false
	}
}
