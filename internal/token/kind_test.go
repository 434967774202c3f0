package token

import "testing"

func TestKindString(t *testing.T) {
	cases := []struct {
		kind Kind
		want string
	}{
		{Invalid, "Invalid"},
		{EOF, "EOF"},
		{Ident, "Ident"},
		{AtCall, "AtCall"},
		{FuncBody, "FuncBody"},
		{Assign, "Assign"},
		{Dot, "Dot"},
	}
	for _, tc := range cases {
		if got := tc.kind.String(); got != tc.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tc.kind, got, tc.want)
		}
	}
	if got := Kind(200).String(); got != "Unknown" {
		t.Errorf("out-of-range kind = %q", got)
	}
}

func TestIsValueStart(t *testing.T) {
	starts := []Kind{String, Number, Bool, Null, Date, AtCall, FuncBody, Dollar, LBracket, LBrace, Ident}
	for _, k := range starts {
		if !(Token{Kind: k}).IsValueStart() {
			t.Errorf("%s should start a value", k)
		}
	}
	for _, k := range []Kind{EOF, RBracket, RBrace, Assign, Comma} {
		if (Token{Kind: k}).IsValueStart() {
			t.Errorf("%s should not start a value", k)
		}
	}
}
