package diag

import (
	"testing"

	"tusktsk/internal/token"
)

func TestSemErrorCodes(t *testing.T) {
	cases := []struct {
		kind SemErrorKind
		want string
	}{
		{UndefinedVariable, "SEM001"},
		{TypeMismatch, "SEM002"},
		{InvalidIdentifier, "SEM003"},
		{WrongArgumentCount, "SEM004"},
		{InvalidPropertyAccess, "SEM005"},
		{InvalidIndexAccess, "SEM006"},
		{InternalError, "SEM999"},
	}
	for _, tc := range cases {
		if got := tc.kind.Code().ID(); got != tc.want {
			t.Errorf("SemErrorKind(%d) -> %s, want %s", tc.kind, got, tc.want)
		}
	}
	// Unrecognized kinds fall back to SEM000.
	if got := SemErrorKind(250).Code().ID(); got != "SEM000" {
		t.Errorf("fallback = %s, want SEM000", got)
	}
}

func TestSemWarningCodes(t *testing.T) {
	cases := []struct {
		kind SemWarningKind
		want string
	}{
		{UnusedVariable, "WARN001"},
		{VariableRedefinition, "WARN002"},
		{DuplicateSection, "WARN002"},
		{DuplicateKey, "WARN002"},
		{ImplicitConversion, "WARN003"},
		{MixedArrayTypes, "WARN007"},
		{UnknownOperator, "WARN008"},
		{UnknownMethod, "WARN009"},
		{UnvalidatedCrossReference, "WARN010"},
	}
	for _, tc := range cases {
		if got := tc.kind.Code().ID(); got != tc.want {
			t.Errorf("SemWarningKind(%d) -> %s, want %s", tc.kind, got, tc.want)
		}
	}
	if got := SemWarningKind(250).Code().ID(); got != "WARN000" {
		t.Errorf("fallback = %s, want WARN000", got)
	}
}

func TestBoundaryCodes(t *testing.T) {
	if LexFault.ID() != "LEX001" || SynUnexpectedToken.ID() != "SYN001" {
		t.Error("phase fault codes drifted")
	}
	if FileNotFound.ID() != "FILE001" || FileReadFailure.ID() != "FILE002" || InternalFault.ID() != "INT001" {
		t.Error("boundary codes drifted")
	}
	if Code(42).ID() != "E0000" {
		t.Error("unknown code fallback drifted")
	}
}

func TestBagSplitAndSort(t *testing.T) {
	b := NewBag(4)
	b.Add(Diagnostic{Severity: SevWarning, Code: DuplicateKey.Code(), Line: 2, Column: 1})
	b.Add(Diagnostic{Severity: SevError, Code: SynUnexpectedToken, Line: 1, Column: 5})
	b.Add(Diagnostic{Severity: SevError, Code: LexFault, Line: 1, Column: 5})

	if !b.HasErrors() {
		t.Fatal("expected errors")
	}
	if len(b.Errors()) != 2 || len(b.Warnings()) != 1 {
		t.Fatalf("split = %d errors / %d warnings", len(b.Errors()), len(b.Warnings()))
	}

	b.Sort()
	items := b.Items()
	if items[0].Code != LexFault {
		t.Errorf("sort: first code = %s", items[0].Code)
	}
	if items[2].Severity != SevWarning {
		t.Errorf("sort: last severity = %s", items[2].Severity)
	}
}

func TestCloneIndependence(t *testing.T) {
	tok := &token.Token{Kind: token.Ident, Text: "name"}
	d := Diagnostic{Severity: SevError, Code: SemTypeMismatch, Message: "m", Line: 3, Column: 4, Token: tok}
	c := d.Clone()
	c.Token.Text = "changed"
	if tok.Text != "name" {
		t.Error("clone shares the offending token")
	}

	list := CloneAll(nil)
	if list == nil || len(list) != 0 {
		t.Error("CloneAll(nil) should yield empty non-nil slice")
	}
}
