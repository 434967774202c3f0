package parser_test

import (
	"testing"

	"tusktsk/internal/ast"
	"tusktsk/internal/diag"
	"tusktsk/internal/lexer"
	"tusktsk/internal/parser"
	"tusktsk/internal/source"
)

type testReporter struct {
	diagnostics []diag.Diagnostic
}

func (r *testReporter) Report(d diag.Diagnostic) {
	r.diagnostics = append(r.diagnostics, d)
}

func parseSource(t *testing.T, input string) (parser.Result, *testReporter) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.tsk", []byte(input))
	file := fs.Get(id)

	rep := &testReporter{}
	lx := lexer.New(file, lexer.Options{Reporter: rep})
	return parser.ParseTokens(file, lx, parser.Options{Reporter: rep}), rep
}

func TestParseDocument(t *testing.T) {
	res, rep := parseSource(t, `
[app]
name = "web"
port: 8080
ratio = 0.5
debug = true
empty = null
launch = 2024-01-15

[db]
host = "localhost"
`)
	if res.Failed {
		t.Fatalf("unexpected failure: %+v", rep.diagnostics)
	}
	if len(res.Doc.Sections) != 2 {
		t.Fatalf("sections = %d", len(res.Doc.Sections))
	}

	app := res.Doc.Sections[0]
	if app.Name != "app" || len(app.Entries) != 6 {
		t.Fatalf("app section = %q with %d entries", app.Name, len(app.Entries))
	}
	if v := app.Entries[0].Value.(ast.String); v.Val != "web" {
		t.Errorf("name = %q", v.Val)
	}
	if v := app.Entries[1].Value.(ast.Number); v.Val != 8080 || !v.IsInt {
		t.Errorf("port = %+v", v)
	}
	if v := app.Entries[2].Value.(ast.Number); v.Val != 0.5 || v.IsInt {
		t.Errorf("ratio = %+v", v)
	}
	if _, ok := app.Entries[4].Value.(ast.Null); !ok {
		t.Error("empty should be null")
	}
	if _, ok := app.Entries[5].Value.(ast.Date); !ok {
		t.Error("launch should be a date")
	}
}

func TestParseComposites(t *testing.T) {
	res, rep := parseSource(t, `
[cfg]
tags = ["a", "b", 3]
nested = [[1, 2], []]
opts = {retries = 3, verbose: true}
mixed = [{x = 1}, "s",]
`)
	if res.Failed {
		t.Fatalf("unexpected failure: %+v", rep.diagnostics)
	}
	sec := res.Doc.Sections[0]

	tags := sec.Entries[0].Value.(ast.Array)
	if len(tags.Elems) != 3 {
		t.Errorf("tags len = %d", len(tags.Elems))
	}
	nested := sec.Entries[1].Value.(ast.Array)
	if len(nested.Elems[0].(ast.Array).Elems) != 2 || len(nested.Elems[1].(ast.Array).Elems) != 0 {
		t.Error("nested arrays wrong")
	}
	opts := sec.Entries[2].Value.(ast.Object)
	if len(opts.Keys) != 2 || opts.Keys[0] != "retries" {
		t.Errorf("opts = %+v", opts.Keys)
	}
	mixed := sec.Entries[3].Value.(ast.Array)
	if len(mixed.Elems) != 2 {
		t.Errorf("trailing comma array len = %d", len(mixed.Elems))
	}
}

func TestParseOperatorsAndRefs(t *testing.T) {
	res, rep := parseSource(t, `
[ops]
home = @env("HOME", "/root")
now = @date
remote = @other.tsk.get("key")
base = $root
alias = name
joined = db.host
fn_fujsen = "function(x) { return x }"
body = """
return 1
"""
`)
	if res.Failed {
		t.Fatalf("unexpected failure: %+v", rep.diagnostics)
	}
	sec := res.Doc.Sections[0]

	env := sec.Entries[0].Value.(ast.OperatorCall)
	if env.Name != "env" || len(env.Args) != 2 || env.Args[0] != `"HOME"` {
		t.Errorf("env call = %+v", env)
	}
	now := sec.Entries[1].Value.(ast.OperatorCall)
	if now.Name != "date" || len(now.Args) != 0 {
		t.Errorf("date call = %+v", now)
	}
	remote := sec.Entries[2].Value.(ast.Reference)
	if remote.Kind != ast.RefCrossFile {
		t.Errorf("remote kind = %d", remote.Kind)
	}
	if base := sec.Entries[3].Value.(ast.Reference); base.Kind != ast.RefGlobal || base.Segments[0] != "root" {
		t.Errorf("base = %+v", base)
	}
	if alias := sec.Entries[4].Value.(ast.Reference); alias.Kind != ast.RefLocal {
		t.Errorf("alias = %+v", alias)
	}
	if joined := sec.Entries[5].Value.(ast.Reference); joined.Kind != ast.RefDotted || len(joined.Segments) != 2 {
		t.Errorf("joined = %+v", joined)
	}
	if _, ok := sec.Entries[6].Value.(ast.FuncLit); !ok {
		t.Error("fn_fujsen should be a function literal")
	}
	if body := sec.Entries[7].Value.(ast.FuncLit); body.Body != "\nreturn 1\n" {
		t.Errorf("body = %q", body.Body)
	}
}

func TestParseDottedIndexPath(t *testing.T) {
	res, rep := parseSource(t, "[cfg]\nfirst = tags.0.name\n")
	if res.Failed {
		t.Fatalf("unexpected failure: %+v", rep.diagnostics)
	}
	ref := res.Doc.Sections[0].Entries[0].Value.(ast.Reference)
	if ref.Kind != ast.RefDotted || len(ref.Segments) != 3 {
		t.Fatalf("ref = %+v", ref)
	}
	if ref.Segments[1] != "0" || ref.Segments[2] != "name" {
		t.Errorf("segments = %v", ref.Segments)
	}
}

func TestSyntaxFaultAbortsWithPartialAST(t *testing.T) {
	res, rep := parseSource(t, "[app\nname=1")
	if !res.Failed {
		t.Fatal("expected failure")
	}
	if len(rep.diagnostics) != 1 {
		t.Fatalf("%d diagnostics, want 1", len(rep.diagnostics))
	}
	d := rep.diagnostics[0]
	if d.Code.ID() != "SYN001" || d.Severity != diag.SevError || d.Phase != diag.PhaseSyntax {
		t.Errorf("diagnostic = %s/%s/%s", d.Code, d.Severity, d.Phase)
	}
	if d.Token == nil || d.Token.Text != "name" {
		t.Errorf("offending token = %+v", d.Token)
	}
	if d.Line != 2 || d.Column != 1 {
		t.Errorf("position = %d:%d", d.Line, d.Column)
	}
	if res.Doc == nil {
		t.Fatal("partial AST must not be nil")
	}
}

func TestSyntaxFaultCases(t *testing.T) {
	cases := []string{
		"name = 1",          // assignment before any section
		"[app]\nname 1",     // missing '='
		"[app]\nname =",     // missing value
		"[app]\nx = [1, 2",  // unclosed array
		"[app]\nx = {a = }", // bad object value
		"[]",                // empty section name
	}
	for _, input := range cases {
		res, rep := parseSource(t, input)
		if !res.Failed {
			t.Errorf("%q: expected failure", input)
			continue
		}
		if len(rep.diagnostics) != 1 || rep.diagnostics[0].Code.ID() != "SYN001" {
			t.Errorf("%q: diagnostics = %+v", input, rep.diagnostics)
		}
		if res.Doc == nil {
			t.Errorf("%q: nil document", input)
		}
	}
}

func TestLexFaultStopsParserQuietly(t *testing.T) {
	res, rep := parseSource(t, "[app]\nname = \"oops")
	if !res.Failed {
		t.Fatal("expected failure")
	}
	// Only the lexer's LEX001; the parser must not add SYN001 on top.
	if len(rep.diagnostics) != 1 || rep.diagnostics[0].Code.ID() != "LEX001" {
		t.Errorf("diagnostics = %+v", rep.diagnostics)
	}
}

func TestEmptyInput(t *testing.T) {
	res, rep := parseSource(t, "")
	if res.Failed || len(rep.diagnostics) != 0 {
		t.Fatalf("empty input: failed=%v diags=%+v", res.Failed, rep.diagnostics)
	}
	if !res.Doc.Empty() {
		t.Error("document should be empty")
	}
}
