package sema_test

import (
	"testing"

	"tusktsk/internal/diag"
	"tusktsk/internal/lexer"
	"tusktsk/internal/parser"
	"tusktsk/internal/sema"
	"tusktsk/internal/source"
)

func analyze(t *testing.T, input string, opts sema.Options) sema.Result {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.tsk", []byte(input))
	file := fs.Get(id)

	lx := lexer.New(file, lexer.Options{})
	res := parser.ParseTokens(file, lx, parser.Options{})
	if res.Failed {
		t.Fatalf("input must be syntactically valid: %q", input)
	}
	return sema.Analyze(file, res.Doc, opts)
}

func codes(ds []diag.Diagnostic) []string {
	out := make([]string, len(ds))
	for i, d := range ds {
		out[i] = d.Code.ID()
	}
	return out
}

func hasCode(ds []diag.Diagnostic, id string) bool {
	for _, d := range ds {
		if d.Code.ID() == id {
			return true
		}
	}
	return false
}

func TestCleanDocument(t *testing.T) {
	res := analyze(t, `
[global]
base = "/srv"

[app]
name = "web"
root = $base
alias = name
db_host = db.host

[db]
host = "localhost"
`, sema.DefaultOptions())
	if len(res.Errors) != 0 {
		t.Errorf("errors = %v", codes(res.Errors))
	}
	if len(res.Warnings) != 0 {
		t.Errorf("warnings = %v", codes(res.Warnings))
	}
}

func TestUndefinedReferences(t *testing.T) {
	res := analyze(t, `
[app]
a = $missing
b = nowhere
c = ghost.key
d = app.a.nothere
`, sema.DefaultOptions())

	if got := codes(res.Errors); len(got) != 4 {
		t.Fatalf("errors = %v, want four SEM findings", got)
	}
	for i, want := range []string{"SEM001", "SEM001", "SEM001", "SEM005"} {
		if res.Errors[i].Code.ID() != want {
			t.Errorf("error %d = %s, want %s", i, res.Errors[i].Code.ID(), want)
		}
	}
}

func TestPropertyAndIndexAccess(t *testing.T) {
	res := analyze(t, `
[cfg]
obj = {x = 1, nested = {y = 2}}
arr = [10, 20]
items = [{name = "a"}, {name = "b"}]
ok1 = cfg.obj.x
ok2 = cfg.obj.nested.y
ok3 = cfg.arr.1
ok4 = cfg.items.0.name
bad1 = cfg.obj.0
bad2 = cfg.arr.x
bad3 = cfg.arr.9
bad4 = cfg.obj.zzz
`, sema.DefaultOptions())

	got := codes(res.Errors)
	want := []string{"SEM006", "SEM005", "SEM006", "SEM001"}
	if len(got) != len(want) {
		t.Fatalf("errors = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("error %d = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestOperatorChecks(t *testing.T) {
	res := analyze(t, `
[ops]
ok = @env("HOME", "/root")
missing = @env()
extra = @cache("5m", 1, 2)
badtype = @env(42)
mystery = @teleport("x")
`, sema.DefaultOptions())

	errs := codes(res.Errors)
	if len(errs) != 3 {
		t.Fatalf("errors = %v", errs)
	}
	if errs[0] != "SEM004" || errs[1] != "SEM004" || errs[2] != "SEM002" {
		t.Errorf("errors = %v", errs)
	}
	if !hasCode(res.Warnings, "WARN008") {
		t.Errorf("warnings = %v, want WARN008", codes(res.Warnings))
	}
}

func TestWarnings(t *testing.T) {
	res := analyze(t, `
[global]
used = 1
unused = 2

[app]
ref = $used
flag = "true"
port = "8080"
mixed = [1, "two"]
dup = 1
dup = 2

[app]
x = 1
`, sema.DefaultOptions())

	if len(res.Errors) != 0 {
		t.Fatalf("errors = %v", codes(res.Errors))
	}
	for _, want := range []string{"WARN001", "WARN002", "WARN003", "WARN007"} {
		if !hasCode(res.Warnings, want) {
			t.Errorf("missing %s in %v", want, codes(res.Warnings))
		}
	}
	// duplicate key and duplicate section both map to WARN002
	n := 0
	for _, d := range res.Warnings {
		if d.Code.ID() == "WARN002" {
			n++
		}
	}
	if n != 2 {
		t.Errorf("WARN002 count = %d, want 2", n)
	}
}

func TestCrossFileReference(t *testing.T) {
	res := analyze(t, `
[app]
remote = @other.tsk.get("key")
weird = @other.tsk.teleport("key")
`, sema.DefaultOptions())

	if len(res.Errors) != 0 {
		t.Fatalf("errors = %v", codes(res.Errors))
	}
	warns := codes(res.Warnings)
	n010, n009 := 0, 0
	for _, w := range warns {
		switch w {
		case "WARN010":
			n010++
		case "WARN009":
			n009++
		}
	}
	if n010 != 2 || n009 != 1 {
		t.Errorf("warnings = %v, want two WARN010 and one WARN009", warns)
	}
}

func TestDisabledWarningGroups(t *testing.T) {
	opts := sema.Options{} // everything off
	res := analyze(t, `
[global]
unused = 1

[app]
flag = "true"
mixed = [1, "two"]
dup = 1
dup = 2
remote = @f.tsk.get("k")
`, opts)

	if len(res.Errors) != 0 {
		t.Fatalf("errors = %v", codes(res.Errors))
	}
	if len(res.Warnings) != 0 {
		t.Errorf("warnings = %v, want none with all groups disabled", codes(res.Warnings))
	}
}

func TestInvalidObjectKey(t *testing.T) {
	res := analyze(t, `
[app]
o = {"my key" = 1}
`, sema.DefaultOptions())
	if !hasCode(res.Errors, "SEM003") {
		t.Errorf("errors = %v, want SEM003", codes(res.Errors))
	}
}
