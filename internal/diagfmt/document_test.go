package diagfmt

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"tusktsk/internal/ast"
)

func sampleDoc() *ast.Document {
	return &ast.Document{Sections: []ast.Section{{
		Name: "server",
		Entries: []ast.Entry{
			{Key: "host", Value: ast.String{Val: "localhost"}},
			{Key: "port", Value: ast.Number{Val: 8080, IsInt: true}},
			{Key: "ratio", Value: ast.Number{Val: 0.75}},
			{Key: "debug", Value: ast.Bool{Val: true}},
			{Key: "extra", Value: ast.Null{}},
			{Key: "since", Value: ast.Date{Val: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)}},
			{Key: "tags", Value: ast.Array{Elems: []ast.Value{ast.String{Val: "a"}, ast.String{Val: "b"}}}},
			{Key: "limits", Value: ast.Object{Keys: []string{"max"}, Vals: []ast.Value{ast.Number{Val: 10, IsInt: true}}}},
			{Key: "home", Value: ast.OperatorCall{Name: "env", Raw: `@env("HOME")`, Args: []string{`"HOME"`}}},
			{Key: "root", Value: ast.Reference{Kind: ast.RefGlobal, Segments: []string{"base", "dir"}}},
			{Key: "peer", Value: ast.Reference{Kind: ast.RefCrossFile, Segments: []string{"other", "tsk", "get", `"key"`}}},
		},
	}}}
}

func TestFormatDocumentPretty(t *testing.T) {
	var b strings.Builder
	if err := FormatDocumentPretty(&b, sampleDoc()); err != nil {
		t.Fatal(err)
	}
	out := b.String()

	for _, want := range []string{
		"[server]\n",
		"host = \"localhost\"\n",
		"port = 8080\n",
		"ratio = 0.75\n",
		"debug = true\n",
		"extra = null\n",
		"since = 2024-03-01\n",
		"tags = [\"a\", \"b\"]\n",
		"limits = {max = 10}\n",
		"home = @env(\"HOME\")\n",
		"root = $base.dir\n",
		"peer = @other.tsk.get(\"key\")\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestFormatDocumentJSON(t *testing.T) {
	var b strings.Builder
	if err := FormatDocumentJSON(&b, sampleDoc()); err != nil {
		t.Fatal(err)
	}

	var root struct {
		Sections []struct {
			Name    string `json:"name"`
			Entries []struct {
				Key   string         `json:"key"`
				Value map[string]any `json:"value"`
			} `json:"entries"`
		} `json:"sections"`
	}
	if err := json.Unmarshal([]byte(b.String()), &root); err != nil {
		t.Fatal(err)
	}
	if len(root.Sections) != 1 || root.Sections[0].Name != "server" {
		t.Fatalf("sections = %+v", root.Sections)
	}
	entries := root.Sections[0].Entries
	if entries[1].Value["type"] != "integer" {
		t.Errorf("port type = %v", entries[1].Value["type"])
	}
	if entries[9].Value["kind"] != "global" {
		t.Errorf("reference kind = %v", entries[9].Value["kind"])
	}
}
