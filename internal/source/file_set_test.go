package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestAddVirtualNormalizes(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("app.tsk", []byte("\xEF\xBB\xBF[app]\r\nname = 1\r\n"))
	f := fs.Get(id)

	if string(f.Content) != "[app]\nname = 1\n" {
		t.Errorf("content not normalized: %q", f.Content)
	}
	if f.Flags&FileVirtual == 0 {
		t.Error("expected FileVirtual flag")
	}
}

func TestLoadMissing(t *testing.T) {
	fs := NewFileSet()
	if _, err := fs.Load("/does/not/exist.tsk"); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadFromDisk(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cfg.tsk")
	if err := os.WriteFile(path, []byte("[db]\nhost = \"localhost\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got, ok := fs.GetByPath(path); !ok || got.ID != id {
		t.Error("GetByPath did not find loaded file")
	}
}

func TestResolvePositions(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("pos.tsk", []byte("[app]\nname = 1\n"))

	cases := []struct {
		off  uint32
		want LineCol
	}{
		{0, LineCol{Line: 1, Col: 1}},  // '['
		{4, LineCol{Line: 1, Col: 5}},  // ']'
		{5, LineCol{Line: 1, Col: 6}},  // '\n' belongs to line 1
		{6, LineCol{Line: 2, Col: 1}},  // 'n'
		{13, LineCol{Line: 2, Col: 8}}, // '1'
	}
	for _, tc := range cases {
		got, _ := fs.Resolve(Span{File: id, Start: tc.off, End: tc.off})
		if got != tc.want {
			t.Errorf("Resolve(%d) = %+v, want %+v", tc.off, got, tc.want)
		}
	}
}

func TestGetLine(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("lines.tsk", []byte("[app]\nname = 1\nport = 8080"))
	f := fs.Get(id)

	if got := f.GetLine(1); got != "[app]" {
		t.Errorf("line 1 = %q", got)
	}
	if got := f.GetLine(3); got != "port = 8080" {
		t.Errorf("line 3 = %q", got)
	}
	if got := f.GetLine(4); got != "" {
		t.Errorf("line 4 = %q, want empty", got)
	}
}

func TestFileVersioning(t *testing.T) {
	fs := NewFileSet()
	id1 := fs.Add("cfg.tsk", []byte("a = 1"), 0)
	id2 := fs.Add("cfg.tsk", []byte("a = 2"), 0)

	if id1 == id2 {
		t.Fatal("expected distinct IDs for re-added path")
	}
	latest, ok := fs.GetByPath("cfg.tsk")
	if !ok || latest.ID != id2 {
		t.Error("index should point at the latest version")
	}
}
