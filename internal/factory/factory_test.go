package factory_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"tusktsk/internal/ast"
	"tusktsk/internal/diag"
	"tusktsk/internal/factory"
)

const cleanDoc = `
[app]
name = "web"
port = 8080
`

func TestParseStringNeverFails(t *testing.T) {
	inputs := []string{
		"",
		"[app]\nname = 1",
		"[app\nname = 1",
		`x = "unterminated`,
		"!!!",
		"[app]\nx = $missing",
	}
	f := factory.NewDefault()
	for _, input := range inputs {
		res := f.ParseString(input, "")
		if res == nil || res.Document == nil {
			t.Fatalf("%q: nil result or document", input)
		}
		if res.Success != (len(res.Errors) == 0) {
			t.Errorf("%q: success flag inconsistent", input)
		}
	}
}

func TestEmptySourceShortCircuits(t *testing.T) {
	f := factory.NewDefault()
	res := f.ParseString("", "")
	if !res.Success {
		t.Fatal("empty source must succeed")
	}
	if !res.Document.Empty() {
		t.Error("document should be empty")
	}
	if len(res.Errors) != 0 || len(res.Warnings) != 0 {
		t.Error("no diagnostics expected")
	}
	if res.Elapsed != 0 {
		t.Error("elapsed must be zero for the short circuit")
	}
	if res.SourceID != factory.DefaultSourceID {
		t.Errorf("source id = %q", res.SourceID)
	}
}

func TestCacheIdempotence(t *testing.T) {
	f := factory.NewDefault()

	first := f.ParseString(cleanDoc, "app.tsk")
	if !first.Success || first.FromCache {
		t.Fatalf("first parse: success=%v fromCache=%v", first.Success, first.FromCache)
	}
	second := f.ParseString(cleanDoc, "app.tsk")
	if !second.FromCache {
		t.Fatal("second parse should hit the cache")
	}
	if len(second.Errors) != len(first.Errors) || len(second.Warnings) != len(first.Warnings) {
		t.Error("diagnostics differ between calls")
	}
	if len(second.Document.Sections) != len(first.Document.Sections) {
		t.Error("AST differs between calls")
	}
}

func TestCacheCopyOnRead(t *testing.T) {
	f := factory.NewDefault()
	f.ParseString(cleanDoc, "app.tsk")

	hit := f.ParseString(cleanDoc, "app.tsk")
	hit.Document.Sections[0].Name = "mutated"
	hit.Document.Sections[0].Entries[0].Value = ast.Null{}

	again := f.ParseString(cleanDoc, "app.tsk")
	if again.Document.Sections[0].Name != "app" {
		t.Error("caller mutation leaked into the cache")
	}
	if _, ok := again.Document.Sections[0].Entries[0].Value.(ast.String); !ok {
		t.Error("cached value mutated through a returned result")
	}
}

func TestCacheDisabled(t *testing.T) {
	opts := factory.DefaultOptions()
	opts.EnableCaching = false
	f := factory.New(opts)

	f.ParseString(cleanDoc, "app.tsk")
	res := f.ParseString(cleanDoc, "app.tsk")
	if res.FromCache {
		t.Error("cache disabled but hit flagged")
	}
	if f.Statistics().CacheSize != 0 {
		t.Error("cache should stay empty")
	}
}

func TestCacheEviction(t *testing.T) {
	opts := factory.DefaultOptions()
	opts.MaxCacheSize = 5
	f := factory.New(opts)

	for i := 0; i < 12; i++ {
		src := fmt.Sprintf("[s%d]\nk = %d\n", i, i)
		res := f.ParseString(src, "gen.tsk")
		if !res.Success {
			t.Fatalf("doc %d failed", i)
		}
	}
	if size := f.Statistics().CacheSize; size > 5 {
		t.Errorf("cache size = %d, want <= 5", size)
	}
}

func TestClearCacheAndStatistics(t *testing.T) {
	f := factory.NewDefault()
	f.ParseString(cleanDoc, "app.tsk")
	if f.Statistics().CacheSize != 1 {
		t.Fatalf("cache size = %d", f.Statistics().CacheSize)
	}

	f.ClearCache()
	stats := f.Statistics()
	if stats.CacheSize != 0 {
		t.Errorf("cache size after clear = %d", stats.CacheSize)
	}
	if !stats.CacheEnabled || stats.MaxCacheSize != 100 {
		t.Errorf("stats = %+v", stats)
	}
	if !stats.ActiveOptions.PerformSemanticAnalysis {
		t.Error("active options missing from stats")
	}
}

func TestParseFileMissing(t *testing.T) {
	f := factory.NewDefault()
	res := f.ParseFile("/does/not/exist.tsk")
	if res.Success {
		t.Fatal("expected failure")
	}
	if len(res.Errors) != 1 {
		t.Fatalf("errors = %d, want 1", len(res.Errors))
	}
	d := res.Errors[0]
	if d.Code.ID() != "FILE001" || d.Severity != diag.SevFatal {
		t.Errorf("diagnostic = %s/%s", d.Code, d.Severity)
	}
	if d.Line != 1 || d.Column != 1 {
		t.Errorf("position = %d:%d, want 1:1", d.Line, d.Column)
	}
	if res.Document == nil {
		t.Error("document must not be nil")
	}
}

func TestParseFileUnreadable(t *testing.T) {
	dir := t.TempDir()
	// A directory path fails reading with something other than not-exist.
	res := factory.NewDefault().ParseFile(dir)
	if res.Success {
		t.Fatal("expected failure")
	}
	if res.Errors[0].Code.ID() != "FILE002" || res.Errors[0].Severity != diag.SevFatal {
		t.Errorf("diagnostic = %s/%s", res.Errors[0].Code, res.Errors[0].Severity)
	}
}

func TestParseFileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.tsk")
	if err := os.WriteFile(path, []byte(cleanDoc), 0o600); err != nil {
		t.Fatal(err)
	}

	f := factory.NewDefault()
	res := f.ParseFile(path)
	if !res.Success {
		t.Fatalf("errors: %+v", res.Errors)
	}
	if res.SourceID != path {
		t.Errorf("source id = %q", res.SourceID)
	}

	ctxRes := f.ParseFileCtx(context.Background(), path)
	if !ctxRes.Success || !ctxRes.FromCache {
		t.Errorf("ctx variant: success=%v fromCache=%v", ctxRes.Success, ctxRes.FromCache)
	}
}

func TestParseFileCtxCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res := factory.NewDefault().ParseFileCtx(ctx, "/tmp/whatever.tsk")
	if res.Success {
		t.Fatal("expected failure")
	}
	if res.Errors[0].Code.ID() != "FILE002" {
		t.Errorf("code = %s", res.Errors[0].Code)
	}
}

func TestSyntaxErrorResult(t *testing.T) {
	f := factory.NewDefault()
	res := f.ParseString("[app\nname=1", "bad.tsk")
	if res.Success {
		t.Fatal("expected failure")
	}
	if len(res.Errors) == 0 || res.Errors[0].Code.ID() != "SYN001" {
		t.Errorf("errors = %+v", res.Errors)
	}
	if res.Document == nil {
		t.Error("partial AST must be present")
	}
	if res.Semantic != nil {
		t.Error("semantic phase must not run after syntax errors")
	}
}

func TestSemanticAnalysisToggle(t *testing.T) {
	src := "[app]\nx = $missing\n"

	on := factory.NewDefault().ParseString(src, "a.tsk")
	if on.Success {
		t.Fatal("undefined reference should fail with analysis on")
	}
	if on.Errors[0].Code.ID() != "SEM001" {
		t.Errorf("code = %s", on.Errors[0].Code)
	}

	opts := factory.DefaultOptions()
	opts.PerformSemanticAnalysis = false
	off := factory.New(opts).ParseString(src, "a.tsk")
	if !off.Success {
		t.Errorf("analysis disabled: errors = %+v", off.Errors)
	}
	if off.Semantic != nil {
		t.Error("semantic result should be absent")
	}
}

func TestIncludeTokens(t *testing.T) {
	withTokens := factory.DefaultOptions()
	withTokens.IncludeTokens = true
	res := factory.New(withTokens).ParseString(cleanDoc, "a.tsk")
	if len(res.Tokens) == 0 {
		t.Error("token list missing")
	}

	res = factory.NewDefault().ParseString(cleanDoc, "b.tsk")
	if res.Tokens != nil {
		t.Error("token list retained without IncludeTokens")
	}
}

func TestValidate(t *testing.T) {
	f := factory.NewDefault()
	ok := f.ValidateString(cleanDoc, "a.tsk")
	if !ok.IsValid || len(ok.Errors) != 0 {
		t.Errorf("valid doc rejected: %+v", ok.Errors)
	}
	bad := f.ValidateString("[app\nx=1", "b.tsk")
	if bad.IsValid {
		t.Error("invalid doc accepted")
	}
	missing := f.ValidateFile("/does/not/exist.tsk")
	if missing.IsValid || missing.Errors[0].Code.ID() != "FILE001" {
		t.Errorf("missing file: %+v", missing.Errors)
	}
}

func TestConcurrentParsing(t *testing.T) {
	f := factory.NewDefault()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				src := fmt.Sprintf("[s%d]\nk = %d\n", j%7, j)
				res := f.ParseString(src, "conc.tsk")
				if res.Document == nil {
					t.Error("nil document")
					return
				}
			}
		}()
	}
	wg.Wait()
	if size := f.Statistics().CacheSize; size > 100 {
		t.Errorf("cache exceeded capacity: %d", size)
	}
}

func TestParseFilesBatch(t *testing.T) {
	dir := t.TempDir()
	paths := make([]string, 0, 4)
	for i := 0; i < 3; i++ {
		p := filepath.Join(dir, fmt.Sprintf("f%d.tsk", i))
		if err := os.WriteFile(p, []byte(fmt.Sprintf("[s]\nk = %d\n", i)), 0o600); err != nil {
			t.Fatal(err)
		}
		paths = append(paths, p)
	}
	paths = append(paths, filepath.Join(dir, "missing.tsk"))

	results := factory.NewDefault().ParseFiles(context.Background(), paths)
	if len(results) != 4 {
		t.Fatalf("results = %d", len(results))
	}
	for i := 0; i < 3; i++ {
		if results[i].Path != paths[i] || !results[i].Result.Success {
			t.Errorf("result %d: %+v", i, results[i].Result.Errors)
		}
	}
	if results[3].Result.Success || results[3].Result.Errors[0].Code.ID() != "FILE001" {
		t.Error("missing file should fail with FILE001")
	}

	// missing.tsk was never written, so the directory listing has three files.
	listed, err := factory.ListTskFiles(dir)
	if err != nil || len(listed) != 3 {
		t.Errorf("ListTskFiles = %v, %v", listed, err)
	}
}
