package factory

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"tusktsk/internal/ast"
	"tusktsk/internal/diag"
	"tusktsk/internal/sema"
	"tusktsk/internal/token"
)

// snapshot is an immutable copy of a successful parse. Entries are never
// mutated after insertion; every read hands out fresh clones.
type snapshot struct {
	doc       *ast.Document
	errors    []diag.Diagnostic
	warnings  []diag.Diagnostic
	tokens    []token.Token
	semantic  *sema.Result
	createdAt time.Time
}

// cacheKey combines the source identifier with the hash of the full text.
// Two distinct texts hashing identically would produce a stale hit; that is
// an accepted risk of the scheme.
func cacheKey(id string, contentHash [32]byte) string {
	return id + ":" + hex.EncodeToString(contentHash[:])
}

func hashSource(src string) [32]byte {
	return sha256.Sum256([]byte(src))
}

// cacheGet returns a cloned result for key, if present. The critical section
// covers only the map access; cloning happens on the snapshot, which is
// immutable once stored.
func (f *Factory) cacheGet(key string) (*snapshot, bool) {
	f.mu.Lock()
	snap, ok := f.cache[key]
	f.mu.Unlock()
	return snap, ok
}

// cachePut stores a snapshot, evicting exactly one arbitrary entry when at
// capacity. Deliberately not LRU: the evicted entry is whichever the map
// enumerates first.
func (f *Factory) cachePut(key string, snap *snapshot) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.cache[key]; !exists && len(f.cache) >= f.opts.MaxCacheSize {
		for victim := range f.cache {
			delete(f.cache, victim)
			break
		}
	}
	f.cache[key] = snap
}

func (f *Factory) cacheLen() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.cache)
}

// ClearCache drops every cached snapshot.
func (f *Factory) ClearCache() {
	f.mu.Lock()
	f.cache = make(map[string]*snapshot)
	f.mu.Unlock()
}

// newSnapshot deep-copies the result so later caller mutations cannot leak
// into the cache.
func newSnapshot(res *Result) *snapshot {
	snap := &snapshot{
		doc:       res.Document.Clone(),
		errors:    diag.CloneAll(res.Errors),
		warnings:  diag.CloneAll(res.Warnings),
		createdAt: time.Now(),
	}
	if res.Tokens != nil {
		snap.tokens = make([]token.Token, len(res.Tokens))
		copy(snap.tokens, res.Tokens)
	}
	if res.Semantic != nil {
		snap.semantic = &sema.Result{
			Errors:   diag.CloneAll(res.Semantic.Errors),
			Warnings: diag.CloneAll(res.Semantic.Warnings),
		}
	}
	return snap
}

// result materializes an independent Result from the snapshot.
func (s *snapshot) result(id string, elapsed time.Duration) *Result {
	res := &Result{
		Success:   len(s.errors) == 0,
		Document:  s.doc.Clone(),
		Errors:    diag.CloneAll(s.errors),
		Warnings:  diag.CloneAll(s.warnings),
		SourceID:  id,
		Elapsed:   elapsed,
		FromCache: true,
	}
	if s.tokens != nil {
		res.Tokens = make([]token.Token, len(s.tokens))
		copy(res.Tokens, s.tokens)
	}
	if s.semantic != nil {
		res.Semantic = &sema.Result{
			Errors:   diag.CloneAll(s.semantic.Errors),
			Warnings: diag.CloneAll(s.semantic.Warnings),
		}
	}
	return res
}
