package factory

import (
	"encoding/hex"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"tusktsk/internal/diag"
)

// diskCacheSchemaVersion invalidates stored payloads when the format changes.
const diskCacheSchemaVersion uint16 = 1

// DiskCache mirrors successful snapshots to disk, keyed by content hash, so
// repeated runs over unchanged documents skip the pipeline entirely.
// Thread-safe; writes are atomic via temp file + rename.
type DiskCache struct {
	mu  sync.Mutex
	dir string
}

// DiskPayload is the persisted form of a snapshot. Only warnings travel:
// persisted snapshots are successful by construction, so the error list is
// empty, and token lists are deliberately not persisted.
type DiskPayload struct {
	Schema    uint16
	CreatedAt time.Time
	Document  PackedDocument
	Warnings  []diag.Diagnostic
}

// OpenDiskCache initializes a disk cache under the standard user cache dir.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app, "snapshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// OpenDiskCacheAt uses an explicit directory; tests and tools point this at
// a scratch location.
func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) pathFor(key [32]byte) string {
	return filepath.Join(c.dir, hex.EncodeToString(key[:])+".mp")
}

// Put serializes and writes a snapshot payload atomically.
func (c *DiskCache) Put(key [32]byte, snap *snapshot) error {
	if c == nil {
		return nil
	}
	payload := DiskPayload{
		Schema:    diskCacheSchemaVersion,
		CreatedAt: snap.createdAt,
		Document:  PackDocument(snap.doc),
		Warnings:  snap.warnings,
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	tmp, err := os.CreateTemp(c.dir, "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		_ = os.Remove(tmp.Name())
	}()

	if err := msgpack.NewEncoder(tmp).Encode(&payload); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), c.pathFor(key))
}

// Get reads a payload back; ok is false on a miss or schema mismatch.
func (c *DiskCache) Get(key [32]byte) (*snapshot, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	// #nosec G304 -- path is derived from a hex digest under our own dir
	file, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	defer func() {
		_ = file.Close()
	}()

	var payload DiskPayload
	if err := msgpack.NewDecoder(file).Decode(&payload); err != nil {
		return nil, false, err
	}
	if payload.Schema != diskCacheSchemaVersion {
		return nil, false, nil
	}
	return &snapshot{
		doc:       UnpackDocument(payload.Document),
		errors:    []diag.Diagnostic{},
		warnings:  payload.Warnings,
		createdAt: payload.CreatedAt,
	}, true, nil
}
