// Package cache serializes a resolved-symbol-table snapshot to disk for
// `yo dump-symbols --cache-dir`. This is debug tooling only, never consulted to
// skip elaboration — the semantic core has no notion of an incremental
// build (SPEC_FULL.md §1 Non-goals still exclude that); the cache is a
// write-then-read artifact for offline inspection of a compilation's
// registered callables.
//
// Grounded on surge/internal/driver/dcache.go's DiskCache: an on-disk
// directory keyed by content hash, atomic write-via-tempfile-then-rename,
// github.com/vmihailenco/msgpack/v5 for the wire format.
package cache

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"
)

// schemaVersion guards against decoding a snapshot written by an
// incompatible layout; bump when Snapshot's shape changes.
const schemaVersion uint16 = 1

// CallableEntry is one row of a serialized symbol-table snapshot: enough to
// reconstruct a summary listing without pulling in internal/symbols'
// pointer-heavy ResolvedCallable (whose Decl/Handle fields are not
// serializable).
type CallableEntry struct {
	Canonical string
	Mangled   string
	OwnerType string
	ParamTypeNames []string
	RetTypeName    string
	Template       bool
}

// Snapshot is the on-disk shape written by Store.Put and read back by
// Store.Get.
type Snapshot struct {
	Schema    uint16
	Module    string
	Callables []CallableEntry
}

// Store writes snapshots keyed by an opaque name (typically the entry
// module's name) under dir.
type Store struct {
	dir string
}

// Open ensures dir exists and returns a Store rooted at it.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Store{dir: dir}, nil
}

func (s *Store) pathFor(key string) string {
	return filepath.Join(s.dir, key+".mp")
}

// Put atomically writes snap under key (write to a tempfile, then rename —
// the same crash-safety pattern as DiskCache.Put).
func (s *Store) Put(key string, snap *Snapshot) error {
	snap.Schema = schemaVersion
	path := s.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(path), "tmp-*")
	if err != nil {
		return err
	}
	tmpName := f.Name()
	defer os.Remove(tmpName)

	enc := msgpack.NewEncoder(f)
	if err := enc.Encode(snap); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}

// Get reads back a snapshot previously written under key. ok is false (with
// a nil error) if no snapshot exists for key, or if it was written by an
// incompatible schema version.
func (s *Store) Get(key string) (*Snapshot, bool, error) {
	f, err := os.Open(s.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	defer f.Close()

	var snap Snapshot
	dec := msgpack.NewDecoder(f)
	if err := dec.Decode(&snap); err != nil {
		return nil, false, err
	}
	if snap.Schema != schemaVersion {
		return nil, false, nil
	}
	return &snap, true, nil
}
