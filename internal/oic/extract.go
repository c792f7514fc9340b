package oic

import (
	"fmt"
	"os"
	"path/filepath"
)

// Swapped out by tests to simulate I/O failures on individual entries.
var (
	mkdirAll  = os.MkdirAll
	writeFile = os.WriteFile
)

// DirectoryError reports that the staging directory could not be created.
// Nothing was extracted when it is returned.
type DirectoryError struct {
	Err error
}

func (e *DirectoryError) Error() string {
	return fmt.Sprintf("cannot create temp dir: %v", e.Err)
}

func (e *DirectoryError) Unwrap() error { return e.Err }

// Runtime is a temporary directory holding an extracted copy of a Bundle.
// It stays on disk until Remove is called.
type Runtime struct {
	dir     string
	written []string
	skipped []string
}

// Extract writes every file of b into a fresh temporary directory.
//
// Extraction is best effort: an entry whose parent directory or content
// cannot be written is recorded in Skipped and the remaining entries are
// still extracted. Whether the staged client is usable is decided by the
// driver when it loads it. Only failing to create the directory itself is
// an error.
func Extract(b *Bundle) (*Runtime, error) {
	dir, err := os.MkdirTemp("", "sqlunlocker-oic-*")
	if err != nil {
		return nil, &DirectoryError{Err: err}
	}

	rt := &Runtime{dir: dir}
	// A listing error still leaves the names walked before it.
	names, _ := b.Names()
	for _, name := range names {
		data, err := b.Get(name)
		if err != nil {
			rt.skipped = append(rt.skipped, name)
			continue
		}
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := mkdirAll(filepath.Dir(path), 0755); err != nil {
			rt.skipped = append(rt.skipped, name)
			continue
		}
		if err := writeFile(path, data, 0755); err != nil {
			rt.skipped = append(rt.skipped, name)
			continue
		}
		rt.written = append(rt.written, name)
	}
	return rt, nil
}

// Dir returns the absolute path of the extracted tree.
func (r *Runtime) Dir() string {
	return r.dir
}

// Written lists the bundle entries that were extracted.
func (r *Runtime) Written() []string {
	return r.written
}

// Skipped lists the bundle entries that could not be extracted.
func (r *Runtime) Skipped() []string {
	return r.skipped
}

// Remove deletes the extracted tree. It is safe to call more than once.
func (r *Runtime) Remove() error {
	if r == nil || r.dir == "" {
		return nil
	}
	if err := os.RemoveAll(r.dir); err != nil {
		return fmt.Errorf("cannot remove %s: %w", r.dir, err)
	}
	return nil
}
