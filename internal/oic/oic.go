// Package oic bundles the Oracle Instant Client files into the binary and
// stages them into a temporary directory when no client is installed on the
// host. This allows the binary to reach an Oracle database with no external
// runtime dependencies.
package oic

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"

	"github.com/zeebo/blake3"
)

// ErrNotFound is returned by Get for names that are not part of the bundle.
var ErrNotFound = fmt.Errorf("not in bundle: %w", fs.ErrNotExist)

// Bundle is a read-only set of files addressed by slash-separated relative
// paths. The set is fixed when the Bundle is created.
type Bundle struct {
	fsys fs.FS
}

// New returns a Bundle serving the regular files of fsys.
func New(fsys fs.FS) *Bundle {
	return &Bundle{fsys: fsys}
}

// Embedded returns the bundle compiled into this binary. Which files it holds
// depends on the build profile (see embed_dev.go and embed_release.go).
func Embedded() *Bundle {
	sub, err := fs.Sub(embedded, embeddedRoot)
	if err != nil {
		// embeddedRoot is a constant valid path
		panic(err)
	}
	return New(sub)
}

// Walk calls fn for every file in the bundle in lexical path order. It stops
// at the first error returned by fn.
func (b *Bundle) Walk(fn func(name string, data []byte) error) error {
	return fs.WalkDir(b.fsys, ".", func(name string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		data, err := fs.ReadFile(b.fsys, name)
		if err != nil {
			return fmt.Errorf("cannot read %s: %w", name, err)
		}
		return fn(name, data)
	})
}

// Get returns the content stored under name.
func (b *Bundle) Get(name string) ([]byte, error) {
	if !fs.ValidPath(name) {
		return nil, fmt.Errorf("%s: %w", name, ErrNotFound)
	}
	info, err := fs.Stat(b.fsys, name)
	if errors.Is(err, fs.ErrNotExist) || (err == nil && !info.Mode().IsRegular()) {
		return nil, fmt.Errorf("%s: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return fs.ReadFile(b.fsys, name)
}

// Names lists the bundle's files in walk order.
func (b *Bundle) Names() ([]string, error) {
	var names []string
	err := fs.WalkDir(b.fsys, ".", func(name string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() {
			names = append(names, name)
		}
		return nil
	})
	return names, err
}

// Len returns the number of files in the bundle, or 0 if it cannot be listed.
func (b *Bundle) Len() int {
	names, err := b.Names()
	if err != nil {
		return 0
	}
	return len(names)
}

// Digest returns a hex-encoded BLAKE3 hash over every (name, content) pair
// in walk order. Two bundles with the same files have the same digest.
func (b *Bundle) Digest() (string, error) {
	h := blake3.New()
	err := b.Walk(func(name string, data []byte) error {
		h.Write([]byte(name))
		h.Write([]byte{0})
		h.Write(data)
		return nil
	})
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
