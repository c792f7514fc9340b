// Package libpath edits the process-wide variable the native loader uses to
// find shared libraries (see Var).
package libpath

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Serializes the read-modify-write of Var within this process.
var mu sync.Mutex

// Error reports a failure to rewrite Var.
type Error struct {
	Dir string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("cannot update %s with %s: %v", Var, e.Dir, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Dirs returns the directories currently listed in Var.
func Dirs() []string {
	return filepath.SplitList(os.Getenv(Var))
}

// Contains reports whether dir is listed in Var.
func Contains(dir string) bool {
	return indexOf(Dirs(), dir) >= 0
}

// Append adds dir to the end of Var unless it is already listed, and reports
// whether the variable changed.
func Append(dir string) (bool, error) {
	mu.Lock()
	defer mu.Unlock()

	dirs := Dirs()
	if indexOf(dirs, dir) >= 0 {
		return false, nil
	}
	if err := set(append(dirs, dir)); err != nil {
		return false, &Error{Dir: dir, Err: err}
	}
	return true, nil
}

// Remove drops every occurrence of dir from Var and reports whether the
// variable changed.
func Remove(dir string) (bool, error) {
	mu.Lock()
	defer mu.Unlock()

	dirs := Dirs()
	var kept []string
	for _, d := range dirs {
		if !sameDir(d, dir) {
			kept = append(kept, d)
		}
	}
	if len(kept) == len(dirs) {
		return false, nil
	}
	if err := set(kept); err != nil {
		return false, &Error{Dir: dir, Err: err}
	}
	return true, nil
}

func set(dirs []string) error {
	for _, d := range dirs {
		if strings.ContainsRune(d, os.PathListSeparator) {
			return fmt.Errorf("%q contains the list separator %q", d, os.PathListSeparator)
		}
	}
	return os.Setenv(Var, strings.Join(dirs, string(os.PathListSeparator)))
}

func indexOf(dirs []string, dir string) int {
	for i, d := range dirs {
		if sameDir(d, dir) {
			return i
		}
	}
	return -1
}

func sameDir(a, b string) bool {
	return filepath.Clean(a) == filepath.Clean(b)
}
