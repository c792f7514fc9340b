package oracle

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/sqlunlocker/sqlunlocker/internal/libpath"
)

// ErrClientNotFound is returned by ProbeNative when no client library can be
// located.
var ErrClientNotFound = errors.New("oracle client library " + clientLibrary + " not found")

// ProbeNative looks for the Instant Client library in the loader search
// path, $ORACLE_HOME and the platform's usual install locations.
func ProbeNative() (ClientVersion, error) {
	return findClientLibrary(probeDirs())
}

func probeDirs() []string {
	dirs := libpath.Dirs()
	if home := os.Getenv("ORACLE_HOME"); home != "" {
		dirs = append(dirs, filepath.Join(home, "lib"), home)
	}
	return append(dirs, defaultClientDirs()...)
}

// findClientLibrary returns the first directory in dirs holding the client
// library. Within a directory the highest versioned file wins. Candidates are
// resolved through symlinks and must be non-empty regular files.
func findClientLibrary(dirs []string) (ClientVersion, error) {
	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}

		found := false
		var best ClientVersion
		for _, entry := range entries {
			major, minor, ok := parseLibraryName(entry.Name())
			if !ok {
				continue
			}
			path := filepath.Join(dir, entry.Name())
			if !usableFile(path) {
				continue
			}
			if !found || major > best.Major || (major == best.Major && minor > best.Minor) {
				best = ClientVersion{Major: major, Minor: minor, Library: path}
				found = true
			}
		}
		if found {
			return best, nil
		}
	}
	return ClientVersion{}, ErrClientNotFound
}

func usableFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular() && info.Size() > 0
}

// parseLibraryName matches clientLibrary with an optional numeric suffix
// such as ".21.1".
func parseLibraryName(name string) (major, minor int, ok bool) {
	if strings.EqualFold(name, clientLibrary) {
		return 0, 0, true
	}
	suffix, found := strings.CutPrefix(name, clientLibrary+".")
	if !found {
		return 0, 0, false
	}
	parts := strings.Split(suffix, ".")
	nums := make([]int, 0, 2)
	for _, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return 0, 0, false
		}
		nums = append(nums, n)
	}
	major = nums[0]
	if len(nums) > 1 {
		minor = nums[1]
	}
	return major, minor, true
}

func globDirs(patterns ...string) []string {
	var dirs []string
	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			continue
		}
		dirs = append(dirs, matches...)
	}
	return dirs
}
