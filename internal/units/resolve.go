// Package units resolves {$INCLUDE}/{$I} filenames to file content,
// implementing the search order in spec §4.6: absolute path, the
// including file's directory, registered search paths in order, then the
// process's current directory.
package units

import (
	"fmt"
	"os"
	"path/filepath"
)

// Resolve finds the file named by an {$INCLUDE 'name'} directive and
// returns the path at which it was found: the name itself when it is
// absolute or found in the current directory, otherwise the name joined to
// the directory it was found in (relative if that directory was given as
// relative; Canonicalize yields the absolute form). currentDir is the
// directory of the file doing the including ("" if unknown, e.g. when parsing from an in-memory
// buffer with no filename). searchPaths are tried in registration order.
func Resolve(filename, currentDir string, searchPaths []string) (string, error) {
	if filepath.IsAbs(filename) {
		if exists(filename) {
			return filename, nil
		}
	} else {
		if currentDir != "" {
			candidate := filepath.Join(currentDir, filename)
			if exists(candidate) {
				return candidate, nil
			}
		}
		for _, sp := range searchPaths {
			candidate := filepath.Join(sp, filename)
			if exists(candidate) {
				return candidate, nil
			}
		}
		if exists(filename) {
			return filename, nil
		}
	}
	return "", fmt.Errorf("Include file not found: '%s'", filename)
}

func exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// Canonicalize resolves symlinks and relative components so that two paths
// referring to the same file compare equal — the basis for circular-
// include detection.
func Canonicalize(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("Cannot read include file '%s': %w", path, err)
	}
	real, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", fmt.Errorf("Cannot read include file '%s': %w", path, err)
	}
	return real, nil
}

// ReadFile reads path into memory. The only I/O the frontend performs
// besides Canonicalize; any OS error is wrapped with the filename.
func ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("Cannot read include file '%s': %w", path, err)
	}
	return string(data), nil
}
