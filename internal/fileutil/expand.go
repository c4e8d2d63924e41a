package fileutil

import (
	"fmt"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
)

// Leaf is a non-directory entry found while expanding a source.
type Leaf struct {
	// Path is the entry's path joined onto the root it was found under.
	// It is used both to open the file and as its display name.
	Path string
}

// Expand returns a depth-first sequence of the leaves under root.
// If root is not a directory it is yielded as the only leaf.
// Non-fatal errors are yielded with a zero Leaf and the walk continues.
func Expand(root string) iter.Seq2[Leaf, error] {
	return func(yield func(Leaf, error) bool) {
		info, err := os.Stat(root)
		if err != nil {
			yield(Leaf{}, fmt.Errorf("failed to access %s: %w", root, err))
			return
		}
		if !info.IsDir() {
			yield(Leaf{Path: root}, nil)
			return
		}
		expandDir(root, yield)
	}
}

// expandDir yields the leaves under dir and reports whether the caller
// wants more.
func expandDir(dir string, yield func(Leaf, error) bool) bool {
	// ReadDir may return the entries it read before failing
	entries, err := os.ReadDir(dir)
	if err != nil {
		if !yield(Leaf{}, fmt.Errorf("failed to read directory %s: %w", dir, err)) {
			return false
		}
	}

	for _, entry := range entries {
		name := entry.Name()
		if name == "." || name == ".." {
			continue
		}

		path := filepath.Join(dir, name)
		if isDir(path, entry) {
			if !expandDir(path, yield) {
				return false
			}
			continue
		}
		if !yield(Leaf{Path: path}, nil) {
			return false
		}
	}
	return true
}

// isDir reports whether entry is a directory, following symbolic links.
// A dangling link counts as a file so that opening it reports the error.
func isDir(path string, entry fs.DirEntry) bool {
	if entry.Type()&fs.ModeSymlink == 0 {
		return entry.IsDir()
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
