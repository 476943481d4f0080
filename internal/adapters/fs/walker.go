// Package fs walks and fingerprints installed package directories.
package fs

import (
	"io/fs"
	"iter"
	"path/filepath"
	"slices"
)

// vcsDirs are never part of a package's build inputs.
var vcsDirs = []string{".git", ".hg", ".jj", ".svn"}

// Walker lists the regular files of a package directory.
type Walker struct{}

// NewWalker creates a new Walker.
func NewWalker() *Walker {
	return &Walker{}
}

// WalkFiles yields the regular files below root in lexical order. Symlinks
// are skipped: in an isolated layout they point into other packages. Entries
// whose base name matches one of ignores are skipped, directories with their
// whole subtree. Unreadable entries end the walk early.
func (w *Walker) WalkFiles(root string, ignores []string) iter.Seq[string] {
	return func(yield func(string) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if path == root {
				return nil
			}

			if skip(d, ignores) {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if !d.Type().IsRegular() {
				return nil
			}

			if !yield(path) {
				return filepath.SkipAll
			}
			return nil
		})
	}
}

func skip(d fs.DirEntry, ignores []string) bool {
	if d.Type()&fs.ModeSymlink != 0 {
		return true
	}
	if d.IsDir() && slices.Contains(vcsDirs, d.Name()) {
		return true
	}
	return slices.ContainsFunc(ignores, func(pattern string) bool {
		matched, _ := filepath.Match(pattern, d.Name())
		return matched
	})
}
