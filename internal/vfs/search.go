package vfs

import (
	"fmt"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/gabriel-vasile/mimetype"

	"github.com/jai-git4208/portfolio-os/backend/internal/shared/paths"
)

// MimeDirectory is reported by DetectType for directories
const MimeDirectory = "inode/directory"

// MimeEmpty is reported by DetectType for empty files
const MimeEmpty = "inode/x-empty"

// WalkFunc is called for every node visited by Walk, depth 0 being the start
type WalkFunc func(entry Entry, depth int) error

// Walk visits a subtree depth-first in name order. The subtree is
// snapshotted first, so fn may call back into the filesystem.
func (fs *FileSystem) Walk(path, cwd string, fn WalkFunc) error {
	type visit struct {
		entry Entry
		depth int
	}

	var visits []visit
	fs.mu.RLock()
	res, err := fs.resolve(path, cwd)
	if err != nil {
		fs.mu.RUnlock()
		return err
	}

	var collect func(n *Node, p string, depth int)
	collect = func(n *Node, p string, depth int) {
		visits = append(visits, visit{entry: entryOf(n, p), depth: depth})
		if !n.IsDir() {
			return
		}
		for _, name := range n.sortedNames() {
			collect(n.children[name], paths.Join(p, name), depth+1)
		}
	}
	collect(res.Node, res.Path, 0)
	fs.mu.RUnlock()

	for _, v := range visits {
		if err := fn(v.entry, v.depth); err != nil {
			return err
		}
	}
	return nil
}

// Find returns the absolute paths under path whose base name matches a
// doublestar pattern. An empty pattern matches everything.
func (fs *FileSystem) Find(path, cwd, pattern string) ([]string, error) {
	if pattern != "" && !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("%w: %s", doublestar.ErrBadPattern, pattern)
	}

	var matches []string
	err := fs.Walk(path, cwd, func(entry Entry, depth int) error {
		if pattern == "" {
			matches = append(matches, entry.Path)
			return nil
		}
		ok, err := doublestar.Match(pattern, entry.Name)
		if err != nil {
			return err
		}
		if ok {
			matches = append(matches, entry.Path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return matches, nil
}

// DetectType sniffs the MIME type of a file's content
func (fs *FileSystem) DetectType(path, cwd string) (string, error) {
	res, err := fs.Resolve(path, cwd)
	if err != nil {
		return "", err
	}
	if res.Node.IsDir() {
		return MimeDirectory, nil
	}

	lines, err := fs.ReadFile(res.Path, cwd)
	if err != nil {
		return "", err
	}
	if len(lines) == 0 {
		return MimeEmpty, nil
	}
	return mimetype.Detect([]byte(JoinContent(lines))).String(), nil
}
