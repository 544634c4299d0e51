package vfs

import (
	"strings"
	"sync"

	"github.com/jai-git4208/portfolio-os/backend/internal/shared/paths"
)

// Resolved is the result of a successful path resolution
type Resolved struct {
	Node *Node
	Path string
}

// FileSystem is an in-memory directory tree
type FileSystem struct {
	mu   sync.RWMutex
	root *Node
	home string
}

// New creates a filesystem holding only the root directory.
// home is the expansion of the ~ alias; it is not created here.
func New(home string) *FileSystem {
	return &FileSystem{
		root: newDirectory(paths.Root),
		home: home,
	}
}

// Home returns the directory the ~ alias expands to
func (fs *FileSystem) Home() string {
	return fs.home
}

// Resolve translates a path and a working directory into a node and its
// canonical absolute path.
func (fs *FileSystem) Resolve(path, cwd string) (Resolved, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	return fs.resolve(path, cwd)
}

// List returns the names under a directory, sorted, with directories
// suffixed by "/". Listing a file yields the path exactly as given.
func (fs *FileSystem) List(path, cwd string) ([]string, error) {
	if path == "" {
		path = "."
	}

	fs.mu.RLock()
	defer fs.mu.RUnlock()

	res, err := fs.resolve(path, cwd)
	if err != nil {
		return nil, err
	}
	if !res.Node.IsDir() {
		return []string{path}, nil
	}

	names := res.Node.sortedNames()
	out := make([]string, 0, len(names))
	for _, name := range names {
		child := res.Node.children[name]
		out = append(out, entryOf(child, "").DisplayName())
	}
	return out, nil
}

// Entries returns typed entries for the immediate children of a directory.
// A file yields a single entry describing itself.
func (fs *FileSystem) Entries(path, cwd string) ([]Entry, error) {
	if path == "" {
		path = "."
	}

	fs.mu.RLock()
	defer fs.mu.RUnlock()

	res, err := fs.resolve(path, cwd)
	if err != nil {
		return nil, err
	}
	if !res.Node.IsDir() {
		return []Entry{entryOf(res.Node, res.Path)}, nil
	}

	names := res.Node.sortedNames()
	out := make([]Entry, 0, len(names))
	for _, name := range names {
		out = append(out, entryOf(res.Node.children[name], paths.Join(res.Path, name)))
	}
	return out, nil
}

// MakeDirectory creates an empty directory. The name must not already exist
// under the parent, whatever its kind.
func (fs *FileSystem) MakeDirectory(path, cwd string) (string, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	parent, parentPath, name, err := fs.parentOf(path, cwd)
	if err != nil {
		return "", err
	}
	if _, exists := parent.children[name]; exists {
		return "", ErrAlreadyExists
	}

	parent.children[name] = newDirectory(name)
	return paths.Join(parentPath, name), nil
}

// MakeDirectoryAll creates a directory along with any missing parents.
// Existing directories on the way are not an error.
func (fs *FileSystem) MakeDirectoryAll(path, cwd string) (string, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	segments := lexical(fs.segments(path, cwd))
	node := fs.root
	for _, seg := range segments {
		child, ok := node.children[seg]
		if !ok {
			child = newDirectory(seg)
			node.children[seg] = child
		}
		if !child.IsDir() {
			return "", ErrNotDirectory
		}
		node = child
	}
	return paths.Root + strings.Join(segments, paths.Separator), nil
}

// TouchFile creates an empty file if the name is free. Touching an existing
// file leaves its content alone; touching a directory fails.
func (fs *FileSystem) TouchFile(path, cwd string) (string, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	parent, parentPath, name, err := fs.parentOf(path, cwd)
	if err != nil {
		return "", err
	}
	if existing, ok := parent.children[name]; ok {
		if existing.IsDir() {
			return "", ErrIsDirectory
		}
		return paths.Join(parentPath, name), nil
	}

	parent.children[name] = newFile(name, nil)
	return paths.Join(parentPath, name), nil
}

// Remove deletes a node from its parent. Directories, empty or not,
// require recursive.
func (fs *FileSystem) Remove(path, cwd string, recursive bool) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	parent, _, name, err := fs.parentOf(path, cwd)
	if err != nil {
		return err
	}
	target, ok := parent.children[name]
	if !ok {
		return ErrNotFound
	}
	if namesDir(path) && !target.IsDir() {
		return ErrNotDirectory
	}
	if target.IsDir() && !recursive {
		return ErrIsDirectory
	}

	delete(parent.children, name)
	return nil
}

// ReadFile returns a copy of a file's lines
func (fs *FileSystem) ReadFile(path, cwd string) ([]string, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	res, err := fs.resolve(path, cwd)
	if err != nil {
		return nil, err
	}
	if res.Node.IsDir() {
		return nil, ErrIsDirectory
	}
	return cloneLines(res.Node.lines), nil
}

// WriteFile creates or replaces a file's content
func (fs *FileSystem) WriteFile(path, cwd string, lines []string) (string, error) {
	return fs.write(path, cwd, lines, false)
}

// AppendFile appends lines to a file, creating it if needed
func (fs *FileSystem) AppendFile(path, cwd string, lines []string) (string, error) {
	return fs.write(path, cwd, lines, true)
}

func (fs *FileSystem) write(path, cwd string, lines []string, appendMode bool) (string, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	parent, parentPath, name, err := fs.parentOf(path, cwd)
	if err != nil {
		return "", err
	}

	existing, ok := parent.children[name]
	switch {
	case ok && existing.IsDir():
		return "", ErrIsDirectory
	case ok && appendMode:
		existing.lines = append(existing.lines, lines...)
	default:
		parent.children[name] = newFile(name, lines)
	}
	return paths.Join(parentPath, name), nil
}

// resolve expects the caller to hold the lock
func (fs *FileSystem) resolve(path, cwd string) (Resolved, error) {
	node := fs.root
	traversal := make([]string, 0, 8)

	for _, seg := range fs.segments(path, cwd) {
		if seg == ".." {
			if len(traversal) > 0 {
				traversal = traversal[:len(traversal)-1]
			}
			node = fs.rewalk(traversal)
			continue
		}

		if !node.IsDir() {
			return Resolved{}, ErrNotFound
		}
		child, ok := node.children[seg]
		if !ok {
			return Resolved{}, ErrNotFound
		}
		node = child
		traversal = append(traversal, seg)
	}

	if namesDir(path) && !node.IsDir() {
		return Resolved{}, ErrNotDirectory
	}
	return Resolved{
		Node: node,
		Path: paths.Root + strings.Join(traversal, paths.Separator),
	}, nil
}

// namesDir reports a trailing separator, which only a directory may satisfy
func namesDir(path string) bool {
	return len(path) > 1 && strings.HasSuffix(path, paths.Separator)
}

// rewalk follows an already validated segment list from the root
func (fs *FileSystem) rewalk(traversal []string) *Node {
	node := fs.root
	for _, seg := range traversal {
		node = node.children[seg]
	}
	return node
}

// segments normalizes a path against cwd and drops empty and "." segments
func (fs *FileSystem) segments(path, cwd string) []string {
	path = paths.ExpandHome(path, fs.home)
	if !paths.IsAbs(path) {
		if cwd == "" {
			cwd = paths.Root
		}
		path = paths.Join(cwd, path)
	}

	raw := strings.Split(path, paths.Separator)
	out := make([]string, 0, len(raw))
	for _, seg := range raw {
		if seg == "" || seg == "." {
			continue
		}
		out = append(out, seg)
	}
	return out
}

// parentOf locates the directory that holds (or will hold) the last segment
func (fs *FileSystem) parentOf(path, cwd string) (*Node, string, string, error) {
	parentPath, name := paths.Split(paths.ExpandHome(path, fs.home))
	if name == "" || name == "." || name == ".." {
		return nil, "", "", ErrInvalidName
	}
	if parentPath == "" {
		parentPath = "."
	}

	res, err := fs.resolve(parentPath, cwd)
	if err != nil {
		return nil, "", "", err
	}
	if !res.Node.IsDir() {
		return nil, "", "", ErrNotDirectory
	}
	return res.Node, res.Path, name, nil
}

// lexical applies ".." to a segment list without consulting the tree
func lexical(segments []string) []string {
	out := make([]string, 0, len(segments))
	for _, seg := range segments {
		if seg == ".." {
			if len(out) > 0 {
				out = out[:len(out)-1]
			}
			continue
		}
		out = append(out, seg)
	}
	return out
}
