package vfs

import (
	"sort"
	"strings"
)

// Kind distinguishes directories from files
type Kind int

const (
	KindDirectory Kind = iota
	KindFile
)

// String returns the string representation of the kind
func (k Kind) String() string {
	switch k {
	case KindDirectory:
		return "directory"
	case KindFile:
		return "file"
	default:
		return "unknown"
	}
}

// Node is a tree element. Name and kind never change after creation;
// children and content are only reachable through FileSystem methods.
type Node struct {
	name     string
	kind     Kind
	children map[string]*Node
	lines    []string
}

func newDirectory(name string) *Node {
	return &Node{
		name:     name,
		kind:     KindDirectory,
		children: make(map[string]*Node),
	}
}

func newFile(name string, lines []string) *Node {
	return &Node{
		name:  name,
		kind:  KindFile,
		lines: cloneLines(lines),
	}
}

// Name returns the node's name within its parent
func (n *Node) Name() string { return n.name }

// Kind returns whether the node is a directory or a file
func (n *Node) Kind() Kind { return n.kind }

// IsDir reports whether the node is a directory
func (n *Node) IsDir() bool { return n.kind == KindDirectory }

func (n *Node) size() int {
	if n.IsDir() {
		return len(n.children)
	}
	return len(JoinContent(n.lines))
}

func (n *Node) sortedNames() []string {
	names := make([]string, 0, len(n.children))
	for name := range n.children {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Entry is a snapshot of one node for listings
type Entry struct {
	Name string `json:"name"`
	Path string `json:"path"`
	Kind Kind   `json:"-"`
	Type string `json:"type"`
	Size int    `json:"size"`
}

func entryOf(n *Node, path string) Entry {
	return Entry{
		Name: n.name,
		Path: path,
		Kind: n.kind,
		Type: n.kind.String(),
		Size: n.size(),
	}
}

// DisplayName returns the name with a trailing slash for directories
func (e Entry) DisplayName() string {
	if e.Kind == KindDirectory {
		return e.Name + "/"
	}
	return e.Name
}

// SplitContent converts a string into canonical lines.
// A single trailing newline does not produce an extra empty line.
func SplitContent(content string) []string {
	if content == "" {
		return nil
	}
	content = strings.TrimSuffix(content, "\n")
	return strings.Split(content, "\n")
}

// JoinContent converts canonical lines back into a string
func JoinContent(lines []string) string {
	return strings.Join(lines, "\n")
}

func cloneLines(lines []string) []string {
	if len(lines) == 0 {
		return nil
	}
	out := make([]string, len(lines))
	copy(out, lines)
	return out
}
