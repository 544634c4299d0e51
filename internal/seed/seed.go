package seed

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"

	"github.com/jai-git4208/portfolio-os/backend/internal/shared/paths"
	"github.com/jai-git4208/portfolio-os/backend/internal/shared/types"
	"github.com/jai-git4208/portfolio-os/backend/internal/vfs"
)

//go:embed default.yaml
var defaultDocument []byte

// ErrUnsupportedFormat is returned by Load for unknown file extensions
var ErrUnsupportedFormat = errors.New("unsupported seed format")

// Document describes the initial state of a terminal: who owns it and
// which directories and files exist when a session starts.
type Document struct {
	User        string        `json:"user" yaml:"user" toml:"user"`
	Hostname    string        `json:"hostname" yaml:"hostname" toml:"hostname"`
	Version     string        `json:"version" yaml:"version" toml:"version"`
	Profile     types.Profile `json:"profile" yaml:"profile" toml:"profile"`
	Directories []string      `json:"directories" yaml:"directories" toml:"directories"`
	Files       []File        `json:"files" yaml:"files" toml:"files"`
}

// File is a seeded file. Lines wins over Content when both are set.
type File struct {
	Path    string   `json:"path" yaml:"path" toml:"path"`
	Content string   `json:"content,omitempty" yaml:"content,omitempty" toml:"content,omitempty"`
	Lines   []string `json:"lines,omitempty" yaml:"lines,omitempty" toml:"lines,omitempty"`
}

// Default returns the embedded portfolio layout
func Default() (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(defaultDocument, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse embedded seed: %w", err)
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Load reads a seed file and layers it over the embedded default.
// Fields absent from the file keep their default values; lists present
// in the file replace the default lists.
func Load(path string) (*Document, error) {
	doc, err := Default()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	if err := decode(path, data, doc); err != nil {
		return nil, fmt.Errorf("failed to parse seed file %s: %w", path, err)
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return doc, nil
}

// LoadOrDefault loads path when set and falls back to the embedded default otherwise
func LoadOrDefault(path string) (*Document, error) {
	if path == "" {
		return Default()
	}
	return Load(path)
}

// Encode renders the document as "yaml", "toml" or "json"
func (d *Document) Encode(format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case "yaml", "yml":
		return yaml.Marshal(d)
	case "toml":
		return toml.Marshal(d)
	case "json":
		return sonic.MarshalIndent(d, "", "  ")
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

func decode(path string, data []byte, doc *Document) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, doc)
	case ".toml":
		return toml.Unmarshal(data, doc)
	case ".json":
		return sonic.Unmarshal(data, doc)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Validate checks the document can build a tree
func (d *Document) Validate() error {
	if d.User == "" {
		return fmt.Errorf("seed: user is required")
	}
	if strings.Contains(d.User, paths.Separator) {
		return fmt.Errorf("seed: invalid user %q", d.User)
	}
	for _, f := range d.Files {
		if f.Path == "" {
			return fmt.Errorf("seed: file without path")
		}
	}
	return nil
}

// Home returns the owner's home directory
func (d *Document) Home() string {
	return paths.Home(d.User)
}

// Build creates a fresh filesystem from the document. Every call returns
// an independent tree.
func (d *Document) Build() (*vfs.FileSystem, error) {
	fs := vfs.New(d.Home())

	if _, err := fs.MakeDirectoryAll(d.Home(), paths.Root); err != nil {
		return nil, fmt.Errorf("seed: create home: %w", err)
	}
	for _, dir := range d.Directories {
		if _, err := fs.MakeDirectoryAll(dir, paths.Root); err != nil {
			return nil, fmt.Errorf("seed: create %s: %w", dir, err)
		}
	}

	for _, f := range d.Files {
		parent, _ := paths.Split(paths.ExpandHome(f.Path, d.Home()))
		if parent != "" {
			if _, err := fs.MakeDirectoryAll(parent, paths.Root); err != nil {
				return nil, fmt.Errorf("seed: create %s: %w", parent, err)
			}
		}
		if _, err := fs.WriteFile(f.Path, paths.Root, f.lines()); err != nil {
			return nil, fmt.Errorf("seed: write %s: %w", f.Path, err)
		}
	}

	return fs, nil
}

func (f File) lines() []string {
	if len(f.Lines) > 0 {
		return f.Lines
	}
	return vfs.SplitContent(f.Content)
}
