package shell

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/jai-git4208/portfolio-os/backend/internal/shared/paths"
	"github.com/jai-git4208/portfolio-os/backend/internal/vfs"
)

func cmdLs(s *Session, args []string) ([]string, error) {
	targets := args
	if len(targets) == 0 {
		targets = []string{"."}
	}

	var out []string
	var errs []error
	for i, target := range targets {
		names, err := s.fs.List(target, s.cwd)
		if err != nil {
			errs = append(errs, fail("ls", target, err))
			continue
		}
		if len(targets) > 1 {
			if i > 0 {
				out = append(out, "")
			}
			out = append(out, target+":")
		}
		for _, name := range names {
			out = append(out, "  "+name)
		}
	}
	return out, errors.Join(errs...)
}

func cmdCd(s *Session, args []string) ([]string, error) {
	if len(args) == 0 {
		return nil, usage("cd [directory]")
	}
	target := args[0]

	res, err := s.fs.Resolve(target, s.cwd)
	if err != nil {
		return nil, fail("cd", target, err)
	}
	if s.cwd == paths.Root && res.Path == paths.Root && climbs(target) {
		return []string{"Already at root directory"}, nil
	}
	if !res.Node.IsDir() {
		return nil, fail("cd", target, vfs.ErrNotDirectory)
	}
	s.cwd = res.Path
	return nil, nil
}

// climbs reports whether a path has a ".." segment
func climbs(path string) bool {
	return slices.Contains(strings.Split(path, "/"), "..")
}

func cmdPwd(s *Session, args []string) ([]string, error) {
	return []string{s.cwd}, nil
}

func cmdCat(s *Session, args []string) ([]string, error) {
	if len(args) == 0 {
		return nil, usage("cat [file]")
	}

	var out []string
	var errs []error
	for _, target := range args {
		lines, err := s.fs.ReadFile(target, s.cwd)
		if err != nil {
			errs = append(errs, fail("cat", target, err))
			continue
		}
		out = append(out, lines...)
	}
	return out, errors.Join(errs...)
}

func cmdMkdir(s *Session, args []string) ([]string, error) {
	flags, targets := splitFlags(args)
	parents := false
	for _, f := range flags {
		if f != "-p" {
			return nil, usage("mkdir [-p] <directory>")
		}
		parents = true
	}
	if len(targets) == 0 {
		return nil, usage("mkdir [-p] <directory>")
	}

	var errs []error
	for _, target := range targets {
		var err error
		if parents {
			_, err = s.fs.MakeDirectoryAll(target, s.cwd)
		} else {
			_, err = s.fs.MakeDirectory(target, s.cwd)
		}
		if err != nil {
			errs = append(errs, fail("mkdir", target, err))
		}
	}
	return nil, errors.Join(errs...)
}

func cmdTouch(s *Session, args []string) ([]string, error) {
	if len(args) == 0 {
		return nil, usage("touch <file>")
	}

	var errs []error
	for _, target := range args {
		if _, err := s.fs.TouchFile(target, s.cwd); err != nil {
			errs = append(errs, fail("touch", target, err))
		}
	}
	return nil, errors.Join(errs...)
}

func cmdRm(s *Session, args []string) ([]string, error) {
	flags, targets := splitFlags(args)
	recursive, force := false, false
	for _, f := range flags {
		for _, c := range strings.TrimPrefix(f, "-") {
			switch c {
			case 'r', 'R':
				recursive = true
			case 'f':
				force = true
			default:
				return nil, usage("rm [-r] [-f] <path>")
			}
		}
	}
	if len(targets) == 0 {
		return nil, usage("rm [-r] [-f] <path>")
	}

	var errs []error
	for _, target := range targets {
		err := s.fs.Remove(target, s.cwd, recursive)
		if err == nil || (force && errors.Is(err, vfs.ErrNotFound)) {
			continue
		}
		errs = append(errs, fail("rm", target, err))
	}
	return nil, errors.Join(errs...)
}

func cmdTree(s *Session, args []string) ([]string, error) {
	target := "."
	if len(args) > 0 {
		target = args[0]
	}

	type item struct {
		entry vfs.Entry
		depth int
	}
	var items []item
	err := s.fs.Walk(target, s.cwd, func(entry vfs.Entry, depth int) error {
		items = append(items, item{entry: entry, depth: depth})
		return nil
	})
	if err != nil {
		return nil, fail("tree", target, err)
	}

	// last[i] tells whether items[i] is the final child of its parent
	last := make([]bool, len(items))
	seen := map[int]bool{}
	for i := len(items) - 1; i >= 0; i-- {
		d := items[i].depth
		last[i] = !seen[d]
		seen[d] = true
		for k := range seen {
			if k > d {
				delete(seen, k)
			}
		}
	}

	out := []string{target}
	dirs, files := 0, 0
	open := map[int]bool{}
	for i := 1; i < len(items); i++ {
		it := items[i]
		var b strings.Builder
		for k := 1; k < it.depth; k++ {
			if open[k] {
				b.WriteString("│   ")
			} else {
				b.WriteString("    ")
			}
		}
		if last[i] {
			b.WriteString("└── ")
		} else {
			b.WriteString("├── ")
		}
		open[it.depth] = !last[i]
		b.WriteString(it.entry.DisplayName())
		out = append(out, b.String())

		if it.entry.Kind == vfs.KindDirectory {
			dirs++
		} else {
			files++
		}
	}

	return append(out, "", fmt.Sprintf("%d directories, %d files", dirs, files)), nil
}

func cmdFind(s *Session, args []string) ([]string, error) {
	target, pattern := ".", ""
	for i := 0; i < len(args); i++ {
		switch {
		case args[i] == "-name":
			if i+1 >= len(args) {
				return nil, usage("find [path] [-name pattern]")
			}
			pattern = args[i+1]
			i++
		case strings.HasPrefix(args[i], "-"):
			return nil, usage("find [path] [-name pattern]")
		default:
			target = args[i]
		}
	}

	matches, err := s.fs.Find(target, s.cwd, pattern)
	if err != nil {
		if errors.Is(err, vfs.ErrNotFound) {
			return nil, fail("find", target, err)
		}
		return nil, fail("find", pattern, err)
	}
	return matches, nil
}

func cmdFile(s *Session, args []string) ([]string, error) {
	if len(args) == 0 {
		return nil, usage("file <path>")
	}

	var out []string
	var errs []error
	for _, target := range args {
		kind, err := s.fs.DetectType(target, s.cwd)
		if err != nil {
			errs = append(errs, fail("file", target, err))
			continue
		}
		out = append(out, fmt.Sprintf("%s: %s", target, kind))
	}
	return out, errors.Join(errs...)
}

// splitFlags separates leading-dash flags from operands
func splitFlags(args []string) (flags, operands []string) {
	for _, a := range args {
		if len(a) > 1 && strings.HasPrefix(a, "-") {
			flags = append(flags, a)
			continue
		}
		operands = append(operands, a)
	}
	return flags, operands
}
