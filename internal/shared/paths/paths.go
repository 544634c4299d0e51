package paths

import "strings"

// Mount points
const (
	Root      = "/"
	HomeRoot  = "/home"
	Tmp       = "/tmp"
	HomeAlias = "~"
	Separator = "/"
)

// Home returns the home directory of a user
func Home(user string) string {
	return HomeRoot + Separator + user
}

// ExpandHome replaces a leading home alias with the home directory.
// Only the leading token is replaced; "~user" forms are not supported.
func ExpandHome(path, home string) string {
	if strings.HasPrefix(path, HomeAlias) {
		return home + strings.TrimPrefix(path, HomeAlias)
	}
	return path
}

// Abbreviate renders an absolute path with the home directory shown as ~
func Abbreviate(path, home string) string {
	if path == home {
		return HomeAlias
	}
	if strings.HasPrefix(path, home+Separator) {
		return HomeAlias + strings.TrimPrefix(path, home)
	}
	return path
}

// Join joins a directory and a relative path without doubling the separator at root
func Join(dir, rel string) string {
	if dir == Root {
		return Root + rel
	}
	return dir + Separator + rel
}

// Split separates the last segment of a path from its parent.
// The returned parent is empty when the path has no separator.
func Split(path string) (parent, name string) {
	trimmed := strings.TrimRight(path, Separator)
	if trimmed == "" {
		return Root, ""
	}
	idx := strings.LastIndex(trimmed, Separator)
	if idx < 0 {
		return "", trimmed
	}
	if idx == 0 {
		return Root, trimmed[1:]
	}
	return trimmed[:idx], trimmed[idx+1:]
}

// IsAbs reports whether the path is rooted
func IsAbs(path string) bool {
	return strings.HasPrefix(path, Separator)
}
