package seed

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jai-git4208/portfolio-os/backend/internal/vfs"
)

func writeSeed(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	doc, err := Default()
	require.NoError(t, err)

	assert.Equal(t, "jaimin", doc.User)
	assert.Equal(t, "/home/jaimin", doc.Home())
	assert.Equal(t, "2.0", doc.Version)
	assert.Equal(t, "Jaimin Pansal", doc.Profile.Name)
	assert.Equal(t, "https://github.com/jai-git4208", doc.Profile.GitHubURL())
	assert.Len(t, doc.Profile.Education, 2)
	assert.Contains(t, doc.Profile.Skills.Frontend, "React.js")
}

func TestBuildDefaultLayout(t *testing.T) {
	doc, err := Default()
	require.NoError(t, err)

	fs, err := doc.Build()
	require.NoError(t, err)

	names, err := fs.List("~", "/")
	require.NoError(t, err)
	assert.Equal(t, []string{"about.txt", "contact.txt", "projects/", "skills/"}, names)

	names, err = fs.List("~/projects", "/")
	require.NoError(t, err)
	assert.Equal(t, []string{"ai-chatbot/", "mesh-network/", "portfolio-os/"}, names)

	names, err = fs.List("~/skills", "/")
	require.NoError(t, err)
	assert.Equal(t, []string{"backend.txt", "frontend.txt", "other.txt"}, names)

	names, err = fs.List("/", "/")
	require.NoError(t, err)
	assert.Equal(t, []string{"etc/", "home/", "tmp/", "usr/", "var/"}, names)

	lines, err := fs.ReadFile("~/skills/frontend.txt", "/")
	require.NoError(t, err)
	assert.Equal(t, "Frontend Skills:", lines[0])
	assert.Equal(t, "  - React.js", lines[1])
}

func TestBuildContentHasNoTrailingBlank(t *testing.T) {
	doc, err := Default()
	require.NoError(t, err)
	fs, err := doc.Build()
	require.NoError(t, err)

	lines, err := fs.ReadFile("/home/jaimin/about.txt", "/")
	require.NoError(t, err)
	require.NotEmpty(t, lines)
	assert.NotEqual(t, "", lines[len(lines)-1])
	assert.Equal(t, "", lines[1])
	assert.Equal(t, "Education:", lines[2])
}

func TestBuildReturnsIndependentTrees(t *testing.T) {
	doc, err := Default()
	require.NoError(t, err)

	first, err := doc.Build()
	require.NoError(t, err)
	second, err := doc.Build()
	require.NoError(t, err)

	_, err = first.MakeDirectory("~/notes", "/")
	require.NoError(t, err)

	_, err = second.Resolve("~/notes", "/")
	assert.ErrorIs(t, err, vfs.ErrNotFound)
}

func TestLoadFormats(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{
			name: "yaml",
			file: "seed.yaml",
			content: `user: alice
profile:
  name: Alice Example
`,
		},
		{
			name: "toml",
			file: "seed.toml",
			content: `user = "alice"

[profile]
name = "Alice Example"
`,
		},
		{
			name:    "json",
			file:    "seed.json",
			content: `{"user": "alice", "profile": {"name": "Alice Example"}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Load(writeSeed(t, tt.file, tt.content))
			require.NoError(t, err)

			assert.Equal(t, "alice", doc.User)
			assert.Equal(t, "/home/alice", doc.Home())
			assert.Equal(t, "Alice Example", doc.Profile.Name)
			// untouched fields keep the default
			assert.Equal(t, "portfolio-os", doc.Hostname)
			assert.NotEmpty(t, doc.Directories)

			fs, err := doc.Build()
			require.NoError(t, err)
			res, err := fs.Resolve("~/projects", "/")
			require.NoError(t, err)
			assert.Equal(t, "/home/alice/projects", res.Path)
		})
	}
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(writeSeed(t, "seed.ini", "user=alice"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeSeed(t, "seed.json", `{"user": ""}`))
	assert.Error(t, err)

	_, err = Load(writeSeed(t, "seed.json", `{"user": `))
	assert.Error(t, err)
}

func TestLoadOrDefault(t *testing.T) {
	doc, err := LoadOrDefault("")
	require.NoError(t, err)
	assert.Equal(t, "jaimin", doc.User)
}

func TestFileLines(t *testing.T) {
	assert.Equal(t, []string{"a"}, File{Content: "b", Lines: []string{"a"}}.lines())
	assert.Equal(t, []string{"x", "y"}, File{Content: "x\ny\n"}.lines())
	assert.Nil(t, File{}.lines())
}

func TestEncodeRoundTrip(t *testing.T) {
	doc, err := Default()
	require.NoError(t, err)

	for _, format := range []string{"yaml", "toml", "json"} {
		t.Run(format, func(t *testing.T) {
			data, err := doc.Encode(format)
			require.NoError(t, err)

			path := filepath.Join(t.TempDir(), "seed."+format)
			require.NoError(t, os.WriteFile(path, data, 0o644))

			loaded, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, doc.User, loaded.User)
			assert.Equal(t, doc.Profile.Projects, loaded.Profile.Projects)
			assert.Equal(t, doc.Directories, loaded.Directories)
		})
	}

	_, err = doc.Encode("xml")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}
