package vfs

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDefault(t *testing.T) *Filesystem {
	t.Helper()
	fsys, err := New(nil)
	require.NoError(t, err)
	return fsys
}

func TestListDirectory_KnownPathsKeepStoredOrder(t *testing.T) {
	fsys := newDefault(t)

	for _, d := range DefaultLayout().Directories {
		t.Run(d.Path, func(t *testing.T) {
			entries, err := fsys.ListDirectory(d.Path)
			require.NoError(t, err)
			assert.Equal(t, d.Entries, entries)
		})
	}
}

func TestListDirectory_Unknown(t *testing.T) {
	fsys := newDefault(t)

	for _, p := range []string{"/nope", "/home/", "home", "", "/etc/passwd"} {
		_, err := fsys.ListDirectory(p)
		assert.True(t, IsNotFound(err), "expected not found for %q, got %v", p, err)
	}
}

func TestListDirectory_ReturnsCopy(t *testing.T) {
	fsys := newDefault(t)

	entries, err := fsys.ListDirectory("/")
	require.NoError(t, err)
	entries[0] = "mutated"

	again, err := fsys.ListDirectory("/")
	require.NoError(t, err)
	assert.Equal(t, "home", again[0])
}

func TestReadFile(t *testing.T) {
	fsys := newDefault(t)

	content, err := fsys.ReadFile("/etc/passwd")
	require.NoError(t, err)
	assert.Equal(t, "root:x:0:0:root:/root:/bin/bash\nuser:x:1000:1000:user:/home/user:/bin/bash", content)

	_, err = fsys.ReadFile("/etc")
	assert.True(t, IsNotFound(err), "directories are not readable files")

	_, err = fsys.ReadFile("//etc/passwd")
	assert.True(t, IsNotFound(err), "paths are matched literally")

	_, err = fsys.ReadFile("/var/www/html/image.png")
	assert.True(t, IsNotFound(err), "listed entries without content are not files")
}

func TestFindByExtension(t *testing.T) {
	fsys := newDefault(t)

	assert.Equal(t, []string{"/var/www/html/index.html"}, fsys.FindByExtension("/var", ".html"))
	assert.Equal(t, []string{"/var/www/html", "/var/www/html/index.html"}, fsys.FindByExtension("/var", "html"),
		"directory entries match on a plain suffix too")
	assert.Equal(t, []string{"/var/www/html/image.png"}, fsys.FindByExtension("/var", "png"))
	assert.Empty(t, fsys.FindByExtension("/home", ".html"))
	assert.Empty(t, fsys.FindByExtension("/nowhere", ""))
}

func TestFindByExtension_PrefixIsNotPathAware(t *testing.T) {
	layout := &Layout{
		Directories: []DirectoryEntry{
			{Path: "/", Entries: []string{"var", "var2"}},
			{Path: "/var", Entries: []string{"a.log"}},
			{Path: "/var2", Entries: []string{"b.log", "c.txt"}},
		},
	}
	fsys, err := New(layout)
	require.NoError(t, err)

	assert.Equal(t, []string{"/var/a.log", "/var2/b.log"}, fsys.FindByExtension("/var", ".log"))
}

func TestFindByExtension_RootJoinsLiterally(t *testing.T) {
	layout := &Layout{
		Directories: []DirectoryEntry{
			{Path: "/", Entries: []string{"readme.md"}},
		},
	}
	fsys, err := New(layout)
	require.NoError(t, err)

	assert.Equal(t, []string{"//readme.md"}, fsys.FindByExtension("/", ".md"))
}

func TestRegenerateNetworkConfig(t *testing.T) {
	fsys := newDefault(t)

	_, err := fsys.ReadFile(NetworkConfigPath)
	assert.True(t, IsNotFound(err), "config is only generated on demand")

	require.NoError(t, fsys.RegenerateNetworkConfig("10.0.0.5", "255.255.255.0", "10.0.0.1"))
	content, err := fsys.ReadFile(NetworkConfigPath)
	require.NoError(t, err)

	lines := strings.Split(content, "\n")
	assert.Equal(t, []string{"DEVICE=eth0", "IPADDR=10.0.0.5", "NETMASK=255.255.255.0", "GATEWAY=10.0.0.1"}, lines)

	require.NoError(t, fsys.RegenerateNetworkConfig("10.0.0.6", "255.0.0.0", "10.0.0.1"))
	content, err = fsys.ReadFile(NetworkConfigPath)
	require.NoError(t, err)
	assert.Contains(t, content, "IPADDR=10.0.0.6")
	assert.NotContains(t, content, "10.0.0.5")
}

func TestLoadLayout_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"empty", "files: []"},
		{"relative directory", "directories:\n  - path: home\n"},
		{"duplicate directory", "directories:\n  - path: /\n  - path: /\n"},
		{"file shadows directory", "directories:\n  - path: /\nfiles:\n  - path: /\n    content: x\n"},
		{"bad yaml", "{{"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadLayout(strings.NewReader(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestDirectories_EnumerationOrder(t *testing.T) {
	fsys := newDefault(t)

	assert.Equal(t, []string{
		"/", "/home", "/home/user", "/var", "/var/www", "/var/www/html", "/var/log", "/etc",
	}, fsys.Directories())
}
