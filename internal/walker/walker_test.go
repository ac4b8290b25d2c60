package walker

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jmallek/compendium/internal/ignore"
	"github.com/jmallek/compendium/internal/pattern"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTree creates files under root; keys use slashes, values are contents.
func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, body := range files {
		full := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte(body), 0o644))
	}
}

func newMatcher(t *testing.T, root string, opts ...ignore.Option) *ignore.Matcher {
	t.Helper()
	m, err := ignore.New(root, opts...)
	require.NoError(t, err)
	return m
}

func mustCompile(t *testing.T, patterns ...string) *pattern.Set {
	t.Helper()
	s, err := pattern.Compile(patterns)
	require.NoError(t, err)
	return s
}

func relPaths(entries []Entry) []string {
	paths := make([]string, len(entries))
	for i, e := range entries {
		paths[i] = e.RelPath
	}
	return paths
}

func TestWalk_OrderAndDepth(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"b.txt":     "b",
		"a/x.txt":   "x",
		"a/y/z.txt": "z",
	})

	entries, skipped, err := Walk(root, newMatcher(t, root), Filter{})
	require.NoError(t, err)
	assert.Empty(t, skipped)

	require.Equal(t, []string{"a", "a/x.txt", "a/y", "a/y/z.txt", "b.txt"}, relPaths(entries))

	// Directories precede descendants; depth follows nesting.
	assert.True(t, entries[0].IsDir)
	assert.Equal(t, 0, entries[0].Depth)
	assert.Equal(t, 1, entries[1].Depth)
	assert.Equal(t, 2, entries[3].Depth)

	// b.txt is the last sibling at the root; a/y is the last inside a.
	assert.True(t, entries[4].IsLast)
	assert.False(t, entries[0].IsLast)
	assert.True(t, entries[2].IsLast)
	assert.True(t, entries[3].IsLast)
}

func TestWalk_Deterministic(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"c.txt":   "",
		"a/1.txt": "",
		"a/2.txt": "",
		"b/3.txt": "",
	})

	first, _, err := Walk(root, newMatcher(t, root), Filter{})
	require.NoError(t, err)
	second, _, err := Walk(root, newMatcher(t, root), Filter{})
	require.NoError(t, err)

	assert.Equal(t, first, second, "two scans of an unchanged tree must produce identical sequences")
}

func TestWalk_ExcludedFolderNames(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"src/main.go":               "",
		"node_modules/pkg/index.js": "",
		"a/node_modules/x.js":       "",
	})

	filter := Filter{ExcludeFolders: mustCompile(t, "node_modules")}
	entries, skipped, err := Walk(root, newMatcher(t, root), filter)
	require.NoError(t, err)

	for _, e := range entries {
		for _, seg := range strings.Split(e.RelPath, "/") {
			assert.NotEqual(t, "node_modules", seg, "excluded folder leaked into %q", e.RelPath)
		}
	}

	var reasons []SkippedReason
	for _, item := range skipped {
		reasons = append(reasons, item.Reason)
	}
	assert.Contains(t, reasons, ReasonExcludedFolder)
}

func TestWalk_IgnoreFileNegation(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		".gitignore":     "*.log\n",
		"sub/.gitignore": "!keep.log\n",
		"sub/keep.log":   "",
		"sub/other.log":  "",
		"root.log":       "",
	})

	entries, _, err := Walk(root, newMatcher(t, root), Filter{IgnoreHidden: true})
	require.NoError(t, err)

	paths := relPaths(entries)
	assert.Contains(t, paths, "sub/keep.log", "deeper negation must re-include")
	assert.NotContains(t, paths, "sub/other.log")
	assert.NotContains(t, paths, "root.log")
	assert.NotContains(t, paths, ".gitignore", "hidden entries stay out of the sequence")
}

func TestWalk_HiddenPolicy(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		".secret/key.pem": "",
		".hidden.txt":     "",
		"visible.txt":     "",
	})

	entries, _, err := Walk(root, newMatcher(t, root), Filter{IgnoreHidden: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"visible.txt"}, relPaths(entries))

	entries, _, err = Walk(root, newMatcher(t, root, ignore.WithHiddenIgnore(false)), Filter{IgnoreHidden: false})
	require.NoError(t, err)
	paths := relPaths(entries)
	assert.Contains(t, paths, ".hidden.txt")
	assert.Contains(t, paths, ".secret/key.pem")
}

func TestWalk_IncludePatternsAreInclusiveOR(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"docs/readme.md": "",
		"src/app.py":     "",
		"src/notes.txt":  "",
		"empty/junk.bin": "",
	})

	filter := Filter{Include: mustCompile(t, "*.py", "*.md")}
	entries, _, err := Walk(root, newMatcher(t, root), filter)
	require.NoError(t, err)

	paths := relPaths(entries)
	assert.Contains(t, paths, "docs/readme.md")
	assert.Contains(t, paths, "src/app.py")
	assert.NotContains(t, paths, "src/notes.txt")

	// Directories retaining a match survive; ones retaining nothing are
	// pruned even though they were descended into.
	assert.Contains(t, paths, "docs")
	assert.Contains(t, paths, "src")
	assert.NotContains(t, paths, "empty")
}

func TestWalk_ExcludePatterns(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"app.log":  "",
		"app.go":   "",
		"sub/x.go": "",
	})

	filter := Filter{Exclude: mustCompile(t, "*.log")}
	entries, _, err := Walk(root, newMatcher(t, root), filter)
	require.NoError(t, err)

	paths := relPaths(entries)
	assert.NotContains(t, paths, "app.log")
	assert.Contains(t, paths, "app.go")
	assert.Contains(t, paths, "sub/x.go")
}

func TestWalk_SymlinkToAncestorIsCutWithWarning(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"sub/file.txt": "",
	})
	require.NoError(t, os.Symlink(root, filepath.Join(root, "sub", "loop")))

	entries, skipped, err := Walk(root, newMatcher(t, root), Filter{})
	require.NoError(t, err, "a symlink cycle must not abort the scan")

	assert.NotContains(t, relPaths(entries), "sub/loop")

	found := false
	for _, item := range skipped {
		if item.Reason == ReasonSymlinkCycle {
			found = true
			assert.True(t, item.Reason.Warning())
		}
	}
	assert.True(t, found, "cycle should surface as a warning")
}

func TestWalk_MutualSymlinkLoopTerminates(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Symlink(filepath.Join(root, "b"), filepath.Join(root, "a")))
	require.NoError(t, os.Symlink(filepath.Join(root, "a"), filepath.Join(root, "b")))

	entries, skipped, err := Walk(root, newMatcher(t, root), Filter{})
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.Len(t, skipped, 2)
	for _, item := range skipped {
		assert.True(t, item.Reason.Warning())
	}
}

func TestWalk_UnreadableSubtreeDoesNotAbort(t *testing.T) {
	if os.Getuid() == 0 {
		t.Skip("permission bits are not enforced for root")
	}

	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"locked/secret.txt": "",
		"open/ok.txt":       "",
	})
	locked := filepath.Join(root, "locked")
	require.NoError(t, os.Chmod(locked, 0o000))
	t.Cleanup(func() { _ = os.Chmod(locked, 0o755) })

	entries, skipped, err := Walk(root, newMatcher(t, root), Filter{})
	require.NoError(t, err, "one unreadable subtree must not abort the scan")

	paths := relPaths(entries)
	assert.Contains(t, paths, "open/ok.txt")
	assert.Contains(t, paths, "locked", "unreadable dir stays as a placeholder entry")
	assert.NotContains(t, paths, "locked/secret.txt")

	found := false
	for _, item := range skipped {
		if item.Path == "locked" && item.Reason == ReasonPermError {
			found = true
		}
	}
	assert.True(t, found)
}

func TestWalk_MissingRootFails(t *testing.T) {
	_, _, err := Walk(filepath.Join(t.TempDir(), "nope"), nil, Filter{})
	require.Error(t, err)

	var traversal *TraversalError
	assert.True(t, errors.As(err, &traversal))
}
