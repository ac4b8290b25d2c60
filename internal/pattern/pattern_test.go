package pattern

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompile_InvalidPattern(t *testing.T) {
	_, err := Compile([]string{"src/[abc.go"})
	require.Error(t, err)

	var invalid *InvalidPatternError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, "src/[abc.go", invalid.Pattern)
}

func TestCompile_SkipsBlankEntries(t *testing.T) {
	s, err := Compile([]string{"", "  ", "*.go"})
	require.NoError(t, err)
	assert.True(t, s.Match("main.go", false))
}

func TestSet_Match(t *testing.T) {
	tests := []struct {
		name     string
		patterns []string
		path     string
		isDir    bool
		want     bool
	}{
		{"basename pattern matches at root", []string{"*.go"}, "main.go", false, true},
		{"basename pattern matches at depth", []string{"*.go"}, "src/deep/main.go", false, true},
		{"basename pattern rejects other extension", []string{"*.go"}, "src/main.py", false, false},
		{"path pattern matches full relative path", []string{"src/*.go"}, "src/main.go", false, true},
		{"single star stops at separator", []string{"src/*.go"}, "src/deep/main.go", false, false},
		{"double star crosses separators", []string{"src/**/*.go"}, "src/a/b/main.go", false, true},
		{"question mark matches one character", []string{"file?.txt"}, "file1.txt", false, true},
		{"question mark needs a character", []string{"file?.txt"}, "file.txt", false, false},
		{"bracket class", []string{"file[0-9].txt"}, "file7.txt", false, true},
		{"dir-only pattern matches directory", []string{"build/"}, "build", true, true},
		{"dir-only pattern rejects file", []string{"build/"}, "build", false, false},
		{"or-combined: first matches", []string{"*.py", "*.md"}, "setup.py", false, true},
		{"or-combined: second matches", []string{"*.py", "*.md"}, "README.md", false, true},
		{"or-combined: neither matches", []string{"*.py", "*.md"}, "notes.txt", false, false},
		{"leading slash anchors to root", []string{"/main.go"}, "main.go", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Compile(tt.patterns)
			require.NoError(t, err)
			assert.Equal(t, tt.want, s.Match(tt.path, tt.isDir))
		})
	}
}

func TestSet_MatchNil(t *testing.T) {
	var s *Set
	assert.False(t, s.Match("anything", false))
	assert.True(t, s.Empty())
}

func TestSet_MatchSegment(t *testing.T) {
	s, err := Compile([]string{"node_modules", "build*"})
	require.NoError(t, err)

	assert.True(t, s.MatchSegment("node_modules"))
	assert.True(t, s.MatchSegment("a/node_modules/b"))
	assert.True(t, s.MatchSegment("pkg/build-out"))
	assert.False(t, s.MatchSegment("src/modules"))
}
