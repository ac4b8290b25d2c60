package content

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, root, name string, body []byte) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(root, name), body, 0o644))
}

func TestLoad_TextFile(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "hello.txt", []byte("hello\nworld\n"))

	c := NewLoader(root).Load("hello.txt")
	assert.False(t, c.Skipped())
	assert.Equal(t, "hello\nworld\n", c.Text)
}

func TestLoad_BinaryDetection(t *testing.T) {
	tests := []struct {
		name string
		body []byte
		want SkipReason
	}{
		{"null byte marks binary", []byte("ELF\x00\x01\x02"), SkipBinary},
		{"invalid encoding marks binary", []byte{0xff, 0xfe, 0x00, 0x41}, SkipBinary},
		{"plain ascii is text", []byte("package main\n"), SkipNone},
		{"multibyte utf-8 is text", []byte("héllo wörld ✓\n"), SkipNone},
		{"empty file is text", nil, SkipNone},
	}

	root := t.TempDir()
	loader := NewLoader(root)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			writeFile(t, root, "probe", tt.body)
			c := loader.Load("probe")
			assert.Equal(t, tt.want, c.Skip)
		})
	}
}

func TestLoad_SniffBoundaryDoesNotMisclassify(t *testing.T) {
	// A multi-byte rune straddling the sniff window must not flip the
	// file to binary.
	root := t.TempDir()
	body := strings.Repeat("a", DefaultSniffLen-1) + "é" + strings.Repeat("b", 64)
	writeFile(t, root, "edge.txt", []byte(body))

	c := NewLoader(root).Load("edge.txt")
	assert.False(t, c.Skipped())
}

func TestLoad_InvalidBytesPastSniffAreReplaced(t *testing.T) {
	root := t.TempDir()
	body := append([]byte(strings.Repeat("a", DefaultSniffLen+10)), 0xff)
	writeFile(t, root, "mostly.txt", body)

	c := NewLoader(root).Load("mostly.txt")
	require.False(t, c.Skipped(), "one stray byte past the sniff window must not abort")
	assert.Contains(t, c.Text, "�")
	assert.True(t, strings.HasPrefix(c.Text, "aaa"))
}

func TestLoad_SizeLimit(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "big.txt", []byte(strings.Repeat("x", 100)))
	writeFile(t, root, "small.txt", []byte("ok"))

	loader := NewLoader(root, WithMaxFileSize(10))
	assert.Equal(t, SkipTooLarge, loader.Load("big.txt").Skip)
	assert.Equal(t, SkipNone, loader.Load("small.txt").Skip)

	// Zero disables the limit.
	loader = NewLoader(root, WithMaxFileSize(0))
	assert.Equal(t, SkipNone, loader.Load("big.txt").Skip)
}

func TestLoad_MissingFile(t *testing.T) {
	c := NewLoader(t.TempDir()).Load("gone.txt")
	assert.Equal(t, SkipReadError, c.Skip)
	assert.Error(t, c.Err)
}
