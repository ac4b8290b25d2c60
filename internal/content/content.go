// Package content reads the bytes of retained files, applying the binary
// detection and size policies.
package content

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/jmallek/compendium/internal/utils"
)

// SkipReason explains why a file's body was omitted from the output.
type SkipReason string

const (
	SkipNone       SkipReason = ""
	SkipBinary     SkipReason = "binary"
	SkipTooLarge   SkipReason = "too large"
	SkipNotRegular SkipReason = "not a regular file"
	SkipReadError  SkipReason = "read error"
)

// DefaultMaxFileSize bounds file bodies at 1MB, matching the usual ceiling
// for text sources worth inlining.
const DefaultMaxFileSize int64 = 1024 * 1024

// DefaultSniffLen is how many leading bytes the binary heuristic inspects.
const DefaultSniffLen = 1024

// Content is the load result for one file.
type Content struct {
	// Text holds the decoded body when Skip == SkipNone. Invalid UTF-8
	// sequences have been replaced, never raised.
	Text string
	Skip SkipReason
	Err  error
}

// Skipped reports whether the body was omitted.
func (c Content) Skipped() bool {
	return c.Skip != SkipNone
}

// Loader reads file contents beneath one scan root.
type Loader struct {
	rootDir     string
	maxFileSize int64
	sniffLen    int
	logger      utils.Logger
}

// Option is a functional option for configuring the Loader
type Option func(*Loader)

// WithMaxFileSize sets the size above which files are skipped. Zero or
// negative disables the limit.
func WithMaxFileSize(maxBytes int64) Option {
	return func(l *Loader) {
		l.maxFileSize = maxBytes
	}
}

// WithLogger sets a custom logger for the loader
func WithLogger(logger utils.Logger) Option {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// NewLoader creates a Loader for files under rootDir.
func NewLoader(rootDir string, opts ...Option) *Loader {
	l := &Loader{
		rootDir:     rootDir,
		maxFileSize: DefaultMaxFileSize,
		sniffLen:    DefaultSniffLen,
		logger:      &utils.NoopLogger{},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads the file at the slash-normalized relative path. Every failure
// mode is folded into the returned Content; Load never aborts the run.
func (l *Loader) Load(relPath string) Content {
	full := filepath.Join(l.rootDir, filepath.FromSlash(relPath))

	info, err := os.Lstat(full)
	if err != nil {
		l.logger.Warn("content.Load [%s]: stat failed: %v", relPath, err)
		return Content{Skip: SkipReadError, Err: err}
	}

	// Follow a symlink to its target before the regular-file check.
	if info.Mode()&os.ModeSymlink != 0 {
		info, err = os.Stat(full)
		if err != nil {
			l.logger.Warn("content.Load [%s]: stat failed: %v", relPath, err)
			return Content{Skip: SkipReadError, Err: err}
		}
	}

	if !info.Mode().IsRegular() {
		l.logger.Debug("content.Load [%s]: not a regular file", relPath)
		return Content{Skip: SkipNotRegular}
	}

	if l.maxFileSize > 0 && info.Size() > l.maxFileSize {
		l.logger.Debug("content.Load [%s]: exceeds size limit (%d > %d bytes)",
			relPath, info.Size(), l.maxFileSize)
		return Content{Skip: SkipTooLarge}
	}

	raw, err := os.ReadFile(full)
	if err != nil {
		l.logger.Warn("content.Load [%s]: read failed: %v", relPath, err)
		return Content{Skip: SkipReadError, Err: err}
	}

	if l.isBinary(raw) {
		l.logger.Debug("content.Load [%s]: binary content detected", relPath)
		return Content{Skip: SkipBinary}
	}

	// Tolerate stray invalid sequences in otherwise-text files.
	text := string(raw)
	if !utf8.ValidString(text) {
		text = strings.ToValidUTF8(text, string(utf8.RuneError))
	}
	return Content{Text: text}
}

// isBinary sniffs the leading bytes: a null byte or a sample that is not
// valid UTF-8 marks the file as binary.
func (l *Loader) isBinary(raw []byte) bool {
	sample := raw
	if len(sample) > l.sniffLen {
		sample = sample[:l.sniffLen]
	}
	if bytes.IndexByte(sample, 0x00) >= 0 {
		return true
	}
	// A multi-byte rune cut off at the sample boundary is not a binary
	// signal; drop the trailing partial rune before validating.
	if len(raw) > len(sample) {
		for i := 0; i < utf8.UTFMax-1 && len(sample) > 0 && !utf8.Valid(sample); i++ {
			sample = sample[:len(sample)-1]
		}
	}
	return !utf8.Valid(sample)
}
