// Package render serializes the retained tree and file contents into one of
// the supported output formats.
package render

import (
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/jmallek/compendium/internal/content"
	"github.com/jmallek/compendium/internal/walker"
)

// Format selects one of the closed set of output serializers.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
	FormatPlain    Format = "plain"
)

// ParseFormat maps a CLI format flag to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "markdown", "md":
		return FormatMarkdown, nil
	case "json":
		return FormatJSON, nil
	case "plain", "text", "txt":
		return FormatPlain, nil
	}
	return "", fmt.Errorf("render: unknown output format %q", s)
}

// ContentFunc supplies the loaded content for a file entry. It is called
// once per retained file, in the serializer's section order.
type ContentFunc func(e walker.Entry) content.Content

// Serializer renders the full ordered entry sequence plus on-demand content
// into one artifact. Implementations are pure functions of their input.
type Serializer interface {
	Serialize(w io.Writer, rootName string, entries []walker.Entry, load ContentFunc, warnings []walker.SkippedItem) error
}

// New returns the serializer for the given format.
func New(f Format) Serializer {
	switch f {
	case FormatJSON:
		return &jsonSerializer{}
	case FormatPlain:
		return &plainSerializer{}
	default:
		return &markdownSerializer{}
	}
}

// languageTags maps file extensions to fenced-code-block language tags where
// the tag differs from the bare extension.
var languageTags = map[string]string{
	"kt":   "kotlin",
	"md":   "markdown",
	"mjs":  "javascript",
	"py":   "python",
	"rb":   "ruby",
	"rs":   "rust",
	"sh":   "bash",
	"tsx":  "tsx",
	"yml":  "yaml",
}

// languageTag infers a code-fence language tag from the file extension.
func languageTag(relPath string) string {
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(relPath), "."))
	if tag, ok := languageTags[ext]; ok {
		return tag
	}
	return ext
}
