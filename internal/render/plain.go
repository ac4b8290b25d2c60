package render

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/jmallek/compendium/internal/walker"
)

// plainSerializer renders the artifact as plain text: tree preamble, then
// one block per file introduced by a ===<relative_path>=== delimiter line
// and terminated by a blank line.
//
// A delimiter line starts with exactly three '='. Any content line that
// could be mistaken for one gets its leading '=' run doubled, so the output
// can always be re-split unambiguously.
type plainSerializer struct{}

func (s *plainSerializer) Serialize(w io.Writer, rootName string, entries []walker.Entry, load ContentFunc, warnings []walker.SkippedItem) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "REPOSITORY CODE COMPENDIUM\n\n")
	fmt.Fprintf(bw, "%s\n", RenderTree(rootName, entries))

	for _, e := range entries {
		if e.IsDir {
			continue
		}

		fmt.Fprintf(bw, "===%s===\n", e.RelPath)

		c := load(e)
		if c.Skipped() {
			fmt.Fprintf(bw, "[content omitted: %s]\n\n", c.Skip)
			continue
		}

		body := escapeDelimiters(c.Text)
		if body != "" && !strings.HasSuffix(body, "\n") {
			body += "\n"
		}
		fmt.Fprintf(bw, "%s\n", body)
	}

	if len(warnings) > 0 {
		fmt.Fprintf(bw, "WARNINGS\n")
		for _, item := range warnings {
			fmt.Fprintf(bw, "  %s [%s]\n", item.Path, item.Reason)
		}
	}

	return bw.Flush()
}

// escapeDelimiters doubles the leading '=' run of any content line that
// would otherwise parse as a file delimiter.
func escapeDelimiters(text string) string {
	if !strings.Contains(text, "===") {
		return text
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if isDelimiterLine(line) {
			run := len(line) - len(strings.TrimLeft(line, "="))
			lines[i] = strings.Repeat("=", run) + line
		}
	}
	return strings.Join(lines, "\n")
}

// isDelimiterLine matches the ===<path>=== shape emitted between files.
func isDelimiterLine(line string) bool {
	return len(line) > 6 &&
		strings.HasPrefix(line, "===") &&
		line[3] != '=' &&
		strings.HasSuffix(line, "===")
}
