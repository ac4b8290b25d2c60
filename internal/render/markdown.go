package render

import (
	"bufio"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/jmallek/compendium/internal/walker"
)

// markdownSerializer renders the artifact as tree-annotated Markdown:
// a fenced tree preamble, then a fenced code block per file grouped under
// directory headings.
type markdownSerializer struct{}

func (s *markdownSerializer) Serialize(w io.Writer, rootName string, entries []walker.Entry, load ContentFunc, warnings []walker.SkippedItem) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "# Repository Code Compendium\n\n")
	fmt.Fprintf(bw, "## Structure\n\n")
	fmt.Fprintf(bw, "```\n%s```\n\n", RenderTree(rootName, entries))

	for _, group := range groupByDirectory(entries) {
		if group.dir == "." {
			fmt.Fprintf(bw, "## Root Directory\n\n")
		} else {
			fmt.Fprintf(bw, "## Directory: %s\n\n", group.dir)
		}

		for _, e := range group.files {
			fmt.Fprintf(bw, "### File: %s\n\n", e.RelPath)

			c := load(e)
			if c.Skipped() {
				fmt.Fprintf(bw, "*(content omitted: %s)*\n\n", c.Skip)
				continue
			}

			fence := fenceFor(c.Text)
			body := c.Text
			if body != "" && !strings.HasSuffix(body, "\n") {
				body += "\n"
			}
			fmt.Fprintf(bw, "%s%s\n%s%s\n\n", fence, languageTag(e.RelPath), body, fence)
		}
	}

	if len(warnings) > 0 {
		fmt.Fprintf(bw, "## Warnings\n\n")
		for _, item := range warnings {
			fmt.Fprintf(bw, "- `%s`: %s\n", item.Path, item.Reason)
		}
		fmt.Fprintln(bw)
	}

	return bw.Flush()
}

type directoryGroup struct {
	dir   string
	files []walker.Entry
}

// groupByDirectory buckets file entries under their containing directory so
// each directory gets a single heading. Directories keep their order of
// first appearance and files keep traversal order within a group.
func groupByDirectory(entries []walker.Entry) []*directoryGroup {
	var groups []*directoryGroup
	index := make(map[string]*directoryGroup)
	for _, e := range entries {
		if e.IsDir {
			continue
		}
		dir := path.Dir(e.RelPath)
		group, ok := index[dir]
		if !ok {
			group = &directoryGroup{dir: dir}
			index[dir] = group
			groups = append(groups, group)
		}
		group.files = append(group.files, e)
	}
	return groups
}

// fenceFor returns a backtick fence strictly longer than any backtick run
// inside the content, so embedded fences can never close ours early.
func fenceFor(text string) string {
	longest := 0
	run := 0
	for _, r := range text {
		if r == '`' {
			run++
			if run > longest {
				longest = run
			}
		} else {
			run = 0
		}
	}
	n := longest + 1
	if n < 3 {
		n = 3
	}
	return strings.Repeat("`", n)
}
