package render

import (
	"strings"

	"github.com/jmallek/compendium/internal/walker"
)

// RenderTree draws the retained hierarchy as a branch diagram, one line per
// entry, derived from each entry's Depth and IsLast flags.
func RenderTree(rootName string, entries []walker.Entry) string {
	var b strings.Builder
	b.WriteString(rootName)
	b.WriteString("/\n")

	// lastAtDepth remembers, per ancestor level, whether that ancestor was
	// the last sibling, which decides between "│   " and blank padding.
	var lastAtDepth []bool

	for _, e := range entries {
		for len(lastAtDepth) <= e.Depth {
			lastAtDepth = append(lastAtDepth, false)
		}
		lastAtDepth[e.Depth] = e.IsLast

		for i := 0; i < e.Depth; i++ {
			if lastAtDepth[i] {
				b.WriteString("    ")
			} else {
				b.WriteString("│   ")
			}
		}
		if e.IsLast {
			b.WriteString("└── ")
		} else {
			b.WriteString("├── ")
		}

		name := e.RelPath
		if i := strings.LastIndexByte(name, '/'); i >= 0 {
			name = name[i+1:]
		}
		b.WriteString(name)
		if e.IsDir {
			b.WriteByte('/')
		}
		b.WriteByte('\n')
	}
	return b.String()
}
