package render

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/jmallek/compendium/internal/walker"
)

// jsonSerializer renders the artifact as one structurally valid JSON
// document. A per-file load error degrades that file's node to a
// skipped_reason placeholder; the document itself always parses.
type jsonSerializer struct{}

type treeNode struct {
	Name     string      `json:"name"`
	Type     string      `json:"type"`
	Children []*treeNode `json:"children,omitempty"`
}

type fileNode struct {
	Path          string  `json:"path"`
	Type          string  `json:"type"`
	Content       *string `json:"content,omitempty"`
	SkippedReason string  `json:"skipped_reason,omitempty"`
}

type warningNode struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

type document struct {
	Tree     *treeNode     `json:"tree"`
	Files    []fileNode    `json:"files"`
	Warnings []warningNode `json:"warnings,omitempty"`
}

func (s *jsonSerializer) Serialize(w io.Writer, rootName string, entries []walker.Entry, load ContentFunc, warnings []walker.SkippedItem) error {
	doc := document{
		Tree:  buildTree(rootName, entries),
		Files: make([]fileNode, 0, len(entries)),
	}

	for _, e := range entries {
		if e.IsDir {
			continue
		}
		node := fileNode{Path: e.RelPath, Type: "file"}
		c := load(e)
		if c.Skipped() {
			node.SkippedReason = string(c.Skip)
		} else {
			text := c.Text
			node.Content = &text
		}
		doc.Files = append(doc.Files, node)
	}

	for _, item := range warnings {
		doc.Warnings = append(doc.Warnings, warningNode{Path: item.Path, Reason: string(item.Reason)})
	}

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	out = append(out, '\n')
	_, err = w.Write(out)
	return err
}

// buildTree nests the flat entry sequence back into parent/child nodes.
// Entries arrive depth-first with directories before their descendants, so
// a stack of the current ancestor chain is enough.
func buildTree(rootName string, entries []walker.Entry) *treeNode {
	root := &treeNode{Name: rootName, Type: "directory"}
	stack := []*treeNode{root}

	for _, e := range entries {
		// Pop back up to this entry's parent.
		stack = stack[:e.Depth+1]
		parent := stack[len(stack)-1]

		name := e.RelPath
		if i := strings.LastIndexByte(name, '/'); i >= 0 {
			name = name[i+1:]
		}

		node := &treeNode{Name: name, Type: "file"}
		if e.IsDir {
			node.Type = "directory"
			stack = append(stack, node)
		}
		parent.Children = append(parent.Children, node)
	}
	return root
}
