package walker

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/jmallek/compendium/internal/ignore"
)

// Walk traverses the directory tree starting from rootDir and returns the
// retained entries in their final, deterministic order, together with the
// list of skipped items.
//
// Per entry the checks run in a fixed precedence order: hidden policy,
// excluded folder names (directories only, subtree never visited), ignore
// rules, exclude patterns, include patterns. Directories are descended
// regardless of include patterns and pruned only once confirmed to retain
// nothing.
//
// A root that does not exist or cannot be read fails with TraversalError.
// Everything below the root degrades to a SkippedItem and traversal
// continues.
func Walk(rootDir string, matcher *ignore.Matcher, filter Filter, opts ...Option) ([]Entry, []SkippedItem, error) {
	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}

	absRoot, err := filepath.Abs(rootDir)
	if err != nil {
		return nil, nil, &TraversalError{Path: rootDir, Err: err}
	}

	info, err := os.Stat(absRoot)
	if err != nil {
		return nil, nil, &TraversalError{Path: absRoot, Err: err}
	}
	if !info.IsDir() {
		return nil, nil, &TraversalError{Path: absRoot, Err: fs.ErrInvalid}
	}

	st := &walkState{
		options: options,
		filter:  filter,
		matcher: matcher,
		tracker: NewSkippedTracker(64),
		visited: make(map[string]struct{}),
	}
	if resolved, err := filepath.EvalSymlinks(absRoot); err == nil {
		st.visited[resolved] = struct{}{}
	}

	options.Logger.Debug("walker.Walk started. Root: %s", absRoot)

	children, err := os.ReadDir(absRoot)
	if err != nil {
		return nil, nil, &TraversalError{Path: absRoot, Err: err}
	}

	entries := st.walkChildren(absRoot, "", 0, children)

	options.Logger.Debug("walker.Walk finished. Retained %d entries, skipped %d.",
		len(entries), len(st.tracker.Items()))
	return entries, st.tracker.Items(), nil
}

type walkState struct {
	options WalkOptions
	filter  Filter
	matcher *ignore.Matcher
	tracker *SkippedTracker
	// visited holds resolved targets of directories already descended
	// into, to cut symlink cycles.
	visited map[string]struct{}
}

// walkChildren filters and orders the children of one directory.
// os.ReadDir returns names sorted, so sibling order is case-sensitive
// lexicographic for free.
func (st *walkState) walkChildren(dir, rel string, depth int, children []os.DirEntry) []Entry {
	var blocks [][]Entry
	for _, d := range children {
		if block := st.walkEntry(dir, rel, depth, d); len(block) > 0 {
			blocks = append(blocks, block)
		}
	}

	var entries []Entry
	for i, block := range blocks {
		// The head of each block is the direct child; its descendants
		// carry their own IsLast flags already.
		block[0].IsLast = i == len(blocks)-1
		entries = append(entries, block...)
	}
	return entries
}

// walkEntry evaluates one directory child and returns the flattened entries
// of its retained subtree, or nil when it is filtered out.
func (st *walkState) walkEntry(parentAbs, parentRel string, depth int, d os.DirEntry) []Entry {
	name := d.Name()
	full := filepath.Join(parentAbs, name)
	rel := name
	if parentRel != "" {
		rel = parentRel + "/" + name
	}

	isDir := d.IsDir()
	isLink := d.Type()&fs.ModeSymlink != 0
	if isLink {
		target, err := os.Stat(full)
		if err != nil {
			st.options.Logger.Warn("Walker: Broken symlink %q: %v", rel, err)
			st.tracker.Track(rel, ReasonSymlinkBroken, false)
			return nil
		}
		isDir = target.IsDir()
	}

	st.options.Logger.Debug("Walker: Evaluating entry %q (isDir: %v)", rel, isDir)

	// (a) hidden-entry policy
	if st.filter.IgnoreHidden && strings.HasPrefix(name, ".") {
		st.tracker.Track(rel, ReasonHidden, isDir)
		return nil
	}

	// (b) excluded folder names short-circuit descent; an ignore-file
	// negation cannot bring the subtree back.
	if isDir && st.filter.ExcludeFolders.MatchSegment(name) {
		st.tracker.Track(rel, ReasonExcludedFolder, true)
		return nil
	}

	// (c) ignore rules (repository ignore files + custom rules)
	if st.matcher.ShouldIgnore(rel, isDir) {
		st.tracker.Track(rel, ReasonIgnoreRule, isDir)
		return nil
	}

	// (d) exclude patterns
	if st.filter.Exclude.Match(rel, isDir) {
		st.tracker.Track(rel, ReasonExcludePattern, isDir)
		return nil
	}

	if isDir {
		return st.walkDir(full, rel, depth, isLink)
	}

	// (e) include patterns, OR-combined
	if !st.filter.Include.Empty() && !st.filter.Include.Match(rel, false) {
		st.tracker.Track(rel, ReasonNoIncludeMatch, false)
		return nil
	}

	return []Entry{{RelPath: rel, IsDir: false, Depth: depth}}
}

func (st *walkState) walkDir(full, rel string, depth int, isLink bool) []Entry {
	if isLink {
		resolved, err := filepath.EvalSymlinks(full)
		if err != nil {
			// A pure link loop surfaces here as ELOOP.
			st.options.Logger.Warn("Walker: Symlink cycle or broken link at %q: %v", rel, err)
			st.tracker.Track(rel, ReasonSymlinkCycle, true)
			return nil
		}
		if _, seen := st.visited[resolved]; seen || st.resolvesToAncestor(resolved, full) {
			st.options.Logger.Warn("Walker: Symlink %q resolves into an ancestor, skipping", rel)
			st.tracker.Track(rel, ReasonSymlinkCycle, true)
			return nil
		}
		st.visited[resolved] = struct{}{}
	}

	children, err := os.ReadDir(full)
	if err != nil {
		reason := ReasonWalkError
		if os.IsPermission(err) {
			reason = ReasonPermError
		}
		st.options.Logger.Warn("Walker: Cannot list %q: %v", rel, err)
		st.tracker.Track(rel, reason, true)
		// The directory stays in the sequence as a placeholder with no
		// children; one unreadable subtree must not abort the scan.
		return []Entry{{RelPath: rel, IsDir: true, Depth: depth}}
	}

	sub := st.walkChildren(full, rel, depth+1, children)

	// With include patterns configured, a directory earns its place either
	// by matching directly or by retaining at least one descendant.
	if !st.filter.Include.Empty() && len(sub) == 0 && !st.filter.Include.Match(rel, true) {
		st.options.Logger.Debug("Walker: Pruning %q (nothing retained under include patterns)", rel)
		return nil
	}

	entries := make([]Entry, 0, 1+len(sub))
	entries = append(entries, Entry{RelPath: rel, IsDir: true, Depth: depth})
	entries = append(entries, sub...)
	return entries
}

// resolvesToAncestor reports whether resolved is the directory containing
// the link, or any ancestor of it.
func (st *walkState) resolvesToAncestor(resolved, linkPath string) bool {
	parent, err := filepath.EvalSymlinks(filepath.Dir(linkPath))
	if err != nil {
		return false
	}
	sep := string(filepath.Separator)
	return parent == resolved || strings.HasPrefix(parent+sep, resolved+sep)
}
