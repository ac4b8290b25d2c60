// Package walker performs the filtered depth-first traversal that decides
// which filesystem entries make it into the output.
package walker

import "fmt"

// Entry is one retained filesystem node. RelPath is slash-normalized and
// relative to the scan root. Directories always precede their descendants;
// siblings appear in case-sensitive lexicographic order.
type Entry struct {
	RelPath string
	IsDir   bool
	Depth   int
	// IsLast marks the entry as the last retained sibling in its parent
	// directory, for tree-branch drawing.
	IsLast bool
}

// TraversalError reports a root directory that does not exist or cannot be
// read. It is the only fatal traversal failure; everything below the root
// degrades to a SkippedItem.
type TraversalError struct {
	Path string
	Err  error
}

func (e *TraversalError) Error() string {
	return fmt.Sprintf("walker: cannot traverse root '%s': %v", e.Path, e.Err)
}

func (e *TraversalError) Unwrap() error {
	return e.Err
}

// SkippedReason clarifies why a file/directory was not retained.
type SkippedReason string

const (
	ReasonHidden         SkippedReason = "Ignored (Hidden Rule)"
	ReasonExcludedFolder SkippedReason = "Excluded (Folder Name)"
	ReasonIgnoreRule     SkippedReason = "Ignored (Ignore-File/Custom Rule)"
	ReasonExcludePattern SkippedReason = "Excluded (Pattern Match)"
	ReasonNoIncludeMatch SkippedReason = "Filtered (No Include Match)"
	ReasonSymlinkCycle   SkippedReason = "Skipped (Symlink Cycle)"
	ReasonSymlinkBroken  SkippedReason = "Skipped (Broken Symlink)"
	ReasonPermError      SkippedReason = "Skipped (Permission Error)"
	ReasonWalkError      SkippedReason = "Skipped (Walk Error)"
	ReasonPathError      SkippedReason = "Skipped (Path Calculation Error)"
)

// SkippedItem holds information about a skipped path.
type SkippedItem struct {
	Path   string        `json:"path"`
	Reason SkippedReason `json:"reason"`
	IsDir  bool          `json:"is_dir"`
}

// Warning reports whether the reason is a real problem (as opposed to an
// entry filtered out on purpose). Warnings are surfaced in the summary.
func (r SkippedReason) Warning() bool {
	switch r {
	case ReasonSymlinkCycle, ReasonSymlinkBroken, ReasonPermError, ReasonWalkError, ReasonPathError:
		return true
	}
	return false
}

// SkippedTracker accumulates skipped items during one traversal.
type SkippedTracker struct {
	items []SkippedItem
}

// NewSkippedTracker creates a new SkippedTracker
func NewSkippedTracker(capacity int) *SkippedTracker {
	return &SkippedTracker{
		items: make([]SkippedItem, 0, capacity),
	}
}

// Track adds a skipped item to the tracker
func (st *SkippedTracker) Track(path string, reason SkippedReason, isDir bool) {
	st.items = append(st.items, SkippedItem{Path: path, Reason: reason, IsDir: isDir})
}

// Items returns the tracked skipped items
func (st *SkippedTracker) Items() []SkippedItem {
	return st.items
}
