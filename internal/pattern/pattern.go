// Package pattern compiles glob filter patterns into reusable predicates
// over slash-normalized relative paths.
//
// Patterns follow the usual ignore-file conventions: '*' matches any run of
// characters except '/', '**' crosses directory boundaries, '?' matches a
// single character, and a trailing '/' restricts the pattern to directories.
// A pattern without a separator is matched against the basename at any
// depth; a pattern containing a separator, or anchored with a leading '/',
// is matched against the full relative path.
package pattern

import (
	"fmt"
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// InvalidPatternError reports a pattern that failed to compile, typically
// an unbalanced bracket class.
type InvalidPatternError struct {
	Pattern string
}

func (e *InvalidPatternError) Error() string {
	return fmt.Sprintf("pattern: invalid filter pattern %q", e.Pattern)
}

// compiled is a single validated pattern.
type compiled struct {
	glob     string
	dirOnly  bool // trailing '/' in the source pattern
	basename bool // no separator: match the basename at any depth
}

// Set is an OR-combined group of compiled patterns. A nil or empty Set
// matches nothing.
type Set struct {
	patterns []compiled
}

// Compile validates and compiles a list of glob patterns into a Set.
// Blank entries are skipped; a malformed pattern returns InvalidPatternError
// so the caller can fail before any traversal starts.
func Compile(patterns []string) (*Set, error) {
	s := &Set{}
	for _, raw := range patterns {
		p := strings.TrimSpace(raw)
		if p == "" {
			continue
		}

		dirOnly := strings.HasSuffix(p, "/")
		rooted := strings.HasPrefix(p, "/")
		p = strings.TrimSuffix(p, "/")
		p = strings.TrimPrefix(p, "/")
		if p == "" {
			continue
		}

		if !doublestar.ValidatePattern(p) {
			return nil, &InvalidPatternError{Pattern: raw}
		}

		s.patterns = append(s.patterns, compiled{
			glob:     p,
			dirOnly:  dirOnly,
			basename: !rooted && !strings.Contains(p, "/"),
		})
	}
	return s, nil
}

// Empty reports whether the set contains no patterns.
func (s *Set) Empty() bool {
	return s == nil || len(s.patterns) == 0
}

// Match reports whether relPath matches any pattern in the set.
// relPath must be slash-normalized and relative to the scan root.
func (s *Set) Match(relPath string, isDir bool) bool {
	if s == nil || relPath == "" || relPath == "." {
		return false
	}
	relPath = strings.TrimPrefix(path.Clean(relPath), "/")

	for _, p := range s.patterns {
		if p.dirOnly && !isDir {
			continue
		}

		target := relPath
		if p.basename {
			target = path.Base(relPath)
		}

		// ValidatePattern ran at compile time, so Match cannot fail here.
		if ok, _ := doublestar.Match(p.glob, target); ok {
			return true
		}
	}
	return false
}

// MatchSegment reports whether any single path segment of relPath matches a
// pattern in the set. Used for folder-name exclusion, where a name like
// "node_modules" or a glob like "build*" applies to every depth.
func (s *Set) MatchSegment(relPath string) bool {
	if s == nil || relPath == "" || relPath == "." {
		return false
	}
	for _, seg := range strings.Split(relPath, "/") {
		for _, p := range s.patterns {
			if ok, _ := doublestar.Match(p.glob, seg); ok {
				return true
			}
		}
	}
	return false
}
