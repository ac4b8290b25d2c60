package ignore

import (
	"path/filepath"
	"strings"

	gitignore "github.com/denormal/go-gitignore"
)

// ShouldIgnore checks if a file or directory should be excluded.
// relativePath is relative to the scan root; isDir tells directory-only
// rules apart from plain ones.
func (m *Matcher) ShouldIgnore(relativePath string, isDir bool) bool {
	if m == nil || m.disabled {
		return false
	}

	// Never ignore the root itself
	if relativePath == "" || relativePath == "." {
		return false
	}

	unixPath := filepath.ToSlash(relativePath)

	if m.ignoreHidden && hasHiddenSegment(unixPath) {
		m.logger.Debug("ignore.ShouldIgnore: Ignored %q (hidden rule)", relativePath)
		return true
	}

	// The VCS metadata directory is excluded unconditionally; no user rule
	// can re-include it.
	if m.ignoreGit && isPathInGitDir(unixPath, isDir) {
		m.logger.Debug("ignore.ShouldIgnore: Ignored %q (.git rule)", relativePath)
		return true
	}

	// Custom rules are consulted after repository rules and override them,
	// mirroring how a deeper ignore file overrides a shallower one.
	if match := m.relativeMatch(m.customIgnore, unixPath, isDir); match != nil {
		if match.Ignore() {
			m.logger.Debug("ignore.ShouldIgnore: Ignored %q (custom rule)", relativePath)
			return true
		}
		m.logger.Debug("ignore.ShouldIgnore: Re-included %q (custom negation)", relativePath)
		return false
	}

	if match := m.relativeMatch(m.repoIgnore, unixPath, isDir); match != nil {
		if match.Ignore() {
			m.logger.Debug("ignore.ShouldIgnore: Ignored %q (ignore-file rule)", relativePath)
			return true
		}
		m.logger.Debug("ignore.ShouldIgnore: Re-included %q (ignore-file negation)", relativePath)
		return false
	}

	return false
}

// relativeMatch wraps the library call defensively: a panic inside the
// matcher for one path must not take down the whole scan.
func (m *Matcher) relativeMatch(gi gitignore.GitIgnore, unixPath string, isDir bool) (match gitignore.Match) {
	if gi == nil {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			m.logger.Error("PANIC recovered in gitignore matcher for path %q: %v", unixPath, r)
			match = nil
		}
	}()
	return gi.Relative(unixPath, isDir)
}

// hasHiddenSegment reports whether any path component starts with a dot.
func hasHiddenSegment(unixPath string) bool {
	for _, seg := range strings.Split(unixPath, "/") {
		if strings.HasPrefix(seg, ".") {
			return true
		}
	}
	return false
}

// isPathInGitDir checks if a path is, or is inside, a .git directory
func isPathInGitDir(unixPath string, isDir bool) bool {
	parts := strings.Split(unixPath, "/")
	for i, part := range parts {
		if part == ".git" {
			if isDir || i < len(parts)-1 {
				return true
			}
		}
	}
	return false
}
