// Package ignore decides whether a filesystem entry is excluded by
// repository ignore files, user-supplied ignore rules, or the hidden-entry
// policy.
package ignore

import (
	"github.com/jmallek/compendium/internal/utils"

	gitignore "github.com/denormal/go-gitignore"
)

// Matcher answers ShouldIgnore for paths relative to the scan root.
//
// Rule layering follows nested ignore-file semantics: rules from a deeper
// directory override rules from a shallower one for paths beneath it, and
// within one file the last matching line wins. A negated rule ("!pattern")
// re-includes a path excluded by an earlier rule. The version-control
// metadata directory is always ignored, independent of user rules.
type Matcher struct {
	// repoIgnore holds the rules loaded from ignore files found anywhere
	// under the root; customIgnore holds user-supplied rules, consulted
	// after the repository rules.
	repoIgnore   gitignore.GitIgnore
	customIgnore gitignore.GitIgnore

	rootDir      string
	ignoreHidden bool
	ignoreGit    bool
	customRules  []string
	logger       utils.Logger
	disabled     bool
}

// Config holds construction options for a Matcher.
type Config struct {
	RootDir      string
	IgnoreHidden bool
	IgnoreGit    bool
	CustomRules  []string
	Logger       utils.Logger
	Disabled     bool
}
