package walker

import (
	"github.com/jmallek/compendium/internal/pattern"
	"github.com/jmallek/compendium/internal/utils"
)

// Filter is the merged, read-only selection configuration for one scan.
//
// Include patterns are OR-combined: when any are configured, a file must
// match at least one to survive. Exclude patterns are OR-combined the other
// way: one match rejects. ExcludeFolders matches folder names (exact or
// glob) against every path segment and can never be negated back in by an
// ignore rule.
type Filter struct {
	IgnoreHidden   bool
	ExcludeFolders *pattern.Set
	Exclude        *pattern.Set
	Include        *pattern.Set
}

// WalkOptions configures the behavior of the Walk function
type WalkOptions struct {
	Logger utils.Logger
}

func defaultOptions() WalkOptions {
	return WalkOptions{
		Logger: &utils.NoopLogger{},
	}
}

// Option is a functional option for configuring WalkOptions
type Option func(*WalkOptions)

// WithLogger sets a custom logger for the walker
func WithLogger(logger utils.Logger) Option {
	return func(opts *WalkOptions) {
		if logger != nil {
			opts.Logger = logger
		}
	}
}
