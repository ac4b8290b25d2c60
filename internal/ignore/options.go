package ignore

import "github.com/jmallek/compendium/internal/utils"

// Option functions for configuration
type Option func(*Matcher)

func WithHiddenIgnore(ignore bool) Option {
	return func(m *Matcher) {
		m.ignoreHidden = ignore
	}
}

func WithGitIgnore(ignore bool) Option {
	return func(m *Matcher) {
		m.ignoreGit = ignore
	}
}

func WithCustomRules(rules []string) Option {
	return func(m *Matcher) {
		m.customRules = rules
	}
}

func WithLogger(logger utils.Logger) Option {
	return func(m *Matcher) {
		if logger != nil {
			m.logger = logger
		}
	}
}

func WithDisabled(disabled bool) Option {
	return func(m *Matcher) {
		m.disabled = disabled
	}
}
