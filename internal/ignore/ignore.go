package ignore

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jmallek/compendium/internal/utils"

	gitignore "github.com/denormal/go-gitignore"
)

// New creates a Matcher for the given root directory, loading every ignore
// file found beneath it.
func New(rootDir string, opts ...Option) (*Matcher, error) {
	absRootDir, err := filepath.Abs(rootDir)
	if err != nil {
		return nil, fmt.Errorf("ignore: failed to get absolute path for rootDir '%s': %w", rootDir, err)
	}

	matcher := &Matcher{
		rootDir:      absRootDir,
		ignoreHidden: true,
		ignoreGit:    true,
		logger:       &utils.NoopLogger{},
	}

	for _, opt := range opts {
		opt(matcher)
	}

	if err := matcher.init(); err != nil {
		return nil, err
	}

	return matcher, nil
}

// NewFromConfig creates a Matcher from a Config struct
func NewFromConfig(cfg Config) (*Matcher, error) {
	options := []Option{
		WithHiddenIgnore(cfg.IgnoreHidden),
		WithGitIgnore(cfg.IgnoreGit),
		WithDisabled(cfg.Disabled),
	}
	if len(cfg.CustomRules) > 0 {
		options = append(options, WithCustomRules(cfg.CustomRules))
	}
	if cfg.Logger != nil {
		options = append(options, WithLogger(cfg.Logger))
	}
	return New(cfg.RootDir, options...)
}

// init loads the repository ignore files and compiles any custom rules.
func (m *Matcher) init() error {
	m.logger.Debug("ignore.New: Initializing for root: %s", m.rootDir)
	m.logger.Debug("ignore.New: ignoreHidden=%v, ignoreGit=%v, customRules=%d",
		m.ignoreHidden, m.ignoreGit, len(m.customRules))

	if m.disabled {
		m.logger.Debug("ignore.New: Matcher is disabled, skipping rule loading")
		return nil
	}

	// Repository mode loads ignore files at every directory level, so
	// deeper rules naturally layer over shallower ones.
	repoMatcher, repoErr := gitignore.NewRepository(m.rootDir)
	if repoErr != nil {
		m.logger.Warn("ignore.New: Error loading repository ignores from '%s': %v", m.rootDir, repoErr)
		if repoMatcher == nil {
			m.logger.Warn("ignore.New: No ignore files loaded for '%s'. Continuing without repo rules.", m.rootDir)
			repoMatcher = gitignore.New(strings.NewReader(""), m.rootDir, nil)
		} else {
			return fmt.Errorf("ignore: failed to load repository ignores: %w", repoErr)
		}
	}
	m.repoIgnore = repoMatcher

	if len(m.customRules) > 0 {
		rules := strings.Join(m.customRules, "\n")
		m.customIgnore = gitignore.New(strings.NewReader(rules), m.rootDir, nil)
		m.logger.Debug("ignore.New: Compiled %d custom rules", len(m.customRules))
	}

	return nil
}
