package config

import (
	"flag"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

// DefaultExcludedFolders are folder names skipped out of the box: build
// output, dependency caches, and editor state contribute noise, not content.
var DefaultExcludedFolders = []string{
	"node_modules", "__pycache__", "venv", "env",
	"dist", "build", "target", "obj", "out", "tmp",
}

// Config holds all application configuration settings
type Config struct {
	// Directory settings
	RootDir    string
	OutputFile string

	// Output format
	Format string

	// Filtering settings
	Include           string
	Exclude           string
	ExcludeFolders    string
	NoDefaultExcludes bool
	IgnoreHidden      bool
	IgnoreGit         bool
	CustomIgnore      string
	MaxFileSizeKB     int64

	// Logging settings
	Verbose     bool
	Quiet       bool
	LogLevel    string
	NoColor     bool
	UseColors   bool
	ShowSkipped bool

	// Version info
	ShowVersion bool
	Version     string
}

// New creates a new Config with values from command-line flags
func New() *Config {
	c := &Config{
		Version: "1.0.0",
	}

	flag.StringVar(&c.RootDir, "dir", ".", "The root directory to scan")
	flag.StringVar(&c.OutputFile, "output", "", "Output to file instead of stdout")
	flag.StringVar(&c.Format, "format", "markdown", "Output format (markdown, json, plain)")
	flag.StringVar(&c.Include, "include", "", "Only include files matching these glob patterns (comma-separated)")
	flag.StringVar(&c.Exclude, "exclude", "", "Exclude files matching these glob patterns (comma-separated)")
	flag.StringVar(&c.ExcludeFolders, "exclude-folders", "", "Exclude folders by name or glob (comma-separated)")
	flag.BoolVar(&c.NoDefaultExcludes, "no-default-excludes", false, "Do not exclude the built-in folder list (node_modules, dist, ...)")
	flag.BoolVar(&c.IgnoreHidden, "hidden", true, "Ignore hidden files/directories (starting with '.')")
	flag.BoolVar(&c.IgnoreGit, "git", true, "Ignore .git directories")
	flag.StringVar(&c.CustomIgnore, "ignore", "", "Custom ignore rules (comma-separated, gitignore syntax)")
	flag.Int64Var(&c.MaxFileSizeKB, "max-size", 1024, "Max file size to inline in KB (0 = no limit)")
	flag.BoolVar(&c.Verbose, "verbose", false, "Enable verbose logging (DEBUG, WARN, ERROR)")
	flag.BoolVar(&c.Quiet, "quiet", false, "Suppress INFO messages (only show WARN, ERROR)")
	flag.StringVar(&c.LogLevel, "log-level", "INFO", "Set the logging level (DEBUG, INFO, WARN, ERROR)")
	flag.BoolVar(&c.NoColor, "no-color", false, "Disable color output")
	flag.BoolVar(&c.ShowSkipped, "show-skipped", false, "Show a list of skipped files/directories and reasons at the end")
	flag.BoolVar(&c.ShowVersion, "version", false, "Show version information")

	flag.Parse()

	// Determine if colors should be used
	c.UseColors = !c.NoColor && isatty.IsTerminal(os.Stderr.Fd())

	return c
}

// SplitList splits a comma-separated flag value into trimmed, non-empty
// items.
func SplitList(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// ExcludedFolderNames merges the built-in folder list with the user's
// exclude-folders flag.
func (c *Config) ExcludedFolderNames() []string {
	names := SplitList(c.ExcludeFolders)
	if !c.NoDefaultExcludes {
		names = append(names, DefaultExcludedFolders...)
	}
	return names
}
