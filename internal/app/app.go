// Package app wires configuration, filtering, traversal, loading and
// serialization into one run.
package app

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/jmallek/compendium/internal/config"
	"github.com/jmallek/compendium/internal/content"
	"github.com/jmallek/compendium/internal/ignore"
	"github.com/jmallek/compendium/internal/logger"
	"github.com/jmallek/compendium/internal/pattern"
	"github.com/jmallek/compendium/internal/render"
	"github.com/jmallek/compendium/internal/summary"
	"github.com/jmallek/compendium/internal/walker"
	"github.com/fatih/color"
)

// App encapsulates the main application functionality
type App struct {
	cfg    *config.Config
	log    *logger.Logger
	Output io.Writer
}

// New creates a new App instance
func New(cfg *config.Config) *App {
	// Configure color globally
	color.NoColor = !cfg.UseColors

	var output io.Writer = os.Stdout
	if cfg.OutputFile != "" {
		file, err := os.Create(cfg.OutputFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: Failed to create output file: %v\n", err)
			os.Exit(1)
		}
		// Note: file will be closed by main function
		output = file
	}

	log := logger.New(os.Stderr, cfg.Verbose, cfg.UseColors)
	if cfg.LogLevel != "" {
		log.SetLevel(cfg.LogLevel)
	} else if cfg.Quiet {
		log.WithLevel(logger.LevelWarn)
	}

	return &App{
		cfg:    cfg,
		log:    log,
		Output: output,
	}
}

// Run executes the main application logic
func (a *App) Run() {
	startTime := time.Now()

	if a.cfg.ShowVersion {
		fmt.Printf("compendium version %s\n", a.cfg.Version)
		os.Exit(0)
	}

	infoLog := func(format string, args ...interface{}) {
		if !a.cfg.Quiet {
			a.log.Info(format, args...)
		}
	}

	// --- Output format, validated before touching the filesystem ---
	format, err := render.ParseFormat(a.cfg.Format)
	if err != nil {
		a.log.Error("%v", err)
		os.Exit(1)
	}

	// --- Directory validation ---
	absRootDir, err := filepath.Abs(a.cfg.RootDir)
	if err != nil {
		a.log.Error("Invalid root directory path '%s': %v", a.cfg.RootDir, err)
		os.Exit(1)
	}
	dirInfo, err := os.Stat(absRootDir)
	if err != nil {
		if os.IsNotExist(err) {
			a.log.Error("Root directory '%s' not found.", absRootDir)
		} else {
			a.log.Error("Could not access root directory '%s': %v", absRootDir, err)
		}
		os.Exit(1)
	}
	if !dirInfo.IsDir() {
		a.log.Error("Specified path '%s' is not a directory.", absRootDir)
		os.Exit(1)
	}

	// --- Compile filter patterns; malformed patterns are fatal here ---
	filter, err := a.buildFilter()
	if err != nil {
		a.log.Error("%v", err)
		os.Exit(1)
	}

	// --- Initialize ignore matcher ---
	ignoreOptions := []ignore.Option{
		ignore.WithLogger(a.log),
		ignore.WithHiddenIgnore(a.cfg.IgnoreHidden),
		ignore.WithGitIgnore(a.cfg.IgnoreGit),
	}
	if rules := config.SplitList(a.cfg.CustomIgnore); len(rules) > 0 {
		ignoreOptions = append(ignoreOptions, ignore.WithCustomRules(rules))
		infoLog("Using custom ignore rules: %v", rules)
	}
	matcher, err := ignore.New(absRootDir, ignoreOptions...)
	if err != nil {
		a.log.Error("Error initializing ignore rules: %v", err)
		os.Exit(1)
	}

	if a.cfg.IgnoreHidden {
		infoLog("Ignoring hidden files/directories (starting with '.').")
	} else {
		infoLog("Including hidden files/directories.")
	}

	// --- Traverse ---
	infoLog("Scanning directory: %s", absRootDir)
	entries, skippedItems, err := walker.Walk(absRootDir, matcher, filter, walker.WithLogger(a.log))
	if err != nil {
		a.log.Error("Critical error during directory walk: %v", err)
		os.Exit(1)
	}

	// --- Load + serialize ---
	loaderOpts := []content.Option{content.WithLogger(a.log)}
	loaderOpts = append(loaderOpts, content.WithMaxFileSize(a.cfg.MaxFileSizeKB*1024))
	loader := content.NewLoader(absRootDir, loaderOpts...)

	fileCount := 0
	loadFn := func(e walker.Entry) content.Content {
		fileCount++
		return loader.Load(e.RelPath)
	}

	var warnings []walker.SkippedItem
	for _, item := range skippedItems {
		if item.Reason.Warning() {
			warnings = append(warnings, item)
		}
	}

	serializer := render.New(format)
	if err := serializer.Serialize(a.Output, filepath.Base(absRootDir), entries, loadFn, warnings); err != nil {
		a.log.Error("Failed to write output: %v", err)
		os.Exit(1)
	}

	// --- Show results summary ---
	summary.DisplayWarnings(a.log, skippedItems)
	summary.DisplayResults(a.log, fileCount, time.Since(startTime), a.cfg.Quiet)
	if a.cfg.ShowSkipped {
		summary.DisplaySkippedItems(a.log, skippedItems, os.Stderr, a.cfg.Quiet)
	}
}

// buildFilter compiles the include/exclude/folder pattern sets from the
// configuration.
func (a *App) buildFilter() (walker.Filter, error) {
	include, err := pattern.Compile(config.SplitList(a.cfg.Include))
	if err != nil {
		return walker.Filter{}, fmt.Errorf("invalid -include pattern: %w", err)
	}
	exclude, err := pattern.Compile(config.SplitList(a.cfg.Exclude))
	if err != nil {
		return walker.Filter{}, fmt.Errorf("invalid -exclude pattern: %w", err)
	}
	folders, err := pattern.Compile(a.cfg.ExcludedFolderNames())
	if err != nil {
		return walker.Filter{}, fmt.Errorf("invalid -exclude-folders pattern: %w", err)
	}
	return walker.Filter{
		IgnoreHidden:   a.cfg.IgnoreHidden,
		ExcludeFolders: folders,
		Exclude:        exclude,
		Include:        include,
	}, nil
}
