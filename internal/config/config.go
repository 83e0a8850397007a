package config

import (
	"os"
	"path/filepath"

	"github.com/standardbeagle/todoview/internal/debug"
	"github.com/standardbeagle/todoview/internal/types"
)

// DefaultWatchDebounceMs is the delay between a file change event and the
// rescan it triggers. Rationale: editors often write a file several times in
// quick succession (swap, truncate, rename); 300ms folds those into one pass.
const DefaultWatchDebounceMs = 300

// DefaultTargets are the annotation keywords recognized when no configuration
// overrides them. Matching is case-sensitive.
var DefaultTargets = []string{"TODO", "NOTE", "FIXME", "XXX", "HACK"}

// DefaultExclusions returns the stock exclusion patterns. A pattern containing
// a star is treated as a glob, anything else as a path substring.
func DefaultExclusions() []string {
	return []string{
		"*.min.js",
		"node_modules",
		".git",
		"vendor",
		"dist",
		"build",
	}
}

type Config struct {
	Version int
	Project Project
	Targets []string
	Exclude []string
	Scan    Scan
	Watch   Watch
	Display Display
}

type Project struct {
	Root string
	Name string
}

type Scan struct {
	MaxFileSize    int64
	MaxFileCount   int
	FollowSymlinks bool
}

type Watch struct {
	DebounceMs int // Debounce time for file change events
}

type Display struct {
	Format          string // "text" or "json"
	MessageEllipsis bool   // Trim long messages with a trailing " ..."
}

func defaultConfig(root string) *Config {
	return &Config{
		Version: 1,
		Project: Project{Root: root},
		Targets: append([]string(nil), DefaultTargets...),
		Exclude: DefaultExclusions(),
		Scan: Scan{
			MaxFileSize:    types.DefaultMaxFileSize,
			MaxFileCount:   types.DefaultMaxBufferCount,
			FollowSymlinks: false,
		},
		Watch: Watch{
			DebounceMs: DefaultWatchDebounceMs,
		},
		Display: Display{
			Format:          "text",
			MessageEllipsis: true,
		},
	}
}

// Load resolves the effective configuration for the current directory.
func Load() (*Config, error) {
	return LoadWithRoot("")
}

// LoadWithRoot resolves configuration for rootDir, layering the global
// ~/.todoview.kdl under the project file and applying TODOVIEW_* environment
// overrides last.
func LoadWithRoot(rootDir string) (*Config, error) {
	searchDir := "."
	if rootDir != "" {
		searchDir = rootDir
	}

	// Step 1: global base config from ~/.todoview.kdl (if exists)
	var baseConfig *Config
	if homeDir, err := os.UserHomeDir(); err == nil {
		if globalCfg, err := LoadKDL(homeDir); err == nil && globalCfg != nil {
			baseConfig = globalCfg
		}
	}

	// Step 2: project-specific config from the search directory
	var projectConfig *Config
	if kdlCfg, err := LoadKDL(searchDir); err == nil && kdlCfg != nil {
		projectConfig = kdlCfg
	} else if err != nil {
		return nil, err
	}

	// Step 3: merge (project overrides base, but base exclusions are kept)
	var cfg *Config
	switch {
	case baseConfig != nil && projectConfig != nil:
		cfg = mergeConfigs(baseConfig, projectConfig)
	case projectConfig != nil:
		cfg = projectConfig
	case baseConfig != nil:
		root, err := filepath.Abs(searchDir)
		if err != nil {
			root = searchDir
		}
		baseConfig.Project.Root = root
		cfg = baseConfig
	default:
		root, err := filepath.Abs(searchDir)
		if err != nil {
			root = searchDir
		}
		cfg = defaultConfig(root)
		cfg.EnrichExclusionsWithBuildArtifacts()
	}

	applyEnvOverrides(cfg)
	debug.LogConfig("effective config: root=%s targets=%v exclusions=%d\n",
		cfg.Project.Root, cfg.Targets, len(cfg.Exclude))
	return cfg, nil
}

// mergeConfigs merges a base config with a project config.
// Project settings win wholesale; exclusion lists are the union of both,
// base patterns first, deduplicated.
func mergeConfigs(base, project *Config) *Config {
	merged := *project

	if len(base.Exclude) > 0 {
		merged.Exclude = DeduplicatePatterns(append(append([]string(nil), base.Exclude...), project.Exclude...))
	}

	return &merged
}

// EnrichExclusionsWithBuildArtifacts detects build output directories from
// language project files under the root and adds them to the exclusion list.
func (c *Config) EnrichExclusionsWithBuildArtifacts() {
	if c.Project.Root == "" {
		return
	}

	detected := NewArtifactDetector(c.Project.Root).Detect()
	if len(detected) > 0 {
		c.Exclude = DeduplicatePatterns(append(c.Exclude, detected...))
	}
}
