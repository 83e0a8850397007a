// Build artifact detection from language-specific project files.
// Generated output never carries annotations worth surfacing, so directories
// named in package.json, tsconfig.json, Cargo.toml or pyproject.toml join the
// exclusion set automatically.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// ArtifactDetector finds language-specific build output directories under a
// project root.
type ArtifactDetector struct {
	root string
}

func NewArtifactDetector(root string) *ArtifactDetector {
	return &ArtifactDetector{root: root}
}

// Detect scans for build configuration files and returns glob patterns to
// exclude (e.g. "**/dist/**", "**/target/**").
func (d *ArtifactDetector) Detect() []string {
	var patterns []string

	patterns = append(patterns, d.detectJavaScript()...)
	patterns = append(patterns, d.detectRust()...)
	patterns = append(patterns, d.detectPython()...)

	return DeduplicatePatterns(patterns)
}

// detectJavaScript inspects package.json, tsconfig.json and Next.js markers.
func (d *ArtifactDetector) detectJavaScript() []string {
	var patterns []string

	if data, err := os.ReadFile(filepath.Join(d.root, "package.json")); err == nil {
		var pkg map[string]interface{}
		if json.Unmarshal(data, &pkg) == nil {
			// Build scripts often name the output directory inline.
			if scripts, ok := pkg["scripts"].(map[string]interface{}); ok {
				for _, script := range scripts {
					scriptStr, ok := script.(string)
					if !ok {
						continue
					}
					parts := strings.Fields(scriptStr)
					for i, part := range parts {
						if (part == "--outDir" || part == "-outDir") && i+1 < len(parts) {
							if outDir := strings.Trim(parts[i+1], "\"'"); outDir != "" {
								patterns = append(patterns, dirPattern(outDir))
							}
						}
					}
				}
			}
			if buildConfig, ok := pkg["build"].(map[string]interface{}); ok {
				if outDir, ok := buildConfig["outDir"].(string); ok {
					patterns = append(patterns, dirPattern(outDir))
				}
			}
		}
	}

	if data, err := os.ReadFile(filepath.Join(d.root, "tsconfig.json")); err == nil {
		var tsconfig map[string]interface{}
		if json.Unmarshal(data, &tsconfig) == nil {
			if compilerOptions, ok := tsconfig["compilerOptions"].(map[string]interface{}); ok {
				if outDir, ok := compilerOptions["outDir"].(string); ok {
					patterns = append(patterns, dirPattern(outDir))
				}
			}
		}
	}

	for _, marker := range []string{"next.config.js", "next.config.mjs", "next.config.ts"} {
		if _, err := os.Stat(filepath.Join(d.root, marker)); err == nil {
			patterns = append(patterns, dirPattern(".next"))
			break
		}
	}

	return patterns
}

// detectRust inspects Cargo.toml. Rust always writes to target/ unless a
// profile overrides it.
func (d *ArtifactDetector) detectRust() []string {
	data, err := os.ReadFile(filepath.Join(d.root, "Cargo.toml"))
	if err != nil {
		return nil
	}

	patterns := []string{dirPattern("target")}

	var cargo map[string]interface{}
	if toml.Unmarshal(data, &cargo) == nil {
		if profile, ok := cargo["profile"].(map[string]interface{}); ok {
			if release, ok := profile["release"].(map[string]interface{}); ok {
				if targetDir, ok := release["target-dir"].(string); ok {
					patterns = append(patterns, dirPattern(targetDir))
				}
			}
		}
	}

	return patterns
}

// detectPython inspects pyproject.toml for Poetry build targets.
func (d *ArtifactDetector) detectPython() []string {
	data, err := os.ReadFile(filepath.Join(d.root, "pyproject.toml"))
	if err != nil {
		return nil
	}

	patterns := []string{dirPattern("__pycache__")}

	var pyproject map[string]interface{}
	if toml.Unmarshal(data, &pyproject) == nil {
		if tool, ok := pyproject["tool"].(map[string]interface{}); ok {
			if poetry, ok := tool["poetry"].(map[string]interface{}); ok {
				if build, ok := poetry["build"].(map[string]interface{}); ok {
					if targetDir, ok := build["target-dir"].(string); ok {
						patterns = append(patterns, dirPattern(targetDir))
					}
				}
			}
		}
	}

	return patterns
}

func dirPattern(dir string) string {
	return "**/" + strings.Trim(dir, "/") + "/**"
}

// DeduplicatePatterns removes duplicate exclusion patterns, keeping first
// occurrences in order.
func DeduplicatePatterns(patterns []string) []string {
	seen := make(map[string]bool)
	result := make([]string, 0, len(patterns))

	for _, pattern := range patterns {
		if !seen[pattern] {
			seen[pattern] = true
			result = append(result, pattern)
		}
	}

	return result
}
