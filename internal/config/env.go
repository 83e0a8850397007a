package config

import (
	"os"
	"strings"
)

// Environment variables recognized at load time. godotenv populates the
// process environment from a .env file before these are read, so both real
// environment and .env entries land here.
const (
	EnvTargets     = "TODOVIEW_TARGETS"
	EnvExclude     = "TODOVIEW_EXCLUDE"
	EnvMaxFileSize = "TODOVIEW_MAX_FILE_SIZE"
)

// applyEnvOverrides layers TODOVIEW_* variables over the loaded config.
// Targets and the file size cap replace their configured values; exclusion
// patterns append.
func applyEnvOverrides(cfg *Config) {
	if raw, ok := os.LookupEnv(EnvTargets); ok {
		if ts := splitList(raw); len(ts) > 0 {
			cfg.Targets = ts
		}
	}
	if raw, ok := os.LookupEnv(EnvExclude); ok {
		if ps := splitList(raw); len(ps) > 0 {
			cfg.Exclude = DeduplicatePatterns(append(cfg.Exclude, ps...))
		}
	}
	if raw, ok := os.LookupEnv(EnvMaxFileSize); ok {
		if sz, err := parseSize(raw); err == nil && sz > 0 {
			cfg.Scan.MaxFileSize = sz
		}
	}
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
