package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// StarterKDL is the commented template written by `todoview config init`.
const StarterKDL = `// todoview configuration
// Annotation keywords are matched case-sensitively.
targets "TODO" "NOTE" "FIXME" "XXX" "HACK"

// A pattern containing a star is matched as a glob against the path;
// anything else excludes every path that contains it as a substring.
exclude "*.min.js" "node_modules" ".git" "vendor" "dist" "build"

// result-format "text"
// message-ellipsis true
// max-file-size "10MB"

// watch {
//     debounce-ms 300
// }
`

// WriteStarter creates a starter .todoview.kdl in dir and returns its path.
// Refuses to overwrite an existing file.
func WriteStarter(dir string) (string, error) {
	path := filepath.Join(dir, FileName)
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("%s already exists", path)
	}
	if err := os.WriteFile(path, []byte(StarterKDL), 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %v", path, err)
	}
	return path, nil
}

// Render produces the effective configuration as a KDL document. The output
// parses back through parseKDL, which `todoview config show` relies on to be
// a faithful dump.
func (c *Config) Render() string {
	var b strings.Builder

	b.WriteString("project {\n")
	fmt.Fprintf(&b, "    root %q\n", c.Project.Root)
	if c.Project.Name != "" {
		fmt.Fprintf(&b, "    name %q\n", c.Project.Name)
	}
	b.WriteString("}\n\n")

	b.WriteString("targets")
	for _, t := range c.Targets {
		fmt.Fprintf(&b, " %q", t)
	}
	b.WriteString("\n\n")

	b.WriteString("exclude {\n")
	for _, p := range c.Exclude {
		fmt.Fprintf(&b, "    %q\n", p)
	}
	b.WriteString("}\n\n")

	fmt.Fprintf(&b, "result-format %q\n", c.Display.Format)
	fmt.Fprintf(&b, "message-ellipsis %v\n", c.Display.MessageEllipsis)
	fmt.Fprintf(&b, "max-file-size %d\n", c.Scan.MaxFileSize)
	fmt.Fprintf(&b, "max-file-count %d\n", c.Scan.MaxFileCount)
	fmt.Fprintf(&b, "follow-symlinks %v\n", c.Scan.FollowSymlinks)

	fmt.Fprintf(&b, "\nwatch {\n    debounce-ms %d\n}\n", c.Watch.DebounceMs)

	return b.String()
}
