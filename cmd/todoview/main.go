package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/standardbeagle/todoview/internal/config"
	"github.com/standardbeagle/todoview/internal/debug"
	"github.com/standardbeagle/todoview/internal/version"
)

var (
	// Version is surfaced through the --version flag
	Version = version.Version

	// cfg is loaded once in the Before hook and shared by all commands
	cfg *config.Config
)

// loadConfigWithOverrides loads configuration and applies CLI flag overrides
func loadConfigWithOverrides(c *cli.Context) (*config.Config, error) {
	loaded, err := config.LoadWithRoot(c.String("root"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if targets := splitAll(c.StringSlice("targets")); len(targets) > 0 {
		loaded.Targets = targets
	}
	if excludes := splitAll(c.StringSlice("exclude")); len(excludes) > 0 {
		loaded.Exclude = config.DeduplicatePatterns(append(loaded.Exclude, excludes...))
	}

	return loaded, nil
}

// splitAll flattens repeated flag values and comma-separated lists
func splitAll(values []string) []string {
	var out []string
	for _, v := range values {
		for _, tok := range strings.Split(v, ",") {
			if tok = strings.TrimSpace(tok); tok != "" {
				out = append(out, tok)
			}
		}
	}
	return out
}

func main() {
	// A local .env can carry TODOVIEW_* overrides
	_ = godotenv.Load()

	app := &cli.App{
		Name:                   "todoview",
		Usage:                  "Find and navigate annotation comments (TODO, NOTE, FIXME, ...)",
		Version:                Version,
		UseShortOptionHandling: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "root",
				Aliases: []string{"r"},
				Usage:   "Project root directory to scan (overrides config)",
			},
			&cli.StringFlag{
				Name:    "active",
				Aliases: []string{"a"},
				Usage:   "Path treated as the active buffer for 'f' scope queries",
			},
			&cli.StringSliceFlag{
				Name:    "targets",
				Aliases: []string{"t"},
				Usage:   "Annotation keywords to recognize, replacing the configured set (e.g. --targets TODO,WIP)",
			},
			&cli.StringSliceFlag{
				Name:    "exclude",
				Aliases: []string{"e"},
				Usage:   "Extra exclusion patterns appended to the configured set",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "search",
				Aliases:   []string{"s"},
				Usage:     "Scan for annotations matching a scope:types:assignees query",
				ArgsUsage: "[query] [open buffers...]",
				Flags:     formatFlags(),
				Action:    searchCommand,
			},
			{
				Name:      "next",
				Aliases:   []string{"n"},
				Usage:     "Show the match after the cursor position, wrapping at the end",
				ArgsUsage: "[query] [open buffers...]",
				Flags:     navFlags(),
				Action:    nextCommand,
			},
			{
				Name:      "prev",
				Aliases:   []string{"p"},
				Usage:     "Show the match before the cursor position, wrapping at the start",
				ArgsUsage: "[query] [open buffers...]",
				Flags:     navFlags(),
				Action:    prevCommand,
			},
			{
				Name:      "current",
				Aliases:   []string{"c"},
				Usage:     "Show the match at the cursor position",
				ArgsUsage: "[query] [open buffers...]",
				Flags:     navFlags(),
				Action:    currentCommand,
			},
			{
				Name:      "watch",
				Aliases:   []string{"w"},
				Usage:     "Rescan and reprint matches whenever project files change",
				ArgsUsage: "[query]",
				Flags:     formatFlags(),
				Action:    watchCommand,
			},
			{
				Name:   "mcp",
				Usage:  "Serve queries and navigation over the Model Context Protocol on stdio",
				Action: mcpCommand,
			},
			{
				Name:  "config",
				Usage: "Manage configuration",
				Subcommands: []*cli.Command{
					{
						Name:  "init",
						Usage: "Write a starter " + config.FileName + " in the current directory",
						Flags: []cli.Flag{
							&cli.BoolFlag{
								Name:  "force",
								Usage: "Overwrite an existing config file",
							},
						},
						Action: configInitCommand,
					},
					{
						Name:  "show",
						Usage: "Print the effective configuration after merging and overrides",
						Flags: []cli.Flag{
							&cli.StringFlag{
								Name:  "format",
								Usage: "Output format: kdl or json",
								Value: "kdl",
							},
						},
						Action: configShowCommand,
					},
				},
			},
			{
				Name:   "version",
				Usage:  "Print detailed version information",
				Action: versionCommand,
			},
		},
		Before: func(c *cli.Context) error {
			command := c.Args().Get(0)
			if c.NArg() == 0 || command == "help" || command == "version" {
				return nil
			}
			// config init must work even when the existing file is broken
			if command == "config" && c.Args().Get(1) == "init" {
				return nil
			}
			if command == "mcp" {
				// Debug chatter on stdout would corrupt the protocol stream
				debug.SetMCPMode(true)
			}

			loaded, err := loadConfigWithOverrides(c)
			if err != nil {
				return err
			}
			cfg = loaded
			return nil
		},
		Action: func(c *cli.Context) error {
			// A bare query argument runs a search
			if c.NArg() > 0 {
				return searchCommand(c)
			}
			return cli.ShowAppHelp(c)
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

func configInitCommand(c *cli.Context) error {
	if c.Bool("force") {
		if err := os.WriteFile(config.FileName, []byte(config.StarterKDL), 0o644); err != nil {
			return fmt.Errorf("failed to write config file: %v", err)
		}
		fmt.Printf("Configuration file created: %s\n", config.FileName)
		return nil
	}

	path, err := config.WriteStarter(".")
	if err != nil {
		return fmt.Errorf("%v (use --force to overwrite)", err)
	}

	fmt.Printf("Configuration file created: %s\n", path)
	fmt.Printf("Edit the file to customize settings for your project.\n")
	return nil
}

func configShowCommand(c *cli.Context) error {
	switch c.String("format") {
	case "json":
		buf, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode config: %v", err)
		}
		fmt.Println(string(buf))
	case "kdl":
		fmt.Print(cfg.Render())
	default:
		return cli.Exit(fmt.Sprintf("unknown format %q (want kdl or json)", c.String("format")), 2)
	}
	return nil
}

func versionCommand(c *cli.Context) error {
	fmt.Println(version.FullInfo())
	fmt.Printf("Build ID: %s\n", version.BuildID())
	return nil
}
