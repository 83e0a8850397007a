package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"

	"github.com/standardbeagle/todoview/internal/display"
	"github.com/standardbeagle/todoview/internal/engine"
	"github.com/standardbeagle/todoview/internal/fsbuffers"
	"github.com/standardbeagle/todoview/internal/host"
	"github.com/standardbeagle/todoview/internal/query"
	"github.com/standardbeagle/todoview/internal/types"
)

func formatFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Usage:   "Output format: text, json, or compact",
		},
		&cli.BoolFlag{
			Name:  "no-ellipsis",
			Usage: "Print long messages in full instead of trimming them",
		},
		&cli.BoolFlag{
			Name:  "stats",
			Usage: "Append a scan summary to text output",
		},
	}
}

func navFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:  "from",
			Usage: "Cursor position to move from (0-based, wraps modulo the result count)",
		},
		&cli.BoolFlag{
			Name:  "no-ellipsis",
			Usage: "Print long messages in full instead of trimming them",
		},
	}
}

// newEngine wires a filesystem host into an engine using the loaded config.
// Open buffers come from the positional arguments after the query.
func newEngine(c *cli.Context) (*engine.Engine, error) {
	h, err := fsbuffers.New(fsbuffers.Options{
		Root:           cfg.Project.Root,
		Active:         absPath(c.String("active")),
		Open:           absAll(c.Args().Tail()),
		Excluded:       cfg.Exclude,
		MaxFileSize:    cfg.Scan.MaxFileSize,
		MaxFileCount:   cfg.Scan.MaxFileCount,
		FollowSymlinks: cfg.Scan.FollowSymlinks,
	})
	if err != nil {
		return nil, err
	}

	return engine.New(host.StaticSettings{
		Targets:  cfg.Targets,
		Excluded: cfg.Exclude,
		Root:     cfg.Project.Root,
	}, h, h), nil
}

func newFormatter(c *cli.Context) *display.Formatter {
	format := c.String("format")
	if format == "" {
		format = cfg.Display.Format
	}
	return display.NewFormatter(display.Options{
		Format:    format,
		Ellipsis:  cfg.Display.MessageEllipsis && !c.Bool("no-ellipsis"),
		ShowStats: c.Bool("stats"),
		Root:      cfg.Project.Root,
	})
}

func validFormat(format string) bool {
	switch format {
	case "", "text", "json", "compact":
		return true
	}
	return false
}

// absPath converts to absolute so paths compare against buffer IDs.
func absPath(p string) string {
	if p == "" {
		return ""
	}
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

func absAll(paths []string) []string {
	if len(paths) == 0 {
		return nil
	}
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = absPath(p)
	}
	return out
}

// hintUnknownTypes warns on stderr when a type token names no configured
// keyword. Advisory only; the pass already ran with the token as typed.
func hintUnknownTypes(q types.Query) {
	for _, tok := range query.UnknownTypes(q, cfg.Targets) {
		if hint, ok := query.Suggest(tok, cfg.Targets); ok {
			fmt.Fprintf(os.Stderr, "note: no target %q configured, did you mean %q?\n", tok, hint)
		} else {
			fmt.Fprintf(os.Stderr, "note: no target %q configured\n", tok)
		}
	}
}

func searchCommand(c *cli.Context) error {
	if !validFormat(c.String("format")) {
		return cli.Exit(fmt.Sprintf("unknown format %q (want text, json, or compact)", c.String("format")), 2)
	}

	eng, err := newEngine(c)
	if err != nil {
		return err
	}
	ms, err := eng.Search(c.Args().First())
	if err != nil {
		return cli.Exit(fmt.Sprintf("scan failed: %v", err), 1)
	}

	hintUnknownTypes(ms.Query)
	fmt.Print(newFormatter(c).Format(ms))
	return nil
}

func nextCommand(c *cli.Context) error {
	return navCommand(c, (*engine.Engine).Next)
}

func prevCommand(c *cli.Context) error {
	return navCommand(c, (*engine.Engine).Previous)
}

func currentCommand(c *cli.Context) error {
	return navCommand(c, (*engine.Engine).Current)
}

// navCommand runs a fresh pass, positions the cursor, applies one move,
// and prints the result. Cursor state does not persist across processes;
// --from supplies the position to move from.
func navCommand(c *cli.Context, move func(*engine.Engine) (types.Occurrence, bool)) error {
	eng, err := newEngine(c)
	if err != nil {
		return err
	}
	ms, err := eng.Search(c.Args().First())
	if err != nil {
		return cli.Exit(fmt.Sprintf("scan failed: %v", err), 1)
	}
	hintUnknownTypes(ms.Query)

	if from := c.Int("from"); from != 0 {
		eng.JumpTo(from)
	}

	occ, ok := move(eng)
	if !ok {
		fmt.Println("no matches found")
		return nil
	}

	index, total, _ := eng.Position()
	fmt.Println(newFormatter(c).FormatJump(occ, index, total))
	return nil
}
