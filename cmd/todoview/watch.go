package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/standardbeagle/todoview/internal/debug"
	"github.com/standardbeagle/todoview/internal/watch"
)

func watchCommand(c *cli.Context) error {
	if !validFormat(c.String("format")) {
		return cli.Exit(fmt.Sprintf("unknown format %q (want text, json, or compact)", c.String("format")), 2)
	}

	eng, err := newEngine(c)
	if err != nil {
		return err
	}
	formatter := newFormatter(c)
	raw := c.Args().First()

	runPass := func() {
		ms, err := eng.Search(raw)
		if err != nil {
			fmt.Fprintf(os.Stderr, "scan failed: %v\n", err)
			return
		}
		fmt.Print(formatter.Format(ms))
	}
	runPass()

	w, err := watch.New(watch.Options{
		Root:     cfg.Project.Root,
		Excluded: cfg.Exclude,
		Debounce: time.Duration(cfg.Watch.DebounceMs) * time.Millisecond,
	})
	if err != nil {
		return cli.Exit(fmt.Sprintf("watch failed: %v", err), 1)
	}
	w.SetOnRescan(func(changed []string) {
		debug.LogWatch("rescan after changes in %d paths\n", len(changed))
		fmt.Println()
		runPass()
	})

	if err := w.Start(); err != nil {
		return cli.Exit(fmt.Sprintf("watch failed: %v", err), 1)
	}
	fmt.Fprintf(os.Stderr, "watching %s for changes (Ctrl-C to stop)\n", cfg.Project.Root)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	debug.LogWatch("received signal %v, stopping\n", sig)

	return w.Stop()
}
