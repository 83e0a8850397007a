package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/standardbeagle/todoview/internal/debug"
	"github.com/standardbeagle/todoview/internal/mcp"
)

func mcpCommand(c *cli.Context) error {
	// Suppress debug output; stdout belongs to the protocol stream
	debug.SetMCPMode(true)

	eng, err := newEngine(c)
	if err != nil {
		return err
	}
	server := mcp.NewServer(eng, cfg.Project.Root)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		errChan <- server.Start(ctx)
	}()

	select {
	case err := <-errChan:
		return err
	case sig := <-sigChan:
		debug.LogMCP("received signal %v, shutting down\n", sig)
		cancel()

		shutdownTimer := time.NewTimer(2 * time.Second)
		defer shutdownTimer.Stop()
		select {
		case err := <-errChan:
			return err
		case <-shutdownTimer.C:
			// Closing stdin breaks the transport read loop
			os.Stdin.Close()

			forceTimer := time.NewTimer(500 * time.Millisecond)
			defer forceTimer.Stop()
			select {
			case err := <-errChan:
				return err
			case <-forceTimer.C:
				return nil
			}
		}
	}
}
