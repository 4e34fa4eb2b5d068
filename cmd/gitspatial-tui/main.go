package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Elpulgo/gitspatial-tui/internal/cli"
)

// Build-time variables injected via ldflags by goreleaser.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	env := cli.DefaultEnv(cli.BuildInfo{Version: version, Commit: commit, Date: date})
	err := cli.NewRootCmd(env).ExecuteContext(ctx)

	code := cli.ExitCode(err)
	if _, silent := err.(*cli.ExitError); err != nil && !silent {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	stop()
	os.Exit(code)
}
