// Command task-cli manages a task list stored in a local file.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/tiwariParth/task-cli/internal/cli"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = ""

func main() {
	// Create context that cancels on interrupt
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if version != "" {
		cli.Version = version
	}

	code := cli.NewDispatcher(cli.FileStoreFactory).Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	cancel()
	os.Exit(code)
}
