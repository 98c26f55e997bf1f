package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/arthur-debert/vimdot/cmd/vimdot"
)

func main() {
	// An interrupt cancels the run; the installer stops between entries and
	// the partial summary is still printed.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := vimdot.Execute(ctx)
	stop()
	os.Exit(code)
}
