// Package sigctx ties a context to the process termination signals.
package sigctx

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
)

const forcedExitCode = 1

// NotifyContext returns a context cancelled on the first SIGINT, SIGTERM
// or SIGQUIT. A second signal exits the process without waiting for a
// graceful shutdown.
func NotifyContext(parent context.Context) (context.Context, context.CancelFunc) {
	return notifyContext(parent, func() { os.Exit(forcedExitCode) })
}

func notifyContext(
	parent context.Context, exit func(),
) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	sigs := make(chan os.Signal, 2)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		select {
		case sig := <-sigs:
			slog.Info("shutting down", "op", "sigctx.NotifyContext", "signal", sig.String())
			cancel()
		case <-ctx.Done():
			signal.Stop(sigs)
			return
		}

		select {
		case <-sigs:
			exit()
		case <-parent.Done():
		}
		signal.Stop(sigs)
	}()

	return ctx, cancel
}
