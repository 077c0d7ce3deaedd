package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/micronest/chainconfig/internal/config"
	"github.com/micronest/chainconfig/internal/console"
	"github.com/micronest/chainconfig/internal/domain"
	"github.com/micronest/chainconfig/internal/patcher"
	"github.com/micronest/chainconfig/internal/prompt"
	"github.com/micronest/chainconfig/internal/updater"
)

func main() {
	os.Exit(run(os.Stdin, os.Stdout, os.Stderr))
}

func run(in io.Reader, stdout, stderr io.Writer) (code int) {
	// stdout itself may be what failed, so a recovered panic goes to stderr
	defer func() {
		if r := recover(); r != nil {
			err := domain.ErrInternal.WithError(fmt.Errorf("%v", r))
			fmt.Fprintf(stderr, "\n%s %s\n", console.GlyphError, err)
			code = domain.ExitCode(err)
		}
	}()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	// Initialize logger
	logger := config.NewLogger(cfg, stderr)
	slog.SetDefault(logger)

	logger.Debug("starting configuration updater", slog.String("target", cfg.TargetPath))

	// Ctrl-C while prompting cancels the session
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := console.New(stdout)
	u := updater.New(
		prompt.NewCollector(in, out, logger),
		patcher.New(cfg.TargetPath, out, logger),
		out,
		logger,
	)

	return domain.ExitCode(u.Run(ctx))
}
