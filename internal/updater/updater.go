// Package updater runs the interactive configuration flow: collect, patch, report.
package updater

import (
	"context"
	"errors"
	"log/slog"

	"github.com/micronest/chainconfig/internal/console"
	"github.com/micronest/chainconfig/internal/domain"
	"github.com/micronest/chainconfig/internal/patcher"
)

const title = "MicroNest Blockchain Configuration Updater"

var nextSteps = []string{
	"Restart your Flutter app",
	"Test blockchain functionality",
	"Try creating or joining a group",
}

type Collector interface {
	Collect(ctx context.Context) (domain.Settings, error)
}

type Patcher interface {
	Patch(ctx context.Context, settings domain.Settings) (*patcher.Result, error)
}

type Updater struct {
	collector Collector
	patcher   Patcher
	out       *console.Printer
	logger    *slog.Logger
}

func New(collector Collector, p Patcher, out *console.Printer, logger *slog.Logger) *Updater {
	return &Updater{
		collector: collector,
		patcher:   p,
		out:       out,
		logger:    logger,
	}
}

// Run executes one session. Every failure is reported to the operator before
// it is returned; domain.ExitCode turns the result into a process status.
func (u *Updater) Run(ctx context.Context) error {
	u.out.Banner(title)

	settings, err := u.collector.Collect(ctx)
	if err != nil {
		return u.fail(err)
	}

	result, err := u.patcher.Patch(ctx, settings)
	if err != nil {
		err = u.fail(err)
		u.out.Error("Configuration update failed")
		return err
	}

	u.logger.Info("configuration updated",
		slog.String("path", result.Path),
		slog.Bool("changed", result.Changed()),
	)

	u.out.Blank()
	u.out.Done("Configuration update completed!")
	u.out.Blank()
	u.out.Section("Next Steps")
	for i, step := range nextSteps {
		u.out.Printf("%d. %s\n", i+1, step)
	}
	u.out.Blank()
	u.out.Link("Verify your contract", domain.ExplorerURL(settings.ContractAddress))
	return nil
}

// fail reports err to the operator and returns it as a *domain.AppError.
func (u *Updater) fail(err error) error {
	var appErr *domain.AppError
	if !errors.As(err, &appErr) {
		u.logger.Error("unexpected failure", slog.Any("error", err))
		appErr = domain.ErrInternal.WithError(err)
		u.out.Error("%s", appErr.Error())
		return appErr
	}

	u.logger.Debug("update stopped", slog.String("code", appErr.Code), slog.Any("error", err))

	switch {
	case errors.Is(err, domain.ErrInterrupted):
		// the prompt line is still open
		u.out.Blank()
		u.out.Error("%s", appErr.Message)
	case errors.Is(err, domain.ErrCancelled):
		u.out.Error("%s", appErr.Message)
	default:
		u.out.Error("%s", appErr.Error())
	}
	return err
}
