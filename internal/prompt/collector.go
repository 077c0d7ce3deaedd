// Package prompt collects the Infura project id and contract address from the operator.
package prompt

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/micronest/chainconfig/internal/console"
	"github.com/micronest/chainconfig/internal/domain"
)

const (
	projectIDPrompt = "Enter your Infura Project ID: "
	addressPrompt   = "Enter your deployed contract address: "
	confirmPrompt   = "Proceed with updating Flutter configuration? (y/N): "
)

type Collector struct {
	lines  *lineReader
	out    *console.Printer
	logger *slog.Logger
}

func NewCollector(in io.Reader, out *console.Printer, logger *slog.Logger) *Collector {
	return &Collector{
		lines:  newLineReader(in),
		out:    out,
		logger: logger,
	}
}

// Collect asks for both values, validates them and requires an explicit
// confirmation. A declined confirmation yields domain.ErrCancelled and an
// interrupt yields domain.ErrInterrupted; no file is touched either way.
func (c *Collector) Collect(ctx context.Context) (domain.Settings, error) {
	defer c.lines.Close()

	c.out.Println("Please provide the following information:")
	c.out.Blank()

	rawID, err := c.ask(ctx, projectIDPrompt)
	if err != nil {
		return domain.Settings{}, err
	}
	projectID, err := domain.ValidateProjectID(rawID)
	if err != nil {
		c.logger.Debug("project id rejected", slog.Int("length", len(rawID)))
		return domain.Settings{}, err
	}

	rawAddr, err := c.ask(ctx, addressPrompt)
	if err != nil {
		return domain.Settings{}, err
	}
	address, err := domain.ValidateContractAddress(rawAddr)
	if err != nil {
		c.logger.Debug("contract address rejected", slog.String("input", strings.TrimSpace(rawAddr)))
		return domain.Settings{}, err
	}

	settings := domain.Settings{ProjectID: projectID, ContractAddress: address}

	c.out.Blank()
	c.out.Section("Configuration Summary")
	c.out.Printf("   Infura Project ID: %s\n", settings.ProjectID)
	c.out.Printf("   Contract Address: %s\n", settings.ContractAddress)
	c.out.Blank()

	answer, err := c.ask(ctx, confirmPrompt)
	if err != nil {
		return domain.Settings{}, err
	}
	if !IsConfirmation(answer) {
		c.logger.Debug("update declined", slog.String("answer", answer))
		return domain.Settings{}, domain.ErrCancelled
	}

	c.out.Blank()
	return settings, nil
}

// IsConfirmation reports whether answer is y or yes, ignoring case and surrounding space.
func IsConfirmation(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

func (c *Collector) ask(ctx context.Context, prompt string) (string, error) {
	fmt.Fprint(c.out.Writer(), prompt)

	line, err := c.lines.ReadLine(ctx)
	switch {
	case err == nil:
		return strings.TrimSpace(line), nil
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "", domain.ErrInterrupted.WithError(err)
	case errors.Is(err, io.EOF):
		return "", domain.ErrCancelled.WithError(err)
	default:
		return "", domain.ErrReadInput.WithError(err)
	}
}
