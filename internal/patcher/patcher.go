// Package patcher rewrites the placeholder endpoint and contract address in
// the Flutter blockchain service source.
//
// Substitution is literal: the file is treated as opaque UTF-8 text, so a
// placeholder inside a comment is replaced like any other occurrence.
package patcher

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/micronest/chainconfig/internal/console"
	"github.com/micronest/chainconfig/internal/domain"
)

var errInvalidUTF8 = errors.New("content is not valid UTF-8")

// Result describes what a Patch call changed.
type Result struct {
	Path                string
	InfuraReplacements  int
	AddressReplacements int
}

func (r *Result) InfuraUpdated() bool {
	return r.InfuraReplacements > 0
}

func (r *Result) AddressUpdated() bool {
	return r.AddressReplacements > 0
}

// Changed reports whether the written content differs from what was read.
func (r *Result) Changed() bool {
	return r.InfuraUpdated() || r.AddressUpdated()
}

type Patcher struct {
	path   string
	out    *console.Printer
	logger *slog.Logger
}

func New(path string, out *console.Printer, logger *slog.Logger) *Patcher {
	return &Patcher{
		path:   path,
		out:    out,
		logger: logger,
	}
}

// Patch substitutes both placeholders and writes the file back. A missing
// placeholder is only a warning; a missing file or a read failure is an error
// and leaves the file untouched.
func (p *Patcher) Patch(ctx context.Context, settings domain.Settings) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, domain.ErrInterrupted.WithError(err)
	}

	info, err := os.Stat(p.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.ErrTargetNotFound.WithError(&fs.PathError{Op: "locate", Path: absPath(p.path), Err: fs.ErrNotExist})
		}
		return nil, domain.ErrReadTarget.WithError(err)
	}
	if info.IsDir() {
		return nil, domain.ErrReadTarget.WithError(fmt.Errorf("%s is a directory", p.path))
	}

	raw, err := os.ReadFile(p.path)
	if err != nil {
		return nil, domain.ErrReadTarget.WithError(err)
	}
	if !utf8.Valid(raw) {
		return nil, domain.ErrReadTarget.WithError(fmt.Errorf("%s: %w", p.path, errInvalidUTF8))
	}
	p.logger.Debug("target read", slog.String("path", p.path), slog.Int("bytes", len(raw)))

	content := string(raw)
	result := &Result{Path: p.path}

	placeholderURL := domain.PlaceholderInfuraURL()
	content, result.InfuraReplacements = replaceAll(content, placeholderURL, domain.InfuraURL(settings.ProjectID))
	if result.InfuraUpdated() {
		p.out.Success("Updated Infura URL with project ID: %s", settings.ProjectID)
	} else {
		p.out.Warn("Infura URL already updated or not found")
	}

	content, result.AddressReplacements = replaceAll(content, domain.ZeroAddress, settings.ContractAddress)
	if result.AddressUpdated() {
		p.out.Success("Updated contract address: %s", settings.ContractAddress)
	} else {
		p.out.Warn("Contract address already updated or not found")
	}

	p.logger.Debug("placeholders replaced",
		slog.Int("infura", result.InfuraReplacements),
		slog.Int("address", result.AddressReplacements),
	)

	if err := writeFile(p.path, []byte(content)); err != nil {
		return nil, domain.ErrWriteTarget.WithError(err)
	}
	p.logger.Debug("target written", slog.String("path", p.path), slog.Bool("changed", result.Changed()))

	p.out.Success("Flutter blockchain configuration updated successfully!")
	return result, nil
}

// absPath shows where a relative target was looked up.
func absPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}

func replaceAll(content, old, replacement string) (string, int) {
	n := strings.Count(content, old)
	if n == 0 {
		return content, 0
	}
	return strings.ReplaceAll(content, old, replacement), n
}

// writeFile truncates and rewrites path in place, so the inode, hard links,
// owner and mode of the target are kept. Symlinks are followed.
func writeFile(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_TRUNC, 0)
	if err != nil {
		return fmt.Errorf("open %s for writing: %w", path, err)
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
