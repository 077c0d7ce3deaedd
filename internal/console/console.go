// Package console writes the operator-facing status lines.
package console

import (
	"fmt"
	"io"
	"strings"
)

// Status glyphs
const (
	GlyphSuccess = "✅"
	GlyphWarning = "⚠️ "
	GlyphError   = "❌"
	GlyphStart   = "🚀"
	GlyphSummary = "📋"
	GlyphDone    = "🎉"
	GlyphLink    = "🔗"
)

type Printer struct {
	w io.Writer
}

func New(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Writer exposes the underlying stream for prompts that must not end in a newline.
func (p *Printer) Writer() io.Writer {
	return p.w
}

func (p *Printer) Println(a ...any) {
	fmt.Fprintln(p.w, a...)
}

func (p *Printer) Printf(format string, a ...any) {
	fmt.Fprintf(p.w, format, a...)
}

func (p *Printer) Blank() {
	fmt.Fprintln(p.w)
}

// Banner prints a title underlined to its width.
func (p *Printer) Banner(title string) {
	line := GlyphStart + " " + title
	fmt.Fprintln(p.w, line)
	fmt.Fprintln(p.w, strings.Repeat("=", len([]rune(title))+4))
	fmt.Fprintln(p.w)
}

func (p *Printer) Section(title string) {
	fmt.Fprintf(p.w, "%s %s:\n", GlyphSummary, title)
}

func (p *Printer) Success(format string, a ...any) {
	p.status(GlyphSuccess, format, a...)
}

func (p *Printer) Warn(format string, a ...any) {
	p.status(GlyphWarning, format, a...)
}

func (p *Printer) Error(format string, a ...any) {
	p.status(GlyphError, format, a...)
}

func (p *Printer) Done(format string, a ...any) {
	p.status(GlyphDone, format, a...)
}

func (p *Printer) Link(label, url string) {
	fmt.Fprintf(p.w, "%s %s:\n   %s\n", GlyphLink, label, url)
}

func (p *Printer) status(glyph, format string, a ...any) {
	fmt.Fprintf(p.w, "%s %s\n", glyph, fmt.Sprintf(format, a...))
}
