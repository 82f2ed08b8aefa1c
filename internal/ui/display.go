package ui

import (
	"os"

	"github.com/charmbracelet/x/term"
	"github.com/mattn/go-isatty"
)

// DefaultTermWidth is used when stdout is not a terminal or its size is unknown.
const DefaultTermWidth = 120

// minMarkdownWidth keeps trace and term tables readable in narrow panes.
const minMarkdownWidth = 40

// DisplayContext describes where hdate is printing.
type DisplayContext struct {
	TermWidth int
	IsTTY     bool
}

// NewDisplayContext inspects stdout.
func NewDisplayContext() *DisplayContext {
	fd := os.Stdout.Fd()
	isTTY := isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)

	width := DefaultTermWidth
	if isTTY {
		if w, _, err := term.GetSize(fd); err == nil && w > 0 {
			width = w
		}
	}
	return &DisplayContext{TermWidth: width, IsTTY: isTTY}
}

// NewDisplayContextWithWidth returns a terminal context of a fixed width.
func NewDisplayContextWithWidth(width int) *DisplayContext {
	return &DisplayContext{TermWidth: width, IsTTY: true}
}

// AvailableWidth returns the width left after leftMargin columns.
func (d *DisplayContext) AvailableWidth(leftMargin int) int {
	return d.TermWidth - leftMargin
}

// MarkdownWidth is the word-wrap width for RenderMarkdown: the terminal
// width less the document margin on both sides.
func (d *DisplayContext) MarkdownWidth() int {
	if w := d.AvailableWidth(MarkdownRenderMargin * 2); w >= minMarkdownWidth {
		return w
	}
	return minMarkdownWidth
}

// RenderMarkdown renders content for this display. Output that is not a
// terminal gets the markdown source unchanged unless force is set.
func (d *DisplayContext) RenderMarkdown(content string, force bool) (string, error) {
	if !d.IsTTY && !force {
		return content, nil
	}
	return RenderMarkdown(content, d.MarkdownWidth())
}
