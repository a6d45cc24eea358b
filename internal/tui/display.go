// Package tui chooses how catalog output reaches the terminal: the
// interactive dashboard when stdout is a TTY, plain text cards otherwise.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"github.com/smileynet/swcatalog/internal/catalog"
	"github.com/smileynet/swcatalog/internal/dashboard"
	"github.com/smileynet/swcatalog/internal/swapi"
)

// ErrLoadFailed reports that a collection could not be fetched.
var ErrLoadFailed = errors.New("load failed")

// Display renders one kind of the catalog.
type Display interface {
	Run(ctx context.Context, cat *catalog.Catalog) error
}

// DisplayOptions configures display creation.
type DisplayOptions struct {
	Writer     io.Writer           // Output destination (default: os.Stdout).
	ForcePlain bool                // Force plain text even if TTY.
	Kind       swapi.Kind          // Kind shown first (default: people).
	Program    []tea.ProgramOption // Extra options for the TUI program.
}

// NewDisplay returns a TUI display when the writer is a TTY, or a plain text
// display otherwise. ForcePlain overrides TTY detection.
func NewDisplay(opts DisplayOptions) Display {
	if opts.Writer == nil {
		opts.Writer = os.Stdout
	}
	if opts.Kind == "" {
		opts.Kind = swapi.KindPeople
	}

	if opts.ForcePlain || !IsTTY(opts.Writer) {
		return &PlainDisplay{w: opts.Writer, kind: opts.Kind}
	}

	return &TUIDisplay{w: opts.Writer, kind: opts.Kind, opts: opts.Program}
}

// IsTTY reports whether w is connected to a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// PlainDisplay loads one kind and prints its cards as text.
type PlainDisplay struct {
	w    io.Writer
	kind swapi.Kind
}

// Run loads the kind and writes its cards. A failed load is returned as an
// error after the failure is printed.
func (d *PlainDisplay) Run(ctx context.Context, cat *catalog.Catalog) error {
	sec, err := cat.Section(d.kind)
	if err != nil {
		return err
	}
	sec.Load(ctx)
	return WriteList(d.w, sec.View())
}

// TUIDisplay runs the interactive dashboard.
// Falls back to PlainDisplay if the TUI program fails to start.
type TUIDisplay struct {
	w    io.Writer
	kind swapi.Kind
	opts []tea.ProgramOption
}

// Run starts the Bubble Tea program and blocks until the user quits.
func (d *TUIDisplay) Run(ctx context.Context, cat *catalog.Catalog) error {
	var sections []dashboard.Section
	for _, s := range cat.Sections() {
		sections = append(sections, s)
	}
	model := dashboard.NewModel(ctx, sections, d.kind)

	opts := []tea.ProgramOption{
		tea.WithOutput(d.w),
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	}
	p := tea.NewProgram(model, append(opts, d.opts...)...)

	_, err := p.Run()
	switch {
	case err == nil:
		return nil
	case errors.Is(err, tea.ErrProgramKilled), errors.Is(err, context.Canceled):
		return ctx.Err()
	}
	plain := &PlainDisplay{w: d.w, kind: d.kind}
	return plain.Run(ctx, cat)
}

// WriteList prints a section's cards, or its loading/failed/empty state.
func WriteList(w io.Writer, v catalog.View) error {
	switch {
	case v.State == catalog.StateFailed:
		_, _ = fmt.Fprintf(w, "Error: %s\n", v.Error)
		return fmt.Errorf("%w: %s: %s", ErrLoadFailed, v.Kind, v.Error)
	case v.State == catalog.StateLoading:
		_, err := fmt.Fprintln(w, v.LoadingMessage)
		return err
	case len(v.Items) == 0:
		_, err := fmt.Fprintln(w, v.EmptyMessage)
		return err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s (%d)\n", v.Kind.Label(), len(v.Items))
	for _, c := range v.Items {
		b.WriteString("\n")
		writeCard(&b, c)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// WriteDialog prints the detail dialog of a section.
func WriteDialog(w io.Writer, v catalog.View) error {
	var b strings.Builder
	b.WriteString(v.Dialog.Title)
	b.WriteString("\n")
	if len(v.Dialog.Items) == 0 {
		b.WriteString("\n")
		b.WriteString(v.Dialog.EmptyMessage)
		b.WriteString("\n")
	}
	for _, c := range v.Dialog.Items {
		b.WriteString("\n")
		writeCard(&b, c)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func writeCard(b *strings.Builder, c catalog.Card) {
	fmt.Fprintf(b, "%s  [%s]\n", c.Heading, c.ID)
	if c.Subheading != "" {
		fmt.Fprintf(b, "  %s\n", c.Subheading)
	}
	for _, f := range c.Facts {
		fmt.Fprintf(b, "  %s: %s\n", f.Label, oneLine(f.Value))
	}
	if c.Trigger != "" {
		fmt.Fprintf(b, "  %s\n", c.Trigger)
	}
}

// oneLine folds the CRLF-separated opening crawls onto a single line.
func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
