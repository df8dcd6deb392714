// Package report renders a diag.Bag for a human at a terminal. It is the
// only place in this module allowed to write to stdout/stderr — the
// semantic core (internal/diag et al.) stays silent and communicates
// exclusively via returned *diag.Diagnostic values, matching the teacher's
// own core-is-silent-only-cmd-prints convention (surge/internal/diagfmt is
// consulted for shape, surge/internal/version and surge/internal/ui for the
// actual color.New/lipgloss.NewStyle usage — surge's own diagfmt.Pretty is
// itself an unimplemented stub, so the rendering approach here is grounded
// on the parts of the pack that actually render colored text).
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"yo/internal/diag"
	"yo/internal/source"
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	noteColor    = color.New(color.FgCyan)
	codeStyle    = lipgloss.NewStyle().Faint(true)
	locationStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
)

// Options controls Print's rendering.
type Options struct {
	// Color enables ANSI styling; callers typically wire this to
	// golang.org/x/term.IsTerminal(os.Stdout.Fd()).
	Color bool
}

// Print writes every diagnostic in bag to w, one per line plus its notes,
// in the order Bag.All returns them (insertion order — the Module Driver's
// per-declaration processing order, spec.md's testable property 4).
func Print(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts Options) {
	for _, d := range bag.All() {
		printOne(w, d, fs, opts)
	}
}

func printOne(w io.Writer, d *diag.Diagnostic, fs *source.FileSet, opts Options) {
	loc := formatSpan(d.Primary, fs)
	sev := severityLabel(d.Severity, opts)
	code := d.Code.String()
	if opts.Color {
		code = codeStyle.Render("[" + code + "]")
		loc = locationStyle.Render(loc)
	} else {
		code = "[" + code + "]"
	}
	fmt.Fprintf(w, "%s: %s %s %s\n", loc, sev, code, d.Message)
	for _, n := range d.Notes {
		noteLoc := formatSpan(n.Span, fs)
		if opts.Color {
			noteLoc = locationStyle.Render(noteLoc)
		}
		fmt.Fprintf(w, "  %s note: %s\n", noteLoc, n.Msg)
	}
}

func severityLabel(sev diag.Severity, opts Options) string {
	label := strings.ToUpper(sev.String())
	if !opts.Color {
		return label
	}
	switch sev {
	case diag.SeverityError:
		return errorColor.Sprint(label)
	case diag.SeverityWarning:
		return warningColor.Sprint(label)
	default:
		return noteColor.Sprint(label)
	}
}

// formatSpan renders span as path:line:col, falling back to a raw byte-range
// form when fs is nil (a caller with no FileSet, e.g. a unit test span).
func formatSpan(span source.Span, fs *source.FileSet) string {
	if fs == nil {
		return span.String()
	}
	file := fs.Get(span.File)
	start, _ := fs.Resolve(span)
	return fmt.Sprintf("%s:%d:%d", file.Path, start.Line, start.Col)
}

// Table renders a header row and rows of cells column-aligned by rune
// width, used by `yo dump-symbols` for a compact overview.
// Grounded on surge/internal/ui/progress.go's runewidth-based column
// truncation/alignment for its status column.
func Table(w io.Writer, headers []string, rows [][]string) {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i >= len(widths) {
				continue
			}
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}
	writeRow(w, headers, widths)
	for _, row := range rows {
		writeRow(w, row, widths)
	}
}

func writeRow(w io.Writer, cells []string, widths []int) {
	var sb strings.Builder
	for i, cell := range cells {
		if i >= len(widths) {
			continue
		}
		sb.WriteString(cell)
		if pad := widths[i] - runewidth.StringWidth(cell); pad > 0 {
			sb.WriteString(strings.Repeat(" ", pad))
		}
		sb.WriteString("  ")
	}
	fmt.Fprintln(w, strings.TrimRight(sb.String(), " "))
}
