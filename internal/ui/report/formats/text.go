package formats

import (
	"fmt"
	"io"
	"strings"

	"typeonly/internal/core/app"
	"typeonly/internal/data/history"
	"typeonly/internal/shared/util"

	"github.com/charmbracelet/lipgloss"
)

type textStyles struct {
	file     lipgloss.Style
	location lipgloss.Style
	id       lipgloss.Style
	failure  lipgloss.Style
	success  lipgloss.Style
	muted    lipgloss.Style
}

func newTextStyles(color bool) textStyles {
	if !color {
		plain := lipgloss.NewStyle()
		return textStyles{plain, plain, plain, plain, plain, plain}
	}
	return textStyles{
		file: lipgloss.NewStyle().
			Underline(true).
			Bold(true),
		location: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#64748B")),
		id: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FBBF24")),
		failure: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F87171")).
			Bold(true),
		success: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#10B981")).
			Bold(true),
		muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#64748B")).
			Italic(true),
	}
}

// WriteText renders a run grouped by file, one diagnostic per line as
// line:col, message ID and message, followed by a summary line.
func WriteText(w io.Writer, opts Options, result app.RunResult) error {
	st := newTextStyles(opts.Color)
	projectRoot := opts.ProjectRoot
	var b strings.Builder

	for _, f := range result.Files {
		if len(f.Diagnostics) == 0 {
			continue
		}
		b.WriteString(st.file.Render(util.RelativeSlashPath(projectRoot, f.Path)))
		b.WriteByte('\n')
		for _, d := range f.Diagnostics {
			loc := fmt.Sprintf("%d:%d", d.Span.StartLine, d.Span.StartColumn)
			fmt.Fprintf(&b, "  %s  %s  %s\n",
				st.location.Render(fmt.Sprintf("%-7s", loc)),
				st.id.Render(fmt.Sprintf("%-11s", d.MessageID)),
				d.Message)
		}
		b.WriteByte('\n')
	}

	for _, fe := range result.Errors {
		fmt.Fprintf(&b, "%s %s: %v\n", st.failure.Render("!"), util.RelativeSlashPath(projectRoot, fe.Path), fe.Err)
	}

	b.WriteString(summaryLine(st, result))
	b.WriteByte('\n')
	if opts.Trend != nil {
		b.WriteString(trendLine(st, *opts.Trend))
		b.WriteByte('\n')
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func summaryLine(st textStyles, result app.RunResult) string {
	checked := st.muted.Render(fmt.Sprintf("(%d of %d files in scope)", len(result.Files), result.FilesDiscovered))
	violations := result.ViolationCount()
	if violations == 0 && len(result.Errors) == 0 {
		return st.success.Render("✔ no violations") + " " + checked
	}

	failing := 0
	for _, f := range result.Files {
		if len(f.Diagnostics) > 0 {
			failing++
		}
	}
	msg := fmt.Sprintf("✖ %s in %s", plural(violations, "violation"), plural(failing, "file"))
	if len(result.Errors) > 0 {
		msg += fmt.Sprintf(", %s unreadable", plural(len(result.Errors), "file"))
	}
	return st.failure.Render(msg) + " " + checked
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

func trendLine(st textStyles, delta history.Delta) string {
	line := fmt.Sprintf("%+d since previous run (was %d)", delta.Violations, delta.Previous.Violations)
	if delta.InScope != 0 {
		line += fmt.Sprintf(", %+d files in scope", delta.InScope)
	}
	switch {
	case delta.Violations > 0:
		return st.failure.Render(line)
	case delta.Violations < 0:
		return st.success.Render(line)
	default:
		return st.muted.Render(line)
	}
}
