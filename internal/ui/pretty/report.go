package pretty

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/yaklabco/swiftfmt/pkg/diff"
	"github.com/yaklabco/swiftfmt/pkg/runner"
)

// Reporter renders run results for humans.
type Reporter struct {
	styles *Styles
	out    io.Writer
}

// NewReporter creates a Reporter writing to out with the given color mode.
func NewReporter(colorMode string, out io.Writer) *Reporter {
	return &Reporter{
		styles: NewStyles(IsColorEnabled(colorMode, out)),
		out:    out,
	}
}

// Report writes per-file lines, any diffs, and a summary line.
func (r *Reporter) Report(result *runner.Result) {
	if result == nil {
		return
	}
	for _, file := range result.Files {
		switch {
		case file.Error != nil:
			fmt.Fprintf(r.out, "%s: %s\n",
				r.styles.FilePath.Render(file.Path),
				r.styles.Error.Render(fmt.Sprintf("error: %v", file.Error)))
		case file.Skipped:
			fmt.Fprintf(r.out, "%s: %s\n",
				r.styles.FilePath.Render(file.Path),
				r.styles.Dim.Render("skipped: "+file.SkipReason))
		case file.Diff.HasChanges():
			r.writeDiff(file.Diff)
		case file.Written:
			fmt.Fprintf(r.out, "%s: %s\n",
				r.styles.FilePath.Render(file.Path),
				r.styles.Success.Render("formatted"))
		}
	}
	r.writeSummary(result)
}

func (r *Reporter) writeDiff(d *diff.Diff) {
	path := strings.TrimPrefix(d.Path, "/")
	fmt.Fprintln(r.out, r.styles.DiffHeader.Render(
		fmt.Sprintf("diff --git a/%s b/%s", path, path)))
	for _, line := range strings.Split(strings.TrimSuffix(d.String(), "\n"), "\n") {
		style := r.styles.DiffContext
		switch {
		case strings.HasPrefix(line, "+"):
			style = r.styles.DiffAdd
		case strings.HasPrefix(line, "-"):
			style = r.styles.DiffRemove
		case strings.HasPrefix(line, "@@"):
			style = r.styles.DiffHunk
		}
		fmt.Fprintln(r.out, style.Render(line))
	}
}

func (r *Reporter) writeSummary(result *runner.Result) {
	s := result.Stats
	if rule := r.ruleLine(); rule != "" {
		fmt.Fprintln(r.out, r.styles.Dim.Render(rule))
	}
	summary := fmt.Sprintf("%d files scanned, %d formatted", s.FilesDiscovered, s.FilesChanged)
	if s.FilesSkipped > 0 {
		summary += fmt.Sprintf(", %d skipped", s.FilesSkipped)
	}
	if s.FilesErrored > 0 {
		summary += fmt.Sprintf(", %d errored", s.FilesErrored)
		fmt.Fprintln(r.out, r.styles.Error.Render(summary))
		return
	}
	fmt.Fprintln(r.out, summary)
}

// ruleLine draws a horizontal separator sized to the terminal, or nothing
// when the writer is not a terminal.
func (r *Reporter) ruleLine() string {
	f, ok := r.out.(*os.File)
	if !ok {
		return ""
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return ""
	}
	if width > 80 {
		width = 80
	}
	return strings.Repeat("─", width)
}
