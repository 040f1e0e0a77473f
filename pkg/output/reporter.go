package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/arthur-debert/pipegen/pkg/output/styles"
	"github.com/arthur-debert/pipegen/pkg/types"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Reporter prints the per-service notices and the run summary.
// Notices are user output, not logs: they go to the reporter's writer.
type Reporter struct {
	out    io.Writer
	color  bool
	styles styles.Registry
}

// NewReporter creates a reporter writing to w.
// Color is used only when w is a terminal, NO_COLOR is unset and noColor is false.
func NewReporter(w io.Writer, noColor bool) *Reporter {
	renderer := lipgloss.NewRenderer(w)
	color := ColorEnabled(w, noColor)
	if !color {
		renderer.SetColorProfile(termenv.Ascii)
	}
	return &Reporter{
		out:    w,
		color:  color,
		styles: styles.Default(renderer),
	}
}

// ColorEnabled decides whether styled output should be written to w
func ColorEnabled(w io.Writer, noColor bool) bool {
	if noColor || termenv.EnvNoColor() {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (r *Reporter) style(name, text string) string {
	if !r.color {
		return text
	}
	return r.styles.Get(name).Render(text)
}

func (r *Reporter) line(format string, args ...interface{}) {
	fmt.Fprintf(r.out, format+"\n", args...)
}

// Outcome prints the notice for one processed service.
// Previews also print the full document between BEGIN and END lines.
func (r *Reporter) Outcome(o types.Outcome) {
	path := r.style("Path", o.Path)
	switch o.Action {
	case types.ActionSkipped:
		r.line("%s", r.style("Skipped", fmt.Sprintf(MsgSkipped, path)))
	case types.ActionWritten:
		r.line("%s", r.style("Success", fmt.Sprintf(MsgWritten, path)))
	case types.ActionPreviewed:
		r.line("%s", r.style("Preview", fmt.Sprintf(MsgPreviewed, path)))
		r.line("%s", r.style("Muted", fmt.Sprintf(MsgPreviewBegin, o.Path)))
		fmt.Fprint(r.out, o.Content)
		if !strings.HasSuffix(o.Content, "\n") {
			fmt.Fprintln(r.out)
		}
		r.line("%s", r.style("Muted", fmt.Sprintf(MsgPreviewEnd, o.Path)))
	}
}

// Summary prints the final line of a run
func (r *Reporter) Summary(result *types.GenerateResult, servicesDir string) {
	n := result.Generated()
	switch {
	case len(result.Services) == 0:
		r.line("%s", r.style("Muted", fmt.Sprintf(MsgNoServices, servicesDir)))
	case n == 0:
		r.line("%s", r.style("Muted", MsgNothingGenerated))
	case result.DryRun:
		r.line("%s", r.style("Heading", fmt.Sprintf(MsgPreviewedCount, n)))
	default:
		r.line("%s", r.style("Heading", fmt.Sprintf(MsgGeneratedCount, n)))
	}
}

// Services prints one line per discovered service with its output file state
func (r *Reporter) Services(statuses []types.ServiceStatus, servicesDir string) {
	if len(statuses) == 0 {
		r.line("%s", r.style("Muted", fmt.Sprintf(MsgNoServices, servicesDir)))
		return
	}

	width := 0
	for _, s := range statuses {
		if len(s.Service.Name) > width {
			width = len(s.Service.Name)
		}
	}
	for _, s := range statuses {
		state := r.style("Muted", MsgServiceMissing)
		if s.Exists {
			state = r.style("Success", MsgServiceExists)
		}
		r.line("%-*s  %s  %s", width, s.Service.Name, s.OutputPath, state)
	}
}

// Error prints err in the error style
func (r *Reporter) Error(err error) {
	r.line("%s", r.style("Error", fmt.Sprintf(MsgErrorFormat, err)))
}
