package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"go.trai.ch/cjsguard/internal/core/domain"
	"go.trai.ch/cjsguard/internal/core/ports"
	"go.trai.ch/cjsguard/internal/ui/output"
	"go.trai.ch/cjsguard/internal/ui/style"
	"go.trai.ch/zerr"
)

var _ ports.Reporter = (*Text)(nil)

// Text renders results as grouped, colored lines.
type Text struct {
	out *termenv.Output
	cwd string
}

// NewText creates a Text reporter writing to w.
func NewText(w io.Writer, cwd string) *Text {
	return &Text{out: output.New(w), cwd: cwd}
}

// Report writes one block per file with violations, followed by a summary.
func (r *Text) Report(results []domain.FileResult) error {
	reports := prepare(results, r.cwd)

	var sb strings.Builder
	problems := 0
	for _, rep := range reports {
		sb.WriteString(r.out.String(rep.path).Bold().Foreground(r.color(style.Iris)).String())
		sb.WriteString("\n")

		for _, v := range rep.violations {
			problems++
			pos := fmt.Sprintf("%-7s", v.Location.String())
			fmt.Fprintf(&sb, "  %s %s %s  %s\n",
				r.out.String(pos).Foreground(r.color(style.Slate)).String(),
				r.out.String(style.Cross).Foreground(r.color(style.Red)).String(),
				v.Message,
				r.out.String(string(v.MessageID)).Foreground(r.color(style.Slate)).String(),
			)
		}
		sb.WriteString("\n")
	}

	if problems == 0 {
		fmt.Fprintf(&sb, "%s No CJS import problems in %s\n",
			r.out.String(style.Check).Foreground(r.color(style.Green)).String(),
			plural(len(results), "file"),
		)
	} else {
		fmt.Fprintf(&sb, "%s %s in %s\n",
			r.out.String(style.Cross).Foreground(r.color(style.Red)).String(),
			plural(problems, "problem"),
			plural(len(reports), "file"),
		)
	}

	if _, err := r.out.WriteString(sb.String()); err != nil {
		return zerr.Wrap(err, domain.ErrReportFailed.Error())
	}
	return nil
}

func (r *Text) color(c lipgloss.Color) termenv.Color {
	return r.out.Color(string(c))
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
