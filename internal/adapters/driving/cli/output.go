package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/nvdpcode/qa-final/internal/core/domain"
)

// Summary layout.
const (
	defaultWidth = 100
	checkColumn  = 12
	resultColumn = 8
)

// Summary colours.
var (
	colourTitle = lipgloss.Color("#7C3AED") // Purple
	colourPass  = lipgloss.Color("#A6E3A1") // Green
	colourFail  = lipgloss.Color("#F38BA8") // Red
	colourWarn  = lipgloss.Color("#F9E2AF") // Yellow
	colourMuted = lipgloss.Color("#6C7086") // Gray
)

// summaryStyles holds the styles for one output stream. Colour is
// dropped automatically when the stream is not a terminal.
type summaryStyles struct {
	title  lipgloss.Style
	check  lipgloss.Style
	pass   lipgloss.Style
	fail   lipgloss.Style
	errors lipgloss.Style
	detail lipgloss.Style
	muted  lipgloss.Style
}

func newSummaryStyles(w io.Writer) summaryStyles {
	r := lipgloss.NewRenderer(w)
	width := outputWidth(w)
	return summaryStyles{
		title:  r.NewStyle().Bold(true).Foreground(colourTitle),
		check:  r.NewStyle().Width(checkColumn),
		pass:   r.NewStyle().Width(resultColumn).Foreground(colourPass),
		fail:   r.NewStyle().Width(resultColumn).Bold(true).Foreground(colourFail),
		errors: r.NewStyle().Width(resultColumn).Bold(true).Foreground(colourWarn),
		detail: r.NewStyle().MaxWidth(max(width-checkColumn-resultColumn-2, 20)),
		muted:  r.NewStyle().Foreground(colourMuted),
	}
}

// outputWidth returns the terminal width of w, or defaultWidth when w is
// not a terminal.
func outputWidth(w io.Writer) int {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return defaultWidth
	}
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return defaultWidth
	}
	width, _, err := term.GetSize(fd)
	if err != nil || width <= 0 {
		return defaultWidth
	}
	return width
}

// renderSummary writes one block per report.
func renderSummary(w io.Writer, reports []*domain.RunReport) {
	s := newSummaryStyles(w)
	for i, r := range reports {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, s.title.Render(fmt.Sprintf("%s (%s)", r.DocType, r.Profile))+
			" "+s.muted.Render("run "+r.RunID))

		for _, check := range domain.AllChecks {
			status, detail, ok := checkLine(r, check)
			if !ok {
				continue
			}
			var result string
			switch status {
			case statusPass:
				result = s.pass.Render(status)
			case statusFail:
				result = s.fail.Render(status)
			default:
				result = s.errors.Render(status)
			}
			fmt.Fprintln(w, "  "+s.check.Render(string(check))+result+s.detail.Render(detail))
		}

		n := len(r.Discrepancies())
		switch {
		case len(r.Errors) > 0:
			fmt.Fprintln(w, s.errors.UnsetWidth().Render(
				fmt.Sprintf("Result: ERROR (%d failed checks, %d discrepancies)", len(r.Errors), n)))
		case n > 0:
			fmt.Fprintln(w, s.fail.UnsetWidth().Render(fmt.Sprintf("Result: FAIL (%d discrepancies)", n)))
		default:
			fmt.Fprintln(w, s.pass.UnsetWidth().Render("Result: PASS"))
		}
	}
}

// Check statuses.
const (
	statusPass  = "PASS"
	statusFail  = "FAIL"
	statusError = "ERROR"
)

// checkLine summarises one check of r. ok is false when the check was
// not part of the run.
func checkLine(r *domain.RunReport, check domain.CheckKind) (status, detail string, ok bool) {
	if msg, failed := r.Errors[check]; failed {
		return statusError, msg, true
	}

	switch check {
	case domain.CheckCounts:
		if r.Counts == nil {
			return "", "", false
		}
		detail = fmt.Sprintf("relational %d, index %d", r.Counts.RelationalCount, r.Counts.IndexCount)
		return passFail(r.Counts.Mismatch == nil), detail, true

	case domain.CheckColumns:
		if r.Columns == nil {
			return "", "", false
		}
		if r.Columns.Mismatch == nil {
			return statusPass, fmt.Sprintf("%d columns", len(r.Columns.RelationalColumns)), true
		}
		var parts []string
		if cols := r.Columns.Mismatch.OnlyInRelational; len(cols) > 0 {
			parts = append(parts, "only in relational: "+strings.Join(cols, ", "))
		}
		if cols := r.Columns.Mismatch.OnlyInIndex; len(cols) > 0 {
			parts = append(parts, "only in index: "+strings.Join(cols, ", "))
		}
		return statusFail, strings.Join(parts, "; "), true

	case domain.CheckDocuments:
		d := r.Documents
		if d == nil {
			return "", "", false
		}
		detail = fmt.Sprintf("matched %d, only in relational %d, only in index %d, field mismatches %d",
			d.Matched, len(d.OnlyInRelational), len(d.OnlyInIndex), len(d.FieldMismatches))
		return passFail(len(d.Discrepancies()) == 0), detail, true

	case domain.CheckLifecycle:
		if r.Lifecycle == nil {
			return "", "", false
		}
		detail = fmt.Sprintf("%d of %d documents", r.Lifecycle.DiscrepancyCount(), r.Lifecycle.Checked)
		return passFail(r.Lifecycle.DiscrepancyCount() == 0), detail, true
	}
	return "", "", false
}

func passFail(pass bool) string {
	if pass {
		return statusPass
	}
	return statusFail
}
