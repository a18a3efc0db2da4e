// Package output provides utilities for formatting and displaying
// reconciliation results.
package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/iwvelando/trid-reconcile/internal/reconcile"
	"github.com/iwvelando/trid-reconcile/pkg/constants"
	"github.com/iwvelando/trid-reconcile/pkg/format"
	"github.com/iwvelando/trid-reconcile/pkg/tolerance"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	headerStyle  = lipgloss.NewStyle().Bold(true)
	passStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	failStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	reviewStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

// Write renders res to w in the named output format.
func Write(w io.Writer, outputFormat string, res *reconcile.Result) error {
	switch outputFormat {
	case constants.OutputFormatCSV:
		return CsvFormat(w, res)
	case constants.OutputFormatJSON:
		return JSONFormat(w, res)
	case constants.OutputFormatPretty, "":
		return PrettyFormat(w, res)
	default:
		return fmt.Errorf("unsupported output format %q", outputFormat)
	}
}

type section struct {
	title string
	rows  []tolerance.Row
	le    float64
	cd    float64
}

func sections(res *reconcile.Result) []section {
	zeroA := make([]tolerance.Row, 0, len(res.ZeroA.Rows))
	for _, r := range res.ZeroA.Rows {
		zeroA = append(zeroA, r)
	}
	zeroB := make([]tolerance.Row, 0, len(res.ZeroB.Rows))
	for _, r := range res.ZeroB.Rows {
		zeroB = append(zeroB, r)
	}
	ten := make([]tolerance.Row, 0, len(res.TenPercent.Rows))
	for _, r := range res.TenPercent.Rows {
		ten = append(ten, r)
	}
	unlimited := make([]tolerance.Row, 0, len(res.Unlimited.Rows))
	for _, r := range res.Unlimited.Rows {
		unlimited = append(unlimited, r)
	}
	return []section{
		{"Zero tolerance (Section A)", zeroA, res.ZeroA.LESubtotal, res.ZeroA.CDSubtotal},
		{"Zero tolerance (Section B)", zeroB, res.ZeroB.LESubtotal, res.ZeroB.CDSubtotal},
		{"Ten percent aggregate (Sections C+E)", ten, res.TenPercent.LESubtotal, res.TenPercent.CDSubtotal},
		{"Unlimited (Sections F, G, H)", unlimited, res.Unlimited.LESubtotal, res.Unlimited.CDSubtotal},
	}
}

// PrettyFormat outputs a human-readable rather than machine-readable report.
func PrettyFormat(w io.Writer, res *reconcile.Result) error {
	p := &printer{w: w}

	for _, s := range sections(res) {
		p.printf("%s\n", titleStyle.Render("--- "+s.title+" ---"))
		if len(s.rows) == 0 {
			p.printf("(no fees)\n\n")
			continue
		}
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		p.fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			headerStyle.Render("ID"),
			headerStyle.Render("Fee"),
			headerStyle.Render("LE"),
			headerStyle.Render("CD"),
			headerStyle.Render("Delta"),
			headerStyle.Render("Status"),
		)
		for _, row := range s.rows {
			f, eval := row.Envelope(), row.Result()
			p.fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
				f.ID,
				f.Label,
				format.Currency(f.LE.Borrower),
				format.Currency(f.CD.Borrower),
				format.Currency(eval.Delta),
				statusStyle(eval.Status).Render(string(eval.Status)),
			)
		}
		p.fprintf(tw, "\tSubtotal\t%s\t%s\t\t\n", format.Currency(s.le), format.Currency(s.cd))
		if err := tw.Flush(); err != nil && p.err == nil {
			p.err = err
		}
		p.printf("\n")
	}

	ten := res.TenPercent
	p.printf("Ten percent test: base %s, allowed %s, CD total %s, overage %s %s\n",
		format.Currency(ten.LEBase),
		format.Currency(ten.AllowedMax),
		format.Currency(ten.CDTotal),
		format.Currency(ten.Overage),
		statusStyle(ten.Status).Render(string(ten.Status)),
	)
	p.printf("Total borrower delta: %s\n", format.Currency(res.TotalDelta))
	p.printf("Required cure: %s (zero tolerance %s, ten percent %s), lender credits %s, shortfall %s\n\n",
		format.Currency(res.Cure.RequiredCure),
		format.Currency(res.Cure.ZeroTolerance),
		format.Currency(res.Cure.TenPercent),
		format.Currency(res.Cure.LenderCredits),
		format.Currency(res.Cure.Shortfall),
	)

	p.printf("%s\n", titleStyle.Render(fmt.Sprintf("--- Exceptions (%d) ---", len(res.Exceptions))))
	for _, e := range res.Exceptions {
		p.printf("%s [%s] %s: %s\n", severityStyle(e.Severity).Render(string(e.Severity)), e.Section, e.Label, e.Message)
	}
	for _, w := range res.Warnings {
		p.printf("%s %s\n", warningStyle.Render("note"), w)
	}
	return p.err
}

// CsvFormat outputs one line per evaluated fee in comma-separated value format.
func CsvFormat(w io.Writer, res *reconcile.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "section", "label", "le_amount", "cd_amount", "delta", "status", "flags"}); err != nil {
		return err
	}
	for _, row := range res.Rows() {
		f, eval := row.Envelope(), row.Result()
		codes := make([]string, 0, len(eval.Flags))
		for _, flag := range eval.Flags {
			codes = append(codes, string(flag.Code))
		}
		record := []string{
			f.ID,
			string(row.Section()),
			f.Label,
			fmt.Sprintf("%.2f", f.LE.Borrower),
			fmt.Sprintf("%.2f", f.CD.Borrower),
			fmt.Sprintf("%.2f", eval.Delta),
			string(eval.Status),
			strings.Join(codes, ";"),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// JSONFormat outputs the full result as indented JSON.
func JSONFormat(w io.Writer, res *reconcile.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

func statusStyle(s tolerance.Status) lipgloss.Style {
	switch s {
	case tolerance.StatusPass:
		return passStyle
	case tolerance.StatusFail, tolerance.StatusOver:
		return failStyle
	default:
		return reviewStyle
	}
}

func severityStyle(s tolerance.Severity) lipgloss.Style {
	if s == tolerance.SeverityError {
		return errorStyle
	}
	return warningStyle
}

// printer keeps the first write error so the report body can ignore them.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(layout string, args ...interface{}) {
	p.fprintf(p.w, layout, args...)
}

func (p *printer) fprintf(w io.Writer, layout string, args ...interface{}) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(w, layout, args...)
}
