package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/skfit-uni-luebeck/EDQM2FHIR/internal/usecase"
)

type theme struct {
	title  lipgloss.Style
	faint  lipgloss.Style
	ok     lipgloss.Style
	warn   lipgloss.Style
	failed lipgloss.Style
	card   lipgloss.Style
}

func defaultTheme() theme {
	return theme{
		title:  lipgloss.NewStyle().Bold(true),
		faint:  lipgloss.NewStyle().Faint(true),
		ok:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
		warn:   lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		failed: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
		card: lipgloss.NewStyle().
			Padding(0, 1).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")),
	}
}

// maxListedWarnings caps the dropped elements printed in the summary; the
// full list is in the log and the review workbook.
const maxListedWarnings = 10

func printConvert(w io.Writer, res usecase.ConvertResult, outDir, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	case "pretty", "":
		fmt.Fprintln(w, renderSummary(res, outDir))
		return nil
	default:
		return fmt.Errorf("unsupported format %q (expected pretty|json)", format)
	}
}

func renderSummary(res usecase.ConvertResult, outDir string) string {
	t := defaultTheme()
	var b strings.Builder

	b.WriteString(t.title.Render("EDQM Standard Terms converted") + "\n")
	fmt.Fprintf(&b, "Run ID:     %s\n", res.RunID)
	fmt.Fprintf(&b, "Version:    %s\n", res.Generation.Version())
	fmt.Fprintf(&b, "Languages:  %s\n", strings.Join(res.Languages, ", "))
	fmt.Fprintf(&b, "Classes:    %d\n", res.Classes)
	fmt.Fprintf(&b, "Concepts:   %d\n", res.Concepts)
	if !res.EndedAt.IsZero() {
		fmt.Fprintf(&b, "Duration:   %s\n", res.EndedAt.Sub(res.StartedAt).Round(time.Millisecond))
	}

	b.WriteString("\n" + t.title.Render("Value sets") + "\n")
	for _, p := range res.Partitions {
		line := fmt.Sprintf("  %-40s %-6s %6d", p.Name, p.ClassCode, p.Members)
		if p.Members == 0 {
			line = t.warn.Render(line + "  (empty)")
		}
		b.WriteString(line + "\n")
	}

	b.WriteString("\n" + t.title.Render("Files") + " " + t.faint.Render(outDir) + "\n")
	for _, f := range res.Files {
		rel, err := filepath.Rel(outDir, f)
		if err != nil || strings.HasPrefix(rel, "..") {
			rel = f
		}
		b.WriteString("  " + t.ok.Render("✓") + " " + rel + "\n")
	}

	if n := len(res.Warnings); n > 0 {
		b.WriteString("\n" + t.warn.Render(fmt.Sprintf("%d dropped element(s)", n)) + "\n")
		for i, wr := range res.Warnings {
			if i == maxListedWarnings {
				b.WriteString(t.faint.Render(fmt.Sprintf("  … %d more (see log)", n-maxListedWarnings)) + "\n")
				break
			}
			fmt.Fprintf(&b, "  %s %s: %s\n", wr.Concept, wr.Element, wr.Message)
		}
	}

	return t.card.Render(strings.TrimRight(b.String(), "\n"))
}
