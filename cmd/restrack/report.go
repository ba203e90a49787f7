package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	nameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	kindStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	passStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// printer renders with lipgloss styles when styled is set and as plain text
// otherwise.
type printer struct {
	w      io.Writer
	styled bool
}

func (p printer) style(s lipgloss.Style, text string) string {
	if !p.styled {
		return text
	}
	return s.Render(text)
}

func (p printer) printf(format string, args ...any) {
	fmt.Fprintf(p.w, format, args...)
}

// Render writes a human readable report.
func (p printer) Render(r *Report) {
	p.printf("%s runtime %s\n\n", p.style(titleStyle, r.Scenario), r.Runtime)

	for _, s := range r.Steps {
		status := p.style(passStyle, "ok  ")
		if !s.Passed {
			status = p.style(errorStyle, "FAIL")
		}
		p.printf("%s %2d %s\n", status, s.Index, describeStep(s.Step))
		if s.Err != nil {
			p.printf("        %s\n", p.style(helpStyle, s.Err.Error()))
		}
		if !s.Passed && s.Step.Expect != "" {
			p.printf("        %s\n", p.style(errorStyle, "expected "+s.Step.Expect))
		}
	}

	p.printf("\n")
	for _, e := range r.Entries {
		p.printf("  %s\n", p.formatEntry(e))
	}

	if len(r.Metrics) > 0 {
		p.printf("\n")
		for _, m := range r.Metrics {
			name := m.Name
			if m.Labels != "" {
				name += "{" + m.Labels + "}"
			}
			p.printf("  %-60s %g\n", p.style(kindStyle, name), m.Value)
		}
	}

	summary := fmt.Sprintf("%d steps, %d failed, %d edges left", len(r.Steps), r.Failed(), r.Edges)
	p.printf("\n%s\n\n", p.style(helpStyle, summary))
}

func (p printer) formatEntry(e Entry) string {
	var b strings.Builder
	b.WriteString(p.style(nameStyle, e.Name))
	b.WriteString(" ")
	b.WriteString(p.style(kindStyle, e.Kind))
	if e.Disposed {
		b.WriteString(" (disposed)")
		return b.String()
	}
	if e.Display != "" && e.Display != e.Name {
		fmt.Fprintf(&b, " %q", e.Display)
	}
	if e.IsGroup {
		fmt.Fprintf(&b, " members=%d", e.Members)
		if e.Sealed {
			b.WriteString(" sealed")
		}
	}
	if e.Dependents > 0 {
		fmt.Fprintf(&b, " dependents=%d", e.Dependents)
	}
	return b.String()
}

func describeStep(s Step) string {
	var parts []string
	parts = append(parts, s.Action)
	if s.Group != "" {
		parts = append(parts, "group="+s.Group)
	}
	if s.Target != "" {
		parts = append(parts, s.Target)
	}
	if s.Name != "" {
		parts = append(parts, fmt.Sprintf("%q", s.Name))
	}
	if s.Cascade != nil {
		parts = append(parts, fmt.Sprintf("cascade=%t", *s.Cascade))
	}
	return strings.Join(parts, " ")
}
