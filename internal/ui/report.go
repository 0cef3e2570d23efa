package ui

import (
	"fmt"
	"strings"
)

// ServiceLine is one supervised process in the status report.
type ServiceLine struct {
	Name     string
	Status   string
	PID      int
	Restarts int
	Online   bool
}

// CheckLine is one boolean check with an optional detail.
type CheckLine struct {
	Name   string
	OK     bool
	Detail string
}

// Report is a renderable snapshot of the provisioned host.
type Report struct {
	Domain string

	Edge     []CheckLine
	Services []ServiceLine
	Probes   []CheckLine

	// Styled enables lipgloss colors. Leave false for non-TTY output.
	Styled bool
}

// Render produces the full status report as a string.
func (r *Report) Render() string {
	var b strings.Builder

	title := fmt.Sprintf("dapphost: %s", r.Domain)
	b.WriteString("\n")
	b.WriteString("  " + r.style(titleStyle, title) + "\n")
	b.WriteString("  " + strings.Repeat("=", len(title)) + "\n")

	if len(r.Edge) > 0 {
		b.WriteString(r.section("Edge"))
		for _, c := range r.Edge {
			b.WriteString(r.checkRow(c))
		}
	}

	if len(r.Services) > 0 {
		b.WriteString(r.section("Services"))
		for _, svc := range r.Services {
			b.WriteString(r.serviceRow(svc))
		}
	}

	if len(r.Probes) > 0 {
		b.WriteString(r.section("Probes"))
		for _, c := range r.Probes {
			b.WriteString(r.checkRow(c))
		}
	}

	b.WriteString("\n")
	return b.String()
}

func (r *Report) section(name string) string {
	return "\n  " + r.style(sectionStyle, name) + "\n  " + strings.Repeat("-", 35) + "\n"
}

func (r *Report) checkRow(c CheckLine) string {
	mark := r.style(okStyle, checkMark)
	if !c.OK {
		mark = r.style(failStyle, crossMark)
	}
	if c.Detail != "" {
		return fmt.Sprintf("  %s  %-20s %s\n", mark, c.Name, r.style(dimStyle, c.Detail))
	}
	return fmt.Sprintf("  %s  %s\n", mark, c.Name)
}

func (r *Report) serviceRow(svc ServiceLine) string {
	mark := r.style(okStyle, checkMark)
	if !svc.Online {
		mark = r.style(failStyle, crossMark)
	}
	detail := r.style(dimStyle, fmt.Sprintf("%s, pid %d", svc.Status, svc.PID))
	if svc.Restarts > 0 {
		detail += " " + r.style(warnStyle, fmt.Sprintf("(%d restarts)", svc.Restarts))
	}
	return fmt.Sprintf("  %s  %-20s %s\n", mark, svc.Name, detail)
}

// style applies s only when styling is enabled.
func (r *Report) style(s interface{ Render(...string) string }, text string) string {
	if !r.Styled {
		return text
	}
	return s.Render(text)
}
