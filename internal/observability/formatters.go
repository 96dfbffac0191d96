// Package observability provides formatted output utilities for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/resumix/resumix/internal/projection"
	"github.com/resumix/resumix/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxLinesToShow is the number of lines displayed per item
	maxLinesToShow = 3
)

// Printer handles formatted output.
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer.
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintUserStatus outputs the dashboard readiness summary.
func (p *Printer) PrintUserStatus(status *types.UserStatus) {
	if status == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Items:    %d\n", status.ItemCount))
	sb.WriteString(fmt.Sprintf("Content:  %s\n", status.ResumeState))
	sb.WriteString(fmt.Sprintf("Tuning:   %s\n", status.TweakStatus))
	sb.WriteString(fmt.Sprintf("Generate: %s", status.GenerateStatus))

	p.printBox("RESUME READINESS", sb.String())
}

// PrintDocument outputs a readable summary of the stored document in the
// given projection mode.
func (p *Printer) PrintDocument(rendered projection.Rendered) {
	var sb strings.Builder

	sb.WriteString(rendered.Heading.Name)
	sb.WriteString("\n")
	for _, contact := range rendered.Heading.ContactLines {
		if contact != "" {
			sb.WriteString(contact)
			sb.WriteString("\n")
		}
	}

	for _, section := range rendered.Sections {
		sb.WriteString("\n")
		sb.WriteString(strings.ToUpper(section.Title))
		sb.WriteString("\n")
		for _, item := range section.Items {
			p.writeItem(&sb, item, rendered.Mode)
		}
	}

	p.printBox(fmt.Sprintf("RESUME (%s)", rendered.Mode), strings.TrimRight(sb.String(), "\n"))
}

func (p *Printer) writeItem(sb *strings.Builder, item projection.RenderedItem, mode projection.Mode) {
	if item.Compact {
		sb.WriteString("  " + item.CompactText + "\n")
		return
	}

	if item.Titles != nil {
		title := item.Titles.Row1.Left.Text()
		if item.Titles.Row1.Right != nil && item.Titles.Row1.Right.Text() != "" {
			title += "  " + item.Titles.Row1.Right.Text()
		}
		sb.WriteString("  " + title + "\n")
	}
	if mode == projection.ModeParameters {
		sb.WriteString(fmt.Sprintf("    weight %s, bias %s\n", item.Weight, item.Bias))
	}

	shown := 0
	for _, line := range item.Lines {
		if shown == maxLinesToShow {
			sb.WriteString(fmt.Sprintf("    ... and %d more\n", len(item.Lines)-shown))
			break
		}
		sb.WriteString("    • " + line.Text + "\n")
		shown++
	}
}
