// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package console renders validation issues for a terminal,
// with the offending span of each document highlighted.
package console

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/Independence-University/json-validator/pkg/jsonschema"
	"github.com/Independence-University/json-validator/pkg/jsontext"
)

// Styles for the parts of a rendered issue.
var (
	syntaxStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF5555"))

	validationStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFB86C"))

	schemaStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#8BE9FD"))

	filePathStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#BD93F9"))

	lineNumberStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6272A4"))

	highlightStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#FF5555")).
			Foreground(lipgloss.Color("#282A36"))

	pointerStyle = lipgloss.NewStyle().
			Italic(true).
			Foreground(lipgloss.Color("#50FA7B"))

	successStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#50FA7B"))
)

// Printer renders issues as text.
type Printer struct {
	// Color enables styling.
	Color bool
}

// NewPrinter returns a Printer for f.
// mode is "always", "never", or "auto", which styles
// output only when f is a terminal.
func NewPrinter(mode string, f *os.File) *Printer {
	switch mode {
	case "always":
		return &Printer{Color: true}
	case "never":
		return &Printer{}
	}
	return &Printer{Color: isTTY(f)}
}

// isTTY checks if f is a terminal
func isTTY(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// applyStyle conditionally applies styling
func (p *Printer) applyStyle(style lipgloss.Style, text string) string {
	if p.Color && text != "" {
		return style.Render(text)
	}
	return text
}

// FormatResult renders every issue in r. instanceName and
// schemaName are the names shown for the two documents.
func (p *Printer) FormatResult(r *jsonschema.Result, instanceName, schemaName string) string {
	var output strings.Builder
	if r.Valid() {
		output.WriteString(p.applyStyle(successStyle, "valid"))
		output.WriteString("\n")
		return output.String()
	}

	fmt.Fprintf(&output, "%d error(s)\n", len(r.Errors))
	instance := &jsontext.Document{Text: r.InstanceDocumentText}
	schema := &jsontext.Document{Text: r.SchemaText}
	for _, is := range r.Errors {
		output.WriteString("\n")
		switch {
		case is.Document != "":
			output.WriteString(p.formatIssue(is, is.Document, nil))
		case is.Location == jsonschema.Schema:
			output.WriteString(p.formatIssue(is, schemaName, schema))
		default:
			output.WriteString(p.formatIssue(is, instanceName, instance))
		}
	}
	return output.String()
}

// formatIssue renders one issue. If doc is nil the text of the
// document is unknown and the span is shown as offsets.
func (p *Printer) formatIssue(is jsonschema.Issue, name string, doc *jsontext.Document) string {
	var output strings.Builder

	var typeStyle lipgloss.Style
	var prefix string
	switch {
	case is.Kind == jsonschema.Syntax:
		typeStyle = syntaxStyle
		prefix = "syntax error"
	case is.Location == jsonschema.Schema:
		typeStyle = schemaStyle
		prefix = "schema error"
	default:
		typeStyle = validationStyle
		prefix = "validation error"
	}

	// IDE-parseable format: file:line:column: type: message
	var line, col, length int
	if doc != nil {
		start := doc.ByteOffset(is.Start)
		end := max(doc.ByteOffset(is.Start+is.Length), start)
		length = utf8.RuneCountInString(doc.Text[start:end])
		line, col = doc.Position(start)
		output.WriteString(p.applyStyle(filePathStyle, fmt.Sprintf("%s:%d:%d:", name, line, col)))
	} else {
		output.WriteString(p.applyStyle(filePathStyle, fmt.Sprintf("%s@%d:", name, is.Start)))
	}
	output.WriteString(" ")
	output.WriteString(p.applyStyle(typeStyle, prefix+":"))
	output.WriteString(" ")
	output.WriteString(is.Message)
	output.WriteString("\n")

	if doc != nil && doc.Text != "" {
		output.WriteString(p.renderContext(doc, line, col, length))
	}

	if is.KeywordLocation != "" {
		output.WriteString(p.applyStyle(pointerStyle, fmt.Sprintf("  at %s (schema %s)", is.InstanceLocation, is.KeywordLocation)))
		output.WriteString("\n")
	}
	return output.String()
}

// renderContext renders the line holding the span with its
// length code points highlighted, and a pointer line under it.
// A span running past the end of the line is cut there.
func (p *Printer) renderContext(doc *jsontext.Document, line, col, length int) string {
	var output strings.Builder

	text := []rune(doc.Line(line))
	from := min(col-1, len(text))
	to := min(from+max(length, 1), len(text))

	lineNumStr := fmt.Sprintf("%d", line)
	output.WriteString(p.applyStyle(lineNumberStyle, lineNumStr))
	output.WriteString(" | ")
	output.WriteString(string(text[:from]))
	output.WriteString(p.applyStyle(highlightStyle, string(text[from:to])))
	output.WriteString(string(text[to:]))
	output.WriteString("\n")

	padding := strings.Repeat(" ", len(lineNumStr)+3+from)
	output.WriteString(padding)
	output.WriteString(p.applyStyle(syntaxStyle, strings.Repeat("^", max(to-from, 1))))
	output.WriteString("\n")
	return output.String()
}
