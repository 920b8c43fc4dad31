// Package export renders a project document as plain text, markdown or
// JSON.
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/stratadoc/strata/internal/canon"
	"github.com/stratadoc/strata/internal/errs"
	"github.com/stratadoc/strata/internal/model"
)

// Formats supported by Write.
const (
	FormatText     = "txt"
	FormatMarkdown = "md"
	FormatJSON     = "json"
)

// Write renders p in the given format.
func Write(w io.Writer, p *model.Project, format string) error {
	switch format {
	case FormatText:
		return Text(w, p)
	case FormatMarkdown:
		return Markdown(w, p)
	case FormatJSON:
		return JSON(w, p)
	default:
		return errs.Validation("format", "must be one of txt, md, json")
	}
}

// Text writes the document as plain text.
func Text(w io.Writer, p *model.Project) error {
	var b strings.Builder
	b.WriteString(p.Title + "\n")
	b.WriteString(strings.Repeat("=", len(p.Title)) + "\n\n")
	if p.Description != "" {
		b.WriteString(p.Description + "\n\n")
	}
	for i := range p.Sections {
		sec := &p.Sections[i]
		b.WriteString(sec.Title + "\n")
		b.WriteString(strings.Repeat("-", len(sec.Title)) + "\n")
		b.WriteString(sec.Content + "\n\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// Markdown writes the document as markdown.
func Markdown(w io.Writer, p *model.Project) error {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", p.Title)
	if p.Description != "" {
		fmt.Fprintf(&b, "> %s\n\n", p.Description)
	}
	for i := range p.Sections {
		sec := &p.Sections[i]
		fmt.Fprintf(&b, "## %s\n\n", sec.Title)
		b.WriteString(sec.Content + "\n\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// JSON writes the document as canonical JSON.
func JSON(w io.Writer, p *model.Project) error {
	doc, err := canon.Marshal(p)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, doc)
	return err
}
