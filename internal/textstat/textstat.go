// Package textstat provides word and character accounting for sections and
// snapshots.
package textstat

import (
	"strings"

	"github.com/stratadoc/strata/internal/model"
)

// Words counts whitespace-delimited tokens.
func Words(s string) int {
	return len(strings.Fields(s))
}

// Chars counts bytes of content. Section content is the unit users reason
// about, so markup is counted as written.
func Chars(s string) int {
	return len(s)
}

// Blank reports whether s contains no non-whitespace characters.
func Blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// ProjectWords sums word counts across all sections.
func ProjectWords(p *model.Project) int {
	total := 0
	for i := range p.Sections {
		total += Words(p.Sections[i].Content)
	}
	return total
}

// ProjectChars sums character counts across all sections.
func ProjectChars(p *model.Project) int {
	total := 0
	for i := range p.Sections {
		total += Chars(p.Sections[i].Content)
	}
	return total
}

// Completion returns the percentage of sections with non-blank content,
// or 0 for a project with no sections.
func Completion(p *model.Project) float64 {
	if len(p.Sections) == 0 {
		return 0
	}
	filled := 0
	for i := range p.Sections {
		if !Blank(p.Sections[i].Content) {
			filled++
		}
	}
	return float64(filled) / float64(len(p.Sections)) * 100
}
