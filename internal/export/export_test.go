package export

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stratadoc/strata/internal/errs"
	"github.com/stratadoc/strata/internal/model"
)

func sampleProject() *model.Project {
	return &model.Project{
		ID:          "p1",
		Title:       "Field Notes",
		Description: "A study of tide pools.",
		Sections: []model.Section{
			{ID: "s1", Title: "Intro", Content: "The shoreline changes daily."},
			{ID: "s2", Title: "Methods", Content: "We sampled at low tide."},
		},
	}
}

func TestWriteMarkdown(t *testing.T) {
	var b strings.Builder
	if err := Write(&b, sampleProject(), FormatMarkdown); err != nil {
		t.Fatalf("write: %v", err)
	}
	out := b.String()
	for _, want := range []string{"# Field Notes", "> A study of tide pools.", "## Intro", "## Methods", "We sampled at low tide."} {
		if !strings.Contains(out, want) {
			t.Errorf("markdown missing %q:\n%s", want, out)
		}
	}
}

func TestWriteText(t *testing.T) {
	var b strings.Builder
	if err := Write(&b, sampleProject(), FormatText); err != nil {
		t.Fatalf("write: %v", err)
	}
	out := b.String()
	if !strings.Contains(out, "Field Notes\n===========") {
		t.Errorf("missing title underline:\n%s", out)
	}
	if !strings.Contains(out, "Intro\n-----") {
		t.Errorf("missing section underline:\n%s", out)
	}
}

func TestWriteJSON(t *testing.T) {
	var b strings.Builder
	if err := Write(&b, sampleProject(), FormatJSON); err != nil {
		t.Fatalf("write: %v", err)
	}
	var got model.Project
	if err := json.Unmarshal([]byte(b.String()), &got); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if got.Title != "Field Notes" || len(got.Sections) != 2 {
		t.Errorf("round-trip mismatch: %+v", got)
	}
}

func TestWriteUnknownFormat(t *testing.T) {
	var b strings.Builder
	err := Write(&b, sampleProject(), "docx")
	if !errs.IsValidation(err) {
		t.Errorf("expected validation error, got %v", err)
	}
}
