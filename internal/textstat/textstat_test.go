package textstat

import (
	"testing"

	"github.com/stratadoc/strata/internal/model"
)

func TestWords(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"   ", 0},
		{"a b c", 3},
		{"one\ttwo\nthree  four", 4},
	}
	for _, tc := range cases {
		if got := Words(tc.in); got != tc.want {
			t.Errorf("Words(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestCompletion(t *testing.T) {
	p := &model.Project{}
	if got := Completion(p); got != 0 {
		t.Errorf("empty project completion = %v, want 0", got)
	}

	p.Sections = []model.Section{
		{Content: "a b c"},
		{Content: ""},
	}
	if got := Completion(p); got != 50.0 {
		t.Errorf("completion = %v, want 50.0", got)
	}
	if got := ProjectWords(p); got != 3 {
		t.Errorf("project words = %d, want 3", got)
	}

	p.Sections[1].Content = "   \n\t"
	if got := Completion(p); got != 50.0 {
		t.Errorf("blank-only content should not count as filled, got %v", got)
	}
}

func TestProjectChars(t *testing.T) {
	p := &model.Project{Sections: []model.Section{
		{Content: "abcd"},
		{Content: "ef"},
	}}
	if got := ProjectChars(p); got != 6 {
		t.Errorf("project chars = %d, want 6", got)
	}
}
