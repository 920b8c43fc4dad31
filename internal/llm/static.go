package llm

import (
	"context"
	"fmt"
	"strings"
)

// staticGenerator produces a deterministic outline scaffold. It keeps the
// drafting workflow usable with no model endpoint configured, and gives
// tests a generator with predictable output.
type staticGenerator struct{}

func (g *staticGenerator) Name() string {
	return "static"
}

func (g *staticGenerator) Generate(_ context.Context, req Request) (string, error) {
	topic := strings.TrimSpace(req.Prompt)
	if topic == "" {
		return "", fmt.Errorf("prompt cannot be empty")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "[draft] %s\n\n", topic)
	b.WriteString("- Opening: state the problem and why it matters.\n")
	b.WriteString("- Body: develop the argument with evidence.\n")
	b.WriteString("- Closing: summarize and point forward.\n")
	if req.Style != "" {
		fmt.Fprintf(&b, "\nStyle: %s.\n", req.Style)
	}
	return b.String(), nil
}
