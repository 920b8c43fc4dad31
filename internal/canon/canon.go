// Package canon produces the canonical textual serialization used for
// idempotence checks and diffing. Identical logical states always yield
// byte-identical text.
package canon

import (
	"encoding/json"
	"fmt"

	"github.com/pmezard/go-difflib/difflib"
)

// Marshal renders v as key-sorted, two-space-indented JSON. The value is
// round-tripped through a generic map so struct field order never leaks into
// the output; encoding/json writes map keys in sorted order.
func Marshal(v any) (string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("canonical marshal: %w", err)
	}
	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return "", fmt.Errorf("canonical remarshal: %w", err)
	}
	out, err := json.MarshalIndent(generic, "", "  ")
	if err != nil {
		return "", fmt.Errorf("canonical indent: %w", err)
	}
	return string(out) + "\n", nil
}

// Diff computes a line-based unified diff from a to b. The labels name the
// two states in the diff header. Returns "" when the inputs are identical.
func Diff(a, b, fromLabel, toLabel string) (string, error) {
	if a == b {
		return "", nil
	}
	ud := difflib.UnifiedDiff{
		A:        difflib.SplitLines(a),
		B:        difflib.SplitLines(b),
		FromFile: fromLabel,
		ToFile:   toLabel,
		Context:  3,
	}
	text, err := difflib.GetUnifiedDiffString(ud)
	if err != nil {
		return "", fmt.Errorf("unified diff: %w", err)
	}
	return text, nil
}

// ShortID returns the first 8 characters of an identifier for display.
func ShortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}
