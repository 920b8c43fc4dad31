// Package cloudsync pushes project snapshots to off-box storage. Pushes are
// best-effort from the core's point of view: failures are logged by the
// caller and never block or fail the mutation that triggered them.
package cloudsync

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/stratadoc/strata/internal/canon"
	"github.com/stratadoc/strata/internal/model"
)

// Syncer pushes a labeled snapshot of a project.
type Syncer interface {
	Push(ctx context.Context, projectID string, snapshot *model.Project, label string) error
	Name() string
}

// Noop discards every push.
type Noop struct{}

func (Noop) Push(context.Context, string, *model.Project, string) error { return nil }
func (Noop) Name() string                                               { return "noop" }

// Dir writes snapshots into a local directory tree, one file per push —
// typically a mounted drive folder standing in for Drive/IPFS.
type Dir struct {
	Root string
}

// NewDir creates a directory-backed syncer.
func NewDir(root string) *Dir {
	return &Dir{Root: root}
}

func (d *Dir) Name() string {
	return "dir:" + d.Root
}

var labelSafe = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// Push writes the snapshot as canonical JSON under Root/projectID. The
// write goes through a temp file and rename so a crash never leaves a
// truncated snapshot behind.
func (d *Dir) Push(_ context.Context, projectID string, snapshot *model.Project, label string) error {
	dir := filepath.Join(d.Root, projectID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("sync mkdir: %w", err)
	}

	doc, err := canon.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("sync encode: %w", err)
	}

	name := fmt.Sprintf("%s-%s.json",
		time.Now().UTC().Format("20060102T150405"),
		labelSafe.ReplaceAllString(label, "-"))
	path := filepath.Join(dir, name)

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(doc), 0o644); err != nil {
		return fmt.Errorf("sync write: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("sync rename: %w", err)
	}
	return nil
}
