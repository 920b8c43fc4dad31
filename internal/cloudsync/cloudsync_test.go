package cloudsync

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stratadoc/strata/internal/canon"
	"github.com/stratadoc/strata/internal/model"
)

func TestDirPush(t *testing.T) {
	root := t.TempDir()
	d := NewDir(root)

	proj := &model.Project{ID: "p1", Title: "T1", Status: model.StatusCreated}
	if err := d.Push(context.Background(), "p1", proj, `Added section "Intro"`); err != nil {
		t.Fatalf("push: %v", err)
	}

	entries, err := os.ReadDir(filepath.Join(root, "p1"))
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 snapshot, got %d", len(entries))
	}
	name := entries[0].Name()
	if !strings.HasSuffix(name, ".json") || strings.Contains(name, `"`) {
		t.Errorf("unexpected snapshot name %q", name)
	}
	if strings.HasSuffix(name, ".tmp") {
		t.Errorf("temp file left behind: %q", name)
	}

	got, err := os.ReadFile(filepath.Join(root, "p1", name))
	if err != nil {
		t.Fatalf("read snapshot: %v", err)
	}
	want, err := canon.Marshal(proj)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(got) != want {
		t.Error("snapshot content does not match canonical form")
	}
}

func TestNoopPush(t *testing.T) {
	var s Syncer = Noop{}
	if err := s.Push(context.Background(), "p1", &model.Project{}, "label"); err != nil {
		t.Fatalf("noop push: %v", err)
	}
}
