package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
)

func TestExportImportRoundTrip(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	s := NewProjectStore(db)
	l := NewVersionLog(db)
	proj := mustCreate(t, s, "T1")

	appendVersion(t, s, l, proj.ID, "draft one", "v1")
	appendVersion(t, s, l, proj.ID, "draft two", "v2")
	l.LogAction(ctx, ActionParams{ProjectID: proj.ID, ActionType: "export", Actor: "tester"})

	arch, err := s.ExportProject(ctx, proj.ID)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if arch.Project.ID != proj.ID {
		t.Errorf("archive project id = %q", arch.Project.ID)
	}
	if len(arch.History) != 3 {
		t.Fatalf("expected 3 history entries, got %d", len(arch.History))
	}
	// Oldest first so import replays in append order.
	for i := 1; i < len(arch.History); i++ {
		if arch.History[i].Seq <= arch.History[i-1].Seq {
			t.Errorf("archive history not oldest-first at %d", i)
		}
	}
	if arch.History[0].Snapshot == "" {
		t.Error("archive should include snapshots")
	}

	// Import into a fresh database.
	db2, err := Open(filepath.Join(t.TempDir(), "other.db"), zerolog.Nop())
	if err != nil {
		t.Fatalf("open second db: %v", err)
	}
	defer db2.Close()
	s2 := NewProjectStore(db2)
	l2 := NewVersionLog(db2)

	imported, err := s2.ImportProject(ctx, arch)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if imported != 3 {
		t.Errorf("expected 3 imported entries, got %d", imported)
	}

	got, err := s2.Load(ctx, proj.ID)
	if err != nil {
		t.Fatalf("load after import: %v", err)
	}
	if got.Sections[0].Content != "draft two" {
		t.Errorf("imported current state = %q", got.Sections[0].Content)
	}

	entries, _ := l2.History(ctx, HistoryParams{ProjectID: proj.ID})
	if len(entries) != 3 {
		t.Errorf("expected 3 entries after import, got %d", len(entries))
	}
}
