package workspace

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/stratadoc/strata/internal/auth"
	"github.com/stratadoc/strata/internal/cloudsync"
	"github.com/stratadoc/strata/internal/llm"
	"github.com/stratadoc/strata/internal/model"
	"github.com/stratadoc/strata/internal/store"
)

type failingSyncer struct{ calls int }

func (f *failingSyncer) Push(ctx context.Context, projectID string, proj *model.Project, label string) error {
	f.calls++
	return errors.New("remote unavailable")
}

func (f *failingSyncer) Name() string { return "failing" }

func newTestWorkspace(t *testing.T, sync *failingSyncer) *Workspace {
	t.Helper()
	db, err := store.Open(filepath.Join(t.TempDir(), "test.db"), zerolog.Nop())
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	var s cloudsync.Syncer
	if sync != nil {
		s = sync
	}
	return New(
		store.NewProjectStore(db),
		store.NewVersionLog(db),
		auth.NewStatic("tester"),
		llm.New(llm.Config{}),
		s,
		zerolog.Nop(),
	)
}

func TestMutationLifecycle(t *testing.T) {
	ctx := context.Background()
	w := newTestWorkspace(t, nil)

	proj, err := w.CreateProject(ctx, store.CreateParams{
		Title:       "T1",
		Description: "a test project",
		ProjectType: "article",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Creation logs an action but no version.
	versions, _ := w.Log().History(ctx, store.HistoryParams{ProjectID: proj.ID, Type: model.EntryVersion})
	if len(versions) != 0 {
		t.Fatalf("expected no versions after create, got %d", len(versions))
	}
	actions, _ := w.Log().History(ctx, store.HistoryParams{ProjectID: proj.ID, Type: model.EntryAction})
	if len(actions) != 1 || actions[0].ActionType != model.ActionCreateProject {
		t.Fatalf("expected one create_project action, got %+v", actions)
	}

	secID, err := w.AddSection(ctx, proj.ID, "Intro", "Hello world", "")
	if err != nil {
		t.Fatalf("add section: %v", err)
	}
	versions, _ = w.Log().History(ctx, store.HistoryParams{ProjectID: proj.ID, Type: model.EntryVersion})
	if len(versions) != 1 {
		t.Fatalf("expected 1 version after add, got %d", len(versions))
	}
	if !strings.Contains(versions[0].Description, "Intro") {
		t.Errorf("version description %q should mention the section", versions[0].Description)
	}
	if versions[0].Actor != "tester" {
		t.Errorf("actor = %q, want tester", versions[0].Actor)
	}
	v1 := versions[0].ID

	next := "Hello world again"
	ok, err := w.UpdateSection(ctx, proj.ID, secID, store.SectionUpdate{Content: &next})
	if err != nil || !ok {
		t.Fatalf("update section: ok=%v err=%v", ok, err)
	}
	versions, _ = w.Log().History(ctx, store.HistoryParams{ProjectID: proj.ID, Type: model.EntryVersion})
	if len(versions) != 2 {
		t.Fatalf("expected 2 versions after update, got %d", len(versions))
	}
	v2 := versions[0].ID

	diff, err := w.Log().Compare(ctx, proj.ID, v1, v2)
	if err != nil {
		t.Fatalf("compare: %v", err)
	}
	if !strings.Contains(diff, "+") || !strings.Contains(diff, "Hello world again") {
		t.Errorf("diff should show the added line:\n%s", diff)
	}
	if !strings.Contains(diff, "-") || !strings.Contains(diff, "Hello world") {
		t.Errorf("diff should show the removed line:\n%s", diff)
	}
}

func TestRemoveSectionAndStatus(t *testing.T) {
	ctx := context.Background()
	w := newTestWorkspace(t, nil)
	proj, err := w.CreateProject(ctx, store.CreateParams{
		Title:       "T1",
		Description: "a test project",
		ProjectType: "article",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	secID, err := w.AddSection(ctx, proj.ID, "Intro", "Hello world", "")
	if err != nil {
		t.Fatalf("add section: %v", err)
	}

	ok, err := w.RemoveSection(ctx, proj.ID, secID)
	if err != nil || !ok {
		t.Fatalf("remove section: ok=%v err=%v", ok, err)
	}
	versions, _ := w.Log().History(ctx, store.HistoryParams{ProjectID: proj.ID, Type: model.EntryVersion})
	if len(versions) != 2 {
		t.Fatalf("expected 2 versions, got %d", len(versions))
	}
	if !strings.Contains(versions[0].Description, "Intro") {
		t.Errorf("removal description %q should name the removed section", versions[0].Description)
	}

	if ok, err := w.RemoveSection(ctx, proj.ID, "no-such-section"); err != nil || ok {
		t.Errorf("removing missing section: ok=%v err=%v", ok, err)
	}

	if err := w.SetStatus(ctx, proj.ID, model.StatusDraftInProgress); err != nil {
		t.Fatalf("set status: %v", err)
	}
	got, err := w.Projects().Load(ctx, proj.ID)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Status != model.StatusDraftInProgress {
		t.Errorf("status = %q", got.Status)
	}
}

func TestSyncFailureDoesNotFailMutation(t *testing.T) {
	ctx := context.Background()
	sync := &failingSyncer{}
	w := newTestWorkspace(t, sync)

	proj, err := w.CreateProject(ctx, store.CreateParams{
		Title:       "T1",
		Description: "a test project",
		ProjectType: "article",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := w.AddSection(ctx, proj.ID, "Intro", "Hello world", ""); err != nil {
		t.Fatalf("add section should succeed despite sync failure: %v", err)
	}
	if sync.calls != 1 {
		t.Errorf("expected 1 push attempt, got %d", sync.calls)
	}
	versions, _ := w.Log().History(ctx, store.HistoryParams{ProjectID: proj.ID, Type: model.EntryVersion})
	if len(versions) != 1 {
		t.Errorf("expected 1 version, got %d", len(versions))
	}
}

func TestDraftFillsSection(t *testing.T) {
	ctx := context.Background()
	w := newTestWorkspace(t, nil)
	proj, err := w.CreateProject(ctx, store.CreateParams{
		Title:       "T1",
		Description: "a test project",
		ProjectType: "article",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	secID, err := w.AddSection(ctx, proj.ID, "Intro", "placeholder", "")
	if err != nil {
		t.Fatalf("add section: %v", err)
	}

	text, err := w.Draft(ctx, proj.ID, secID, "Write an introduction")
	if err != nil {
		t.Fatalf("draft: %v", err)
	}
	if text == "" {
		t.Fatal("draft returned empty text")
	}
	got, err := w.Projects().Load(ctx, proj.ID)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Sections[0].Content != text {
		t.Error("drafted text was not applied to the section")
	}
}

func TestRestoreThroughWorkspace(t *testing.T) {
	ctx := context.Background()
	w := newTestWorkspace(t, nil)
	proj, err := w.CreateProject(ctx, store.CreateParams{
		Title:       "T1",
		Description: "a test project",
		ProjectType: "article",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	secID, err := w.AddSection(ctx, proj.ID, "Intro", "Hello world", "")
	if err != nil {
		t.Fatalf("add section: %v", err)
	}
	versions, _ := w.Log().History(ctx, store.HistoryParams{ProjectID: proj.ID, Type: model.EntryVersion})
	v1 := versions[0].ID

	next := "Hello world again"
	if ok, err := w.UpdateSection(ctx, proj.ID, secID, store.SectionUpdate{Content: &next}); err != nil || !ok {
		t.Fatalf("update: ok=%v err=%v", ok, err)
	}

	if !w.Restore(ctx, proj.ID, v1) {
		t.Fatal("restore should succeed")
	}
	got, err := w.Projects().Load(ctx, proj.ID)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Sections[0].Content != "Hello world" {
		t.Errorf("restored content = %q", got.Sections[0].Content)
	}

	if w.Restore(ctx, proj.ID, "no-such-version") {
		t.Error("restore of missing version should report failure")
	}
}
