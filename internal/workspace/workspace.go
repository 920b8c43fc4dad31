// Package workspace orchestrates mutations: every successful project
// mutation goes through the project store, is recorded as exactly one
// version in the log, and is then pushed to cloud sync on a best-effort
// basis. ProjectStore and VersionLog stay decoupled; this layer is the only
// place that calls both.
package workspace

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/stratadoc/strata/internal/auth"
	"github.com/stratadoc/strata/internal/cloudsync"
	"github.com/stratadoc/strata/internal/errs"
	"github.com/stratadoc/strata/internal/llm"
	"github.com/stratadoc/strata/internal/model"
	"github.com/stratadoc/strata/internal/store"
)

// Workspace wires the stores and collaborators together. Construct once per
// process and inject; there are no package-level instances.
type Workspace struct {
	projects *store.ProjectStore
	log      *store.VersionLog
	restorer *store.Restorer
	auth     auth.Authenticator
	ai       llm.Generator
	sync     cloudsync.Syncer
	logger   zerolog.Logger
}

// New creates a Workspace. Collaborators may be nil; a nil syncer disables
// cloud pushes and a nil authenticator records an empty actor.
func New(projects *store.ProjectStore, log *store.VersionLog, a auth.Authenticator, ai llm.Generator, sync cloudsync.Syncer, logger zerolog.Logger) *Workspace {
	return &Workspace{
		projects: projects,
		log:      log,
		restorer: store.NewRestorer(projects, log),
		auth:     a,
		ai:       ai,
		sync:     sync,
		logger:   logger.With().Str("component", "workspace").Logger(),
	}
}

// Projects exposes the underlying project store for read paths.
func (w *Workspace) Projects() *store.ProjectStore { return w.projects }

// Log exposes the underlying version log for read paths.
func (w *Workspace) Log() *store.VersionLog { return w.log }

// CreateProject creates a project and logs a create_project action. No
// version is appended: the first version appears with the first content
// mutation.
func (w *Workspace) CreateProject(ctx context.Context, p store.CreateParams) (*model.Project, error) {
	proj, err := w.projects.Create(ctx, p)
	if err != nil {
		return nil, err
	}
	if _, err := w.log.LogAction(ctx, store.ActionParams{
		ProjectID:  proj.ID,
		ActionType: model.ActionCreateProject,
		Details:    map[string]any{"title": proj.Title},
		Actor:      w.actor(),
	}); err != nil {
		return nil, err
	}
	return proj, nil
}

// AddSection adds a section and records one version.
func (w *Workspace) AddSection(ctx context.Context, projectID, title, content, sectionType string) (string, error) {
	id, err := w.projects.AddSection(ctx, projectID, title, content, sectionType)
	if err != nil {
		return "", err
	}
	if err := w.snapshot(ctx, projectID, fmt.Sprintf("Added section %q", title)); err != nil {
		return "", err
	}
	return id, nil
}

// UpdateSection applies upd and records one version. Returns false if the
// section does not exist.
func (w *Workspace) UpdateSection(ctx context.Context, projectID, sectionID string, upd store.SectionUpdate) (bool, error) {
	ok, err := w.projects.UpdateSection(ctx, projectID, sectionID, upd)
	if err != nil || !ok {
		return ok, err
	}
	title := w.sectionTitle(ctx, projectID, sectionID)
	if err := w.snapshot(ctx, projectID, fmt.Sprintf("Updated section %q", title)); err != nil {
		return false, err
	}
	return true, nil
}

// RemoveSection deletes a section and records one version. Returns false if
// the section does not exist.
func (w *Workspace) RemoveSection(ctx context.Context, projectID, sectionID string) (bool, error) {
	title := w.sectionTitle(ctx, projectID, sectionID)
	ok, err := w.projects.DeleteSection(ctx, projectID, sectionID)
	if err != nil || !ok {
		return ok, err
	}
	if err := w.snapshot(ctx, projectID, fmt.Sprintf("Removed section %q", title)); err != nil {
		return false, err
	}
	return true, nil
}

// SetStatus changes the project status and records one version.
func (w *Workspace) SetStatus(ctx context.Context, projectID, status string) error {
	if err := w.projects.UpdateStatus(ctx, projectID, status); err != nil {
		return err
	}
	return w.snapshot(ctx, projectID, "Status changed to "+status)
}

// Draft generates content for a section and applies it through
// UpdateSection. The generator's result is treated as a plain input string;
// nothing here assumes any latency or retry behavior from it.
func (w *Workspace) Draft(ctx context.Context, projectID, sectionID, prompt string) (string, error) {
	if w.ai == nil {
		return "", errs.Validation("generator", "no generator configured")
	}

	proj, err := w.projects.Load(ctx, projectID)
	if err != nil {
		return "", err
	}
	sec := proj.Section(sectionID)
	if sec == nil {
		return "", errs.NotFound("section", sectionID)
	}

	req := llm.Request{Prompt: prompt, Style: proj.Preferences["style"]}
	if prompt == "" {
		req.Prompt = fmt.Sprintf("Draft the %q section of %q. %s", sec.Title, proj.Title, proj.Description)
	}

	text, err := w.ai.Generate(ctx, req)
	if err != nil {
		return "", err
	}

	ok, err := w.UpdateSection(ctx, projectID, sectionID, store.SectionUpdate{Content: &text})
	if err != nil {
		return "", err
	}
	if !ok {
		return "", errs.NotFound("section", sectionID)
	}
	return text, nil
}

// Restore rolls the project back to a recorded version. Failures are
// logged as actions, not raised.
func (w *Workspace) Restore(ctx context.Context, projectID, versionID string) bool {
	return w.restorer.Restore(ctx, projectID, versionID, w.actor())
}

// snapshot loads the post-mutation state, appends a version and fires the
// best-effort cloud push. Append failures propagate: losing a version write
// is correctness-relevant. Sync failures are only logged.
func (w *Workspace) snapshot(ctx context.Context, projectID, description string) error {
	proj, err := w.projects.Load(ctx, projectID)
	if err != nil {
		return err
	}

	versionID, err := w.log.Append(ctx, store.AppendParams{
		ProjectID:   projectID,
		State:       proj,
		Description: description,
		Actor:       w.actor(),
	})
	if err != nil {
		return err
	}

	if versionID != "" && w.sync != nil {
		if err := w.sync.Push(ctx, projectID, proj, description); err != nil {
			w.logger.Warn().Err(err).Str("project_id", projectID).
				Str("syncer", w.sync.Name()).Msg("cloud push failed")
		}
	}
	return nil
}

func (w *Workspace) sectionTitle(ctx context.Context, projectID, sectionID string) string {
	proj, err := w.projects.Load(ctx, projectID)
	if err != nil {
		return sectionID
	}
	if sec := proj.Section(sectionID); sec != nil {
		return sec.Title
	}
	return sectionID
}

func (w *Workspace) actor() string {
	if w.auth == nil {
		return ""
	}
	return w.auth.CurrentActorID()
}
