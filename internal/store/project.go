package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/stratadoc/strata/internal/canon"
	"github.com/stratadoc/strata/internal/errs"
	"github.com/stratadoc/strata/internal/model"
	"github.com/stratadoc/strata/internal/textstat"
)

const maxTitleLen = 100

// ProjectStore is the sole writer of current project state and the sole
// authority on section CRUD and metadata recomputation. It never writes to
// the version log; snapshotting belongs to the caller.
type ProjectStore struct {
	db     *DB
	logger zerolog.Logger
}

// NewProjectStore creates a ProjectStore over the shared database.
func NewProjectStore(db *DB) *ProjectStore {
	return &ProjectStore{
		db:     db,
		logger: db.logger.With().Str("component", "projects").Logger(),
	}
}

// CreateParams holds parameters for creating a project.
type CreateParams struct {
	Title       string
	Description string
	ProjectType string
	Preferences map[string]string
}

// Create initializes a new project with status "created" and no sections.
func (s *ProjectStore) Create(ctx context.Context, p CreateParams) (*model.Project, error) {
	if p.Title == "" {
		return nil, errs.Validation("title", "must not be empty")
	}
	if utf8.RuneCountInString(p.Title) > maxTitleLen {
		return nil, errs.Validation("title", "must be at most 100 characters")
	}
	if p.Description == "" {
		return nil, errs.Validation("description", "must not be empty")
	}

	proj := &model.Project{
		ID:          uuid.NewString(),
		Title:       p.Title,
		Description: p.Description,
		ProjectType: p.ProjectType,
		Status:      model.StatusCreated,
		Preferences: p.Preferences,
		Sections:    []model.Section{},
		CreatedAt:   now(),
	}
	recompute(proj)

	if err := s.Save(ctx, proj); err != nil {
		return nil, err
	}
	return proj, nil
}

// Load returns the current state of a project. A missing project is a
// NotFoundError, never a fabricated empty project; callers must distinguish
// an empty project from a failed lookup.
func (s *ProjectStore) Load(ctx context.Context, projectID string) (*model.Project, error) {
	var doc, updatedAt string
	err := s.db.sql.QueryRowContext(ctx,
		`SELECT doc, updated_at FROM projects WHERE id = ?`, projectID).Scan(&doc, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errs.NotFound("project", projectID)
	}
	if err != nil {
		return nil, errs.Storage("load project", err)
	}

	var proj model.Project
	if err := json.Unmarshal([]byte(doc), &proj); err != nil {
		return nil, errs.Storage("decode project", err)
	}
	proj.UpdatedAt, _ = time.Parse(timeLayout, updatedAt)
	return &proj, nil
}

// Save persists the full current state keyed by project id. Saving content
// identical to what is stored is a no-op: nothing is written and the
// last-modified time is left untouched.
func (s *ProjectStore) Save(ctx context.Context, proj *model.Project) error {
	if proj.ID == "" {
		return errs.Validation("project id", "must not be empty")
	}

	lock := s.db.projectLock(proj.ID)
	lock.Lock()
	defer lock.Unlock()
	return s.saveLocked(ctx, proj)
}

func (s *ProjectStore) saveLocked(ctx context.Context, proj *model.Project) error {
	doc, err := canon.Marshal(proj)
	if err != nil {
		return errs.Storage("encode project", err)
	}

	tx, err := s.db.sql.BeginTx(ctx, nil)
	if err != nil {
		return errs.Storage("save project", err)
	}
	defer tx.Rollback()

	var existing string
	err = tx.QueryRowContext(ctx, `SELECT doc FROM projects WHERE id = ?`, proj.ID).Scan(&existing)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		// first write
	case err != nil:
		return errs.Storage("save project", err)
	case existing == doc:
		return nil
	}

	ts := now()
	_, err = tx.ExecContext(ctx, `
		INSERT INTO projects (id, doc, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET doc = excluded.doc, updated_at = excluded.updated_at`,
		proj.ID, doc, ts.Format(timeLayout))
	if err != nil {
		return errs.Storage("save project", err)
	}

	if err := reindexSections(ctx, tx, proj); err != nil {
		return errs.Storage("index sections", err)
	}

	if err := tx.Commit(); err != nil {
		return errs.Storage("save project", err)
	}
	proj.UpdatedAt = ts
	return nil
}

// AddSection appends a new section and returns its id.
func (s *ProjectStore) AddSection(ctx context.Context, projectID, title, content, sectionType string) (string, error) {
	if title == "" {
		return "", errs.Validation("section title", "must not be empty")
	}

	lock := s.db.projectLock(projectID)
	lock.Lock()
	defer lock.Unlock()

	proj, err := s.Load(ctx, projectID)
	if err != nil {
		return "", err
	}

	ts := now()
	sec := model.Section{
		ID:           uuid.NewString(),
		Title:        title,
		Content:      content,
		Type:         sectionType,
		CreatedAt:    ts,
		LastModified: ts,
		Metadata:     model.SectionMetadata{WordCount: textstat.Words(content)},
	}
	proj.Sections = append(proj.Sections, sec)
	recompute(proj)

	if err := s.saveLocked(ctx, proj); err != nil {
		return "", err
	}
	return sec.ID, nil
}

// SectionUpdate names the fields of a section to change. Nil means leave
// unchanged.
type SectionUpdate struct {
	Title   *string
	Content *string
}

// UpdateSection applies upd to a section. Returns false if the section does
// not exist in the project.
func (s *ProjectStore) UpdateSection(ctx context.Context, projectID, sectionID string, upd SectionUpdate) (bool, error) {
	lock := s.db.projectLock(projectID)
	lock.Lock()
	defer lock.Unlock()

	proj, err := s.Load(ctx, projectID)
	if err != nil {
		return false, err
	}

	sec := proj.Section(sectionID)
	if sec == nil {
		return false, nil
	}

	changed := false
	if upd.Title != nil && *upd.Title != sec.Title {
		sec.Title = *upd.Title
		changed = true
	}
	if upd.Content != nil && *upd.Content != sec.Content {
		sec.Content = *upd.Content
		sec.Metadata.WordCount = textstat.Words(sec.Content)
		sec.Metadata.RevisionCount++
		changed = true
	}
	if !changed {
		return true, nil
	}

	sec.LastModified = now()
	recompute(proj)
	if err := s.saveLocked(ctx, proj); err != nil {
		return false, err
	}
	return true, nil
}

// DeleteSection removes a section. Returns false if it does not exist.
func (s *ProjectStore) DeleteSection(ctx context.Context, projectID, sectionID string) (bool, error) {
	lock := s.db.projectLock(projectID)
	lock.Lock()
	defer lock.Unlock()

	proj, err := s.Load(ctx, projectID)
	if err != nil {
		return false, err
	}

	idx := -1
	for i := range proj.Sections {
		if proj.Sections[i].ID == sectionID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false, nil
	}

	proj.Sections = append(proj.Sections[:idx], proj.Sections[idx+1:]...)
	recompute(proj)
	if err := s.saveLocked(ctx, proj); err != nil {
		return false, err
	}
	return true, nil
}

// UpdateStatus sets the project status. Statuses have no transition rules:
// any status may follow any other.
func (s *ProjectStore) UpdateStatus(ctx context.Context, projectID, status string) error {
	if !model.ValidStatuses[status] {
		return errs.Validation("status", "unknown status "+status)
	}

	lock := s.db.projectLock(projectID)
	lock.Lock()
	defer lock.Unlock()

	proj, err := s.Load(ctx, projectID)
	if err != nil {
		return err
	}
	proj.Status = status
	return s.saveLocked(ctx, proj)
}

// RecomputeMetadata recomputes and persists the derived aggregate for a
// project, returning the fresh values.
func (s *ProjectStore) RecomputeMetadata(ctx context.Context, projectID string) (*model.ProjectMetadata, error) {
	lock := s.db.projectLock(projectID)
	lock.Lock()
	defer lock.Unlock()

	proj, err := s.Load(ctx, projectID)
	if err != nil {
		return nil, err
	}
	recompute(proj)
	if err := s.saveLocked(ctx, proj); err != nil {
		return nil, err
	}
	md := proj.Metadata
	return &md, nil
}

// Delete removes a project, its history stream and its search index rows.
func (s *ProjectStore) Delete(ctx context.Context, projectID string) error {
	lock := s.db.projectLock(projectID)
	lock.Lock()
	defer lock.Unlock()

	tx, err := s.db.sql.BeginTx(ctx, nil)
	if err != nil {
		return errs.Storage("delete project", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, projectID)
	if err != nil {
		return errs.Storage("delete project", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errs.NotFound("project", projectID)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM history WHERE project_id = ?`, projectID); err != nil {
		return errs.Storage("delete history", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM sections_fts WHERE project_id = ?`, projectID); err != nil {
		return errs.Storage("delete section index", err)
	}
	return errs.Storage("delete project", tx.Commit())
}

// recompute refreshes the derived project aggregate from its sections.
func recompute(p *model.Project) {
	revisions := 0
	for i := range p.Sections {
		revisions += p.Sections[i].Metadata.RevisionCount
	}
	p.Metadata = model.ProjectMetadata{
		WordCount:            textstat.ProjectWords(p),
		RevisionCount:        revisions,
		CompletionPercentage: textstat.Completion(p),
	}
}

func reindexSections(ctx context.Context, tx *sql.Tx, proj *model.Project) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM sections_fts WHERE project_id = ?`, proj.ID); err != nil {
		return err
	}
	for i := range proj.Sections {
		sec := &proj.Sections[i]
		_, err := tx.ExecContext(ctx,
			`INSERT INTO sections_fts (project_id, section_id, title, content) VALUES (?, ?, ?, ?)`,
			proj.ID, sec.ID, sec.Title, sec.Content)
		if err != nil {
			return err
		}
	}
	return nil
}
