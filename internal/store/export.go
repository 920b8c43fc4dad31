package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/stratadoc/strata/internal/errs"
	"github.com/stratadoc/strata/internal/model"
)

// Archive bundles a project's current state with its full history stream,
// snapshots included, for off-box backup and transfer.
type Archive struct {
	Project *model.Project `json:"project"`
	History []model.Entry  `json:"history"`
}

// ExportProject returns the full archive of one project. History is
// oldest-first so an import replays it in append order.
func (s *ProjectStore) ExportProject(ctx context.Context, projectID string) (*Archive, error) {
	proj, err := s.Load(ctx, projectID)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.sql.QueryContext(ctx, `
		SELECT seq, id, project_id, type, created_at, actor, description, diff, action_type, details, snapshot
		FROM history WHERE project_id = ? ORDER BY seq ASC`, projectID)
	if err != nil {
		return nil, errs.Storage("export history", err)
	}
	defer rows.Close()

	arch := &Archive{Project: proj}
	for rows.Next() {
		var snapshot sql.NullString
		e, err := scanEntryWithSnapshot(rows, &snapshot)
		if err != nil {
			s.logger.Warn().Err(err).Str("project_id", projectID).Msg("skipping malformed history entry")
			continue
		}
		e.Snapshot = snapshot.String
		arch.History = append(arch.History, e)
	}
	return arch, errs.Storage("export history", rows.Err())
}

// ImportProject restores an archive: current state plus its history stream,
// in the archived order with fresh sequence numbers. An existing project
// with the same id is overwritten.
func (s *ProjectStore) ImportProject(ctx context.Context, arch *Archive) (int, error) {
	if arch == nil || arch.Project == nil || arch.Project.ID == "" {
		return 0, errs.Validation("archive", "missing project")
	}

	if err := s.Save(ctx, arch.Project); err != nil {
		return 0, err
	}

	tx, err := s.db.sql.BeginTx(ctx, nil)
	if err != nil {
		return 0, errs.Storage("import history", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM history WHERE project_id = ?`, arch.Project.ID); err != nil {
		return 0, errs.Storage("import history", err)
	}

	imported := 0
	for _, e := range arch.History {
		var details *string
		if len(e.Details) > 0 {
			b, err := json.Marshal(e.Details)
			if err != nil {
				return imported, errs.Storage("encode action details", err)
			}
			str := string(b)
			details = &str
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO history (id, project_id, type, created_at, actor, description, diff, snapshot, action_type, details)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			e.ID, arch.Project.ID, e.Type, e.CreatedAt.Format(timeLayout),
			e.Actor, e.Description, e.Diff, e.Snapshot, e.ActionType, details)
		if err != nil {
			return imported, errs.Storage("import history", err)
		}
		imported++
	}

	if err := tx.Commit(); err != nil {
		return imported, errs.Storage("import history", err)
	}
	return imported, nil
}

func scanEntryWithSnapshot(row scanner, snapshot *sql.NullString) (model.Entry, error) {
	var e model.Entry
	var createdAt string
	var actor, description, diff, actionType, details sql.NullString

	err := row.Scan(&e.Seq, &e.ID, &e.ProjectID, &e.Type, &createdAt,
		&actor, &description, &diff, &actionType, &details, snapshot)
	if err != nil {
		return e, err
	}
	e.CreatedAt, err = time.Parse(timeLayout, createdAt)
	if err != nil {
		return e, err
	}
	e.Actor = actor.String
	e.Description = description.String
	e.Diff = diff.String
	e.ActionType = actionType.String
	if details.Valid && details.String != "" {
		if err := json.Unmarshal([]byte(details.String), &e.Details); err != nil {
			return e, err
		}
	}
	return e, nil
}
