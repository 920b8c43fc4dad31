package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/stratadoc/strata/internal/canon"
	"github.com/stratadoc/strata/internal/errs"
	"github.com/stratadoc/strata/internal/model"
)

const defaultHistoryLimit = 50

// VersionLog is the durable, append-only history of a project: full
// snapshots with diffs against their predecessor, interleaved with audit
// actions. Entries are ordered by an autoincrement sequence, never by
// timestamp; timestamps are not unique under rapid successive writes.
type VersionLog struct {
	db     *DB
	logger zerolog.Logger
}

// NewVersionLog creates a VersionLog over the shared database.
func NewVersionLog(db *DB) *VersionLog {
	return &VersionLog{
		db:     db,
		logger: db.logger.With().Str("component", "versionlog").Logger(),
	}
}

// AppendParams holds parameters for recording a version.
type AppendParams struct {
	ProjectID   string
	State       *model.Project
	Description string
	Actor       string
}

// Append records a full snapshot of the project state together with a
// unified diff against the previous version. If the canonical serialization
// is byte-identical to the most recent version, nothing is written and the
// returned id is empty; repeated no-op saves must not grow the stream.
func (l *VersionLog) Append(ctx context.Context, p AppendParams) (string, error) {
	if p.ProjectID == "" || p.State == nil {
		return "", errs.Validation("append", "project id and state are required")
	}

	doc, err := canon.Marshal(p.State)
	if err != nil {
		return "", errs.Storage("encode snapshot", err)
	}

	lock := l.db.projectLock(p.ProjectID)
	lock.Lock()
	defer lock.Unlock()

	tx, err := l.db.sql.BeginTx(ctx, nil)
	if err != nil {
		return "", errs.Storage("append version", err)
	}
	defer tx.Rollback()

	var prevID, prevDoc string
	err = tx.QueryRowContext(ctx, `
		SELECT id, snapshot FROM history
		WHERE project_id = ? AND type = ?
		ORDER BY seq DESC LIMIT 1`,
		p.ProjectID, model.EntryVersion).Scan(&prevID, &prevDoc)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		// first version, no diff
	case err != nil:
		return "", errs.Storage("append version", err)
	case prevDoc == doc:
		return "", nil
	}

	id := l.db.newEntryID()
	var diff string
	if prevID != "" {
		diff, err = canon.Diff(prevDoc, doc,
			"version "+canon.ShortID(prevID), "version "+canon.ShortID(id))
		if err != nil {
			return "", errs.Storage("diff snapshot", err)
		}
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO history (id, project_id, type, created_at, actor, description, diff, snapshot)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, p.ProjectID, model.EntryVersion, now().Format(timeLayout),
		p.Actor, p.Description, diff, doc)
	if err != nil {
		return "", errs.Storage("append version", err)
	}
	if err := tx.Commit(); err != nil {
		return "", errs.Storage("append version", err)
	}
	return id, nil
}

// ActionParams holds parameters for recording an audit action.
type ActionParams struct {
	ProjectID  string
	ActionType string
	Details    map[string]any
	Actor      string
}

// LogAction appends an audit record. Actions are never deduplicated; every
// call produces a row.
func (l *VersionLog) LogAction(ctx context.Context, p ActionParams) (string, error) {
	if p.ProjectID == "" || p.ActionType == "" {
		return "", errs.Validation("action", "project id and action type are required")
	}

	var details *string
	if len(p.Details) > 0 {
		b, err := json.Marshal(p.Details)
		if err != nil {
			return "", errs.Storage("encode action details", err)
		}
		s := string(b)
		details = &s
	}

	id := l.db.newEntryID()
	_, err := l.db.sql.ExecContext(ctx, `
		INSERT INTO history (id, project_id, type, created_at, actor, action_type, details)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, p.ProjectID, model.EntryAction, now().Format(timeLayout),
		p.Actor, p.ActionType, details)
	if err != nil {
		return "", errs.Storage("log action", err)
	}
	return id, nil
}

// HistoryParams holds parameters for reading a history stream.
type HistoryParams struct {
	ProjectID string
	Type      string // "" means both kinds
	Limit     int    // <= 0 means 50
}

// History returns entries newest-first. Snapshots are stripped to bound
// response size; use Snapshot for full content. A malformed row is skipped
// with a diagnostic rather than aborting the read, so the stream stays
// usable after a partial-write crash.
func (l *VersionLog) History(ctx context.Context, p HistoryParams) ([]model.Entry, error) {
	limit := p.Limit
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	query := `
		SELECT seq, id, project_id, type, created_at, actor, description, diff, action_type, details
		FROM history WHERE project_id = ?`
	args := []any{p.ProjectID}
	if p.Type != "" {
		query += ` AND type = ?`
		args = append(args, p.Type)
	}
	query += ` ORDER BY seq DESC LIMIT ?`
	args = append(args, limit)

	rows, err := l.db.sql.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errs.Storage("read history", err)
	}
	defer rows.Close()

	var entries []model.Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			l.logger.Warn().Err(err).Str("project_id", p.ProjectID).Msg("skipping malformed history entry")
			continue
		}
		entries = append(entries, e)
	}
	return entries, errs.Storage("read history", rows.Err())
}

// Snapshot returns the full project state captured by a version entry.
func (l *VersionLog) Snapshot(ctx context.Context, projectID, versionID string) (*model.Project, error) {
	doc, err := l.rawSnapshot(ctx, projectID, versionID)
	if err != nil {
		return nil, err
	}
	var proj model.Project
	if err := json.Unmarshal([]byte(doc), &proj); err != nil {
		return nil, errs.Storage("decode snapshot", err)
	}
	return &proj, nil
}

// Compare computes a fresh unified diff between two stored snapshots,
// independent of the incremental diff chain. Either direction is valid; the
// diff simply runs from a to b.
func (l *VersionLog) Compare(ctx context.Context, projectID, versionA, versionB string) (string, error) {
	docA, err := l.rawSnapshot(ctx, projectID, versionA)
	if err != nil {
		return "", err
	}
	docB, err := l.rawSnapshot(ctx, projectID, versionB)
	if err != nil {
		return "", err
	}
	diff, err := canon.Diff(docA, docB,
		"version "+canon.ShortID(versionA), "version "+canon.ShortID(versionB))
	if err != nil {
		return "", errs.Storage("diff snapshots", err)
	}
	return diff, nil
}

// Prune trims a project's history to the keepLastN most recent version
// entries plus every action appended at or after the oldest retained
// version. keepLastN <= 0 removes the whole stream. The prune itself is
// recorded as an action after the trim completes, so its record survives.
func (l *VersionLog) Prune(ctx context.Context, projectID string, keepLastN int, actor string) (int, error) {
	lock := l.db.projectLock(projectID)
	lock.Lock()

	removed, kept, err := l.pruneLocked(ctx, projectID, keepLastN)
	lock.Unlock()
	if err != nil {
		return 0, err
	}

	_, err = l.LogAction(ctx, ActionParams{
		ProjectID:  projectID,
		ActionType: model.ActionPruneHistory,
		Details:    map[string]any{"kept": kept, "removed": removed},
		Actor:      actor,
	})
	if err != nil {
		return removed, err
	}
	return removed, nil
}

func (l *VersionLog) pruneLocked(ctx context.Context, projectID string, keepLastN int) (removed, kept int, err error) {
	tx, err := l.db.sql.BeginTx(ctx, nil)
	if err != nil {
		return 0, 0, errs.Storage("prune history", err)
	}
	defer tx.Rollback()

	if keepLastN <= 0 {
		res, err := tx.ExecContext(ctx, `DELETE FROM history WHERE project_id = ?`, projectID)
		if err != nil {
			return 0, 0, errs.Storage("prune history", err)
		}
		n, _ := res.RowsAffected()
		if err := tx.Commit(); err != nil {
			return 0, 0, errs.Storage("prune history", err)
		}
		return int(n), 0, nil
	}

	var cutoff int64
	err = tx.QueryRowContext(ctx, `
		SELECT seq FROM history
		WHERE project_id = ? AND type = ?
		ORDER BY seq DESC LIMIT 1 OFFSET ?`,
		projectID, model.EntryVersion, keepLastN-1).Scan(&cutoff)
	if errors.Is(err, sql.ErrNoRows) {
		// fewer versions than the retention target, nothing to trim
		var have int
		tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM history WHERE project_id = ? AND type = ?`,
			projectID, model.EntryVersion).Scan(&have)
		return 0, have, tx.Commit()
	}
	if err != nil {
		return 0, 0, errs.Storage("prune history", err)
	}

	res, err := tx.ExecContext(ctx,
		`DELETE FROM history WHERE project_id = ? AND seq < ?`, projectID, cutoff)
	if err != nil {
		return 0, 0, errs.Storage("prune history", err)
	}
	n, _ := res.RowsAffected()
	if err := tx.Commit(); err != nil {
		return 0, 0, errs.Storage("prune history", err)
	}
	return int(n), keepLastN, nil
}

func (l *VersionLog) rawSnapshot(ctx context.Context, projectID, versionID string) (string, error) {
	var doc string
	err := l.db.sql.QueryRowContext(ctx, `
		SELECT snapshot FROM history
		WHERE project_id = ? AND id = ? AND type = ?`,
		projectID, versionID, model.EntryVersion).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return "", errs.NotFound("version", versionID)
	}
	if err != nil {
		return "", errs.Storage("load snapshot", err)
	}
	return doc, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (model.Entry, error) {
	var e model.Entry
	var createdAt string
	var actor, description, diff, actionType, details sql.NullString

	err := row.Scan(&e.Seq, &e.ID, &e.ProjectID, &e.Type, &createdAt,
		&actor, &description, &diff, &actionType, &details)
	if err != nil {
		return e, err
	}

	if e.Type != model.EntryVersion && e.Type != model.EntryAction {
		return e, fmt.Errorf("unknown entry type %q", e.Type)
	}
	e.CreatedAt, err = time.Parse(timeLayout, createdAt)
	if err != nil {
		return e, fmt.Errorf("bad timestamp: %w", err)
	}
	e.Actor = actor.String
	e.Description = description.String
	e.Diff = diff.String
	e.ActionType = actionType.String
	if details.Valid && details.String != "" {
		if err := json.Unmarshal([]byte(details.String), &e.Details); err != nil {
			return e, fmt.Errorf("bad action details: %w", err)
		}
	}
	return e, nil
}
