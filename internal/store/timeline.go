package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"

	"github.com/stratadoc/strata/internal/errs"
	"github.com/stratadoc/strata/internal/model"
	"github.com/stratadoc/strata/internal/textstat"
)

// Timeline produces presentation-oriented read projections over the version
// log. It has no mutation capability. Word and character counts are derived
// from the embedded snapshots at read time, not cached; these reads are
// pagination-bounded.
type Timeline struct {
	db     *DB
	logger zerolog.Logger
}

// NewTimeline creates a Timeline over the shared database.
func NewTimeline(db *DB) *Timeline {
	return &Timeline{
		db:     db,
		logger: db.logger.With().Str("component", "timeline").Logger(),
	}
}

// ListVersions returns version summaries newest-first.
func (t *Timeline) ListVersions(ctx context.Context, projectID string, limit int) ([]model.VersionSummary, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	rows, err := t.db.sql.QueryContext(ctx, `
		SELECT id, created_at, description, snapshot FROM history
		WHERE project_id = ? AND type = ?
		ORDER BY seq DESC LIMIT ?`,
		projectID, model.EntryVersion, limit)
	if err != nil {
		return nil, errs.Storage("list versions", err)
	}
	defer rows.Close()

	var out []model.VersionSummary
	for rows.Next() {
		sum, err := t.scanSummary(rows)
		if err != nil {
			t.logger.Warn().Err(err).Str("project_id", projectID).Msg("skipping malformed version entry")
			continue
		}
		out = append(out, sum)
	}
	return out, errs.Storage("list versions", rows.Err())
}

// GrowthSeries returns one point per version, oldest-first — the reverse of
// History's newest-first default, because deltas are computed between
// chronologically adjacent versions.
func (t *Timeline) GrowthSeries(ctx context.Context, projectID string) ([]model.GrowthPoint, error) {
	rows, err := t.db.sql.QueryContext(ctx, `
		SELECT id, created_at, description, snapshot FROM history
		WHERE project_id = ? AND type = ?
		ORDER BY seq ASC`,
		projectID, model.EntryVersion)
	if err != nil {
		return nil, errs.Storage("growth series", err)
	}
	defer rows.Close()

	var out []model.GrowthPoint
	prevWords, prevChars := 0, 0
	for rows.Next() {
		sum, err := t.scanSummary(rows)
		if err != nil {
			t.logger.Warn().Err(err).Str("project_id", projectID).Msg("skipping malformed version entry")
			continue
		}
		out = append(out, model.GrowthPoint{
			VersionID:  sum.ID,
			Timestamp:  sum.Timestamp,
			TotalWords: sum.WordCount,
			TotalChars: sum.CharCount,
			DeltaWords: sum.WordCount - prevWords,
			DeltaChars: sum.CharCount - prevChars,
		})
		prevWords, prevChars = sum.WordCount, sum.CharCount
	}
	return out, errs.Storage("growth series", rows.Err())
}

func (t *Timeline) scanSummary(row scanner) (model.VersionSummary, error) {
	var sum model.VersionSummary
	var createdAt, snapshot string
	if err := row.Scan(&sum.ID, &createdAt, &sum.Description, &snapshot); err != nil {
		return sum, err
	}
	ts, err := time.Parse(timeLayout, createdAt)
	if err != nil {
		return sum, err
	}
	sum.Timestamp = ts

	var proj model.Project
	if err := json.Unmarshal([]byte(snapshot), &proj); err != nil {
		return sum, err
	}
	sum.WordCount = textstat.ProjectWords(&proj)
	sum.CharCount = textstat.ProjectChars(&proj)
	return sum, nil
}
