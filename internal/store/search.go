package store

import (
	"context"

	"github.com/stratadoc/strata/internal/errs"
)

// SectionHit is one full-text search match.
type SectionHit struct {
	ProjectID string `json:"project_id"`
	SectionID string `json:"section_id"`
	Title     string `json:"title"`
	Snippet   string `json:"snippet"`
}

// SearchSections runs a full-text query over section titles and content.
// The index is rebuilt from the current state on every save, so results
// always reflect the latest version.
func (s *ProjectStore) SearchSections(ctx context.Context, query string, limit int) ([]SectionHit, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.sql.QueryContext(ctx, `
		SELECT project_id, section_id, title,
		       snippet(sections_fts, 3, '[', ']', '…', 12)
		FROM sections_fts
		WHERE sections_fts MATCH ?
		ORDER BY rank LIMIT ?`, query, limit)
	if err != nil {
		return nil, errs.Storage("search sections", err)
	}
	defer rows.Close()

	var hits []SectionHit
	for rows.Next() {
		var h SectionHit
		if err := rows.Scan(&h.ProjectID, &h.SectionID, &h.Title, &h.Snippet); err != nil {
			return nil, errs.Storage("search sections", err)
		}
		hits = append(hits, h)
	}
	return hits, errs.Storage("search sections", rows.Err())
}
