package store

import (
	"context"
	"os"
)

// Stats holds database statistics.
type Stats struct {
	DBPath      string         `json:"db_path"`
	DBSizeBytes int64          `json:"db_size_bytes"`
	Projects    int            `json:"projects"`
	Versions    int            `json:"versions"`
	Actions     int            `json:"actions"`
	PerProject  []ProjectStats `json:"per_project,omitempty"`
}

// ProjectStats holds per-project history counts.
type ProjectStats struct {
	ProjectID string `json:"project_id"`
	Title     string `json:"title"`
	Versions  int    `json:"versions"`
	Actions   int    `json:"actions"`
}

// Stats returns database statistics.
func (d *DB) Stats(ctx context.Context) (*Stats, error) {
	st := &Stats{DBPath: d.path}

	if info, err := os.Stat(d.path); err == nil {
		st.DBSizeBytes = info.Size()
	}

	d.sql.QueryRowContext(ctx, `SELECT COUNT(*) FROM projects`).Scan(&st.Projects)
	d.sql.QueryRowContext(ctx, `SELECT COUNT(*) FROM history WHERE type = 'version'`).Scan(&st.Versions)
	d.sql.QueryRowContext(ctx, `SELECT COUNT(*) FROM history WHERE type = 'action'`).Scan(&st.Actions)

	rows, err := d.sql.QueryContext(ctx, `
		SELECT p.id, json_extract(p.doc, '$.title'),
		       SUM(CASE WHEN h.type = 'version' THEN 1 ELSE 0 END),
		       SUM(CASE WHEN h.type = 'action' THEN 1 ELSE 0 END)
		FROM projects p
		LEFT JOIN history h ON h.project_id = p.id
		GROUP BY p.id ORDER BY COUNT(h.seq) DESC`)
	if err != nil {
		return st, err
	}
	defer rows.Close()

	for rows.Next() {
		var ps ProjectStats
		rows.Scan(&ps.ProjectID, &ps.Title, &ps.Versions, &ps.Actions)
		st.PerProject = append(st.PerProject, ps)
	}

	return st, nil
}
