package model

import "time"

// Entry types. A version carries a full snapshot plus a diff against the
// previous version; an action is a lightweight audit record.
const (
	EntryVersion = "version"
	EntryAction  = "action"
)

// Well-known action types written by the core itself.
const (
	ActionCreateProject  = "create_project"
	ActionRestoreVersion = "restore_version"
	ActionRestoreError   = "restore_error"
	ActionPruneHistory   = "prune_history"
)

// Entry is one immutable record in a project's history stream. Once
// appended it is never mutated or reordered; Seq reflects append order.
type Entry struct {
	ID        string    `json:"id"`
	Seq       int64     `json:"seq"`
	ProjectID string    `json:"project_id"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"created_at"`
	Actor     string    `json:"actor,omitempty"`

	// Version fields. Snapshot is the canonical serialization of the full
	// project state; History strips it to bound response size.
	Description string `json:"description,omitempty"`
	Diff        string `json:"diff,omitempty"`
	Snapshot    string `json:"snapshot,omitempty"`

	// Action fields.
	ActionType string         `json:"action_type,omitempty"`
	Details    map[string]any `json:"details,omitempty"`
}

// VersionSummary is a presentation-oriented view of one version entry with
// word and character counts derived from its snapshot at read time.
type VersionSummary struct {
	ID          string    `json:"id"`
	Timestamp   time.Time `json:"timestamp"`
	Description string    `json:"description"`
	WordCount   int       `json:"word_count"`
	CharCount   int       `json:"char_count"`
}

// GrowthPoint is one step in a project's oldest-first growth series.
type GrowthPoint struct {
	VersionID  string    `json:"version_id"`
	Timestamp  time.Time `json:"timestamp"`
	TotalWords int       `json:"total_words"`
	TotalChars int       `json:"total_chars"`
	DeltaWords int       `json:"delta_words"`
	DeltaChars int       `json:"delta_chars"`
}
