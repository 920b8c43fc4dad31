// Package model defines the core project and history data types.
package model

import "time"

// Project statuses. Any status may follow any other; the phases of real
// writing work are revisited non-linearly, so there is no transition table.
const (
	StatusCreated            = "created"
	StatusStoryboardReady    = "storyboard_ready"
	StatusDraftInProgress    = "draft_in_progress"
	StatusRevisionInProgress = "revision_in_progress"
	StatusCompleted          = "completed"
)

// ValidStatuses are the allowed project statuses.
var ValidStatuses = map[string]bool{
	StatusCreated:            true,
	StatusStoryboardReady:    true,
	StatusDraftInProgress:    true,
	StatusRevisionInProgress: true,
	StatusCompleted:          true,
}

// Project is the mutable current state of a writing project.
//
// UpdatedAt is deliberately excluded from JSON: it lives in its own storage
// column so that no-op saves and snapshot comparisons stay byte-stable.
type Project struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	ProjectType string            `json:"project_type,omitempty"`
	Status      string            `json:"status"`
	Preferences map[string]string `json:"preferences,omitempty"`
	Sections    []Section         `json:"sections"`
	Metadata    ProjectMetadata   `json:"metadata"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"-"`
}

// Section is a named content block owned by exactly one project.
type Section struct {
	ID           string          `json:"id"`
	Title        string          `json:"title"`
	Content      string          `json:"content"`
	Type         string          `json:"type,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	LastModified time.Time       `json:"last_modified"`
	Metadata     SectionMetadata `json:"metadata"`
}

// ProjectMetadata is a derived aggregate, recomputed after every mutation
// and never edited directly.
type ProjectMetadata struct {
	WordCount            int     `json:"word_count"`
	RevisionCount        int     `json:"revision_count"`
	CompletionPercentage float64 `json:"completion_percentage"`
}

// SectionMetadata holds per-section derived counts.
type SectionMetadata struct {
	WordCount     int `json:"word_count"`
	RevisionCount int `json:"revision_count"`
}

// Section returns the section with the given id, or nil.
func (p *Project) Section(sectionID string) *Section {
	for i := range p.Sections {
		if p.Sections[i].ID == sectionID {
			return &p.Sections[i]
		}
	}
	return nil
}
