package store

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/stratadoc/strata/internal/canon"
	"github.com/stratadoc/strata/internal/errs"
	"github.com/stratadoc/strata/internal/model"
)

// Restorer rebuilds current project state from a recorded version without
// falsifying history: past entries are never rewritten, the restoration is
// itself appended as a new version.
type Restorer struct {
	projects *ProjectStore
	log      *VersionLog
	logger   zerolog.Logger
}

// NewRestorer creates a Restorer over the given store and log.
func NewRestorer(projects *ProjectStore, log *VersionLog) *Restorer {
	return &Restorer{
		projects: projects,
		log:      log,
		logger:   projects.db.logger.With().Str("component", "restore").Logger(),
	}
}

// Restore overwrites current state with the snapshot of versionID and
// records the restoration. Lower-level failures are converted into a false
// result plus a logged action, so restore is safe to expose on a
// best-effort UI control. There is no transactional backing across store
// and log; on a save failure current state is left as-is and no version is
// appended.
func (r *Restorer) Restore(ctx context.Context, projectID, versionID, actor string) bool {
	snap, err := r.log.Snapshot(ctx, projectID, versionID)
	if err != nil {
		if !errs.IsNotFound(err) {
			r.logger.Warn().Err(err).Str("version_id", versionID).Msg("snapshot lookup failed")
		}
		return false
	}

	if err := r.projects.Save(ctx, snap); err != nil {
		r.logger.Error().Err(err).Str("project_id", projectID).
			Str("version_id", versionID).Msg("restore save failed")
		// best-effort audit record before surfacing the failure
		if _, lerr := r.log.LogAction(ctx, ActionParams{
			ProjectID:  projectID,
			ActionType: model.ActionRestoreError,
			Details:    map[string]any{"version_id": versionID, "error": err.Error()},
			Actor:      actor,
		}); lerr != nil {
			r.logger.Warn().Err(lerr).Msg("restore_error action not recorded")
		}
		return false
	}

	if _, err := r.log.LogAction(ctx, ActionParams{
		ProjectID:  projectID,
		ActionType: model.ActionRestoreVersion,
		Details:    map[string]any{"version_id": versionID},
		Actor:      actor,
	}); err != nil {
		r.logger.Warn().Err(err).Msg("restore_version action not recorded")
	}

	// May be a no-op if current state already equals the restored
	// snapshot; restore still succeeded.
	if _, err := r.log.Append(ctx, AppendParams{
		ProjectID:   projectID,
		State:       snap,
		Description: "Restored from version " + canon.ShortID(versionID),
		Actor:       actor,
	}); err != nil {
		r.logger.Error().Err(err).Msg("restore version append failed")
		return false
	}
	return true
}
