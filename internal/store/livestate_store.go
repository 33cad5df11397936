package store

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pokerfloor/pokerfloor/internal/model"
)

type LiveStateStore struct {
	db *sqlx.DB
}

const upsertLiveStateQuery = `
	INSERT INTO live_tournament_states
		(tournament_id, casino_id, status, day_index, level_index, remaining_ms, total_levels, day_label, updated_at)
	VALUES
		(:tournament_id, :casino_id, :status, :day_index, :level_index, :remaining_ms, :total_levels, :day_label, :updated_at)
	ON CONFLICT(tournament_id) DO UPDATE SET
		casino_id = excluded.casino_id,
		status = excluded.status,
		day_index = excluded.day_index,
		level_index = excluded.level_index,
		remaining_ms = excluded.remaining_ms,
		total_levels = excluded.total_levels,
		day_label = COALESCE(excluded.day_label, day_label),
		updated_at = excluded.updated_at
`

func NewLiveStateStore(db *sqlx.DB) *LiveStateStore {
	return &LiveStateStore{db: db}
}

// GetLiveState returns sql.ErrNoRows when no driver has pushed a snapshot
// yet; callers translate that to a null response, not an error.
func (s *LiveStateStore) GetLiveState(ctx context.Context, tournamentID string) (*model.LiveTournamentState, error) {
	var state model.LiveTournamentState
	err := s.db.GetContext(ctx, &state, "SELECT * FROM live_tournament_states WHERE tournament_id = ?", tournamentID)
	if err != nil {
		return nil, err
	}
	return &state, nil
}

// UpsertLiveState replaces the tournament's state document whole, creating it
// on first upload. A nil DayLabel keeps whatever label the row already has.
// Concurrent drivers overwrite each other last-write-wins; there is no lock.
func (s *LiveStateStore) UpsertLiveState(ctx context.Context, state *model.LiveTournamentState) error {
	_, err := s.db.NamedExecContext(ctx, upsertLiveStateQuery, state)
	return err
}
