package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pokerfloor/pokerfloor/internal/model"
	"github.com/pokerfloor/pokerfloor/internal/store"
)

type LiveStateService struct {
	db              *sqlx.DB
	store           *store.LiveStateStore
	tournamentStore *store.TournamentStore
}

func NewLiveStateService(db *sqlx.DB, store *store.LiveStateStore, tournamentStore *store.TournamentStore) *LiveStateService {
	return &LiveStateService{db: db, store: store, tournamentStore: tournamentStore}
}

// GetLiveState returns nil (not an error) when no driver has uploaded a
// snapshot yet; clients fall back to the scheduled display.
func (s *LiveStateService) GetLiveState(ctx context.Context, tournamentID string) (*model.LiveTournamentState, error) {
	state, err := s.store.GetLiveState(ctx, tournamentID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return state, nil
}

// UpsertLiveState sanitizes a driver's snapshot and replaces the tournament's
// live state document. The caller must be admin or staff assigned to the
// tournament's casino. There is no controller lock; simultaneous drivers
// overwrite each other last-write-wins.
func (s *LiveStateService) UpsertLiveState(ctx context.Context, user *model.User, tournamentID string, update model.LiveStateUpdate) (*model.LiveTournamentState, error) {
	t, err := s.tournamentStore.GetTournament(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	if !user.CanManageCasino(t.CasinoID) {
		return nil, ErrNotAssigned
	}

	state := &model.LiveTournamentState{
		TournamentID: t.ID,
		CasinoID:     t.CasinoID,
		Status:       sanitizeStatus(update.Status),
		DayIndex:     clampNonNegative(update.DayIndex),
		LevelIndex:   clampNonNegative(update.LevelIndex),
		RemainingMs:  clampNonNegativeMs(update.RemainingMs),
		TotalLevels:  clampNonNegative(update.TotalLevels),
		DayLabel:     update.DayLabel,
		UpdatedAt:    time.Now().UTC(),
	}
	if err := s.store.UpsertLiveState(ctx, state); err != nil {
		return nil, err
	}
	return state, nil
}

func sanitizeStatus(s model.LiveStatus) model.LiveStatus {
	if model.ValidLiveStatus(s) {
		return s
	}
	return model.LivePaused
}

func clampNonNegative(v int) int {
	if v < 0 {
		return 0
	}
	return v
}

func clampNonNegativeMs(v int64) int64 {
	if v < 0 {
		return 0
	}
	return v
}
