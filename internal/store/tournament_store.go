package store

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pokerfloor/pokerfloor/internal/model"
)

type TournamentStore struct {
	db *sqlx.DB
}

func NewTournamentStore(db *sqlx.DB) *TournamentStore {
	return &TournamentStore{db: db}
}

// TournamentFilter narrows ListTournaments. Zero values mean "no filter".
type TournamentFilter struct {
	CasinoID string
	DateFrom time.Time
	DateTo   time.Time
	Status   model.TournamentStatus
}

func (s *TournamentStore) CreateTournament(ctx context.Context, t *model.Tournament) error {
	_, err := s.db.NamedExecContext(ctx, `INSERT INTO tournaments
		(id, casino_id, name, date_time_utc, buy_in, rake, bounty, prize_pool, game_type,
		 starting_stack, re_entry, re_entry_unlimited, re_entry_count, late_reg_levels,
		 structure, days, notes, status)
		VALUES (:id, :casino_id, :name, :date_time_utc, :buy_in, :rake, :bounty, :prize_pool, :game_type,
		 :starting_stack, :re_entry, :re_entry_unlimited, :re_entry_count, :late_reg_levels,
		 :structure, :days, :notes, :status)`, t)
	return err
}

func (s *TournamentStore) GetTournament(ctx context.Context, id string) (*model.Tournament, error) {
	var t model.Tournament
	err := s.db.GetContext(ctx, &t, "SELECT * FROM tournaments WHERE id = ?", id)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *TournamentStore) ListTournaments(ctx context.Context, filter TournamentFilter) ([]model.Tournament, error) {
	query := "SELECT * FROM tournaments WHERE 1=1"
	var args []interface{}
	if filter.CasinoID != "" {
		query += " AND casino_id = ?"
		args = append(args, filter.CasinoID)
	}
	if filter.Status != "" {
		query += " AND status = ?"
		args = append(args, filter.Status)
	}
	if !filter.DateFrom.IsZero() {
		query += " AND date_time_utc >= ?"
		args = append(args, filter.DateFrom)
	}
	if !filter.DateTo.IsZero() {
		query += " AND date_time_utc <= ?"
		args = append(args, filter.DateTo)
	}
	query += " ORDER BY date_time_utc ASC"

	var tournaments []model.Tournament
	err := s.db.SelectContext(ctx, &tournaments, query, args...)
	return tournaments, err
}

func (s *TournamentStore) UpdateTournament(ctx context.Context, t *model.Tournament) error {
	_, err := s.db.NamedExecContext(ctx, `UPDATE tournaments SET
		name = :name,
		date_time_utc = :date_time_utc,
		buy_in = :buy_in,
		rake = :rake,
		bounty = :bounty,
		prize_pool = :prize_pool,
		game_type = :game_type,
		starting_stack = :starting_stack,
		re_entry = :re_entry,
		re_entry_unlimited = :re_entry_unlimited,
		re_entry_count = :re_entry_count,
		late_reg_levels = :late_reg_levels,
		structure = :structure,
		days = :days,
		notes = :notes,
		status = :status,
		updated_at = CURRENT_TIMESTAMP
		WHERE id = :id`, t)
	return err
}

func (s *TournamentStore) DeleteTournament(ctx context.Context, id string) (bool, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM tournaments WHERE id = ?", id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}
