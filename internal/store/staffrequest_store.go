package store

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pokerfloor/pokerfloor/internal/model"
)

type StaffRequestStore struct {
	db *sqlx.DB
}

func NewStaffRequestStore(db *sqlx.DB) *StaffRequestStore {
	return &StaffRequestStore{db: db}
}

func (s *StaffRequestStore) CreateRequest(ctx context.Context, req *model.StaffRequest) error {
	_, err := s.db.NamedExecContext(ctx, `INSERT INTO staff_requests (id, user_id, casino_id, status)
		VALUES (:id, :user_id, :casino_id, :status)`, req)
	return err
}

func (s *StaffRequestStore) GetRequest(ctx context.Context, id string) (*model.StaffRequest, error) {
	var req model.StaffRequest
	err := s.db.GetContext(ctx, &req, "SELECT * FROM staff_requests WHERE id = ?", id)
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (s *StaffRequestStore) ListPendingByCasino(ctx context.Context, casinoID string) ([]model.StaffRequest, error) {
	var requests []model.StaffRequest
	err := s.db.SelectContext(ctx, &requests,
		"SELECT * FROM staff_requests WHERE casino_id = ? AND status = ? ORDER BY created_at ASC",
		casinoID, model.StaffRequestPending)
	return requests, err
}

func (s *StaffRequestStore) UpdateStatusTx(ctx context.Context, tx *sqlx.Tx, id string, status model.StaffRequestStatus) error {
	_, err := tx.ExecContext(ctx,
		"UPDATE staff_requests SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		status, id)
	return err
}
