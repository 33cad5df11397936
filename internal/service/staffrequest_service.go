package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pokerfloor/pokerfloor/internal/model"
	"github.com/pokerfloor/pokerfloor/internal/store"
)

type StaffRequestService struct {
	db        *sqlx.DB
	store     *store.StaffRequestStore
	userStore *store.UserStore
}

func NewStaffRequestService(db *sqlx.DB, store *store.StaffRequestStore, userStore *store.UserStore) *StaffRequestService {
	return &StaffRequestService{db: db, store: store, userStore: userStore}
}

// CreateRequest files a pending staff request for the calling user. The
// unique pending index rejects duplicates.
func (s *StaffRequestService) CreateRequest(ctx context.Context, user *model.User, casinoID uuid.UUID) (*model.StaffRequest, error) {
	req := &model.StaffRequest{
		ID:       uuid.New(),
		UserID:   user.ID,
		CasinoID: casinoID,
		Status:   model.StaffRequestPending,
	}
	if err := s.store.CreateRequest(ctx, req); err != nil {
		// unique index violation: one pending request per user+casino
		return nil, ErrDuplicateReq
	}
	return req, nil
}

// ListPending lists a casino's pending requests. Approvals are the business
// of that casino's own admin, not any admin.
func (s *StaffRequestService) ListPending(ctx context.Context, user *model.User, casinoID uuid.UUID) ([]model.StaffRequest, error) {
	if !user.IsAdminOfCasino(casinoID) {
		return nil, ErrAdminOfCasino
	}
	return s.store.ListPendingByCasino(ctx, casinoID.String())
}

// Approve marks the request approved, assigns the casino to the requesting
// user, and upgrades them to staff unless they are already admin. The user
// update and the status change commit together.
func (s *StaffRequestService) Approve(ctx context.Context, user *model.User, requestID string) (*model.StaffRequest, error) {
	req, err := s.store.GetRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.Status != model.StaffRequestPending {
		return nil, fmt.Errorf("%w: %s", ErrAlreadyDecided, req.Status)
	}
	if !user.IsAdminOfCasino(req.CasinoID) {
		return nil, ErrAdminOfCasino
	}

	target, err := s.userStore.GetUser(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if !target.AssignedCasinoIDs.Contains(req.CasinoID) {
		target.AssignedCasinoIDs = append(target.AssignedCasinoIDs, req.CasinoID)
	}
	if target.Role != model.RoleAdmin {
		target.Role = model.RoleStaff
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if err := s.userStore.UpdateRoleAndCasinos(ctx, tx, target); err != nil {
		return nil, err
	}
	if err := s.store.UpdateStatusTx(ctx, tx, requestID, model.StaffRequestApproved); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	req.Status = model.StaffRequestApproved
	return req, nil
}

// Deny marks the request denied.
func (s *StaffRequestService) Deny(ctx context.Context, user *model.User, requestID string) (*model.StaffRequest, error) {
	req, err := s.store.GetRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.Status != model.StaffRequestPending {
		return nil, fmt.Errorf("%w: %s", ErrAlreadyDecided, req.Status)
	}
	if !user.IsAdminOfCasino(req.CasinoID) {
		return nil, ErrAdminOfCasino
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if err := s.store.UpdateStatusTx(ctx, tx, requestID, model.StaffRequestDenied); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	req.Status = model.StaffRequestDenied
	return req, nil
}
