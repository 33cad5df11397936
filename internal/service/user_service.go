package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pokerfloor/pokerfloor/internal/auth"
	"github.com/pokerfloor/pokerfloor/internal/model"
	"github.com/pokerfloor/pokerfloor/internal/store"
)

type UserService struct {
	db          *sqlx.DB
	store       *store.UserStore
	casinoStore *store.CasinoStore
}

func NewUserService(db *sqlx.DB, store *store.UserStore, casinoStore *store.CasinoStore) *UserService {
	return &UserService{db: db, store: store, casinoStore: casinoStore}
}

type RegisterInput struct {
	Name              string         `json:"name"`
	Email             string         `json:"email"`
	Password          string         `json:"password"`
	Role              model.Role     `json:"role"`
	AssignedCasinoIDs model.UUIDList `json:"assignedCasinoIds"`
}

type AuthResult struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

// Register creates a user and returns a signed token. Casino assignments are
// only kept for staff/admin roles and only for casinos that exist.
func (s *UserService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	if _, err := s.store.GetUserByEmail(ctx, input.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	role := input.Role
	switch role {
	case model.RoleUser, model.RoleStaff, model.RoleAdmin:
	default:
		role = model.RoleUser
	}

	var assigned model.UUIDList
	if role == model.RoleStaff || role == model.RoleAdmin {
		for _, id := range input.AssignedCasinoIDs {
			if _, err := s.casinoStore.GetCasino(ctx, id.String()); err == nil {
				assigned = append(assigned, id)
			}
		}
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		ID:                uuid.New(),
		Name:              input.Name,
		Email:             input.Email,
		PasswordHash:      hash,
		Role:              role,
		AssignedCasinoIDs: assigned,
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	token, err := auth.SignToken(user)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: user}, nil
}

// Login verifies credentials and returns a fresh token. Unknown emails and
// wrong passwords are indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.store.GetUserByEmail(ctx, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBadCredentials
	}
	if err != nil {
		return nil, err
	}
	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, ErrBadCredentials
	}

	token, err := auth.SignToken(user)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: user}, nil
}
