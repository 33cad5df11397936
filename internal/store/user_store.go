package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pokerfloor/pokerfloor/internal/model"
)

type UserStore struct {
	db *sqlx.DB
}

const (
	getUserQuery        = "SELECT * FROM users WHERE id = ?"
	getUserByEmailQuery = "SELECT * FROM users WHERE email = ?"
	createUserQuery     = `
		INSERT INTO users (id, name, email, password_hash, role, assigned_casino_ids) VALUES
		(:id, :name, :email, :password_hash, :role, :assigned_casino_ids)
	`
	updateUserRoleAndCasinosQuery = `
		UPDATE users SET
		role = :role,
		assigned_casino_ids = :assigned_casino_ids
		WHERE id = :id
	`
)

func NewUserStore(db *sqlx.DB) *UserStore {
	return &UserStore{db: db}
}

func (s *UserStore) GetUser(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	err := s.db.GetContext(ctx, &user, getUserQuery, id)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserStore) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := s.db.GetContext(ctx, &user, getUserByEmailQuery, email)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserStore) CreateUser(ctx context.Context, user *model.User) error {
	_, err := s.db.NamedExecContext(ctx, createUserQuery, user)
	return err
}

func (s *UserStore) UpdateRoleAndCasinos(ctx context.Context, tx *sqlx.Tx, user *model.User) error {
	_, err := tx.NamedExecContext(ctx, updateUserRoleAndCasinosQuery, user)
	return err
}
