package store

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pokerfloor/pokerfloor/internal/model"
)

type CasinoStore struct {
	db *sqlx.DB
}

func NewCasinoStore(db *sqlx.DB) *CasinoStore {
	return &CasinoStore{db: db}
}

func (s *CasinoStore) CreateCasino(ctx context.Context, casino *model.Casino) error {
	_, err := s.db.NamedExecContext(ctx, `INSERT INTO casinos (id, name, city, country, lat, lng)
		VALUES (:id, :name, :city, :country, :lat, :lng)`, casino)
	return err
}

func (s *CasinoStore) GetCasino(ctx context.Context, id string) (*model.Casino, error) {
	var casino model.Casino
	err := s.db.GetContext(ctx, &casino, "SELECT * FROM casinos WHERE id = ?", id)
	if err != nil {
		return nil, err
	}
	return &casino, nil
}

func (s *CasinoStore) ListCasinos(ctx context.Context) ([]model.Casino, error) {
	var casinos []model.Casino
	err := s.db.SelectContext(ctx, &casinos, "SELECT * FROM casinos ORDER BY name ASC")
	return casinos, err
}

func (s *CasinoStore) UpdateCasino(ctx context.Context, casino *model.Casino) error {
	_, err := s.db.NamedExecContext(ctx, `UPDATE casinos SET
		name = :name,
		city = :city,
		country = :country,
		lat = :lat,
		lng = :lng,
		updated_at = CURRENT_TIMESTAMP
		WHERE id = :id`, casino)
	return err
}

func (s *CasinoStore) DeleteCasino(ctx context.Context, id string) (bool, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM casinos WHERE id = ?", id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}
