package service

import (
	"context"
	"math"
	"sort"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pokerfloor/pokerfloor/internal/model"
	"github.com/pokerfloor/pokerfloor/internal/store"
	"github.com/pokerfloor/pokerfloor/internal/utils"
)

type CasinoService struct {
	db    *sqlx.DB
	store *store.CasinoStore
}

func NewCasinoService(db *sqlx.DB, store *store.CasinoStore) *CasinoService {
	return &CasinoService{db: db, store: store}
}

type CasinoInput struct {
	Name    string  `json:"name"`
	City    string  `json:"city"`
	Country string  `json:"country"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
}

func (s *CasinoService) CreateCasino(ctx context.Context, input CasinoInput) (*model.Casino, error) {
	casino := &model.Casino{
		ID:      uuid.New(),
		Name:    input.Name,
		City:    input.City,
		Country: input.Country,
		Lat:     input.Lat,
		Lng:     input.Lng,
	}
	if err := s.store.CreateCasino(ctx, casino); err != nil {
		return nil, err
	}
	return casino, nil
}

func (s *CasinoService) GetCasino(ctx context.Context, id string) (*model.Casino, error) {
	return s.store.GetCasino(ctx, id)
}

func (s *CasinoService) ListCasinos(ctx context.Context) ([]model.Casino, error) {
	return s.store.ListCasinos(ctx)
}

// UpdateCasino applies the input to an existing casino. Staff must be
// assigned to the casino; admins may update any.
func (s *CasinoService) UpdateCasino(ctx context.Context, user *model.User, id string, input CasinoInput) (*model.Casino, error) {
	casino, err := s.store.GetCasino(ctx, id)
	if err != nil {
		return nil, err
	}
	if !user.CanManageCasino(casino.ID) {
		return nil, ErrNotAssigned
	}
	casino.Name = input.Name
	casino.City = input.City
	casino.Country = input.Country
	casino.Lat = input.Lat
	casino.Lng = input.Lng
	if err := s.store.UpdateCasino(ctx, casino); err != nil {
		return nil, err
	}
	return casino, nil
}

func (s *CasinoService) DeleteCasino(ctx context.Context, user *model.User, id string) (bool, error) {
	if user.Role != model.RoleAdmin {
		return false, ErrAdminOnly
	}
	return s.store.DeleteCasino(ctx, id)
}

// Nearby lists casinos ordered by great-circle distance from the given point.
// sqlite has no geo index, so the distance sort happens here; casino counts
// are small enough that this is fine.
func (s *CasinoService) Nearby(ctx context.Context, lat, lng float64) ([]model.Casino, error) {
	casinos, err := s.store.ListCasinos(ctx)
	if err != nil {
		return nil, err
	}
	for i := range casinos {
		casinos[i].DistanceKm = utils.Ptr(haversineKm(lat, lng, casinos[i].Lat, casinos[i].Lng))
	}
	sort.Slice(casinos, func(i, j int) bool {
		return *casinos[i].DistanceKm < *casinos[j].DistanceKm
	})
	return casinos, nil
}

const earthRadiusKm = 6371.0

func haversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180
	dLng := (lng2 - lng1) * math.Pi / 180
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusKm * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}
