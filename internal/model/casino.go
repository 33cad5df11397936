package model

import (
	"time"

	"github.com/google/uuid"
)

type Casino struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	City      string    `db:"city" json:"city"`
	Country   string    `db:"country" json:"country"`
	Lat       float64   `db:"lat" json:"lat"`
	Lng       float64   `db:"lng" json:"lng"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`

	// Populated only by the nearby listing, in kilometers.
	DistanceKm *float64 `db:"-" json:"distanceKm,omitempty"`
}
