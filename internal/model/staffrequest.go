package model

import (
	"time"

	"github.com/google/uuid"
)

type StaffRequestStatus string

const (
	StaffRequestPending  StaffRequestStatus = "pending"
	StaffRequestApproved StaffRequestStatus = "approved"
	StaffRequestDenied   StaffRequestStatus = "denied"
)

type StaffRequest struct {
	ID        uuid.UUID          `db:"id" json:"id"`
	UserID    uuid.UUID          `db:"user_id" json:"userId"`
	CasinoID  uuid.UUID          `db:"casino_id" json:"casinoId"`
	Status    StaffRequestStatus `db:"status" json:"status"`
	CreatedAt time.Time          `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time          `db:"updated_at" json:"updatedAt"`
}
