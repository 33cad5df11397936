package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleStaff Role = "staff"
	RoleAdmin Role = "admin"
)

// UUIDList is a JSON-encoded list column, used for casino assignments.
type UUIDList []uuid.UUID

func (l UUIDList) Value() (driver.Value, error) {
	if l == nil {
		l = UUIDList{}
	}
	return json.Marshal(l)
}

func (l *UUIDList) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		if len(v) == 0 {
			return nil
		}
		return json.Unmarshal(v, l)
	case string:
		if v == "" {
			return nil
		}
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("cannot scan %T into UUIDList", src)
	}
}

func (l UUIDList) Contains(id uuid.UUID) bool {
	for _, v := range l {
		if v == id {
			return true
		}
	}
	return false
}

type User struct {
	ID                uuid.UUID `db:"id" json:"id"`
	Name              string    `db:"name" json:"name"`
	Email             string    `db:"email" json:"email"`
	PasswordHash      string    `db:"password_hash" json:"-"`
	Role              Role      `db:"role" json:"role"`
	AssignedCasinoIDs UUIDList  `db:"assigned_casino_ids" json:"assignedCasinoIds"`
	CreatedAt         time.Time `db:"created_at" json:"createdAt"`
}

// CanManageCasino reports whether the user may mutate records owned by the
// casino: admins always, staff only when assigned to it.
func (u *User) CanManageCasino(casinoID uuid.UUID) bool {
	if u == nil {
		return false
	}
	if u.Role == RoleAdmin {
		return true
	}
	return u.Role == RoleStaff && u.AssignedCasinoIDs.Contains(casinoID)
}

// IsAdminOfCasino reports whether the user is an admin assigned to the casino.
// Staff-request approval requires the casino's own admin, not just any admin.
func (u *User) IsAdminOfCasino(casinoID uuid.UUID) bool {
	return u != nil && u.Role == RoleAdmin && u.AssignedCasinoIDs.Contains(casinoID)
}
