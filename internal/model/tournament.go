package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pokerfloor/pokerfloor/internal/structure"
)

type TournamentStatus string

// Schedule status of the tournament record itself. Informational only and
// distinct from the live clock status.
const (
	TournamentScheduled TournamentStatus = "scheduled"
	TournamentRunning   TournamentStatus = "running"
	TournamentCompleted TournamentStatus = "completed"
	TournamentCancelled TournamentStatus = "cancelled"
)

type Tournament struct {
	ID            uuid.UUID           `db:"id" json:"id"`
	CasinoID      uuid.UUID           `db:"casino_id" json:"casinoId"`
	Name          string              `db:"name" json:"name"`
	DateTimeUTC   time.Time           `db:"date_time_utc" json:"dateTimeUTC"`
	BuyIn         int                 `db:"buy_in" json:"buyIn"`
	Rake          int                 `db:"rake" json:"rake"`
	Bounty        int                 `db:"bounty" json:"bounty"`
	PrizePool     int                 `db:"prize_pool" json:"prizePool"`
	GameType      string              `db:"game_type" json:"gameType"`
	StartingStack int                 `db:"starting_stack" json:"startingStack"`
	ReEntry       bool                `db:"re_entry" json:"reEntry"`
	ReEntryUnlim  bool                `db:"re_entry_unlimited" json:"reEntryUnlimited"`
	ReEntryCount  int                 `db:"re_entry_count" json:"reEntryCount"`
	LateRegLevels int                 `db:"late_reg_levels" json:"lateRegLevels"`
	Structure     structure.Structure `db:"structure" json:"structure"`
	Days          structure.Days      `db:"days" json:"days"`
	Notes         string              `db:"notes" json:"notes"`
	Status        TournamentStatus    `db:"status" json:"status"`
	CreatedAt     time.Time           `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time           `db:"updated_at" json:"updatedAt"`
}

// LevelsForDay returns the structure in effect for the given day, falling back
// to the global structure for single-structure tournaments.
func (t *Tournament) LevelsForDay(dayIndex int) structure.Structure {
	return structure.PickLevels(t.Structure, t.Days, dayIndex)
}

// EarliestStart is the tournament's nominal start: the earliest day start when
// days exist, otherwise the top-level start time.
func (t *Tournament) EarliestStart() time.Time {
	if len(t.Days) == 0 {
		return t.DateTimeUTC
	}
	earliest := t.Days[0].StartTimeUTC
	for _, d := range t.Days[1:] {
		if d.StartTimeUTC.Before(earliest) {
			earliest = d.StartTimeUTC
		}
	}
	return earliest
}

// DayLabel returns the label of the given day, or "" for single-day
// tournaments and out-of-range indices.
func (t *Tournament) DayLabel(dayIndex int) string {
	if dayIndex < 0 || dayIndex >= len(t.Days) {
		return ""
	}
	return t.Days[dayIndex].Label
}
