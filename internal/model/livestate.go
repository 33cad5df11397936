package model

import (
	"time"

	"github.com/google/uuid"
)

type LiveStatus string

// Remote clock vocabulary. There is no not-started state remotely; drivers map
// a not-started local clock to paused on upload.
const (
	LiveScheduled LiveStatus = "scheduled"
	LiveRunning   LiveStatus = "running"
	LivePaused    LiveStatus = "paused"
	LiveCompleted LiveStatus = "completed"
)

// ValidLiveStatus reports whether s is part of the remote vocabulary.
func ValidLiveStatus(s LiveStatus) bool {
	switch s {
	case LiveScheduled, LiveRunning, LivePaused, LiveCompleted:
		return true
	}
	return false
}

// LiveTournamentState is the persisted clock snapshot for one tournament.
// Exactly one row exists per tournament; every upload overwrites it whole.
// There is no driver lock, so concurrent drivers race last-write-wins.
type LiveTournamentState struct {
	TournamentID uuid.UUID  `db:"tournament_id" json:"tournamentId"`
	CasinoID     uuid.UUID  `db:"casino_id" json:"casinoId"`
	Status       LiveStatus `db:"status" json:"status"`
	DayIndex     int        `db:"day_index" json:"dayIndex"`
	LevelIndex   int        `db:"level_index" json:"levelIndex"`
	RemainingMs  int64      `db:"remaining_ms" json:"remainingMs"`
	TotalLevels  int        `db:"total_levels" json:"totalLevels"`
	DayLabel     *string    `db:"day_label" json:"dayLabel,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updatedAt"`
}

// LiveStateUpdate is the upsert body a driver sends. Unknown statuses coerce
// to paused and numeric fields clamp to zero server-side.
type LiveStateUpdate struct {
	Status      LiveStatus `json:"status"`
	DayIndex    int        `json:"dayIndex"`
	LevelIndex  int        `json:"levelIndex"`
	RemainingMs int64      `json:"remainingMs"`
	TotalLevels int        `json:"totalLevels"`
	DayLabel    *string    `json:"dayLabel,omitempty"`
}
