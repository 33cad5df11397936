package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pokerfloor/pokerfloor/internal/model"
	"github.com/pokerfloor/pokerfloor/internal/store"
	"github.com/pokerfloor/pokerfloor/internal/structure"
)

func TestNormalizeUnlimitedReEntry(t *testing.T) {
	in := TournamentInput{ReEntryUnlim: true, ReEntryCount: 5}
	in.normalize()

	assert.True(t, in.ReEntry)
	assert.True(t, in.ReEntryUnlim)
	assert.Zero(t, in.ReEntryCount)
	assert.Equal(t, "No Limit Hold'em", in.GameType)
	assert.Equal(t, model.TournamentScheduled, in.Status)
}

func TestNormalizeStructureBreaksAndLevelNumbers(t *testing.T) {
	in := TournamentInput{
		Structure: structure.Structure{
			{SmallBlind: 100, BigBlind: 100},
			{IsBreak: true, Level: 9, SmallBlind: 500, DurationMinutes: 15},
			{SmallBlind: 100, BigBlind: 200},
		},
	}
	in.normalize()

	require.Len(t, in.Structure, 3)
	assert.Equal(t, 1, in.Structure[0].Level)
	assert.True(t, in.Structure[1].IsBreak)
	assert.Zero(t, in.Structure[1].Level)
	assert.Zero(t, in.Structure[1].SmallBlind)
	assert.Equal(t, 15, in.Structure[1].DurationMinutes)
	assert.Equal(t, 3, in.Structure[2].Level)
}

func TestNormalizeDays(t *testing.T) {
	day1 := time.Date(2026, 9, 4, 18, 0, 0, 0, time.UTC)
	day2 := day1.Add(24 * time.Hour)

	in := TournamentInput{
		DateTimeUTC: day2.Add(48 * time.Hour),
		Structure: structure.Structure{
			{Level: 1, SmallBlind: 100, BigBlind: 200},
		},
		Days: structure.Days{
			{Label: "Day 2", StartTimeUTC: day2},
			{Label: "Ghost"}, // no start time, dropped
			{Label: "Day 1", StartTimeUTC: day1, Structure: structure.Structure{
				{Level: 1, SmallBlind: 50, BigBlind: 100},
			}},
		},
	}
	in.normalize()

	require.Len(t, in.Days, 2)
	assert.Equal(t, "Day 1", in.Days[0].Label)
	assert.Equal(t, "Day 2", in.Days[1].Label)
	// day without its own structure inherits the root one
	require.Len(t, in.Days[1].Structure, 1)
	assert.Equal(t, 200, in.Days[1].Structure[0].BigBlind)
	assert.Equal(t, 100, in.Days[0].Structure[0].BigBlind)
	// nominal start snaps to the earliest day
	assert.Equal(t, day1, in.DateTimeUTC)
}

func TestNormalizeCoercesUnknownStatus(t *testing.T) {
	in := TournamentInput{Status: "abandoned"}
	in.normalize()
	assert.Equal(t, model.TournamentScheduled, in.Status)

	in = TournamentInput{Status: model.TournamentCancelled}
	in.normalize()
	assert.Equal(t, model.TournamentCancelled, in.Status)
}

func TestCreateTournamentPermissions(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	svc := NewTournamentService(db, store.NewTournamentStore(db), store.NewCasinoStore(db))
	casino := createTestCasino(t, db, "Permitted")
	other := createTestCasino(t, db, "Other")

	input := TournamentInput{
		CasinoID:    casino.ID,
		Name:        "Nightly",
		DateTimeUTC: time.Now().UTC(),
	}

	plain := createTestUser(t, db, model.RoleUser)
	_, err := svc.CreateTournament(context.Background(), plain, input)
	assert.ErrorIs(t, err, ErrNotAssigned)

	unassigned := createTestUser(t, db, model.RoleStaff, other.ID)
	_, err = svc.CreateTournament(context.Background(), unassigned, input)
	assert.ErrorIs(t, err, ErrNotAssigned)

	staff := createTestUser(t, db, model.RoleStaff, casino.ID)
	created, err := svc.CreateTournament(context.Background(), staff, input)
	require.NoError(t, err)
	assert.Equal(t, casino.ID, created.CasinoID)
	assert.Equal(t, model.TournamentScheduled, created.Status)

	admin := createTestUser(t, db, model.RoleAdmin)
	_, err = svc.CreateTournament(context.Background(), admin, input)
	assert.NoError(t, err)
}

func TestUpdateTournamentKeepsCasino(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	svc := NewTournamentService(db, store.NewTournamentStore(db), store.NewCasinoStore(db))
	casino := createTestCasino(t, db, "Home")
	other := createTestCasino(t, db, "Elsewhere")
	admin := createTestUser(t, db, model.RoleAdmin)

	created, err := svc.CreateTournament(context.Background(), admin, TournamentInput{
		CasinoID:    casino.ID,
		Name:        "Original",
		DateTimeUTC: time.Now().UTC(),
	})
	require.NoError(t, err)

	updated, err := svc.UpdateTournament(context.Background(), admin, created.ID.String(), TournamentInput{
		CasinoID:    other.ID,
		Name:        "Renamed",
		DateTimeUTC: created.DateTimeUTC,
	})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
	assert.Equal(t, casino.ID, updated.CasinoID)
}
