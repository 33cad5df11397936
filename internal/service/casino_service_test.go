package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pokerfloor/pokerfloor/internal/model"
	"github.com/pokerfloor/pokerfloor/internal/store"
)

func TestUpdateCasinoPermissions(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	svc := NewCasinoService(db, store.NewCasinoStore(db))
	casino := createTestCasino(t, db, "Original Name")

	input := CasinoInput{Name: "New Name", City: "Vienna", Country: "Austria", Lat: 48.2, Lng: 16.37}

	outsider := createTestUser(t, db, model.RoleStaff)
	_, err := svc.UpdateCasino(context.Background(), outsider, casino.ID.String(), input)
	assert.ErrorIs(t, err, ErrNotAssigned)

	staff := createTestUser(t, db, model.RoleStaff, casino.ID)
	updated, err := svc.UpdateCasino(context.Background(), staff, casino.ID.String(), input)
	require.NoError(t, err)
	assert.Equal(t, "New Name", updated.Name)
}

func TestDeleteCasinoAdminOnly(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	svc := NewCasinoService(db, store.NewCasinoStore(db))
	casino := createTestCasino(t, db, "Doomed")

	staff := createTestUser(t, db, model.RoleStaff, casino.ID)
	_, err := svc.DeleteCasino(context.Background(), staff, casino.ID.String())
	assert.ErrorIs(t, err, ErrAdminOnly)

	admin := createTestUser(t, db, model.RoleAdmin)
	deleted, err := svc.DeleteCasino(context.Background(), admin, casino.ID.String())
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = svc.DeleteCasino(context.Background(), admin, casino.ID.String())
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestNearbySortsByDistance(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	svc := NewCasinoService(db, store.NewCasinoStore(db))

	vienna, err := svc.CreateCasino(context.Background(), CasinoInput{
		Name: "Casino Wien", City: "Vienna", Country: "Austria", Lat: 48.2082, Lng: 16.3738,
	})
	require.NoError(t, err)
	bratislava, err := svc.CreateCasino(context.Background(), CasinoInput{
		Name: "Casino Bratislava", City: "Bratislava", Country: "Slovakia", Lat: 48.1486, Lng: 17.1077,
	})
	require.NoError(t, err)
	vegas, err := svc.CreateCasino(context.Background(), CasinoInput{
		Name: "The Strip", City: "Las Vegas", Country: "USA", Lat: 36.1147, Lng: -115.1728,
	})
	require.NoError(t, err)

	// searching from central Vienna
	nearby, err := svc.Nearby(context.Background(), 48.21, 16.37)
	require.NoError(t, err)
	require.Len(t, nearby, 3)

	assert.Equal(t, vienna.ID, nearby[0].ID)
	assert.Equal(t, bratislava.ID, nearby[1].ID)
	assert.Equal(t, vegas.ID, nearby[2].ID)

	require.NotNil(t, nearby[0].DistanceKm)
	assert.Less(t, *nearby[0].DistanceKm, 5.0)
	assert.InDelta(t, 55, *nearby[1].DistanceKm, 15)
	assert.Greater(t, *nearby[2].DistanceKm, 8000.0)
}
