package auth

import (
	"testing"

	"github.com/google/uuid"
	"github.com/pokerfloor/pokerfloor/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	user := &model.User{ID: uuid.New(), Role: model.RoleStaff}

	token, err := SignToken(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, model.RoleStaff, claims.Role)
}

func TestParseToken_RejectsGarbage(t *testing.T) {
	_, err := ParseToken("not-a-token")
	assert.Error(t, err)

	// A token signed with a different secret must not verify.
	t.Setenv("JWT_SECRET", "secret-a")
	user := &model.User{ID: uuid.New(), Role: model.RoleAdmin}
	token, err := SignToken(user)
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "secret-b")
	_, err = ParseToken(token)
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("hunter2")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter2", hash)

	assert.True(t, CheckPassword(hash, "hunter2"))
	assert.False(t, CheckPassword(hash, "hunter3"))
}
