package db

import (
	"context"
	"testing"

	"asset-inventory-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUserDefaultsToStaff(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	u, err := r.CreateUser(ctx, uuid.NewString(), CreateUserInput{
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: "x",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleStaff, u.Role)

	got, err := r.FindUserByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = r.FindUserByUsername(ctx, "nobody")
	assert.True(t, IsNotFound(err))
	_, err = r.FindUserByID(ctx, uuid.NewString())
	assert.True(t, IsNotFound(err))
}

func TestTouchUserLogin(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	u := seedUser(t, r, "alice")
	require.NoError(t, r.TouchUserLogin(ctx, u.ID))
	require.NoError(t, r.TouchUserLogin(ctx, u.ID))

	got, err := r.FindUserByID(ctx, u.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, got.LoginCount)
	assert.NotNil(t, got.LastLoginAt)
	assert.NotNil(t, got.LastSeenAt)
}

func TestListUsers(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	seedUser(t, r, "alice")
	seedUser(t, r, "bob")
	seedUser(t, r, "carol")

	res, err := r.ListUsers(ctx, "", 1, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 3, res.Total)
	assert.Len(t, res.Users, 3)

	res, err = r.ListUsers(ctx, "BOB", 1, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 1, res.Total)
	require.Len(t, res.Users, 1)
	assert.Equal(t, "bob", res.Users[0].Username)

	res, err = r.ListUsers(ctx, "", 2, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 3, res.Total)
	assert.Len(t, res.Users, 1)
}

func TestCountUsers(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	n, err := r.CountUsers(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 0, n)

	seedUser(t, r, "alice")
	n, err = r.CountUsers(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}
