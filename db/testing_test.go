package db

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"asset-inventory-backend/models"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// newTestRepo opens a fresh sqlite database per test so cases never share
// state.
func newTestRepo(t *testing.T) *Repo {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, Migrate(conn))
	return NewRepo(conn)
}

func seedUser(t *testing.T, r *Repo, username string) *models.User {
	t.Helper()

	u, err := r.CreateUser(context.Background(), uuid.NewString(), CreateUserInput{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
		Role:         models.RoleStaff,
	})
	require.NoError(t, err)
	return u
}

func seedCategory(t *testing.T, r *Repo, name string) *models.Category {
	t.Helper()

	cat, err := r.CreateCategory(context.Background(), uuid.NewString(), CreateCategoryInput{Name: name})
	require.NoError(t, err)
	return cat
}

func seedAsset(t *testing.T, r *Repo, categoryID, name string) *AssetRow {
	t.Helper()

	a, err := r.CreateAsset(context.Background(), uuid.NewString(), CreateAssetInput{
		Name:       name,
		CategoryID: categoryID,
	})
	require.NoError(t, err)
	return a
}

func seedLending(t *testing.T, r *Repo, assetID, userID string, expectedReturn time.Time) *LendingRow {
	t.Helper()

	l, err := r.CreateLending(context.Background(), uuid.NewString(), CreateLendingInput{
		AssetID:            assetID,
		BorrowerName:       "Jane",
		ExpectedReturnDate: expectedReturn,
		LentByUserID:       userID,
	})
	require.NoError(t, err)
	return l
}

func ptr[T any](v T) *T { return &v }
