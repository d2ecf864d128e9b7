package db

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndGetCategory(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	cat, err := r.CreateCategory(ctx, uuid.NewString(), CreateCategoryInput{
		Name:        "Electronics",
		Description: ptr("laptops and peripherals"),
	})
	require.NoError(t, err)

	got, err := r.FindCategoryByID(ctx, cat.ID)
	require.NoError(t, err)
	assert.Equal(t, "Electronics", got.Name)
	require.NotNil(t, got.Description)
	assert.Equal(t, "laptops and peripherals", *got.Description)

	_, err = r.FindCategoryByID(ctx, uuid.NewString())
	assert.True(t, IsNotFound(err))
}

func TestUpdateCategoryPatchSemantics(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	cat, err := r.CreateCategory(ctx, uuid.NewString(), CreateCategoryInput{
		Name:        "Tools",
		Description: ptr("hand tools"),
	})
	require.NoError(t, err)

	// Only name present: description untouched.
	got, err := r.UpdateCategory(ctx, cat.ID, map[string]any{"name": "Power Tools"})
	require.NoError(t, err)
	assert.Equal(t, "Power Tools", got.Name)
	require.NotNil(t, got.Description)

	// Explicit null clears description.
	got, err = r.UpdateCategory(ctx, cat.ID, map[string]any{"description": nil})
	require.NoError(t, err)
	assert.Nil(t, got.Description)
	assert.Equal(t, "Power Tools", got.Name)

	// Empty patch returns the row without writing.
	before := got.UpdatedAt
	got, err = r.UpdateCategory(ctx, cat.ID, map[string]any{})
	require.NoError(t, err)
	assert.Equal(t, before, got.UpdatedAt)

	_, err = r.UpdateCategory(ctx, uuid.NewString(), map[string]any{"name": "X"})
	assert.True(t, IsNotFound(err))

	_, err = r.UpdateCategory(ctx, cat.ID, map[string]any{"name": 7})
	assert.True(t, IsValidation(err))
}

func TestDeleteCategoryBlockedByAssets(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	cat := seedCategory(t, r, "Electronics")
	seedAsset(t, r, cat.ID, "Laptop")
	seedAsset(t, r, cat.ID, "Monitor")

	err := r.DeleteCategory(ctx, cat.ID)
	require.Error(t, err)
	assert.True(t, IsConflict(err))
	assert.Contains(t, err.Error(), "2 associated assets")

	// Still there.
	_, err = r.FindCategoryByID(ctx, cat.ID)
	require.NoError(t, err)
}

func TestDeleteCategory(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	cat := seedCategory(t, r, "Empty")
	require.NoError(t, r.DeleteCategory(ctx, cat.ID))

	_, err := r.FindCategoryByID(ctx, cat.ID)
	assert.True(t, IsNotFound(err))

	err = r.DeleteCategory(ctx, uuid.NewString())
	assert.True(t, IsNotFound(err))
}
