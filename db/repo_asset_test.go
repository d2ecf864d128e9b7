package db

import (
	"context"
	"testing"
	"time"

	"asset-inventory-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAsset(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	cat := seedCategory(t, r, "Electronics")

	a, err := r.CreateAsset(ctx, uuid.NewString(), CreateAssetInput{
		Name:          "Laptop",
		CategoryID:    cat.ID,
		SerialNumber:  ptr("SN-001"),
		PurchasePrice: ptr(1500.50),
		CurrentValue:  ptr(10.999),
	})
	require.NoError(t, err)

	assert.Equal(t, models.AssetAvailable, a.Status)
	assert.Equal(t, "Electronics", a.CategoryName)
	require.NotNil(t, a.PurchasePrice)
	assert.Equal(t, 1500.50, *a.PurchasePrice)
	require.NotNil(t, a.CurrentValue)
	assert.Equal(t, 11.0, *a.CurrentValue)
}

func TestCreateAssetUnknownCategory(t *testing.T) {
	r := newTestRepo(t)

	_, err := r.CreateAsset(context.Background(), uuid.NewString(), CreateAssetInput{
		Name:       "Laptop",
		CategoryID: uuid.NewString(),
	})
	require.Error(t, err)
	assert.True(t, IsConflict(err))
	assert.Contains(t, err.Error(), "category does not exist")
}

func TestCreateAssetInvalidStatus(t *testing.T) {
	r := newTestRepo(t)

	cat := seedCategory(t, r, "Electronics")
	_, err := r.CreateAsset(context.Background(), uuid.NewString(), CreateAssetInput{
		Name:       "Laptop",
		CategoryID: cat.ID,
		Status:     "borrowed",
	})
	assert.True(t, IsValidation(err))
}

func TestUpdateAssetPatch(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	cat := seedCategory(t, r, "Electronics")
	other := seedCategory(t, r, "Furniture")
	a, err := r.CreateAsset(ctx, uuid.NewString(), CreateAssetInput{
		Name:         "Laptop",
		CategoryID:   cat.ID,
		SerialNumber: ptr("SN-001"),
	})
	require.NoError(t, err)

	// Move category and retire via the administrative escape hatch.
	got, err := r.UpdateAsset(ctx, a.ID, map[string]any{
		"categoryId": other.ID,
		"status":     models.AssetRetired,
	})
	require.NoError(t, err)
	assert.Equal(t, "Furniture", got.CategoryName)
	assert.Equal(t, models.AssetRetired, got.Status)

	// Explicit null clears the serial number.
	got, err = r.UpdateAsset(ctx, a.ID, map[string]any{"serialNumber": nil})
	require.NoError(t, err)
	assert.Nil(t, got.SerialNumber)

	// Money rounds on write.
	got, err = r.UpdateAsset(ctx, a.ID, map[string]any{"currentValue": 99.995})
	require.NoError(t, err)
	require.NotNil(t, got.CurrentValue)
	assert.Equal(t, 100.0, *got.CurrentValue)

	_, err = r.UpdateAsset(ctx, a.ID, map[string]any{"categoryId": uuid.NewString()})
	assert.True(t, IsConflict(err))

	_, err = r.UpdateAsset(ctx, a.ID, map[string]any{"status": "borrowed"})
	assert.True(t, IsValidation(err))

	_, err = r.UpdateAsset(ctx, uuid.NewString(), map[string]any{"name": "X"})
	assert.True(t, IsNotFound(err))
}

func TestDeleteAssetBlockedByLendingHistory(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	cat := seedCategory(t, r, "Electronics")
	a := seedAsset(t, r, cat.ID, "Laptop")
	u := seedUser(t, r, "alice")
	l := seedLending(t, r, a.ID, u.ID, time.Now().UTC().Add(7*24*time.Hour))

	err := r.DeleteAsset(ctx, a.ID)
	require.Error(t, err)
	assert.True(t, IsConflict(err))
	assert.Contains(t, err.Error(), "cannot delete asset with lending history")

	// History keeps blocking after the asset comes back.
	_, err = r.ReturnAsset(ctx, ReturnAssetInput{LendingID: l.ID, ReturnedByUserID: u.ID})
	require.NoError(t, err)

	err = r.DeleteAsset(ctx, a.ID)
	assert.True(t, IsConflict(err))
}

func TestDeleteAsset(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	cat := seedCategory(t, r, "Electronics")
	a := seedAsset(t, r, cat.ID, "Laptop")

	require.NoError(t, r.DeleteAsset(ctx, a.ID))

	_, err := r.FindAssetByID(ctx, a.ID)
	assert.True(t, IsNotFound(err))

	err = r.DeleteAsset(ctx, uuid.NewString())
	assert.True(t, IsNotFound(err))
}

func TestListAssetsFilters(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	elec := seedCategory(t, r, "Electronics")
	furn := seedCategory(t, r, "Furniture")
	seedAsset(t, r, elec.ID, "Laptop")
	seedAsset(t, r, elec.ID, "Monitor")
	desk := seedAsset(t, r, furn.ID, "Desk")

	_, err := r.UpdateAsset(ctx, desk.ID, map[string]any{"status": models.AssetMaintenance})
	require.NoError(t, err)

	all, err := r.ListAssets(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	byCat, err := r.ListAssetsByCategory(ctx, elec.ID)
	require.NoError(t, err)
	assert.Len(t, byCat, 2)

	byStatus, err := r.ListAssetsByStatus(ctx, models.AssetMaintenance)
	require.NoError(t, err)
	require.Len(t, byStatus, 1)
	assert.Equal(t, "Desk", byStatus[0].Name)

	_, err = r.ListAssetsByStatus(ctx, "borrowed")
	assert.True(t, IsValidation(err))
}
