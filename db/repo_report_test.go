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

func TestInventoryReport(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	elec := seedCategory(t, r, "Electronics")
	seedCategory(t, r, "Empty")
	admin := seedUser(t, r, "admin")

	_, err := r.CreateAsset(ctx, uuid.NewString(), CreateAssetInput{
		Name:          "Laptop",
		CategoryID:    elec.ID,
		PurchasePrice: ptr(1000.00),
		CurrentValue:  ptr(600.00),
	})
	require.NoError(t, err)
	monitor, err := r.CreateAsset(ctx, uuid.NewString(), CreateAssetInput{
		Name:          "Monitor",
		CategoryID:    elec.ID,
		PurchasePrice: ptr(250.25),
	})
	require.NoError(t, err)
	seedLending(t, r, monitor.ID, admin.ID, time.Now().UTC().Add(48*time.Hour))

	rows, err := r.InventoryReport(ctx, nil, nil)
	require.NoError(t, err)
	require.Len(t, rows, 1) // empty categories don't appear

	row := rows[0]
	assert.Equal(t, "Electronics", row.CategoryName)
	assert.EqualValues(t, 2, row.TotalAssets)
	assert.EqualValues(t, 1, row.AvailableCount)
	assert.EqualValues(t, 1, row.LentCount)
	assert.EqualValues(t, 0, row.DamagedCount)
	assert.Equal(t, 1250.25, row.TotalPurchasePrice)
	assert.Equal(t, 600.00, row.TotalCurrentValue)

	// Status filter narrows the counts.
	rows, err = r.InventoryReport(ctx, nil, ptr(models.AssetLent))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.EqualValues(t, 1, rows[0].TotalAssets)
	assert.Equal(t, 250.25, rows[0].TotalPurchasePrice)

	_, err = r.InventoryReport(ctx, nil, ptr("borrowed"))
	assert.True(t, IsValidation(err))
}

func TestLendingAndReturnsReports(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	cat := seedCategory(t, r, "Electronics")
	laptop := seedAsset(t, r, cat.ID, "Laptop")
	monitor := seedAsset(t, r, cat.ID, "Monitor")
	admin := seedUser(t, r, "admin")
	due := time.Now().UTC().Add(48 * time.Hour)

	l := seedLending(t, r, laptop.ID, admin.ID, due)
	seedLending(t, r, monitor.ID, admin.ID, due)

	_, err := r.ReturnAsset(ctx, ReturnAssetInput{LendingID: l.ID, ReturnedByUserID: admin.ID})
	require.NoError(t, err)

	today := time.Now().UTC().Format(reportDay)

	lent, err := r.LendingReport(ctx, nil, nil)
	require.NoError(t, err)
	require.Len(t, lent, 2)
	assert.Equal(t, today, lent[0].LentDate)
	assert.Equal(t, "admin", lent[0].LentByUsername)

	// A window in the past matches nothing.
	past := time.Now().UTC().Add(-48 * time.Hour)
	lent, err = r.LendingReport(ctx, nil, &past)
	require.NoError(t, err)
	assert.Empty(t, lent)

	returns, err := r.ReturnsReport(ctx, nil, nil)
	require.NoError(t, err)
	require.Len(t, returns, 1)
	assert.Equal(t, "Laptop", returns[0].AssetName)
	assert.Equal(t, today, returns[0].ActualReturnDate)
	assert.Equal(t, "admin", returns[0].ReturnedByUsername)
}

func TestReturnsReportUnknownReturner(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	cat := seedCategory(t, r, "Electronics")
	laptop := seedAsset(t, r, cat.ID, "Laptop")
	admin := seedUser(t, r, "admin")

	now := time.Now().UTC()
	require.NoError(t, r.DB.Create(&models.Lending{
		ID:                 uuid.NewString(),
		AssetID:            laptop.ID,
		BorrowerName:       "Jane",
		LentDate:           now.Add(-48 * time.Hour),
		ExpectedReturnDate: now.Add(-24 * time.Hour),
		ActualReturnDate:   &now,
		Status:             models.LendingReturned,
		LentByUserID:       admin.ID,
	}).Error)

	returns, err := r.ReturnsReport(ctx, nil, nil)
	require.NoError(t, err)
	require.Len(t, returns, 1)
	assert.Equal(t, "Unknown", returns[0].ReturnedByUsername)
}

func TestOverdueReport(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	cat := seedCategory(t, r, "Electronics")
	laptop := seedAsset(t, r, cat.ID, "Laptop")
	admin := seedUser(t, r, "admin")

	l, err := r.CreateLending(ctx, uuid.NewString(), CreateLendingInput{
		AssetID:            laptop.ID,
		BorrowerName:       "Jane",
		BorrowerEmail:      ptr("jane@example.com"),
		ExpectedReturnDate: time.Now().UTC().Add(-25 * time.Hour),
		LentByUserID:       admin.ID,
	})
	require.NoError(t, err)

	rows, err := r.OverdueReport(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, l.ID, rows[0].LendingID)
	assert.Equal(t, 1, rows[0].DaysOverdue)
	require.NotNil(t, rows[0].BorrowerEmail)
	assert.Equal(t, "jane@example.com", *rows[0].BorrowerEmail)
}

func TestCategorySummaryReport(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	elec := seedCategory(t, r, "Electronics")
	seedCategory(t, r, "Empty")
	admin := seedUser(t, r, "admin")
	due := time.Now().UTC().Add(48 * time.Hour)

	laptop, err := r.CreateAsset(ctx, uuid.NewString(), CreateAssetInput{
		Name:         "Laptop",
		CategoryID:   elec.ID,
		CurrentValue: ptr(600.00),
	})
	require.NoError(t, err)
	monitor := seedAsset(t, r, elec.ID, "Monitor")
	seedAsset(t, r, elec.ID, "Keyboard")
	seedAsset(t, r, elec.ID, "Mouse")

	// Laptop lent twice (one returned), monitor once, the rest never.
	first := seedLending(t, r, laptop.ID, admin.ID, due)
	_, err = r.ReturnAsset(ctx, ReturnAssetInput{LendingID: first.ID, ReturnedByUserID: admin.ID})
	require.NoError(t, err)
	seedLending(t, r, laptop.ID, admin.ID, due)
	seedLending(t, r, monitor.ID, admin.ID, due)

	rows, err := r.CategorySummaryReport(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2) // empty category still appears

	byName := map[string]CategorySummaryRow{}
	for _, row := range rows {
		byName[row.CategoryName] = row
	}

	elecRow := byName["Electronics"]
	assert.EqualValues(t, 4, elecRow.TotalAssets)
	assert.Equal(t, 600.00, elecRow.TotalCurrentValue)
	assert.EqualValues(t, 3, elecRow.TotalLendings)
	assert.EqualValues(t, 2, elecRow.ActiveLendings)
	assert.Equal(t, 0.5, elecRow.UtilizationRate)
	assert.Equal(t, "Laptop", elecRow.MostLentAsset)
	assert.EqualValues(t, 2, elecRow.MostLentCount)
	assert.EqualValues(t, 0, elecRow.LeastLentCount)

	emptyRow := byName["Empty"]
	assert.EqualValues(t, 0, emptyRow.TotalAssets)
	assert.Equal(t, 0.0, emptyRow.UtilizationRate)
	assert.Equal(t, "N/A", emptyRow.MostLentAsset)
	assert.Equal(t, "N/A", emptyRow.LeastLentAsset)
}

func TestGenerateReportDispatch(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	out, err := r.GenerateReport(ctx, GenerateReportInput{ReportType: ReportOverdue})
	require.NoError(t, err)
	assert.IsType(t, []OverdueReportRow{}, out)

	out, err = r.GenerateReport(ctx, GenerateReportInput{ReportType: ReportCategorySummary})
	require.NoError(t, err)
	assert.IsType(t, []CategorySummaryRow{}, out)

	_, err = r.GenerateReport(ctx, GenerateReportInput{ReportType: "utilization"})
	require.Error(t, err)
	assert.True(t, IsConflict(err))
	assert.Contains(t, err.Error(), "unsupported report type: utilization")
}
