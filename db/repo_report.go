package db

import (
	"asset-inventory-backend/models"
	"context"
	"time"
)

// Reporting engine. Read-only aggregation; empty result sets are data, not
// errors, and store errors propagate verbatim.

const (
	ReportInventory       = "inventory"
	ReportLending         = "lending"
	ReportReturns         = "returns"
	ReportOverdue         = "overdue"
	ReportCategorySummary = "category_summary"
)

// reportDay is the calendar-day rendering used inside generated report rows.
// Everywhere else dates cross the boundary as timestamps.
const reportDay = "2006-01-02"

type GenerateReportInput struct {
	ReportType string     `json:"reportType" binding:"required"`
	CategoryID *string    `json:"categoryId"`
	Status     *string    `json:"status"`
	StartDate  *time.Time `json:"startDate"`
	EndDate    *time.Time `json:"endDate"`
}

// GenerateReport dispatches on the report type. Anything outside the closed
// enum is rejected.
func (r *Repo) GenerateReport(ctx context.Context, in GenerateReportInput) (any, error) {
	switch in.ReportType {
	case ReportInventory:
		return r.InventoryReport(ctx, in.CategoryID, in.Status)
	case ReportLending:
		return r.LendingReport(ctx, in.StartDate, in.EndDate)
	case ReportReturns:
		return r.ReturnsReport(ctx, in.StartDate, in.EndDate)
	case ReportOverdue:
		return r.OverdueReport(ctx)
	case ReportCategorySummary:
		return r.CategorySummaryReport(ctx)
	default:
		return nil, conflict("unsupported report type: %s", in.ReportType)
	}
}

// Inventory report: per-category asset counts by status plus value sums.
// Categories with no matching asset after filtering don't appear.

type InventoryReportRow struct {
	CategoryID         string  `json:"categoryId"`
	CategoryName       string  `json:"categoryName"`
	TotalAssets        int64   `json:"totalAssets"`
	AvailableCount     int64   `json:"availableCount"`
	LentCount          int64   `json:"lentCount"`
	MaintenanceCount   int64   `json:"maintenanceCount"`
	DamagedCount       int64   `json:"damagedCount"`
	RetiredCount       int64   `json:"retiredCount"`
	TotalPurchasePrice float64 `json:"totalPurchasePrice"`
	TotalCurrentValue  float64 `json:"totalCurrentValue"`
}

func (r *Repo) InventoryReport(ctx context.Context, categoryID, status *string) ([]InventoryReportRow, error) {
	q := r.DB.WithContext(ctx).
		Table(models.AssetTable+" a").
		Select(`
			c.id AS category_id, c.name AS category_name,
			COUNT(a.id) AS total_assets,
			SUM(CASE WHEN a.status = 'available' THEN 1 ELSE 0 END) AS available_count,
			SUM(CASE WHEN a.status = 'lent' THEN 1 ELSE 0 END) AS lent_count,
			SUM(CASE WHEN a.status = 'maintenance' THEN 1 ELSE 0 END) AS maintenance_count,
			SUM(CASE WHEN a.status = 'damaged' THEN 1 ELSE 0 END) AS damaged_count,
			SUM(CASE WHEN a.status = 'retired' THEN 1 ELSE 0 END) AS retired_count,
			COALESCE(SUM(a.purchase_price), 0) AS total_purchase_price,
			COALESCE(SUM(a.current_value), 0) AS total_current_value`).
		Joins("JOIN " + models.CategoryTable + " c ON c.id = a.category_id").
		Group("c.id, c.name").
		Order("c.name")

	if categoryID != nil {
		q = q.Where("a.category_id = ?", *categoryID)
	}
	if status != nil {
		if !models.ValidAssetStatus(*status) {
			return nil, invalid("invalid asset status: %s", *status)
		}
		q = q.Where("a.status = ?", *status)
	}

	var rows []InventoryReportRow
	if err := q.Scan(&rows).Error; err != nil {
		return nil, err
	}
	for i := range rows {
		rows[i].TotalPurchasePrice = round2(rows[i].TotalPurchasePrice)
		rows[i].TotalCurrentValue = round2(rows[i].TotalCurrentValue)
	}
	return rows, nil
}

// Lending report: flat lending list, optionally windowed on lent_date.

type LendingReportRow struct {
	LendingID          string  `json:"lendingId"`
	AssetName          string  `json:"assetName"`
	CategoryName       string  `json:"categoryName"`
	BorrowerName       string  `json:"borrowerName"`
	Department         *string `json:"department"`
	LentDate           string  `json:"lentDate"`
	ExpectedReturnDate string  `json:"expectedReturnDate"`
	ActualReturnDate   *string `json:"actualReturnDate"`
	Status             string  `json:"status"`
	LentByUsername     string  `json:"lentByUsername"`
}

func (r *Repo) LendingReport(ctx context.Context, start, end *time.Time) ([]LendingReportRow, error) {
	q := r.lendingRows(ctx).Order("l.lent_date DESC")
	if start != nil {
		q = q.Where("l.lent_date >= ?", *start)
	}
	if end != nil {
		q = q.Where("l.lent_date <= ?", *end)
	}

	var src []LendingRow
	if err := q.Scan(&src).Error; err != nil {
		return nil, err
	}

	rows := make([]LendingReportRow, 0, len(src))
	for _, l := range src {
		rows = append(rows, LendingReportRow{
			LendingID:          l.ID,
			AssetName:          l.AssetName,
			CategoryName:       l.CategoryName,
			BorrowerName:       l.BorrowerName,
			Department:         l.Department,
			LentDate:           l.LentDate.Format(reportDay),
			ExpectedReturnDate: l.ExpectedReturnDate.Format(reportDay),
			ActualReturnDate:   dayString(l.ActualReturnDate),
			Status:             l.Status,
			LentByUsername:     l.LentByUsername,
		})
	}
	return rows, nil
}

// Returns report: lendings that actually came back, optionally windowed on
// actual_return_date.

type ReturnsReportRow struct {
	LendingID          string `json:"lendingId"`
	AssetName          string `json:"assetName"`
	CategoryName       string `json:"categoryName"`
	BorrowerName       string `json:"borrowerName"`
	LentDate           string `json:"lentDate"`
	ActualReturnDate   string `json:"actualReturnDate"`
	ReturnedByUsername string `json:"returnedByUsername"`
}

func (r *Repo) ReturnsReport(ctx context.Context, start, end *time.Time) ([]ReturnsReportRow, error) {
	q := r.lendingRows(ctx).
		Where("l.actual_return_date IS NOT NULL").
		Order("l.actual_return_date DESC")
	if start != nil {
		q = q.Where("l.actual_return_date >= ?", *start)
	}
	if end != nil {
		q = q.Where("l.actual_return_date <= ?", *end)
	}

	var src []LendingRow
	if err := q.Scan(&src).Error; err != nil {
		return nil, err
	}

	rows := make([]ReturnsReportRow, 0, len(src))
	for _, l := range src {
		returnedBy := "Unknown"
		if l.ReturnedByUsername != nil {
			returnedBy = *l.ReturnedByUsername
		}
		rows = append(rows, ReturnsReportRow{
			LendingID:          l.ID,
			AssetName:          l.AssetName,
			CategoryName:       l.CategoryName,
			BorrowerName:       l.BorrowerName,
			LentDate:           l.LentDate.Format(reportDay),
			ActualReturnDate:   l.ActualReturnDate.Format(reportDay),
			ReturnedByUsername: returnedBy,
		})
	}
	return rows, nil
}

// Overdue report: active lendings past their expected return date, with
// borrower contact details and whole days overdue.

type OverdueReportRow struct {
	LendingID          string  `json:"lendingId"`
	AssetName          string  `json:"assetName"`
	CategoryName       string  `json:"categoryName"`
	BorrowerName       string  `json:"borrowerName"`
	BorrowerEmail      *string `json:"borrowerEmail"`
	BorrowerPhone      *string `json:"borrowerPhone"`
	Department         *string `json:"department"`
	LentDate           string  `json:"lentDate"`
	ExpectedReturnDate string  `json:"expectedReturnDate"`
	DaysOverdue        int     `json:"daysOverdue"`
}

func (r *Repo) OverdueReport(ctx context.Context) ([]OverdueReportRow, error) {
	now := time.Now().UTC()
	src, err := r.ListOverdueLendings(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]OverdueReportRow, 0, len(src))
	for _, l := range src {
		rows = append(rows, OverdueReportRow{
			LendingID:          l.ID,
			AssetName:          l.AssetName,
			CategoryName:       l.CategoryName,
			BorrowerName:       l.BorrowerName,
			BorrowerEmail:      l.BorrowerEmail,
			BorrowerPhone:      l.BorrowerPhone,
			Department:         l.Department,
			LentDate:           l.LentDate.Format(reportDay),
			ExpectedReturnDate: l.ExpectedReturnDate.Format(reportDay),
			DaysOverdue:        int(now.Sub(l.ExpectedReturnDate).Hours() / 24),
		})
	}
	return rows, nil
}

// Category summary: every category appears, including empty ones.

type CategorySummaryRow struct {
	CategoryID        string  `json:"categoryId"`
	CategoryName      string  `json:"categoryName"`
	TotalAssets       int64   `json:"totalAssets"`
	TotalCurrentValue float64 `json:"totalCurrentValue"`
	TotalLendings     int64   `json:"totalLendings"`
	ActiveLendings    int64   `json:"activeLendings"`
	UtilizationRate   float64 `json:"utilizationRate"`
	MostLentAsset     string  `json:"mostLentAsset"`
	MostLentCount     int64   `json:"mostLentCount"`
	LeastLentAsset    string  `json:"leastLentAsset"`
	LeastLentCount    int64   `json:"leastLentCount"`
}

type assetLendingStats struct {
	CategoryID     string
	AssetID        string
	AssetName      string
	CurrentValue   *float64
	LendingCount   int64
	ActiveLendings int64
}

func (r *Repo) CategorySummaryReport(ctx context.Context) ([]CategorySummaryRow, error) {
	cats, err := r.ListCategories(ctx)
	if err != nil {
		return nil, err
	}

	var stats []assetLendingStats
	if err := r.DB.WithContext(ctx).
		Table(models.AssetTable+" a").
		Select(`
			a.category_id, a.id AS asset_id, a.name AS asset_name, a.current_value,
			COUNT(l.id) AS lending_count,
			SUM(CASE WHEN l.status = 'active' THEN 1 ELSE 0 END) AS active_lendings`).
		Joins("LEFT JOIN "+models.LendingTable+" l ON l.asset_id = a.id").
		Group("a.category_id, a.id, a.name, a.current_value").
		Scan(&stats).Error; err != nil {
		return nil, err
	}

	byCategory := make(map[string][]assetLendingStats, len(cats))
	for _, s := range stats {
		byCategory[s.CategoryID] = append(byCategory[s.CategoryID], s)
	}

	rows := make([]CategorySummaryRow, 0, len(cats))
	for _, c := range cats {
		row := CategorySummaryRow{
			CategoryID:     c.ID,
			CategoryName:   c.Name,
			MostLentAsset:  "N/A",
			LeastLentAsset: "N/A",
		}

		assets := byCategory[c.ID]
		for _, a := range assets {
			row.TotalAssets++
			if a.CurrentValue != nil {
				row.TotalCurrentValue += *a.CurrentValue
			}
			row.TotalLendings += a.LendingCount
			row.ActiveLendings += a.ActiveLendings

			if row.MostLentAsset == "N/A" || a.LendingCount > row.MostLentCount {
				row.MostLentAsset, row.MostLentCount = a.AssetName, a.LendingCount
			}
			if row.LeastLentAsset == "N/A" || a.LendingCount < row.LeastLentCount {
				row.LeastLentAsset, row.LeastLentCount = a.AssetName, a.LendingCount
			}
		}

		row.TotalCurrentValue = round2(row.TotalCurrentValue)
		if row.TotalAssets > 0 {
			row.UtilizationRate = round2(float64(row.ActiveLendings) / float64(row.TotalAssets))
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func dayString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(reportDay)
	return &s
}
