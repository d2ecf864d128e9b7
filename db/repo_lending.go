package db

import (
	"asset-inventory-backend/models"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

// Lending engine. createLending and returnAsset are the only operations that
// write two rows (lending + asset); each runs its check-then-write sequence
// inside a single transaction with a guarded status flip, so a concurrent
// conflicting call either sees the new status or loses the guarded update and
// rolls back without partial state.

type CreateLendingInput struct {
	AssetID            string     `json:"assetId" binding:"required"`
	BorrowerName       string     `json:"borrowerName" binding:"required"`
	BorrowerEmail      *string    `json:"borrowerEmail"`
	BorrowerPhone      *string    `json:"borrowerPhone"`
	Department         *string    `json:"department"`
	LentDate           *time.Time `json:"lentDate"`
	ExpectedReturnDate time.Time  `json:"expectedReturnDate" binding:"required"`
	Notes              *string    `json:"notes"`
	LentByUserID       string     `json:"lentByUserId"`
}

type ReturnAssetInput struct {
	LendingID        string
	ReturnedByUserID string  `json:"returnedByUserId"`
	ReturnNotes      *string `json:"returnNotes"`
	AssetCondition   string  `json:"assetCondition"`
}

// LendingRow is a lending joined with its asset, the asset's category and the
// recording users, the shape every lending query returns.
type LendingRow struct {
	ID      string `json:"id"`
	AssetID string `json:"assetId"`

	AssetName          string   `json:"assetName"`
	AssetSerialNumber  *string  `json:"assetSerialNumber"`
	AssetStatus        string   `json:"assetStatus"`
	AssetPurchasePrice *float64 `json:"assetPurchasePrice"`
	AssetCurrentValue  *float64 `json:"assetCurrentValue"`
	CategoryID         string   `json:"categoryId"`
	CategoryName       string   `json:"categoryName"`

	BorrowerName  string  `json:"borrowerName"`
	BorrowerEmail *string `json:"borrowerEmail"`
	BorrowerPhone *string `json:"borrowerPhone"`
	Department    *string `json:"department"`

	LentDate           time.Time  `json:"lentDate"`
	ExpectedReturnDate time.Time  `json:"expectedReturnDate"`
	ActualReturnDate   *time.Time `json:"actualReturnDate"`

	Status string  `json:"status"`
	Notes  *string `json:"notes"`

	LentByUserID       string  `json:"lentByUserId"`
	LentByUsername     string  `json:"lentByUsername"`
	ReturnedByUserID   *string `json:"returnedByUserId"`
	ReturnedByUsername *string `json:"returnedByUsername"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

const lendingRowSelect = `
	l.id, l.asset_id,
	a.name AS asset_name, a.serial_number AS asset_serial_number,
	a.status AS asset_status, a.purchase_price AS asset_purchase_price,
	a.current_value AS asset_current_value,
	c.id AS category_id, c.name AS category_name,
	l.borrower_name, l.borrower_email, l.borrower_phone, l.department,
	l.lent_date, l.expected_return_date, l.actual_return_date,
	l.status, l.notes,
	l.lent_by_user_id, lu.username AS lent_by_username,
	l.returned_by_user_id, ru.username AS returned_by_username,
	l.created_at, l.updated_at`

func (r *Repo) lendingRows(ctx context.Context) *gorm.DB {
	return r.DB.WithContext(ctx).
		Table(models.LendingTable+" l").
		Select(lendingRowSelect).
		Joins("JOIN "+models.AssetTable+" a ON a.id = l.asset_id").
		Joins("JOIN "+models.CategoryTable+" c ON c.id = a.category_id").
		Joins("JOIN "+models.UserTable+" lu ON lu.id = l.lent_by_user_id").
		Joins("LEFT JOIN " + models.UserTable + " ru ON ru.id = l.returned_by_user_id")
}

// CreateLending lends an available asset to a borrower. The availability
// check, the lending insert and the asset status flip commit as one unit.
func (r *Repo) CreateLending(ctx context.Context, id string, in CreateLendingInput) (*LendingRow, error) {
	now := time.Now().UTC()
	lentDate := now
	if in.LentDate != nil {
		lentDate = *in.LentDate
	}

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var asset models.Asset
		if err := tx.First(&asset, "id = ?", in.AssetID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("asset", in.AssetID)
			}
			return err
		}
		if asset.Status != models.AssetAvailable {
			return conflict("asset not available for lending")
		}

		var user models.User
		if err := tx.First(&user, "id = ?", in.LentByUserID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("user", in.LentByUserID)
			}
			return err
		}

		// Guarded flip: a concurrent createLending on the same asset loses
		// this update, sees zero affected rows and rolls back.
		res := tx.Model(&models.Asset{}).
			Where("id = ? AND status = ?", in.AssetID, models.AssetAvailable).
			Updates(map[string]any{"status": models.AssetLent, "updated_at": now})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return conflict("asset not available for lending")
		}

		lending := &models.Lending{
			ID:                 id,
			AssetID:            in.AssetID,
			BorrowerName:       in.BorrowerName,
			BorrowerEmail:      in.BorrowerEmail,
			BorrowerPhone:      in.BorrowerPhone,
			Department:         in.Department,
			LentDate:           lentDate,
			ExpectedReturnDate: in.ExpectedReturnDate,
			Status:             models.LendingActive,
			Notes:              in.Notes,
			LentByUserID:       in.LentByUserID,
		}
		return tx.Create(lending).Error
	})
	if err != nil {
		return nil, err
	}
	return r.FindLendingByID(ctx, id)
}

// ReturnAsset closes an active lending exactly once and routes the asset
// status by the reported condition. Re-returning fails with Conflict.
func (r *Repo) ReturnAsset(ctx context.Context, in ReturnAssetInput) (*LendingRow, error) {
	condition := in.AssetCondition
	if condition == "" {
		condition = models.ConditionGood
	}
	if !models.ValidAssetCondition(condition) {
		return nil, invalid("invalid asset condition: %s", in.AssetCondition)
	}
	assetStatus := models.AssetAvailable
	switch condition {
	case models.ConditionDamaged:
		assetStatus = models.AssetDamaged
	case models.ConditionNeedsMaintenance:
		assetStatus = models.AssetMaintenance
	}

	now := time.Now().UTC()
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var lending models.Lending
		if err := tx.First(&lending, "id = ?", in.LendingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("lending record", in.LendingID)
			}
			return err
		}
		if lending.Status != models.LendingActive {
			return conflict("lending record is not active")
		}

		var user models.User
		if err := tx.First(&user, "id = ?", in.ReturnedByUserID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("user", in.ReturnedByUserID)
			}
			return err
		}

		update := map[string]any{
			"status":              models.LendingReturned,
			"actual_return_date":  now,
			"returned_by_user_id": in.ReturnedByUserID,
			"updated_at":          now,
		}
		if in.ReturnNotes != nil {
			update["notes"] = *in.ReturnNotes
		}

		// Guarded close: only the first return of a race wins.
		res := tx.Model(&models.Lending{}).
			Where("id = ? AND status = ?", in.LendingID, models.LendingActive).
			Updates(update)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return conflict("lending record is not active")
		}

		return tx.Model(&models.Asset{}).
			Where("id = ?", lending.AssetID).
			Updates(map[string]any{"status": assetStatus, "updated_at": now}).Error
	})
	if err != nil {
		return nil, err
	}
	return r.FindLendingByID(ctx, in.LendingID)
}

// UpdateLending edits descriptive fields only. Status, asset linkage and the
// asset itself are out of reach here; those move through CreateLending and
// ReturnAsset.
func (r *Repo) UpdateLending(ctx context.Context, id string, patch map[string]any) (*LendingRow, error) {
	var lending models.Lending
	if err := r.DB.WithContext(ctx).First(&lending, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("lending record", id)
		}
		return nil, err
	}

	updates := map[string]any{"updated_at": time.Now().UTC()}

	if v, ok := patch["borrowerName"]; ok {
		s, ok := v.(string)
		if !ok || s == "" {
			return nil, invalid("borrowerName must be a non-empty string")
		}
		updates["borrower_name"] = s
	}

	for key, col := range map[string]string{
		"borrowerEmail": "borrower_email",
		"borrowerPhone": "borrower_phone",
		"department":    "department",
		"notes":         "notes",
	} {
		if v, ok := patch[key]; ok {
			switch s := v.(type) {
			case nil:
				updates[col] = nil
			case string:
				updates[col] = s
			default:
				return nil, invalid("%s must be a string or null", key)
			}
		}
	}

	if v, ok := patch["expectedReturnDate"]; ok {
		s, ok := v.(string)
		if !ok {
			return nil, invalid("expectedReturnDate must be an RFC 3339 timestamp")
		}
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return nil, invalid("expectedReturnDate must be an RFC 3339 timestamp")
		}
		updates["expected_return_date"] = t
	}

	if err := r.DB.WithContext(ctx).Model(&models.Lending{}).
		Where("id = ?", id).
		Updates(updates).Error; err != nil {
		return nil, err
	}
	return r.FindLendingByID(ctx, id)
}

// Queries

func (r *Repo) ListLendings(ctx context.Context) ([]LendingRow, error) {
	var rows []LendingRow
	err := r.lendingRows(ctx).Order("l.lent_date DESC").Scan(&rows).Error
	return rows, err
}

func (r *Repo) ListActiveLendings(ctx context.Context) ([]LendingRow, error) {
	var rows []LendingRow
	err := r.lendingRows(ctx).
		Where("l.status = ?", models.LendingActive).
		Order("l.lent_date DESC").
		Scan(&rows).Error
	return rows, err
}

// ListOverdueLendings returns active lendings whose expected return date has
// passed. Overdue is a read-time predicate, never a stored status.
func (r *Repo) ListOverdueLendings(ctx context.Context) ([]LendingRow, error) {
	var rows []LendingRow
	err := r.lendingRows(ctx).
		Where("l.status = ? AND l.expected_return_date < ?", models.LendingActive, time.Now().UTC()).
		Order("l.expected_return_date ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *Repo) FindLendingByID(ctx context.Context, id string) (*LendingRow, error) {
	var row LendingRow
	res := r.lendingRows(ctx).Where("l.id = ?", id).Scan(&row)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, notFound("lending record", id)
	}
	return &row, nil
}

func (r *Repo) ListLendingsByAsset(ctx context.Context, assetID string) ([]LendingRow, error) {
	var rows []LendingRow
	err := r.lendingRows(ctx).
		Where("l.asset_id = ?", assetID).
		Order("l.lent_date DESC").
		Scan(&rows).Error
	return rows, err
}
