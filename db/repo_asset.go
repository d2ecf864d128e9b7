package db

import (
	"asset-inventory-backend/models"
	"context"
	"math"
	"time"

	"gorm.io/gorm"
)

// Assets

// round2 keeps monetary values at fixed 2-decimal precision on every write.
// They stay plain numbers at the boundary.
func round2(v float64) float64 { return math.Round(v*100) / 100 }

func round2p(v *float64) *float64 {
	if v == nil {
		return nil
	}
	r := round2(*v)
	return &r
}

type CreateAssetInput struct {
	Name          string     `json:"name" binding:"required"`
	Description   *string    `json:"description"`
	CategoryID    string     `json:"categoryId" binding:"required"`
	SerialNumber  *string    `json:"serialNumber"`
	PurchaseDate  *time.Time `json:"purchaseDate"`
	PurchasePrice *float64   `json:"purchasePrice"`
	CurrentValue  *float64   `json:"currentValue"`
	Status        string     `json:"status"`
	Location      *string    `json:"location"`
}

// AssetRow is an asset joined with its category, the shape every asset query
// returns.
type AssetRow struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Description   *string    `json:"description"`
	CategoryID    string     `json:"categoryId"`
	CategoryName  string     `json:"categoryName"`
	SerialNumber  *string    `json:"serialNumber"`
	PurchaseDate  *time.Time `json:"purchaseDate"`
	PurchasePrice *float64   `json:"purchasePrice"`
	CurrentValue  *float64   `json:"currentValue"`
	Status        string     `json:"status"`
	Location      *string    `json:"location"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

const assetRowSelect = `
	a.id, a.name, a.description, a.category_id, c.name AS category_name,
	a.serial_number, a.purchase_date, a.purchase_price, a.current_value,
	a.status, a.location, a.created_at, a.updated_at`

func (r *Repo) assetRows(ctx context.Context) *gorm.DB {
	return r.DB.WithContext(ctx).
		Table(models.AssetTable+" a").
		Select(assetRowSelect).
		Joins("JOIN " + models.CategoryTable + " c ON c.id = a.category_id")
}

func (r *Repo) CreateAsset(ctx context.Context, id string, in CreateAssetInput) (*AssetRow, error) {
	if _, err := r.FindCategoryByID(ctx, in.CategoryID); err != nil {
		if IsNotFound(err) {
			return nil, conflict("category does not exist: %s", in.CategoryID)
		}
		return nil, err
	}

	status := in.Status
	if status == "" {
		status = models.AssetAvailable
	}
	if !models.ValidAssetStatus(status) {
		return nil, invalid("invalid asset status: %s", status)
	}

	a := &models.Asset{
		ID:            id,
		Name:          in.Name,
		Description:   in.Description,
		CategoryID:    in.CategoryID,
		SerialNumber:  in.SerialNumber,
		PurchaseDate:  in.PurchaseDate,
		PurchasePrice: round2p(in.PurchasePrice),
		CurrentValue:  round2p(in.CurrentValue),
		Status:        status,
		Location:      in.Location,
	}
	if err := r.DB.WithContext(ctx).Create(a).Error; err != nil {
		return nil, err
	}
	return r.FindAssetByID(ctx, id)
}

func (r *Repo) ListAssets(ctx context.Context) ([]AssetRow, error) {
	var rows []AssetRow
	err := r.assetRows(ctx).Order("a.created_at DESC").Scan(&rows).Error
	return rows, err
}

func (r *Repo) FindAssetByID(ctx context.Context, id string) (*AssetRow, error) {
	var row AssetRow
	res := r.assetRows(ctx).Where("a.id = ?", id).Scan(&row)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, notFound("asset", id)
	}
	return &row, nil
}

func (r *Repo) ListAssetsByCategory(ctx context.Context, categoryID string) ([]AssetRow, error) {
	var rows []AssetRow
	err := r.assetRows(ctx).
		Where("a.category_id = ?", categoryID).
		Order("a.created_at DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *Repo) ListAssetsByStatus(ctx context.Context, status string) ([]AssetRow, error) {
	if !models.ValidAssetStatus(status) {
		return nil, invalid("invalid asset status: %s", status)
	}
	var rows []AssetRow
	err := r.assetRows(ctx).
		Where("a.status = ?", status).
		Order("a.created_at DESC").
		Scan(&rows).Error
	return rows, err
}

// UpdateAsset applies a partial administrative update. A status value in the
// patch is accepted as long as it is a legal enum member: the lending engine
// is not consulted, this is the documented escape hatch. updated_at is
// refreshed even for an empty patch.
func (r *Repo) UpdateAsset(ctx context.Context, id string, patch map[string]any) (*AssetRow, error) {
	if _, err := r.FindAssetByID(ctx, id); err != nil {
		return nil, err
	}

	updates := map[string]any{"updated_at": time.Now().UTC()}

	if v, ok := patch["name"]; ok {
		s, ok := v.(string)
		if !ok || s == "" {
			return nil, invalid("name must be a non-empty string")
		}
		updates["name"] = s
	}
	if v, ok := patch["categoryId"]; ok {
		s, ok := v.(string)
		if !ok {
			return nil, invalid("categoryId must be a string")
		}
		if _, err := r.FindCategoryByID(ctx, s); err != nil {
			if IsNotFound(err) {
				return nil, conflict("category does not exist: %s", s)
			}
			return nil, err
		}
		updates["category_id"] = s
	}
	if v, ok := patch["status"]; ok {
		s, ok := v.(string)
		if !ok || !models.ValidAssetStatus(s) {
			return nil, invalid("invalid asset status: %v", v)
		}
		updates["status"] = s
	}

	for key, col := range map[string]string{
		"description":  "description",
		"serialNumber": "serial_number",
		"location":     "location",
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

	for key, col := range map[string]string{
		"purchasePrice": "purchase_price",
		"currentValue":  "current_value",
	} {
		if v, ok := patch[key]; ok {
			switch n := v.(type) {
			case nil:
				updates[col] = nil
			case float64:
				updates[col] = round2(n)
			default:
				return nil, invalid("%s must be a number or null", key)
			}
		}
	}

	if v, ok := patch["purchaseDate"]; ok {
		switch s := v.(type) {
		case nil:
			updates["purchase_date"] = nil
		case string:
			t, err := time.Parse(time.RFC3339, s)
			if err != nil {
				return nil, invalid("purchaseDate must be an RFC 3339 timestamp")
			}
			updates["purchase_date"] = t
		default:
			return nil, invalid("purchaseDate must be a timestamp or null")
		}
	}

	if err := r.DB.WithContext(ctx).Model(&models.Asset{}).
		Where("id = ?", id).
		Updates(updates).Error; err != nil {
		return nil, err
	}
	return r.FindAssetByID(ctx, id)
}

// DeleteAsset refuses to remove an asset with any lending history, active or
// returned. History is permanent.
func (r *Repo) DeleteAsset(ctx context.Context, id string) error {
	if _, err := r.FindAssetByID(ctx, id); err != nil {
		return err
	}

	var n int64
	if err := r.DB.WithContext(ctx).Model(&models.Lending{}).
		Where("asset_id = ?", id).
		Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return conflict("cannot delete asset with lending history")
	}

	return r.DB.WithContext(ctx).Delete(&models.Asset{ID: id}).Error
}
