package models

import "time"

const AssetTable = "inv_assets"

// Asset status values. The lending engine drives available <-> lent and the
// return-condition routing to damaged/maintenance; administrative updates may
// set any value directly.
const (
	AssetAvailable   = "available"
	AssetLent        = "lent"
	AssetMaintenance = "maintenance"
	AssetDamaged     = "damaged"
	AssetRetired     = "retired"
)

func ValidAssetStatus(s string) bool {
	switch s {
	case AssetAvailable, AssetLent, AssetMaintenance, AssetDamaged, AssetRetired:
		return true
	}
	return false
}

type Asset struct {
	ID           string     `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string     `gorm:"size:200;not null" json:"name"`
	Description  *string    `gorm:"size:1000" json:"description"`
	CategoryID   string     `gorm:"type:uuid;index;not null" json:"categoryId"`
	SerialNumber *string    `gorm:"size:120" json:"serialNumber"`
	PurchaseDate *time.Time `json:"purchaseDate"`

	// Monetary columns are fixed-point in storage and plain numbers at the
	// boundary; writes round to 2 decimals.
	PurchasePrice *float64 `gorm:"type:decimal(12,2)" json:"purchasePrice"`
	CurrentValue  *float64 `gorm:"type:decimal(12,2)" json:"currentValue"`

	Status   string  `gorm:"size:20;not null;default:'available';index" json:"status"`
	Location *string `gorm:"size:200" json:"location"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Asset) TableName() string { return AssetTable }
