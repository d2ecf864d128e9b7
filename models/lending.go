package models

import "time"

const LendingTable = "inv_lendings"

// Stored lending states. A lending is created active and transitions to
// returned exactly once; "overdue" is never stored, it is computed at query
// time as active + expected_return_date in the past.
const (
	LendingActive   = "active"
	LendingReturned = "returned"
)

// Asset condition reported when a lending is returned. It decides the asset
// status the return routes to.
const (
	ConditionGood             = "good"
	ConditionDamaged          = "damaged"
	ConditionNeedsMaintenance = "needs_maintenance"
)

func ValidAssetCondition(c string) bool {
	return c == ConditionGood || c == ConditionDamaged || c == ConditionNeedsMaintenance
}

type Lending struct {
	ID      string `gorm:"type:uuid;primaryKey" json:"id"`
	AssetID string `gorm:"type:uuid;index;not null" json:"assetId"`

	BorrowerName  string  `gorm:"size:200;not null" json:"borrowerName"`
	BorrowerEmail *string `gorm:"size:255" json:"borrowerEmail"`
	BorrowerPhone *string `gorm:"size:50" json:"borrowerPhone"`
	Department    *string `gorm:"size:200" json:"department"`

	LentDate           time.Time  `gorm:"index;not null" json:"lentDate"`
	ExpectedReturnDate time.Time  `gorm:"index;not null" json:"expectedReturnDate"`
	ActualReturnDate   *time.Time `gorm:"index" json:"actualReturnDate"`

	Status string  `gorm:"size:20;not null;default:'active';index" json:"status"`
	Notes  *string `gorm:"size:1000" json:"notes"`

	LentByUserID     string  `gorm:"type:uuid;not null" json:"lentByUserId"`
	ReturnedByUserID *string `gorm:"type:uuid" json:"returnedByUserId"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Lending) TableName() string { return LendingTable }
