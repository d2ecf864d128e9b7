package models

import "time"

const CategoryTable = "inv_categories"

// Category is a grouping label for assets. Deleting one is refused while any
// asset still references it.
type Category struct {
	ID          string    `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"size:200;not null" json:"name"`
	Description *string   `gorm:"size:1000" json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (Category) TableName() string { return CategoryTable }
