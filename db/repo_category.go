package db

import (
	"asset-inventory-backend/models"
	"context"
	"errors"

	"gorm.io/gorm"
)

// Categories

type CreateCategoryInput struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
}

func (r *Repo) CreateCategory(ctx context.Context, id string, in CreateCategoryInput) (*models.Category, error) {
	cat := &models.Category{ID: id, Name: in.Name, Description: in.Description}
	if err := r.DB.WithContext(ctx).Create(cat).Error; err != nil {
		return nil, err
	}
	return cat, nil
}

func (r *Repo) ListCategories(ctx context.Context) ([]models.Category, error) {
	var cats []models.Category
	err := r.DB.WithContext(ctx).Order("created_at DESC").Find(&cats).Error
	return cats, err
}

func (r *Repo) FindCategoryByID(ctx context.Context, id string) (*models.Category, error) {
	var cat models.Category
	if err := r.DB.WithContext(ctx).First(&cat, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("category", id)
		}
		return nil, err
	}
	return &cat, nil
}

// UpdateCategory applies a partial update. Keys absent from the patch are
// left untouched; an explicit JSON null clears description. An empty patch
// returns the stored row without writing.
func (r *Repo) UpdateCategory(ctx context.Context, id string, patch map[string]any) (*models.Category, error) {
	cat, err := r.FindCategoryByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if v, ok := patch["name"]; ok {
		s, ok := v.(string)
		if !ok || s == "" {
			return nil, invalid("name must be a non-empty string")
		}
		updates["name"] = s
	}
	if v, ok := patch["description"]; ok {
		switch d := v.(type) {
		case nil:
			updates["description"] = nil
		case string:
			updates["description"] = d
		default:
			return nil, invalid("description must be a string or null")
		}
	}

	if len(updates) == 0 {
		return cat, nil
	}

	if err := r.DB.WithContext(ctx).Model(cat).Updates(updates).Error; err != nil {
		return nil, err
	}
	return r.FindCategoryByID(ctx, id)
}

// DeleteCategory refuses to remove a category that assets still reference.
func (r *Repo) DeleteCategory(ctx context.Context, id string) error {
	if _, err := r.FindCategoryByID(ctx, id); err != nil {
		return err
	}

	var n int64
	if err := r.DB.WithContext(ctx).Model(&models.Asset{}).
		Where("category_id = ?", id).
		Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return conflict("cannot delete category: %d associated assets", n)
	}

	return r.DB.WithContext(ctx).Delete(&models.Category{ID: id}).Error
}
