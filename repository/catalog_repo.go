package repository

import (
	"context"
	"errors"

	"github.com/devcom-labs/devcom-store/models"
	"gorm.io/gorm"
)

// CatalogRepo reads products from the catalog tables maintained by the
// catalog service.
type CatalogRepo struct {
	db *gorm.DB
}

// NewCatalogRepo creates a CatalogRepo.
func NewCatalogRepo(db *gorm.DB) *CatalogRepo {
	return &CatalogRepo{db: db}
}

// GetProduct returns the product or (nil, nil) when it does not exist or
// has been deactivated.
func (r *CatalogRepo) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).Where("is_active = ?", true).First(&product, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}
