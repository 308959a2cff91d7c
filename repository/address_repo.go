package repository

import (
	"context"
	"errors"

	"github.com/devcom-labs/devcom-store/models"
	"gorm.io/gorm"
)

// AddressRepo resolves addresses owned by the address-book service.
type AddressRepo struct {
	db *gorm.DB
}

// NewAddressRepo creates an AddressRepo.
func NewAddressRepo(db *gorm.DB) *AddressRepo {
	return &AddressRepo{db: db}
}

// GetAddress returns the address only when it belongs to the given owner,
// (nil, nil) otherwise.
func (r *AddressRepo) GetAddress(ctx context.Context, id, ownerID uint) (*models.Address, error) {
	var address models.Address
	err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, ownerID).First(&address).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &address, nil
}
