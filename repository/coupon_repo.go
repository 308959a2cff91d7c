package repository

import (
	"context"
	"errors"

	"github.com/devcom-labs/devcom-store/models"
	"gorm.io/gorm"
)

// CouponRepo persists the global coupon catalog.
type CouponRepo struct {
	db *gorm.DB
}

// NewCouponRepo creates a CouponRepo.
func NewCouponRepo(db *gorm.DB) *CouponRepo {
	return &CouponRepo{db: db}
}

// Create inserts a coupon.
func (r *CouponRepo) Create(ctx context.Context, coupon *models.Coupon) error {
	return r.db.WithContext(ctx).Create(coupon).Error
}

// Save writes back an edited coupon.
func (r *CouponRepo) Save(ctx context.Context, coupon *models.Coupon) error {
	return r.db.WithContext(ctx).Save(coupon).Error
}

// Delete soft-deletes a coupon.
func (r *CouponRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Coupon{}, id).Error
}

// GetByID returns the coupon or (nil, nil) when absent.
func (r *CouponRepo) GetByID(ctx context.Context, id uint) (*models.Coupon, error) {
	var coupon models.Coupon
	err := r.db.WithContext(ctx).First(&coupon, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &coupon, nil
}

// GetByCode resolves a coupon by its uppercase code, (nil, nil) when
// absent.
func (r *CouponRepo) GetByCode(ctx context.Context, code string) (*models.Coupon, error) {
	var coupon models.Coupon
	err := r.db.WithContext(ctx).Where("code = ?", code).First(&coupon).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &coupon, nil
}

// ExistsForOwner reports whether the administrator already issued a coupon
// with the given name or code.
func (r *CouponRepo) ExistsForOwner(ctx context.Context, ownerID uint, name, code string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Coupon{}).
		Where("owner_id = ? AND (name = ? OR code = ?)", ownerID, name, code).
		Count(&count).Error
	return count > 0, err
}

// ListActive returns all active coupons.
func (r *CouponRepo) ListActive(ctx context.Context) ([]models.Coupon, error) {
	var coupons []models.Coupon
	err := r.db.WithContext(ctx).Where("is_active = ?", true).Find(&coupons).Error
	return coupons, err
}

// List returns a page of all coupons, newest first, with the total count.
func (r *CouponRepo) List(ctx context.Context, page, limit int) ([]models.Coupon, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Coupon{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var coupons []models.Coupon
	err := r.db.WithContext(ctx).
		Order("created_at desc").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&coupons).Error
	return coupons, total, err
}
