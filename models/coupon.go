package models

import (
	"time"

	"gorm.io/gorm"
)

// Coupon types. Only flat discounts exist today; the column is kept so
// percentage coupons can be added without a migration.
const (
	CouponTypeFlat = "flat"
)

// DefaultCouponValidity is applied when a coupon is created without an
// explicit expiry date.
const DefaultCouponValidity = 30 * 24 * time.Hour

// Coupon is a globally readable flat-discount rule owned by the issuing
// administrator. Creation enforces DiscountValue < MinimumCartValue, so a
// coupon can never discount more than its own qualifying threshold.
type Coupon struct {
	ID               uint           `gorm:"primaryKey" json:"id"`
	Name             string         `json:"name"`
	Code             string         `gorm:"uniqueIndex;not null" json:"code"`
	Type             string         `json:"type" gorm:"default:'flat'"`
	DiscountValue    float64        `json:"discount_value"`
	MinimumCartValue float64        `json:"minimum_cart_value"`
	IsActive         bool           `json:"is_active" gorm:"default:true"`
	StartDate        time.Time      `json:"start_date"`
	ExpiryDate       time.Time      `json:"expiry_date"`
	OwnerID          uint           `json:"owner_id"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}

// IsExpired reports whether the coupon's expiry date has passed.
func (cp *Coupon) IsExpired(now time.Time) bool {
	return now.After(cp.ExpiryDate)
}
