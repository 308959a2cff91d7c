package models

import (
	"time"
)

// Cart holds one mutable cart per user. It is created lazily on the first
// add and emptied rather than deleted, so clearing twice is a no-op the
// second time instead of an error.
type Cart struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"uniqueIndex;not null"`
	CouponID  *uint     `json:"coupon_id,omitempty"`
	Items     []CartItem `json:"items" gorm:"foreignKey:CartID"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CartItem is a single product line. Product identity is unique within a
// cart; concurrent adds for the same product resolve through an atomic
// quantity increment keyed on (cart_id, product_id).
type CartItem struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CartID    uint      `json:"cart_id" gorm:"uniqueIndex:idx_cart_items_cart_product;not null"`
	ProductID uint      `json:"product_id" gorm:"uniqueIndex:idx_cart_items_cart_product;not null"`
	Quantity  int       `json:"quantity" gorm:"check:quantity >= 1"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ItemQuantity returns the quantity of the given product in the cart, zero
// when the product is not a line item.
func (c *Cart) ItemQuantity(productID uint) int {
	for _, item := range c.Items {
		if item.ProductID == productID {
			return item.Quantity
		}
	}
	return 0
}

// IsEmpty reports whether the cart has no line items.
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}
