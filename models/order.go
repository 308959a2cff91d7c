package models

import (
	"time"
)

// Order status constants. PENDING is the only non-terminal state; both
// DELIVERED and CANCELLED are terminal and nothing transitions back.
const (
	OrderStatusPending   = "PENDING"
	OrderStatusDelivered = "DELIVERED"
	OrderStatusCancelled = "CANCELLED"
)

// ValidOrderStatus reports whether s names a known order status.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// CanTransitionOrderStatus reports whether an order may move from one
// status to another.
func CanTransitionOrderStatus(from, to string) bool {
	if from != OrderStatusPending {
		return false
	}
	return to == OrderStatusDelivered || to == OrderStatusCancelled
}

// Order is the snapshot persisted at checkout. Price fields and the item
// list are immutable once created; only Status, PaymentID and IsPaymentDone
// change afterwards.
type Order struct {
	ID                   uint        `gorm:"primaryKey" json:"id"`
	UserID               uint        `json:"user_id"`
	User                 User        `json:"user,omitempty" gorm:"foreignKey:UserID"`
	AddressID            uint        `json:"address_id"`
	Address              Address     `json:"address,omitempty" gorm:"foreignKey:AddressID"`
	Items                []OrderItem `json:"items" gorm:"foreignKey:OrderID"`
	OrderPrice           float64     `json:"order_price"`
	DiscountedOrderPrice float64     `json:"discounted_order_price"`
	CouponID             *uint       `json:"coupon_id,omitempty"`
	Coupon               *Coupon     `json:"coupon,omitempty" gorm:"foreignKey:CouponID"`
	PaymentSessionID     string      `gorm:"index" json:"payment_session_id"`
	PaymentID            string      `json:"payment_id,omitempty"`
	Status               string      `json:"status" gorm:"default:'PENDING'"`
	IsPaymentDone        bool        `json:"is_payment_done" gorm:"default:false"`
	CreatedAt            time.Time   `json:"created_at"`
	UpdatedAt            time.Time   `json:"updated_at"`
}

// OrderItem is copied by value from the cart at checkout time. Only product
// identity and quantity are embedded; pricing lives at the order level.
type OrderItem struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	OrderID   uint    `json:"order_id"`
	ProductID uint    `json:"product_id"`
	Product   Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	Quantity  int     `json:"quantity"`
}
