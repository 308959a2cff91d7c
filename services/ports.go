package services

import (
	"context"

	"github.com/devcom-labs/devcom-store/models"
)

// Store and collaborator contracts. Absent entities are reported as
// (nil, nil) so callers decide which status a missing reference maps to;
// only infrastructure failures travel through the error value.

// CatalogReader is the read-only product lookup the cart and checkout
// join against. The catalog itself is maintained elsewhere.
type CatalogReader interface {
	GetProduct(ctx context.Context, id uint) (*models.Product, error)
}

// AddressReader resolves an address for a specific owner.
type AddressReader interface {
	GetAddress(ctx context.Context, id, ownerID uint) (*models.Address, error)
}

// CartStore persists the per-user cart. Item mutations must be atomic at
// the storage layer: UpsertItem increments in place on conflict and
// RemoveItem decrements under a row lock, so concurrent calls against the
// same cart cannot lose updates.
type CartStore interface {
	GetByUser(ctx context.Context, userID uint) (*models.Cart, error)
	GetOrCreate(ctx context.Context, userID uint) (*models.Cart, error)
	UpsertItem(ctx context.Context, cartID, productID uint, qty int) error
	RemoveItem(ctx context.Context, cartID, productID uint, qty int) error
	ClearItems(ctx context.Context, cartID uint) error
	AttachCoupon(ctx context.Context, cartID, couponID uint) error
	DetachCoupon(ctx context.Context, cartID uint) error
}

// CouponStore persists the global coupon catalog.
type CouponStore interface {
	Create(ctx context.Context, coupon *models.Coupon) error
	Save(ctx context.Context, coupon *models.Coupon) error
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*models.Coupon, error)
	GetByCode(ctx context.Context, code string) (*models.Coupon, error)
	ExistsForOwner(ctx context.Context, ownerID uint, name, code string) (bool, error)
	ListActive(ctx context.Context) ([]models.Coupon, error)
	List(ctx context.Context, page, limit int) ([]models.Coupon, int64, error)
}

// OrderStore persists order snapshots. Price fields and items are written
// once at creation; MarkPaid and UpdateStatus are the only mutations.
type OrderStore interface {
	Create(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, id uint) (*models.Order, error)
	GetBySessionID(ctx context.Context, sessionID string) (*models.Order, error)
	ListByUser(ctx context.Context, userID uint, page, limit int) ([]models.Order, int64, error)
	List(ctx context.Context, status string, page, limit int) ([]models.Order, int64, error)
	MarkPaid(ctx context.Context, orderID uint, paymentID string) error
	UpdateStatus(ctx context.Context, orderID uint, status string) error
}

// StockReserver holds catalog stock for an order. Reserve is all or
// nothing: it locks each product row, validates availability and
// decrements; Release is the compensating credit used when the payment
// session fails or an unpaid order is cancelled.
type StockReserver interface {
	Reserve(ctx context.Context, items []models.OrderItem) error
	Release(ctx context.Context, items []models.OrderItem) error
}

// PaymentSession is the opaque processor handle representing a pending
// charge.
type PaymentSession struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

// PaymentGateway creates payment sessions with the external processor.
// Implementations must honour the context deadline; a timed-out call is an
// unknown outcome and is surfaced as an error, never assumed successful.
type PaymentGateway interface {
	CreateSession(ctx context.Context, amountMinorUnits int64, currency, receipt string) (*PaymentSession, error)
}
