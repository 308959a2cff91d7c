package repository

import (
	"context"
	"errors"

	"github.com/devcom-labs/devcom-store/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CartRepo persists per-user carts. Line-item writes go through atomic
// statements keyed on (cart_id, product_id) so two concurrent mutations of
// the same cart cannot lose an update.
type CartRepo struct {
	db *gorm.DB
}

// NewCartRepo creates a CartRepo.
func NewCartRepo(db *gorm.DB) *CartRepo {
	return &CartRepo{db: db}
}

// GetByUser returns the user's cart with its items, (nil, nil) when the
// user has never added anything.
func (r *CartRepo) GetByUser(ctx context.Context, userID uint) (*models.Cart, error) {
	var cart models.Cart
	err := r.db.WithContext(ctx).Preload("Items").Where("user_id = ?", userID).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// GetOrCreate lazily creates the cart row on first use. The unique index
// on user_id keeps concurrent first adds down to a single cart.
func (r *CartRepo) GetOrCreate(ctx context.Context, userID uint) (*models.Cart, error) {
	cart := models.Cart{UserID: userID}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "user_id"}}, DoNothing: true}).
		Create(&cart).Error
	if err != nil {
		return nil, err
	}
	return r.GetByUser(ctx, userID)
}

// UpsertItem inserts the line item or atomically increments its quantity
// when the product is already in the cart.
func (r *CartRepo) UpsertItem(ctx context.Context, cartID, productID uint, qty int) error {
	item := models.CartItem{CartID: cartID, ProductID: productID, Quantity: qty}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "cart_id"}, {Name: "product_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"quantity": gorm.Expr("cart_items.quantity + ?", qty),
		}),
	}).Create(&item).Error
}

// RemoveItem decrements the line item under a row lock, deleting it when
// the requested quantity reaches or exceeds the current one.
func (r *CartRepo) RemoveItem(ctx context.Context, cartID, productID uint, qty int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var item models.CartItem
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("cart_id = ? AND product_id = ?", cartID, productID).
			First(&item).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		if qty >= item.Quantity {
			return tx.Delete(&item).Error
		}
		return tx.Model(&item).Update("quantity", gorm.Expr("quantity - ?", qty)).Error
	})
}

// ClearItems deletes every line item; the cart row survives.
func (r *CartRepo) ClearItems(ctx context.Context, cartID uint) error {
	return r.db.WithContext(ctx).Where("cart_id = ?", cartID).Delete(&models.CartItem{}).Error
}

// AttachCoupon sets the cart's coupon reference.
func (r *CartRepo) AttachCoupon(ctx context.Context, cartID, couponID uint) error {
	return r.db.WithContext(ctx).Model(&models.Cart{}).
		Where("id = ?", cartID).
		Update("coupon_id", couponID).Error
}

// DetachCoupon clears the cart's coupon reference.
func (r *CartRepo) DetachCoupon(ctx context.Context, cartID uint) error {
	return r.db.WithContext(ctx).Model(&models.Cart{}).
		Where("id = ?", cartID).
		Update("coupon_id", nil).Error
}
