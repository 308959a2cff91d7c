package repository

import (
	"context"
	"errors"

	"github.com/devcom-labs/devcom-store/models"
	"gorm.io/gorm"
)

// OrderRepo persists order snapshots. Price fields and items are written
// once at creation and never touched again; MarkPaid and UpdateStatus are
// column-scoped updates.
type OrderRepo struct {
	db *gorm.DB
}

// NewOrderRepo creates an OrderRepo.
func NewOrderRepo(db *gorm.DB) *OrderRepo {
	return &OrderRepo{db: db}
}

// Create inserts the order together with its item snapshot.
func (r *OrderRepo) Create(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

// GetByID returns the order with its associations, (nil, nil) when absent.
func (r *OrderRepo) GetByID(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("Items.Product").
		Preload("Address").
		Preload("Coupon").
		Preload("User").
		First(&order, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// GetBySessionID resolves the order created for a payment session,
// (nil, nil) when no order matches.
func (r *OrderRepo) GetBySessionID(ctx context.Context, sessionID string) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("payment_session_id = ?", sessionID).
		First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// ListByUser returns a page of the user's orders, newest first.
func (r *OrderRepo) ListByUser(ctx context.Context, userID uint, page, limit int) ([]models.Order, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Order{}).Where("user_id = ?", userID)
	return r.page(query, page, limit)
}

// List returns a page of all orders, optionally filtered by status.
func (r *OrderRepo) List(ctx context.Context, status string, page, limit int) ([]models.Order, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Order{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	return r.page(query, page, limit)
}

// MarkPaid records the processor payment id and flips is_payment_done.
func (r *OrderRepo) MarkPaid(ctx context.Context, orderID uint, paymentID string) error {
	return r.db.WithContext(ctx).Model(&models.Order{}).
		Where("id = ?", orderID).
		Updates(map[string]interface{}{
			"is_payment_done": true,
			"payment_id":      paymentID,
		}).Error
}

// UpdateStatus writes the new status. Transition legality is the
// service's responsibility.
func (r *OrderRepo) UpdateStatus(ctx context.Context, orderID uint, status string) error {
	return r.db.WithContext(ctx).Model(&models.Order{}).
		Where("id = ?", orderID).
		Update("status", status).Error
}

func (r *OrderRepo) page(query *gorm.DB, page, limit int) ([]models.Order, int64, error) {
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var orders []models.Order
	err := query.
		Preload("Items.Product").
		Order("created_at desc").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&orders).Error
	return orders, total, err
}
