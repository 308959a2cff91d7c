package services

import (
	"context"
	"fmt"

	"github.com/devcom-labs/devcom-store/models"
	"github.com/devcom-labs/devcom-store/utils"
)

// OrderService reads order snapshots and drives the admin status machine.
type OrderService struct {
	orders OrderStore
	stock  StockReserver
}

// NewOrderService creates an OrderService.
func NewOrderService(orders OrderStore, stock StockReserver) *OrderService {
	return &OrderService{orders: orders, stock: stock}
}

// Get fetches a single order. Non-admin requesters may only read their own
// orders.
func (s *OrderService) Get(ctx context.Context, orderID, requesterID uint, isAdmin bool) (*models.Order, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, utils.InternalError("Failed to fetch order", err)
	}
	if order == nil {
		return nil, utils.NotFoundError("Order not found")
	}
	if !isAdmin && order.UserID != requesterID {
		return nil, utils.ForbiddenError("You are not the owner of this order")
	}
	return order, nil
}

// ListByUser returns a page of the user's own orders.
func (s *OrderService) ListByUser(ctx context.Context, userID uint, page, limit int) ([]models.Order, int64, error) {
	page, limit = normalizePage(page, limit)
	orders, total, err := s.orders.ListByUser(ctx, userID, page, limit)
	if err != nil {
		return nil, 0, utils.InternalError("Failed to fetch orders", err)
	}
	return orders, total, nil
}

// List returns a page of all orders, optionally filtered by status, for
// the admin listing.
func (s *OrderService) List(ctx context.Context, status string, page, limit int) ([]models.Order, int64, error) {
	if status != "" && !models.ValidOrderStatus(status) {
		return nil, 0, utils.BadRequestError("Invalid order status", nil)
	}
	page, limit = normalizePage(page, limit)
	orders, total, err := s.orders.List(ctx, status, page, limit)
	if err != nil {
		return nil, 0, utils.InternalError("Failed to fetch orders", err)
	}
	return orders, total, nil
}

// UpdateStatus applies an admin transition. PENDING may move to DELIVERED
// or CANCELLED; both are terminal. Cancelling an unpaid order releases its
// reserved stock.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID uint, status string) (*models.Order, error) {
	if !models.ValidOrderStatus(status) {
		return nil, utils.BadRequestError("Invalid order status", nil)
	}

	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, utils.InternalError("Failed to fetch order", err)
	}
	if order == nil {
		return nil, utils.NotFoundError("Order not found")
	}
	if !models.CanTransitionOrderStatus(order.Status, status) {
		return nil, utils.ConflictError(
			fmt.Sprintf("Order cannot move from %s to %s", order.Status, status), nil)
	}

	if err := s.orders.UpdateStatus(ctx, orderID, status); err != nil {
		return nil, utils.InternalError("Failed to update order status", err)
	}
	utils.LogInfo("Order %d moved from %s to %s", orderID, order.Status, status)

	if status == models.OrderStatusCancelled && !order.IsPaymentDone {
		if err := s.stock.Release(ctx, order.Items); err != nil {
			utils.LogError("Failed to release stock for cancelled order %d: %v", orderID, err)
		}
	}

	order.Status = status
	return order, nil
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	return page, limit
}
