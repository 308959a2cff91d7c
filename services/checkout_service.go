package services

import (
	"context"
	"time"

	"github.com/devcom-labs/devcom-store/models"
	"github.com/devcom-labs/devcom-store/utils"
	"github.com/google/uuid"
)

// DefaultGatewayTimeout bounds the external payment call. A timeout is an
// unknown outcome: the session may or may not exist on the processor side,
// so checkout fails and the stock reservation is released.
const DefaultGatewayTimeout = 15 * time.Second

// CheckoutResult is returned to the client so it can drive the processor's
// payment widget.
type CheckoutResult struct {
	OrderID  uint            `json:"order_id"`
	Session  *PaymentSession `json:"payment_session"`
	Amount   float64         `json:"amount"`
	Currency string          `json:"currency"`
}

// CheckoutService converts a priced cart into a payment session and a
// pending order snapshot. The two side effects run as a compensating saga:
// stock is reserved first, the gateway call comes second, the order write
// last; any later failure releases the reservation.
type CheckoutService struct {
	addresses AddressReader
	carts     CartStore
	pricing   *PricingService
	stock     StockReserver
	gateway   PaymentGateway
	orders    OrderStore
	timeout   time.Duration
}

// NewCheckoutService creates a CheckoutService.
func NewCheckoutService(addresses AddressReader, carts CartStore, pricing *PricingService, stock StockReserver, gateway PaymentGateway, orders OrderStore) *CheckoutService {
	return &CheckoutService{
		addresses: addresses,
		carts:     carts,
		pricing:   pricing,
		stock:     stock,
		gateway:   gateway,
		orders:    orders,
		timeout:   DefaultGatewayTimeout,
	}
}

// Checkout validates the address and cart, reserves stock, creates the
// external payment session for the discounted total and persists the
// pending order snapshot. On gateway failure the processor's reason is
// propagated verbatim and no order is recorded.
func (s *CheckoutService) Checkout(ctx context.Context, userID, addressID uint) (*CheckoutResult, error) {
	address, err := s.addresses.GetAddress(ctx, addressID, userID)
	if err != nil {
		return nil, utils.InternalError("Failed to fetch address", err)
	}
	if address == nil {
		return nil, utils.NotFoundError("Address not found")
	}

	cart, err := s.carts.GetByUser(ctx, userID)
	if err != nil {
		return nil, utils.InternalError("Failed to fetch cart", err)
	}
	if cart == nil || cart.IsEmpty() {
		return nil, utils.BadRequestError("Cart is empty", nil)
	}

	// Snapshot the raw item list from the cart store; the priced view is
	// only used for the totals.
	items := make([]models.OrderItem, 0, len(cart.Items))
	for _, item := range cart.Items {
		items = append(items, models.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	priced, err := s.pricing.Price(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.stock.Reserve(ctx, items); err != nil {
		return nil, err
	}

	receipt := uuid.NewString()
	gctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	session, err := s.gateway.CreateSession(gctx, utils.ToMinorUnits(priced.DiscountedTotal), utils.Currency, receipt)
	if err != nil {
		s.releaseStock(ctx, items)
		utils.LogError("Payment session creation failed for user %d: %v", userID, err)
		return nil, err
	}

	order := &models.Order{
		UserID:               userID,
		AddressID:            address.ID,
		Items:                items,
		OrderPrice:           priced.CartTotal,
		DiscountedOrderPrice: priced.DiscountedTotal,
		CouponID:             cart.CouponID,
		PaymentSessionID:     session.ID,
		Status:               models.OrderStatusPending,
		IsPaymentDone:        false,
	}
	if err := s.orders.Create(ctx, order); err != nil {
		// The processor already holds a session with no local record. There
		// is no automatic reconciliation; this log line is the alert trail.
		utils.LogError("ORPHANED payment session %s for user %d: order persistence failed: %v", session.ID, userID, err)
		s.releaseStock(ctx, items)
		return nil, utils.InternalError("Failed to record order", err)
	}
	utils.LogInfo("Created pending order %d (session %s) for user %d, amount %.2f", order.ID, session.ID, userID, priced.DiscountedTotal)

	return &CheckoutResult{
		OrderID:  order.ID,
		Session:  session,
		Amount:   priced.DiscountedTotal,
		Currency: utils.Currency,
	}, nil
}

func (s *CheckoutService) releaseStock(ctx context.Context, items []models.OrderItem) {
	if err := s.stock.Release(ctx, items); err != nil {
		utils.LogError("Failed to release reserved stock: %v", err)
	}
}
