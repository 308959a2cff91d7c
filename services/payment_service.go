package services

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"

	"github.com/devcom-labs/devcom-store/models"
	"github.com/devcom-labs/devcom-store/utils"
)

// PaymentService authenticates processor callbacks and finalizes order
// payment state. Verification and finalization are deliberately separate
// operations so repeated callbacks stay safe.
type PaymentService struct {
	secret []byte
	orders OrderStore
	carts  CartStore
}

// NewPaymentService creates a PaymentService using the processor's shared
// secret.
func NewPaymentService(secret string, orders OrderStore, carts CartStore) *PaymentService {
	return &PaymentService{secret: []byte(secret), orders: orders, carts: carts}
}

// Verify recomputes the keyed MAC over "sessionID|paymentID" and compares
// it to the callback signature in constant time. A mismatch fails closed
// and changes no state.
func (s *PaymentService) Verify(sessionID, paymentID, signature string) error {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(sessionID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(signature)) {
		utils.LogError("Payment signature mismatch for session %s", sessionID)
		return utils.BadRequestError("Payment verification failed", map[string]interface{}{"retry": true})
	}
	return nil
}

// Finalize marks the order behind a verified payment session as paid.
// It is idempotent: a repeat callback for an already-paid order is a
// no-op. The first successful finalization empties the cart, detaches its
// coupon and returns the updated order.
func (s *PaymentService) Finalize(ctx context.Context, sessionID, paymentID string) (*models.Order, error) {
	order, err := s.orders.GetBySessionID(ctx, sessionID)
	if err != nil {
		return nil, utils.InternalError("Failed to fetch order", err)
	}
	if order == nil {
		return nil, utils.NotFoundError("Order not found for payment session")
	}
	if order.IsPaymentDone {
		utils.LogInfo("Repeat payment callback for order %d (session %s), ignoring", order.ID, sessionID)
		return order, nil
	}

	if err := s.orders.MarkPaid(ctx, order.ID, paymentID); err != nil {
		return nil, utils.InternalError("Failed to update order payment state", err)
	}
	order.IsPaymentDone = true
	order.PaymentID = paymentID
	utils.LogInfo("Payment done for order %d (session %s, payment %s)", order.ID, sessionID, paymentID)

	// The purchased cart is spent; clearing it is best effort and never
	// fails the verified payment.
	cart, err := s.carts.GetByUser(ctx, order.UserID)
	if err != nil {
		utils.LogError("Failed to fetch cart after payment for user %d: %v", order.UserID, err)
		return order, nil
	}
	if cart != nil {
		if err := s.carts.ClearItems(ctx, cart.ID); err != nil {
			utils.LogError("Failed to clear cart %d after payment: %v", cart.ID, err)
		}
		if err := s.carts.DetachCoupon(ctx, cart.ID); err != nil {
			utils.LogError("Failed to detach coupon from cart %d after payment: %v", cart.ID, err)
		}
	}

	return order, nil
}
