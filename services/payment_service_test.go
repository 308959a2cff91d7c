package services

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"testing"

	"github.com/devcom-labs/devcom-store/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signPayment(sessionID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(testSecret))
	mac.Write([]byte(sessionID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func newPaymentFixture() (*PaymentService, *fakeOrderStore, *fakeCartStore) {
	orders := newFakeOrderStore()
	carts := newFakeCartStore()
	return NewPaymentService(testSecret, orders, carts), orders, carts
}

func TestVerifyValidSignature(t *testing.T) {
	svc, _, _ := newPaymentFixture()

	err := svc.Verify("sess_1", "pay_1", signPayment("sess_1", "pay_1"))
	assert.NoError(t, err)
}

func TestVerifyTamperedSignature(t *testing.T) {
	svc, _, _ := newPaymentFixture()

	err := svc.Verify("sess_1", "pay_1", signPayment("sess_1", "pay_other"))
	assert.Equal(t, http.StatusBadRequest, appErrorCode(t, err))

	err = svc.Verify("sess_1", "pay_1", "garbage")
	assert.Equal(t, http.StatusBadRequest, appErrorCode(t, err))
}

func TestFinalizeUnknownSession(t *testing.T) {
	svc, _, _ := newPaymentFixture()

	_, err := svc.Finalize(context.Background(), "sess_missing", "pay_1")
	assert.Equal(t, http.StatusNotFound, appErrorCode(t, err))
}

func TestFinalizeMarksPaidAndClearsCart(t *testing.T) {
	svc, orders, carts := newPaymentFixture()
	require.NoError(t, orders.Create(context.Background(), &models.Order{
		UserID:           1,
		PaymentSessionID: "sess_1",
		Status:           models.OrderStatusPending,
	}))
	cart, err := carts.GetOrCreate(context.Background(), 1)
	require.NoError(t, err)
	require.NoError(t, carts.UpsertItem(context.Background(), cart.ID, 1, 2))
	require.NoError(t, carts.AttachCoupon(context.Background(), cart.ID, 3))

	order, err := svc.Finalize(context.Background(), "sess_1", "pay_1")
	require.NoError(t, err)
	assert.True(t, order.IsPaymentDone)
	assert.Equal(t, "pay_1", order.PaymentID)

	stored, err := orders.GetBySessionID(context.Background(), "sess_1")
	require.NoError(t, err)
	assert.True(t, stored.IsPaymentDone)

	cart, err = carts.GetByUser(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())
	assert.Nil(t, cart.CouponID)
}

func TestFinalizeIsIdempotent(t *testing.T) {
	svc, orders, _ := newPaymentFixture()
	require.NoError(t, orders.Create(context.Background(), &models.Order{
		UserID:           1,
		PaymentSessionID: "sess_1",
		Status:           models.OrderStatusPending,
	}))

	first, err := svc.Finalize(context.Background(), "sess_1", "pay_1")
	require.NoError(t, err)

	second, err := svc.Finalize(context.Background(), "sess_1", "pay_1")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.True(t, second.IsPaymentDone)
	assert.Equal(t, "pay_1", second.PaymentID)
}
