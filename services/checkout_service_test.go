package services

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/devcom-labs/devcom-store/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type checkoutFixture struct {
	svc       *CheckoutService
	cartSvc   *CartService
	carts     *fakeCartStore
	catalog   *fakeCatalog
	addresses *fakeAddresses
	stock     *fakeStock
	gateway   *fakeGateway
	orders    *fakeOrderStore
}

func newCheckoutFixture() *checkoutFixture {
	carts := newFakeCartStore()
	catalog := newFakeCatalog()
	coupons := newFakeCouponStore()
	addresses := newFakeAddresses()
	stock := newFakeStock()
	gateway := &fakeGateway{}
	orders := newFakeOrderStore()
	pricing := NewPricingService(carts, catalog, coupons)
	return &checkoutFixture{
		svc:       NewCheckoutService(addresses, carts, pricing, stock, gateway, orders),
		cartSvc:   NewCartService(carts, catalog, pricing),
		carts:     carts,
		catalog:   catalog,
		addresses: addresses,
		stock:     stock,
		gateway:   gateway,
		orders:    orders,
	}
}

func (f *checkoutFixture) seedCart(t *testing.T, userID uint, qty int) {
	t.Helper()
	f.catalog.put(models.Product{Model: gorm.Model{ID: 1}, Name: "Keyboard", Price: 100.0, Stock: 100, IsActive: true})
	f.stock.stock[1] = 100
	_, err := f.cartSvc.AddItem(context.Background(), userID, 1, qty)
	require.NoError(t, err)
}

func TestCheckoutUnknownAddress(t *testing.T) {
	f := newCheckoutFixture()
	f.seedCart(t, 1, 2)

	_, err := f.svc.Checkout(context.Background(), 1, 9)
	assert.Equal(t, http.StatusNotFound, appErrorCode(t, err))
	assert.Zero(t, f.gateway.calls)
}

func TestCheckoutAddressOfAnotherUser(t *testing.T) {
	f := newCheckoutFixture()
	f.seedCart(t, 1, 2)
	f.addresses.addresses[5] = models.Address{ID: 5, UserID: 2}

	_, err := f.svc.Checkout(context.Background(), 1, 5)
	assert.Equal(t, http.StatusNotFound, appErrorCode(t, err))
}

func TestCheckoutEmptyCart(t *testing.T) {
	f := newCheckoutFixture()
	f.addresses.addresses[5] = models.Address{ID: 5, UserID: 1}

	_, err := f.svc.Checkout(context.Background(), 1, 5)
	assert.Equal(t, http.StatusBadRequest, appErrorCode(t, err))
	assert.Zero(t, f.gateway.calls)
	assert.Empty(t, f.orders.orders)
}

func TestCheckoutInsufficientStock(t *testing.T) {
	f := newCheckoutFixture()
	f.seedCart(t, 1, 2)
	f.addresses.addresses[5] = models.Address{ID: 5, UserID: 1}
	f.stock.stock[1] = 1

	_, err := f.svc.Checkout(context.Background(), 1, 5)
	assert.Equal(t, http.StatusBadRequest, appErrorCode(t, err))
	assert.Zero(t, f.gateway.calls)
	assert.Empty(t, f.orders.orders)
	assert.Equal(t, 1, f.stock.level(1))
}

func TestCheckoutGatewayFailureReleasesStock(t *testing.T) {
	f := newCheckoutFixture()
	f.seedCart(t, 1, 2)
	f.addresses.addresses[5] = models.Address{ID: 5, UserID: 1}
	f.gateway.err = errors.New("processor unreachable")

	_, err := f.svc.Checkout(context.Background(), 1, 5)
	require.Error(t, err)
	assert.Empty(t, f.orders.orders)
	assert.Equal(t, 100, f.stock.level(1))
	assert.Equal(t, 1, f.stock.releases)
}

func TestCheckoutPersistFailureReleasesStock(t *testing.T) {
	f := newCheckoutFixture()
	f.seedCart(t, 1, 2)
	f.addresses.addresses[5] = models.Address{ID: 5, UserID: 1}
	f.orders.createErr = errors.New("db down")

	_, err := f.svc.Checkout(context.Background(), 1, 5)
	assert.Equal(t, http.StatusInternalServerError, appErrorCode(t, err))
	assert.Equal(t, 100, f.stock.level(1))
	assert.Equal(t, 1, f.stock.releases)
}

func TestCheckoutSuccess(t *testing.T) {
	f := newCheckoutFixture()
	f.seedCart(t, 1, 2)
	f.addresses.addresses[5] = models.Address{ID: 5, UserID: 1}

	result, err := f.svc.Checkout(context.Background(), 1, 5)
	require.NoError(t, err)
	require.NotNil(t, result.Session)
	assert.Equal(t, 200.0, result.Amount)
	assert.Equal(t, int64(20000), result.Session.Amount)

	order, err := f.orders.GetBySessionID(context.Background(), result.Session.ID)
	require.NoError(t, err)
	require.NotNil(t, order)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.False(t, order.IsPaymentDone)
	assert.Equal(t, 200.0, order.OrderPrice)
	assert.Equal(t, 200.0, order.DiscountedOrderPrice)
	require.Len(t, order.Items, 1)
	assert.Equal(t, 2, order.Items[0].Quantity)

	// Stock stays reserved while payment is pending.
	assert.Equal(t, 98, f.stock.level(1))

	// The cart is untouched until the payment callback clears it.
	cart, err := f.carts.GetByUser(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 2, cart.ItemQuantity(1))
}
