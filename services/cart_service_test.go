package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/devcom-labs/devcom-store/models"
	"github.com/devcom-labs/devcom-store/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

func newCartFixture() (*CartService, *fakeCartStore, *fakeCatalog) {
	carts := newFakeCartStore()
	catalog := newFakeCatalog()
	coupons := newFakeCouponStore()
	pricing := NewPricingService(carts, catalog, coupons)
	return NewCartService(carts, catalog, pricing), carts, catalog
}

func appErrorCode(t *testing.T, err error) int {
	t.Helper()
	appErr := utils.GetAppError(err)
	require.NotNil(t, appErr, "expected an AppError, got %v", err)
	return appErr.Code
}

func TestAddItemUnknownProduct(t *testing.T) {
	svc, _, _ := newCartFixture()

	_, err := svc.AddItem(context.Background(), 1, 99, 1)
	assert.Equal(t, http.StatusNotFound, appErrorCode(t, err))
}

func TestAddItemInsufficientStockLeavesCartUntouched(t *testing.T) {
	svc, _, catalog := newCartFixture()
	catalog.put(models.Product{Model: gorm.Model{ID: 1}, Price: 50.0, Stock: 2, IsActive: true})

	_, err := svc.AddItem(context.Background(), 1, 1, 3)
	assert.Equal(t, http.StatusBadRequest, appErrorCode(t, err))

	priced, err := svc.GetCart(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, priced.Items)
}

func TestAddItemDefaultsQuantityToOne(t *testing.T) {
	svc, _, catalog := newCartFixture()
	catalog.put(models.Product{Model: gorm.Model{ID: 1}, Price: 50.0, Stock: 5, IsActive: true})

	priced, err := svc.AddItem(context.Background(), 1, 1, 0)
	require.NoError(t, err)
	require.Len(t, priced.Items, 1)
	assert.Equal(t, 1, priced.Items[0].Quantity)
}

func TestAddThenRemoveAllDeletesLine(t *testing.T) {
	svc, _, catalog := newCartFixture()
	catalog.put(models.Product{Model: gorm.Model{ID: 1}, Price: 50.0, Stock: 5, IsActive: true})

	_, err := svc.AddItem(context.Background(), 1, 1, 2)
	require.NoError(t, err)

	priced, err := svc.RemoveItem(context.Background(), 1, 1, 2)
	require.NoError(t, err)
	assert.Empty(t, priced.Items)
}

func TestRemovePartialQuantity(t *testing.T) {
	svc, _, catalog := newCartFixture()
	catalog.put(models.Product{Model: gorm.Model{ID: 1}, Price: 50.0, Stock: 5, IsActive: true})

	_, err := svc.AddItem(context.Background(), 1, 1, 2)
	require.NoError(t, err)

	priced, err := svc.RemoveItem(context.Background(), 1, 1, 1)
	require.NoError(t, err)
	require.Len(t, priced.Items, 1)
	assert.Equal(t, 1, priced.Items[0].Quantity)
	assert.Equal(t, 50.0, priced.CartTotal)
}

func TestRemoveItemNotInCart(t *testing.T) {
	svc, _, catalog := newCartFixture()
	catalog.put(models.Product{Model: gorm.Model{ID: 1}, Price: 50.0, Stock: 5, IsActive: true})
	catalog.put(models.Product{Model: gorm.Model{ID: 2}, Price: 20.0, Stock: 5, IsActive: true})

	_, err := svc.AddItem(context.Background(), 1, 1, 1)
	require.NoError(t, err)

	_, err = svc.RemoveItem(context.Background(), 1, 2, 1)
	assert.Equal(t, http.StatusUnprocessableEntity, appErrorCode(t, err))
}

func TestRemoveItemWithoutCart(t *testing.T) {
	svc, _, _ := newCartFixture()

	_, err := svc.RemoveItem(context.Background(), 1, 1, 1)
	assert.Equal(t, http.StatusBadRequest, appErrorCode(t, err))
}

func TestClearIsIdempotentOnExistingCart(t *testing.T) {
	svc, _, catalog := newCartFixture()
	catalog.put(models.Product{Model: gorm.Model{ID: 1}, Price: 50.0, Stock: 5, IsActive: true})

	_, err := svc.AddItem(context.Background(), 1, 1, 2)
	require.NoError(t, err)

	priced, err := svc.Clear(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, priced.Items)

	// A second clear still succeeds because the cart row survives.
	priced, err = svc.Clear(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, priced.Items)
}

func TestClearWithoutCart(t *testing.T) {
	svc, _, _ := newCartFixture()

	_, err := svc.Clear(context.Background(), 1)
	assert.Equal(t, http.StatusBadRequest, appErrorCode(t, err))
}

func TestConcurrentAddsAccumulate(t *testing.T) {
	svc, carts, catalog := newCartFixture()
	catalog.put(models.Product{Model: gorm.Model{ID: 1}, Price: 50.0, Stock: 100, IsActive: true})

	var g errgroup.Group
	for i := 0; i < 10; i++ {
		g.Go(func() error {
			_, err := svc.AddItem(context.Background(), 1, 1, 1)
			return err
		})
	}
	require.NoError(t, g.Wait())

	cart, err := carts.GetByUser(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, cart)
	assert.Equal(t, 10, cart.ItemQuantity(1))
}
