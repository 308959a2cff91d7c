package services

import (
	"context"
	"testing"

	"github.com/devcom-labs/devcom-store/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newPricingFixture() (*PricingService, *fakeCartStore, *fakeCatalog, *fakeCouponStore) {
	carts := newFakeCartStore()
	catalog := newFakeCatalog()
	coupons := newFakeCouponStore()
	return NewPricingService(carts, catalog, coupons), carts, catalog, coupons
}

func TestPriceEmptyForUnknownUser(t *testing.T) {
	pricing, _, _, _ := newPricingFixture()

	priced, err := pricing.Price(context.Background(), 42)
	require.NoError(t, err)
	assert.Empty(t, priced.Items)
	assert.Zero(t, priced.CartTotal)
	assert.Zero(t, priced.DiscountedTotal)
}

func TestPriceComputesTotalsFromCatalog(t *testing.T) {
	pricing, carts, catalog, _ := newPricingFixture()
	catalog.put(models.Product{Model: gorm.Model{ID: 1}, Name: "Keyboard", Price: 100.0, Stock: 10, IsActive: true})

	cart, err := carts.GetOrCreate(context.Background(), 7)
	require.NoError(t, err)
	require.NoError(t, carts.UpsertItem(context.Background(), cart.ID, 1, 3))

	priced, err := pricing.Price(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, priced.Items, 1)
	assert.Equal(t, 300.0, priced.Items[0].LineTotal)
	assert.Equal(t, 300.0, priced.CartTotal)
	assert.Equal(t, 300.0, priced.DiscountedTotal)
}

func TestPriceAppliesFlatCouponDiscount(t *testing.T) {
	pricing, carts, catalog, coupons := newPricingFixture()
	catalog.put(models.Product{Model: gorm.Model{ID: 1}, Price: 100.0, Stock: 10, IsActive: true})
	coupon := coupons.put(models.Coupon{Code: "SAVE50", DiscountValue: 50, MinimumCartValue: 200, IsActive: true})

	cart, _ := carts.GetOrCreate(context.Background(), 7)
	require.NoError(t, carts.UpsertItem(context.Background(), cart.ID, 1, 3))
	require.NoError(t, carts.AttachCoupon(context.Background(), cart.ID, coupon.ID))

	priced, err := pricing.Price(context.Background(), 7)
	require.NoError(t, err)
	require.NotNil(t, priced.Coupon)
	assert.Equal(t, "SAVE50", priced.Coupon.Code)
	assert.Equal(t, 300.0, priced.CartTotal)
	assert.Equal(t, 250.0, priced.DiscountedTotal)
}

func TestPriceClampsDiscountedTotalAtZero(t *testing.T) {
	pricing, carts, catalog, coupons := newPricingFixture()
	catalog.put(models.Product{Model: gorm.Model{ID: 1}, Price: 10.0, Stock: 10, IsActive: true})
	coupon := coupons.put(models.Coupon{Code: "HUGE", DiscountValue: 500, MinimumCartValue: 5, IsActive: true})

	cart, _ := carts.GetOrCreate(context.Background(), 7)
	require.NoError(t, carts.UpsertItem(context.Background(), cart.ID, 1, 1))
	require.NoError(t, carts.AttachCoupon(context.Background(), cart.ID, coupon.ID))

	priced, err := pricing.Price(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 10.0, priced.CartTotal)
	assert.Equal(t, 0.0, priced.DiscountedTotal)
}

func TestPriceToleratesStaleCouponReference(t *testing.T) {
	pricing, carts, catalog, _ := newPricingFixture()
	catalog.put(models.Product{Model: gorm.Model{ID: 1}, Price: 100.0, Stock: 10, IsActive: true})

	cart, _ := carts.GetOrCreate(context.Background(), 7)
	require.NoError(t, carts.UpsertItem(context.Background(), cart.ID, 1, 2))
	require.NoError(t, carts.AttachCoupon(context.Background(), cart.ID, 999))

	priced, err := pricing.Price(context.Background(), 7)
	require.NoError(t, err)
	assert.Nil(t, priced.Coupon)
	assert.Equal(t, 200.0, priced.CartTotal)
	assert.Equal(t, 200.0, priced.DiscountedTotal)
}

func TestPriceSkipsLinesForMissingProducts(t *testing.T) {
	pricing, carts, catalog, _ := newPricingFixture()
	catalog.put(models.Product{Model: gorm.Model{ID: 1}, Price: 100.0, Stock: 10, IsActive: true})

	cart, _ := carts.GetOrCreate(context.Background(), 7)
	require.NoError(t, carts.UpsertItem(context.Background(), cart.ID, 1, 1))
	require.NoError(t, carts.UpsertItem(context.Background(), cart.ID, 2, 5))

	priced, err := pricing.Price(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, priced.Items, 1)
	assert.Equal(t, 100.0, priced.CartTotal)
}
