package services

import (
	"context"
	"fmt"

	"github.com/devcom-labs/devcom-store/utils"
)

// CartService mutates per-user carts. Every mutation returns the freshly
// re-priced cart so clients never see a stale total.
type CartService struct {
	carts   CartStore
	catalog CatalogReader
	pricing *PricingService
}

// NewCartService creates a CartService.
func NewCartService(carts CartStore, catalog CatalogReader, pricing *PricingService) *CartService {
	return &CartService{carts: carts, catalog: catalog, pricing: pricing}
}

// AddItem adds qty units of a product to the user's cart, creating the cart
// on first use. Stock is checked against the catalog but not reserved here;
// the reservation happens at checkout.
func (s *CartService) AddItem(ctx context.Context, userID, productID uint, qty int) (*PricedCart, error) {
	if qty < 1 {
		qty = 1
	}

	product, err := s.catalog.GetProduct(ctx, productID)
	if err != nil {
		return nil, utils.InternalError("Failed to fetch product", err)
	}
	if product == nil {
		return nil, utils.NotFoundError("Product not found")
	}
	if qty > product.Stock {
		msg := "Product is out of stock"
		if product.Stock > 0 {
			msg = fmt.Sprintf("Only %d remaining but you are adding %d", product.Stock, qty)
		}
		return nil, utils.BadRequestError(msg, map[string]interface{}{
			"available_stock": product.Stock,
		})
	}

	cart, err := s.carts.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, utils.InternalError("Failed to load cart", err)
	}
	if err := s.carts.UpsertItem(ctx, cart.ID, productID, qty); err != nil {
		return nil, utils.InternalError("Failed to add item to cart", err)
	}
	utils.LogInfo("Added product %d x%d to cart %d for user %d", productID, qty, cart.ID, userID)

	return s.pricing.Price(ctx, userID)
}

// RemoveItem removes qty units of a product from the cart. Removing at
// least the current quantity deletes the line item entirely; quantities
// never go negative.
func (s *CartService) RemoveItem(ctx context.Context, userID, productID uint, qty int) (*PricedCart, error) {
	if qty < 1 {
		qty = 1
	}

	cart, err := s.carts.GetByUser(ctx, userID)
	if err != nil {
		return nil, utils.InternalError("Failed to fetch cart", err)
	}
	if cart == nil {
		return nil, utils.BadRequestError("Cart is empty", nil)
	}
	if cart.ItemQuantity(productID) == 0 {
		return nil, utils.UnprocessableError("Product is not in the cart", nil)
	}

	if err := s.carts.RemoveItem(ctx, cart.ID, productID, qty); err != nil {
		return nil, utils.InternalError("Failed to remove item from cart", err)
	}
	utils.LogInfo("Removed product %d x%d from cart %d for user %d", productID, qty, cart.ID, userID)

	return s.pricing.Price(ctx, userID)
}

// Clear empties an existing cart. The cart row itself survives, so
// clearing an already-empty cart succeeds.
func (s *CartService) Clear(ctx context.Context, userID uint) (*PricedCart, error) {
	cart, err := s.carts.GetByUser(ctx, userID)
	if err != nil {
		return nil, utils.InternalError("Failed to fetch cart", err)
	}
	if cart == nil {
		return nil, utils.BadRequestError("Cart is empty", nil)
	}

	if err := s.carts.ClearItems(ctx, cart.ID); err != nil {
		return nil, utils.InternalError("Failed to clear cart", err)
	}
	utils.LogInfo("Cleared cart %d for user %d", cart.ID, userID)

	return s.pricing.Price(ctx, userID)
}

// GetCart returns the priced view of the user's cart.
func (s *CartService) GetCart(ctx context.Context, userID uint) (*PricedCart, error) {
	return s.pricing.Price(ctx, userID)
}
