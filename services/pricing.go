package services

import (
	"context"

	"github.com/devcom-labs/devcom-store/models"
	"github.com/devcom-labs/devcom-store/utils"
)

// PricedItem is one cart line joined against the current catalog price.
type PricedItem struct {
	Product   models.Product `json:"product"`
	Quantity  int            `json:"quantity"`
	LineTotal float64        `json:"line_total"`
}

// PricedCart is the read-time projection of a cart's monetary totals. It is
// recomputed from Cart + Catalog + Coupon on every read and never cached,
// so it cannot go stale.
type PricedCart struct {
	CartID          uint          `json:"cart_id,omitempty"`
	Items           []PricedItem  `json:"items"`
	CartTotal       float64       `json:"cart_total"`
	Coupon          *models.Coupon `json:"coupon,omitempty"`
	DiscountedTotal float64       `json:"discounted_total"`
}

// PricingService derives priced views of carts.
type PricingService struct {
	carts   CartStore
	catalog CatalogReader
	coupons CouponStore
}

// NewPricingService creates a PricingService.
func NewPricingService(carts CartStore, catalog CatalogReader, coupons CouponStore) *PricingService {
	return &PricingService{carts: carts, catalog: catalog, coupons: coupons}
}

// Price computes the priced view of the user's cart. A user without a cart
// gets an empty priced cart, not an error. Prices always come from the
// catalog at read time; line items whose product no longer resolves are
// skipped. An attached coupon that no longer resolves is priced as if
// absent and logged, so the inconsistency is visible without failing the
// read.
func (s *PricingService) Price(ctx context.Context, userID uint) (*PricedCart, error) {
	cart, err := s.carts.GetByUser(ctx, userID)
	if err != nil {
		return nil, utils.InternalError("Failed to fetch cart", err)
	}
	if cart == nil {
		return &PricedCart{Items: []PricedItem{}}, nil
	}

	priced := &PricedCart{CartID: cart.ID, Items: []PricedItem{}}
	for _, item := range cart.Items {
		product, err := s.catalog.GetProduct(ctx, item.ProductID)
		if err != nil {
			return nil, utils.InternalError("Failed to fetch product", err)
		}
		if product == nil {
			utils.LogDebug("Cart %d references missing product %d, skipping line", cart.ID, item.ProductID)
			continue
		}
		lineTotal := utils.RoundMoney(product.Price * float64(item.Quantity))
		priced.Items = append(priced.Items, PricedItem{
			Product:   *product,
			Quantity:  item.Quantity,
			LineTotal: lineTotal,
		})
		priced.CartTotal += lineTotal
	}
	priced.CartTotal = utils.RoundMoney(priced.CartTotal)
	priced.DiscountedTotal = priced.CartTotal

	if cart.CouponID != nil {
		coupon, err := s.coupons.GetByID(ctx, *cart.CouponID)
		if err != nil {
			return nil, utils.InternalError("Failed to fetch coupon", err)
		}
		if coupon == nil {
			utils.LogError("Cart %d for user %d references missing coupon %d, pricing without discount", cart.ID, userID, *cart.CouponID)
		} else {
			priced.Coupon = coupon
			priced.DiscountedTotal = utils.RoundMoney(priced.CartTotal - coupon.DiscountValue)
			if priced.DiscountedTotal < 0 {
				priced.DiscountedTotal = 0
			}
		}
	}

	return priced, nil
}
