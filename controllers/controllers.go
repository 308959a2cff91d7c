package controllers

import (
	"fmt"

	"github.com/devcom-labs/devcom-store/config"
	"github.com/devcom-labs/devcom-store/gateway"
	"github.com/devcom-labs/devcom-store/models"
	"github.com/devcom-labs/devcom-store/repository"
	"github.com/devcom-labs/devcom-store/services"
	"github.com/gin-gonic/gin"
)

var (
	pricingService  *services.PricingService
	cartService     *services.CartService
	couponService   *services.CouponService
	checkoutService *services.CheckoutService
	paymentService  *services.PaymentService
	orderService    *services.OrderService
	paymentGateway  *gateway.RazorpayGateway
)

// InitControllers wires the repositories, gateway and services the handlers
// depend on. Must run after config.InitDB.
func InitControllers(cfg *config.Config) {
	catalogRepo := repository.NewCatalogRepo(config.DB)
	addressRepo := repository.NewAddressRepo(config.DB)
	cartRepo := repository.NewCartRepo(config.DB)
	couponRepo := repository.NewCouponRepo(config.DB)
	orderRepo := repository.NewOrderRepo(config.DB)
	stockRepo := repository.NewStockRepo(config.DB)

	paymentGateway = gateway.NewRazorpayGateway(cfg.RazorpayKey, cfg.RazorpaySecret)

	pricingService = services.NewPricingService(cartRepo, catalogRepo, couponRepo)
	cartService = services.NewCartService(cartRepo, catalogRepo, pricingService)
	couponService = services.NewCouponService(couponRepo, cartRepo, pricingService)
	checkoutService = services.NewCheckoutService(addressRepo, cartRepo, pricingService, stockRepo, paymentGateway, orderRepo)
	paymentService = services.NewPaymentService(cfg.RazorpaySecret, orderRepo, cartRepo)
	orderService = services.NewOrderService(orderRepo, stockRepo)
}

// currentUser pulls the authenticated user the auth middleware stored on
// the request context.
func currentUser(c *gin.Context) (models.User, bool) {
	userVal, exists := c.Get("user")
	if !exists {
		return models.User{}, false
	}
	user, ok := userVal.(models.User)
	return user, ok
}

// cartResponse formats a priced cart the way every cart-mutating endpoint
// reports it back.
func cartResponse(priced *services.PricedCart) gin.H {
	items := make([]gin.H, 0, len(priced.Items))
	for _, item := range priced.Items {
		items = append(items, gin.H{
			"product_id": item.Product.ID,
			"name":       item.Product.Name,
			"image_url":  item.Product.ImageURL,
			"quantity":   item.Quantity,
			"unit_price": fmt.Sprintf("%.2f", item.Product.Price),
			"line_total": fmt.Sprintf("%.2f", item.LineTotal),
			"stock_status": func() string {
				if item.Product.Stock < item.Quantity {
					return "Out of Stock"
				}
				if item.Product.Stock <= 3 {
					return "Only a few left"
				}
				return "In Stock"
			}(),
		})
	}

	couponCode := ""
	couponDiscount := 0.0
	if priced.Coupon != nil {
		couponCode = priced.Coupon.Code
		couponDiscount = priced.CartTotal - priced.DiscountedTotal
	}

	return gin.H{
		"items":            items,
		"cart_total":       fmt.Sprintf("%.2f", priced.CartTotal),
		"coupon_code":      couponCode,
		"coupon_discount":  fmt.Sprintf("%.2f", couponDiscount),
		"discounted_total": fmt.Sprintf("%.2f", priced.DiscountedTotal),
	}
}

// couponResponse formats a coupon for admin and user listings.
func couponResponse(coupon *models.Coupon) gin.H {
	return gin.H{
		"id":                 coupon.ID,
		"name":               coupon.Name,
		"code":               coupon.Code,
		"type":               coupon.Type,
		"discount_value":     fmt.Sprintf("%.2f", coupon.DiscountValue),
		"minimum_cart_value": fmt.Sprintf("%.2f", coupon.MinimumCartValue),
		"is_active":          coupon.IsActive,
		"start_date":         coupon.StartDate.Format("2006-01-02"),
		"expiry_date":        coupon.ExpiryDate.Format("2006-01-02"),
	}
}

// orderResponse formats an order summary for listings and detail views.
func orderResponse(order *models.Order) gin.H {
	items := make([]gin.H, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, gin.H{
			"product_id": item.ProductID,
			"name":       item.Product.Name,
			"quantity":   item.Quantity,
		})
	}
	return gin.H{
		"id":                     order.ID,
		"items":                  items,
		"order_price":            fmt.Sprintf("%.2f", order.OrderPrice),
		"discounted_order_price": fmt.Sprintf("%.2f", order.DiscountedOrderPrice),
		"status":                 order.Status,
		"is_payment_done":        order.IsPaymentDone,
		"created_at":             order.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}
