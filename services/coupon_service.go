package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/devcom-labs/devcom-store/models"
	"github.com/devcom-labs/devcom-store/utils"
)

// CreateCouponInput carries the administrator-supplied coupon fields.
type CreateCouponInput struct {
	Name             string    `json:"name" binding:"required"`
	Code             string    `json:"code" binding:"required"`
	Type             string    `json:"type"`
	DiscountValue    float64   `json:"discount_value" binding:"required,gt=0"`
	MinimumCartValue float64   `json:"minimum_cart_value" binding:"required,gt=0"`
	StartDate        time.Time `json:"start_date"`
	ExpiryDate       time.Time `json:"expiry_date"`
}

// UpdateCouponInput carries the editable coupon fields. Zero values are
// left untouched.
type UpdateCouponInput struct {
	Name          string  `json:"name"`
	Code          string  `json:"code"`
	DiscountValue float64 `json:"discount_value"`
}

// CouponService owns coupon records and their eligibility against priced
// carts.
type CouponService struct {
	coupons CouponStore
	carts   CartStore
	pricing *PricingService
}

// NewCouponService creates a CouponService.
func NewCouponService(coupons CouponStore, carts CartStore, pricing *PricingService) *CouponService {
	return &CouponService{coupons: coupons, carts: carts, pricing: pricing}
}

// Create registers a new coupon for the issuing administrator. A coupon may
// never discount more than its own qualifying threshold, so
// discount_value >= minimum_cart_value is rejected outright.
func (s *CouponService) Create(ctx context.Context, ownerID uint, in CreateCouponInput) (*models.Coupon, error) {
	if in.DiscountValue >= in.MinimumCartValue {
		return nil, utils.ConflictError("Discount value can't be greater than or equal to the minimum cart value", nil)
	}

	code := strings.ToUpper(strings.TrimSpace(in.Code))
	exists, err := s.coupons.ExistsForOwner(ctx, ownerID, in.Name, code)
	if err != nil {
		return nil, utils.InternalError("Failed to check existing coupons", err)
	}
	if exists {
		return nil, utils.ConflictError("Coupon with this name or code already exists", nil)
	}

	now := time.Now()
	coupon := &models.Coupon{
		Name:             in.Name,
		Code:             code,
		Type:             in.Type,
		DiscountValue:    in.DiscountValue,
		MinimumCartValue: in.MinimumCartValue,
		IsActive:         true,
		StartDate:        in.StartDate,
		ExpiryDate:       in.ExpiryDate,
		OwnerID:          ownerID,
	}
	if coupon.Type == "" {
		coupon.Type = models.CouponTypeFlat
	}
	if coupon.StartDate.IsZero() {
		coupon.StartDate = now
	}
	if coupon.ExpiryDate.IsZero() {
		coupon.ExpiryDate = now.Add(models.DefaultCouponValidity)
	}

	if err := s.coupons.Create(ctx, coupon); err != nil {
		return nil, utils.InternalError("Failed to create coupon", err)
	}
	utils.LogInfo("Created coupon %s (id %d) for admin %d", coupon.Code, coupon.ID, ownerID)
	return coupon, nil
}

// ListAvailable returns the active, unexpired coupons the user's current
// cart total qualifies for. An empty result is a success with an empty
// list, never an error.
func (s *CouponService) ListAvailable(ctx context.Context, userID uint) ([]models.Coupon, error) {
	priced, err := s.pricing.Price(ctx, userID)
	if err != nil {
		return nil, err
	}

	active, err := s.coupons.ListActive(ctx)
	if err != nil {
		return nil, utils.InternalError("Failed to fetch coupons", err)
	}

	now := time.Now()
	available := []models.Coupon{}
	for _, coupon := range active {
		if coupon.IsExpired(now) {
			continue
		}
		if coupon.MinimumCartValue <= priced.CartTotal {
			available = append(available, coupon)
		}
	}
	return available, nil
}

// Apply attaches a coupon to the user's cart after checking the cart total
// against the coupon's threshold, and returns the re-priced cart.
func (s *CouponService) Apply(ctx context.Context, userID uint, code string) (*PricedCart, error) {
	coupon, err := s.resolveByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	cart, err := s.carts.GetByUser(ctx, userID)
	if err != nil {
		return nil, utils.InternalError("Failed to fetch cart", err)
	}
	if cart == nil || cart.IsEmpty() {
		return nil, utils.BadRequestError("Cart is empty", nil)
	}

	priced, err := s.pricing.Price(ctx, userID)
	if err != nil {
		return nil, err
	}
	if priced.CartTotal < coupon.MinimumCartValue {
		shortfall := utils.RoundMoney(coupon.MinimumCartValue - priced.CartTotal)
		return nil, utils.UnprocessableError(
			fmt.Sprintf("Add products worth %.2f more to avail this coupon", shortfall),
			map[string]interface{}{
				"shortfall":          shortfall,
				"minimum_cart_value": coupon.MinimumCartValue,
			},
		)
	}

	if err := s.carts.AttachCoupon(ctx, cart.ID, coupon.ID); err != nil {
		return nil, utils.InternalError("Failed to apply coupon", err)
	}
	utils.LogInfo("Applied coupon %s to cart %d for user %d", coupon.Code, cart.ID, userID)

	return s.pricing.Price(ctx, userID)
}

// Remove detaches the cart's coupon reference and returns the re-priced
// cart. The code must still resolve to a coupon; detaching is otherwise
// idempotent.
func (s *CouponService) Remove(ctx context.Context, userID uint, code string) (*PricedCart, error) {
	if _, err := s.resolveByCode(ctx, code); err != nil {
		return nil, err
	}

	cart, err := s.carts.GetByUser(ctx, userID)
	if err != nil {
		return nil, utils.InternalError("Failed to fetch cart", err)
	}
	if cart != nil {
		if err := s.carts.DetachCoupon(ctx, cart.ID); err != nil {
			return nil, utils.InternalError("Failed to remove coupon", err)
		}
		utils.LogInfo("Removed coupon from cart %d for user %d", cart.ID, userID)
	}

	return s.pricing.Price(ctx, userID)
}

// SetActive toggles a coupon's availability. Only the issuing
// administrator may do so.
func (s *CouponService) SetActive(ctx context.Context, couponID uint, isActive bool, requesterID uint) (*models.Coupon, error) {
	coupon, err := s.ownedCoupon(ctx, couponID, requesterID)
	if err != nil {
		return nil, err
	}

	coupon.IsActive = isActive
	if err := s.coupons.Save(ctx, coupon); err != nil {
		return nil, utils.InternalError("Failed to update coupon", err)
	}
	utils.LogInfo("Coupon %d active=%t by admin %d", couponID, isActive, requesterID)
	return coupon, nil
}

// Update edits a coupon's name, code or discount value. Only the issuing
// administrator may do so, and the creation invariants keep holding.
func (s *CouponService) Update(ctx context.Context, couponID, requesterID uint, in UpdateCouponInput) (*models.Coupon, error) {
	coupon, err := s.ownedCoupon(ctx, couponID, requesterID)
	if err != nil {
		return nil, err
	}

	if in.Code != "" {
		code := strings.ToUpper(strings.TrimSpace(in.Code))
		if code != coupon.Code {
			existing, err := s.coupons.GetByCode(ctx, code)
			if err != nil {
				return nil, utils.InternalError("Failed to check existing coupons", err)
			}
			if existing != nil {
				return nil, utils.ConflictError("Coupon with this code already exists", nil)
			}
			coupon.Code = code
		}
	}
	if in.Name != "" {
		coupon.Name = in.Name
	}
	if in.DiscountValue > 0 {
		if in.DiscountValue >= coupon.MinimumCartValue {
			return nil, utils.ConflictError("Discount value can't be greater than or equal to the minimum cart value", nil)
		}
		coupon.DiscountValue = in.DiscountValue
	}

	if err := s.coupons.Save(ctx, coupon); err != nil {
		return nil, utils.InternalError("Failed to update coupon", err)
	}
	return coupon, nil
}

// Delete removes a coupon. Only the issuing administrator may do so;
// carts still holding the reference keep pricing without it.
func (s *CouponService) Delete(ctx context.Context, couponID, requesterID uint) error {
	if _, err := s.ownedCoupon(ctx, couponID, requesterID); err != nil {
		return err
	}
	if err := s.coupons.Delete(ctx, couponID); err != nil {
		return utils.InternalError("Failed to delete coupon", err)
	}
	utils.LogInfo("Deleted coupon %d by admin %d", couponID, requesterID)
	return nil
}

// GetByID fetches a single coupon.
func (s *CouponService) GetByID(ctx context.Context, couponID uint) (*models.Coupon, error) {
	coupon, err := s.coupons.GetByID(ctx, couponID)
	if err != nil {
		return nil, utils.InternalError("Failed to fetch coupon", err)
	}
	if coupon == nil {
		return nil, utils.NotFoundError("Coupon not found")
	}
	return coupon, nil
}

// List returns a page of all coupons for the admin listing.
func (s *CouponService) List(ctx context.Context, page, limit int) ([]models.Coupon, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	coupons, total, err := s.coupons.List(ctx, page, limit)
	if err != nil {
		return nil, 0, utils.InternalError("Failed to fetch coupons", err)
	}
	return coupons, total, nil
}

func (s *CouponService) resolveByCode(ctx context.Context, code string) (*models.Coupon, error) {
	coupon, err := s.coupons.GetByCode(ctx, strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return nil, utils.InternalError("Failed to fetch coupon", err)
	}
	if coupon == nil {
		return nil, utils.NotFoundError("Invalid coupon")
	}
	return coupon, nil
}

func (s *CouponService) ownedCoupon(ctx context.Context, couponID, requesterID uint) (*models.Coupon, error) {
	coupon, err := s.coupons.GetByID(ctx, couponID)
	if err != nil {
		return nil, utils.InternalError("Failed to fetch coupon", err)
	}
	if coupon == nil {
		return nil, utils.NotFoundError("Coupon not found")
	}
	if coupon.OwnerID != requesterID {
		return nil, utils.ForbiddenError("You are not the owner of this coupon")
	}
	return coupon, nil
}
