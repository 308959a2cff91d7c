package controllers

import (
	"github.com/devcom-labs/devcom-store/utils"
	"github.com/gin-gonic/gin"
)

// ApplyCouponRequest represents the request body for applying or removing
// a coupon.
type ApplyCouponRequest struct {
	Code string `json:"code" binding:"required"`
}

// ApplyCoupon applies a coupon code to the user's cart.
func ApplyCoupon(c *gin.Context) {
	utils.LogInfo("ApplyCoupon called")
	user, ok := currentUser(c)
	if !ok {
		utils.LogError("User not found in context")
		utils.Unauthorized(c, "User not found")
		return
	}

	var req ApplyCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid request format for user ID: %d: %v", user.ID, err)
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}
	utils.LogInfo("Attempting to apply coupon code: %s for user ID: %d", req.Code, user.ID)

	priced, err := couponService.Apply(c.Request.Context(), user.ID, req.Code)
	if err != nil {
		utils.LogError("Failed to apply coupon code: %s for user ID: %d: %v", req.Code, user.ID, err)
		utils.HandleError(c, err)
		return
	}

	utils.LogInfo("Successfully applied coupon code: %s for user ID: %d", req.Code, user.ID)
	utils.Success(c, "Coupon applied successfully", cartResponse(priced))
}

// RemoveCoupon detaches a coupon from the user's cart. Removing a coupon
// that is not attached succeeds quietly.
func RemoveCoupon(c *gin.Context) {
	utils.LogInfo("RemoveCoupon called")
	user, ok := currentUser(c)
	if !ok {
		utils.LogError("User not found in context")
		utils.Unauthorized(c, "User not found")
		return
	}

	var req ApplyCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid request format for user ID: %d: %v", user.ID, err)
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}
	utils.LogInfo("Attempting to remove coupon code: %s for user ID: %d", req.Code, user.ID)

	priced, err := couponService.Remove(c.Request.Context(), user.ID, req.Code)
	if err != nil {
		utils.LogError("Failed to remove coupon code: %s for user ID: %d: %v", req.Code, user.ID, err)
		utils.HandleError(c, err)
		return
	}

	utils.LogInfo("Successfully removed coupon code: %s for user ID: %d", req.Code, user.ID)
	utils.Success(c, "Coupon removed successfully", cartResponse(priced))
}

// ListAvailableCoupons returns the coupons the user's current cart
// qualifies for. An empty list is a success, not an error.
func ListAvailableCoupons(c *gin.Context) {
	utils.LogInfo("ListAvailableCoupons called")
	user, ok := currentUser(c)
	if !ok {
		utils.LogError("User not found in context")
		utils.Unauthorized(c, "User not found")
		return
	}

	coupons, err := couponService.ListAvailable(c.Request.Context(), user.ID)
	if err != nil {
		utils.LogError("Failed to list available coupons for user ID: %d: %v", user.ID, err)
		utils.HandleError(c, err)
		return
	}

	list := make([]gin.H, 0, len(coupons))
	for i := range coupons {
		list = append(list, couponResponse(&coupons[i]))
	}

	utils.LogInfo("Found %d available coupons for user ID: %d", len(list), user.ID)
	utils.Success(c, "Available coupons retrieved successfully", gin.H{"coupons": list})
}
