package controllers

import (
	"strconv"

	"github.com/devcom-labs/devcom-store/services"
	"github.com/devcom-labs/devcom-store/utils"
	"github.com/gin-gonic/gin"
)

// CreateCoupon registers a new coupon issued by the authenticated admin.
func CreateCoupon(c *gin.Context) {
	utils.LogInfo("CreateCoupon called")
	admin, ok := currentUser(c)
	if !ok {
		utils.LogError("Admin not found in context")
		utils.Unauthorized(c, "Admin not found")
		return
	}

	var req services.CreateCouponInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid coupon payload from admin ID: %d: %v", admin.ID, err)
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}
	utils.LogInfo("Creating coupon code: %s for admin ID: %d", req.Code, admin.ID)

	coupon, err := couponService.Create(c.Request.Context(), admin.ID, req)
	if err != nil {
		utils.LogError("Failed to create coupon code: %s for admin ID: %d: %v", req.Code, admin.ID, err)
		utils.HandleError(c, err)
		return
	}

	utils.LogInfo("Created coupon ID: %d with code: %s", coupon.ID, coupon.Code)
	utils.Created(c, "Coupon created successfully", couponResponse(coupon))
}

// UpdateCoupon edits an existing coupon owned by the authenticated admin.
func UpdateCoupon(c *gin.Context) {
	utils.LogInfo("UpdateCoupon called")
	admin, ok := currentUser(c)
	if !ok {
		utils.LogError("Admin not found in context")
		utils.Unauthorized(c, "Admin not found")
		return
	}

	couponID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.LogError("Invalid coupon ID format: %v", err)
		utils.BadRequest(c, "Invalid coupon ID", nil)
		return
	}

	var req services.UpdateCouponInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid coupon payload from admin ID: %d: %v", admin.ID, err)
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	coupon, err := couponService.Update(c.Request.Context(), uint(couponID), admin.ID, req)
	if err != nil {
		utils.LogError("Failed to update coupon ID: %d for admin ID: %d: %v", couponID, admin.ID, err)
		utils.HandleError(c, err)
		return
	}

	utils.LogInfo("Updated coupon ID: %d", coupon.ID)
	utils.Success(c, "Coupon updated successfully", couponResponse(coupon))
}

// SetCouponActive toggles a coupon's active flag.
func SetCouponActive(c *gin.Context) {
	utils.LogInfo("SetCouponActive called")
	admin, ok := currentUser(c)
	if !ok {
		utils.LogError("Admin not found in context")
		utils.Unauthorized(c, "Admin not found")
		return
	}

	couponID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.LogError("Invalid coupon ID format: %v", err)
		utils.BadRequest(c, "Invalid coupon ID", nil)
		return
	}

	var req struct {
		IsActive *bool `json:"is_active" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid request format from admin ID: %d: %v", admin.ID, err)
		utils.BadRequest(c, "Invalid request. is_active is required", err.Error())
		return
	}

	coupon, err := couponService.SetActive(c.Request.Context(), uint(couponID), *req.IsActive, admin.ID)
	if err != nil {
		utils.LogError("Failed to toggle coupon ID: %d for admin ID: %d: %v", couponID, admin.ID, err)
		utils.HandleError(c, err)
		return
	}

	utils.LogInfo("Set coupon ID: %d active: %t", coupon.ID, coupon.IsActive)
	utils.Success(c, "Coupon status updated successfully", couponResponse(coupon))
}

// DeleteCoupon soft-deletes a coupon owned by the authenticated admin.
func DeleteCoupon(c *gin.Context) {
	utils.LogInfo("DeleteCoupon called")
	admin, ok := currentUser(c)
	if !ok {
		utils.LogError("Admin not found in context")
		utils.Unauthorized(c, "Admin not found")
		return
	}

	couponID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.LogError("Invalid coupon ID format: %v", err)
		utils.BadRequest(c, "Invalid coupon ID", nil)
		return
	}

	if err := couponService.Delete(c.Request.Context(), uint(couponID), admin.ID); err != nil {
		utils.LogError("Failed to delete coupon ID: %d for admin ID: %d: %v", couponID, admin.ID, err)
		utils.HandleError(c, err)
		return
	}

	utils.LogInfo("Deleted coupon ID: %d", couponID)
	utils.Success(c, "Coupon deleted successfully", nil)
}

// GetCoupon returns a single coupon by id.
func GetCoupon(c *gin.Context) {
	utils.LogInfo("GetCoupon called")

	couponID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.LogError("Invalid coupon ID format: %v", err)
		utils.BadRequest(c, "Invalid coupon ID", nil)
		return
	}

	coupon, err := couponService.GetByID(c.Request.Context(), uint(couponID))
	if err != nil {
		utils.LogError("Failed to fetch coupon ID: %d: %v", couponID, err)
		utils.HandleError(c, err)
		return
	}

	utils.Success(c, "Coupon retrieved successfully", couponResponse(coupon))
}

// ListCoupons returns a paginated list of all coupons.
func ListCoupons(c *gin.Context) {
	utils.LogInfo("ListCoupons called")

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	coupons, total, err := couponService.List(c.Request.Context(), page, limit)
	if err != nil {
		utils.LogError("Failed to list coupons: %v", err)
		utils.HandleError(c, err)
		return
	}

	list := make([]gin.H, 0, len(coupons))
	for i := range coupons {
		list = append(list, couponResponse(&coupons[i]))
	}

	utils.LogInfo("Listed %d of %d coupons", len(list), total)
	utils.SuccessWithPagination(c, "Coupons retrieved successfully", gin.H{"coupons": list}, total, page, limit)
}
