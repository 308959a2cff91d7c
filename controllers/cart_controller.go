package controllers

import (
	"github.com/devcom-labs/devcom-store/utils"
	"github.com/gin-gonic/gin"
)

// GetCart returns the priced view of the user's cart.
func GetCart(c *gin.Context) {
	utils.LogInfo("GetCart called")
	user, ok := currentUser(c)
	if !ok {
		utils.LogError("User not found in context")
		utils.Unauthorized(c, "User not found")
		return
	}

	priced, err := cartService.GetCart(c.Request.Context(), user.ID)
	if err != nil {
		utils.LogError("Failed to fetch cart for user ID: %d: %v", user.ID, err)
		utils.HandleError(c, err)
		return
	}

	utils.LogInfo("Fetched cart with %d items for user ID: %d", len(priced.Items), user.ID)
	utils.Success(c, "Cart retrieved successfully", cartResponse(priced))
}

// AddToCart adds a product to the user's cart with stock validation.
func AddToCart(c *gin.Context) {
	utils.LogInfo("AddToCart called")
	user, ok := currentUser(c)
	if !ok {
		utils.LogError("User not found in context")
		utils.Unauthorized(c, "User not found")
		return
	}

	var req struct {
		ProductID uint `json:"product_id" binding:"required"`
		Quantity  int  `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid request format for user ID: %d: %v", user.ID, err)
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}
	utils.LogInfo("Adding product ID: %d with quantity: %d for user ID: %d", req.ProductID, req.Quantity, user.ID)

	priced, err := cartService.AddItem(c.Request.Context(), user.ID, req.ProductID, req.Quantity)
	if err != nil {
		utils.LogError("Failed to add product ID: %d for user ID: %d: %v", req.ProductID, user.ID, err)
		utils.HandleError(c, err)
		return
	}

	utils.LogInfo("Added product ID: %d to cart for user ID: %d", req.ProductID, user.ID)
	utils.Success(c, "Item added to cart successfully", cartResponse(priced))
}

// RemoveFromCart decrements or removes a product from the user's cart.
func RemoveFromCart(c *gin.Context) {
	utils.LogInfo("RemoveFromCart called")
	user, ok := currentUser(c)
	if !ok {
		utils.LogError("User not found in context")
		utils.Unauthorized(c, "User not found")
		return
	}

	var req struct {
		ProductID uint `json:"product_id" binding:"required"`
		Quantity  int  `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid request format for user ID: %d: %v", user.ID, err)
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}
	utils.LogInfo("Removing product ID: %d with quantity: %d for user ID: %d", req.ProductID, req.Quantity, user.ID)

	priced, err := cartService.RemoveItem(c.Request.Context(), user.ID, req.ProductID, req.Quantity)
	if err != nil {
		utils.LogError("Failed to remove product ID: %d for user ID: %d: %v", req.ProductID, user.ID, err)
		utils.HandleError(c, err)
		return
	}

	utils.LogInfo("Removed product ID: %d from cart for user ID: %d", req.ProductID, user.ID)
	utils.Success(c, "Item removed from cart successfully", cartResponse(priced))
}

// ClearCart empties the user's cart and detaches any applied coupon.
func ClearCart(c *gin.Context) {
	utils.LogInfo("ClearCart called")
	user, ok := currentUser(c)
	if !ok {
		utils.LogError("User not found in context")
		utils.Unauthorized(c, "User not found")
		return
	}

	priced, err := cartService.Clear(c.Request.Context(), user.ID)
	if err != nil {
		utils.LogError("Failed to clear cart for user ID: %d: %v", user.ID, err)
		utils.HandleError(c, err)
		return
	}

	utils.LogInfo("Cleared cart for user ID: %d", user.ID)
	utils.Success(c, "Cart cleared successfully", cartResponse(priced))
}
