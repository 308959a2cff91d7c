package controllers

import (
	"fmt"

	"github.com/devcom-labs/devcom-store/utils"
	"github.com/gin-gonic/gin"
)

// Checkout reserves stock, opens a payment session with the processor and
// records the pending order for the user's cart.
func Checkout(c *gin.Context) {
	utils.LogInfo("Checkout called")
	user, ok := currentUser(c)
	if !ok {
		utils.LogError("User not found in context")
		utils.Unauthorized(c, "User not found")
		return
	}

	var req struct {
		AddressID uint `json:"address_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid request for user ID: %d: %v", user.ID, err)
		utils.BadRequest(c, "Invalid request. address_id is required", err.Error())
		return
	}
	utils.LogInfo("Processing checkout for user ID: %d with address ID: %d", user.ID, req.AddressID)

	result, err := checkoutService.Checkout(c.Request.Context(), user.ID, req.AddressID)
	if err != nil {
		utils.LogError("Checkout failed for user ID: %d: %v", user.ID, err)
		utils.HandleError(c, err)
		return
	}

	utils.LogInfo("Checkout completed for user ID: %d, order ID: %d, session: %s", user.ID, result.OrderID, result.Session.ID)
	utils.Success(c, "Checkout initiated successfully", gin.H{
		"order_id":   result.OrderID,
		"session_id": result.Session.ID,
		"amount":     fmt.Sprintf("%.2f", result.Amount),
		"currency":   result.Currency,
		"receipt":    result.Session.Receipt,
		"key":        paymentGateway.KeyID(),
		"user": gin.H{
			"name":  user.Username,
			"email": user.Email,
		},
	})
}
