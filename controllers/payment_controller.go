package controllers

import (
	"fmt"
	"strconv"

	"github.com/devcom-labs/devcom-store/utils"
	"github.com/gin-gonic/gin"
)

// VerifyPayment checks the processor's signature for a completed payment
// and finalizes the matching order. Finalization is idempotent, so the
// client may safely retry on a dropped response.
func VerifyPayment(c *gin.Context) {
	utils.LogInfo("VerifyPayment called")
	user, ok := currentUser(c)
	if !ok {
		utils.LogError("User not found in context")
		utils.Unauthorized(c, "User not found")
		return
	}

	var req struct {
		SessionID string `json:"session_id" binding:"required"`
		PaymentID string `json:"payment_id" binding:"required"`
		Signature string `json:"signature" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid request for user ID: %d: %v", user.ID, err)
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}
	utils.LogInfo("Verifying payment for session: %s, user ID: %d", req.SessionID, user.ID)

	if err := paymentService.Verify(req.SessionID, req.PaymentID, req.Signature); err != nil {
		utils.LogError("Payment verification failed for session: %s, user ID: %d", req.SessionID, user.ID)
		utils.HandleError(c, err)
		return
	}
	utils.LogInfo("Payment signature verified for session: %s", req.SessionID)

	order, err := paymentService.Finalize(c.Request.Context(), req.SessionID, req.PaymentID)
	if err != nil {
		utils.LogError("Failed to finalize payment for session: %s: %v", req.SessionID, err)
		utils.HandleError(c, err)
		return
	}

	// Confirmation email is best effort, payment acceptance never waits
	// on SMTP.
	go func(email string, orderID uint, amount float64) {
		if err := utils.SendOrderConfirmation(email, orderID, amount); err != nil {
			utils.LogError("Failed to send order confirmation for order ID: %d: %v", orderID, err)
		}
	}(user.Email, order.ID, order.DiscountedOrderPrice)

	utils.LogInfo("Payment finalized for order ID: %d, session: %s", order.ID, req.SessionID)
	utils.Success(c, "Thank you for your payment! Your order has been placed.", gin.H{
		"order_id":          order.ID,
		"amount":            fmt.Sprintf("%.2f", order.DiscountedOrderPrice),
		"payment_id":        order.PaymentID,
		"status":            order.Status,
		"order_details_url": "/v1/user/orders/" + strconv.FormatUint(uint64(order.ID), 10),
	})
}
