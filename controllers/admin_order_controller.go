package controllers

import (
	"strconv"

	"github.com/devcom-labs/devcom-store/utils"
	"github.com/gin-gonic/gin"
)

// ListOrders returns a page of all orders for the admin, optionally
// filtered by status.
func ListOrders(c *gin.Context) {
	utils.LogInfo("ListOrders called")

	status := c.Query("status")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	utils.LogDebug("Listing orders with status filter: %q, page: %d, limit: %d", status, page, limit)

	orders, total, err := orderService.List(c.Request.Context(), status, page, limit)
	if err != nil {
		utils.LogError("Failed to list orders: %v", err)
		utils.HandleError(c, err)
		return
	}

	list := make([]gin.H, 0, len(orders))
	for i := range orders {
		resp := orderResponse(&orders[i])
		resp["user_id"] = orders[i].UserID
		list = append(list, resp)
	}

	utils.LogInfo("Listed %d of %d orders", len(list), total)
	utils.SuccessWithPagination(c, "Orders retrieved successfully", gin.H{"orders": list}, total, page, limit)
}

// UpdateOrderStatus moves an order along its lifecycle. Cancelling an
// unpaid order puts the reserved stock back.
func UpdateOrderStatus(c *gin.Context) {
	utils.LogInfo("UpdateOrderStatus called")

	orderID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.LogError("Invalid order ID format: %v", err)
		utils.BadRequest(c, "Invalid order ID", nil)
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid request for order ID: %d: %v", orderID, err)
		utils.BadRequest(c, "Invalid request. status is required", err.Error())
		return
	}
	utils.LogInfo("Updating order ID: %d to status: %s", orderID, req.Status)

	order, err := orderService.UpdateStatus(c.Request.Context(), uint(orderID), req.Status)
	if err != nil {
		utils.LogError("Failed to update status for order ID: %d: %v", orderID, err)
		utils.HandleError(c, err)
		return
	}

	utils.LogInfo("Order ID: %d moved to status: %s", order.ID, order.Status)
	utils.Success(c, "Order status updated successfully", orderResponse(order))
}
