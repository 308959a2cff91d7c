package controllers

import (
	"strconv"

	"github.com/devcom-labs/devcom-store/utils"
	"github.com/gin-gonic/gin"
)

// GetOrder returns a single order. Users may only read their own orders.
func GetOrder(c *gin.Context) {
	utils.LogInfo("GetOrder called")
	user, ok := currentUser(c)
	if !ok {
		utils.LogError("User not found in context")
		utils.Unauthorized(c, "User not found")
		return
	}

	orderID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.LogError("Invalid order ID format: %v", err)
		utils.BadRequest(c, "Invalid order ID", nil)
		return
	}

	order, err := orderService.Get(c.Request.Context(), uint(orderID), user.ID, user.IsAdmin)
	if err != nil {
		utils.LogError("Failed to fetch order ID: %d for user ID: %d: %v", orderID, user.ID, err)
		utils.HandleError(c, err)
		return
	}

	utils.LogInfo("Fetched order ID: %d for user ID: %d", order.ID, user.ID)
	utils.Success(c, "Order retrieved successfully", orderResponse(order))
}

// ListMyOrders returns a page of the authenticated user's orders, newest
// first.
func ListMyOrders(c *gin.Context) {
	utils.LogInfo("ListMyOrders called")
	user, ok := currentUser(c)
	if !ok {
		utils.LogError("User not found in context")
		utils.Unauthorized(c, "User not found")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	orders, total, err := orderService.ListByUser(c.Request.Context(), user.ID, page, limit)
	if err != nil {
		utils.LogError("Failed to list orders for user ID: %d: %v", user.ID, err)
		utils.HandleError(c, err)
		return
	}

	list := make([]gin.H, 0, len(orders))
	for i := range orders {
		list = append(list, orderResponse(&orders[i]))
	}

	utils.LogInfo("Listed %d of %d orders for user ID: %d", len(list), total, user.ID)
	utils.SuccessWithPagination(c, "Orders retrieved successfully", gin.H{"orders": list}, total, page, limit)
}
