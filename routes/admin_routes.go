package routes

import (
	"github.com/devcom-labs/devcom-store/controllers"
	"github.com/devcom-labs/devcom-store/middleware"
	"github.com/gin-gonic/gin"
)

// initAdminRoutes wires the admin-only coupon and order management
// endpoints.
func initAdminRoutes(api *gin.RouterGroup) {
	admin := api.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.AdminMiddleware())
	{
		coupons := admin.Group("/coupons")
		{
			coupons.POST("", controllers.CreateCoupon)
			coupons.GET("", controllers.ListCoupons)
			coupons.GET("/:id", controllers.GetCoupon)
			coupons.PUT("/:id", controllers.UpdateCoupon)
			coupons.PATCH("/:id/active", controllers.SetCouponActive)
			coupons.DELETE("/:id", controllers.DeleteCoupon)
		}

		orders := admin.Group("/orders")
		{
			orders.GET("", controllers.ListOrders)
			orders.GET("/export", controllers.DownloadOrdersExcel)
			orders.PATCH("/:id/status", controllers.UpdateOrderStatus)
		}
	}
}
