package routes

import (
	"github.com/devcom-labs/devcom-store/controllers"
	"github.com/devcom-labs/devcom-store/middleware"
	"github.com/gin-gonic/gin"
)

// initUserRoutes wires the authenticated shopper endpoints.
func initUserRoutes(api *gin.RouterGroup) {
	user := api.Group("/user")
	user.Use(middleware.AuthMiddleware())
	{
		cart := user.Group("/cart")
		{
			cart.GET("", controllers.GetCart)
			cart.POST("/add", controllers.AddToCart)
			cart.POST("/remove", controllers.RemoveFromCart)
			cart.POST("/clear", controllers.ClearCart)
		}

		coupons := user.Group("/coupons")
		{
			coupons.GET("/available", controllers.ListAvailableCoupons)
			coupons.POST("/apply", controllers.ApplyCoupon)
			coupons.POST("/remove", controllers.RemoveCoupon)
		}

		checkout := user.Group("/checkout")
		{
			checkout.POST("", controllers.Checkout)
			checkout.POST("/payment/verify", controllers.VerifyPayment)
		}

		orders := user.Group("/orders")
		{
			orders.GET("", controllers.ListMyOrders)
			orders.GET("/:id", controllers.GetOrder)
			orders.GET("/:id/invoice", controllers.DownloadInvoice)
		}
	}
}
