package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/trottiparts/trottiparts-api/controllers"
	"github.com/trottiparts/trottiparts-api/middlewares"
)

func OrderRoutes(server *gin.Engine, checkoutCtrl *controllers.CheckoutController, webhookCtrl *controllers.WebhookController) {
	server.GET("/delivery-methods", controllers.GetDeliveryMethods)
	server.POST("/checkout", middlewares.OptionalAuth(), checkoutCtrl.Checkout)
	server.POST("/webhook/payment", webhookCtrl.HandlePaymentWebhook)

	auth := server.Group("/", middlewares.RequireAuth())
	{
		auth.POST("/order", checkoutCtrl.CreateOrder)
		auth.GET("/user/:userId/orders", controllers.GetOrdersByCustomerId)
		auth.GET("/order/:orderId", controllers.GetOrderById)
	}

	admin := server.Group("/admin", middlewares.RequireAuth(), middlewares.RequireAdmin())
	{
		admin.GET("/order", controllers.GetOrders)
		admin.PATCH("/order/:orderId", controllers.UpdateOrderStatus)
		admin.GET("/order/undelivered", controllers.GetUndeliveredOrders)
	}
}
