package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/trottiparts/trottiparts-api/controllers"
)

func CartRoutes(server *gin.Engine) {
	server.POST("/cart/:userId", controllers.CreateCartItem)
	server.GET("/cart/:userId", controllers.GetCart)
	server.DELETE("/cart/:userId", controllers.ClearCart)
	server.PATCH("/cart-item/:itemId", controllers.UpdateCartItemQuantity)
	server.DELETE("/cart-item/:itemId", controllers.DeleteCartItem)
}
