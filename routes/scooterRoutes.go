package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/trottiparts/trottiparts-api/controllers"
	"github.com/trottiparts/trottiparts-api/middlewares"
)

func ScooterRoutes(server *gin.Engine) {
	server.GET("/scooter", controllers.GetScooterModels)
	server.GET("/scooter/:id", controllers.GetScooterModel)
	server.GET("/scooter/:id/parts", controllers.GetCompatibleParts)

	admin := server.Group("/", middlewares.RequireAuth(), middlewares.RequireAdmin())
	{
		admin.POST("/scooter", controllers.CreateScooterModel)
		admin.POST("/compatibility", controllers.CreateCompatibility)
		admin.DELETE("/compatibility/:id", controllers.DeleteCompatibility)
	}
}
