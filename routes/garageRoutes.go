package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/trottiparts/trottiparts-api/controllers"
	"github.com/trottiparts/trottiparts-api/middlewares"
)

func GarageRoutes(server *gin.Engine) {
	garage := server.Group("/garage", middlewares.RequireAuth())
	{
		garage.POST("", controllers.AddGarageEntry)
		garage.GET("", controllers.GetGarage)
		garage.DELETE("/:id", controllers.DeleteGarageEntry)
	}
}
