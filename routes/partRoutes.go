package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/trottiparts/trottiparts-api/controllers"
	"github.com/trottiparts/trottiparts-api/middlewares"
)

func PartRoutes(server *gin.Engine) {
	server.GET("/part", controllers.GetParts)
	server.GET("/part/:id", controllers.GetPart)
	server.GET("/category", controllers.GetCategories)
	server.GET("/brand", controllers.GetBrands)

	admin := server.Group("/", middlewares.RequireAuth(), middlewares.RequireAdmin())
	{
		admin.POST("/part", controllers.CreatePart)
		admin.PUT("/part/:id", controllers.UpdatePart)
		admin.DELETE("/part/:id", controllers.DeletePart)
		admin.POST("/part-images", controllers.UploadPartImages)
		admin.POST("/category", controllers.CreateCategory)
		admin.POST("/brand", controllers.CreateBrand)
	}
}
