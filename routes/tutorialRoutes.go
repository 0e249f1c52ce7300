package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/trottiparts/trottiparts-api/controllers"
	"github.com/trottiparts/trottiparts-api/middlewares"
)

func TutorialRoutes(server *gin.Engine) {
	server.GET("/tutorial", controllers.GetTutorials)
	server.GET("/tutorial/:slug", controllers.GetTutorialBySlug)

	admin := server.Group("/", middlewares.RequireAuth(), middlewares.RequireAdmin())
	{
		admin.POST("/tutorial", controllers.CreateTutorial)
		admin.PUT("/tutorial/:id", controllers.UpdateTutorial)
		admin.DELETE("/tutorial/:id", controllers.DeleteTutorial)
	}
}
