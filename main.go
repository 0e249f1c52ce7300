package main

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/trottiparts/trottiparts-api/controllers"
	"github.com/trottiparts/trottiparts-api/initializers"
	"github.com/trottiparts/trottiparts-api/orders"
	"github.com/trottiparts/trottiparts-api/payments"
	"github.com/trottiparts/trottiparts-api/routes"
	"github.com/trottiparts/trottiparts-api/utils"
)

func init() {
	initializers.LoadEnv()
	initializers.ConnectToDB()
	initializers.SyncDatabase()
}

func main() {
	server := gin.Default()
	server.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:4200", "https://www.trottiparts.fr"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	store := orders.NewStore(initializers.DB)
	writer := orders.NewWriter(initializers.DB)
	reconciler := orders.NewReconciler(store, utils.OrderMailer{})
	checkoutCtrl := controllers.NewCheckoutController(store, writer, payments.NewClient())
	webhookCtrl := controllers.NewWebhookController(reconciler)

	reaper := orders.NewReaper(initializers.DB, 24*time.Hour, time.Hour)
	go reaper.Run()

	routes.DefaultRoutes(server)
	routes.AuthRoutes(server)
	routes.PartRoutes(server)
	routes.ScooterRoutes(server)
	routes.GarageRoutes(server)
	routes.TutorialRoutes(server)
	routes.CartRoutes(server)
	routes.OrderRoutes(server, checkoutCtrl, webhookCtrl)
	server.Run()
}
