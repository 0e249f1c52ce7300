package initializers

import (
	"log"

	"github.com/trottiparts/trottiparts-api/models"
)

func SyncDatabase() {
	DB.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Brand{},
		&models.Part{},
		&models.PartImage{},
		&models.ScooterModel{},
		&models.PartCompatibility{},
		&models.GarageEntry{},
		&models.Tutorial{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
	)
	log.Println("Database synced successfully.")
}
