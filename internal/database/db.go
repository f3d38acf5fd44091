package database

import (
	"log"

	"curryleaf-backend/internal/config"
	"curryleaf-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("could not connect to the database: %v", err)
	}

	err = DB.AutoMigrate(
		&models.User{},
		&models.InviteCode{},
		&models.RestaurantInfo{},
		&models.BuffetSettings{},
		&models.MenuItem{},
		&models.MenuBackup{},
		&models.AuditLog{},
	)
	if err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}

	log.Println("Database connected. Migration complete.")
}
