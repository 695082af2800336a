package db

import (
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/CampCoding/elmezan-backend/internal/models"
)

func Open(dsn string) (*gorm.DB, error) {
	database, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := database.AutoMigrate(
		&models.Invoice{},
		&models.InvoiceLine{},
		&models.DeletedLine{},
		&models.Item{},
		&models.Table{},
		&models.Hall{},
		&models.Captain{},
	); err != nil {
		return nil, err
	}

	return database, nil
}
