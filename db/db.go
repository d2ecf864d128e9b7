package db

import (
	"asset-inventory-backend/models"
	"fmt"
	"log"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func ConnectDB() *gorm.DB {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)

	conn, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}

	if err := Migrate(conn); err != nil {
		log.Fatal("Failed to migrate models: ", err)
	}
	log.Println("Database connected")
	return conn
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.User{}, &models.Category{}, &models.Asset{}, &models.Lending{}); err != nil {
		return err
	}

	// At most one active lending per asset. The lending engine serializes the
	// check-then-flip inside a transaction; this index is the storage-level
	// backstop.
	if err := db.Exec(fmt.Sprintf(`
	  CREATE UNIQUE INDEX IF NOT EXISTS %s_one_active_per_asset
	  ON %s (asset_id)
	  WHERE status = 'active';
	`, models.LendingTable, models.LendingTable)).Error; err != nil {
		return err
	}

	// Active lendings are scanned by every overdue query.
	if err := db.Exec(fmt.Sprintf(`
	  CREATE INDEX IF NOT EXISTS %s_active_expected_return
	  ON %s (expected_return_date)
	  WHERE status = 'active';
	`, models.LendingTable, models.LendingTable)).Error; err != nil {
		return err
	}

	return nil
}
