package database

import (
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/25ayu25/BEGC-FinancialManagementSystem-sub002/internal/models"
)

var DB *gorm.DB

func Initialize(dbPath string) error {
	var err error
	DB, err = gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return err
	}

	log.Println("Database connected successfully")

	err = DB.AutoMigrate(
		&models.Department{},
		&models.InsuranceProvider{},
		&models.Transaction{},
		&models.PatientVisit{},
		&models.InsuranceClaim{},
		&models.InsurancePayment{},
		&models.User{},
		&models.DailySnapshot{},
	)
	if err != nil {
		return err
	}

	log.Println("Database migration completed")
	return nil
}

func GetDB() *gorm.DB {
	return DB
}
