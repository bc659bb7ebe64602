package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/25ayu25/BEGC-FinancialManagementSystem-sub002/internal/models"
)

// testDB opens a private in-memory database migrated to the current
// schema. Each test gets its own connection so tests can't see each
// other's rows.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=private"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	err = db.AutoMigrate(
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
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

func seedDepartment(t *testing.T, db *gorm.DB, code, name string) models.Department {
	t.Helper()
	dep := models.Department{ID: uuid.New().String(), Code: code, Name: name}
	if err := db.Create(&dep).Error; err != nil {
		t.Fatalf("Failed to seed department %s: %v", code, err)
	}
	return dep
}

func seedProvider(t *testing.T, db *gorm.DB, code, name string) models.InsuranceProvider {
	t.Helper()
	p := models.InsuranceProvider{ID: uuid.New().String(), Code: code, Name: name}
	if err := db.Create(&p).Error; err != nil {
		t.Fatalf("Failed to seed provider %s: %v", code, err)
	}
	return p
}

func seedTransaction(t *testing.T, db *gorm.DB, txType models.TransactionType, date time.Time, amount float64, deptID, category string) {
	t.Helper()
	tx := models.Transaction{
		ID:           uuid.New().String(),
		Date:         date,
		Type:         txType,
		Amount:       amount,
		Currency:     models.CurrencySSP,
		DepartmentID: deptID,
		Category:     category,
	}
	if err := db.Create(&tx).Error; err != nil {
		t.Fatalf("Failed to seed transaction: %v", err)
	}
}
