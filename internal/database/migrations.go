package database

import (
	"log"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/25ayu25/BEGC-FinancialManagementSystem-sub002/internal/models"
)

// defaultDepartments are the clinic's revenue centers. Seeded once; codes
// are stable keys the frontend filters on.
var defaultDepartments = []models.Department{
	{Code: "consultation", Name: "Consultation"},
	{Code: "laboratory", Name: "Laboratory"},
	{Code: "ultrasound", Name: "Ultrasound"},
	{Code: "xray", Name: "X-Ray"},
	{Code: "pharmacy", Name: "Pharmacy"},
	{Code: "other", Name: "Other"},
}

var defaultProviders = []models.InsuranceProvider{
	{Code: "cic", Name: "CIC Insurance"},
	{Code: "uap", Name: "UAP Insurance"},
	{Code: "cigna", Name: "CIGNA"},
	{Code: "nile", Name: "New Sudan / Nile Insurance"},
}

// Seed inserts reference data and the bootstrap admin account when they
// are missing. Idempotent: existing rows are left untouched.
func Seed(db *gorm.DB, adminUser, adminPass string) error {
	for _, d := range defaultDepartments {
		dep := d
		dep.ID = uuid.New().String()
		result := db.Where(models.Department{Code: d.Code}).FirstOrCreate(&dep)
		if result.Error != nil {
			return result.Error
		}
	}

	for _, p := range defaultProviders {
		prov := p
		prov.ID = uuid.New().String()
		result := db.Where(models.InsuranceProvider{Code: p.Code}).FirstOrCreate(&prov)
		if result.Error != nil {
			return result.Error
		}
	}

	return seedAdminUser(db, adminUser, adminPass)
}

func seedAdminUser(db *gorm.DB, username, password string) error {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	if password == "" {
		log.Println("No users exist and ADMIN_PASSWORD is unset; skipping admin bootstrap")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := models.User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: string(hash),
		FullName:     "Administrator",
		Role:         models.RoleAdmin,
		Active:       true,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	log.Printf("Seeded admin user %q", username)
	return nil
}
