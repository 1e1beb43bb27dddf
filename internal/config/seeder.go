package config

import (
	"log"

	"eksporyuk-api/internal/adapters/persistence/models"
	"eksporyuk-api/internal/pkg/password"

	"gorm.io/gorm"
)

// Seeder handles database seeding
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// Run executes all seeders
func (s *Seeder) Run() error {
	log.Println("🌱 Running database seeders...")

	if err := s.seedAdminUser(); err != nil {
		log.Printf("⚠️ Admin seeder skipped: %v", err)
	}

	if err := s.seedCommissionDefaults(); err != nil {
		return err
	}

	log.Println("✅ Database seeding completed")
	return nil
}

// seedAdminUser seeds default admin user
// This is for development/testing only
// In production, create admin through secure process
func (s *Seeder) seedAdminUser() error {
	var count int64
	s.db.Model(&models.User{}).Where("role = ?", "ADMIN").Count(&count)
	if count > 0 {
		return nil // Admin already exists
	}

	hashedPassword, err := password.Hash("admin123456")
	if err != nil {
		return err
	}

	admin := &models.User{
		Name:     "Administrator",
		Username: "admin",
		Email:    "admin@eksporyuk.com",
		Password: hashedPassword,
		Role:     "ADMIN",
		IsActive: true,
	}

	if err := s.db.Create(admin).Error; err != nil {
		return err
	}

	log.Println("🌱 Seeded default admin user (admin / admin123456)")
	return nil
}

// seedCommissionDefaults seeds the GLOBAL commission rate row.
// A correctly initialized system always has this row; the resolver's
// hardcoded platform default only covers the window before first seeding.
func (s *Seeder) seedCommissionDefaults() error {
	var count int64
	s.db.Model(&models.CommissionRate{}).
		Where("scope_type = ? AND scope_id IS NULL", models.ScopeTypeGlobal).
		Count(&count)
	if count > 0 {
		return nil
	}

	rate := &models.CommissionRate{
		ScopeType: models.ScopeTypeGlobal,
		RateType:  models.RateTypePercent,
		Value:     10.00,
	}

	if err := s.db.Create(rate).Error; err != nil {
		return err
	}

	log.Println("🌱 Seeded GLOBAL commission rate (10% PERCENT)")
	return nil
}
