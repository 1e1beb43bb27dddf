package config

import (
	"log"

	"eksporyuk-api/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// SeedCatalogData seeds initial catalog data for development.
// Each table is seeded only when empty.
func SeedCatalogData(db *gorm.DB) error {
	if err := seedMemberships(db); err != nil {
		return err
	}

	if err := seedProducts(db); err != nil {
		return err
	}

	if err := seedCourses(db); err != nil {
		return err
	}

	log.Println("✅ Catalog data seeded successfully")
	return nil
}

func seedMemberships(db *gorm.DB) error {
	var count int64
	db.Model(&models.Membership{}).Count(&count)
	if count > 0 {
		return nil
	}

	memberships := []models.Membership{
		{
			Slug:         "monthly",
			Name:         "Membership Bulanan",
			Description:  "Akses semua kelas selama 30 hari",
			Price:        299000,
			DurationDays: 30,
			IsActive:     true,
		},
		{
			Slug:         "yearly",
			Name:         "Membership Tahunan",
			Description:  "Akses semua kelas selama 1 tahun",
			Price:        1999000,
			DurationDays: 365,
			IsActive:     true,
		},
		{
			Slug:         "lifetime",
			Name:         "Membership Lifetime",
			Description:  "Akses semua kelas selamanya",
			Price:        4999000,
			DurationDays: 0,
			IsActive:     true,
		},
	}

	return db.Create(&memberships).Error
}

func seedProducts(db *gorm.DB) error {
	var count int64
	db.Model(&models.Product{}).Count(&count)
	if count > 0 {
		return nil
	}

	products := []models.Product{
		{
			Slug:        "export-toolkit",
			Name:        "Export Toolkit",
			Description: "Template dokumen ekspor lengkap",
			Price:       499000,
			IsActive:    true,
		},
		{
			Slug:        "buyer-database",
			Name:        "Buyer Database",
			Description: "Database buyer luar negeri terkurasi",
			Price:       799000,
			IsActive:    true,
		},
	}

	return db.Create(&products).Error
}

func seedCourses(db *gorm.DB) error {
	var count int64
	db.Model(&models.Course{}).Count(&count)
	if count > 0 {
		return nil
	}

	courses := []models.Course{
		{
			Slug:        "export-basics",
			Title:       "Dasar-Dasar Ekspor",
			Description: "Kelas pengenalan ekspor untuk pemula",
			IsActive:    true,
		},
		{
			Slug:        "market-research",
			Title:       "Riset Pasar Ekspor",
			Description: "Teknik riset pasar dan mencari buyer",
			IsActive:    true,
		},
	}

	return db.Create(&courses).Error
}
