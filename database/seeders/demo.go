package seeders

import (
	"gorm.io/gorm"

	"github.com/aymanhs/souq/app/models"
	"github.com/aymanhs/souq/pkg/auth"
)

func init() {
	Register("users", SeedUsers)
	Register("products", SeedProducts)
}

// SeedUsers creates an admin and a demo customer. Idempotent: existing
// emails are skipped.
func SeedUsers(db *gorm.DB) error {
	users := []struct {
		name, email, password, role string
	}{
		{"Admin", "admin@souq.local", "admin12345", models.RoleAdmin},
		{"Demo Customer", "demo@souq.local", "demo12345", models.RoleUser},
	}

	for _, u := range users {
		var count int64
		if err := db.Model(&models.User{}).Where("email = ?", u.email).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}

		hash, err := auth.HashPassword(u.password)
		if err != nil {
			return err
		}
		if err := db.Create(&models.User{
			Name: u.name, Email: u.email, Password: hash, Role: u.role,
		}).Error; err != nil {
			return err
		}
	}
	return nil
}

// SeedProducts lists a few demo products owned by the admin account.
func SeedProducts(db *gorm.DB) error {
	var admin models.User
	if err := db.Where("email = ?", "admin@souq.local").First(&admin).Error; err != nil {
		return err
	}

	var count int64
	if err := db.Model(&models.Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	products := []models.Product{
		{Title: "Walnut desk", Description: "Solid walnut standing desk", Price: 19900, Quantity: 5, SellerID: admin.ID},
		{Title: "Oak chair", Description: "Ergonomic oak office chair", Price: 8900, Quantity: 12, SellerID: admin.ID},
		{Title: "Brass lamp", Description: "Adjustable brass desk lamp", Price: 4500, Quantity: 20, SellerID: admin.ID},
	}
	return db.Create(&products).Error
}
