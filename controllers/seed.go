package controllers

import (
	"os"

	"github.com/devcom-labs/devcom-store/config"
	"github.com/devcom-labs/devcom-store/models"
	"github.com/devcom-labs/devcom-store/utils"
	"golang.org/x/crypto/bcrypt"
)

// CreateSampleAdmin seeds the admin account on first boot so the coupon
// and order management endpoints are reachable out of the box.
func CreateSampleAdmin() error {
	var count int64
	if err := config.DB.Model(&models.User{}).Where("is_admin = ?", true).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		utils.LogDebug("Admin account already exists, skipping seed")
		return nil
	}

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin123"
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := models.User{
		Username: "admin",
		Email:    "admin@devcom.store",
		Password: string(hashed),
		IsAdmin:  true,
	}
	if err := config.DB.Create(&admin).Error; err != nil {
		return err
	}
	utils.LogInfo("Seeded admin account with email: %s", admin.Email)
	return nil
}

// CreateSampleProducts seeds a handful of products when the catalog is
// empty so carts can be exercised in a fresh environment.
func CreateSampleProducts() error {
	var count int64
	if err := config.DB.Model(&models.Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	products := []models.Product{
		{Name: "Mechanical Keyboard", Description: "87-key hot-swappable board", Price: 4999.00, Stock: 25, IsActive: true},
		{Name: "USB-C Hub", Description: "7-in-1 aluminium hub", Price: 1899.00, Stock: 60, IsActive: true},
		{Name: "Laptop Stand", Description: "Adjustable aluminium stand", Price: 1299.00, Stock: 40, IsActive: true},
	}
	if err := config.DB.Create(&products).Error; err != nil {
		return err
	}
	utils.LogInfo("Seeded %d sample products", len(products))
	return nil
}
