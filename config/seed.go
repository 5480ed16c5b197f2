package config

import (
	"log"
	"os"

	"github.com/TinsaeTadesse17/Coffee-Inventory-Management-sub000/models"
	"github.com/TinsaeTadesse17/Coffee-Inventory-Management-sub000/utils"
	"golang.org/x/crypto/bcrypt"
)

// SeedJuteBags ensures one inventory row per supported bag size.
func SeedJuteBags() {
	defaults := []models.JuteBagInventory{
		{BagSizeKg: 30, Quantity: 0, PricePerBag: 45, LowStockThreshold: 50},
		{BagSizeKg: 50, Quantity: 0, PricePerBag: 60, LowStockThreshold: 50},
		{BagSizeKg: 60, Quantity: 0, PricePerBag: 70, LowStockThreshold: 50},
		{BagSizeKg: 85, Quantity: 0, PricePerBag: 90, LowStockThreshold: 50},
	}
	for _, row := range defaults {
		var cnt int64
		DB.Model(&models.JuteBagInventory{}).Where("bag_size_kg = ?", row.BagSizeKg).Count(&cnt)
		if cnt == 0 {
			DB.Create(&row)
		}
	}
}

// SeedExchangeRates posts a version-1 base rate per traded currency so
// purchase costing never reads an empty table.
func SeedExchangeRates() {
	defaults := []models.ExchangeRate{
		{Currency: "ETB", Version: 1, RateToETB: 1},
		{Currency: "USD", Version: 1, RateToETB: 57.5},
	}
	for _, row := range defaults {
		var cnt int64
		DB.Model(&models.ExchangeRate{}).Where("currency = ?", row.Currency).Count(&cnt)
		if cnt == 0 {
			DB.Create(&row)
		}
	}
}

// SeedAdmin creates the bootstrap ADMIN account when no admin exists.
// Credentials come from SEED_ADMIN_USER / SEED_ADMIN_PASSWORD.
func SeedAdmin() {
	var cnt int64
	DB.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&cnt)
	if cnt > 0 {
		return
	}
	username := os.Getenv("SEED_ADMIN_USER")
	if username == "" {
		username = "admin"
	}
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if password == "" {
		password = "admin12345"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("seed admin: bcrypt failed: %v", err)
		return
	}
	admin := models.User{
		Username:     username,
		FullName:     "System Administrator",
		Role:         models.RoleAdmin,
		AvatarURL:    utils.DefaultAvatar("System Administrator"),
		PasswordHash: string(hash),
		IsActive:     true,
	}
	if err := DB.Create(&admin).Error; err != nil {
		log.Printf("seed admin: %v", err)
	}
}
