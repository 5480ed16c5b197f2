package main

import (
	"context"
	"os"
	"strings"

	"github.com/TinsaeTadesse17/Coffee-Inventory-Management-sub000/config"
	"github.com/TinsaeTadesse17/Coffee-Inventory-Management-sub000/models"
	"github.com/TinsaeTadesse17/Coffee-Inventory-Management-sub000/routes"
	"github.com/TinsaeTadesse17/Coffee-Inventory-Management-sub000/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	config.ConnectDB()

	config.DB.AutoMigrate(
		&models.User{},
		&models.Supplier{},
		&models.ThirdPartyEntity{},
		&models.Batch{},
		&models.VehicleWeighingRecord{},
		&models.WarehouseEntry{},
		&models.QualityCheck{},
		&models.ProcessingRun{},
		&models.ProcessingRunInput{},
		&models.ProcessingCost{},
		&models.StorageCost{},
		&models.JuteBagInventory{},
		&models.Contract{},
		&models.AdditionalCost{},
		&models.ExchangeRate{},
		&models.OutboxMessage{},
		&models.Notification{},
		&models.AuditLog{},
	)

	config.SeedJuteBags()
	config.SeedExchangeRates()
	config.SeedAdmin()

	if s := os.Getenv("JWT_SECRET"); s != "" {
		utils.Secret = []byte(s)
	}

	// outbox worker: notifications and audit logs are written by this loop,
	// never inline with the business transaction
	if !strings.EqualFold(os.Getenv("OUTBOX_DIRECT_PROCESSING"), "false") {
		processor := NewOutboxProcessor(config.DB, config.GetLogger())
		go processor.Run(context.Background())
	}

	r := gin.Default()

	corsConfig := cors.DefaultConfig()
	allowedOrigins := strings.TrimSpace(os.Getenv("CORS_ALLOWED_ORIGINS"))
	if strings.EqualFold(strings.TrimSpace(os.Getenv("GO_ENV")), "production") {
		if allowedOrigins == "" {
			corsConfig.AllowOrigins = []string{}
		} else {
			corsConfig.AllowOrigins = strings.Split(allowedOrigins, ",")
		}
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AddAllowMethods("GET", "POST", "PUT", "DELETE", "OPTIONS")
	corsConfig.AddAllowHeaders("Authorization", "Content-Type")
	r.Use(cors.New(corsConfig))

	routes.SetupRoutes(r)

	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "coffee supply-chain API is running"})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	_ = r.Run(":" + port)
}
