package main

import (
	"log"

	"github.com/devcom-labs/devcom-store/config"
	"github.com/devcom-labs/devcom-store/controllers"
	"github.com/devcom-labs/devcom-store/routes"
	"github.com/devcom-labs/devcom-store/utils"
)

func main() {
	if err := utils.InitLogger(); err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		utils.LogError("Error loading config: %v", err)
		log.Fatal("Error loading config:", err)
	}

	if err := config.InitDB(cfg); err != nil {
		utils.LogError("Error initializing database: %v", err)
		log.Fatal("Error initializing database:", err)
	}

	if err := controllers.CreateSampleAdmin(); err != nil {
		utils.LogError("Failed to create sample admin: %v", err)
		log.Fatal("Failed to create sample admin:", err)
	}
	if err := controllers.CreateSampleProducts(); err != nil {
		utils.LogError("Failed to create sample products: %v", err)
		log.Fatal("Failed to create sample products:", err)
	}

	controllers.InitControllers(cfg)

	router := routes.SetupRouter()

	utils.LogInfo("Server starting on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		utils.LogError("Error starting server: %v", err)
		log.Fatal("Error starting server:", err)
	}
}
