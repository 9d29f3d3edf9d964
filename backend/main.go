package main

import (
	"log"
	"os"

	"studytracker/backend/config"
	"studytracker/backend/database"
	"studytracker/backend/repository"
	"studytracker/backend/routes"
	"studytracker/backend/utils"
)

func main() {
	// Load configuration
	cfg, cfgErr := config.LoadConfig()

	// Initialize logger
	logger, err := utils.InitLogger(utils.LoggerConfig{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	if err != nil {
		logger.Error("invalid log level, using info", "error", err)
	}
	if cfgErr != nil {
		logger.Error("invalid configuration, using defaults", "error", cfgErr)
	}

	// Initialize database
	store, err := database.Open(cfg.DBPath, cfg.GormLogLevel)
	if err != nil {
		logger.Error("failed to open database", "path", cfg.DBPath, "error", err)
		os.Exit(1)
	}
	defer store.Close()

	if err := database.EnsureSchema(store.DB()); err != nil {
		logger.Error("failed to initialize schema", "path", cfg.DBPath, "error", err)
		os.Exit(1)
	}

	repo := repository.New(store, repository.WithBcryptCost(cfg.BcryptCost))
	app := routes.NewApp(repo, logger, cfg.AllowOrigins)

	// Start server
	logger.Info("server starting", "port", cfg.ServerPort, "db_path", cfg.DBPath)
	log.Fatal(app.Listen(":" + cfg.ServerPort))
}
