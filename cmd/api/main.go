package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/campushire/campushire/internal/pkg/logger"
	"github.com/campushire/campushire/internal/server"
)

// @title CampusHire API
// @version 1.0
// @description API for the CampusHire job placement platform

// @contact.name API Support
// @contact.email support@campushire.app

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Session token, sent as "Token <key>"

func main() {
	// .env is optional; real deployments set environment variables directly
	_ = godotenv.Load()

	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
