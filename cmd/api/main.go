package main

import (
	"os"

	"github.com/yigit/eduadmin/internal/pkg/logger"
	"github.com/yigit/eduadmin/internal/server"
)

// @title EduAdmin API
// @version 1.0
// @description Role-based administration of groups, subjects, tests and exam results

// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT access token as "Bearer <token>"

func main() {
	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	// Blocks until a shutdown signal arrives
	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
