package main

import (
	"os"

	"github.com/dashent96-lang/AAU-FOUNT-IT-sponsored-by-rozzel/internal/pkg/logger"
	"github.com/dashent96-lang/AAU-FOUNT-IT-sponsored-by-rozzel/internal/server"
)

// @title AAU Found It API
// @version 1.0
// @description Campus lost and found board for Ambrose Alli University
// @host localhost:8080
// @BasePath /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
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
