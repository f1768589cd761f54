package main

import (
	"hotelos/config"
	"hotelos/di"
	"hotelos/helper"
	"hotelos/shared/logger"

	"github.com/rs/zerolog/log"
)

// @title HotelOS API
// @version 1.0
// @description Room reservations, guest ledgers and checkout invoicing.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger.InitLogger()

	cfg := config.Get()

	logger.Configure(cfg)

	if cfg.DB.Postgres.AutoMigrate {
		if err := helper.Up(cfg); err != nil {
			log.Fatal().Err(err).Msg("Failed to run migrations")
		}
	}

	http := di.InitializeService()
	http.Serve()
}
