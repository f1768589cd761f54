package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"hotelos/config"
	"hotelos/di"
	"hotelos/shared/logger"

	"github.com/rs/zerolog/log"
)

func main() {
	logger.InitLogger()

	cfg := config.Get()

	logger.Configure(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	worker := di.InitializeWorker()

	log.Info().Msg("Starting invoice delivery worker.")

	worker.Run(ctx)

	log.Info().Msg("Worker stopped.")
}
