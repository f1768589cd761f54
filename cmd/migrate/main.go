package main

import (
	"os"
	"strings"

	"hotelos/config"
	"hotelos/helper"
	"hotelos/shared/logger"

	"github.com/rs/zerolog/log"
)

func main() {
	logger.InitLogger()

	if len(os.Args) < 2 {
		log.Fatal().Msgf("Migration action is required (%s)", strings.Join(helper.Actions(), ", "))
	}

	cfg := config.Get()
	logger.Configure(cfg)

	if err := helper.Runner(cfg, os.Args[1]); err != nil {
		log.Fatal().Err(err).Str("action", os.Args[1]).Msg("Migration failed")
	}
}
