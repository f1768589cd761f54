package logger

import (
	"io"
	"os"
	"time"

	"hotelos/config"
	"hotelos/shared/constant"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// InitLogger installs a console logger at trace level. It runs before config
// is loaded so that config loading itself can log.
func InitLogger() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	log.Trace().Msg("Zerolog initialized.")
}

func ErrorWithStack(err error) {
	log.Error().Msgf("%+v", errors.WithStack(err))
}

// Configure applies the configured level and, in production, switches to
// JSON lines tagged with the app name.
func Configure(cfg *config.Config) {
	configure(cfg, os.Stdout)
}

func configure(cfg *config.Config, out io.Writer) {
	level, err := zerolog.ParseLevel(cfg.Server.LogLevel)
	if err != nil {
		level = zerolog.TraceLevel
		log.Trace().Str("loglevel", level.String()).Msg("Environment has no log level set up, using default.")
	} else {
		log.Trace().Str("loglevel", level.String()).Msg("Desired log level detected.")
	}

	zerolog.SetGlobalLevel(level)

	if cfg.Server.Env != constant.ServerEnvProduction {
		return
	}

	ctx := zerolog.New(out).With().Timestamp()
	if cfg.App.Name != constant.Empty {
		ctx = ctx.Str("service", cfg.App.Name)
	}

	log.Logger = ctx.Logger()
}
