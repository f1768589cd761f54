package helper

//nolint:revive
import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"slices"
	"strings"

	"hotelos/config"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog/log"
)

const (
	ActionUp      = "up"
	ActionDown    = "down"
	ActionStepUp  = "step-up"
	ActionDrop    = "drop"
	ActionVersion = "version"
)

type migration func(mig *migrate.Migrate) error

var migrations = map[string]migration{
	ActionUp:     func(mig *migrate.Migrate) error { return mig.Up() },
	ActionDown:   func(mig *migrate.Migrate) error { return mig.Steps(-1) },
	ActionStepUp: func(mig *migrate.Migrate) error { return mig.Steps(1) },
	ActionDrop:   func(mig *migrate.Migrate) error { return mig.Down() },
	ActionVersion: func(mig *migrate.Migrate) error {
		version, dirty, err := mig.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			log.Info().Msg("No migration has been applied")

			return nil
		}

		if err != nil {
			return err
		}

		log.Info().Uint("version", version).Bool("dirty", dirty).Msg("Current schema version")

		return nil
	},
}

// Actions lists the accepted migration actions in a stable order.
func Actions() []string {
	actions := make([]string, 0, len(migrations))
	for action := range migrations {
		actions = append(actions, action)
	}

	slices.Sort(actions)

	return actions
}

// DatabaseURL builds the golang-migrate postgres URL for the write database.
func DatabaseURL(config *config.Config) string {
	pg := config.DB.Postgres

	query := url.Values{}
	if pg.Write.SSLMode != "" {
		query.Set("sslmode", pg.Write.SSLMode)
	}

	if pg.MigrationTable != "" {
		query.Set("x-migrations-table", pg.MigrationTable)
	}

	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(pg.Write.Username, pg.Write.Password),
		Host:     net.JoinHostPort(pg.Write.Host, pg.Write.Port),
		Path:     "/" + pg.Prefix + pg.Write.Name,
		RawQuery: query.Encode(),
	}

	return dsn.String()
}

// Runner applies one migration action against the write database.
func Runner(config *config.Config, action string) error {
	run, ok := migrations[action]
	if !ok {
		return fmt.Errorf("unknown migration action %q, use one of %s", action, strings.Join(Actions(), ", "))
	}

	mig, err := migrate.New(config.DB.Postgres.MigrationPath, DatabaseURL(config))
	if err != nil {
		return fmt.Errorf("error creating migrate instance: %w", err)
	}

	defer mig.Close()

	if err := run(mig); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration %s failed: %w", action, err)
	}

	log.Info().Str("action", action).Msg("Database migration finished")

	return nil
}

// Up applies every pending migration. The API calls it on boot when
// DB_POSTGRES_AUTO_MIGRATE is set.
func Up(config *config.Config) error {
	return Runner(config, ActionUp)
}
