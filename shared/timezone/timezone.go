package timezone

import (
	"sync/atomic"
	"time"

	"hotelos/config"

	"github.com/rs/zerolog/log"
)

var appLocation atomic.Pointer[time.Location]

func init() {
	SetLocation(Load(config.Get().App.Timezone))
}

// Load resolves an IANA zone name such as "Asia/Kolkata". An empty or
// unknown name falls back to UTC.
func Load(name string) *time.Location {
	if name == "" {
		log.Warn().Msg("No timezone configured, using UTC")

		return time.UTC
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Error().Err(err).Str("timezone", name).Msg("Unknown timezone, using UTC")

		return time.UTC
	}

	return loc
}

// SetLocation replaces the zone used for "now" and for display.
func SetLocation(loc *time.Location) {
	if loc == nil {
		loc = time.UTC
	}

	appLocation.Store(loc)
	log.Debug().Str("timezone", loc.String()).Msg("Application timezone set")
}

// GetLocation returns the application timezone, UTC until one is set.
func GetLocation() *time.Location {
	if loc := appLocation.Load(); loc != nil {
		return loc
	}

	return time.UTC
}

// Now returns the current time in the application timezone.
func Now() time.Time {
	return time.Now().In(GetLocation())
}

func ToAppTime(t time.Time) time.Time {
	return t.In(GetLocation())
}

// Parse reads value as wall-clock time in the application timezone.
func Parse(layout, value string) (time.Time, error) {
	return time.ParseInLocation(layout, value, GetLocation())
}

func Format(t time.Time, layout string) string {
	return ToAppTime(t).Format(layout)
}
