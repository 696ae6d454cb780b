package timezone

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"

	"roombook/config"
)

var appLocation atomic.Pointer[time.Location]

// Clock supplies the current time. Services take a Clock so tests can pin timestamps.
type Clock func() time.Time

// NewClock returns the application clock backed by Now.
func NewClock() Clock {
	return Now
}

func init() {
	name := config.Get().App.Timezone
	if name == "" {
		log.Warn().Msg("No timezone configured, using UTC as default")

		name = "UTC"
	}

	if err := SetLocation(name); err != nil {
		log.Error().
			Err(err).
			Str("timezone", name).
			Msg("Failed to load timezone, falling back to UTC. Use IANA names like 'Asia/Jakarta' or 'UTC'")

		return
	}

	log.Info().Str("timezone", name).Msg("Application timezone initialized")
}

// SetLocation switches the application timezone. An unknown name leaves UTC in place.
func SetLocation(name string) error {
	loc, err := time.LoadLocation(name)
	if err != nil {
		appLocation.Store(time.UTC)

		return fmt.Errorf("failed to load timezone %q: %w", name, err)
	}

	appLocation.Store(loc)

	return nil
}

// GetLocation returns the current application timezone location
func GetLocation() *time.Location {
	if loc := appLocation.Load(); loc != nil {
		return loc
	}

	return time.UTC
}

// Now returns the current time in the application timezone
func Now() time.Time {
	return time.Now().In(GetLocation())
}

// ToAppTime converts a time to the application timezone
func ToAppTime(t time.Time) time.Time {
	return t.In(GetLocation())
}

// Parse parses a time string in the application timezone
func Parse(layout, value string) (time.Time, error) {
	return time.ParseInLocation(layout, value, GetLocation()) //nolint:wrapcheck
}

// Format formats a time in the application timezone
func Format(t time.Time, layout string) string {
	return ToAppTime(t).Format(layout)
}
