// Package timezone keeps the application time zone, read from APP_TIMEZONE when the
// package is imported and defaulting to UTC.
//
// Booking creation timestamps and room metadata come from Now, which services receive
// as a Clock so tests can pin it. Booking dates and clock times are wall clock values and
// are never converted between zones.
//
//	now := timezone.Now()
//	stamp := timezone.Format(now, time.RFC3339)
//	day, err := timezone.Parse("2006-01-02", "2024-01-01")
package timezone
