// Package timezone keeps the hotel's local zone and the calendar-day helpers
// used for stay dates.
//
// Timestamps (created_at, payments, invoices) are instants and are shown in
// the zone from APP_TIMEZONE. Stay dates are calendar days: they are parsed
// from YYYY-MM-DD and normalised to UTC midnight by Date, so a booking's
// nights never depend on the server zone.
//
//	in, err := timezone.ParseDate("2024-06-08")
//	nights := timezone.Nights(in, out)
//	stamp := timezone.Format(timezone.Now(), time.RFC3339)
package timezone
