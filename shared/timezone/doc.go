// Package timezone pins the application to one IANA location (APP_TIMEZONE, default UTC).
//
// Services never call time.Now directly; they take a Clock:
//
//	clock := timezone.NewClock()             // wall clock in the app location
//	clock := timezone.FixedClock(someTime)   // tests
//	today := timezone.Day(clock.Now())       // calendar day as UTC midnight
//
// Day is what booking dates are compared against, so "today" follows the terminal's
// local calendar even when the process runs in UTC.
package timezone
