package escrow

import (
	"time"

	"haunters/config"
)

// Split is the commission breakdown of a released viewing fee.
type Split struct {
	HunterShare   float64
	PlatformShare float64
}

// SplitCommission splits a booking amount between the hunter and the platform
// using the configured hunter share.
func SplitCommission(cfg *config.Config, amount float64) Split {
	hunter := amount * cfg.Escrow.HunterShare

	return Split{
		HunterShare:   hunter,
		PlatformShare: amount - hunter,
	}
}

// AutoReleaseAt computes the deadline after which an unconfirmed viewing is
// force-released: scheduled start + viewing duration + grace period.
func AutoReleaseAt(cfg *config.Config, scheduledStart time.Time) time.Time {
	duration := time.Duration(cfg.Escrow.ViewingDurationMin) * time.Minute
	grace := time.Duration(cfg.Escrow.ReleaseGraceMin) * time.Minute

	return scheduledStart.Add(duration + grace)
}

// EndTime returns the scheduled end of a viewing that starts at the given
// wall-clock time, wrapping past midnight.
func EndTime(cfg *config.Config, startTime time.Time) time.Time {
	return startTime.Add(time.Duration(cfg.Escrow.ViewingDurationMin) * time.Minute)
}

// CombineDateTime merges a date-only value and a wall-clock time-only value
// into a single timestamp in the date's location.
func CombineDateTime(date, clock time.Time) time.Time {
	return time.Date(
		date.Year(), date.Month(), date.Day(),
		clock.Hour(), clock.Minute(), 0, 0,
		date.Location(),
	)
}
