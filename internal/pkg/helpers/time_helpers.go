package helpers

import (
	"time"

	"github.com/rs/zerolog/log"
)

// DisplayDateFormat is the dd-mm-yyyy layout used in exports and filenames.
const DisplayDateFormat = "02-01-2006"

// ParseDuration parses a duration string, returns default duration on error.
func ParseDuration(durationStr string, defaultDuration time.Duration) time.Duration {
	duration, err := time.ParseDuration(durationStr)
	if err != nil {
		log.Warn().Err(err).Str("durationStr", durationStr).Dur("defaultDuration", defaultDuration).Msg("Failed to parse duration string, using default")
		return defaultDuration
	}
	return duration
}

// FormatDisplayDate renders a date as dd-mm-yyyy.
func FormatDisplayDate(t time.Time) string {
	return t.Format(DisplayDateFormat)
}

// ParseISODate parses a yyyy-mm-dd date string.
func ParseISODate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}
