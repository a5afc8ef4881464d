package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDuration(t *testing.T) {
	assert.Equal(t, 90*time.Minute, ParseDuration("90m", time.Hour))
	assert.Equal(t, time.Hour, ParseDuration("not-a-duration", time.Hour))
	assert.Equal(t, 720*time.Hour, ParseDuration("", 720*time.Hour))
}

func TestFormatDisplayDate(t *testing.T) {
	d := time.Date(2024, time.March, 5, 10, 30, 0, 0, time.UTC)
	assert.Equal(t, "05-03-2024", FormatDisplayDate(d))
}

func TestParseISODate(t *testing.T) {
	d, err := ParseISODate("2024-03-05")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC), d)

	_, err = ParseISODate("05-03-2024")
	assert.Error(t, err)

	_, err = ParseISODate("2024-02-30")
	assert.Error(t, err)
}
