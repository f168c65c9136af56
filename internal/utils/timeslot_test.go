package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidEmail(t *testing.T) {
	valid := []string{"ana@example.com", "a.b+tag@sub.domain.co"}
	for _, e := range valid {
		assert.True(t, ValidEmail(e), e)
	}
	invalid := []string{"", "plain", "no@tld", "spaces in@example.com", "@example.com"}
	for _, e := range invalid {
		assert.False(t, ValidEmail(e), e)
	}
}

func TestNormalizeSlot(t *testing.T) {
	cases := map[string]string{
		"20:00":    "20:00",
		"9:30":     "09:30",
		"09:30":    "09:30",
		"09:30:00": "09:30",
	}
	for in, want := range cases {
		got, err := NormalizeSlot(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	for _, in := range []string{"", "dinner", "25:00", "12:60", "12h30"} {
		_, err := NormalizeSlot(in)
		assert.Error(t, err, in)
	}
}

func TestNormalizeSlots(t *testing.T) {
	got, err := NormalizeSlots([]string{"21:30", "9:00", "21:30:00", "12:00"})
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "12:00", "21:30"}, got)

	_, err = NormalizeSlots([]string{"12:00", "noon"})
	assert.Error(t, err)
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-06-20")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC), d)

	for _, in := range []string{"", "20/06/2025", "2025-13-01", "2025-06-32"} {
		_, err := ParseDate(in)
		assert.Error(t, err, in)
	}
}

func TestDateOnly(t *testing.T) {
	in := time.Date(2025, 6, 20, 18, 45, 12, 999, time.FixedZone("CET", 3600))
	assert.Equal(t, time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC), DateOnly(in))
}

func TestSlotInstant(t *testing.T) {
	d := time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC)
	got, err := SlotInstant(d, "21:30")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 20, 21, 30, 0, 0, time.UTC), got)

	_, err = SlotInstant(d, "bad")
	assert.Error(t, err)
}
