package warranty

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	t, _ := time.Parse(DateLayout, s)
	return t
}

func TestDeriveOneYearTerm(t *testing.T) {
	w, ok := Derive("2024-03-15")
	require.True(t, ok)
	assert.Equal(t, Window{Start: "2024-03-15", End: "2025-03-15"}, w)

	assert.Equal(t, StatusExpired, StatusAt(w.End, day("2025-03-16")))
	assert.Equal(t, StatusActive, StatusAt(w.End, day("2025-03-14")))
}

func TestDeriveLeapDayClampsToFebruary28(t *testing.T) {
	w, ok := Derive("2024-02-29")
	require.True(t, ok)
	assert.Equal(t, "2025-02-28", w.End)
}

func TestDeriveAcceptsTimestamps(t *testing.T) {
	w, ok := Derive("2024-03-15T18:30:00Z")
	require.True(t, ok)
	assert.Equal(t, "2024-03-15", w.Start)

	w, ok = Derive("2024-03-15 10:00")
	require.True(t, ok)
	assert.Equal(t, "2025-03-15", w.End)
}

func TestDeriveRejectsGarbage(t *testing.T) {
	_, ok := Derive("")
	assert.False(t, ok)
	_, ok = Derive("15/03/2024")
	assert.False(t, ok)
}

func TestStatusAtEndDateIsInclusive(t *testing.T) {
	now := time.Date(2025, time.March, 15, 23, 59, 0, 0, time.FixedZone("IST", 5*3600+1800))
	assert.Equal(t, StatusActive, StatusAt("2025-03-15", now))
	assert.Equal(t, StatusExpired, StatusAt("2025-03-14", now))
}

func TestStatusAtMissingEnd(t *testing.T) {
	assert.Equal(t, StatusNone, StatusAt("", day("2025-01-01")))
	assert.Equal(t, StatusNone, StatusAt("not a date", day("2025-01-01")))
}

func TestFormatDisplay(t *testing.T) {
	assert.Equal(t, "15/03/2024", FormatDisplay("2024-03-15"))
	assert.Equal(t, "-", FormatDisplay(""))
}
