package weekly

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tankwatch/internal/structures"
)

func calendarConfig(anchor string) *structures.Config {
	return &structures.Config{
		Composite: structures.CompositeConfig{
			AnchorDate:   anchor,
			IntervalDays: 7,
		},
	}
}

func TestNewCalendar_RequiresWednesday(t *testing.T) {
	// 2024-01-01 is a Monday
	_, err := NewCalendar(calendarConfig("2024-01-01"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Wednesday")
	assert.Contains(t, err.Error(), "Monday")
}

func TestNewCalendar_InvalidDate(t *testing.T) {
	_, err := NewCalendar(calendarConfig("not-a-date"))
	assert.Error(t, err)
}

func TestNewCalendar_ValidAnchor(t *testing.T) {
	cal, err := NewCalendar(calendarConfig("2024-01-03"))
	require.NoError(t, err)
	assert.Equal(t, time.Wednesday, cal.Anchor().Weekday())
}

func TestCalendar_WeekFor_FirstWindow(t *testing.T) {
	cal, err := NewCalendar(calendarConfig("2024-01-03"))
	require.NoError(t, err)

	// Anchor day itself belongs to window 0
	key, ord, ok := cal.WeekFor(time.Date(2024, 1, 3, 10, 30, 0, 0, time.UTC))
	require.True(t, ok)
	assert.Equal(t, "2024-01-03", key)
	assert.Equal(t, uint32(0), ord)

	// Last day of the first window
	key, ord, ok = cal.WeekFor(time.Date(2024, 1, 9, 23, 59, 0, 0, time.UTC))
	require.True(t, ok)
	assert.Equal(t, "2024-01-03", key)
	assert.Equal(t, uint32(0), ord)
}

func TestCalendar_WeekFor_LaterWindows(t *testing.T) {
	cal, err := NewCalendar(calendarConfig("2024-01-03"))
	require.NoError(t, err)

	key, ord, ok := cal.WeekFor(time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC))
	require.True(t, ok)
	assert.Equal(t, "2024-01-10", key)
	assert.Equal(t, uint32(1), ord)

	key, ord, ok = cal.WeekFor(time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC))
	require.True(t, ok)
	assert.Equal(t, "2024-03-13", key)
	assert.Equal(t, uint32(10), ord)
}

func TestCalendar_WeekFor_BeforeAnchor(t *testing.T) {
	cal, err := NewCalendar(calendarConfig("2024-01-03"))
	require.NoError(t, err)

	_, _, ok := cal.WeekFor(time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC))
	assert.False(t, ok)
}

func TestCalendar_WeekFor_ExcludeAnchorDay(t *testing.T) {
	conf := calendarConfig("2024-01-03")
	conf.Composite.ExcludeAnchorDay = true
	cal, err := NewCalendar(conf)
	require.NoError(t, err)

	// Wednesday scenes are dropped
	_, _, ok := cal.WeekFor(time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC))
	assert.False(t, ok)

	// Thursday scenes still land in the window
	key, _, ok := cal.WeekFor(time.Date(2024, 1, 11, 12, 0, 0, 0, time.UTC))
	require.True(t, ok)
	assert.Equal(t, "2024-01-10", key)
}

func TestCalendar_Ordinal_RoundTrip(t *testing.T) {
	cal, err := NewCalendar(calendarConfig("2024-01-03"))
	require.NoError(t, err)

	key, ord, ok := cal.WeekFor(time.Date(2024, 5, 20, 9, 0, 0, 0, time.UTC))
	require.True(t, ok)

	got, err := cal.Ordinal(key)
	require.NoError(t, err)
	assert.Equal(t, ord, got)
}

func TestCalendar_Ordinal_Misaligned(t *testing.T) {
	cal, err := NewCalendar(calendarConfig("2024-01-03"))
	require.NoError(t, err)

	_, err = cal.Ordinal("2024-01-04")
	assert.Error(t, err)

	_, err = cal.Ordinal("2023-12-27")
	assert.Error(t, err)
}

func TestCalendar_Windows(t *testing.T) {
	cal, err := NewCalendar(calendarConfig("2024-01-03"))
	require.NoError(t, err)

	windows := cal.Windows(time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, []string{"2024-01-03", "2024-01-10", "2024-01-17", "2024-01-24"}, windows)
}

func TestCalendar_Windows_EmptyBeforeAnchor(t *testing.T) {
	cal, err := NewCalendar(calendarConfig("2024-01-03"))
	require.NoError(t, err)

	assert.Empty(t, cal.Windows(time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)))
}
