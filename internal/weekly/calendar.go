package weekly

import (
	"fmt"
	"time"

	"tankwatch/internal/structures"
)

const dateLayout = "2006-01-02"

// EIAReleaseWeekday is the weekday the weekly windows anchor on.
const EIAReleaseWeekday = time.Wednesday

// Calendar maps scene timestamps onto the weekly windows anchored on the
// configured start date.
type Calendar struct {
	anchor           time.Time
	intervalDays     int
	excludeAnchorDay bool
}

func NewCalendar(conf *structures.Config) (*Calendar, error) {
	anchor, err := time.Parse(dateLayout, conf.Composite.AnchorDate)
	if err != nil {
		return nil, fmt.Errorf("anchor date: %w", err)
	}
	if anchor.Weekday() != EIAReleaseWeekday {
		return nil, fmt.Errorf("anchor date must be a %s, got %s %s",
			EIAReleaseWeekday, anchor.Weekday(), anchor.Format(dateLayout))
	}

	intervalDays := conf.Composite.IntervalDays
	if intervalDays <= 0 {
		intervalDays = 7
	}

	return &Calendar{
		anchor:           anchor,
		intervalDays:     intervalDays,
		excludeAnchorDay: conf.Composite.ExcludeAnchorDay,
	}, nil
}

func (c *Calendar) Anchor() time.Time {
	return c.anchor
}

// WeekFor places a timestamp into its window. ok is false for timestamps
// before the anchor, and for anchor-weekday scenes when the calendar is
// configured to exclude the release day itself.
func (c *Calendar) WeekFor(t time.Time) (key string, ordinal uint32, ok bool) {
	t = t.UTC()
	if t.Before(c.anchor) {
		return "", 0, false
	}
	if c.excludeAnchorDay && t.Weekday() == c.anchor.Weekday() {
		return "", 0, false
	}

	days := int(t.Sub(c.anchor).Hours() / 24)
	ord := days / c.intervalDays
	start := c.anchor.AddDate(0, 0, ord*c.intervalDays)
	return start.Format(dateLayout), uint32(ord), true
}

// Ordinal converts a week key back to its window ordinal.
func (c *Calendar) Ordinal(week string) (uint32, error) {
	start, err := time.Parse(dateLayout, week)
	if err != nil {
		return 0, err
	}
	if start.Before(c.anchor) {
		return 0, fmt.Errorf("week %s predates anchor %s", week, c.anchor.Format(dateLayout))
	}
	days := int(start.Sub(c.anchor).Hours() / 24)
	if days%c.intervalDays != 0 {
		return 0, fmt.Errorf("week %s is not aligned to the %d-day grid", week, c.intervalDays)
	}
	return uint32(days / c.intervalDays), nil
}

// Windows lists the window start keys from the anchor up to end, exclusive.
func (c *Calendar) Windows(end time.Time) []string {
	var windows []string
	for current := c.anchor; current.Before(end); current = current.AddDate(0, 0, c.intervalDays) {
		windows = append(windows, current.Format(dateLayout))
	}
	return windows
}
