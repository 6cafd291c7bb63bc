package departureboard

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TimeOfDay is the time elapsed since midnight.
type TimeOfDay time.Duration

// NewTimeOfDay builds a TimeOfDay from its clock components.
func NewTimeOfDay(hour, min, sec int) TimeOfDay {
	return TimeOfDay(time.Duration(hour)*time.Hour +
		time.Duration(min)*time.Minute +
		time.Duration(sec)*time.Second)
}

// TimeOfDayOf returns the wall clock time of day of t, in t's location,
// including the fractional second.
func TimeOfDayOf(t time.Time) TimeOfDay {
	h, m, s := t.Clock()
	return NewTimeOfDay(h, m, s) + TimeOfDay(t.Nanosecond())
}

// ParseTimeOfDay parses "H:MM" or "H:MM:SS". Components may be one or two
// digits. Hours run 0-23, minutes and seconds 0-59.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("time of day '%s' not in h:mm[:ss] form", s)
	}

	limits := []int{23, 59, 59}
	var v [3]int
	for i, p := range parts {
		if len(p) < 1 || len(p) > 2 {
			return 0, fmt.Errorf("time of day '%s' has a bad component '%s'", s, p)
		}
		if strings.TrimLeft(p, "0123456789") != "" {
			return 0, fmt.Errorf("time of day '%s' has a bad component '%s'", s, p)
		}
		n, err := strconv.Atoi(p)
		if err != nil || n > limits[i] {
			return 0, fmt.Errorf("time of day '%s' has a bad component '%s'", s, p)
		}
		v[i] = n
	}
	return NewTimeOfDay(v[0], v[1], v[2]), nil
}

// String renders the time of day as HH:MM.
func (o TimeOfDay) String() string {
	d := time.Duration(o)
	h := int(d/time.Hour) % 24
	m := int(d%time.Hour) / int(time.Minute)
	return fmt.Sprintf("%02d:%02d", h, m)
}

// Departure is one scheduled train leaving the station.
type Departure struct {
	Time        TimeOfDay
	Destination string
	Platform    string
	ServiceType string
}

// Timetable holds departures in the order they appeared in the source file.
// It is not sorted by time.
type Timetable []Departure
