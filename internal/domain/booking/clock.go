package booking

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
)

// Clock is a wall-clock time of day in minutes since midnight.
type Clock int

const minutesPerDay = 24 * 60

// ParseClock accepts "HH:MM" and "HH:MM:SS"; seconds are dropped.
func ParseClock(s string) (Clock, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("invalid clock %q", s)
	}

	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 || len(parts[0]) > 2 {
		return 0, fmt.Errorf("invalid hour in %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 || len(parts[1]) != 2 {
		return 0, fmt.Errorf("invalid minute in %q", s)
	}
	if len(parts) == 3 {
		if sec, err := strconv.Atoi(parts[2]); err != nil || sec < 0 || sec > 59 {
			return 0, fmt.Errorf("invalid second in %q", s)
		}
	}

	return Clock(h*60 + m), nil
}

// NormalizeClock returns s as "HH:MM" or a validation error.
func NormalizeClock(s string) (string, error) {
	c, err := ParseClock(s)
	if err != nil {
		return "", httperr.Validation("invalid_time", "Time must be HH:MM.")
	}
	return c.String(), nil
}

func (c Clock) Add(minutes int) Clock {
	return c + Clock(minutes)
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

// Window is a half-open interval [Start, End).
type Window struct {
	Start Clock
	End   Clock
}

func (w Window) Contains(c Clock) bool {
	return c >= w.Start && c < w.End
}

func ParseWindow(start, end string) (Window, error) {
	s, err := ParseClock(start)
	if err != nil {
		return Window{}, err
	}
	e, err := ParseClock(end)
	if err != nil {
		return Window{}, err
	}
	return Window{Start: s, End: e}, nil
}

// ValidWindow checks start < end, both parseable.
func ValidWindow(start, end string) (Window, error) {
	w, err := ParseWindow(start, end)
	if err != nil {
		return Window{}, httperr.Validation("invalid_time", "Times must be HH:MM.")
	}
	if w.Start >= w.End {
		return Window{}, httperr.Validation("invalid_time_range", "Start time must be before end time.")
	}
	return w, nil
}
