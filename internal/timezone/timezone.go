package timezone

import (
	"sync/atomic"
	"time"
)

const DefaultTimezone = "America/Sao_Paulo"

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

var shopTZ atomic.Value

func init() {
	shopTZ.Store(DefaultTimezone)
}

// SetDefault changes the shop timezone used by Now and the parse helpers.
// Invalid names are ignored.
func SetDefault(tz string) {
	if IsValid(tz) {
		shopTZ.Store(tz)
	}
}

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	loc, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func Shop() *time.Location {
	return Location(shopTZ.Load().(string))
}

func Now() time.Time {
	return time.Now().In(Shop())
}

func ParseDate(date string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, date, Shop())
}

func ParseDateTime(date, clock string) (time.Time, error) {
	return time.ParseInLocation(DateLayout+" "+ClockLayout, date+" "+clock, Shop())
}

func Today() string {
	return Now().Format(DateLayout)
}
