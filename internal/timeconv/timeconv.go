// Package timeconv converts between the gateway's unix timestamps and the
// human-readable form the CLI accepts and prints.
package timeconv

import (
	"fmt"
	"time"
)

// Layout is the human-readable timestamp form, e.g. "2021-01-02 10:00:00".
const Layout = "2006-01-02 15:04:05"

// DefaultZone is the timezone used when the caller does not pick one.
const DefaultZone = "Europe/Berlin"

// ToUnix parses a human-readable timestamp in the named IANA timezone and
// returns its unix time.
func ToUnix(value, zone string) (int64, error) {
	loc, err := loadZone(zone)
	if err != nil {
		return 0, err
	}
	t, err := time.ParseInLocation(Layout, value, loc)
	if err != nil {
		return 0, fmt.Errorf("timeconv: %q does not match %q: %w", value, Layout, err)
	}
	return t.Unix(), nil
}

// FromUnix renders a unix timestamp in the named IANA timezone.
func FromUnix(timestamp int64, zone string) (string, error) {
	loc, err := loadZone(zone)
	if err != nil {
		return "", err
	}
	return time.Unix(timestamp, 0).In(loc).Format(Layout), nil
}

func loadZone(zone string) (*time.Location, error) {
	if zone == "" {
		zone = DefaultZone
	}
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return nil, fmt.Errorf("timeconv: unknown timezone %q: %w", zone, err)
	}
	return loc, nil
}
