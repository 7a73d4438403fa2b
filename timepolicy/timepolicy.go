// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package timepolicy

import (
	"strings"
	"time"
)

// Location is the civil timezone every stored timestamp is read in.
// Asia/Jakarta has had no DST since 1964, so a fixed offset is exact.
var Location = time.FixedZone("Asia/Jakarta", 7*60*60)

// GracePeriod is how long results stay visible after voting closes.
const GracePeriod = 24 * time.Hour

// Layouts used for persisted and form-submitted values
const (
	StorageLayout   = "2006-01-02 15:04:05"
	FormLayout      = "2006-01-02 15:04"
	// FormInputLayout accepts FormLayout values with unpadded fields
	FormInputLayout = "2006-1-2 15:4"
	DisplayLayout   = "02 / 01 / 2006 15:04"
)

// Naive layouts, tried in order. Values matching these carry no zone and
// are taken as wall-clock time in Location.
var naiveLayouts = []string{
	StorageLayout,
	FormLayout,
	FormInputLayout,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// Zoned layouts are converted into Location.
var zonedLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05Z07:00",
}

// State is the voting window state of an election
type State int

const (
	StateOpen State = iota
	StateClosed
	StateExpired
)

func (s State) String() string {
	switch s {
	case StateOpen:
		return "open"
	case StateClosed:
		return "closed"
	case StateExpired:
		return "expired"
	default:
		return "unknown"
	}
}

// Now returns the current instant in Location
func Now() time.Time {
	return time.Now().In(Location)
}

// Parse interprets s as a timestamp. It never fails loudly: the second
// return value is false when no layout matched.
func Parse(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, s, Location); err == nil {
			return t, true
		}
	}

	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.In(Location), true
		}
	}

	return time.Time{}, false
}

// Format renders t in the storage layout, in Location
func Format(t time.Time) string {
	return t.In(Location).Format(StorageLayout)
}

// PurgeAt is the instant after which an election and its rows are deleted
func PurgeAt(end time.Time) time.Time {
	return end.Add(GracePeriod)
}

// StateAt derives the window state from now and the voting end time.
func StateAt(now, end time.Time) State {
	switch {
	case now.Before(end):
		return StateOpen
	case now.After(PurgeAt(end)):
		return StateExpired
	default:
		return StateClosed
	}
}

// Evaluate parses raw and derives the window state. An unparseable end
// time is reported as StateOpen with ok=false; voters are never locked
// out because of a bad timestamp.
func Evaluate(now time.Time, raw string) (state State, end time.Time, ok bool) {
	end, ok = Parse(raw)
	if !ok {
		return StateOpen, time.Time{}, false
	}
	return StateAt(now, end), end, true
}
