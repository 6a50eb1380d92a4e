package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	clockRegex    = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)
	dateTimeRegex = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})[ tT](\d{1,2}):(\d{2})$`)
	agoRegex      = regexp.MustCompile(`^(\d+)\s*(s|sec|secs|second|seconds|m|min|mins|minute|minutes|h|hour|hours)\s+ago$`)
)

// ParseWhen parses the time given to --at. Times are local to now's location
// and the result is in UTC, truncated to the second.
// Supported formats:
// - "now" or empty
// - hh:mm (e.g., "09:15", today)
// - yyyy-mm-dd hh:mm (e.g., "2022-07-15 09:15")
// - X units ago (e.g., "10 minutes ago", "2h ago")
func ParseWhen(input string, now time.Time) (time.Time, error) {
	input = strings.ToLower(strings.TrimSpace(input))
	if input == "" || input == "now" {
		return now.UTC().Truncate(time.Second), nil
	}

	if when, err := parseClock(input, now); err == nil {
		return when.UTC(), nil
	}

	if when, err := parseDateTime(input, now.Location()); err == nil {
		return when.UTC(), nil
	}

	if when, err := parseAgo(input, now); err == nil {
		return when.UTC().Truncate(time.Second), nil
	}

	return time.Time{}, fmt.Errorf("invalid time %q. Use: now, hh:mm, yyyy-mm-dd hh:mm, or X minutes/hours ago", input)
}

// parseClock parses hh:mm as a time today
func parseClock(input string, now time.Time) (time.Time, error) {
	matches := clockRegex.FindStringSubmatch(input)
	if len(matches) != 3 {
		return time.Time{}, fmt.Errorf("invalid clock format")
	}

	hour, minute, err := hourMinute(matches[1], matches[2])
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location()), nil
}

// parseDateTime parses yyyy-mm-dd hh:mm in loc
func parseDateTime(input string, loc *time.Location) (time.Time, error) {
	matches := dateTimeRegex.FindStringSubmatch(input)
	if len(matches) != 4 {
		return time.Time{}, fmt.Errorf("invalid date format")
	}

	date, err := time.ParseInLocation("2006-01-02", matches[1], loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date")
	}
	hour, minute, err := hourMinute(matches[2], matches[3])
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, loc), nil
}

// parseAgo parses relative times like "10 minutes ago"
func parseAgo(input string, now time.Time) (time.Time, error) {
	matches := agoRegex.FindStringSubmatch(input)
	if len(matches) != 3 {
		return time.Time{}, fmt.Errorf("invalid relative time format")
	}

	amount, err := strconv.Atoi(matches[1])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid number")
	}

	var unit time.Duration
	switch matches[2] {
	case "s", "sec", "secs", "second", "seconds":
		unit = time.Second
	case "m", "min", "mins", "minute", "minutes":
		unit = time.Minute
	default:
		unit = time.Hour
	}

	if amount > 7*24 && unit == time.Hour { // Max 1 week back
		return time.Time{}, fmt.Errorf("hours must be between 0 and 168")
	}
	return now.Add(-time.Duration(amount) * unit), nil
}

func hourMinute(hh, mm string) (int, int, error) {
	hour, err := strconv.Atoi(hh)
	if err != nil || hour > 23 {
		return 0, 0, fmt.Errorf("hour must be between 0 and 23")
	}
	minute, err := strconv.Atoi(mm)
	if err != nil || minute > 59 {
		return 0, 0, fmt.Errorf("minute must be between 0 and 59")
	}
	return hour, minute, nil
}
