package id

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"time"
)

const readableDateTime = "20060102_150405"

// maxOffsetHours bounds the zone suffix to two digits.
const maxOffsetHours = 23

var readablePattern = regexp.MustCompile(`^(\d{4})(\d{2})(\d{2})_(\d{2})(\d{2})(\d{2})(\d{6})([+-])(\d{2})$`)

// ToReadable formats microseconds since the Unix epoch as
// YYYYMMDD_HHMMSSuuuuuu±HH, shown at the given zone offset.
//
// The offset is truncated toward zero to whole hours (and clamped to ±23) and
// that same value drives both the display shift and the suffix. Outside the
// displayed years 0000-9999 the year field widens and the result no longer
// parses; FormatReadable rejects those instead.
func ToReadable(tsMicros int64, offsetMinutes int) string {
	t, hours := readableTime(tsMicros, offsetMinutes)
	return formatReadable(t, hours)
}

// FormatReadable is ToReadable restricted to displayed years 0000-9999, the
// range FromReadable accepts. Anything else fails with ErrTimestampRange.
func FormatReadable(tsMicros int64, offsetMinutes int) (string, error) {
	t, hours := readableTime(tsMicros, offsetMinutes)
	if y := t.Year(); y < 0 || y > 9999 {
		return "", fmt.Errorf("%d us is year %d: %w", tsMicros, y, ErrTimestampRange)
	}
	return formatReadable(t, hours), nil
}

func readableTime(tsMicros int64, offsetMinutes int) (time.Time, int) {
	hours := offsetMinutes / 60
	if hours > maxOffsetHours {
		hours = maxOffsetHours
	} else if hours < -maxOffsetHours {
		hours = -maxOffsetHours
	}

	return time.UnixMicro(tsMicros).In(time.FixedZone("", hours*3600)), hours
}

func formatReadable(t time.Time, hours int) string {
	sign := byte('+')
	if hours < 0 {
		sign = '-'
		hours = -hours
	}
	return fmt.Sprintf("%s%06d%c%02d", t.Format(readableDateTime), t.Nanosecond()/1000, sign, hours)
}

// FromReadable parses the output of ToReadable back to microseconds since the
// Unix epoch.
func FromReadable(s string) (int64, error) {
	m := readablePattern.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("%q: %w", s, ErrMalformedReadable)
	}

	n := make([]int, 0, 8)
	for _, part := range []string{m[1], m[2], m[3], m[4], m[5], m[6], m[7], m[9]} {
		v, err := strconv.Atoi(part)
		if err != nil {
			return 0, fmt.Errorf("%q: %w", s, ErrMalformedReadable)
		}
		n = append(n, v)
	}
	year, month, day, hour, minute, sec, micro, zoneHours := n[0], time.Month(n[1]), n[2], n[3], n[4], n[5], n[6], n[7]
	if zoneHours > maxOffsetHours {
		return 0, fmt.Errorf("%q: zone offset %d: %w", s, zoneHours, ErrMalformedReadable)
	}
	if m[8] == "-" {
		zoneHours = -zoneHours
	}

	t := time.Date(year, month, day, hour, minute, sec, micro*1000, time.FixedZone("", zoneHours*3600))
	// time.Date normalizes out of range fields (Feb 30, 24:00), reject those.
	if t.Year() != year || t.Month() != month || t.Day() != day ||
		t.Hour() != hour || t.Minute() != minute || t.Second() != sec {
		return 0, fmt.Errorf("%q: calendar fields out of range: %w", s, ErrMalformedReadable)
	}
	return t.UnixMicro(), nil
}

// ReadableTick formats a tick of this scheme's unit with FormatReadable.
func (s *Scheme) ReadableTick(tick int64, offsetMinutes int) (string, error) {
	if tick > math.MaxInt64/1000 || tick < math.MinInt64/1000 {
		return "", fmt.Errorf("%s tick %d: %w", s.name, tick, ErrTimestampRange)
	}
	return FormatReadable(s.unit.Micros(tick), offsetMinutes)
}
