package util

import (
    "strconv"
    "time"
)

// ParseTime tries RFC3339, RFC3339Nano, and unix seconds. Returns (t, true) if any worked.
func ParseTime(s string) (time.Time, bool) {
    if s == "" {
        return time.Time{}, false
    }
    if t, err := time.Parse(time.RFC3339, s); err == nil {
        return t, true
    }
    if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
        return t, true
    }
    if ts, err := strconv.ParseInt(s, 10, 64); err == nil && ts > 0 {
        return time.Unix(ts, 0), true
    }
    return time.Time{}, false
}

// ParseTimeDefault parses time or returns default if empty/invalid.
func ParseTimeDefault(s string, def time.Time) time.Time {
    if t, ok := ParseTime(s); ok {
        return t
    }
    return def
}

// ParseLocalDateTime parses a civil date ("2006-01-02") plus wall clock
// ("15:04" or "15:04:05") at the given UTC offset in minutes.
func ParseLocalDateTime(date, clock string, offsetMin int) (time.Time, bool) {
    if date == "" {
        return time.Time{}, false
    }
    if clock == "" {
        clock = "12:00" // unknown birth time defaults to noon
    }
    loc := time.FixedZone("", offsetMin*60)
    for _, layout := range []string{"2006-01-02 15:04:05", "2006-01-02 15:04"} {
        if t, err := time.ParseInLocation(layout, date+" "+clock, loc); err == nil {
            return t.UTC(), true
        }
    }
    return time.Time{}, false
}