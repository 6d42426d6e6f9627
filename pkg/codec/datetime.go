package codec

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// endTimeOffset is the assumed duration of an event when only the start time
// is known.
const endTimeOffset = 4 * time.Hour

// DefaultEventDate returns the coming Friday relative to now. When now falls
// on a Friday or Saturday the current week's Friday is no longer useful for
// planning, so the date skips to the following Friday.
func DefaultEventDate(now time.Time) time.Time {
	days := (int(time.Friday) - int(now.Weekday()) + 7) % 7
	if days == 0 {
		days = 7
	}
	day := now.AddDate(0, 0, days)
	return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, now.Location())
}

// CalculateEndTime adds a four hour offset to an "HH:MM" start time, wrapping
// at midnight with ordinary clock arithmetic. Empty or malformed input yields
// the empty string.
func CalculateEndTime(start string) string {
	start = strings.TrimSpace(start)
	if start == "" {
		return ""
	}
	hh, mm, ok := splitClock(start)
	if !ok {
		return ""
	}
	total := (time.Duration(hh)*time.Hour + time.Duration(mm)*time.Minute + endTimeOffset) % (24 * time.Hour)
	return fmt.Sprintf("%02d:%02d", int(total.Hours()), int(total.Minutes())%60)
}

func splitClock(value string) (hh, mm int, ok bool) {
	parts := strings.Split(value, ":")
	if len(parts) != 2 {
		return 0, 0, false
	}
	hh, err := strconv.Atoi(parts[0])
	if err != nil || hh < 0 || hh > 23 {
		return 0, 0, false
	}
	mm, err = strconv.Atoi(parts[1])
	if err != nil || mm < 0 || mm > 59 {
		return 0, 0, false
	}
	return hh, mm, true
}
