package scoresvc

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FormatTime renders a run length as zero-padded mm:ss. Minutes keep
// growing past 99; negative durations render as 00:00.
func FormatTime(d time.Duration) string {
	secs := max(int(d/time.Second), 0)
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}

// ParseTime reads a mm:ss string back into a duration.
func ParseTime(s string) (time.Duration, error) {
	m, sec, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return 0, fmt.Errorf("scoresvc: bad time %q", s)
	}
	mins, err := strconv.Atoi(m)
	if err != nil || mins < 0 {
		return 0, fmt.Errorf("scoresvc: bad minutes in %q", s)
	}
	secs, err := strconv.Atoi(sec)
	if err != nil || secs < 0 || secs > 59 {
		return 0, fmt.Errorf("scoresvc: bad seconds in %q", s)
	}
	return time.Duration(mins)*time.Minute + time.Duration(secs)*time.Second, nil
}

// Ordinal formats n as 1st, 2nd, 3rd, 4th, 11th, 21st...
func Ordinal(n int) string {
	suffix := "th"
	switch n % 100 {
	case 11, 12, 13:
	default:
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return strconv.Itoa(n) + suffix
}
