package subtitle

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// MicroDVD files are really frame indexed. Units are read as centiseconds
// here, which matches the files this tool produces but is only an
// approximation for files authored against a real frame rate.
const subUnit = 10 * time.Millisecond

var (
	// a third fraction digit is accepted and truncated to centiseconds
	assTimeRegex = regexp.MustCompile(`^(\d+):(\d{2}):(\d{2})\.(\d{2})\d?$`)
	srtTimeRegex = regexp.MustCompile(`^(\d+):(\d{1,2}):(\d{1,2})[,.](\d{1,3})$`)
	vttTimeRegex = regexp.MustCompile(`^(?:(\d+):)?(\d{1,2}):(\d{1,2})\.(\d{1,3})$`)
)

// ParseTimecode converts a format specific timestamp into a duration.
func ParseTimecode(raw string, format Format) (time.Duration, error) {
	value := strings.TrimSpace(raw)
	fail := &TimecodeError{Format: format, Value: raw}

	switch format {
	case FormatASS:
		m := assTimeRegex.FindStringSubmatch(value)
		if m == nil {
			return 0, fail
		}
		d, err := clockDuration(m[1], m[2], m[3], m[4]+"0")
		if err != nil {
			return 0, fail
		}
		return d, nil
	case FormatSRT:
		m := srtTimeRegex.FindStringSubmatch(value)
		if m == nil {
			return 0, fail
		}
		d, err := clockDuration(m[1], m[2], m[3], padMillis(m[4]))
		if err != nil {
			return 0, fail
		}
		return d, nil
	case FormatVTT:
		m := vttTimeRegex.FindStringSubmatch(value)
		if m == nil {
			return 0, fail
		}
		hours := m[1]
		if hours == "" {
			hours = "0"
		}
		d, err := clockDuration(hours, m[2], m[3], padMillis(m[4]))
		if err != nil {
			return 0, fail
		}
		return d, nil
	case FormatSUB:
		units, err := strconv.ParseInt(value, 10, 64)
		if err != nil || units < 0 || units > math.MaxInt64/int64(subUnit) {
			return 0, fail
		}
		return time.Duration(units) * subUnit, nil
	default:
		return 0, unsupported(format)
	}
}

// FormatTimecode renders d in the canonical form of the format, truncating
// to the format's precision. Negative durations render as zero.
func FormatTimecode(d time.Duration, format Format) string {
	if d < 0 {
		d = 0
	}

	switch format {
	case FormatASS:
		hours, minutes, seconds := clockParts(d)
		centis := (d % time.Second) / (10 * time.Millisecond)
		return fmt.Sprintf("%d:%02d:%02d.%02d", hours, minutes, seconds, centis)
	case FormatSRT:
		hours, minutes, seconds := clockParts(d)
		millis := (d % time.Second) / time.Millisecond
		return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, seconds, millis)
	case FormatVTT:
		hours, minutes, seconds := clockParts(d)
		millis := (d % time.Second) / time.Millisecond
		return fmt.Sprintf("%02d:%02d:%02d.%03d", hours, minutes, seconds, millis)
	case FormatSUB:
		return strconv.FormatInt(SubUnits(d), 10)
	default:
		return ""
	}
}

// SubUnits converts a duration to MicroDVD units, rounding to the nearest unit.
func SubUnits(d time.Duration) int64 {
	return int64(math.Round(float64(d) / float64(subUnit)))
}

func clockParts(d time.Duration) (hours, minutes, seconds int64) {
	total := int64(d / time.Second)
	return total / 3600, (total / 60) % 60, total % 60
}

func clockDuration(hours, minutes, seconds, millis string) (time.Duration, error) {
	h, err := strconv.ParseInt(hours, 10, 64)
	if err != nil {
		return 0, err
	}
	m, err := strconv.Atoi(minutes)
	if err != nil {
		return 0, err
	}
	s, err := strconv.Atoi(seconds)
	if err != nil {
		return 0, err
	}
	ms, err := strconv.Atoi(millis)
	if err != nil {
		return 0, err
	}
	if h > int64(math.MaxInt64/time.Hour)-1 {
		return 0, fmt.Errorf("hours out of range: %d", h)
	}

	return time.Duration(h)*time.Hour +
		time.Duration(m)*time.Minute +
		time.Duration(s)*time.Second +
		time.Duration(ms)*time.Millisecond, nil
}

// "5" means 500ms, "05" means 50ms
func padMillis(frac string) string {
	for len(frac) < 3 {
		frac += "0"
	}
	return frac
}
