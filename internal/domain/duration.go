package domain

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ErrMalformedDuration is returned when a duration does not follow the
// ISO-8601 duration grammar.
var ErrMalformedDuration = errors.New("malformed duration")

// Duration is a signed calendar span as written in iCalendar DURATION values.
// Date components are applied as calendar units, so one day across a DST
// change is not necessarily 24 hours.
type Duration struct {
	Negative bool
	Years    int
	Months   int
	Weeks    int
	Days     int
	Hours    int
	Minutes  int
	Seconds  int
}

// AddTo returns t shifted by d.
func (d Duration) AddTo(t time.Time) time.Time {
	sign := 1
	if d.Negative {
		sign = -1
	}
	t = t.AddDate(sign*d.Years, sign*d.Months, sign*(d.Weeks*7+d.Days))
	clock := time.Duration(d.Hours)*time.Hour +
		time.Duration(d.Minutes)*time.Minute +
		time.Duration(d.Seconds)*time.Second
	return t.Add(time.Duration(sign) * clock)
}

// IsZero reports whether every component is zero.
func (d Duration) IsZero() bool {
	return d.Years == 0 && d.Months == 0 && d.Weeks == 0 && d.Days == 0 &&
		d.Hours == 0 && d.Minutes == 0 && d.Seconds == 0
}

// String renders d in ISO-8601 form, e.g. "-P1DT2H".
func (d Duration) String() string {
	var b strings.Builder
	if d.Negative {
		b.WriteByte('-')
	}
	b.WriteByte('P')
	writePart(&b, d.Years, 'Y')
	writePart(&b, d.Months, 'M')
	writePart(&b, d.Weeks, 'W')
	writePart(&b, d.Days, 'D')
	if d.Hours != 0 || d.Minutes != 0 || d.Seconds != 0 {
		b.WriteByte('T')
		writePart(&b, d.Hours, 'H')
		writePart(&b, d.Minutes, 'M')
		writePart(&b, d.Seconds, 'S')
	}
	if d.IsZero() {
		b.WriteString("T0S")
	}
	return b.String()
}

func writePart(b *strings.Builder, n int, unit byte) {
	if n == 0 {
		return
	}
	b.WriteString(strconv.Itoa(n))
	b.WriteByte(unit)
}

var durationPattern = regexp.MustCompile(
	`^([+-])?P(?:(\d+)Y)?(?:(\d+)M)?(?:(\d+)W)?(?:(\d+)D)?(T(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?)?$`)

// ParseDuration parses an ISO-8601 duration as used by iCalendar DURATION
// values, e.g. "PT1H30M", "-P1W" or "P1DT12H". Year and month designators
// are accepted as well.
func ParseDuration(s string) (Duration, error) {
	m := durationPattern.FindStringSubmatch(s)
	if m == nil {
		return Duration{}, fmt.Errorf("%w: %q", ErrMalformedDuration, s)
	}

	timePart := m[6]
	if timePart == "T" {
		return Duration{}, fmt.Errorf("%w: %q has no time component after T", ErrMalformedDuration, s)
	}

	var parts [7]int
	seen := false
	for i, idx := range []int{2, 3, 4, 5, 7, 8, 9} {
		if m[idx] == "" {
			continue
		}
		n, err := strconv.Atoi(m[idx])
		if err != nil {
			return Duration{}, fmt.Errorf("%w: %q: %v", ErrMalformedDuration, s, err)
		}
		parts[i] = n
		seen = true
	}
	if !seen {
		return Duration{}, fmt.Errorf("%w: %q has no components", ErrMalformedDuration, s)
	}

	if err := checkRange(parts); err != nil {
		return Duration{}, fmt.Errorf("%w: %q: %v", ErrMalformedDuration, s, err)
	}

	return Duration{
		Negative: m[1] == "-",
		Years:    parts[0],
		Months:   parts[1],
		Weeks:    parts[2],
		Days:     parts[3],
		Hours:    parts[4],
		Minutes:  parts[5],
		Seconds:  parts[6],
	}, nil
}

// maxClockSeconds is the largest hour/minute/second total that still fits a
// time.Duration.
const maxClockSeconds = math.MaxInt64 / int64(time.Second)

// checkRange rejects components that AddTo cannot apply without overflow.
// parts is ordered years, months, weeks, days, hours, minutes, seconds.
func checkRange(parts [7]int) error {
	weeks, days := int64(parts[2]), int64(parts[3])
	if weeks > (math.MaxInt32-days)/7 || days > math.MaxInt32 {
		return errors.New("day span out of range")
	}
	if parts[0] > math.MaxInt32 || parts[1] > math.MaxInt32 {
		return errors.New("year or month span out of range")
	}
	hours, minutes, seconds := int64(parts[4]), int64(parts[5]), int64(parts[6])
	if hours > maxClockSeconds/3600 || minutes > maxClockSeconds/60 || seconds > maxClockSeconds ||
		hours*3600+minutes*60+seconds > maxClockSeconds {
		return errors.New("time span out of range")
	}
	return nil
}
