package calendar

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrUnknownConvention is returned when a business-day convention cannot be parsed.
var ErrUnknownConvention = errors.New("unknown business day convention")

// BusinessDayConvention rolls a date that falls on a non-business day.
type BusinessDayConvention string

const (
	Unadjusted                 BusinessDayConvention = "U"
	Following                  BusinessDayConvention = "F"
	ModifiedFollowing          BusinessDayConvention = "MF"
	Preceding                  BusinessDayConvention = "P"
	ModifiedPreceding          BusinessDayConvention = "MP"
	HalfMonthModifiedFollowing BusinessDayConvention = "HMF"
	Nearest                    BusinessDayConvention = "N"
)

var conventionNames = map[string]BusinessDayConvention{
	"u":                             Unadjusted,
	"unadjusted":                    Unadjusted,
	"f":                             Following,
	"following":                     Following,
	"mf":                            ModifiedFollowing,
	"modified_following":            ModifiedFollowing,
	"modifiedfollowing":             ModifiedFollowing,
	"p":                             Preceding,
	"preceding":                     Preceding,
	"mp":                            ModifiedPreceding,
	"modified_preceding":            ModifiedPreceding,
	"modifiedpreceding":             ModifiedPreceding,
	"hmf":                           HalfMonthModifiedFollowing,
	"half_month_modified_following": HalfMonthModifiedFollowing,
	"halfmonthmodifiedfollowing":    HalfMonthModifiedFollowing,
	"n":                             Nearest,
	"nearest":                       Nearest,
}

// ParseConvention accepts short codes ("MF") and long names ("modified_following").
func ParseConvention(s string) (BusinessDayConvention, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.ReplaceAll(strings.ReplaceAll(key, " ", "_"), "-", "_")
	c, ok := conventionNames[key]
	if !ok {
		return "", fmt.Errorf("calendar.ParseConvention: %q: %w", s, ErrUnknownConvention)
	}
	return c, nil
}

// MarshalText implements encoding.TextMarshaler.
func (c BusinessDayConvention) MarshalText() ([]byte, error) {
	return []byte(c), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *BusinessDayConvention) UnmarshalText(text []byte) error {
	parsed, err := ParseConvention(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Adjust rolls t onto a business day of cal according to bdc.
func Adjust(cal Calendar, t time.Time, bdc BusinessDayConvention) time.Time {
	switch bdc {
	case Unadjusted, "":
		return t
	case Following:
		return rollForward(cal, t)
	case ModifiedFollowing:
		d := rollForward(cal, t)
		if d.Month() != t.Month() {
			return rollBackward(cal, t)
		}
		return d
	case Preceding:
		return rollBackward(cal, t)
	case ModifiedPreceding:
		d := rollBackward(cal, t)
		if d.Month() != t.Month() {
			return rollForward(cal, t)
		}
		return d
	case HalfMonthModifiedFollowing:
		d := rollForward(cal, t)
		if d.Month() != t.Month() || (t.Day() <= 15 && d.Day() > 15) {
			return rollBackward(cal, t)
		}
		return d
	case Nearest:
		if cal.IsBusinessDay(t) {
			return t
		}
		for i := 1; ; i++ {
			if d := t.AddDate(0, 0, i); cal.IsBusinessDay(d) {
				return d
			}
			if d := t.AddDate(0, 0, -i); cal.IsBusinessDay(d) {
				return d
			}
		}
	default:
		panic(fmt.Sprintf("calendar.Adjust: unhandled convention %q", bdc))
	}
}

func rollForward(cal Calendar, t time.Time) time.Time {
	for !cal.IsBusinessDay(t) {
		t = t.AddDate(0, 0, 1)
	}
	return t
}

func rollBackward(cal Calendar, t time.Time) time.Time {
	for !cal.IsBusinessDay(t) {
		t = t.AddDate(0, 0, -1)
	}
	return t
}
