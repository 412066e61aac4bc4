package calendar

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrUnknownCalendar is returned when a calendar tag has no registered calendar.
var ErrUnknownCalendar = errors.New("unknown calendar")

// ID identifies a holiday calendar.
type ID string

const (
	Null             ID = "null"
	WeekendsOnly     ID = "weekends_only"
	USSettlement     ID = "us/settlement"
	USNYSE           ID = "us/nyse"
	USGovernmentBond ID = "us/government_bond"
	USFederalReserve ID = "us/federal_reserve"
	USNERC           ID = "us/nerc"
	USSOFR           ID = "us/sofr"
	TARGET           ID = "target"
)

// IDs lists every declared calendar tag.
func IDs() []ID {
	return []ID{Null, WeekendsOnly, USSettlement, USNYSE, USGovernmentBond, USFederalReserve, USNERC, USSOFR, TARGET}
}

// Calendar decides which dates are good business days.
type Calendar interface {
	Name() string
	IsBusinessDay(t time.Time) bool
}

// registry is the static tag -> calendar table. It is never mutated after init.
var registry map[ID]Calendar

func init() {
	registry = map[ID]Calendar{
		Null:             nullCalendar{},
		WeekendsOnly:     newBusinessCalendar(WeekendsOnly, nil),
		USSettlement:     newBusinessCalendar(USSettlement, usSettlementHolidays),
		USNYSE:           newBusinessCalendar(USNYSE, usNYSEHolidays),
		USGovernmentBond: newBusinessCalendar(USGovernmentBond, usGovernmentBondHolidays),
		USFederalReserve: newBusinessCalendar(USFederalReserve, usFederalReserveHolidays),
		USNERC:           newBusinessCalendar(USNERC, usNERCHolidays),
		USSOFR:           newBusinessCalendar(USSOFR, usGovernmentBondHolidays),
		TARGET:           newBusinessCalendar(TARGET, targetHolidays),
	}
	for _, id := range IDs() {
		if _, ok := registry[id]; !ok {
			panic(fmt.Sprintf("calendar: no calendar registered for %q", id))
		}
	}
}

// Resolve maps a tag onto its calendar.
func Resolve(id ID) (Calendar, error) {
	cal, ok := registry[id]
	if !ok {
		return nil, fmt.Errorf("calendar.Resolve: %q: %w", id, ErrUnknownCalendar)
	}
	return cal, nil
}

// ParseID normalises tags such as "US_SETTLEMENT", "us-nyse" or "TARGET".
func ParseID(s string) (ID, error) {
	tag := strings.ToLower(strings.TrimSpace(s))
	tag = strings.ReplaceAll(tag, "-", "_")
	if strings.HasPrefix(tag, "us_") {
		tag = "us/" + strings.TrimPrefix(tag, "us_")
	}
	id := ID(tag)
	if _, ok := registry[id]; !ok {
		return "", fmt.Errorf("calendar.ParseID: %q: %w", s, ErrUnknownCalendar)
	}
	return id, nil
}

// MarshalText implements encoding.TextMarshaler.
func (id ID) MarshalText() ([]byte, error) {
	return []byte(id), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *ID) UnmarshalText(text []byte) error {
	parsed, err := ParseID(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// JoinRule selects how Joint combines two calendars.
type JoinRule int

const (
	// JoinHolidays treats a date as a holiday when either calendar does.
	JoinHolidays JoinRule = iota
	// JoinBusinessDays treats a date as a business day when either calendar does.
	JoinBusinessDays
)

type jointCalendar struct {
	a, b Calendar
	rule JoinRule
}

// Joint combines two calendars under rule.
func Joint(a, b Calendar, rule JoinRule) Calendar {
	return jointCalendar{a: a, b: b, rule: rule}
}

func (j jointCalendar) Name() string {
	op := "holidays"
	if j.rule == JoinBusinessDays {
		op = "business days"
	}
	return fmt.Sprintf("joint(%s, %s; %s)", j.a.Name(), j.b.Name(), op)
}

func (j jointCalendar) IsBusinessDay(t time.Time) bool {
	if j.rule == JoinBusinessDays {
		return j.a.IsBusinessDay(t) || j.b.IsBusinessDay(t)
	}
	return j.a.IsBusinessDay(t) && j.b.IsBusinessDay(t)
}

// IsBusinessDay checks t against cal.
func IsBusinessDay(cal Calendar, t time.Time) bool {
	return cal.IsBusinessDay(t)
}

// IsHoliday reports whether t is not a business day on cal.
func IsHoliday(cal Calendar, t time.Time) bool {
	return !cal.IsBusinessDay(t)
}
