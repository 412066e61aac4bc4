package calendar

import (
	"time"

	"github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/ecb"
	"github.com/rickar/cal/v2/us"
)

var (
	sundayToMonday = []cal.AltDay{{Day: time.Sunday, Offset: 1}}
	weekendNearest = []cal.AltDay{{Day: time.Saturday, Offset: -1}, {Day: time.Sunday, Offset: 1}}
)

var (
	newYear          = fixedHoliday("New Year's Day", time.January, 1, sundayToMonday, 0)
	newYearFriday    = &cal.Holiday{Name: "New Year's Day (observed)", Func: saturdayNewYear}
	nyseMlkDay       = nthMonday("Martin Luther King Jr. Day", time.January, 3, 1998)
	goodFriday       = &cal.Holiday{Name: "Good Friday", Offset: -2, Func: cal.CalcEasterOffset}
	juneteenth       = fixedHoliday("Juneteenth", time.June, 19, weekendNearest, 2022)
	juneteenthSunday = fixedHoliday("Juneteenth", time.June, 19, sundayToMonday, 2022)
	july4Sunday      = fixedHoliday("Independence Day", time.July, 4, sundayToMonday, 0)
	veteransSunday   = fixedHoliday("Veterans Day", time.November, 11, sundayToMonday, 0)
	christmasSunday  = fixedHoliday("Christmas Day", time.December, 25, sundayToMonday, 0)

	// targetYearEnd covers the 31 December closings of 1998, 1999 and 2001.
	targetYearEnd = &cal.Holiday{Name: "Year End Closing", Func: targetYearEndClosing}
)

var (
	usSettlementHolidays = []*cal.Holiday{
		newYear, newYearFriday,
		us.MlkDay, us.PresidentsDay, us.MemorialDay, juneteenth, us.IndependenceDay,
		us.LaborDay, us.ColumbusDay, us.VeteransDay, us.ThanksgivingDay, us.ChristmasDay,
	}

	usNYSEHolidays = []*cal.Holiday{
		newYear, nyseMlkDay, us.PresidentsDay, goodFriday, us.MemorialDay, juneteenth,
		us.IndependenceDay, us.LaborDay, us.ThanksgivingDay, us.ChristmasDay,
	}

	usGovernmentBondHolidays = []*cal.Holiday{
		newYear, us.MlkDay, us.PresidentsDay, goodFriday, us.MemorialDay, juneteenth,
		us.IndependenceDay, us.LaborDay, us.ColumbusDay, veteransSunday,
		us.ThanksgivingDay, us.ChristmasDay,
	}

	usFederalReserveHolidays = []*cal.Holiday{
		newYear, us.MlkDay, us.PresidentsDay, us.MemorialDay, juneteenthSunday, july4Sunday,
		us.LaborDay, us.ColumbusDay, veteransSunday, us.ThanksgivingDay, christmasSunday,
	}

	usNERCHolidays = []*cal.Holiday{
		newYear, us.MemorialDay, july4Sunday, us.LaborDay, us.ThanksgivingDay, christmasSunday,
	}

	targetHolidays = append([]*cal.Holiday{targetYearEnd}, ecb.Holidays...)
)

// businessCalendar is a Monday to Friday week minus a holiday set.
type businessCalendar struct {
	name string
	bc   *cal.BusinessCalendar
}

func newBusinessCalendar(id ID, holidays []*cal.Holiday) businessCalendar {
	bc := cal.NewBusinessCalendar()
	bc.AddHoliday(holidays...)
	return businessCalendar{name: string(id), bc: bc}
}

func (c businessCalendar) Name() string { return c.name }

func (c businessCalendar) IsBusinessDay(t time.Time) bool {
	return c.bc.IsWorkday(t)
}

// nullCalendar has no holidays and no weekends.
type nullCalendar struct{}

func (nullCalendar) Name() string { return string(Null) }

func (nullCalendar) IsBusinessDay(time.Time) bool { return true }

func fixedHoliday(name string, month time.Month, day int, observed []cal.AltDay, since int) *cal.Holiday {
	return &cal.Holiday{
		Name:      name,
		Month:     month,
		Day:       day,
		Observed:  observed,
		StartYear: since,
		Func:      cal.CalcDayOfMonth,
	}
}

func nthMonday(name string, month time.Month, nth, since int) *cal.Holiday {
	return &cal.Holiday{
		Name:      name,
		Month:     month,
		Weekday:   time.Monday,
		Offset:    nth,
		StartYear: since,
		Func:      cal.CalcWeekdayOffset,
	}
}

// saturdayNewYear is the Friday 31 December that stands in for a Saturday
// 1 January of the following year.
func saturdayNewYear(_ *cal.Holiday, year int) time.Time {
	d := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
	if d.Weekday() != time.Friday {
		return time.Time{}
	}
	return d
}

func targetYearEndClosing(_ *cal.Holiday, year int) time.Time {
	switch year {
	case 1998, 1999, 2001:
		d := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
		return d
	}
	return time.Time{}
}
