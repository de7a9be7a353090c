package lunar

import (
	"errors"
	"math"
)

var (
	// ErrInvalidLunarDate is returned when a lunar day or month is out of range.
	ErrInvalidLunarDate = errors.New("invalid lunar date")
	// ErrInvalidLeapMonth is returned when a leap month is requested for a
	// month that is not the leap month of its lunar year.
	ErrInvalidLeapMonth = errors.New("month is not a leap month in this lunar year")
)

// Converter maps solar dates to lunar dates. Implementations must be
// referentially transparent so that results can be memoized.
type Converter interface {
	SolarToLunar(d SolarDate, tz float64) LunarDate
}

// Engine is the stateless Converter backed by ConvertSolarToLunar.
type Engine struct{}

// SolarToLunar implements Converter.
func (Engine) SolarToLunar(d SolarDate, tz float64) LunarDate {
	return ConvertSolarToLunar(d.Day, d.Month, d.Year, tz)
}

// ConvertSolarToLunar converts a solar date to its lunar date at UTC offset
// tz (hours). It never fails; invalid solar dates produce a well-defined but
// unspecified result. On rare dates where both candidate new moons round past
// the input day (e.g. 2054-05-07) the lunar day is 0.
func ConvertSolarToLunar(day, month, year int, tz float64) LunarDate {
	dayNumber := JulianDayNumber(day, month, year)
	k := int(math.Floor((float64(dayNumber) - newMoonEpoch) / synodicMonth))

	monthStart := NewMoonDay(k+1, tz)
	if monthStart > dayNumber {
		monthStart = NewMoonDay(k, tz)
	}

	a11 := LunarMonth11(year, tz)
	b11 := a11
	var lunarYear int
	if a11 >= monthStart {
		lunarYear = year
		a11 = LunarMonth11(year-1, tz)
	} else {
		lunarYear = year + 1
		b11 = LunarMonth11(year+1, tz)
	}

	lunarDay := dayNumber - monthStart + 1
	diff := int(math.Floor(float64(monthStart-a11) / 29.0))
	lunarMonth := diff + 11
	leap := false

	if b11-a11 > 365 {
		leapOffset := LeapMonthOffset(a11, tz)
		if diff >= leapOffset {
			lunarMonth = diff + 10
			leap = diff == leapOffset
		}
	}

	if lunarMonth > 12 {
		lunarMonth -= 12
	}
	if lunarMonth >= 11 && diff < 4 {
		lunarYear--
	}

	return LunarDate{
		Day:         lunarDay,
		Month:       lunarMonth,
		Year:        lunarYear,
		IsLeapMonth: leap,
	}
}

// ConvertLunarToSolar is the inverse of ConvertSolarToLunar.
func ConvertLunarToSolar(ld LunarDate, tz float64) (SolarDate, error) {
	if ld.Day < 1 || ld.Day > 30 || ld.Month < 1 || ld.Month > 12 {
		return SolarDate{}, ErrInvalidLunarDate
	}

	var a11, b11 int
	if ld.Month < 11 {
		a11 = LunarMonth11(ld.Year-1, tz)
		b11 = LunarMonth11(ld.Year, tz)
	} else {
		a11 = LunarMonth11(ld.Year, tz)
		b11 = LunarMonth11(ld.Year+1, tz)
	}

	k := int(math.Floor(0.5 + (float64(a11)-newMoonEpoch)/synodicMonth))
	off := PosMod(ld.Month-11, 12)

	if b11-a11 > 365 {
		leapOffset := LeapMonthOffset(a11, tz)
		if ld.IsLeapMonth && ld.Month != leapMonthNumber(leapOffset) {
			return SolarDate{}, ErrInvalidLeapMonth
		}
		if ld.IsLeapMonth || off >= leapOffset {
			off++
		}
	} else if ld.IsLeapMonth {
		return SolarDate{}, ErrInvalidLeapMonth
	}

	monthStart := NewMoonDay(k+off, tz)
	if ld.Day == 30 && NewMoonDay(k+off+1, tz)-monthStart < 30 {
		return SolarDate{}, ErrInvalidLunarDate
	}
	return JDToDate(monthStart + ld.Day - 1), nil
}

// LeapMonth returns the month number repeated by the leap month of lunar
// year lunarYear, or 0 when the months 11 of lunarYear-1 and lunarYear are
// twelve lunations apart.
func LeapMonth(lunarYear int, tz float64) int {
	a11 := LunarMonth11(lunarYear-1, tz)
	b11 := LunarMonth11(lunarYear, tz)
	if b11-a11 <= 365 {
		return 0
	}
	return leapMonthNumber(LeapMonthOffset(a11, tz))
}

// leapMonthNumber maps a leap lunation offset to the month number it repeats.
func leapMonthNumber(offset int) int {
	m := offset + 10
	if m > 12 {
		m -= 12
	}
	return m
}
