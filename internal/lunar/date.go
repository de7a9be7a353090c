package lunar

import "fmt"

// DefaultTimeZone is the UTC offset, in hours, of Vietnam.
const DefaultTimeZone = 7.0

// ValidTimeZone reports whether tz is a UTC offset within -12..14 hours.
// NaN is rejected.
func ValidTimeZone(tz float64) bool {
	return tz >= -12 && tz <= 14
}

// SolarDate is a proleptic Gregorian calendar date. Callers are responsible
// for passing a valid date.
type SolarDate struct {
	Day   int `json:"day"`
	Month int `json:"month"`
	Year  int `json:"year"`
}

// JDN returns the Julian Day Number of d.
func (d SolarDate) JDN() int {
	return JulianDayNumber(d.Day, d.Month, d.Year)
}

func (d SolarDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// LunarDate is a Vietnamese lunar calendar date. IsLeapMonth is set only for
// the inserted month of a 13-month lunar year.
type LunarDate struct {
	Day         int  `json:"day"`
	Month       int  `json:"month"`
	Year        int  `json:"year"`
	IsLeapMonth bool `json:"is_leap_month"`
}

// String renders the date as d/m/y with a "Nhuận " prefix for leap months.
func (d LunarDate) String() string {
	prefix := ""
	if d.IsLeapMonth {
		prefix = "Nhuận "
	}
	return fmt.Sprintf("%s%d/%d/%d", prefix, d.Day, d.Month, d.Year)
}

// Short renders the date as d/m.
func (d LunarDate) Short() string {
	return fmt.Sprintf("%d/%d", d.Day, d.Month)
}
