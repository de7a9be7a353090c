// Package lunar converts proleptic Gregorian dates into Vietnamese lunar
// calendar dates.
//
// The conversion follows a truncated ephemeris model: mean new moons with a
// short periodic correction, the sun's apparent longitude bucketed into 30°
// sectors, and the winter-solstice month ("month 11") as the yearly anchor.
// Every function in this package is pure; results are safe to cache.
package lunar

// gregorianReformJDN is the JDN of 1582-10-15, the first Gregorian day.
const gregorianReformJDN = 2299161

// JulianDayNumber returns the Julian Day Number of a calendar date.
//
// Dates that fall before the Gregorian reform are recomputed with the
// Julian-calendar form of the formula. All divisions truncate.
func JulianDayNumber(day, month, year int) int {
	a := (14 - month) / 12
	y := year + 4800 - a
	m := month + 12*a - 3

	jd := day + (153*m+2)/5 + 365*y + y/4 - y/100 + y/400 - 32045
	if jd < gregorianReformJDN {
		jd = day + (153*m+2)/5 + 365*y + y/4 - 32083
	}
	return jd
}

// JDToDate is the inverse of JulianDayNumber.
func JDToDate(jd int) SolarDate {
	var b, c int
	if jd >= gregorianReformJDN {
		a := jd + 32044
		b = (4*a + 3) / 146097
		c = a - (b*146097)/4
	} else {
		c = jd + 32082
	}
	d := (4*c + 3) / 1461
	e := c - (1461*d)/4
	m := (5*e + 2) / 153

	return SolarDate{
		Day:   e - (153*m+2)/5 + 1,
		Month: m + 3 - 12*(m/10),
		Year:  b*100 + d - 4800 + m/10,
	}
}

// PosMod returns a mod m in [0, m) for any sign of a.
func PosMod(a, m int) int {
	r := a % m
	if r < 0 {
		r += m
	}
	return r
}
