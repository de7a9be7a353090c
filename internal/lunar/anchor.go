package lunar

import (
	"math"

	"github.com/guttosm/amlich/internal/logger"
)

// LunarMonth11 returns the local JDN of the first day of the lunar month
// containing the winter solstice of the given solar year.
func LunarMonth11(year int, tz float64) int {
	off := float64(JulianDayNumber(31, 12, year)) - month11Epoch
	k := int(math.Floor(off / synodicMonth))

	nm := NewMoon(k)
	if SunLongitude(nm) >= 9 {
		nm = NewMoon(k - 1)
	}
	return localDay(nm, tz)
}

// LeapScan is the outcome of a leap-month scan starting at a month-11 anchor.
type LeapScan struct {
	// Offset is the zero-based lunation index (counted from the anchor) of
	// the inserted leap month.
	Offset int
	// Iterations is the number of lunations probed.
	Iterations int
	// Converged is false when the scan stopped at the iteration cap
	// instead of finding a repeated solar sector.
	Converged bool
}

// ScanLeapMonth walks lunations forward from the anchor a11 until the solar
// sector of a new moon repeats the previous one.
//
// Sectors are classified on the raw new-moon instant, so tz does not change
// the result; it is accepted to mirror LunarMonth11.
func ScanLeapMonth(a11 int, tz float64) LeapScan {
	k := int(math.Floor((float64(a11)-newMoonEpoch)/synodicMonth + 0.5))

	i := 1
	arc := SunLongitude(NewMoon(k + i))
	var last int
	for {
		last = arc
		i++
		arc = SunLongitude(NewMoon(k + i))
		if arc == last || i >= leapScanLimit {
			break
		}
	}

	return LeapScan{
		Offset:     i - 1,
		Iterations: i,
		Converged:  arc == last,
	}
}

// LeapMonthOffset returns the zero-based lunation index of the leap month in
// the lunar year anchored at a11. Hitting the iteration cap is logged and the
// capped index is returned.
func LeapMonthOffset(a11 int, tz float64) int {
	scan := ScanLeapMonth(a11, tz)
	if !scan.Converged {
		log := logger.Component("lunar")
		log.Warn().
			Int("a11", a11).
			Int("iterations", scan.Iterations).
			Msg("leap month scan hit iteration cap")
	}
	return scan.Offset
}
