package lunar

import "math"

const (
	// synodicMonth is the mean length of a lunation in days.
	synodicMonth = 29.530588853

	// newMoonEpoch is the JD of the mean new moon of 1900-01-01 used to
	// index lunations.
	newMoonEpoch = 2415021.076998695

	// month11Epoch is the reference subtracted from Dec 31 when locating
	// the winter-solstice lunation.
	month11Epoch = 2415021.0

	// leapScanLimit bounds the leap-month scan. A leap month always falls
	// inside this window for a 13-lunation year.
	leapScanLimit = 14
)

// pi and dr are variables: the quotient must be rounded in float64, not
// folded as an exact constant.
var (
	pi = math.Pi
	dr = pi / 180.0
)

func deg2rad(deg float64) float64 {
	return deg * pi / 180.0
}

// NewMoon returns the Julian Date (TT corrected to UT) of the k-th new moon
// after the 1900-01-01 epoch.
//
// The coefficients are empirical fit constants and must not be altered:
// every rounded day downstream depends on them bit for bit.
func NewMoon(k int) float64 {
	kf := float64(k)
	T := kf / 1236.85 // Julian centuries from 1900 January 0.5
	T2 := T * T
	T3 := T2 * T

	jd1 := 2415020.75933 + 29.53058868*kf + 0.0001178*T2 - 0.000000155*T3
	jd1 += 0.00033 * math.Sin((166.56+132.87*T-0.009173*T2)*dr)

	M := 359.2242 + 29.10535608*kf - 0.0000333*T2 - 0.00000347*T3     // sun's mean anomaly
	Mpr := 306.0253 + 385.81691806*kf + 0.0107306*T2 + 0.00001236*T3 // moon's mean anomaly
	F := 21.2964 + 390.67050646*kf - 0.0016528*T2 - 0.00000239*T3    // moon's argument of latitude

	C1 := (0.1734 - 0.000393*T) * math.Sin(M*dr)
	C1 += 0.0021 * math.Sin(2.0*M*dr)
	C1 -= 0.4068 * math.Sin(Mpr*dr)
	C1 += 0.0161 * math.Sin(2.0*Mpr*dr)
	C1 -= 0.0004 * math.Sin(3.0*Mpr*dr)
	C1 += 0.0104 * math.Sin(2.0*F*dr)
	C1 -= 0.0051 * math.Sin((M+Mpr)*dr)
	C1 -= 0.0074 * math.Sin((M-Mpr)*dr)
	C1 += 0.0004 * math.Sin((2.0*F+M)*dr)
	C1 -= 0.0004 * math.Sin((2.0*F-M)*dr)
	C1 -= 0.0006 * math.Sin((2.0*F+Mpr)*dr)
	C1 += 0.0010 * math.Sin((2.0*F-Mpr)*dr)
	C1 += 0.0005 * math.Sin((2.0*Mpr+M)*dr)

	var deltaT float64
	if T < -11 {
		deltaT = 0.001 + 0.000839*T + 0.0002261*T2 - 0.00000845*T3 - 0.000000081*T*T3
	} else {
		deltaT = -0.000278 + 0.000265*T + 0.000262*T2
	}

	return jd1 + C1 - deltaT
}

// SunLongitude returns the 30° sector (0..11) holding the sun's apparent
// ecliptic longitude at Julian Date jd.
func SunLongitude(jd float64) int {
	T := (jd - 2451545.0) / 36525.0 // Julian centuries from J2000.0
	T2 := T * T

	M := 357.52910 + 35999.05030*T - 0.0001559*T2 - 0.00000048*T*T2
	L0 := 280.46645 + 36000.76983*T + 0.0003032*T2

	DL := (1.914600 - 0.004817*T - 0.000014*T2) * math.Sin(deg2rad(M))
	DL += (0.019993 - 0.000101*T) * math.Sin(deg2rad(2.0*M))
	DL += 0.000290 * math.Sin(deg2rad(3.0*M))

	L := L0 + DL
	L -= 360.0 * math.Floor(L/360.0)
	return int(math.Floor(L / 30.0))
}

// localDay rounds a Julian instant to the JDN of the local calendar day at
// UTC offset tz (hours).
func localDay(jd, tz float64) int {
	return int(math.Floor(jd + 0.5 + tz/24.0))
}

// NewMoonDay returns the local JDN on which the k-th new moon falls.
func NewMoonDay(k int, tz float64) int {
	return localDay(NewMoon(k), tz)
}
