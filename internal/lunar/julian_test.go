package lunar

import (
	"testing"
	"time"
)

func TestJulianDayNumber_KnownValues(t *testing.T) {
	cases := []struct {
		name             string
		day, month, year int
		want             int
	}{
		{name: "J2000", day: 1, month: 1, year: 2000, want: 2451545},
		{name: "first gregorian day", day: 15, month: 10, year: 1582, want: 2299161},
		{name: "last julian day", day: 4, month: 10, year: 1582, want: 2299160},
		{name: "lunation epoch", day: 1, month: 1, year: 1900, want: 2415021},
		{name: "tet 2024", day: 10, month: 2, year: 2024, want: 2460351},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := JulianDayNumber(tc.day, tc.month, tc.year); got != tc.want {
				t.Fatalf("JulianDayNumber(%d,%d,%d)=%d, want %d", tc.day, tc.month, tc.year, got, tc.want)
			}
		})
	}
}

func TestJulianDayNumber_Monotonic(t *testing.T) {
	for year := 1900; year <= 2100; year += 7 {
		for month := 1; month <= 12; month++ {
			last := time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
			for d := 1; d < last; d++ {
				if JulianDayNumber(d+1, month, year) != JulianDayNumber(d, month, year)+1 {
					t.Fatalf("not monotonic at %04d-%02d-%02d", year, month, d)
				}
			}
		}
	}
}

func TestJDToDate_InvertsJulianDayNumber(t *testing.T) {
	start := JulianDayNumber(1, 1, 1900)
	end := JulianDayNumber(31, 12, 2100)
	for jd := start; jd <= end; jd++ {
		d := JDToDate(jd)
		if got := d.JDN(); got != jd {
			t.Fatalf("JDToDate(%d)=%v maps back to %d", jd, d, got)
		}
	}
}

func TestJDToDate_MatchesTimePackage(t *testing.T) {
	day := time.Date(1999, 12, 25, 0, 0, 0, 0, time.UTC)
	jd := JulianDayNumber(25, 12, 1999)
	for i := 0; i < 800; i++ {
		got := JDToDate(jd + i)
		want := day.AddDate(0, 0, i)
		if got.Year != want.Year() || got.Month != int(want.Month()) || got.Day != want.Day() {
			t.Fatalf("JDToDate(%d)=%v, want %s", jd+i, got, want.Format("2006-01-02"))
		}
	}
}

func TestPosMod(t *testing.T) {
	cases := []struct{ a, m, want int }{
		{a: 7, m: 12, want: 7},
		{a: -1, m: 12, want: 11},
		{a: -12, m: 12, want: 0},
		{a: -25, m: 10, want: 5},
		{a: 24, m: 12, want: 0},
	}
	for _, c := range cases {
		if got := PosMod(c.a, c.m); got != c.want {
			t.Fatalf("PosMod(%d,%d)=%d, want %d", c.a, c.m, got, c.want)
		}
	}
}
